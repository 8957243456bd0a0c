package cmd

import (
	"github.com/spf13/cobra"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Read and edit grid views",
}

var gridScrapeCmd = &cobra.Command{
	Use:   "scrape <id>",
	Short: "Read columns for every row of a grid view",
	Long: `Read the given columns for every row of the grid view, scrolling the
grid so each row is materialized before it is read.

Example:
  sapgui-cli grid scrape "wnd[0]/usr/cntlGRID1/shellcont/shell" --columns MATNR,MAKTX`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		columns, _ := cmd.Flags().GetStringSlice("columns")
		return runStep("grid-scrape", map[string]interface{}{"id": args[0], "columns": columns})
	},
}

var gridCellCmd = &cobra.Command{
	Use:   "cell <id>",
	Short: "Read one cell of a grid view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, _ := cmd.Flags().GetInt("row")
		column, _ := cmd.Flags().GetString("column")
		return runStep("grid-cell", map[string]interface{}{"id": args[0], "row": row, "column": column})
	},
}

var gridModifyCmd = &cobra.Command{
	Use:   "modify <id> <value>",
	Short: "Write one cell of a grid view",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, _ := cmd.Flags().GetInt("row")
		column, _ := cmd.Flags().GetString("column")
		return runStep("grid-modify", map[string]interface{}{"id": args[0], "row": row, "column": column, "value": args[1]})
	},
}

var gridPlanCmd = &cobra.Command{
	Use:   "plan <id>",
	Short: "Print the cursor moves a scrape of the grid view would make",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep("grid-plan", map[string]interface{}{"id": args[0]})
	},
}

func init() {
	gridScrapeCmd.Flags().StringSlice("columns", nil, "Column names to read (comma-separated)")
	gridScrapeCmd.MarkFlagRequired("columns")
	for _, c := range []*cobra.Command{gridCellCmd, gridModifyCmd} {
		c.Flags().Int("row", 0, "Row index")
		c.Flags().String("column", "", "Column name")
		c.MarkFlagRequired("column")
	}
	gridCmd.AddCommand(gridScrapeCmd, gridCellCmd, gridModifyCmd, gridPlanCmd)
	rootCmd.AddCommand(gridCmd)
}
