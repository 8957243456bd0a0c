package cmd

import (
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Work with table controls",
}

var tableSelectRowCmd = &cobra.Command{
	Use:   "select-row <id>",
	Short: "Select a row of a table control by absolute index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, _ := cmd.Flags().GetInt("row")
		return runStep("table-select-row", map[string]interface{}{"id": args[0], "row": row})
	},
}

func init() {
	tableSelectRowCmd.Flags().Int("row", 0, "Absolute row index")
	tableCmd.AddCommand(tableSelectRowCmd)
	rootCmd.AddCommand(tableCmd)
}
