package cmd

import (
	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <id> <value>",
	Short: "Write a value into a text field or combo box",
	Long: `Write value into the text field with the given id, or select the combo box
entry whose key is value.

Example:
  sapgui-cli insert "wnd[0]/usr/ctxtRMMG1-MATNR" 4711`,
	Args: cobra.ExactArgs(2),
	RunE: runInsert,
}

func init() {
	rootCmd.AddCommand(insertCmd)
}

func runInsert(cmd *cobra.Command, args []string) error {
	return runStep("insert", map[string]interface{}{"id": args[0], "value": args[1]})
}
