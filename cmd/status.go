package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read the status bar of a window",
	Long:  "Print the severity (success, warning, error, abort, information or none) and text of the status bar of --window.",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return runStep("status", map[string]interface{}{})
}
