package cmd

import (
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Manage session windows",
}

func windowStep(use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(action, map[string]interface{}{})
		},
	}
}

func init() {
	windowCmd.AddCommand(
		windowStep("maximize", "Maximize --window", "maximize"),
		windowStep("restore", "Restore --window to its normal size", "restore"),
		windowStep("count", "Print the number of open windows", "window-count"),
		windowStep("last", "Print the id of the most recently opened window", "last-window"),
	)
	rootCmd.AddCommand(windowCmd)
}
