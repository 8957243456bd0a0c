package cmd

import (
	"github.com/spf13/cobra"
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock the session UI against user input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep("lock", map[string]interface{}{})
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock the session UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep("unlock", map[string]interface{}{})
	},
}

func init() {
	rootCmd.AddCommand(lockCmd, unlockCmd)
}
