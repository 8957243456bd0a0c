package cmd

import (
	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Start or end transactions",
}

var txStartCmd = &cobra.Command{
	Use:   "start <code>",
	Short: "Start a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep("start", map[string]interface{}{"code": args[0]})
	},
}

var txEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the running transaction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep("end", map[string]interface{}{})
	},
}

func init() {
	txCmd.AddCommand(txStartCmd, txEndCmd)
	rootCmd.AddCommand(txCmd)
}
