package cmd

import (
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Check whether an element exists",
	Long:  "Print true when the id resolves to an element in the attached session, false otherwise.",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	return runStep("verify", map[string]interface{}{"id": args[0]})
}
