package cmd

import (
	"github.com/spf13/cobra"
)

var vkeyCmd = &cobra.Command{
	Use:   "vkey [key]",
	Short: "Send a virtual key to a window",
	Long: `Send a virtual key to the window given by --window (default wnd[0]).
Supported keys: enter, f2, f3, f8, save (ctrl+s), pageup, pagedown, or
their numeric codes 0, 2, 3, 8, 11, 81, 82. Defaults to enter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVKey,
}

func init() {
	rootCmd.AddCommand(vkeyCmd)
}

func runVKey(cmd *cobra.Command, args []string) error {
	key := "enter"
	if len(args) == 1 {
		key = args[0]
	}
	return runStep("vkey", map[string]interface{}{"key": key})
}
