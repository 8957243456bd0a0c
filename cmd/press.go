package cmd

import (
	"github.com/spf13/cobra"
)

var pressCmd = &cobra.Command{
	Use:   "press <id>",
	Short: "Activate an element",
	Long: `Activate the element with the given id. What happens depends on its type:
buttons are focused and pressed, checkboxes are set to --check, radio
buttons, tabs and menu items are selected and labels are focused.

Example:
  sapgui-cli press "wnd[0]/tbar[0]/btn[11]"`,
	Args: cobra.ExactArgs(1),
	RunE: runPress,
}

func init() {
	rootCmd.AddCommand(pressCmd)
	pressCmd.Flags().Bool("check", true, "Checkbox state to set")
}

func runPress(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	return runStep("press", map[string]interface{}{"id": args[0], "check": check})
}
