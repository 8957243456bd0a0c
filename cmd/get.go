package cmd

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Read element properties",
}

var getTextCmd = &cobra.Command{
	Use:   "text <id>",
	Short: "Print the Text property of an element",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep("text", map[string]interface{}{"id": args[0]})
	},
}

var getTypeCmd = &cobra.Command{
	Use:   "type <id>",
	Short: "Print the type and kind of an element",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep("type", map[string]interface{}{"id": args[0]})
	},
}

var getTitleCmd = &cobra.Command{
	Use:   "title [id]",
	Short: "Print the title of the window an id belongs to",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{}
		if len(args) == 1 {
			params["id"] = args[0]
		}
		return runStep("title", params)
	},
}

func init() {
	getCmd.AddCommand(getTextCmd, getTypeCmd, getTitleCmd)
	rootCmd.AddCommand(getCmd)
}
