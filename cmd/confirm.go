package cmd

import (
	"github.com/spf13/cobra"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm [id]",
	Short: "Press a button or send a key and report whether the screen changed",
	Long: `With an element id, press that element. With a window id (or no id, meaning
--window), send --key to the window. Prints changed: true when the window
title or the number of open windows differs afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfirm,
}

func init() {
	rootCmd.AddCommand(confirmCmd)
	confirmCmd.Flags().String("key", "enter", "Key sent when the id is a window")
}

func runConfirm(cmd *cobra.Command, args []string) error {
	key, _ := cmd.Flags().GetString("key")
	params := map[string]interface{}{"key": key}
	if len(args) == 1 {
		params["id"] = args[0]
	}
	return runStep("confirm", params)
}
