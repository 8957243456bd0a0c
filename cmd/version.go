package cmd

import (
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(map[string]string{
			"version": version.Version,
			"commit":  version.Commit,
			"built":   version.BuildDate,
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
