package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/sapgui-cli/internal/config"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long:  "Print the settings after the config file, SAPGUI_CLI_* variables and flags are applied.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(app.cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write the default settings as TOML to --config, SAPGUI_CLI_CONFIG or
$XDG_CONFIG_HOME/sapgui-cli/config.toml. An existing file is kept unless
--force is given.`,
	Args: cobra.NoArgs,
	// The file usually does not exist yet, so the usual config loading is skipped.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	flagPath, _ := rootCmd.PersistentFlags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")

	path, _ := config.ResolvePath(flagPath)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
	}
	if err := config.Write(path, config.Default()); err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "config-init", Value: path})
}
