package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mj1618/sapgui-cli/internal/config"
	"github.com/mj1618/sapgui-cli/internal/logging"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/prompt"
	"github.com/mj1618/sapgui-cli/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sapgui-cli",
	Short: "Drive SAP GUI sessions through the scripting engine",
	Long: `A CLI tool that attaches to a running SAP GUI session through the
scripting engine and presses buttons, fills fields, sends keys, reads the
status bar and scrapes grid views.

Without --session the user picks a session interactively (--chooser cli or
dialog). --fixture runs every command against a YAML host description
instead of a live SAP GUI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app is the state shared by every command after PersistentPreRunE.
var app struct {
	cfg     config.Config
	logger  *log.Logger
	closer  io.Closer
	prompts prompter
}

// Execute runs the root command. A cancelled prompt ends the program
// cleanly.
func Execute() {
	err := rootCmd.Execute()
	if app.closer != nil {
		app.closer.Close()
	}
	if code := exitCode(err, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// exitCode reports err on w and returns the process exit status.
func exitCode(err error, w io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, prompt.ErrCancelled):
		fmt.Fprintln(w, "Program ended.")
		return 0
	default:
		fmt.Fprintln(w, "Error:", err)
		return 1
	}
}

func init() {
	rootCmd.Version = version.String()
	pf := rootCmd.PersistentFlags()
	pf.String("format", "", "Output format: yaml, json (default from config: yaml)")
	pf.Bool("pretty", false, "Pretty-print JSON output")
	pf.String("chooser", "", "Session chooser: cli, dialog (default from config: cli)")
	pf.String("session", "", "Attach to the session with this window title without asking")
	pf.String("window", "", "Window id for window-level commands (default from config: wnd[0])")
	pf.String("fixture", "", "Use a YAML host description instead of a live SAP GUI")
	pf.String("config", "", "Config file (default: $XDG_CONFIG_HOME/sapgui-cli/config.toml)")
	pf.String("log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.PersistentPreRunE = setup
}

// setup resolves config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	pf := rootCmd.PersistentFlags()
	path, _ := pf.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	overrides := map[string]*string{
		"format":    &cfg.Format,
		"chooser":   &cfg.Chooser,
		"session":   &cfg.Session,
		"window":    &cfg.Window,
		"fixture":   &cfg.Fixture,
		"log-level": &cfg.LogLevel,
	}
	for name, dst := range overrides {
		if pf.Changed(name) {
			*dst, _ = pf.GetString(name)
		}
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	output.OutputFormat = format
	output.PrettyOutput, _ = pf.GetBool("pretty")

	mode, err := prompt.ParseMode(cfg.Chooser)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		logger.Warn(w, "config", cfg.Path)
	}
	logger.Debug("configuration loaded", "path", cfg.Path, "command", cmd.Name())

	app.cfg = cfg
	app.logger = logger
	app.closer = closer
	app.prompts = newPrompter(mode, cmd.InOrStdin(), cmd.ErrOrStderr())
	return nil
}
