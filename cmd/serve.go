package cmd

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/server"
	"github.com/mj1618/sapgui-cli/internal/session"
	"github.com/mj1618/sapgui-cli/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing sapgui-cli tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the session
operations as tools. Tool calls name a session by window title; without one
the --session default (or the only available session) is used.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  sapgui-cli serve
  sapgui-cli serve --transport streamable-http --port 8080
  sapgui-cli serve --cache-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", -1, "Session discovery cache TTL in milliseconds (0 to disable, default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	cfg := app.cfg
	if cacheTTLMs >= 0 {
		cfg.CacheTTLMs = cacheTTLMs
	}

	conn, err := connector()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	// Tool calls never prompt: sessions are chosen by title.
	sel := session.NewSelector(conn, session.WithLogger(app.logger))

	srv := server.New(sel, server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  cfg.CacheTTL(),
		Window:    cfg.Window,
		Session:   cfg.Session,
		Version:   version.Version,
	}, app.logger)

	app.logger.Info("starting MCP server", "transport", transport)
	return srv.Serve()
}
