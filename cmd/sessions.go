package cmd

import (
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List scripting sessions that are not busy",
	Long:  "List the sessions of every connection that are not busy, with their window title and connection/session indices.",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	conn, err := connector()
	if err != nil {
		return err
	}
	sessions, err := newSelector(conn).Discover()
	if err != nil {
		return err
	}
	return output.Print(output.SessionsResult{Sessions: sessions.Descriptors()})
}
