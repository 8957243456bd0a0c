package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/sapgui-cli/internal/batch"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/session"
	"github.com/spf13/cobra"
)

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Execute multiple steps in a batch",
	Long: `Execute a sequence of steps from a YAML list, read from --file or stdin.

Each step is an action name with its parameters as a map. Steps execute
sequentially against one attached session. By default execution stops on
the first error. With --repeat-prompt a failed step asks whether to repeat
it (after fixing the screen by hand) or to proceed with the next one; the
prompt reads the terminal, so steps must come from --file.

Example:
  sapgui-cli do --session "SAP Easy Access" <<'EOF'
  - start: { code: MM03 }
  - insert: { id: "wnd[0]/usr/ctxtRMMG1-MATNR", value: "4711" }
  - vkey: { key: enter }
  - status: {}
  - grid-scrape: { id: "wnd[0]/usr/cntlGRID/shellcont/shell", columns: [MATNR, MAKTX] }
  EOF`,
	Args: cobra.NoArgs,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().String("file", "", "Read steps from this file instead of stdin")
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
	doCmd.Flags().Bool("repeat-prompt", false, "Ask whether to repeat a failed step or proceed")
}

func runDo(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")
	repeatPrompt, _ := cmd.Flags().GetBool("repeat-prompt")

	if repeatPrompt && file == "" {
		return fmt.Errorf("--repeat-prompt needs --file: stdin is used for the prompt")
	}

	var data []byte
	var err error
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read steps: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("no steps provided, pipe a YAML list of actions or pass --file")
	}
	steps, err := batch.Parse(data)
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Window:      app.cfg.Window,
		StopOnError: stopOnError,
		Logger:      app.logger,
	}
	if repeatPrompt {
		runner.Prompt = app.prompts
	}

	return withSession(func(ctl *session.Controller) error {
		res, err := runner.Run(ctl, steps)
		if perr := output.Print(res); perr != nil {
			return perr
		}
		if err != nil {
			return err
		}
		if !res.OK {
			return fmt.Errorf("%d of %d steps failed", failed(res), len(steps))
		}
		return nil
	})
}

func failed(res output.BatchResult) int {
	n := 0
	for _, s := range res.Steps {
		if !s.OK {
			n++
		}
	}
	return n
}
