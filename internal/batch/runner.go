package batch

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/prompt"
	"github.com/mj1618/sapgui-cli/internal/session"
)

// Runner executes steps in order.
type Runner struct {
	// Window is the default window for window-level actions.
	Window string
	// Prompt, when set, is asked after each failed step whether to repeat
	// it or proceed to the next one. Without a prompt a failure stops the
	// batch when StopOnError is set.
	Prompt      prompt.RepeatPrompt
	StopOnError bool
	Logger      *log.Logger
}

// Run executes steps against ctl. The error is non-nil only when the
// prompt itself fails; prompt.ErrCancelled stops the batch and is
// returned alongside the partial result.
func (r *Runner) Run(ctl *session.Controller, steps []Step) (output.BatchResult, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	window := r.Window
	if window == "" {
		window = session.RootWindow
	}

	res := output.BatchResult{OK: true, Steps: make([]output.StepResult, 0, len(steps))}
	for i, step := range steps {
		sr := output.StepResult{Step: i + 1, Action: step.Action}
		for {
			sr.Attempts++
			v, err := Execute(ctl, step, window)
			if err == nil {
				sr.OK, sr.Error, sr.Result = true, "", v
				break
			}
			sr.OK, sr.Error = false, err.Error()
			logger.Warn("step failed", "step", sr.Step, "action", step.Action, "attempt", sr.Attempts, "err", err)
			if r.Prompt == nil {
				break
			}
			decision, perr := r.Prompt.Ask(
				fmt.Sprintf("Step %d (%s) failed", sr.Step, step.Action),
				err.Error()+"\nFix the screen, then repeat the step or proceed with the next one.")
			if perr != nil {
				res.OK = false
				res.Steps = append(res.Steps, sr)
				if errors.Is(perr, prompt.ErrCancelled) {
					return res, perr
				}
				return res, fmt.Errorf("repeat prompt failed: %w", perr)
			}
			if decision != prompt.Repeat {
				break
			}
			logger.Info("repeating step", "step", sr.Step, "action", step.Action)
		}
		res.Steps = append(res.Steps, sr)
		if !sr.OK {
			res.OK = false
			if r.Prompt == nil && r.StopOnError {
				break
			}
		}
	}
	return res, nil
}
