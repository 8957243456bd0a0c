package cmd

import (
	"errors"
	"io"

	"github.com/mj1618/sapgui-cli/internal/batch"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/platform/fixture"
	"github.com/mj1618/sapgui-cli/internal/prompt"
	"github.com/mj1618/sapgui-cli/internal/session"
)

// connector returns the fixture host when --fixture is set, otherwise the
// platform backend.
func connector() (platform.Connector, error) {
	if app.cfg.Fixture != "" {
		return fixture.NewFromFile(app.cfg.Fixture)
	}
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	return provider.Connector, nil
}

func chooserMode() prompt.Mode {
	mode, err := prompt.ParseMode(app.cfg.Chooser)
	if err != nil {
		return prompt.ModeCLI
	}
	return mode
}

// interactive reports whether commands may prompt the user.
func interactive() bool {
	return app.cfg.Session == ""
}

// prompter is the Chooser, crash reporter and repeat prompt one run shares.
type prompter interface {
	prompt.Chooser
	prompt.Reporter
	prompt.RepeatPrompt
}

// newPrompter builds the prompts for mode. Line prompts write to stderr so
// stdout stays machine-readable; a single Line is shared so its buffered
// reader does not swallow answers meant for a later prompt.
func newPrompter(mode prompt.Mode, in io.Reader, errOut io.Writer) prompter {
	if mode == prompt.ModeDialog {
		return prompt.NewDialog(nil, errOut)
	}
	return prompt.NewLine(in, errOut)
}

func newSelector(conn platform.Connector) *session.Selector {
	opts := []session.Option{session.WithLogger(app.logger)}
	if interactive() {
		opts = append(opts, session.WithChooser(chooserMode(), app.prompts))
	} else {
		static := prompt.Static{Title: app.cfg.Session}
		opts = append(opts,
			session.WithChooser(prompt.ModeCLI, static),
			session.WithChooser(prompt.ModeDialog, static))
	}
	return session.NewSelector(conn, opts...)
}

// attach discovers sessions, lets the user choose one and attaches to it.
// When interactive, discovery failures are shown by the crash reporter and
// "Try again" runs discovery again.
func attach() (*session.Controller, error) {
	conn, err := connector()
	if err != nil {
		return nil, err
	}
	sel := newSelector(conn)
	for {
		sessions, err := sel.Discover()
		if err == nil {
			title, err := sel.Select(sessions, chooserMode())
			if err != nil {
				return nil, err
			}
			return sel.Attach(title, sessions[title])
		}
		if !interactive() || !reportable(err) {
			return nil, err
		}
		retry, rerr := app.prompts.Report("Cannot connect to SAP GUI", err, prompt.LayoutTryAgain)
		if rerr != nil {
			return nil, rerr
		}
		if !retry {
			return nil, prompt.ErrCancelled
		}
		app.logger.Info("retrying session discovery")
	}
}

func reportable(err error) bool {
	return errors.Is(err, platform.ErrAutomationUnavailable) || errors.Is(err, session.ErrNoAvailableSession)
}

// withSession attaches, runs fn and disconnects.
func withSession(fn func(ctl *session.Controller) error) error {
	ctl, err := attach()
	if err != nil {
		return err
	}
	defer ctl.Disconnect()
	return fn(ctl)
}

// runStep attaches and runs a single batch action, printing its result.
func runStep(action string, params map[string]interface{}) error {
	return withSession(func(ctl *session.Controller) error {
		result, err := batch.Execute(ctl, batch.Step{Action: action, Params: params}, app.cfg.Window)
		if err != nil {
			return err
		}
		return output.Print(result)
	})
}
