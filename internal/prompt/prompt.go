// Package prompt asks the user to pick a session, to acknowledge a failure
// or to decide whether a failed step should run again. Every prompt has a
// line-oriented form for terminals and pipes and a bubbletea dialog form.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCancelled is returned when the user dismisses a prompt. Callers treat
// it as a clean exit.
var ErrCancelled = errors.New("cancelled by user")

// Mode selects how prompts are presented.
type Mode string

const (
	ModeCLI    Mode = "cli"
	ModeDialog Mode = "dialog"
)

// ParseMode converts "cli" or "dialog" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCLI:
		return ModeCLI, nil
	case ModeDialog:
		return ModeDialog, nil
	default:
		return "", fmt.Errorf("unknown chooser mode: %q (expected cli or dialog)", s)
	}
}

// Chooser lets the user pick one of options. ok is false when the user
// cancelled.
type Chooser interface {
	Choose(title string, options []string) (choice string, ok bool, err error)
}

// Layout is the button layout of a failure report.
type Layout int

const (
	// LayoutOK shows a single acknowledge button.
	LayoutOK Layout = iota
	// LayoutTryAgain offers "Try again" and "Cancel".
	LayoutTryAgain
)

// Reporter shows a failure to the user. retry is true only for
// LayoutTryAgain when the user chose to try again.
type Reporter interface {
	Report(title string, err error, layout Layout) (retry bool, rerr error)
}

// Decision is the answer to a repeat prompt.
type Decision int

const (
	Proceed Decision = iota
	Repeat
)

func (d Decision) String() string {
	if d == Repeat {
		return "repeat"
	}
	return "proceed"
}

// RepeatPrompt asks whether a failed step should run again.
type RepeatPrompt interface {
	Ask(title, info string) (Decision, error)
}

// Static is a Chooser that never asks: it returns Title when it is one of
// the options, or the only option when Title is empty and there is exactly
// one.
type Static struct {
	Title string
}

func (s Static) Choose(_ string, options []string) (string, bool, error) {
	if s.Title == "" {
		if len(options) == 1 {
			return options[0], true, nil
		}
		return "", false, fmt.Errorf("%d sessions available, pass --session to pick one", len(options))
	}
	for _, o := range options {
		if o == s.Title {
			return o, true, nil
		}
	}
	return "", false, fmt.Errorf("no session titled %q", s.Title)
}
