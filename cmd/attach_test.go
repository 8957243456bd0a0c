package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mj1618/sapgui-cli/internal/prompt"
)

const busyFixtureYAML = `
connections:
  - sessions:
      - title: "SAP Easy Access"
        busy: true
`

const twoSessionFixtureYAML = `
connections:
  - sessions:
      - title: "Session A"
  - sessions:
      - title: "Session B"
`

func TestAttach_TryAgainRerunsDiscovery(t *testing.T) {
	path := writeFixtureYAML(t, busyFixtureYAML)

	_, stderr, err := runCLIWithStderr(t, "y\ny\n", "--fixture", path, "status")
	if !errors.Is(err, prompt.ErrCancelled) {
		t.Fatalf("expected ErrCancelled once input runs out, got %v", err)
	}
	if got := strings.Count(stderr, "Try again?"); got != 3 {
		t.Errorf("expected 3 discovery failures reported, got %d:\n%s", got, stderr)
	}
	if got := strings.Count(stderr, "couldn't find any available session"); got != 3 {
		t.Errorf("expected discovery to run 3 times, got %d:\n%s", got, stderr)
	}
}

func TestAttach_DeclineEndsProgram(t *testing.T) {
	path := writeFixtureYAML(t, busyFixtureYAML)

	_, stderr, err := runCLIWithStderr(t, "n\ny\n", "--fixture", path, "status")
	if !errors.Is(err, prompt.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if got := strings.Count(stderr, "Try again?"); got != 1 {
		t.Errorf("expected a single prompt, got %d:\n%s", got, stderr)
	}

	var buf bytes.Buffer
	if code := exitCode(err, &buf); code != 0 {
		t.Errorf("cancel should exit 0, got %d", code)
	}
	if buf.String() != "Program ended.\n" {
		t.Errorf("unexpected exit message %q", buf.String())
	}
}

func TestAttach_NonInteractiveDoesNotPrompt(t *testing.T) {
	path := writeFixtureYAML(t, busyFixtureYAML)

	_, stderr, err := runCLIWithStderr(t, "y\n", "--fixture", path, "--session", "SAP Easy Access", "status")
	if err == nil || errors.Is(err, prompt.ErrCancelled) {
		t.Fatalf("expected a discovery error, got %v", err)
	}
	if strings.Contains(stderr, "Try again?") {
		t.Errorf("--session must not prompt:\n%s", stderr)
	}
}

func TestAttach_InteractiveChooser(t *testing.T) {
	path := writeFixtureYAML(t, twoSessionFixtureYAML)

	out, stderr, err := runCLIWithStderr(t, "2\n", "--fixture", path, "get", "title", "wnd[0]")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "1) Session A") || !strings.Contains(stderr, "2) Session B") {
		t.Errorf("expected numbered sessions, got:\n%s", stderr)
	}
	if !strings.Contains(out, "Session B") {
		t.Errorf("expected title of the chosen session, got:\n%s", out)
	}
}

func TestAttach_ChooserCancelled(t *testing.T) {
	path := writeFixtureYAML(t, twoSessionFixtureYAML)

	_, _, err := runCLIWithStderr(t, "q\n", "--fixture", path, "status")
	if !errors.Is(err, prompt.ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	var buf bytes.Buffer
	if code := exitCode(nil, &buf); code != 0 || buf.Len() != 0 {
		t.Errorf("nil error: code %d, output %q", code, buf.String())
	}
	if code := exitCode(errors.New("boom"), &buf); code != 1 || buf.String() != "Error: boom\n" {
		t.Errorf("error: code %d, output %q", code, buf.String())
	}
}
