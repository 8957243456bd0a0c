package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line implements Chooser, Reporter and RepeatPrompt over a reader and a
// writer, one answer per line.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a Line prompt reading answers from in and writing
// questions to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// readLine returns the next trimmed line. io.EOF is returned only when no
// more input is available.
func (l *Line) readLine() (string, error) {
	s, err := l.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Choose lists options numbered from 1 and reads a number or an exact
// option. Empty input, "q" or end of input cancels. Invalid answers
// re-prompt.
func (l *Line) Choose(title string, options []string) (string, bool, error) {
	fmt.Fprintln(l.out, title)
	for i, o := range options {
		fmt.Fprintf(l.out, "  %d) %s\n", i+1, o)
	}
	for {
		fmt.Fprint(l.out, "> ")
		s, err := l.readLine()
		if err == io.EOF {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		if s == "" || s == "q" {
			return "", false, nil
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], true, nil
		}
		for _, o := range options {
			if o == s {
				return o, true, nil
			}
		}
		fmt.Fprintf(l.out, "invalid choice %q, enter 1-%d or q to cancel\n", s, len(options))
	}
}

// Report prints err. For LayoutTryAgain it asks "Try again? [y/N]".
func (l *Line) Report(title string, err error, layout Layout) (bool, error) {
	fmt.Fprintf(l.out, "%s: %v\n", title, err)
	if layout != LayoutTryAgain {
		return false, nil
	}
	return l.yesNo("Try again? [y/N] ")
}

// Ask prints info and asks whether to repeat the step.
func (l *Line) Ask(title, info string) (Decision, error) {
	fmt.Fprintf(l.out, "%s\n%s\n", title, info)
	repeat, err := l.yesNo("Repeat step? [y/N] ")
	if err != nil || !repeat {
		return Proceed, err
	}
	return Repeat, nil
}

func (l *Line) yesNo(question string) (bool, error) {
	fmt.Fprint(l.out, question)
	s, err := l.readLine()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
