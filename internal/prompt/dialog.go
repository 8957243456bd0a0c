package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k", "left", "h", "shift+tab"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "right", "l", "tab"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	bodyStyle     = lipgloss.NewStyle().MarginBottom(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).MarginBottom(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	activeButton  = buttonStyle.BorderForeground(lipgloss.Color("12")).Bold(true)
	helpTextStyle = lipgloss.NewStyle().Faint(true).MarginTop(1)
	frameStyle    = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.NormalBorder())
)

// selectModel is a vertical list (or a row of buttons) with one cursor.
type selectModel struct {
	title     string
	body      string
	isError   bool
	options   []string
	buttons   bool
	cursor    int
	chosen    int
	cancelled bool
}

func newSelectModel(title string, options []string) selectModel {
	return selectModel{title: title, options: options, chosen: -1}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, defaultKeyMap.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(km, defaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, defaultKeyMap.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(km, defaultKeyMap.Select):
		if len(m.options) > 0 {
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.body != "" {
		if m.isError {
			b.WriteString(errorStyle.Render(m.body))
		} else {
			b.WriteString(bodyStyle.Render(m.body))
		}
		b.WriteString("\n")
	}
	if m.buttons {
		rendered := make([]string, len(m.options))
		for i, o := range m.options {
			if i == m.cursor {
				rendered[i] = activeButton.Render(o)
			} else {
				rendered[i] = buttonStyle.Render(o)
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	} else {
		for i, o := range m.options {
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> " + o))
			} else {
				b.WriteString(itemStyle.Render(o))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString(helpTextStyle.Render(fmt.Sprintf("%s • %s • %s",
		defaultKeyMap.Down.Help().Key+" move",
		defaultKeyMap.Select.Help().Key+" "+defaultKeyMap.Select.Help().Desc,
		defaultKeyMap.Cancel.Help().Key+" "+defaultKeyMap.Cancel.Help().Desc)))
	return frameStyle.Render(b.String())
}

// Dialog implements Chooser, Reporter and RepeatPrompt as full-screen
// terminal dialogs.
type Dialog struct {
	opts []tea.ProgramOption
}

// NewDialog creates a Dialog. in and out default to the terminal when nil.
func NewDialog(in io.Reader, out io.Writer) *Dialog {
	d := &Dialog{}
	if in != nil {
		d.opts = append(d.opts, tea.WithInput(in))
	}
	if out != nil {
		d.opts = append(d.opts, tea.WithOutput(out))
	}
	return d
}

func (d *Dialog) run(m selectModel) (selectModel, error) {
	final, err := tea.NewProgram(m, d.opts...).Run()
	if err != nil {
		return m, fmt.Errorf("dialog failed: %w", err)
	}
	return final.(selectModel), nil
}

func (d *Dialog) Choose(title string, options []string) (string, bool, error) {
	m, err := d.run(newSelectModel(title, options))
	if err != nil {
		return "", false, err
	}
	if m.cancelled || m.chosen < 0 {
		return "", false, nil
	}
	return m.options[m.chosen], true, nil
}

func (d *Dialog) Report(title string, rerr error, layout Layout) (bool, error) {
	buttons := []string{"OK"}
	if layout == LayoutTryAgain {
		buttons = []string{"Try again", "Cancel"}
	}
	m := newSelectModel(title, buttons)
	m.body = rerr.Error()
	m.isError = true
	m.buttons = true
	m, err := d.run(m)
	if err != nil {
		return false, err
	}
	return layout == LayoutTryAgain && !m.cancelled && m.chosen == 0, nil
}

func (d *Dialog) Ask(title, info string) (Decision, error) {
	m := newSelectModel(title, []string{"Repeat", "Proceed"})
	m.body = info
	m.buttons = true
	m, err := d.run(m)
	if err != nil {
		return Proceed, err
	}
	if !m.cancelled && m.chosen == 0 {
		return Repeat, nil
	}
	return Proceed, nil
}
