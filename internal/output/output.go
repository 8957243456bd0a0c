// Package output renders command results as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mj1618/sapgui-cli/internal/grid"
	"github.com/mj1618/sapgui-cli/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts "yaml" or "json" to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (expected yaml or json)", s)
	}
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes.
var Stdout io.Writer = os.Stdout

// SessionsResult is the output of the `sessions` command.
type SessionsResult struct {
	Sessions []model.SessionDescriptor `yaml:"sessions" json:"sessions"`
}

// ActionResult is the output of commands that change the session.
type ActionResult struct {
	OK      bool   `yaml:"ok"                json:"ok"`
	Action  string `yaml:"action"            json:"action"`
	ID      string `yaml:"id,omitempty"      json:"id,omitempty"`
	Value   string `yaml:"value,omitempty"   json:"value,omitempty"`
	Changed *bool  `yaml:"changed,omitempty" json:"changed,omitempty"`
}

// ValueResult is the output of commands that read one value.
type ValueResult struct {
	ID    string `yaml:"id"    json:"id"`
	Value any    `yaml:"value" json:"value"`
}

// StatusResult is the output of the `status` command.
type StatusResult struct {
	Window       string `yaml:"window" json:"window"`
	model.Status `yaml:",inline"`
}

// GridResult is the output of `grid scrape`.
type GridResult struct {
	ID      string     `yaml:"id"      json:"id"`
	Columns []string   `yaml:"columns" json:"columns"`
	Rows    [][]string `yaml:"rows"    json:"rows"`
}

// GridPlanResult is the output of `grid plan`.
type GridPlanResult struct {
	ID      string      `yaml:"id"      json:"id"`
	Total   int         `yaml:"total"   json:"total"`
	Visible int         `yaml:"visible" json:"visible"`
	Moves   []grid.Move `yaml:"moves"   json:"moves"`
}

// StepResult reports one step of a `do` batch.
type StepResult struct {
	Step     int    `yaml:"step"               json:"step"`
	Action   string `yaml:"action"             json:"action"`
	OK       bool   `yaml:"ok"                 json:"ok"`
	Attempts int    `yaml:"attempts"           json:"attempts"`
	Error    string `yaml:"error,omitempty"    json:"error,omitempty"`
	Result   any    `yaml:"result,omitempty"   json:"result,omitempty"`
}

// BatchResult is the output of `do`.
type BatchResult struct {
	OK    bool         `yaml:"ok"    json:"ok"`
	Steps []StepResult `yaml:"steps" json:"steps"`
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(Stdout, v, PrettyOutput)
	case FormatYAML:
		return WriteYAML(Stdout, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// WriteJSON serializes v to w as JSON, indented when pretty is set.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v to w as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
