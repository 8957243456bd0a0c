// Package fixture provides an in-memory scripting host described in YAML.
// It backs --fixture runs and the package tests; grids are virtualized the
// same way the real host does it, so cell reads outside the visible window
// fail.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec describes a scripting tree.
type Spec struct {
	// Running defaults to true. When false, Connect fails with
	// platform.ErrAutomationUnavailable.
	Running     *bool            `yaml:"running,omitempty"`
	Connections []ConnectionSpec `yaml:"connections"`
}

// ConnectionSpec describes one connection and its sessions.
type ConnectionSpec struct {
	Sessions []SessionSpec `yaml:"sessions"`
}

// SessionSpec describes one session. Title is the text of wnd[0].
type SessionSpec struct {
	Title    string                 `yaml:"title"`
	Busy     bool                   `yaml:"busy,omitempty"`
	Elements map[string]ElementSpec `yaml:"elements,omitempty"`
}

// ElementSpec describes one element addressed by its id.
type ElementSpec struct {
	Type    string         `yaml:"type"`
	SubType string         `yaml:"subtype,omitempty"`
	Props   map[string]any `yaml:"props,omitempty"`
	Grid    *GridSpec      `yaml:"grid,omitempty"`
	// Rows is the row count of a GuiTableControl.
	Rows int `yaml:"rows,omitempty"`
	// OnPress is applied when a button is pressed.
	OnPress *Effect `yaml:"on_press,omitempty"`
	// OnVKey is applied when a virtual key is sent to a window.
	OnVKey map[int]Effect `yaml:"on_vkey,omitempty"`
}

// GridSpec describes the content of a GridView shell.
type GridSpec struct {
	VisibleRows int                 `yaml:"visible_rows"`
	Rows        []map[string]string `yaml:"rows"`
}

// Effect changes the window that owns the triggering element.
type Effect struct {
	Title       string `yaml:"title,omitempty"`
	Status      string `yaml:"status,omitempty"`
	MessageType string `yaml:"message_type,omitempty"`
	// Open adds a modal window with this title.
	Open string `yaml:"open,omitempty"`
	// Close removes the owning window (ignored for wnd[0]).
	Close bool `yaml:"close,omitempty"`
}

// Parse decodes a YAML fixture.
func Parse(data []byte) (Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return spec, nil
}

// Load reads and decodes a YAML fixture file.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data)
}
