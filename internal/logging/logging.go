// Package logging builds the charmbracelet logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config selects where and how much to log.
type Config struct {
	// Level is debug, info, warn, error or off.
	Level string
	// File, when set, receives JSON records instead of Stderr.
	File string
	// Stderr is the console sink. Defaults to os.Stderr.
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and the closer for its sink. Level "off" yields a
// logger that discards everything.
func New(cfg Config) (*log.Logger, io.Closer, error) {
	if strings.EqualFold(cfg.Level, "off") {
		return log.New(io.Discard), nopCloser{}, nil
	}
	level := ParseLevel(cfg.Level)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l := log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339Nano,
			Level:           level,
		})
		l.SetFormatter(log.JSONFormatter)
		return l.With("pid", os.Getpid()), f, nil
	}

	w := cfg.Stderr
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		Prefix: "sapgui-cli",
		Level:  level,
	})
	return l, nopCloser{}, nil
}

// ParseLevel converts a level name to log.Level. Unknown names mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
