// Package config loads sapgui-cli settings from a TOML file and SAPGUI_CLI_*
// environment variables. Command-line flags are applied on top by cmd.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SAPGUI_CLI_"
	// EnvConfigPath names the config file explicitly.
	EnvConfigPath = EnvPrefix + "CONFIG"
	// FileExtTOML is the extension of the config file.
	FileExtTOML = ".toml"
)

// Config holds the resolved settings.
type Config struct {
	// Chooser is "cli" or "dialog".
	Chooser string `toml:"chooser" yaml:"chooser" json:"chooser"`
	// Window is the default window id for window-level commands.
	Window   string `toml:"window" yaml:"window" json:"window"`
	LogLevel string `toml:"log_level" yaml:"log_level" json:"log_level"`
	// LogFile, when set, receives JSON log records instead of stderr.
	LogFile string `toml:"log_file" yaml:"log_file" json:"log_file"`
	// Format is "yaml" or "json".
	Format string `toml:"format" yaml:"format" json:"format"`
	// CacheTTLMs is how long the MCP server reuses a session lookup.
	CacheTTLMs int `toml:"cache_ttl_ms" yaml:"cache_ttl_ms" json:"cache_ttl_ms"`
	// Fixture is a YAML host description used instead of a live host.
	Fixture string `toml:"fixture" yaml:"fixture" json:"fixture"`
	// Session is the title to attach to without asking.
	Session string `toml:"session" yaml:"session" json:"session"`

	// Path is the file the settings were read from, if any.
	Path string `toml:"-" yaml:"path,omitempty" json:"path,omitempty"`
	// Warnings lists values that were rejected and replaced by defaults.
	Warnings []string `toml:"-" yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// CacheTTL returns CacheTTLMs as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMs) * time.Millisecond
}

var defaults = map[string]string{
	"chooser":      "cli",
	"window":       "wnd[0]",
	"log_level":    "warn",
	"log_file":     "",
	"format":       "yaml",
	"cache_ttl_ms": "2000",
	"fixture":      "",
	"session":      "",
}

// Default returns the built-in settings.
func Default() Config {
	cfg, _ := fromValues(copyDefaults())
	return cfg
}

func copyDefaults() map[string]string {
	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}
	return values
}

// DefaultPath returns $XDG_CONFIG_HOME/sapgui-cli/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sapgui-cli", "config"+FileExtTOML)
}

// ResolvePath returns the config file to use: path when set, else
// SAPGUI_CLI_CONFIG, else DefaultPath. explicit is false only for the
// default location.
func ResolvePath(path string) (resolved string, explicit bool) {
	if path != "" {
		return path, true
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, true
	}
	return DefaultPath(), false
}

// Load resolves settings from defaults, the config file and the
// environment, in that order. path overrides SAPGUI_CLI_CONFIG and the
// default location. A missing default file is not an error; a missing
// explicit file is.
func Load(path string) (Config, error) {
	values := copyDefaults()

	path, explicit := ResolvePath(path)

	var used string
	if err := loadFromFile(values, path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return Config{}, err
		}
	} else {
		used = path
	}
	loadFromEnv(values)

	cfg, warnings := fromValues(values)
	cfg.Path = used
	cfg.Warnings = warnings
	return cfg, nil
}

func loadFromFile(values map[string]string, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("unable to read config file %s: %w", path, err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	for k, v := range raw {
		key := strings.ToLower(k)
		converted, ok := coerceConfigValue(v)
		if !ok {
			return fmt.Errorf("unsupported config value type for %s: %T", key, v)
		}
		values[key] = converted
	}
	return nil
}

// coerceConfigValue converts a TOML scalar to its string form.
func coerceConfigValue(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

func loadFromEnv(values map[string]string) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(parts[0], EnvPrefix))
		if key == "config" {
			continue
		}
		values[key] = parts[1]
	}
}

func fromValues(values map[string]string) (Config, []string) {
	var warnings []string
	for key, value := range values {
		v, ok := validators[key]
		if !ok {
			if _, known := defaults[key]; !known {
				warnings = append(warnings, fmt.Sprintf("unknown config key %q ignored", key))
			}
			continue
		}
		normalized, warning := v(key, value, defaults[key])
		if warning != "" {
			warnings = append(warnings, warning)
		}
		values[key] = normalized
	}
	ttl, _ := strconv.Atoi(values["cache_ttl_ms"])
	return Config{
		Chooser:    values["chooser"],
		Window:     values["window"],
		LogLevel:   values["log_level"],
		LogFile:    values["log_file"],
		Format:     values["format"],
		CacheTTLMs: ttl,
		Fixture:    values["fixture"],
		Session:    values["session"],
	}, warnings
}

// Write saves cfg as TOML at path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to marshal config: %w", err)
	}
	header := "# sapgui-cli configuration\n\n"
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}
