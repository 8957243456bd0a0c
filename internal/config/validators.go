package config

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Validator normalizes value. When value is rejected it returns
// defaultValue and a warning.
type Validator func(key, value, defaultValue string) (normalized, warning string)

var validators = map[string]Validator{
	"chooser":      EnumValidator("cli", "dialog"),
	"format":       EnumValidator("yaml", "json"),
	"log_level":    EnumValidator("debug", "info", "warn", "error", "off"),
	"cache_ttl_ms": NonNegativeIntValidator(),
	"window":       PatternValidator(regexp.MustCompile(`^wnd\[\d+\]$`), "a window id such as wnd[0]"),
}

// EnumValidator accepts one of allowed, case-insensitively.
func EnumValidator(allowed ...string) Validator {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(key, value, defaultValue string) (string, string) {
		if value == "" {
			return defaultValue, ""
		}
		lower := strings.ToLower(value)
		if lower == "warning" && set["warn"] {
			lower = "warn"
		}
		if !set[lower] {
			return defaultValue, fmt.Sprintf("invalid %s value '%s': must be one of: %s; using default: %s",
				key, value, allowedValues(set), defaultValue)
		}
		return lower, ""
	}
}

// NonNegativeIntValidator accepts integers >= 0.
func NonNegativeIntValidator() Validator {
	return func(key, value, defaultValue string) (string, string) {
		if value == "" {
			return defaultValue, ""
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return defaultValue, fmt.Sprintf("invalid %s value '%s': must be a non-negative integer, using default: %s",
				key, value, defaultValue)
		}
		return value, ""
	}
}

// PatternValidator accepts values matching re.
func PatternValidator(re *regexp.Regexp, what string) Validator {
	return func(key, value, defaultValue string) (string, string) {
		if value == "" {
			return defaultValue, ""
		}
		if !re.MatchString(value) {
			return defaultValue, fmt.Sprintf("invalid %s value '%s': must be %s, using default: %s",
				key, value, what, defaultValue)
		}
		return value, ""
	}
}

func allowedValues(allowed map[string]bool) string {
	values := make([]string, 0, len(allowed))
	for k := range allowed {
		values = append(values, k)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}
