package batch

import "fmt"

// StringParam returns params[key] as a string, or defaultVal.
func StringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// YAML and JSON may decode ids and codes as numbers.
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

// IntParam returns params[key] as an int, or defaultVal.
func IntParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

// BoolParam returns params[key] as a bool, or defaultVal.
func BoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// StringsParam returns params[key] as a string list. A single string is
// split on commas.
func StringsParam(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case []string:
		return v
	case string:
		return splitList(v)
	}
	return nil
}
