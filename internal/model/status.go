package model

// Severity classifies a status bar message.
type Severity string

const (
	SeverityNone        Severity = "none"
	SeveritySuccess     Severity = "success"
	SeverityWarning     Severity = "warning"
	SeverityError       Severity = "error"
	SeverityAbort       Severity = "abort"
	SeverityInformation Severity = "information"
)

// ParseMessageType converts a status bar MessageType ("S", "W", "E", "A",
// "I") to a Severity. An empty or unknown type means no message is shown.
func ParseMessageType(t string) Severity {
	switch t {
	case "S":
		return SeveritySuccess
	case "W":
		return SeverityWarning
	case "E":
		return SeverityError
	case "A":
		return SeverityAbort
	case "I":
		return SeverityInformation
	default:
		return SeverityNone
	}
}

// Status is the content of a window's status bar.
type Status struct {
	Severity Severity `yaml:"severity" json:"severity"`
	Text     string   `yaml:"text"     json:"text"`
}
