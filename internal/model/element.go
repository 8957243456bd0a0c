package model

// ElementInfo is a compact description of a resolved element.
type ElementInfo struct {
	ID   string `yaml:"id"             json:"id"`
	Type string `yaml:"type"           json:"type"`
	Kind Kind   `yaml:"kind"           json:"kind"`
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
}
