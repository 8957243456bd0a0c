package model

import "sort"

// SessionDescriptor locates a session in the connection/session tree.
type SessionDescriptor struct {
	Title           string `yaml:"title"      json:"title"`
	ConnectionIndex int    `yaml:"connection" json:"connection"`
	SessionIndex    int    `yaml:"session"    json:"session"`
}

// SessionMap maps a session's window title to its descriptor.
type SessionMap map[string]SessionDescriptor

// Descriptors returns the descriptors ordered by connection, then session.
func (m SessionMap) Descriptors() []SessionDescriptor {
	out := make([]SessionDescriptor, 0, len(m))
	for _, d := range m {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ConnectionIndex != out[j].ConnectionIndex {
			return out[i].ConnectionIndex < out[j].ConnectionIndex
		}
		return out[i].SessionIndex < out[j].SessionIndex
	})
	return out
}

// Titles returns the session titles in discovery order.
func (m SessionMap) Titles() []string {
	ds := m.Descriptors()
	titles := make([]string, len(ds))
	for i, d := range ds {
		titles[i] = d.Title
	}
	return titles
}
