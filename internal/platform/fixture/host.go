package fixture

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/platform"
)

// Call records one host-side interaction.
type Call struct {
	Path string
	Op   string // "get", "set" or "call"
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s %s.%s%v", c.Op, c.Path, c.Name, c.Args)
}

// Host is an in-memory scripting tree. It implements platform.Connector.
type Host struct {
	running     bool
	connections []*Connection
	calls       []Call
}

var windowIDPattern = regexp.MustCompile(`^wnd\[\d+\]$`)

// New builds a host from a spec.
func New(spec Spec) *Host {
	h := &Host{running: spec.Running == nil || *spec.Running}
	for _, cs := range spec.Connections {
		conn := &Connection{host: h}
		for _, ss := range cs.Sessions {
			conn.sessions = append(conn.sessions, newSession(h, ss))
		}
		h.connections = append(h.connections, conn)
	}
	return h
}

// NewFromFile loads a YAML fixture and builds a host from it.
func NewFromFile(path string) (*Host, error) {
	spec, err := Load(path)
	if err != nil {
		return nil, err
	}
	return New(spec), nil
}

// Connect implements platform.Connector.
func (h *Host) Connect() (platform.Engine, error) {
	if !h.running {
		return nil, platform.ErrAutomationUnavailable
	}
	return h, nil
}

// SetRunning toggles whether Connect succeeds.
func (h *Host) SetRunning(running bool) { h.running = running }

// Calls returns every recorded interaction in order.
func (h *Host) Calls() []Call { return h.calls }

// CallsTo returns the recorded interactions with the given name.
func (h *Host) CallsTo(name string) []Call {
	var out []Call
	for _, c := range h.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls clears the call log.
func (h *Host) ResetCalls() { h.calls = nil }

func (h *Host) record(path, op, name string, args ...any) {
	h.calls = append(h.calls, Call{Path: path, Op: op, Name: name, Args: args})
}

// Connections implements platform.Engine.
func (h *Host) Connections() ([]platform.Connection, error) {
	out := make([]platform.Connection, len(h.connections))
	for i, c := range h.connections {
		out[i] = c
	}
	return out, nil
}

// Connection implements platform.Engine.
func (h *Host) Connection(index int) (platform.Connection, error) {
	if index < 0 || index >= len(h.connections) {
		return nil, fmt.Errorf("connection index %d out of range", index)
	}
	return h.connections[index], nil
}

// FixtureSession returns the fixture session at the given indices for test
// manipulation, or nil when it does not exist.
func (h *Host) FixtureSession(conn, sess int) *Session {
	if conn < 0 || conn >= len(h.connections) {
		return nil
	}
	c := h.connections[conn]
	if sess < 0 || sess >= len(c.sessions) {
		return nil
	}
	return c.sessions[sess]
}

// RemoveSession closes a session, shifting later sessions down by one.
func (h *Host) RemoveSession(conn, sess int) {
	if h.FixtureSession(conn, sess) == nil {
		return
	}
	c := h.connections[conn]
	c.sessions = append(c.sessions[:sess], c.sessions[sess+1:]...)
}

// Connection is a fixture connection.
type Connection struct {
	host     *Host
	sessions []*Session
}

// Sessions implements platform.Connection.
func (c *Connection) Sessions() ([]platform.Session, error) {
	out := make([]platform.Session, len(c.sessions))
	for i, s := range c.sessions {
		out[i] = s
	}
	return out, nil
}

// Session implements platform.Connection.
func (c *Connection) Session(index int) (platform.Session, error) {
	if index < 0 || index >= len(c.sessions) {
		return nil, fmt.Errorf("session index %d out of range", index)
	}
	return c.sessions[index], nil
}

// Session is a fixture session.
type Session struct {
	host        *Host
	busy        bool
	locked      bool
	transaction string
	focus       string
	elements    map[string]*Element
}

func newSession(h *Host, spec SessionSpec) *Session {
	s := &Session{host: h, busy: spec.Busy, elements: make(map[string]*Element)}
	for id, es := range spec.Elements {
		s.elements[id] = newElement(s, id, es)
	}
	if _, ok := s.elements["wnd[0]"]; !ok {
		s.elements["wnd[0]"] = newElement(s, "wnd[0]", ElementSpec{Type: "GuiMainWindow"})
	}
	if spec.Title != "" {
		s.elements["wnd[0]"].props["Text"] = spec.Title
	}
	if _, ok := s.elements["wnd[0]/sbar"]; !ok {
		s.elements["wnd[0]/sbar"] = newElement(s, "wnd[0]/sbar", ElementSpec{Type: "GuiStatusbar"})
	}
	return s
}

// SetTitle changes the text of wnd[0].
func (s *Session) SetTitle(title string) { s.elements["wnd[0]"].props["Text"] = title }

// Transaction returns the code of the running transaction ("" when ended).
func (s *Session) Transaction() string { return s.transaction }

// Locked reports whether the session UI is locked.
func (s *Session) Locked() bool { return s.locked }

// Focus returns the id of the element that last received focus.
func (s *Session) Focus() string { return s.focus }

// Element returns the fixture element with the given id, or nil.
func (s *Session) Element(id string) *Element { return s.elements[id] }

// Busy implements platform.Session.
func (s *Session) Busy() (bool, error) { return s.busy, nil }

// FindByID implements platform.Session.
func (s *Session) FindByID(id string) (platform.Element, error) {
	el, ok := s.elements[normalizeID(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", platform.ErrElementNotFound, id)
	}
	return el, nil
}

// StartTransaction implements platform.Session.
func (s *Session) StartTransaction(code string) error {
	s.host.record("session", "call", "StartTransaction", code)
	s.transaction = code
	return nil
}

// EndTransaction implements platform.Session.
func (s *Session) EndTransaction() error {
	s.host.record("session", "call", "EndTransaction")
	s.transaction = ""
	return nil
}

// LockUI implements platform.Session.
func (s *Session) LockUI() error {
	s.host.record("session", "call", "LockSessionUI")
	s.locked = true
	return nil
}

// UnlockUI implements platform.Session.
func (s *Session) UnlockUI() error {
	s.host.record("session", "call", "UnlockSessionUI")
	s.locked = false
	return nil
}

// Windows implements platform.Session.
func (s *Session) Windows() ([]string, error) {
	var names []string
	for id := range s.elements {
		if windowIDPattern.MatchString(id) {
			names = append(names, id)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Session) apply(windowID string, e Effect) {
	win := s.elements[windowID]
	if win == nil {
		return
	}
	if e.Title != "" {
		win.props["Text"] = e.Title
	}
	if e.Status != "" || e.MessageType != "" {
		if sbar := s.elements[windowID+"/sbar"]; sbar != nil {
			sbar.props["Text"] = e.Status
			sbar.props["MessageType"] = e.MessageType
		}
	}
	if e.Open != "" {
		names, _ := s.Windows()
		id := fmt.Sprintf("wnd[%d]", len(names))
		s.elements[id] = newElement(s, id, ElementSpec{Type: "GuiModalWindow", Props: map[string]any{"Text": e.Open}})
	}
	if e.Close && windowID != "wnd[0]" {
		for id := range s.elements {
			if id == windowID || strings.HasPrefix(id, windowID+"/") {
				delete(s.elements, id)
			}
		}
	}
}

// normalizeID strips an absolute "/app/con[N]/ses[N]/" prefix.
func normalizeID(id string) string {
	if i := strings.Index(id, "wnd["); i > 0 && strings.HasPrefix(id, "/app/") {
		return id[i:]
	}
	return id
}
