// Package session discovers live scripting sessions, lets the user pick one
// and exposes the attached session through a Controller.
package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/prompt"
)

// RootWindow is the id of a session's main window.
const RootWindow = "wnd[0]"

// Selector enumerates sessions and resolves a choice to a Controller.
type Selector struct {
	connector platform.Connector
	choosers  map[prompt.Mode]prompt.Chooser
	logger    *log.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithChooser registers the chooser used for mode.
func WithChooser(mode prompt.Mode, c prompt.Chooser) Option {
	return func(s *Selector) { s.choosers[mode] = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Selector) { s.logger = l }
}

// NewSelector creates a Selector over connector.
func NewSelector(connector platform.Connector, opts ...Option) *Selector {
	s := &Selector{
		connector: connector,
		choosers:  make(map[prompt.Mode]prompt.Chooser),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover returns the non-busy sessions keyed by the text of their root
// window. A later session with a duplicate title replaces the earlier one.
func (s *Selector) Discover() (model.SessionMap, error) {
	engine, err := s.connector.Connect()
	if err != nil {
		return nil, err
	}
	defer platform.Release(engine)
	conns, err := engine.Connections()
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	for _, conn := range conns {
		defer platform.Release(conn)
	}

	found := make(model.SessionMap)
	for i, conn := range conns {
		sessions, err := conn.Sessions()
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions of connection %d: %w", i, err)
		}
		for _, sess := range sessions {
			defer platform.Release(sess)
		}
		for j, sess := range sessions {
			busy, err := sess.Busy()
			if err != nil {
				return nil, fmt.Errorf("con[%d]/ses[%d]: %w", i, j, err)
			}
			if busy {
				s.logger.Debug("skipping busy session", "connection", i, "session", j)
				continue
			}
			title, err := rootTitle(sess)
			if err != nil {
				return nil, fmt.Errorf("con[%d]/ses[%d]: %w", i, j, err)
			}
			if prev, dup := found[title]; dup {
				s.logger.Warn("duplicate session title, keeping the later session",
					"title", title,
					"dropped", fmt.Sprintf("con[%d]/ses[%d]", prev.ConnectionIndex, prev.SessionIndex))
			}
			found[title] = model.SessionDescriptor{Title: title, ConnectionIndex: i, SessionIndex: j}
		}
	}
	if len(found) == 0 {
		return nil, ErrNoAvailableSession
	}
	s.logger.Debug("discovered sessions", "count", len(found))
	return found, nil
}

// Select asks the chooser registered for mode to pick a title. It returns
// prompt.ErrCancelled when the user dismisses the prompt.
func (s *Selector) Select(sessions model.SessionMap, mode prompt.Mode) (string, error) {
	if len(sessions) == 0 {
		return "", ErrNoAvailableSession
	}
	chooser, ok := s.choosers[mode]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}
	title, ok, err := chooser.Choose("Select SAP session for scripting", sessions.Titles())
	if err != nil {
		return "", err
	}
	if !ok {
		return "", prompt.ErrCancelled
	}
	if _, known := sessions[title]; !known {
		return "", fmt.Errorf("%w: %q", ErrUnknownSession, title)
	}
	return title, nil
}

// Attach resolves d against the live tree and returns a Controller for the
// session. The session's title is read again and must still equal title.
func (s *Selector) Attach(title string, d model.SessionDescriptor) (ctl *Controller, err error) {
	engine, err := s.connector.Connect()
	if err != nil {
		return nil, err
	}
	var held []any
	defer func() {
		if err != nil {
			platform.Release(engine)
			for _, h := range held {
				platform.Release(h)
			}
		}
	}()

	conn, err := engine.Connection(d.ConnectionIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStaleSession, err)
	}
	held = append(held, conn)
	sess, err := conn.Session(d.SessionIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStaleSession, err)
	}
	held = append(held, sess)
	current, err := rootTitle(sess)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStaleSession, err)
	}
	if current != title {
		return nil, fmt.Errorf("%w: con[%d]/ses[%d] is now %q, expected %q",
			ErrStaleSession, d.ConnectionIndex, d.SessionIndex, current, title)
	}
	s.logger.Info("attached to session", "title", title,
		"connection", d.ConnectionIndex, "session", d.SessionIndex)
	return newController(engine, conn, sess, title, s.logger), nil
}

// Connect runs Discover, Select and Attach in sequence.
func (s *Selector) Connect(mode prompt.Mode) (*Controller, error) {
	sessions, err := s.Discover()
	if err != nil {
		return nil, err
	}
	title, err := s.Select(sessions, mode)
	if err != nil {
		return nil, err
	}
	return s.Attach(title, sessions[title])
}

func rootTitle(sess platform.Session) (string, error) {
	wnd, err := sess.FindByID(RootWindow)
	if err != nil {
		return "", fmt.Errorf("failed to find root window: %w", err)
	}
	defer platform.Release(wnd)
	v, err := wnd.Get("Text")
	if err != nil {
		return "", fmt.Errorf("failed to read root window text: %w", err)
	}
	return fmt.Sprint(v), nil
}
