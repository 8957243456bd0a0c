package session

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/mj1618/sapgui-cli/internal/element"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

// windowIDLength is the length of a bare window id such as "wnd[0]".
const windowIDLength = 6

var windowSegment = regexp.MustCompile(`wnd\[\d+\]`)

// WindowOf returns the id of the window that id addresses: a bare window id
// is returned as is, a longer id yields its embedded window segment, and
// wnd[0] otherwise.
func WindowOf(id string) string {
	if len(id) <= windowIDLength {
		return id
	}
	if m := windowSegment.FindString(id); m != "" {
		return m
	}
	return RootWindow
}

// allowedVKeys is the set of virtual keys SendVKey accepts.
var allowedVKeys = map[platform.VKey]bool{
	platform.VKeyEnter:    true,
	platform.VKeyF2:       true,
	platform.VKeyF3:       true,
	platform.VKeyF8:       true,
	platform.VKeySave:     true,
	platform.VKeyPageUp:   true,
	platform.VKeyPageDown: true,
}

// Controller owns an attached session. It is created by Selector.Attach and
// released with Disconnect; it is not safe for concurrent use.
type Controller struct {
	engine platform.Engine
	conn   platform.Connection
	sess   platform.Session
	title  string
	logger *log.Logger
	// handles are the elements resolved so far, released on Disconnect.
	handles []platform.Element
}

func newController(engine platform.Engine, conn platform.Connection, sess platform.Session, title string, logger *log.Logger) *Controller {
	return &Controller{engine: engine, conn: conn, sess: sess, title: title, logger: logger}
}

// Title returns the title the session was attached by.
func (c *Controller) Title() string { return c.title }

// Attached reports whether Disconnect has not been called yet.
func (c *Controller) Attached() bool { return c.sess != nil }

// Disconnect releases the session and every element resolved through it.
// Later calls return ErrDetached.
func (c *Controller) Disconnect() {
	if c.sess == nil {
		return
	}
	for i := len(c.handles) - 1; i >= 0; i-- {
		platform.Release(c.handles[i])
	}
	platform.Release(c.sess)
	platform.Release(c.conn)
	platform.Release(c.engine)
	c.logger.Debug("disconnected from session", "title", c.title, "handles", len(c.handles))
	c.handles = nil
	c.sess = nil
	c.conn = nil
	c.engine = nil
}

func (c *Controller) session() (platform.Session, error) {
	if c.sess == nil {
		return nil, ErrDetached
	}
	return c.sess, nil
}

func (c *Controller) find(id string) (platform.Element, error) {
	s, err := c.session()
	if err != nil {
		return nil, err
	}
	h, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	c.handles = append(c.handles, h)
	return h, nil
}

// Resolve returns the element addressed by id. Missing elements yield an
// error wrapping platform.ErrElementNotFound.
func (c *Controller) Resolve(id string) (element.Element, error) {
	h, err := c.find(id)
	if err != nil {
		return nil, err
	}
	return element.Wrap(id, h)
}

// Verify reports whether id resolves to an element.
func (c *Controller) Verify(id string) (bool, error) {
	_, err := c.find(id)
	if errors.Is(err, platform.ErrElementNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// StartTransaction starts the transaction with the given code.
func (c *Controller) StartTransaction(code string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	c.logger.Info("starting transaction", "code", code)
	return s.StartTransaction(code)
}

// EndTransaction ends the running transaction.
func (c *Controller) EndTransaction() error {
	s, err := c.session()
	if err != nil {
		return err
	}
	c.logger.Info("ending transaction")
	return s.EndTransaction()
}

// LockUI prevents user input in the session while a script runs.
func (c *Controller) LockUI() error {
	s, err := c.session()
	if err != nil {
		return err
	}
	return s.LockUI()
}

// UnlockUI releases LockUI.
func (c *Controller) UnlockUI() error {
	s, err := c.session()
	if err != nil {
		return err
	}
	return s.UnlockUI()
}

func (c *Controller) callWindow(window, method string, args ...any) error {
	h, err := c.find(window)
	if err != nil {
		return err
	}
	_, err = h.Call(method, args...)
	return err
}

// Maximize maximizes window.
func (c *Controller) Maximize(window string) error {
	return c.callWindow(window, "Maximize")
}

// Restore restores window to its normal size.
func (c *Controller) Restore(window string) error {
	return c.callWindow(window, "Restore")
}

// SendVKey sends a virtual key to window. Keys other than Enter, F2, F3,
// F8, Save, PageUp and PageDown fail with ErrUnsupportedKey before any host
// call is made.
func (c *Controller) SendVKey(window string, key platform.VKey) error {
	if !allowedVKeys[key] {
		return fmt.Errorf("%w: %d", ErrUnsupportedKey, int(key))
	}
	c.logger.Debug("sending virtual key", "window", window, "key", key.String())
	return c.callWindow(window, "sendVKey", int(key))
}

// Status reads the status bar of window.
func (c *Controller) Status(window string) (model.Status, error) {
	h, err := c.find(window + "/sbar")
	if err != nil {
		return model.Status{}, err
	}
	msgType, err := h.Get("MessageType")
	if err != nil {
		return model.Status{}, err
	}
	text, err := h.Get("Text")
	if err != nil {
		return model.Status{}, err
	}
	return model.Status{
		Severity: model.ParseMessageType(fmt.Sprint(msgType)),
		Text:     fmt.Sprint(text),
	}, nil
}

// Press activates the element at id (press, toggle, select or focus,
// depending on its type). check is the desired checkbox state.
func (c *Controller) Press(id string, check bool) error {
	el, err := c.Resolve(id)
	if err != nil {
		return err
	}
	return element.Act(el, element.Activate{Check: check})
}

// Insert writes value into the text field or combo box at id.
func (c *Controller) Insert(id, value string) error {
	el, err := c.Resolve(id)
	if err != nil {
		return err
	}
	return element.Act(el, element.Fill{Value: value})
}

// Text returns the Text property of the element at id.
func (c *Controller) Text(id string) (string, error) {
	h, err := c.find(id)
	if err != nil {
		return "", err
	}
	v, err := h.Get("Text")
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

// Type returns the host type tag of the element at id.
func (c *Controller) Type(id string) (string, error) {
	h, err := c.find(id)
	if err != nil {
		return "", err
	}
	return h.Type()
}

// Info returns a compact description of the element at id.
func (c *Controller) Info(id string) (model.ElementInfo, error) {
	el, err := c.Resolve(id)
	if err != nil {
		return model.ElementInfo{}, err
	}
	return element.Info(el), nil
}

// ScreenTitle returns the title of the window addressed by id.
func (c *Controller) ScreenTitle(id string) (string, error) {
	return c.Text(WindowOf(id))
}

// WindowCount returns the number of open windows in the session.
func (c *Controller) WindowCount() (int, error) {
	s, err := c.session()
	if err != nil {
		return 0, err
	}
	names, err := s.Windows()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// LastWindow returns the id of the most recently opened window.
func (c *Controller) LastWindow() (string, error) {
	s, err := c.session()
	if err != nil {
		return "", err
	}
	names, err := s.Windows()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("session has no open window")
	}
	return names[len(names)-1], nil
}

// Confirm presses the element at id, or sends key to it when id is a bare
// window id, and reports whether the screen changed: a different window
// title or a different number of windows.
func (c *Controller) Confirm(id string, key platform.VKey) (bool, error) {
	window := WindowOf(id)
	before, err := c.Text(window)
	if err != nil {
		return false, err
	}
	countBefore, err := c.WindowCount()
	if err != nil {
		return false, err
	}

	if len(id) > windowIDLength {
		err = c.Press(id, true)
	} else {
		err = c.SendVKey(window, key)
	}
	if err != nil {
		return false, err
	}

	countAfter, err := c.WindowCount()
	if err != nil {
		return false, err
	}
	if countAfter != countBefore {
		return true, nil
	}
	after, err := c.Text(window)
	if errors.Is(err, platform.ErrElementNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return after != before, nil
}

// HardCopy saves a screenshot of window to path in the given format and
// returns the file name the host wrote.
func (c *Controller) HardCopy(window, path string, format platform.ImageType) (string, error) {
	h, err := c.find(window)
	if err != nil {
		return "", err
	}
	v, err := h.Call("HardCopy", path, int(format))
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return path, nil
}
