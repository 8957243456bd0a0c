//go:build windows

package windows

import (
	"errors"
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

// sFalse is returned by CoInitializeEx when COM is already initialised on
// the calling thread.
const sFalse = 1

// Connector implements platform.Connector for SAP GUI for Windows.
type Connector struct{}

// NewConnector creates a new COM connector.
func NewConnector() *Connector {
	return &Connector{}
}

func initialize() error {
	err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	if err == nil {
		return nil
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) && oleErr.Code() == sFalse {
		return nil
	}
	return err
}

// Connect looks up the "SAPGUI" ROT entry and returns its scripting engine.
func (c *Connector) Connect() (platform.Engine, error) {
	if err := initialize(); err != nil {
		return nil, fmt.Errorf("COM initialisation failed: %w", err)
	}

	unknown, err := oleutil.CreateObject("SapROTWr.SapROTWrapper")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", platform.ErrAutomationUnavailable, err)
	}
	defer unknown.Release()

	rot, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", platform.ErrAutomationUnavailable, err)
	}
	defer rot.Release()

	entry, err := oleutil.CallMethod(rot, "GetROTEntry", "SAPGUI")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", platform.ErrAutomationUnavailable, err)
	}
	sapgui := dispatchOf(entry)
	if sapgui == nil {
		return nil, platform.ErrAutomationUnavailable
	}
	defer sapgui.Release()

	engine, err := oleutil.CallMethod(sapgui, "GetScriptingEngine")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", platform.ErrAutomationUnavailable, err)
	}
	app := dispatchOf(engine)
	if app == nil {
		return nil, platform.ErrAutomationUnavailable
	}
	return &engineObj{handle{app}}, nil
}

// dispatchOf returns the IDispatch held by v, or nil when v is empty or
// Nothing.
func dispatchOf(v *ole.VARIANT) *ole.IDispatch {
	if v == nil || v.VT != ole.VT_DISPATCH {
		return nil
	}
	return v.ToIDispatch()
}

func release(items []*ole.IDispatch) {
	for _, d := range items {
		d.Release()
	}
}

// children returns the items of a GuiComponentCollection property.
func children(parent *ole.IDispatch) ([]*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(parent, "Children")
	if err != nil {
		return nil, err
	}
	coll := dispatchOf(v)
	if coll == nil {
		return nil, nil
	}
	defer coll.Release()
	countV, err := oleutil.GetProperty(coll, "Count")
	if err != nil {
		return nil, err
	}
	count := int(countV.Val)
	out := make([]*ole.IDispatch, 0, count)
	for i := 0; i < count; i++ {
		item, err := oleutil.CallMethod(coll, "ElementAt", i)
		if err != nil {
			release(out)
			return nil, err
		}
		if d := dispatchOf(item); d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func child(parent *ole.IDispatch, index int) (*ole.IDispatch, error) {
	items, err := children(parent)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		release(items)
		return nil, fmt.Errorf("child index %d out of range (%d children)", index, len(items))
	}
	for i, d := range items {
		if i != index {
			d.Release()
		}
	}
	return items[index], nil
}

// handle is the reference-counted IDispatch behind every tree object.
type handle struct {
	disp *ole.IDispatch
}

// Release drops the reference. Only the owner calls it, once.
func (h *handle) Release() {
	if h.disp != nil {
		h.disp.Release()
		h.disp = nil
	}
}

type engineObj struct {
	handle
}

func (e *engineObj) Connections() ([]platform.Connection, error) {
	items, err := children(e.disp)
	if err != nil {
		return nil, err
	}
	out := make([]platform.Connection, len(items))
	for i, d := range items {
		out[i] = &connectionObj{handle{d}}
	}
	return out, nil
}

func (e *engineObj) Connection(index int) (platform.Connection, error) {
	d, err := child(e.disp, index)
	if err != nil {
		return nil, err
	}
	return &connectionObj{handle{d}}, nil
}

type connectionObj struct {
	handle
}

func (c *connectionObj) Sessions() ([]platform.Session, error) {
	items, err := children(c.disp)
	if err != nil {
		return nil, err
	}
	out := make([]platform.Session, len(items))
	for i, d := range items {
		out[i] = &sessionObj{handle{d}}
	}
	return out, nil
}

func (c *connectionObj) Session(index int) (platform.Session, error) {
	d, err := child(c.disp, index)
	if err != nil {
		return nil, err
	}
	return &sessionObj{handle{d}}, nil
}

type sessionObj struct {
	handle
}

func (s *sessionObj) Busy() (bool, error) {
	v, err := oleutil.GetProperty(s.disp, "Busy")
	if err != nil {
		return false, err
	}
	b, _ := v.Value().(bool)
	return b, nil
}

func (s *sessionObj) FindByID(id string) (platform.Element, error) {
	// The second argument makes a missing id return Nothing instead of
	// raising, so a call error means the session itself is unusable.
	v, err := oleutil.CallMethod(s.disp, "FindById", id, false)
	if err != nil {
		return nil, fmt.Errorf("FindById %s: %w", id, err)
	}
	d := dispatchOf(v)
	if d == nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrElementNotFound, id)
	}
	return &elementObj{handle{d}}, nil
}

func (s *sessionObj) call(method string, args ...interface{}) error {
	v, err := oleutil.CallMethod(s.disp, method, args...)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}
	return v.Clear()
}

func (s *sessionObj) StartTransaction(code string) error {
	return s.call("StartTransaction", code)
}

func (s *sessionObj) EndTransaction() error {
	return s.call("EndTransaction")
}

func (s *sessionObj) LockUI() error {
	return s.call("LockSessionUI")
}

func (s *sessionObj) UnlockUI() error {
	return s.call("UnlockSessionUI")
}

func (s *sessionObj) Windows() ([]string, error) {
	items, err := children(s.disp)
	if err != nil {
		return nil, err
	}
	defer release(items)
	names := make([]string, 0, len(items))
	for _, d := range items {
		v, err := oleutil.GetProperty(d, "Name")
		if err != nil {
			return nil, err
		}
		names = append(names, v.ToString())
	}
	return names, nil
}
