package element

import (
	"errors"
	"fmt"
)

// ErrUnsupportedElementAction is returned when an intent does not apply to
// the element's variant. No host call is made in that case.
var ErrUnsupportedElementAction = errors.New("unsupported element action")

// Intent is an action requested on an element.
type Intent interface {
	intent()
	Name() string
}

// Activate presses, selects, toggles or focuses an element depending on its
// variant. Check is the desired state of a checkbox.
type Activate struct {
	Check bool
}

// Fill writes a value: the text of a text field or the key of a combo box.
type Fill struct {
	Value string
}

func (Activate) intent()      {}
func (Fill) intent()          {}
func (Activate) Name() string { return "press" }
func (Fill) Name() string     { return "insert" }

// Act performs intent on el.
func Act(el Element, intent Intent) error {
	switch in := intent.(type) {
	case Activate:
		return activate(el, in)
	case Fill:
		return fill(el, in)
	default:
		return fmt.Errorf("%w: unknown intent %T", ErrUnsupportedElementAction, intent)
	}
}

func activate(el Element, in Activate) error {
	h := el.Handle()
	switch el.(type) {
	case Button:
		if _, err := h.Call("SetFocus"); err != nil {
			return wrapHost(el, err)
		}
		_, err := h.Call("Press")
		return wrapHost(el, err)
	case CheckBox:
		return wrapHost(el, h.Set("Selected", in.Check))
	case RadioButton:
		selected, err := h.Get("Selected")
		if err != nil {
			return wrapHost(el, err)
		}
		if isTrue(selected) {
			return nil
		}
		_, err = h.Call("Select")
		return wrapHost(el, err)
	case Tab, Menu:
		_, err := h.Call("Select")
		return wrapHost(el, err)
	case Label:
		_, err := h.Call("SetFocus")
		return wrapHost(el, err)
	case TextField, ComboBox, GridView, Table, StatusBar, Window, Unknown:
		return unsupported(el, in)
	}
	return unsupported(el, in)
}

func fill(el Element, in Fill) error {
	h := el.Handle()
	switch el.(type) {
	case TextField:
		return wrapHost(el, h.Set("Text", in.Value))
	case ComboBox:
		return wrapHost(el, h.Set("Key", in.Value))
	case Button, CheckBox, RadioButton, Tab, Menu, Label, GridView, Table, StatusBar, Window, Unknown:
		return unsupported(el, in)
	}
	return unsupported(el, in)
}

func unsupported(el Element, in Intent) error {
	return fmt.Errorf("%w: cannot %s %s (%s)", ErrUnsupportedElementAction, in.Name(), el.ID(), el.TypeTag())
}

func wrapHost(el Element, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", el.ID(), err)
}

// isTrue interprets a host boolean, which COM reports as a bool and some
// hosts as -1/0.
func isTrue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case int32:
		return b != 0
	case int64:
		return b != 0
	default:
		return false
	}
}
