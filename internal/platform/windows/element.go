//go:build windows

package windows

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

// elementObj wraps a GuiComponent IDispatch.
type elementObj struct {
	handle
}

func (e *elementObj) Type() (string, error) {
	v, err := oleutil.GetProperty(e.disp, "Type")
	if err != nil {
		return "", err
	}
	return v.ToString(), nil
}

func (e *elementObj) Get(property string) (any, error) {
	v, err := oleutil.GetProperty(e.disp, property)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", property, err)
	}
	return fromVariant(v), nil
}

func (e *elementObj) Set(property string, value any) error {
	v, err := oleutil.PutProperty(e.disp, property, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", property, err)
	}
	return v.Clear()
}

func (e *elementObj) Call(method string, args ...any) (any, error) {
	v, err := oleutil.CallMethod(e.disp, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return fromVariant(v), nil
}

// fromVariant converts a result to a Go value; objects become elements.
func fromVariant(v *ole.VARIANT) any {
	if d := dispatchOf(v); d != nil {
		return platform.Element(&elementObj{handle{d}})
	}
	val := v.Value()
	v.Clear()
	return val
}
