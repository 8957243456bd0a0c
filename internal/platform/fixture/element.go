package fixture

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"regexp"

	"github.com/mj1618/sapgui-cli/internal/platform"
	"golang.org/x/image/bmp"
)

// Element is a fixture UI element.
type Element struct {
	session *Session
	id      string
	spec    ElementSpec
	props   map[string]any

	// GridView state.
	rows     []map[string]string
	visible  int
	top      int
	current  int
	absolute []*Element
}

var windowSegment = regexp.MustCompile(`wnd\[\d+\]`)

func newElement(s *Session, id string, spec ElementSpec) *Element {
	el := &Element{session: s, id: id, spec: spec, props: make(map[string]any)}
	for k, v := range spec.Props {
		el.props[k] = v
	}
	if spec.Grid != nil {
		el.rows = spec.Grid.Rows
		el.visible = spec.Grid.VisibleRows
	}
	for i := 0; i < spec.Rows; i++ {
		row := &Element{session: s, id: fmt.Sprintf("%s/row[%d]", id, i), spec: ElementSpec{Type: "GuiTableRow"}, props: map[string]any{"Selected": false}}
		el.absolute = append(el.absolute, row)
	}
	return el
}

// Props exposes the element's properties for test assertions.
func (e *Element) Props() map[string]any { return e.props }

// Type implements platform.Element.
func (e *Element) Type() (string, error) { return e.spec.Type, nil }

// Get implements platform.Element.
func (e *Element) Get(property string) (any, error) {
	e.session.host.record(e.id, "get", property)
	if e.spec.Grid != nil {
		switch property {
		case "RowCount":
			return len(e.rows), nil
		case "VisibleRowCount":
			return e.visible, nil
		case "CurrentCellRow":
			return e.current, nil
		case "FirstVisibleRow":
			return e.top, nil
		}
	}
	switch property {
	case "SubType":
		return e.spec.SubType, nil
	case "Id":
		return e.id, nil
	case "Name":
		return e.id, nil
	case "RowCount":
		if e.spec.Type == "GuiTableControl" {
			return len(e.absolute), nil
		}
	}
	v, ok := e.props[property]
	if !ok {
		switch property {
		case "Text", "Key", "MessageType":
			return "", nil
		case "Selected":
			return false, nil
		}
		return nil, fmt.Errorf("%s: property %q not supported by %s", e.id, property, e.spec.Type)
	}
	return v, nil
}

// Release records that the caller gave the handle back.
func (e *Element) Release() {
	e.session.host.record(e.id, "release", "Release")
}

// Set implements platform.Element.
func (e *Element) Set(property string, value any) error {
	e.session.host.record(e.id, "set", property, value)
	if e.spec.Grid != nil && property == "CurrentCellRow" {
		row, err := toInt(value)
		if err != nil {
			return err
		}
		if row < 0 || row >= len(e.rows) {
			return fmt.Errorf("%s: row %d out of range", e.id, row)
		}
		e.current = row
		e.scrollTo(row)
		return nil
	}
	e.props[property] = value
	return nil
}

// scrollTo moves the visible window by the smallest amount that makes row
// visible.
func (e *Element) scrollTo(row int) {
	if row < e.top {
		e.top = row
	} else if e.visible > 0 && row >= e.top+e.visible {
		e.top = row - e.visible + 1
	}
}

// Call implements platform.Element.
func (e *Element) Call(method string, args ...any) (any, error) {
	e.session.host.record(e.id, "call", method, args...)
	switch method {
	case "SetFocus", "setFocus":
		e.session.focus = e.id
		return nil, nil
	case "Press", "press":
		if e.spec.OnPress != nil {
			e.session.apply(windowOf(e.id), *e.spec.OnPress)
		}
		return nil, nil
	case "Select", "select":
		e.props["Selected"] = true
		return nil, nil
	case "Maximize", "Restore":
		e.props["State"] = method
		return nil, nil
	case "SendVKey", "sendVKey":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: sendVKey expects 1 argument", e.id)
		}
		code, err := toInt(args[0])
		if err != nil {
			return nil, err
		}
		if effect, ok := e.spec.OnVKey[code]; ok {
			e.session.apply(e.id, effect)
		}
		return nil, nil
	case "GetCellValue":
		return e.cellValue(args)
	case "ModifyCell", "modifyCell":
		return nil, e.modifyCell(args)
	case "GetAbsoluteRow":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: GetAbsoluteRow expects 1 argument", e.id)
		}
		i, err := toInt(args[0])
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(e.absolute) {
			return nil, fmt.Errorf("%s: absolute row %d out of range", e.id, i)
		}
		return platform.Element(e.absolute[i]), nil
	case "HardCopy", "hardCopy":
		return e.hardCopy(args)
	}
	return nil, fmt.Errorf("%s: method %q not supported by %s", e.id, method, e.spec.Type)
}

func (e *Element) cellValue(args []any) (any, error) {
	if e.spec.Grid == nil {
		return nil, fmt.Errorf("%s: not a grid view", e.id)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: GetCellValue expects 2 arguments", e.id)
	}
	row, err := toInt(args[0])
	if err != nil {
		return nil, err
	}
	column := fmt.Sprint(args[1])
	if row < 0 || row >= len(e.rows) {
		return nil, fmt.Errorf("%s: row %d out of range", e.id, row)
	}
	if row < e.top || row >= e.top+e.visible {
		return nil, fmt.Errorf("%s: row %d is not visible (rows %d-%d are)", e.id, row, e.top, e.top+e.visible-1)
	}
	v, ok := e.rows[row][column]
	if !ok {
		return nil, fmt.Errorf("%s: unknown column %q", e.id, column)
	}
	return v, nil
}

func (e *Element) modifyCell(args []any) error {
	if e.spec.Grid == nil {
		return fmt.Errorf("%s: not a grid view", e.id)
	}
	if len(args) != 3 {
		return fmt.Errorf("%s: modifyCell expects 3 arguments", e.id)
	}
	row, err := toInt(args[0])
	if err != nil {
		return err
	}
	if row < 0 || row >= len(e.rows) {
		return fmt.Errorf("%s: row %d out of range", e.id, row)
	}
	if e.rows[row] == nil {
		e.rows[row] = make(map[string]string)
	}
	e.rows[row][fmt.Sprint(args[1])] = fmt.Sprint(args[2])
	return nil
}

func (e *Element) hardCopy(args []any) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%s: HardCopy expects a file name", e.id)
	}
	path := fmt.Sprint(args[0])
	w, h := 64, 48
	if v, ok := e.props["Width"]; ok {
		if n, err := toInt(v); err == nil && n > 0 {
			w = n
		}
	}
	if v, ok := e.props["Height"]; ok {
		if n, err := toInt(v); err == nil && n > 0 {
			h = n
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0xdd, G: 0xe6, B: 0xf0, A: 0xff})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := bmp.Encode(f, img); err != nil {
		return nil, err
	}
	return path, nil
}

func windowOf(id string) string {
	if m := windowSegment.FindString(id); m != "" {
		return m
	}
	return "wnd[0]"
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
