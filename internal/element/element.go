// Package element wraps host UI elements into a closed set of typed
// variants and dispatches press/select and fill intents over them.
package element

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

// Element is one of the variants declared in this package. The unexported
// method keeps the set closed.
type Element interface {
	ID() string
	TypeTag() string
	Kind() model.Kind
	Handle() platform.Element
	sealed()
}

type base struct {
	id      string
	typeTag string
	handle  platform.Element
}

func (b base) ID() string               { return b.id }
func (b base) TypeTag() string          { return b.typeTag }
func (b base) Handle() platform.Element { return b.handle }
func (base) sealed()                    {}

type (
	Button      struct{ base }
	CheckBox    struct{ base }
	RadioButton struct{ base }
	Tab         struct{ base }
	Menu        struct{ base }
	Label       struct{ base }
	TextField   struct{ base }
	ComboBox    struct{ base }
	GridView    struct{ base }
	Table       struct{ base }
	StatusBar   struct{ base }
	Window      struct{ base }
	Unknown     struct{ base }
)

func (Button) Kind() model.Kind      { return model.KindButton }
func (CheckBox) Kind() model.Kind    { return model.KindCheckBox }
func (RadioButton) Kind() model.Kind { return model.KindRadio }
func (Tab) Kind() model.Kind         { return model.KindTab }
func (Menu) Kind() model.Kind        { return model.KindMenu }
func (Label) Kind() model.Kind       { return model.KindLabel }
func (TextField) Kind() model.Kind   { return model.KindTextField }
func (ComboBox) Kind() model.Kind    { return model.KindComboBox }
func (GridView) Kind() model.Kind    { return model.KindGridView }
func (Table) Kind() model.Kind       { return model.KindTable }
func (StatusBar) Kind() model.Kind   { return model.KindStatusBar }
func (Window) Kind() model.Kind      { return model.KindWindow }
func (Unknown) Kind() model.Kind     { return model.KindOther }

// Wrap reads the host type tag of h and returns the matching variant.
func Wrap(id string, h platform.Element) (Element, error) {
	tag, err := h.Type()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read type: %w", id, err)
	}
	var sub string
	if tag == "GuiShell" {
		v, err := h.Get("SubType")
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read sub type: %w", id, err)
		}
		sub = fmt.Sprint(v)
	}
	b := base{id: id, typeTag: tag, handle: h}
	switch model.MapType(tag, sub) {
	case model.KindButton:
		return Button{b}, nil
	case model.KindCheckBox:
		return CheckBox{b}, nil
	case model.KindRadio:
		return RadioButton{b}, nil
	case model.KindTab:
		return Tab{b}, nil
	case model.KindMenu:
		return Menu{b}, nil
	case model.KindLabel:
		return Label{b}, nil
	case model.KindTextField:
		return TextField{b}, nil
	case model.KindComboBox:
		return ComboBox{b}, nil
	case model.KindGridView:
		return GridView{b}, nil
	case model.KindTable:
		return Table{b}, nil
	case model.KindStatusBar:
		return StatusBar{b}, nil
	case model.KindWindow:
		return Window{b}, nil
	default:
		return Unknown{b}, nil
	}
}

// Info returns a compact description of el, including its text when the
// host exposes one.
func Info(el Element) model.ElementInfo {
	info := model.ElementInfo{ID: el.ID(), Type: el.TypeTag(), Kind: el.Kind()}
	if v, err := el.Handle().Get("Text"); err == nil && v != nil {
		info.Text = fmt.Sprint(v)
	}
	return info
}
