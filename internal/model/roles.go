package model

// Kind is the compact capability class of a UI element.
type Kind string

const (
	KindButton    Kind = "btn"
	KindCheckBox  Kind = "chk"
	KindRadio     Kind = "radio"
	KindTab       Kind = "tab"
	KindMenu      Kind = "menu"
	KindLabel     Kind = "label"
	KindTextField Kind = "input"
	KindComboBox  Kind = "combo"
	KindGridView  Kind = "grid"
	KindTable     Kind = "table"
	KindStatusBar Kind = "sbar"
	KindWindow    Kind = "window"
	KindOther     Kind = "other"
)

// TypeMap maps host type tags to compact kinds.
var TypeMap = map[string]Kind{
	"GuiButton":        KindButton,
	"GuiCheckBox":      KindCheckBox,
	"GuiRadioButton":   KindRadio,
	"GuiTab":           KindTab,
	"GuiMenu":          KindMenu,
	"GuiLabel":         KindLabel,
	"GuiTextField":     KindTextField,
	"GuiCTextField":    KindTextField,
	"GuiPasswordField": KindTextField,
	"GuiComboBox":      KindComboBox,
	"GuiTableControl":  KindTable,
	"GuiStatusbar":     KindStatusBar,
	"GuiMainWindow":    KindWindow,
	"GuiModalWindow":   KindWindow,
	"GuiFrameWindow":   KindWindow,
}

// ShellSubTypes maps the SubType of a GuiShell container to a kind.
// Shells host ActiveX controls; only the grid view is scriptable here.
var ShellSubTypes = map[string]Kind{
	"GridView": KindGridView,
}

// MapType converts a host type tag (and, for GuiShell, its sub type) to a
// compact kind.
func MapType(typeTag, subType string) Kind {
	if typeTag == "GuiShell" {
		if k, ok := ShellSubTypes[subType]; ok {
			return k
		}
		return KindOther
	}
	if k, ok := TypeMap[typeTag]; ok {
		return k
	}
	return KindOther
}
