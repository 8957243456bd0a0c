package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// VKey is a virtual key code understood by the host's sendVKey.
type VKey int

const (
	VKeyEnter    VKey = 0
	VKeyF2       VKey = 2
	VKeyF3       VKey = 3
	VKeyF8       VKey = 8
	VKeySave     VKey = 11
	VKeyPageUp   VKey = 81
	VKeyPageDown VKey = 82
)

var vkeyNames = map[string]VKey{
	"enter":    VKeyEnter,
	"f2":       VKeyF2,
	"f3":       VKeyF3,
	"f8":       VKeyF8,
	"save":     VKeySave,
	"ctrl+s":   VKeySave,
	"pageup":   VKeyPageUp,
	"pgup":     VKeyPageUp,
	"pagedown": VKeyPageDown,
	"pgdn":     VKeyPageDown,
}

// ParseVKey converts a key name ("enter", "f3", "pagedown") or a numeric
// code ("11") to a VKey. It does not check the code against any allow-list.
func ParseVKey(s string) (VKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := vkeyNames[s]; ok {
		return k, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown key: %q (expected enter, f2, f3, f8, save, pageup, pagedown or a code)", s)
	}
	return VKey(n), nil
}

func (k VKey) String() string {
	switch k {
	case VKeyEnter:
		return "Enter"
	case VKeyF2:
		return "F2"
	case VKeyF3:
		return "F3"
	case VKeyF8:
		return "F8"
	case VKeySave:
		return "Save"
	case VKeyPageUp:
		return "PageUp"
	case VKeyPageDown:
		return "PageDown"
	default:
		return fmt.Sprintf("VKey(%d)", int(k))
	}
}

// ImageType is the file format argument of a window HardCopy call.
type ImageType int

const (
	ImageBMP ImageType = iota
	ImageJPG
	ImagePNG
	ImageGIF
)
