package platform

import "testing"

func TestParseVKey_Names(t *testing.T) {
	tests := []struct {
		input string
		want  VKey
	}{
		{"enter", VKeyEnter},
		{"Enter", VKeyEnter},
		{"F2", VKeyF2},
		{"f3", VKeyF3},
		{"F8", VKeyF8},
		{"save", VKeySave},
		{"ctrl+s", VKeySave},
		{"PageUp", VKeyPageUp},
		{"pgdn", VKeyPageDown},
		{" pagedown ", VKeyPageDown},
	}
	for _, tt := range tests {
		got, err := ParseVKey(tt.input)
		if err != nil {
			t.Errorf("ParseVKey(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseVKey(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseVKey_Numeric(t *testing.T) {
	got, err := ParseVKey("71")
	if err != nil {
		t.Fatal(err)
	}
	if got != VKey(71) {
		t.Errorf("ParseVKey(\"71\") = %d, want 71", got)
	}
}

func TestParseVKey_Invalid(t *testing.T) {
	for _, s := range []string{"", "escape", "f99x"} {
		if _, err := ParseVKey(s); err == nil {
			t.Errorf("ParseVKey(%q) should fail", s)
		}
	}
}

func TestVKey_String(t *testing.T) {
	if VKeySave.String() != "Save" {
		t.Errorf("got %q, want Save", VKeySave.String())
	}
	if VKey(5).String() != "VKey(5)" {
		t.Errorf("got %q, want VKey(5)", VKey(5).String())
	}
}
