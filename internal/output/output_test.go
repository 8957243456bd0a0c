package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mj1618/sapgui-cli/internal/model"
	"gopkg.in/yaml.v3"
)

func capture(t *testing.T, format Format, pretty bool, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldFormat, oldPretty := Stdout, OutputFormat, PrettyOutput
	Stdout, OutputFormat, PrettyOutput = &buf, format, pretty
	defer func() { Stdout, OutputFormat, PrettyOutput = oldOut, oldFormat, oldPretty }()

	if err := Print(v); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPrintYAML(t *testing.T) {
	result := SessionsResult{Sessions: []model.SessionDescriptor{
		{Title: "SAP Easy Access", ConnectionIndex: 0, SessionIndex: 1},
	}}
	out := capture(t, FormatYAML, false, result)

	if strings.Count(out, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded SessionsResult
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.Sessions) != 1 || decoded.Sessions[0].SessionIndex != 1 {
		t.Errorf("sessions: got %+v", decoded.Sessions)
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	out := capture(t, FormatJSON, false, ActionResult{OK: true, Action: "press", ID: "wnd[0]/tbar[0]/btn[11]"})

	if strings.Count(out, "\n") != 1 {
		t.Errorf("compact JSON should be a single line, got:\n%s", out)
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["changed"]; ok {
		t.Error("nil changed should be omitted")
	}
	if _, ok := m["value"]; ok {
		t.Error("empty value should be omitted")
	}
}

func TestPrintJSON_Pretty(t *testing.T) {
	out := capture(t, FormatJSON, true, GridResult{ID: "g", Columns: []string{"A"}, Rows: [][]string{{"1"}}})
	if !strings.Contains(out, "\n  \"id\"") {
		t.Errorf("pretty JSON should be indented, got:\n%s", out)
	}
}

func TestStatusResult_Flattened(t *testing.T) {
	r := StatusResult{Window: "wnd[0]", Status: model.Status{Severity: model.SeverityError, Text: "No material"}}

	var ym map[string]interface{}
	if err := yaml.Unmarshal([]byte(capture(t, FormatYAML, false, r)), &ym); err != nil {
		t.Fatal(err)
	}
	var jm map[string]interface{}
	if err := json.Unmarshal([]byte(capture(t, FormatJSON, false, r)), &jm); err != nil {
		t.Fatal(err)
	}
	for _, m := range []map[string]interface{}{ym, jm} {
		if m["severity"] != "error" || m["text"] != "No material" || m["window"] != "wnd[0]" {
			t.Errorf("unexpected status output: %v", m)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
