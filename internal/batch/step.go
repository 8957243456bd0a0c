// Package batch runs sequences of session operations described as YAML
// steps. The same executor backs the `do` command and the MCP tools.
package batch

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mj1618/sapgui-cli/internal/grid"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/session"
	"gopkg.in/yaml.v3"
)

// ErrUnknownAction is returned for a step whose action has no executor.
var ErrUnknownAction = errors.New("unknown step action")

// Step is one action with its parameters.
type Step struct {
	Action string
	Params map[string]interface{}
}

// Parse decodes a YAML list of single-key maps, each mapping an action to
// its parameters, e.g. `- press: { id: "wnd[0]/tbar[0]/btn[11]" }`.
func Parse(data []byte) ([]Step, error) {
	var raw []map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no steps provided, expected a YAML list of actions")
	}
	steps := make([]Step, 0, len(raw))
	for i, m := range raw {
		if len(m) != 1 {
			return nil, fmt.Errorf("step %d: expected exactly one action key, got %d", i+1, len(m))
		}
		for action, params := range m {
			if params == nil {
				params = map[string]interface{}{}
			}
			steps = append(steps, Step{Action: action, Params: params})
		}
	}
	return steps, nil
}

type executor func(ctl *session.Controller, params map[string]interface{}, window string) (interface{}, error)

var executors = map[string]executor{
	"press":            executePress,
	"insert":           executeInsert,
	"vkey":             executeVKey,
	"status":           executeStatus,
	"start":            executeStartTransaction,
	"end":              executeEndTransaction,
	"maximize":         executeMaximize,
	"restore":          executeRestore,
	"verify":           executeVerify,
	"text":             executeText,
	"type":             executeType,
	"title":            executeTitle,
	"window-count":     executeWindowCount,
	"last-window":      executeLastWindow,
	"confirm":          executeConfirm,
	"grid-scrape":      executeGridScrape,
	"grid-cell":        executeGridCell,
	"grid-modify":      executeGridModify,
	"grid-plan":        executeGridPlan,
	"table-select-row": executeTableSelectRow,
	"lock":             executeLock,
	"unlock":           executeUnlock,
	"sleep":            executeSleep,
}

// Actions returns the supported step actions in sorted order.
func Actions() []string {
	names := make([]string, 0, len(executors))
	for name := range executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs step against ctl. window is used by window-level actions
// when the step does not name one.
func Execute(ctl *session.Controller, step Step, window string) (interface{}, error) {
	fn, ok := executors[step.Action]
	if !ok {
		return nil, fmt.Errorf("%w %q, supported: %s", ErrUnknownAction, step.Action, strings.Join(Actions(), ", "))
	}
	return fn(ctl, step.Params, StringParam(step.Params, "window", window))
}

func requireID(params map[string]interface{}) (string, error) {
	id := StringParam(params, "id", "")
	if id == "" {
		return "", fmt.Errorf("id is required")
	}
	return id, nil
}

func executePress(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	if err := ctl.Press(id, BoolParam(params, "check", true)); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "press", ID: id}, nil
}

func executeInsert(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	value := StringParam(params, "value", "")
	if err := ctl.Insert(id, value); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "insert", ID: id, Value: value}, nil
}

func executeVKey(ctl *session.Controller, params map[string]interface{}, window string) (interface{}, error) {
	key, err := platform.ParseVKey(StringParam(params, "key", "enter"))
	if err != nil {
		return nil, err
	}
	if err := ctl.SendVKey(window, key); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "vkey", ID: window, Value: key.String()}, nil
}

func executeStatus(ctl *session.Controller, _ map[string]interface{}, window string) (interface{}, error) {
	st, err := ctl.Status(window)
	if err != nil {
		return nil, err
	}
	return output.StatusResult{Window: window, Status: st}, nil
}

func executeStartTransaction(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	code := StringParam(params, "code", "")
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if err := ctl.StartTransaction(code); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "start", Value: code}, nil
}

func executeEndTransaction(ctl *session.Controller, _ map[string]interface{}, _ string) (interface{}, error) {
	if err := ctl.EndTransaction(); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "end"}, nil
}

func executeMaximize(ctl *session.Controller, _ map[string]interface{}, window string) (interface{}, error) {
	if err := ctl.Maximize(window); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "maximize", ID: window}, nil
}

func executeRestore(ctl *session.Controller, _ map[string]interface{}, window string) (interface{}, error) {
	if err := ctl.Restore(window); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "restore", ID: window}, nil
}

func executeVerify(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	ok, err := ctl.Verify(id)
	if err != nil {
		return nil, err
	}
	return output.ValueResult{ID: id, Value: ok}, nil
}

func executeText(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	text, err := ctl.Text(id)
	if err != nil {
		return nil, err
	}
	return output.ValueResult{ID: id, Value: text}, nil
}

func executeType(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	info, err := ctl.Info(id)
	if err != nil {
		return nil, err
	}
	return output.ValueResult{ID: id, Value: info}, nil
}

func executeTitle(ctl *session.Controller, params map[string]interface{}, window string) (interface{}, error) {
	id := StringParam(params, "id", window)
	title, err := ctl.ScreenTitle(id)
	if err != nil {
		return nil, err
	}
	return output.ValueResult{ID: session.WindowOf(id), Value: title}, nil
}

func executeWindowCount(ctl *session.Controller, _ map[string]interface{}, _ string) (interface{}, error) {
	n, err := ctl.WindowCount()
	if err != nil {
		return nil, err
	}
	return output.ValueResult{ID: "windows", Value: n}, nil
}

func executeLastWindow(ctl *session.Controller, _ map[string]interface{}, _ string) (interface{}, error) {
	name, err := ctl.LastWindow()
	if err != nil {
		return nil, err
	}
	return output.ValueResult{ID: "last-window", Value: name}, nil
}

func executeConfirm(ctl *session.Controller, params map[string]interface{}, window string) (interface{}, error) {
	id := StringParam(params, "id", window)
	key, err := platform.ParseVKey(StringParam(params, "key", "enter"))
	if err != nil {
		return nil, err
	}
	changed, err := ctl.Confirm(id, key)
	if err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "confirm", ID: id, Changed: &changed}, nil
}

func executeGridScrape(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	columns := StringsParam(params, "columns")
	if len(columns) == 0 {
		return nil, fmt.Errorf("columns is required")
	}
	rows, err := ctl.GridScrape(id, columns)
	if err != nil {
		return nil, err
	}
	return output.GridResult{ID: id, Columns: columns, Rows: rows}, nil
}

func executeGridCell(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	column := StringParam(params, "column", "")
	if column == "" {
		return nil, fmt.Errorf("column is required")
	}
	v, err := ctl.GridCell(id, column, IntParam(params, "row", 0))
	if err != nil {
		return nil, err
	}
	return output.ValueResult{ID: id, Value: v}, nil
}

func executeGridModify(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	column := StringParam(params, "column", "")
	if column == "" {
		return nil, fmt.Errorf("column is required")
	}
	value := StringParam(params, "value", "")
	if err := ctl.GridModifyCell(id, IntParam(params, "row", 0), column, value); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "grid-modify", ID: id, Value: value}, nil
}

func executeGridPlan(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	total, visible, moves, err := ctl.GridPlan(id)
	if err != nil {
		return nil, err
	}
	if moves == nil {
		moves = []grid.Move{}
	}
	return output.GridPlanResult{ID: id, Total: total, Visible: visible, Moves: moves}, nil
}

func executeTableSelectRow(ctl *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	id, err := requireID(params)
	if err != nil {
		return nil, err
	}
	row := IntParam(params, "row", 0)
	if err := ctl.TableSelectRow(id, row); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "table-select-row", ID: id, Value: fmt.Sprint(row)}, nil
}

func executeLock(ctl *session.Controller, _ map[string]interface{}, _ string) (interface{}, error) {
	if err := ctl.LockUI(); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "lock"}, nil
}

func executeUnlock(ctl *session.Controller, _ map[string]interface{}, _ string) (interface{}, error) {
	if err := ctl.UnlockUI(); err != nil {
		return nil, err
	}
	return output.ActionResult{OK: true, Action: "unlock"}, nil
}

func executeSleep(_ *session.Controller, params map[string]interface{}, _ string) (interface{}, error) {
	ms := IntParam(params, "ms", 0)
	if ms <= 0 {
		return nil, fmt.Errorf("ms must be > 0")
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return output.ValueResult{ID: "sleep", Value: fmt.Sprintf("%dms", ms)}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FromList converts decoded JSON steps (a list of single-key objects) to
// Steps.
func FromList(list []interface{}) ([]Step, error) {
	steps := make([]Step, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok || len(m) != 1 {
			return nil, fmt.Errorf("step %d: expected an object with exactly one action key", i+1)
		}
		for action, raw := range m {
			params, _ := raw.(map[string]interface{})
			if raw != nil && params == nil {
				return nil, fmt.Errorf("step %d: parameters of %q must be an object", i+1, action)
			}
			if params == nil {
				params = map[string]interface{}{}
			}
			steps = append(steps, Step{Action: action, Params: params})
		}
	}
	return steps, nil
}
