package session

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mj1618/sapgui-cli/internal/element"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/platform/fixture"
	"github.com/mj1618/sapgui-cli/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gridID  = "wnd[0]/usr/cntlGRID/shellcont/shell"
	tableID = "wnd[0]/usr/tblSAPLTABLE"
	saveBtn = "wnd[0]/tbar[0]/btn[11]"
)

func gridRows(n int) []map[string]string {
	rows := make([]map[string]string, n)
	for i := range rows {
		rows[i] = map[string]string{"MATNR": "M" + strconv.Itoa(i), "MAKTX": "desc " + strconv.Itoa(i)}
	}
	return rows
}

func attach(t *testing.T, spec fixture.SessionSpec) (*Controller, *fixture.Host) {
	t.Helper()
	h := hostWith(spec)
	ctl, err := NewSelector(h, WithChooser(prompt.ModeCLI, prompt.Static{})).Connect(prompt.ModeCLI)
	require.NoError(t, err)
	h.ResetCalls()
	return ctl, h
}

func TestWindowOf(t *testing.T) {
	assert.Equal(t, "wnd[1]", WindowOf("wnd[1]"))
	assert.Equal(t, "wnd[1]", WindowOf("wnd[1]/usr/btnOK"))
	assert.Equal(t, "wnd[0]", WindowOf("/app/con[0]/ses[0]/usr/x"))
	assert.Equal(t, "wnd[12]", WindowOf("wnd[12]"))
	assert.Equal(t, "wnd[12]", WindowOf("/app/con[0]/ses[0]/wnd[12]/usr/btnOK"))
	assert.Equal(t, "", WindowOf(""))
}

func TestSendVKey_UnsupportedKeyMakesNoHostCall(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{Title: "A"})

	err := ctl.SendVKey("wnd[0]", platform.VKey(5))
	assert.ErrorIs(t, err, ErrUnsupportedKey)
	assert.Empty(t, h.Calls())
}

func TestSendVKey_Allowed(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{Title: "A"})

	for _, k := range []platform.VKey{0, 2, 3, 8, 11, 81, 82} {
		require.NoError(t, ctl.SendVKey("wnd[0]", k))
	}
	assert.Len(t, h.CallsTo("sendVKey"), 7)
}

func TestTransactions(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{Title: "A"})
	s := h.FixtureSession(0, 0)

	require.NoError(t, ctl.StartTransaction("MM03"))
	assert.Equal(t, "MM03", s.Transaction())
	require.NoError(t, ctl.EndTransaction())
	assert.Equal(t, "", s.Transaction())
}

func TestLockUnlock(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{Title: "A"})
	require.NoError(t, ctl.LockUI())
	assert.True(t, h.FixtureSession(0, 0).Locked())
	require.NoError(t, ctl.UnlockUI())
	assert.False(t, h.FixtureSession(0, 0).Locked())
}

func TestMaximizeRestore(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{Title: "A"})
	wnd := h.FixtureSession(0, 0).Element("wnd[0]")

	require.NoError(t, ctl.Maximize("wnd[0]"))
	assert.Equal(t, "Maximize", wnd.Props()["State"])
	require.NoError(t, ctl.Restore("wnd[0]"))
	assert.Equal(t, "Restore", wnd.Props()["State"])

	assert.ErrorIs(t, ctl.Maximize("wnd[3]"), platform.ErrElementNotFound)
}

func TestStatus(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{
		Title: "A",
		Elements: map[string]fixture.ElementSpec{
			saveBtn: {Type: "GuiButton", OnPress: &fixture.Effect{Status: "Material saved", MessageType: "S"}},
		},
	})

	st, err := ctl.Status("wnd[0]")
	require.NoError(t, err)
	assert.Equal(t, model.Status{Severity: model.SeverityNone, Text: ""}, st)

	require.NoError(t, ctl.Press(saveBtn, true))
	st, err = ctl.Status("wnd[0]")
	require.NoError(t, err)
	assert.Equal(t, model.Status{Severity: model.SeveritySuccess, Text: "Material saved"}, st)
	assert.Len(t, h.CallsTo("Press"), 1)
}

func TestVerifyAndResolve(t *testing.T) {
	ctl, _ := attach(t, fixture.SessionSpec{
		Title:    "A",
		Elements: map[string]fixture.ElementSpec{"wnd[0]/usr/txtF": {Type: "GuiTextField"}},
	})

	ok, err := ctl.Verify("wnd[0]/usr/txtF")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ctl.Verify("wnd[0]/usr/missing")
	require.NoError(t, err)
	assert.False(t, ok)

	el, err := ctl.Resolve("wnd[0]/usr/txtF")
	require.NoError(t, err)
	assert.IsType(t, element.TextField{}, el)

	_, err = ctl.Resolve("wnd[0]/usr/missing")
	assert.ErrorIs(t, err, platform.ErrElementNotFound)
}

func TestInsertAndText(t *testing.T) {
	ctl, _ := attach(t, fixture.SessionSpec{
		Title:    "A",
		Elements: map[string]fixture.ElementSpec{"wnd[0]/usr/txtF": {Type: "GuiTextField"}},
	})

	require.NoError(t, ctl.Insert("wnd[0]/usr/txtF", "hello"))
	got, err := ctl.Text("wnd[0]/usr/txtF")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	typ, err := ctl.Type("wnd[0]/usr/txtF")
	require.NoError(t, err)
	assert.Equal(t, "GuiTextField", typ)

	title, err := ctl.ScreenTitle("wnd[0]/usr/txtF")
	require.NoError(t, err)
	assert.Equal(t, "A", title)
}

func TestWindowCountAndLast(t *testing.T) {
	ctl, _ := attach(t, fixture.SessionSpec{
		Title: "A",
		Elements: map[string]fixture.ElementSpec{
			"wnd[1]": {Type: "GuiModalWindow", Props: map[string]any{"Text": "Popup"}},
		},
	})

	n, err := ctl.WindowCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	last, err := ctl.LastWindow()
	require.NoError(t, err)
	assert.Equal(t, "wnd[1]", last)
}

func TestConfirm(t *testing.T) {
	ctl, _ := attach(t, fixture.SessionSpec{
		Title: "A",
		Elements: map[string]fixture.ElementSpec{
			"wnd[0]":          {Type: "GuiMainWindow", OnVKey: map[int]fixture.Effect{0: {Title: "Next screen"}}},
			"wnd[0]/usr/btnN": {Type: "GuiButton"},
			"wnd[0]/usr/btnP": {Type: "GuiButton", OnPress: &fixture.Effect{Open: "Confirm"}},
		},
	})

	changed, err := ctl.Confirm("wnd[0]/usr/btnN", platform.VKeyEnter)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = ctl.Confirm("wnd[0]/usr/btnP", platform.VKeyEnter)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = ctl.Confirm("wnd[0]", platform.VKeyEnter)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestGridScrape_ThroughVirtualizedHost(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{
		Title: "A",
		Elements: map[string]fixture.ElementSpec{
			gridID: {Type: "GuiShell", SubType: "GridView", Grid: &fixture.GridSpec{VisibleRows: 23, Rows: gridRows(50)}},
		},
	})

	rows, err := ctl.GridScrape(gridID, []string{"MATNR", "MAKTX"})
	require.NoError(t, err)
	require.Len(t, rows, 50)
	for i, r := range rows {
		assert.Equal(t, []string{"M" + strconv.Itoa(i), "desc " + strconv.Itoa(i)}, r)
	}

	var cursors []any
	for _, c := range h.CallsTo("CurrentCellRow") {
		if c.Op == "set" {
			cursors = append(cursors, c.Args[0])
		}
	}
	assert.Equal(t, []any{22, 45, 49}, cursors)
}

func TestGridScrape_NotAGrid(t *testing.T) {
	ctl, _ := attach(t, fixture.SessionSpec{
		Title:    "A",
		Elements: map[string]fixture.ElementSpec{"wnd[0]/usr/txtF": {Type: "GuiTextField"}},
	})
	_, err := ctl.GridScrape("wnd[0]/usr/txtF", []string{"A"})
	assert.ErrorIs(t, err, element.ErrUnsupportedElementAction)
}

func TestGridPlanCellModify(t *testing.T) {
	ctl, _ := attach(t, fixture.SessionSpec{
		Title: "A",
		Elements: map[string]fixture.ElementSpec{
			gridID: {Type: "GuiShell", SubType: "GridView", Grid: &fixture.GridSpec{VisibleRows: 3, Rows: gridRows(5)}},
		},
	})

	total, visible, moves, err := ctl.GridPlan(gridID)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, 3, visible)
	assert.NotEmpty(t, moves)

	require.NoError(t, ctl.GridModifyCell(gridID, 1, "MATNR", "X1"))
	got, err := ctl.GridCell(gridID, "MATNR", 1)
	require.NoError(t, err)
	assert.Equal(t, "X1", got)

	_, err = ctl.GridCell(gridID, "MATNR", 4)
	assert.Error(t, err)
}

func TestTableSelectRow(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{
		Title:    "A",
		Elements: map[string]fixture.ElementSpec{tableID: {Type: "GuiTableControl", Rows: 4}},
	})

	require.NoError(t, ctl.TableSelectRow(tableID, 2))
	calls := h.CallsTo("Selected")
	require.Len(t, calls, 1)
	assert.Equal(t, tableID+"/row[2]", calls[0].Path)
	assert.Equal(t, []any{true}, calls[0].Args)

	assert.Error(t, ctl.TableSelectRow(tableID, 9))
}

func TestHardCopy(t *testing.T) {
	ctl, _ := attach(t, fixture.SessionSpec{Title: "A"})
	path := filepath.Join(t.TempDir(), "shot.bmp")

	got, err := ctl.HardCopy("wnd[0]", path, platform.ImageBMP)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestDisconnect_ReleasesResolvedElements(t *testing.T) {
	ctl, h := attach(t, fixture.SessionSpec{Title: "A", Elements: map[string]fixture.ElementSpec{
		"wnd[0]/usr/txtA": {Type: "GuiTextField"},
	}})

	_, err := ctl.Verify("wnd[0]/usr/txtA")
	require.NoError(t, err)
	_, err = ctl.Text("wnd[0]")
	require.NoError(t, err)
	_, err = ctl.Verify("wnd[0]/usr/missing")
	require.NoError(t, err)
	assert.Empty(t, h.CallsTo("Release"))

	ctl.Disconnect()
	released := h.CallsTo("Release")
	require.Len(t, released, 2)
	assert.Equal(t, "wnd[0]", released[0].Path)
	assert.Equal(t, "wnd[0]/usr/txtA", released[1].Path)

	ctl.Disconnect()
	assert.Len(t, h.CallsTo("Release"), 2)
}

func TestDisconnect(t *testing.T) {
	ctl, _ := attach(t, fixture.SessionSpec{Title: "A"})
	ctl.Disconnect()
	assert.False(t, ctl.Attached())

	assert.ErrorIs(t, ctl.StartTransaction("MM03"), ErrDetached)
	_, err := ctl.Verify("wnd[0]")
	assert.ErrorIs(t, err, ErrDetached)
	_, err = ctl.Status("wnd[0]")
	assert.ErrorIs(t, err, ErrDetached)
}
