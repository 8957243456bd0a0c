package batch

import (
	"errors"
	"testing"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/platform/fixture"
	"github.com/mj1618/sapgui-cli/internal/prompt"
	"github.com/mj1618/sapgui-cli/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const hostYAML = `
connections:
  - sessions:
      - title: "SAP Easy Access"
        elements:
          "wnd[0]/usr/txtMATNR":
            type: GuiTextField
          "wnd[0]/tbar[0]/btn[11]":
            type: GuiButton
            on_press: { status: "Saved", message_type: "S" }
          "wnd[0]/usr/cntlGRID/shellcont/shell":
            type: GuiShell
            subtype: GridView
            grid:
              visible_rows: 2
              rows:
                - {MATNR: "1"}
                - {MATNR: "2"}
                - {MATNR: "3"}
`

func attach(t *testing.T) (*session.Controller, *fixture.Host) {
	t.Helper()
	spec, err := fixture.Parse([]byte(hostYAML))
	require.NoError(t, err)
	h := fixture.New(spec)
	ctl, err := session.NewSelector(h, session.WithChooser(prompt.ModeCLI, prompt.Static{})).Connect(prompt.ModeCLI)
	require.NoError(t, err)
	return ctl, h
}

func TestParse(t *testing.T) {
	steps, err := Parse([]byte(`
- start: { code: MM03 }
- insert: { id: "wnd[0]/usr/txtMATNR", value: 4711 }
- end:
`))
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "insert", steps[1].Action)
	assert.Equal(t, "4711", StringParam(steps[1].Params, "value", ""))
	assert.NotNil(t, steps[2].Params)

	_, err = Parse([]byte(`- {press: {id: a}, insert: {id: b}}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[]`))
	assert.Error(t, err)
}

func TestExecute_UnknownAction(t *testing.T) {
	ctl, _ := attach(t)
	_, err := Execute(ctl, Step{Action: "click"}, "wnd[0]")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestRunner_AllSucceed(t *testing.T) {
	ctl, h := attach(t)
	steps, err := Parse([]byte(`
- start: { code: MM03 }
- insert: { id: "wnd[0]/usr/txtMATNR", value: "4711" }
- press: { id: "wnd[0]/tbar[0]/btn[11]" }
- status: {}
- grid-scrape: { id: "wnd[0]/usr/cntlGRID/shellcont/shell", columns: [MATNR] }
`))
	require.NoError(t, err)

	res, err := (&Runner{StopOnError: true}).Run(ctl, steps)
	require.NoError(t, err)
	assert.True(t, res.OK)
	require.Len(t, res.Steps, 5)
	assert.Equal(t, "MM03", h.FixtureSession(0, 0).Transaction())

	st := res.Steps[3].Result.(output.StatusResult)
	assert.Equal(t, "Saved", st.Text)
	grid := res.Steps[4].Result.(output.GridResult)
	assert.Equal(t, [][]string{{"1"}, {"2"}, {"3"}}, grid.Rows)
}

func TestRunner_StopOnError(t *testing.T) {
	ctl, _ := attach(t)
	steps := []Step{
		{Action: "press", Params: map[string]interface{}{"id": "wnd[0]/usr/missing"}},
		{Action: "lock", Params: map[string]interface{}{}},
	}

	res, err := (&Runner{StopOnError: true}).Run(ctl, steps)
	require.NoError(t, err)
	assert.False(t, res.OK)
	require.Len(t, res.Steps, 1)
	assert.Equal(t, 1, res.Steps[0].Attempts)

	res, err = (&Runner{}).Run(ctl, steps)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Len(t, res.Steps, 2)
	assert.True(t, res.Steps[1].OK)
}

func TestRunner_RepeatThenProceed(t *testing.T) {
	ctl, _ := attach(t)
	p := &prompt.MockRepeatPrompt{}
	p.On("Ask", "Step 1 (press) failed", mock.Anything).Return(prompt.Repeat, nil).Once()
	p.On("Ask", "Step 1 (press) failed", mock.Anything).Return(prompt.Proceed, nil).Once()

	steps := []Step{
		{Action: "press", Params: map[string]interface{}{"id": "wnd[0]/usr/missing"}},
		{Action: "unlock", Params: map[string]interface{}{}},
	}
	res, err := (&Runner{Prompt: p, StopOnError: true}).Run(ctl, steps)
	require.NoError(t, err)
	assert.False(t, res.OK)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, 2, res.Steps[0].Attempts)
	assert.True(t, res.Steps[1].OK)
	p.AssertExpectations(t)
}

func TestRunner_PromptCancelled(t *testing.T) {
	ctl, _ := attach(t)
	p := &prompt.MockRepeatPrompt{}
	p.On("Ask", mock.Anything, mock.Anything).Return(prompt.Proceed, prompt.ErrCancelled)

	res, err := (&Runner{Prompt: p}).Run(ctl, []Step{{Action: "verify", Params: map[string]interface{}{}}})
	assert.True(t, errors.Is(err, prompt.ErrCancelled))
	assert.Len(t, res.Steps, 1)
}

func TestStringsParam(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, StringsParam(map[string]interface{}{"c": "A, B"}, "c"))
	assert.Equal(t, []string{"A", "1"}, StringsParam(map[string]interface{}{"c": []interface{}{"A", 1}}, "c"))
	assert.Nil(t, StringsParam(map[string]interface{}{}, "c"))
}

func TestFromList(t *testing.T) {
	steps, err := FromList([]interface{}{
		map[string]interface{}{"vkey": map[string]interface{}{"key": "f3"}},
		map[string]interface{}{"end": nil},
	})
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "f3", StringParam(steps[0].Params, "key", ""))

	_, err = FromList([]interface{}{"press"})
	assert.Error(t, err)
	_, err = FromList([]interface{}{map[string]interface{}{"press": "x"}})
	assert.Error(t, err)
}
