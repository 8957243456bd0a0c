package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/platform/fixture"
	"github.com/mj1618/sapgui-cli/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hostWith(sessions ...fixture.SessionSpec) *fixture.Host {
	return fixture.New(fixture.Spec{Connections: []fixture.ConnectionSpec{{Sessions: sessions}}})
}

func TestDiscover_SkipsBusySessions(t *testing.T) {
	h := fixture.New(fixture.Spec{Connections: []fixture.ConnectionSpec{
		{Sessions: []fixture.SessionSpec{{Title: "Session A"}, {Title: "Busy", Busy: true}}},
		{Sessions: []fixture.SessionSpec{{Title: "Session B"}}},
	}})

	got, err := NewSelector(h).Discover()
	require.NoError(t, err)
	assert.Equal(t, model.SessionMap{
		"Session A": {Title: "Session A", ConnectionIndex: 0, SessionIndex: 0},
		"Session B": {Title: "Session B", ConnectionIndex: 1, SessionIndex: 0},
	}, got)
}

func TestDiscover_OnlyFreeSessionReturned(t *testing.T) {
	h := fixture.New(fixture.Spec{Connections: []fixture.ConnectionSpec{
		{Sessions: []fixture.SessionSpec{
			{Title: "Session A", Busy: false},
			{Title: "Session B", Busy: true},
		}},
	}})

	got, err := NewSelector(h).Discover()
	require.NoError(t, err)
	assert.Equal(t, model.SessionMap{
		"Session A": {Title: "Session A", ConnectionIndex: 0, SessionIndex: 0},
	}, got)
	assert.Equal(t, []string{"Session A"}, got.Titles())
}

func TestDiscover_ReleasesRootWindows(t *testing.T) {
	h := hostWith(fixture.SessionSpec{Title: "A"}, fixture.SessionSpec{Title: "B"})

	_, err := NewSelector(h).Discover()
	require.NoError(t, err)
	released := h.CallsTo("Release")
	require.Len(t, released, 2)
	for _, c := range released {
		assert.Equal(t, "wnd[0]", c.Path)
	}
}

func TestDiscover_AllBusy(t *testing.T) {
	h := hostWith(fixture.SessionSpec{Title: "A", Busy: true})
	_, err := NewSelector(h).Discover()
	assert.ErrorIs(t, err, ErrNoAvailableSession)
}

func TestDiscover_NoConnections(t *testing.T) {
	_, err := NewSelector(fixture.New(fixture.Spec{})).Discover()
	assert.ErrorIs(t, err, ErrNoAvailableSession)
}

func TestDiscover_AutomationUnavailable(t *testing.T) {
	h := hostWith(fixture.SessionSpec{Title: "A"})
	h.SetRunning(false)
	_, err := NewSelector(h).Discover()
	assert.ErrorIs(t, err, platform.ErrAutomationUnavailable)
}

func TestDiscover_DuplicateTitleKeepsLater(t *testing.T) {
	var logs bytes.Buffer
	h := hostWith(fixture.SessionSpec{Title: "Same"}, fixture.SessionSpec{Title: "Same"})

	got, err := NewSelector(h, WithLogger(log.New(&logs))).Discover()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got["Same"].SessionIndex)
	assert.Contains(t, logs.String(), "duplicate session title")
}

func TestSelect_UsesChooserForMode(t *testing.T) {
	sessions := model.SessionMap{
		"Session B": {Title: "Session B", SessionIndex: 1},
		"Session A": {Title: "Session A"},
	}
	c := &prompt.MockChooser{}
	c.On("Choose", mock.Anything, []string{"Session A", "Session B"}).Return("Session B", true, nil)

	s := NewSelector(hostWith(), WithChooser(prompt.ModeCLI, c))
	title, err := s.Select(sessions, prompt.ModeCLI)
	require.NoError(t, err)
	assert.Equal(t, "Session B", title)
	c.AssertExpectations(t)

	_, err = s.Select(sessions, prompt.ModeDialog)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

func TestSelect_Cancelled(t *testing.T) {
	c := &prompt.MockChooser{}
	c.On("Choose", mock.Anything, mock.Anything).Return("", false, nil)

	s := NewSelector(hostWith(), WithChooser(prompt.ModeDialog, c))
	_, err := s.Select(model.SessionMap{"A": {Title: "A"}}, prompt.ModeDialog)
	assert.ErrorIs(t, err, prompt.ErrCancelled)
}

func TestSelect_UnknownTitle(t *testing.T) {
	c := &prompt.MockChooser{}
	c.On("Choose", mock.Anything, mock.Anything).Return("Z", true, nil)

	s := NewSelector(hostWith(), WithChooser(prompt.ModeCLI, c))
	_, err := s.Select(model.SessionMap{"A": {Title: "A"}}, prompt.ModeCLI)
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSelect_EmptyMap(t *testing.T) {
	c := &prompt.MockChooser{}
	s := NewSelector(hostWith(), WithChooser(prompt.ModeCLI, c))
	_, err := s.Select(model.SessionMap{}, prompt.ModeCLI)
	assert.ErrorIs(t, err, ErrNoAvailableSession)
	c.AssertNotCalled(t, "Choose", mock.Anything, mock.Anything)
}

func TestSelect_ChooserError(t *testing.T) {
	boom := errors.New("tty gone")
	c := &prompt.MockChooser{}
	c.On("Choose", mock.Anything, mock.Anything).Return("", false, boom)
	s := NewSelector(hostWith(), WithChooser(prompt.ModeCLI, c))
	_, err := s.Select(model.SessionMap{"A": {Title: "A"}}, prompt.ModeCLI)
	assert.ErrorIs(t, err, boom)
}

func TestAttach_StaleAfterSessionClosed(t *testing.T) {
	h := hostWith(fixture.SessionSpec{Title: "A"}, fixture.SessionSpec{Title: "B"})
	s := NewSelector(h)
	sessions, err := s.Discover()
	require.NoError(t, err)

	h.RemoveSession(0, 0)

	_, err = s.Attach("B", sessions["B"])
	assert.ErrorIs(t, err, ErrStaleSession)
}

func TestAttach_StaleAfterTitleChanged(t *testing.T) {
	h := hostWith(fixture.SessionSpec{Title: "A"})
	s := NewSelector(h)
	sessions, err := s.Discover()
	require.NoError(t, err)

	h.FixtureSession(0, 0).SetTitle("Other screen")

	_, err = s.Attach("A", sessions["A"])
	assert.ErrorIs(t, err, ErrStaleSession)
}

func TestConnect_Static(t *testing.T) {
	h := hostWith(fixture.SessionSpec{Title: "Session A"}, fixture.SessionSpec{Title: "Session B"})
	s := NewSelector(h, WithChooser(prompt.ModeCLI, prompt.Static{Title: "Session B"}))

	ctl, err := s.Connect(prompt.ModeCLI)
	require.NoError(t, err)
	assert.Equal(t, "Session B", ctl.Title())
	assert.True(t, ctl.Attached())
}
