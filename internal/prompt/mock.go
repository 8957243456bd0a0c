package prompt

import (
	"github.com/stretchr/testify/mock"
)

// MockChooser is a mock implementation of Chooser for testing.
type MockChooser struct {
	mock.Mock
}

// Choose provides a mock function with given fields: title, options.
func (_m *MockChooser) Choose(title string, options []string) (string, bool, error) {
	ret := _m.Called(title, options)
	return ret.String(0), ret.Bool(1), ret.Error(2)
}

// MockReporter is a mock implementation of Reporter for testing.
type MockReporter struct {
	mock.Mock
}

// Report provides a mock function with given fields: title, err, layout.
func (_m *MockReporter) Report(title string, err error, layout Layout) (bool, error) {
	ret := _m.Called(title, err, layout)
	return ret.Bool(0), ret.Error(1)
}

// MockRepeatPrompt is a mock implementation of RepeatPrompt for testing.
type MockRepeatPrompt struct {
	mock.Mock
}

// Ask provides a mock function with given fields: title, info.
func (_m *MockRepeatPrompt) Ask(title, info string) (Decision, error) {
	ret := _m.Called(title, info)
	return ret.Get(0).(Decision), ret.Error(1)
}
