package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Provider bundles the host backend for the current OS.
type Provider struct {
	Connector Connector
}

var (
	// ErrUnsupported is returned on platforms without a scripting backend.
	ErrUnsupported = fmt.Errorf("sapgui-cli is not supported on %s/%s; supported: windows (or --fixture)", runtime.GOOS, runtime.GOARCH)

	// ErrAutomationUnavailable is returned when the application is not
	// running or its scripting registration cannot be found.
	ErrAutomationUnavailable = errors.New("scripting engine not available: is the application running with scripting enabled?")

	// ErrElementNotFound is returned when an element id cannot be resolved.
	ErrElementNotFound = errors.New("element not found")
)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/windows/init.go for the Windows registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
