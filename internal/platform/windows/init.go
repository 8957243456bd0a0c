//go:build windows

package windows

import (
	"runtime"

	"github.com/mj1618/sapgui-cli/internal/platform"
)

func init() {
	// COM apartments are per OS thread; keep the main goroutine on the
	// thread that initialises COM.
	runtime.LockOSThread()

	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Connector: NewConnector(),
		}, nil
	}
}
