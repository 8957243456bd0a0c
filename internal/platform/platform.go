package platform

// Connector obtains the scripting engine of a running application.
type Connector interface {
	// Connect returns the root scripting engine. It returns
	// ErrAutomationUnavailable when the application is not running or does
	// not expose its scripting object.
	Connect() (Engine, error)
}

// Engine is the root of the scripting tree (root → connections → sessions).
type Engine interface {
	Connections() ([]Connection, error)
	Connection(index int) (Connection, error)
}

// Connection groups the sessions sharing one backend link.
type Connection interface {
	Sessions() ([]Session, error)
	Session(index int) (Session, error)
}

// Session is one interactive instance of the application.
type Session interface {
	// Busy reports whether the session is processing a request. Busy
	// sessions cannot report their window text reliably.
	Busy() (bool, error)

	// FindByID resolves a path-like element id. It returns an error wrapping
	// ErrElementNotFound when the host cannot resolve the path.
	FindByID(id string) (Element, error)

	StartTransaction(code string) error
	EndTransaction() error
	LockUI() error
	UnlockUI() error

	// Windows returns the names of the session's open windows in opening
	// order (e.g. "wnd[0]", "wnd[1]").
	Windows() ([]string, error)
}

// Element is an addressable UI control. Properties and methods are named
// as in the host scripting API (Text, Key, Selected, RowCount, Press, ...).
type Element interface {
	// Type returns the host type tag, e.g. "GuiButton".
	Type() (string, error)
	Get(property string) (any, error)
	Set(property string, value any) error
	Call(method string, args ...any) (any, error)
}

// Release frees the host resources held by v, when it holds any. Handles
// from reference-counted backends implement Release; others are left alone.
func Release(v any) {
	if r, ok := v.(interface{ Release() }); ok {
		r.Release()
	}
}
