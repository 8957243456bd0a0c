//go:build windows

// Package windows provides the SAP GUI Scripting backend over COM.
// The scripting engine is obtained from the running object table entry
// "SAPGUI"; all calls go through IDispatch via go-ole.
package windows
