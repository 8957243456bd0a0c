package session

import "errors"

var (
	// ErrNoAvailableSession is returned when discovery finds no usable session.
	ErrNoAvailableSession = errors.New("couldn't find any available session")

	// ErrStaleSession is returned when the tree changed between discovery and
	// attach, so the descriptor no longer points at the chosen session.
	ErrStaleSession = errors.New("session changed since discovery")

	// ErrUnknownSession is returned when a title is not in the session map.
	ErrUnknownSession = errors.New("unknown session")

	// ErrUnsupportedKey is returned for virtual keys outside the allow-list.
	ErrUnsupportedKey = errors.New("unsupported virtual key")

	// ErrDetached is returned by a Controller after Disconnect.
	ErrDetached = errors.New("session is disconnected")

	// ErrUnsupportedMode is returned for chooser modes with no chooser.
	ErrUnsupportedMode = errors.New("unsupported chooser mode")
)
