package webcore

import "errors"

var (
	// ErrUnauthorized is an exported constant or variable used by the web client core.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrClientNotReady is an exported constant or variable used by the web client core.
	ErrClientNotReady = errors.New("client not ready")
	// ErrBackendUnreachable is an exported constant or variable used by the web client core.
	ErrBackendUnreachable = errors.New("backend unreachable")
	// ErrSessionRequired is an exported constant or variable used by the web client core.
	ErrSessionRequired = errors.New("no active session")
	// ErrTwoFactorNotPending is an exported constant or variable used by the web client core.
	ErrTwoFactorNotPending = errors.New("no two-factor login pending")
)
