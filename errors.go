package pgdesk

import "errors"

// Error kinds surfaced by the connection manager and SQL builders.
// Wrapped values carry detail; callers branch with errors.Is.
var (
	// ErrProfileNotFound reports an unknown profile name or id.
	ErrProfileNotFound = errors.New("connection not found")

	// ErrConnectFailed wraps a driver error raised while opening or
	// pinging a connection.
	ErrConnectFailed = errors.New("connect failed")

	// ErrEmptyInput reports blank caller-supplied SQL fragments
	// (column definitions, ALTER clauses) rejected before any SQL is built.
	ErrEmptyInput = errors.New("empty input")
)
