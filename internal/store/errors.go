package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrTaskNotFound is returned when a tenant-scoped mutation or lookup
	// matches no row. An id owned by a different tenant is reported with
	// this same error, so callers cannot distinguish the two cases.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUnavailable is returned when a connection to the database cannot
	// be established. Callers may retry with backoff.
	ErrUnavailable = errors.New("database unavailable")

	// ErrQueryFailed is returned when the database was reachable but the
	// operation itself failed (constraint violation, driver-level query
	// error). Retrying the same request will not help.
	ErrQueryFailed = errors.New("database query failed")
)
