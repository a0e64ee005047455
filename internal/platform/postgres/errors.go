package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

// mapError classifies a driver fault onto the store sentinels. This is
// the only place driver error shapes are inspected; everything above the
// store sees sentinels or an unrecognized error it degrades itself.
//
// Faults that prevented establishing a connection map to ErrUnavailable
// (retryable). Faults raised while executing a statement map to
// ErrQueryFailed (not retryable as-is). Context cancellation passes
// through untouched so an aborted request is not mistaken for a database
// fault. Anything unrecognized is returned wrapped without a sentinel.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("task store %s: %w", op, err)
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &netErr):
		return fmt.Errorf("task store %s: %w: %v", op, store.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("task store %s: %w: %s", op, store.ErrQueryFailed, pgErr.Code)
	}

	return fmt.Errorf("task store %s: %w", op, err)
}
