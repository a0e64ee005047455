package store

import (
	"context"
	"database/sql"
)

// Querier is the read surface shared by *sql.DB and *sql.Tx. The task
// store's page fetch takes it so the same query runs inside the list
// transaction in production and against a bare handle in tests.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
