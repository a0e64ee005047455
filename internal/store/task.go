// Package store defines the persistence-facing contracts of the
// application together with the sentinel errors implementations report
// through. Implementations live under internal/platform.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for tenant-scoped task persistence.
//
// Every mutating call carries the tenant predicate into the storage
// operation itself, so ownership checks and mutations cannot race.
// Implementations map their driver-level faults onto the package
// sentinels (ErrUnavailable, ErrQueryFailed) and never let raw driver
// error types escape.
type TaskStore interface {
	// Create persists a new task. The task must already be valid
	// according to domain validation rules.
	Create(ctx context.Context, task *domain.Task) error

	// ListByTenant returns one page of the tenant's tasks for the given
	// normalized query. The total count and the page of items are read
	// from a single consistent snapshot, so concurrent writes cannot
	// produce a total that disagrees with the items.
	ListByTenant(ctx context.Context, tenantID string, query domain.TaskListQuery) (*domain.TaskListPage, error)

	// UpdateForTenant applies the patch to the task matching (id, tenant)
	// in one atomic conditional statement. Only supplied patch fields
	// change; updated_at always advances.
	// Returns ErrTaskNotFound if no row matched.
	UpdateForTenant(ctx context.Context, tenantID string, id uuid.UUID, patch domain.TaskPatch) error

	// DeleteForTenant removes the task matching (id, tenant).
	// Returns ErrTaskNotFound if no row matched.
	DeleteForTenant(ctx context.Context, tenantID string, id uuid.UUID) error
}
