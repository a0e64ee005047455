// Package postgres implements the store contracts on PostgreSQL,
// accessed through database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// sortColumns whitelists the ORDER BY column per query sort field.
// Sorting is never interpolated from raw client input.
var sortColumns = map[domain.TaskSortBy]string{
	domain.TaskSortByCreatedAt: "created_at",
	domain.TaskSortByUpdatedAt: "updated_at",
	domain.TaskSortByTitle:     "title",
}

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database handle that should be opened
// and managed by the caller. If logger is nil, a default logger is used.
func NewPostgresTaskStore(db *sql.DB, log *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, tenant_id, title, is_done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.TenantID,
		task.Title,
		task.IsDone,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", task.ID.String()))
		return mapError("create", err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()))
	return nil
}

// ListByTenant implements store.TaskStore.ListByTenant.
//
// The count and the page of items are read inside one repeatable-read
// read-only transaction, so both come from the same snapshot and
// concurrent writes cannot produce a total that disagrees with the items.
func (s *PostgresTaskStore) ListByTenant(
	ctx context.Context,
	tenantID string,
	query domain.TaskListQuery,
) (*domain.TaskListPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := listFilter(tenantID, query.Status)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		log.Error("failed to begin list transaction",
			slog.String("error", redact.Error(err)))
		return nil, mapError("list", err)
	}
	defer func() {
		// Rollback after Commit is a harmless no-op.
		_ = tx.Rollback()
	}()

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks WHERE " + where
	if err := tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", redact.Error(err)))
		return nil, mapError("list", err)
	}

	items, err := s.fetchPage(ctx, tx, where, args, query)
	if err != nil {
		log.Error("failed to fetch task page",
			slog.String("error", redact.Error(err)))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit list transaction",
			slog.String("error", redact.Error(err)))
		return nil, mapError("list", err)
	}

	return &domain.TaskListPage{
		Items:      items,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: domain.TotalPages(total, query.PageSize),
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
		Status:     query.Status,
	}, nil
}

// fetchPage runs the page query against q, which is the list transaction
// in production and may be a bare connection in tests.
func (s *PostgresTaskStore) fetchPage(
	ctx context.Context,
	q store.Querier,
	where string,
	args []any,
	query domain.TaskListQuery,
) ([]*domain.Task, error) {
	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if query.SortOrder == domain.TaskSortOrderAsc {
		direction = "ASC"
	}

	offset := (query.Page - 1) * query.PageSize
	pageQuery := fmt.Sprintf(`
		SELECT id, tenant_id, title, is_done, created_at, updated_at
		FROM tasks
		WHERE %s
		ORDER BY %s %s
		LIMIT %d OFFSET %d
	`, where, column, direction, query.PageSize, offset)

	rows, err := q.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, mapError("list", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.TenantID,
			&task.Title,
			&task.IsDone,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, mapError("list", err)
		}
		items = append(items, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list", err)
	}

	return items, nil
}

// listFilter builds the WHERE clause shared by the count and page
// queries. status=all applies no completion filter.
func listFilter(tenantID string, status domain.TaskStatusFilter) (string, []any) {
	where := "tenant_id = $1"
	args := []any{tenantID}

	switch status {
	case domain.TaskStatusTodo:
		where += " AND is_done = FALSE"
	case domain.TaskStatusDone:
		where += " AND is_done = TRUE"
	}

	return where, args
}

// UpdateForTenant implements store.TaskStore.UpdateForTenant.
//
// The match and the mutation are one conditional UPDATE keyed by
// (id, tenant_id). There is no separate existence check, so an id owned
// by another tenant and a nonexistent id are indistinguishable: both
// affect zero rows and return ErrTaskNotFound.
func (s *PostgresTaskStore) UpdateForTenant(
	ctx context.Context,
	tenantID string,
	id uuid.UUID,
	patch domain.TaskPatch,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Warn("task patch validation failed",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	// Nil pointer args bind as NULL, which COALESCE resolves to the
	// current column value: absent patch fields leave the row untouched.
	query := `
		UPDATE tasks
		SET title = COALESCE($1, title),
		    is_done = COALESCE($2, is_done),
		    updated_at = $3
		WHERE id = $4 AND tenant_id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		patch.Title,
		patch.IsDone,
		time.Now().UTC(),
		id,
		tenantID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		return mapError("update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		return mapError("update", err)
	}

	if rowsAffected == 0 {
		log.Debug("task not found for update",
			slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Debug("task updated",
		slog.String("task_id", id.String()))
	return nil
}

// DeleteForTenant implements store.TaskStore.DeleteForTenant with the
// same atomic tenant-scoped semantics as UpdateForTenant.
func (s *PostgresTaskStore) DeleteForTenant(
	ctx context.Context,
	tenantID string,
	id uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND tenant_id = $2
	`
	result, err := s.db.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		return mapError("delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		return mapError("delete", err)
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete",
			slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted",
		slog.String("task_id", id.String()))
	return nil
}
