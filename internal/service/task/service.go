// Package task implements the task management use cases: tenant-scoped
// create, list, update, and delete. It normalizes incoming queries,
// orchestrates the repository, and signals failures with taxonomy codes.
package task

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/apperr"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// OK is the payload returned by mutations that have no entity to return.
type OK struct {
	OK bool `json:"ok"`
}

// Service orchestrates the task repository on behalf of one
// authenticated tenant per call. All failures it returns carry a
// taxonomy code; repository sentinel identities never escape it.
type Service struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewService creates a task Service backed by the given store.
// If log is nil, the default logger is used.
func NewService(tasks store.TaskStore, log *slog.Logger) *Service {
	if tasks == nil {
		panic("task store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		tasks:  tasks,
		logger: log.With(slog.String("component", "task_service")),
	}
}

// List returns one page of the tenant's tasks. The raw input has
// defaults {1, 10, createdAt, desc, all} applied and is validated before
// the repository sees it.
func (s *Service) List(
	ctx context.Context,
	tenantID string,
	input domain.TaskListQueryInput,
) (*domain.TaskListPage, error) {
	query, err := domain.NormalizeListQuery(input)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeValidationError, "Invalid list query", err)
	}

	page, err := s.tasks.ListByTenant(ctx, tenantID, query)
	if err != nil {
		return nil, apperr.FromError(err)
	}

	return page, nil
}

// Create inserts a new task for the tenant with the given title. The
// title is trimmed and must be 1-200 characters; the task starts not
// done with matching creation and update timestamps.
func (s *Service) Create(ctx context.Context, tenantID, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	created, err := domain.NewTask(tenantID, title)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeValidationError, "Invalid task title", err)
	}

	if err := s.tasks.Create(ctx, created); err != nil {
		return nil, apperr.FromError(err)
	}

	log.Info("task created",
		slog.String("task_id", created.ID.String()))
	return created, nil
}

// Update applies a partial patch to the tenant's task. Only supplied
// fields change; updatedAt always advances. A task owned by another
// tenant is reported exactly like a nonexistent one.
func (s *Service) Update(
	ctx context.Context,
	tenantID string,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*OK, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}

	if err := patch.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.CodeValidationError, "Invalid task patch", err)
	}

	if err := s.tasks.UpdateForTenant(ctx, tenantID, id, patch); err != nil {
		return nil, apperr.FromError(err)
	}

	log.Info("task updated",
		slog.String("task_id", id.String()))
	return &OK{OK: true}, nil
}

// Delete removes the tenant's task, with the same cross-tenant masking
// as Update.
func (s *Service) Delete(ctx context.Context, tenantID string, id uuid.UUID) (*OK, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.DeleteForTenant(ctx, tenantID, id); err != nil {
		return nil, apperr.FromError(err)
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()))
	return &OK{OK: true}, nil
}
