// Package storetest provides an in-memory TaskStore used by service and
// handler tests. It implements the full listing semantics (filtering,
// sorting, pagination with a consistent count) so tests can exercise the
// layers above without a database.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MemoryTaskStore is a concurrency-safe in-memory store.TaskStore.
// FailWith, when set, is returned from every operation; tests use it to
// simulate infrastructure faults.
type MemoryTaskStore struct {
	mu       sync.Mutex
	tasks    []*domain.Task
	FailWith error
}

var _ store.TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty in-memory task store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{}
}

// Create implements store.TaskStore.Create.
func (s *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	clone := *task
	s.tasks = append(s.tasks, &clone)
	return nil
}

// ListByTenant implements store.TaskStore.ListByTenant.
func (s *MemoryTaskStore) ListByTenant(
	ctx context.Context,
	tenantID string,
	query domain.TaskListQuery,
) (*domain.TaskListPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return nil, s.FailWith
	}

	matched := make([]*domain.Task, 0)
	for _, task := range s.tasks {
		if task.TenantID != tenantID {
			continue
		}
		switch query.Status {
		case domain.TaskStatusTodo:
			if task.IsDone {
				continue
			}
		case domain.TaskStatusDone:
			if !task.IsDone {
				continue
			}
		}
		matched = append(matched, task)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch query.SortBy {
		case domain.TaskSortByTitle:
			less = strings.Compare(matched[i].Title, matched[j].Title) < 0
		case domain.TaskSortByUpdatedAt:
			less = matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if query.SortOrder == domain.TaskSortOrderDesc {
			return !less && !taskFieldsEqual(matched[i], matched[j], query.SortBy)
		}
		return less
	})

	total := len(matched)
	offset := (query.Page - 1) * query.PageSize
	if offset > total {
		offset = total
	}
	end := offset + query.PageSize
	if end > total {
		end = total
	}

	items := make([]*domain.Task, 0, end-offset)
	for _, task := range matched[offset:end] {
		clone := *task
		items = append(items, &clone)
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

func taskFieldsEqual(a, b *domain.Task, sortBy domain.TaskSortBy) bool {
	switch sortBy {
	case domain.TaskSortByTitle:
		return a.Title == b.Title
	case domain.TaskSortByUpdatedAt:
		return a.UpdatedAt.Equal(b.UpdatedAt)
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}

// UpdateForTenant implements store.TaskStore.UpdateForTenant.
func (s *MemoryTaskStore) UpdateForTenant(
	ctx context.Context,
	tenantID string,
	id uuid.UUID,
	patch domain.TaskPatch,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	for _, task := range s.tasks {
		if task.ID != id || task.TenantID != tenantID {
			continue
		}
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.IsDone != nil {
			task.IsDone = *patch.IsDone
		}
		prev := task.UpdatedAt
		task.UpdatedAt = time.Now().UTC()
		if !task.UpdatedAt.After(prev) {
			// Sub-nanosecond test turnaround; force a strictly later stamp.
			task.UpdatedAt = prev.Add(time.Microsecond)
		}
		return nil
	}

	return store.ErrTaskNotFound
}

// DeleteForTenant implements store.TaskStore.DeleteForTenant.
func (s *MemoryTaskStore) DeleteForTenant(ctx context.Context, tenantID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	for i, task := range s.tasks {
		if task.ID == id && task.TenantID == tenantID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}

	return store.ErrTaskNotFound
}

// Get returns a copy of the stored task by id, for test assertions.
func (s *MemoryTaskStore) Get(id uuid.UUID) (*domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range s.tasks {
		if task.ID == id {
			clone := *task
			return &clone, true
		}
	}
	return nil, false
}
