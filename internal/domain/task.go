package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Title length bounds for a task.
const (
	MinTitleLength = 1
	MaxTitleLength = 200
)

// Task represents a single to-do item owned by exactly one tenant.
// A task never exists without an owning tenant and its title is never empty.
type Task struct {
	ID        uuid.UUID `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by the given tenant. The title is
// trimmed before validation. Creation and update timestamps are set to
// the same instant and the task starts not done.
// Returns an error if validation fails.
func NewTask(tenantID, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Title:     strings.TrimSpace(title),
		IsDone:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.TenantID == "" {
		return ErrEmptyTenantID
	}

	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	return nil
}

// ValidateTitle checks the task title length bounds.
func ValidateTitle(title string) error {
	if len(title) < MinTitleLength {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// TaskPatch carries the optional fields of a partial task update.
// A nil field means "leave unchanged"; a non-nil field is applied.
// This makes absent-vs-set explicit rather than relying on zero values.
type TaskPatch struct {
	Title  *string
	IsDone *bool
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.IsDone == nil
}

// Validate checks that the patch supplies at least one field and that a
// supplied title is within bounds.
func (p TaskPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}

	if p.Title != nil {
		if err := ValidateTitle(strings.TrimSpace(*p.Title)); err != nil {
			return err
		}
	}

	return nil
}

// TaskSortBy identifies the column a task list is sorted by.
type TaskSortBy string

// Accepted sort columns.
const (
	TaskSortByCreatedAt TaskSortBy = "createdAt"
	TaskSortByUpdatedAt TaskSortBy = "updatedAt"
	TaskSortByTitle     TaskSortBy = "title"
)

// TaskSortOrder identifies the direction a task list is sorted in.
type TaskSortOrder string

// Accepted sort directions.
const (
	TaskSortOrderAsc  TaskSortOrder = "asc"
	TaskSortOrderDesc TaskSortOrder = "desc"
)

// TaskStatusFilter narrows a task list by completion state.
type TaskStatusFilter string

// Accepted status filters.
const (
	TaskStatusAll  TaskStatusFilter = "all"
	TaskStatusTodo TaskStatusFilter = "todo"
	TaskStatusDone TaskStatusFilter = "done"
)

// Pagination bounds for task listing.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TaskListQuery holds the fully-normalized parameters of a task listing.
// The repository only ever sees queries that went through
// NormalizeListQuery first.
type TaskListQuery struct {
	Page      int              `json:"page"`
	PageSize  int              `json:"pageSize"`
	SortBy    TaskSortBy       `json:"sortBy"`
	SortOrder TaskSortOrder    `json:"sortOrder"`
	Status    TaskStatusFilter `json:"status"`
}

// TaskListQueryInput holds optional raw listing parameters before defaults
// are applied. A nil field takes the default.
type TaskListQueryInput struct {
	Page      *int
	PageSize  *int
	SortBy    *TaskSortBy
	SortOrder *TaskSortOrder
	Status    *TaskStatusFilter
}

// NormalizeListQuery applies defaults {1, 10, createdAt, desc, all} to the
// absent fields of the input and validates the supplied ones.
// Returns a query ready for the repository, or an error wrapping
// ErrInvalidListQuery when a supplied value is out of range or not an
// accepted enum value.
func NormalizeListQuery(in TaskListQueryInput) (TaskListQuery, error) {
	q := TaskListQuery{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		SortBy:    TaskSortByCreatedAt,
		SortOrder: TaskSortOrderDesc,
		Status:    TaskStatusAll,
	}

	if in.Page != nil {
		if *in.Page < 1 {
			return TaskListQuery{}, fmt.Errorf("%w: page must be >= 1", ErrInvalidListQuery)
		}
		q.Page = *in.Page
	}

	if in.PageSize != nil {
		if *in.PageSize < 1 || *in.PageSize > MaxPageSize {
			return TaskListQuery{}, fmt.Errorf(
				"%w: pageSize must be between 1 and %d", ErrInvalidListQuery, MaxPageSize)
		}
		q.PageSize = *in.PageSize
	}

	if in.SortBy != nil {
		switch *in.SortBy {
		case TaskSortByCreatedAt, TaskSortByUpdatedAt, TaskSortByTitle:
			q.SortBy = *in.SortBy
		default:
			return TaskListQuery{}, fmt.Errorf("%w: unknown sortBy %q", ErrInvalidListQuery, *in.SortBy)
		}
	}

	if in.SortOrder != nil {
		switch *in.SortOrder {
		case TaskSortOrderAsc, TaskSortOrderDesc:
			q.SortOrder = *in.SortOrder
		default:
			return TaskListQuery{}, fmt.Errorf(
				"%w: unknown sortOrder %q", ErrInvalidListQuery, *in.SortOrder)
		}
	}

	if in.Status != nil {
		switch *in.Status {
		case TaskStatusAll, TaskStatusTodo, TaskStatusDone:
			q.Status = *in.Status
		default:
			return TaskListQuery{}, fmt.Errorf("%w: unknown status %q", ErrInvalidListQuery, *in.Status)
		}
	}

	return q, nil
}

// TaskListPage is one page of a tenant's task list together with the
// pagination metadata and the query fields that produced it.
type TaskListPage struct {
	Items      []*Task          `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	SortBy     TaskSortBy       `json:"sortBy"`
	SortOrder  TaskSortOrder    `json:"sortOrder"`
	Status     TaskStatusFilter `json:"status"`
}

// TotalPages computes max(1, ceil(total/pageSize)). An empty result still
// has one (empty) page.
func TotalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
