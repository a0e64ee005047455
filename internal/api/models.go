package api

import (
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// UpdateTaskRequest is the body of PATCH /api/tasks/{id}. Both fields are
// optional but at least one must be supplied; absent fields leave the
// task unchanged.
type UpdateTaskRequest struct {
	Title  *string `json:"title"  validate:"omitempty,min=1,max=200"`
	IsDone *bool   `json:"isDone"`
}

// TaskResponse is the wire representation of a single task.
type TaskResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"isDone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskListPageResponse is the wire representation of one page of tasks,
// echoing the query fields that produced it.
type TaskListPageResponse struct {
	Items      []TaskResponse          `json:"items"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalPages int                     `json:"totalPages"`
	SortBy     domain.TaskSortBy       `json:"sortBy"`
	SortOrder  domain.TaskSortOrder    `json:"sortOrder"`
	Status     domain.TaskStatusFilter `json:"status"`
}

// taskToResponse converts a domain.Task to its wire representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID.String(),
		Title:     task.Title,
		IsDone:    task.IsDone,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// pageToResponse converts a domain.TaskListPage to its wire representation.
func pageToResponse(page *domain.TaskListPage) TaskListPageResponse {
	items := make([]TaskResponse, 0, len(page.Items))
	for _, task := range page.Items {
		items = append(items, taskToResponse(task))
	}

	return TaskListPageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		SortBy:     page.SortBy,
		SortOrder:  page.SortOrder,
		Status:     page.Status,
	}
}
