// Package api implements the HTTP handlers for the task endpoints and
// their translation between wire DTOs and the use-case layer.
package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/apperr"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/task"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks *task.Service
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *task.Service) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /api/tasks requests.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r,
			apperr.New(apperr.CodeAuthInvalidToken, "Invalid bearer token"))
		return
	}

	input, appErr := parseListQuery(r.URL.Query())
	if appErr != nil {
		shared.RespondWithError(w, r, appErr)
		return
	}

	page, err := h.tasks.List(r.Context(), principal.TenantID, input)
	if err != nil {
		shared.RespondWithError(w, r, apperr.FromError(err))
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, pageToResponse(page))
}

// Create handles POST /api/tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r,
			apperr.New(apperr.CodeAuthInvalidToken, "Invalid bearer token"))
		return
	}

	var req CreateTaskRequest
	if appErr := shared.DecodeJSON(r, &req); appErr != nil {
		shared.RespondWithError(w, r, appErr)
		return
	}

	created, err := h.tasks.Create(r.Context(), principal.TenantID, req.Title)
	if err != nil {
		shared.RespondWithError(w, r, apperr.FromError(err))
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, taskToResponse(created))
}

// Update handles PATCH /api/tasks/{id} requests.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r,
			apperr.New(apperr.CodeAuthInvalidToken, "Invalid bearer token"))
		return
	}

	id, appErr := pathTaskID(r)
	if appErr != nil {
		shared.RespondWithError(w, r, appErr)
		return
	}

	var req UpdateTaskRequest
	if appErr := shared.DecodeJSON(r, &req); appErr != nil {
		shared.RespondWithError(w, r, appErr)
		return
	}
	if req.Title == nil && req.IsDone == nil {
		shared.RespondWithError(w, r,
			apperr.New(apperr.CodeValidationError, "Patch must supply at least one field"))
		return
	}

	result, err := h.tasks.Update(r.Context(), principal.TenantID, id, domain.TaskPatch{
		Title:  req.Title,
		IsDone: req.IsDone,
	})
	if err != nil {
		shared.RespondWithError(w, r, apperr.FromError(err))
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, result)
}

// Delete handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r,
			apperr.New(apperr.CodeAuthInvalidToken, "Invalid bearer token"))
		return
	}

	id, appErr := pathTaskID(r)
	if appErr != nil {
		shared.RespondWithError(w, r, appErr)
		return
	}

	result, err := h.tasks.Delete(r.Context(), principal.TenantID, id)
	if err != nil {
		shared.RespondWithError(w, r, apperr.FromError(err))
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, result)
}

// pathTaskID extracts and parses the {id} path parameter.
func pathTaskID(r *http.Request) (uuid.UUID, *apperr.Error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.CodeValidationError, "Invalid task id", err)
	}
	return id, nil
}

// parseListQuery reads the optional listing parameters. Unparsable or
// out-of-range values fail with VALIDATION_ERROR; range and enum checks
// themselves live in domain.NormalizeListQuery.
func parseListQuery(values url.Values) (domain.TaskListQueryInput, *apperr.Error) {
	var input domain.TaskListQueryInput

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return input, apperr.Wrap(apperr.CodeValidationError, "Invalid page parameter", err)
		}
		input.Page = &page
	}

	if raw := values.Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return input, apperr.Wrap(apperr.CodeValidationError, "Invalid pageSize parameter", err)
		}
		input.PageSize = &pageSize
	}

	if raw := values.Get("sortBy"); raw != "" {
		sortBy := domain.TaskSortBy(raw)
		input.SortBy = &sortBy
	}

	if raw := values.Get("sortOrder"); raw != "" {
		sortOrder := domain.TaskSortOrder(raw)
		input.SortOrder = &sortOrder
	}

	if raw := values.Get("status"); raw != "" {
		status := domain.TaskStatusFilter(raw)
		input.Status = &status
	}

	return input, nil
}
