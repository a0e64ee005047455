package apperr

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// FromError translates an arbitrary failure into a taxonomy error.
// This is the single boundary where store sentinels and domain validation
// errors become coded failures; anything unrecognized degrades to
// INTERNAL_ERROR. An err that already carries a taxonomy code passes
// through unchanged.
//
// Context cancellation is translated to INTERNAL_ERROR as well: the client
// is gone or gave up, and the coded body is written only if the connection
// is still usable.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	if appErr, ok := As(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return Wrap(CodeTaskNotFound, "Task not found", err)

	case errors.Is(err, store.ErrUnavailable):
		return Wrap(CodeDatabaseUnavailable, "Database unavailable", err)

	case errors.Is(err, store.ErrQueryFailed):
		return Wrap(CodeDatabaseError, "Database error", err)

	case errors.Is(err, domain.ErrInvalidListQuery),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrEmptyPatch):
		return Wrap(CodeValidationError, "Invalid request", err)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Wrap(CodeInternalError, "Request aborted", err)

	default:
		return Wrap(CodeInternalError, "Internal server error", err)
	}
}
