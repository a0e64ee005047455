package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestCodeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code Code
		want int
	}{
		{CodeAuthMissingToken, http.StatusUnauthorized},
		{CodeAuthInvalidToken, http.StatusUnauthorized},
		{CodeTaskNotFound, http.StatusNotFound},
		{CodeValidationError, http.StatusBadRequest},
		{CodeParseError, http.StatusBadRequest},
		{CodeRouteNotFound, http.StatusNotFound},
		{CodeDatabaseUnavailable, http.StatusServiceUnavailable},
		{CodeDatabaseError, http.StatusInternalServerError},
		{CodeInternalError, http.StatusInternalServerError},
		{Code("BOGUS"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.code), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.code.Status())
		})
	}
}

func TestErrorWrappingAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying fault")
	appErr := Wrap(CodeDatabaseError, "Database error", cause)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "DATABASE_ERROR")

	extracted, ok := As(fmt.Errorf("outer: %w", appErr))
	require.True(t, ok)
	assert.Equal(t, CodeDatabaseError, extracted.Code)
}

func TestWithDetailsDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	base := New(CodeValidationError, "Invalid request")
	detailed := base.WithDetails([]string{"title failed on \"max\""})

	assert.Nil(t, base.Details)
	assert.NotNil(t, detailed.Details)
	assert.Equal(t, base.Code, detailed.Code)
}

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode Code
	}{
		{
			name:     "task not found sentinel",
			err:      fmt.Errorf("task store delete: %w", store.ErrTaskNotFound),
			wantCode: CodeTaskNotFound,
		},
		{
			name:     "connection fault is retryable unavailable",
			err:      fmt.Errorf("task store list: %w: dial refused", store.ErrUnavailable),
			wantCode: CodeDatabaseUnavailable,
		},
		{
			name:     "query fault is non-retryable database error",
			err:      fmt.Errorf("task store create: %w: 23505", store.ErrQueryFailed),
			wantCode: CodeDatabaseError,
		},
		{
			name:     "invalid list query",
			err:      fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidListQuery),
			wantCode: CodeValidationError,
		},
		{
			name:     "domain validation",
			err:      domain.ErrEmptyPatch,
			wantCode: CodeValidationError,
		},
		{
			name:     "cancellation",
			err:      context.Canceled,
			wantCode: CodeInternalError,
		},
		{
			name:     "unrecognized fault degrades to internal",
			err:      errors.New("something nobody classified"),
			wantCode: CodeInternalError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			appErr := FromError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			// The original fault stays reachable for logging.
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestFromErrorPassesTaxonomyErrorsThrough(t *testing.T) {
	t.Parallel()

	original := New(CodeAuthInvalidToken, "Invalid bearer token")
	assert.Same(t, original, FromError(original))
	assert.Same(t, original, FromError(fmt.Errorf("wrapped: %w", original)))
}

func TestFromErrorNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromError(nil))
}
