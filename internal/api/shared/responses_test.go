package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/apperr"
)

func newRequestWithID(t *testing.T, requestID string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	return r.WithContext(WithRequestID(r.Context(), requestID))
}

func TestRespondWithData(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := newRequestWithID(t, "req-42")

	RespondWithData(w, r, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var envelope struct {
		Data map[string]string `json:"data"`
		Meta ResponseMeta      `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "world", envelope.Data["hello"])
	assert.Equal(t, "req-42", envelope.Meta.RequestID)
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := newRequestWithID(t, "req-err")

	cause := errors.New("pq: unique constraint broken at db.internal")
	RespondWithError(w, r, apperr.Wrap(apperr.CodeDatabaseError, "Database error", cause))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-err", w.Header().Get(RequestIDHeader))

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, apperr.CodeDatabaseError, envelope.Error.Code)
	assert.Equal(t, "Database error", envelope.Error.Message)
	assert.Equal(t, "req-err", envelope.Error.RequestID)

	// The wrapped cause never reaches the client.
	assert.NotContains(t, w.Body.String(), "unique constraint")
	assert.NotContains(t, w.Body.String(), "db.internal")
}

func TestRespondWithErrorDetails(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := newRequestWithID(t, "req-details")

	appErr := apperr.New(apperr.CodeValidationError, "Invalid request body").
		WithDetails([]string{`Title failed on "max"`})
	RespondWithError(w, r, appErr)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error.Details)
}

func TestRespondOmitsEmptyDetails(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := newRequestWithID(t, "req-empty")

	RespondWithError(w, r, apperr.New(apperr.CodeTaskNotFound, "Task not found"))

	assert.NotContains(t, w.Body.String(), "details")
}
