package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/apperr"
)

type decodeTarget struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantCode apperr.Code
	}{
		{name: "valid body", body: `{"title":"buy milk"}`},
		{name: "malformed json", body: `{"title":`, wantCode: apperr.CodeParseError},
		{name: "wrong field type", body: `{"title":7}`, wantCode: apperr.CodeParseError},
		{name: "missing required field", body: `{}`, wantCode: apperr.CodeValidationError},
		{
			name:     "field exceeds max",
			body:     `{"title":"` + strings.Repeat("x", 201) + `"}`,
			wantCode: apperr.CodeValidationError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(tt.body))

			var target decodeTarget
			appErr := DecodeJSON(r, &target)

			if tt.wantCode == "" {
				assert.Nil(t, appErr)
				assert.Equal(t, "buy milk", target.Title)
				return
			}

			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestDecodeJSONValidationCarriesFieldDetails(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{}`))

	var target decodeTarget
	appErr := DecodeJSON(r, &target)

	require.NotNil(t, appErr)
	details, ok := appErr.Details.([]string)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Contains(t, details[0], "Title")
}
