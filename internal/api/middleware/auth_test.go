package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/apperr"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// mockVerifier records whether Verify was invoked and returns a canned
// result.
type mockVerifier struct {
	called    bool
	principal *auth.Principal
	err       error
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*auth.Principal, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	return m.principal, nil
}

func decodeErrorCode(t *testing.T, body []byte) apperr.Code {
	t.Helper()
	var envelope shared.ErrorEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error.Code
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		authHeader     string
		verifyErr      error
		principal      *auth.Principal
		expectedStatus int
		expectedCode   apperr.Code
		expectVerify   bool
	}{
		{
			name:           "valid bearer token",
			authHeader:     "Bearer valid-token",
			principal:      &auth.Principal{TenantID: "tenant-a", Role: auth.RoleAuthenticated},
			expectedStatus: http.StatusOK,
			expectVerify:   true,
		},
		{
			name:           "lowercase scheme accepted",
			authHeader:     "bearer valid-token",
			principal:      &auth.Principal{TenantID: "tenant-a", Role: auth.RoleAuthenticated},
			expectedStatus: http.StatusOK,
			expectVerify:   true,
		},
		{
			name:           "missing header skips verifier",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apperr.CodeAuthMissingToken,
			expectVerify:   false,
		},
		{
			// A non-Bearer scheme carries no bearer token at all, so it is
			// reported as missing, not invalid.
			name:           "wrong scheme counts as missing",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apperr.CodeAuthMissingToken,
			expectVerify:   false,
		},
		{
			name:           "scheme without token counts as missing",
			authHeader:     "Bearer",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apperr.CodeAuthMissingToken,
			expectVerify:   false,
		},
		{
			name:           "scheme with blank token counts as missing",
			authHeader:     "Bearer   ",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apperr.CodeAuthMissingToken,
			expectVerify:   false,
		},
		{
			name:           "verification failure is normalized",
			authHeader:     "Bearer expired-token",
			verifyErr:      fmt.Errorf("%w: token is expired", auth.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apperr.CodeAuthInvalidToken,
			expectVerify:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verifier := &mockVerifier{principal: tt.principal, err: tt.verifyErr}
			authMiddleware := NewAuthMiddleware(verifier)

			var captured *auth.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = GetPrincipal(r)
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			authMiddleware.Authenticate(next).ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectVerify, verifier.called)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErrorCode(t, w.Body.Bytes()))
				assert.Nil(t, captured)
				// Verifier-internal failure detail stays out of the body.
				assert.NotContains(t, w.Body.String(), "expired")
			} else {
				require.NotNil(t, captured)
				assert.Equal(t, "tenant-a", captured.TenantID)
			}
		})
	}
}

func TestGetPrincipalMissing(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	principal, ok := GetPrincipal(r)
	assert.False(t, ok)
	assert.Nil(t, principal)
}
