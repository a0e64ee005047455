package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/apperr"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// AuthMiddleware rejects requests that do not carry a verifiable bearer
// token, before they reach business logic.
type AuthMiddleware struct {
	verifier auth.Verifier
}

// NewAuthMiddleware creates a new AuthMiddleware with the given verifier.
func NewAuthMiddleware(verifier auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate extracts the Authorization bearer token, verifies it, and
// attaches the resulting principal to the request context.
//
// A request with no bearer token fails with AUTH_MISSING_TOKEN without
// invoking the verifier at all; a non-Bearer scheme or a Bearer scheme
// with no token counts as no token present. A token the verifier rejects
// fails with AUTH_INVALID_TOKEN; the verifier's internal failure detail
// stays in the logs. Nothing is cached between requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithError(w, r,
				apperr.New(apperr.CodeAuthMissingToken, "Missing bearer token"))
			return
		}

		principal, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			shared.RespondWithError(w, r,
				apperr.Wrap(apperr.CodeAuthInvalidToken, "Invalid bearer token", err))
			return
		}

		ctx := context.WithValue(r.Context(), shared.PrincipalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken splits an Authorization header into its scheme and token,
// matching the Bearer scheme case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

// GetPrincipal extracts the verified principal from the request context.
// Returns the principal and a boolean indicating if it was found.
func GetPrincipal(r *http.Request) (*auth.Principal, bool) {
	principal, ok := r.Context().Value(shared.PrincipalContextKey).(*auth.Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}
