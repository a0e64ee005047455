// Package auth verifies bearer tokens issued by an external identity
// authority and extracts the caller's tenant identity. It does not issue
// tokens or manage sessions.
package auth

import (
	"context"
	"errors"
)

// RoleAuthenticated is the single role claim value this API accepts.
const RoleAuthenticated = "authenticated"

// ErrInvalidToken is the only failure Verify reports. Every verification
// problem (unparsable token, bad signature, expiry, wrong role, missing
// subject, unreachable key set) collapses into it so no partial-trust
// detail leaks to callers. The wrapped cause is for logs.
var ErrInvalidToken = errors.New("invalid authentication token")

// Principal is the verified identity of a request's caller. It is
// constructed fresh per request and never persisted or cached.
type Principal struct {
	// TenantID is the token's subject claim: the owning tenant whose
	// identifier scopes every task row the caller can touch.
	TenantID string

	// Role is the verified role claim, always RoleAuthenticated.
	Role string

	// RawToken is the bearer token as presented. Never log it.
	RawToken string
}

// Verifier checks a bearer token and returns the caller's principal.
type Verifier interface {
	// Verify validates the token's signature, expiry, and claims.
	// Returns a Principal on success or an error wrapping ErrInvalidToken
	// on any failure.
	Verify(ctx context.Context, token string) (*Principal, error)
}
