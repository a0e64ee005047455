package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/redact"
)

// wellKnownJWKSPath is appended to the issuer URL when no explicit JWKS
// URL is configured.
const wellKnownJWKSPath = "/.well-known/jwks.json"

// validMethods lists the accepted signing algorithms. Anything else,
// including "none", fails verification before the key is even looked up.
var validMethods = []string{
	jwt.SigningMethodHS256.Name, jwt.SigningMethodHS384.Name, jwt.SigningMethodHS512.Name,
	jwt.SigningMethodRS256.Name, jwt.SigningMethodRS384.Name, jwt.SigningMethodRS512.Name,
	jwt.SigningMethodES256.Name, jwt.SigningMethodES384.Name, jwt.SigningMethodES512.Name,
}

// verifierClaims is the claim set the verifier reads from tokens.
type verifierClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies bearer tokens against either the configured shared
// secret (HMAC family algorithms) or a remote key set (everything else),
// selected by the token's declared algorithm.
//
// The remote key set client is built lazily on the first asymmetric token
// and memoized: at most one client is ever constructed and concurrent
// readers share it. The client lives for the verifier's lifetime so it
// keeps refreshing rotated keys; only the wait for the initial fetch is
// bounded by the configured timeout, and a failed construction is retried
// by the next request.
type JWTVerifier struct {
	secret      []byte
	issuer      string
	jwksURL     string
	jwksTimeout time.Duration

	clientCtx    context.Context
	clientCancel context.CancelFunc

	mu   sync.RWMutex
	jwks keyfunc.Keyfunc
}

var _ Verifier = (*JWTVerifier)(nil)

// NewJWTVerifier creates a JWTVerifier from the auth configuration.
func NewJWTVerifier(cfg config.AuthConfig) (*JWTVerifier, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	jwksURL := cfg.JWKSURL
	if jwksURL == "" && cfg.JWTIssuer != "" {
		jwksURL = strings.TrimRight(cfg.JWTIssuer, "/") + wellKnownJWKSPath
	}

	timeout := time.Duration(cfg.JWKSTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	clientCtx, clientCancel := context.WithCancel(context.Background())

	return &JWTVerifier{
		secret:       []byte(cfg.JWTSecret),
		issuer:       cfg.JWTIssuer,
		jwksURL:      jwksURL,
		jwksTimeout:  timeout,
		clientCtx:    clientCtx,
		clientCancel: clientCancel,
	}, nil
}

// Close stops the remote key set client's background refresh. The
// verifier must not be used after Close.
func (v *JWTVerifier) Close() {
	v.clientCancel()
}

// Verify implements Verifier.
func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (*Principal, error) {
	log := logger.FromContext(ctx)

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods(validMethods),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	claims := &verifierClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, v.keyFor(ctx), parserOpts...)
	if err != nil {
		log.Debug("token verification failed", "reason", redact.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		log.Debug("token verification failed", "reason", "missing subject claim")
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	if claims.Role != RoleAuthenticated {
		log.Debug("token verification failed", "reason", "wrong role claim")
		return nil, fmt.Errorf("%w: wrong role claim", ErrInvalidToken)
	}

	return &Principal{
		TenantID: claims.Subject,
		Role:     RoleAuthenticated,
		RawToken: tokenString,
	}, nil
}

// keyFor returns the key callback for a single parse. HMAC family tokens
// are checked against the shared secret; any other accepted algorithm is
// resolved through the remote key set.
func (v *JWTVerifier) keyFor(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
			return v.secret, nil
		}

		keySet, err := v.keySet(ctx)
		if err != nil {
			return nil, err
		}
		return keySet.Keyfunc(token)
	}
}

// keySet returns the memoized remote key set client, building it on first
// use. The client is constructed against the verifier-lifetime context so
// its background refresh keeps running after this request finishes; only
// the wait for the initial fetch is bounded by the configured timeout. On
// failure nothing is memoized, so a later request can try again.
func (v *JWTVerifier) keySet(ctx context.Context) (keyfunc.Keyfunc, error) {
	v.mu.RLock()
	keySet := v.jwks
	v.mu.RUnlock()
	if keySet != nil {
		return keySet, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.jwks != nil {
		return v.jwks, nil
	}

	if v.jwksURL == "" {
		return nil, errors.New("no key set source configured for asymmetric tokens")
	}

	type built struct {
		keySet keyfunc.Keyfunc
		err    error
	}
	ch := make(chan built, 1)
	go func() {
		keySet, err := keyfunc.NewDefaultCtx(v.clientCtx, []string{v.jwksURL})
		ch <- built{keySet: keySet, err: err}
	}()

	select {
	case b := <-ch:
		if b.err != nil {
			logger.FromContext(ctx).Warn("failed to fetch remote key set",
				"error", redact.Error(b.err))
			return nil, fmt.Errorf("fetch remote key set: %w", b.err)
		}
		v.jwks = b.keySet
		return b.keySet, nil

	case <-time.After(v.jwksTimeout):
		// The slow construction keeps running; adopt its client if it
		// eventually succeeds so the fetch is not repeated from scratch.
		go func() {
			if b := <-ch; b.err == nil {
				v.mu.Lock()
				if v.jwks == nil {
					v.jwks = b.keySet
				}
				v.mu.Unlock()
			}
		}()
		return nil, errors.New("timed out fetching remote key set")
	}
}
