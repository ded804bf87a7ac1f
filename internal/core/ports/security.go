package ports

import (
	"context"
	"time"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// PasswordHasher produces and checks salted, deliberately slow password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenVerifier validates a bearer token at the given instant.
type TokenVerifier interface {
	Verify(token string, now time.Time) (subject string, role domain.Role, err error)
}

// TokenCodec issues and verifies self-contained bearer tokens.
type TokenCodec interface {
	TokenVerifier
	Issue(subject string, role domain.Role, now time.Time) (string, error)
	TTL() time.Duration
}

// LoginLimiter throttles repeated logins for a username. Attempt counts one
// attempt and reports whether it is within the limit; Reset clears the count
// after a successful login.
type LoginLimiter interface {
	Attempt(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}
