package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// MinSecretLength is the shortest HMAC key accepted for signing tokens.
const MinSecretLength = 32

// Verification failures. All of them match domain.ErrInvalidToken.
var (
	ErrTokenMalformed = fmt.Errorf("%w: malformed", domain.ErrInvalidToken)
	ErrTokenSignature = fmt.Errorf("%w: bad signature", domain.ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: expired", domain.ErrInvalidToken)
)

// NumericDate claims default to whole seconds, which would expire a token
// issued mid-second before now+TTL.
func init() {
	jwt.TimePrecision = time.Microsecond
}

// Claims is the JWT payload: the username travels in "sub", the role in "role".
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec issues and verifies HS256 bearer tokens with a fixed TTL.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTCodec builds a codec. The secret must be at least MinSecretLength
// bytes; a non-positive ttl falls back to 24h.
func NewJWTCodec(secret string, ttl time.Duration) (*JWTCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl}, nil
}

func (c *JWTCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject valid from now until now+TTL.
func (c *JWTCodec) Issue(subject string, role domain.Role, now time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and that now is strictly before the expiry.
// The returned error is one of ErrTokenMalformed, ErrTokenSignature or
// ErrTokenExpired.
func (c *JWTCodec) Verify(token string, now time.Time) (string, domain.Role, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", "", classify(err)
	}
	if !parsed.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return "", "", ErrTokenMalformed
	}
	return claims.Subject, claims.Role, nil
}

// signature is checked before claims, so an expired token with a forged
// signature reports ErrTokenSignature.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}

// FailureReason maps a Verify error to a short label for logs and metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignature):
		return "bad_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
