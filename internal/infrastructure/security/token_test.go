package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/catalog-api/internal/core/domain"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCodec(t *testing.T, ttl time.Duration) *JWTCodec {
	t.Helper()
	c, err := NewJWTCodec(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewJWTCodec: %v", err)
	}
	return c
}

func TestNewJWTCodec_ShortSecret(t *testing.T) {
	if _, err := NewJWTCodec("short", time.Hour); err == nil {
		t.Fatalf("expected error for short secret")
	}
	if _, err := NewJWTCodec("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestNewJWTCodec_DefaultTTL(t *testing.T) {
	c := newTestCodec(t, 0)
	if c.TTL() != 24*time.Hour {
		t.Fatalf("expected 24h default TTL, got %v", c.TTL())
	}
}

func TestJWTCodec_RoundTripWithinTTL(t *testing.T) {
	ttl := time.Hour
	c := newTestCodec(t, ttl)

	token, err := c.Issue("alice", domain.RoleAdmin, t0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, eps := range []time.Duration{0, time.Second, 30 * time.Minute, ttl - time.Second} {
		sub, role, err := c.Verify(token, t0.Add(eps))
		if err != nil {
			t.Fatalf("eps=%v: unexpected error %v", eps, err)
		}
		if sub != "alice" || role != domain.RoleAdmin {
			t.Fatalf("eps=%v: got (%q, %q)", eps, sub, role)
		}
	}
}

func TestJWTCodec_SubSecondIssueKeepsFullTTL(t *testing.T) {
	ttl := time.Hour
	c := newTestCodec(t, ttl)

	for _, offset := range []time.Duration{900 * time.Millisecond, 123456 * time.Microsecond} {
		issued := t0.Add(offset)
		token, err := c.Issue("alice", domain.RoleUser, issued)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}

		for _, eps := range []time.Duration{0, 500 * time.Millisecond, ttl - 500*time.Millisecond, ttl - time.Millisecond} {
			if _, _, err := c.Verify(token, issued.Add(eps)); err != nil {
				t.Fatalf("offset=%v eps=%v: unexpected error %v", offset, eps, err)
			}
		}
		if _, _, err := c.Verify(token, issued.Add(ttl)); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("offset=%v: expected ErrTokenExpired at TTL, got %v", offset, err)
		}
	}
}

func TestJWTCodec_ExpiredAtAndAfterTTL(t *testing.T) {
	ttl := time.Hour
	c := newTestCodec(t, ttl)
	token, _ := c.Issue("alice", domain.RoleUser, t0)

	for _, eps := range []time.Duration{ttl, ttl + time.Second, 48 * time.Hour} {
		_, _, err := c.Verify(token, t0.Add(eps))
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("eps=%v: expected ErrTokenExpired, got %v", eps, err)
		}
		if !errors.Is(err, domain.ErrInvalidToken) || !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("eps=%v: expired error must match ErrInvalidToken and ErrUnauthenticated", eps)
		}
	}
}

func TestJWTCodec_TamperingAnyByteFails(t *testing.T) {
	c := newTestCodec(t, time.Hour)
	token, _ := c.Issue("carol", domain.RoleUser, t0)

	for i := 0; i < len(token); i++ {
		repl := byte('a')
		if token[i] == 'a' {
			repl = 'b'
		}
		tampered := token[:i] + string(repl) + token[i+1:]

		if _, _, err := c.Verify(tampered, t0); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("byte %d: tampered token verified (err=%v)", i, err)
		}
	}
}

func TestJWTCodec_DistinctFailures(t *testing.T) {
	c := newTestCodec(t, time.Hour)
	other, _ := NewJWTCodec(strings.Repeat("z", MinSecretLength), time.Hour)
	foreign, _ := other.Issue("alice", domain.RoleAdmin, t0)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token without exp: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		want   error
		reason string
	}{
		{"garbage", "not-a-token", ErrTokenMalformed, "malformed"},
		{"empty", "", ErrTokenMalformed, "malformed"},
		{"two segments", "abc.def", ErrTokenMalformed, "malformed"},
		{"missing exp", noExp, ErrTokenMalformed, "malformed"},
		{"other secret", foreign, ErrTokenSignature, "bad_signature"},
		{"alg none", noneToken, ErrTokenSignature, "bad_signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.Verify(tt.token, t0)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got := FailureReason(err); got != tt.reason {
				t.Fatalf("FailureReason = %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestJWTCodec_RejectsUnknownRole(t *testing.T) {
	c := newTestCodec(t, time.Hour)
	token, _ := c.Issue("mallory", domain.Role("ROOT"), t0)

	if _, _, err := c.Verify(token, t0); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for unknown role, got %v", err)
	}
}

func TestJWTCodec_ClaimsLayout(t *testing.T) {
	c := newTestCodec(t, time.Hour)
	token, _ := c.Issue("alice", domain.RoleUser, t0)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if claims["sub"] != "alice" || claims["role"] != "USER" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if int64(claims["iat"].(float64)) != t0.Unix() {
		t.Fatalf("iat = %v, want %d", claims["iat"], t0.Unix())
	}
	if int64(claims["exp"].(float64)) != t0.Add(time.Hour).Unix() {
		t.Fatalf("exp = %v, want %d", claims["exp"], t0.Add(time.Hour).Unix())
	}
}
