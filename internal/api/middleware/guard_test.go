package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/core/domain"
)

var testPolicy = Policy{
	"GET /api/products":   domain.AccessPublic,
	"POST /api/products":  domain.AccessAdmin,
	"GET /api/users/:id":  domain.AccessAdmin,
	"GET /api/me/profile": domain.AccessAuthenticated,
}

func runGuard(method, path string, p *domain.Principal) (bool, error) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	if p != nil {
		SetPrincipal(c, *p)
	}

	called := false
	err := Guard(testPolicy)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestGuard(t *testing.T) {
	anon := domain.Anonymous
	user := domain.NewPrincipal("bob", domain.RoleUser)
	admin := domain.NewPrincipal("alice", domain.RoleAdmin)

	tests := []struct {
		name    string
		method  string
		path    string
		caller  *domain.Principal
		wantErr error
	}{
		{"public anonymous", http.MethodGet, "/api/products", &anon, nil},
		{"public without principal", http.MethodGet, "/api/products", nil, nil},
		{"admin route anonymous", http.MethodGet, "/api/users/:id", &anon, domain.ErrUnauthenticated},
		{"admin route user", http.MethodGet, "/api/users/:id", &user, domain.ErrForbidden},
		{"admin route admin", http.MethodGet, "/api/users/:id", &admin, nil},
		{"same path other method is admin", http.MethodPost, "/api/products", &user, domain.ErrForbidden},
		{"authenticated route anonymous", http.MethodGet, "/api/me/profile", &anon, domain.ErrUnauthenticated},
		{"authenticated route user", http.MethodGet, "/api/me/profile", &user, nil},
		{"unlisted defaults to authenticated", http.MethodDelete, "/api/unknown", &anon, domain.ErrUnauthenticated},
		{"unlisted allows any caller", http.MethodDelete, "/api/unknown", &user, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called, err := runGuard(tt.method, tt.path, tt.caller)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if called != (tt.wantErr == nil) {
				t.Fatalf("next called = %v, want %v", called, tt.wantErr == nil)
			}
		})
	}
}

func TestPolicy_RequiredDefault(t *testing.T) {
	if got := (Policy{}).Required(http.MethodGet, "/anything"); got != domain.AccessAuthenticated {
		t.Fatalf("expected AccessAuthenticated default, got %v", got)
	}
}
