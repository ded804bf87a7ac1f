package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/api/handler"
	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/infrastructure/security"
)

const routerSecret = "router-test-secret-0123456789abcdef"

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, username, _ string) (*ports.AuthResult, error) {
	return &ports.AuthResult{AccessToken: "tok", Username: username, Role: domain.RoleUser}, nil
}

func (fakeAuth) Register(_ context.Context, username, _ string) (*ports.AuthResult, error) {
	return &ports.AuthResult{AccessToken: "tok", Username: username, Role: domain.RoleUser}, nil
}

type fakeUsers struct{ ports.UserService }

func (fakeUsers) ListUsers(context.Context) ([]*domain.User, error) {
	return []*domain.User{{ID: 3, Username: "carol", Role: domain.RoleUser}}, nil
}

type fakeCatalog struct{ ports.CatalogService }

func (fakeCatalog) ListProducts(context.Context, int64) ([]*domain.Product, error) {
	return []*domain.Product{}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *security.JWTCodec) {
	t.Helper()
	codec, err := security.NewJWTCodec(routerSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTCodec: %v", err)
	}
	e := NewRouter(Deps{
		Auth:     fakeAuth{},
		Users:    fakeUsers{},
		Catalog:  fakeCatalog{},
		Verifier: codec,
		Checks:   map[string]handler.DependencyCheck{},
		Log:      zerolog.Nop(),
	})
	return e, codec
}

func doRequest(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func kindOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Kind
}

func TestRouter_AdminRouteAccess(t *testing.T) {
	h, codec := newTestRouter(t)
	userToken, _ := codec.Issue("bob", domain.RoleUser, time.Now())
	adminToken, _ := codec.Issue("alice", domain.RoleAdmin, time.Now())

	rec := doRequest(h, http.MethodGet, "/api/users", "", "")
	if rec.Code != http.StatusUnauthorized || kindOf(t, rec) != KindUnauthenticated {
		t.Fatalf("anonymous: got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(h, http.MethodGet, "/api/users", userToken, "")
	if rec.Code != http.StatusForbidden || kindOf(t, rec) != KindForbidden {
		t.Fatalf("user: got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(h, http.MethodGet, "/api/users", adminToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "carol") {
		t.Fatalf("admin: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_InvalidTokenRejectedEvenOnPublicRoute(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doRequest(h, http.MethodGet, "/api/products", "garbage", "")
	if rec.Code != http.StatusUnauthorized || kindOf(t, rec) != KindUnauthenticated {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ExpiredToken(t *testing.T) {
	h, codec := newTestRouter(t)
	expired, _ := codec.Issue("alice", domain.RoleAdmin, time.Now().Add(-2*time.Hour))

	rec := doRequest(h, http.MethodGet, "/api/users", expired, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, tc := range []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/products", "", http.StatusOK},
		{http.MethodPost, "/api/auth/login", `{"username":"bob","password":"pw"}`, http.StatusOK},
		{http.MethodPost, "/api/auth/register", `{"username":"bob","password":"secret"}`, http.StatusCreated},
	} {
		rec := doRequest(h, tc.method, tc.path, "", tc.body)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestRouter_CatalogWritesNeedAdmin(t *testing.T) {
	h, codec := newTestRouter(t)
	userToken, _ := codec.Issue("bob", domain.RoleUser, time.Now())

	rec := doRequest(h, http.MethodPost, "/api/products", userToken, `{"name":"x","description":"y","price":1}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRoutePolicy_CoversRegisteredRoutes(t *testing.T) {
	codec, _ := security.NewJWTCodec(routerSecret, time.Hour)
	e := NewRouter(Deps{Verifier: codec, Log: zerolog.Nop()})

	for _, r := range e.Routes() {
		if !strings.HasPrefix(r.Path, "/api/") {
			continue
		}
		if _, ok := RoutePolicy[r.Method+" "+r.Path]; !ok {
			t.Fatalf("route %s %s has no explicit access level", r.Method, r.Path)
		}
	}
}
