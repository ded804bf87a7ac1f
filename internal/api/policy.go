package api

import (
	"net/http"

	"github.com/storefront/catalog-api/internal/api/middleware"
	"github.com/storefront/catalog-api/internal/core/domain"
)

// RoutePolicy is the single table of access requirements, keyed by method and
// route pattern. Anything not listed requires an authenticated caller.
var RoutePolicy = middleware.Policy{
	http.MethodGet + " /health":       domain.AccessPublic,
	http.MethodGet + " /health/ready": domain.AccessPublic,
	http.MethodGet + " /metrics":      domain.AccessPublic,
	http.MethodGet + " /swagger/*":    domain.AccessPublic,

	http.MethodPost + " /api/auth/login":    domain.AccessPublic,
	http.MethodPost + " /api/auth/register": domain.AccessPublic,

	http.MethodGet + " /api/users":        domain.AccessAdmin,
	http.MethodPost + " /api/users":       domain.AccessAdmin,
	http.MethodGet + " /api/users/:id":    domain.AccessAdmin,
	http.MethodPut + " /api/users/:id":    domain.AccessAdmin,
	http.MethodDelete + " /api/users/:id": domain.AccessAdmin,

	http.MethodGet + " /api/categories":        domain.AccessPublic,
	http.MethodGet + " /api/categories/:id":    domain.AccessPublic,
	http.MethodPost + " /api/categories":       domain.AccessAdmin,
	http.MethodPut + " /api/categories/:id":    domain.AccessAdmin,
	http.MethodDelete + " /api/categories/:id": domain.AccessAdmin,

	http.MethodGet + " /api/products":        domain.AccessPublic,
	http.MethodGet + " /api/products/:id":    domain.AccessPublic,
	http.MethodPost + " /api/products":       domain.AccessAdmin,
	http.MethodPut + " /api/products/:id":    domain.AccessAdmin,
	http.MethodDelete + " /api/products/:id": domain.AccessAdmin,
}
