package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/api/metrics"
	"github.com/storefront/catalog-api/internal/core/domain"
)

// Policy maps "METHOD /route/pattern" to the access level it requires.
// Routes missing from the table require an authenticated caller.
type Policy map[string]domain.Access

// Required returns the access level of a route.
func (p Policy) Required(method, path string) domain.Access {
	return p[method+" "+path]
}

// Guard enforces policy for the matched route. It must run after
// Authenticate.
func Guard(policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			required := policy.Required(c.Request().Method, c.Path())
			if err := authorize(required, PrincipalFrom(c)); err != nil {
				status := "forbidden"
				if err == domain.ErrUnauthenticated {
					status = "unauthenticated"
				}
				metrics.AccessDeniedTotal.WithLabelValues(required.String(), status).Inc()
				return err
			}
			return next(c)
		}
	}
}

func authorize(required domain.Access, p domain.Principal) error {
	switch required {
	case domain.AccessPublic:
		return nil
	case domain.AccessAdmin:
		if p.IsAnonymous() {
			return domain.ErrUnauthenticated
		}
		if !p.IsAdmin() {
			return domain.ErrForbidden
		}
		return nil
	default:
		if p.IsAnonymous() {
			return domain.ErrUnauthenticated
		}
		return nil
	}
}
