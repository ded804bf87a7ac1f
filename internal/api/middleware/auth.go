package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/api/metrics"
	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/infrastructure/security"
)

const principalKey = "principal"

// Authenticate resolves the caller from the Authorization header. A request
// without the header continues as anonymous. A header that is present but
// unusable ends the request with 401 before the handler runs.
func Authenticate(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				SetPrincipal(c, domain.Anonymous)
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("bad_scheme").Inc()
				return domain.ErrInvalidToken
			}

			subject, role, err := verifier.Verify(parts[1], time.Now())
			if err != nil {
				reason := security.FailureReason(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Str("reason", reason).Str("path", c.Request().URL.Path).Msg("bearer token rejected")
				return domain.ErrInvalidToken
			}

			SetPrincipal(c, domain.NewPrincipal(subject, role))
			return next(c)
		}
	}
}

// SetPrincipal stores the caller for the rest of the request.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the caller resolved by Authenticate, or
// domain.Anonymous when none was stored.
func PrincipalFrom(c echo.Context) domain.Principal {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok {
		return domain.Anonymous
	}
	return p
}
