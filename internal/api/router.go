package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storefront/catalog-api/docs"
	"github.com/storefront/catalog-api/internal/api/handler"
	"github.com/storefront/catalog-api/internal/api/middleware"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. The caller owns the
// lifecycle of the underlying connections.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Catalog  ports.CatalogService
	Verifier ports.TokenVerifier
	Checks   map[string]handler.DependencyCheck
	Log      zerolog.Logger
}

// httpMetrics registers the request collectors once per process.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("storefront")
})

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(httpMetrics())
	e.Use(middleware.Authenticate(d.Verifier, d.Log))
	e.Use(middleware.Guard(RoutePolicy))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Account management ---
	userHandler := handler.NewUserHandler(d.Users)
	users := e.Group("/api/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Catalog ---
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	categories := e.Group("/api/categories")
	categories.GET("", catalogHandler.ListCategories)
	categories.POST("", catalogHandler.CreateCategory)
	categories.GET("/:id", catalogHandler.GetCategory)
	categories.PUT("/:id", catalogHandler.UpdateCategory)
	categories.DELETE("/:id", catalogHandler.DeleteCategory)

	products := e.Group("/api/products")
	products.GET("", catalogHandler.ListProducts)
	products.POST("", catalogHandler.CreateProduct)
	products.GET("/:id", catalogHandler.GetProduct)
	products.PUT("/:id", catalogHandler.UpdateProduct)
	products.DELETE("/:id", catalogHandler.DeleteProduct)

	// --- Health probes, metrics and docs (public) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request. Headers are never
// logged, so bearer tokens stay out of the access log.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("user", middleware.PrincipalFrom(c).Username).
				Msg("request")
			return nil
		},
	})
}
