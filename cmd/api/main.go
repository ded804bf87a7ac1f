// Command api runs the storefront catalog HTTP API.
//
// @title                       Storefront Catalog API
// @version                     1.0
// @description                 Catalog backend with token authentication, role-based access control and admin account management.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/storefront/catalog-api/internal/api"
	"github.com/storefront/catalog-api/internal/api/handler"
	"github.com/storefront/catalog-api/internal/core/service"
	"github.com/storefront/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/storefront/catalog-api/internal/infrastructure/db/redis"
	"github.com/storefront/catalog-api/internal/infrastructure/queue"
	"github.com/storefront/catalog-api/internal/infrastructure/security"
	"github.com/storefront/catalog-api/internal/pkg/config"
	"github.com/storefront/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("api stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not configured yet
		logger.Init(logger.Options{Service: "catalog-api"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "catalog-api",
	})

	// --- Connections ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "catalog-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		PoolSize:   cfg.Redis.PoolSize,
		ClientName: "catalog-api",
		Timeout:    cfg.Redis.Timeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Stores ---
	users := mongo.NewUserRepository(db)
	audits := mongo.NewAuditRepository(db)
	categories := mongo.NewCategoryRepository(db)
	products := mongo.NewProductRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, audits, categories, products); err != nil {
		return err
	}

	// --- Security ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec, err := security.NewJWTCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockoutWindow)

	if cfg.Auth.SeedDefaultAccounts {
		if err := service.SeedAccounts(ctx, users, hasher, service.DefaultAccounts, logger.For("seed")); err != nil {
			return err
		}
	}

	// --- Services ---
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, audits, logger.For("audit"))
	authService := service.NewAuthService(users, hasher, codec, limiter, dispatcher, logger.For("auth"))
	userService := service.NewUserService(users, hasher, dispatcher, logger.For("users"))
	catalogService := service.NewCatalogService(categories, products)

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Users:    userService,
		Catalog:  catalogService,
		Verifier: codec,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error {
				return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
			},
			"redis": redisdb.Check(rdb),
		},
		Log: logger.For("http"),
	})

	// --- Run ---
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	dispatcher.Start(auditCtx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return shutdown(e, stopAudit, dispatcher, shutdownTimeout, log)
	})

	return g.Wait()
}
