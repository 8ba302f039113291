package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/youapp/profile-api/docs"
	"github.com/youapp/profile-api/internal/api/handler"
	"github.com/youapp/profile-api/internal/api/middleware"
	"github.com/youapp/profile-api/internal/core/ports"
	"github.com/youapp/profile-api/internal/core/service"
	mongodb "github.com/youapp/profile-api/internal/infrastructure/db/mongo"
	redisdb "github.com/youapp/profile-api/internal/infrastructure/db/redis"
	"github.com/youapp/profile-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with all dependencies wired explicitly
// and all routes registered. rdb may be nil when the in-memory revocation
// backend is configured.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("profile_api"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	issuer := service.NewTokenIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	var registry ports.RevocationRegistry
	if cfg.Auth.RevocationBackend == "redis" && rdb != nil {
		registry = redisdb.NewRevocationRegistry(rdb)
	} else {
		memRegistry := service.NewRevocationRegistry()
		memRegistry.Start(ctx)
		registry = memRegistry
	}

	authService := service.NewAuthService(accountRepo, issuer, registry, log)
	profileService := service.NewProfileService(accountRepo, profileRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	authGuard := middleware.Auth(issuer, registry)
	refreshGuard := middleware.Refresh(issuer)

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout, authGuard)
	e.POST("/api/refresh", authHandler.Refresh, refreshGuard)

	// --- Profile routes ---
	e.POST("/api/profile", profileHandler.Create, authGuard)
	e.GET("/api/profile", profileHandler.Get, authGuard)
	e.PUT("/api/profile", profileHandler.Update, authGuard)
	e.DELETE("/api/profile", profileHandler.Delete, authGuard)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
