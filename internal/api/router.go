package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/handler"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/middleware"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/economics"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/service"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/token"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/infrastructure/audit"
	mongodb "github.com/Trungtrucpixel/vcareglobal-sub001/internal/infrastructure/db/mongo"
	redisdb "github.com/Trungtrucpixel/vcareglobal-sub001/internal/infrastructure/db/redis"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/infrastructure/session"
)

// RouterConfig carries the settings the HTTP layer needs from the
// environment configuration.
type RouterConfig struct {
	JWTSecret       string
	SessionLifetime time.Duration
	SecureCookies   bool
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// NewRouter builds the Echo instance with all routes registered. The context
// bounds the lifetime of the background audit writer.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Dependencies ---
	issuer, err := token.NewIssuer(cfg.JWTSecret, token.DefaultTTL)
	if err != nil {
		return nil, err
	}

	identityRepo := mongodb.NewIdentityRepository(db)
	if err := identityRepo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	auditRecorder := audit.NewRecorder(mongodb.NewAuditRepository(db), log)
	auditRecorder.Start(ctx)

	sessions := session.NewManager(rdb, session.Config{
		Lifetime:      cfg.SessionLifetime,
		SecureCookies: cfg.SecureCookies,
	})

	authService := service.NewAuthService(identityRepo, issuer)
	authHandler := handler.NewAuthHandler(authService, sessions, auditRecorder)
	sharesHandler := handler.NewSharesHandler(economics.DefaultTables)

	authenticate := middleware.Authenticate(sessions, identityRepo, issuer, log)
	limitLogin := middleware.RateLimit(redisdb.NewRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow), log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("membership"))
	e.Use(echo.WrapMiddleware(sessions.LoadAndSave))

	// --- Auth routes ---
	e.POST("/register", authHandler.Register, limitLogin)
	e.POST("/login", authHandler.Login, limitLogin)
	e.POST("/logout", authHandler.Logout, authenticate)
	e.GET("/user", authHandler.Me, authenticate)
	e.POST("/auth/login", authHandler.TokenLogin, limitLogin)
	e.POST("/auth/refresh", authHandler.Refresh, authenticate)

	// --- Share economics ---
	e.POST("/shares/preview", sharesHandler.Preview, authenticate, middleware.RequireCustomer())

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
