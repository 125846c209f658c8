package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/skilllink/marketplace/docs"
	"github.com/skilllink/marketplace/internal/api/handler"
	"github.com/skilllink/marketplace/internal/api/middleware"
	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
	"github.com/skilllink/marketplace/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Mongo and Redis are optional
// and only feed the readiness probe.
type Deps struct {
	Log            zerolog.Logger
	JWTSecret      string
	TokenTTL       time.Duration
	IdempotencyTTL time.Duration
	// HideDocs drops the /swagger/* route.
	HideDocs       bool

	Auth        ports.AuthService
	Marketplace ports.MarketplaceStore
	Idempotency ports.IdempotencyStore

	Mongo *mongo.Database
	Redis *redis.Client
}

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
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "Idempotency-Key"},
	}))
	e.Use(requestLogger(d.Log))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.TokenTTL)
	jobHandler := handler.NewJobHandler(d.Marketplace, d.Auth, d.Idempotency, d.IdempotencyTTL, d.Log)
	bidHandler := handler.NewBidHandler(d.Marketplace, d.Auth, d.Idempotency, d.IdempotencyTTL, d.Log)
	dashboardHandler := handler.NewDashboardHandler(d.Marketplace, d.Auth)
	authMiddleware := middleware.Auth(d.JWTSecret, d.Auth)
	clientOnly := middleware.RBAC(domain.RoleClient)
	freelancerOnly := middleware.RBAC(domain.RoleFreelancer)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Public catalog ---
	e.GET("/v1/jobs", jobHandler.List)
	e.GET("/v1/jobs/:id", jobHandler.Get)

	// --- Signed-in routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/me", authHandler.Me)
	v1.PATCH("/me", authHandler.UpdateMe)
	v1.GET("/dashboard", dashboardHandler.Get)

	v1.POST("/jobs", jobHandler.Create, clientOnly)
	v1.PATCH("/jobs/:id", jobHandler.Update, clientOnly)
	v1.DELETE("/jobs/:id", jobHandler.Delete, clientOnly)
	v1.GET("/jobs/:id/bids", jobHandler.Bids, clientOnly)

	v1.POST("/jobs/:id/bids", bidHandler.Submit, freelancerOnly)
	v1.GET("/bids/mine", bidHandler.Mine, freelancerOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are optional dependencies up?

	// --- Ops ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if !d.HideDocs {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
