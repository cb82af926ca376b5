package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/uscl/transaction-tracker/internal/api/handler"
	"github.com/uscl/transaction-tracker/internal/api/middleware"
	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
	"github.com/uscl/transaction-tracker/internal/infrastructure/http/handlers"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth         ports.AuthService
	Admins       ports.AdminService
	Clients      ports.ClientService
	Transactions ports.TransactionService
	History      ports.HistoryService
}

// Options configure the HTTP surface around the services.
type Options struct {
	JWTSecret string
	Logger    zerolog.Logger

	// LoginLimiter throttles POST /api/auth/login; nil disables it.
	LoginLimiter middleware.Limiter
	// CORSOrigins defaults to any origin when empty.
	CORSOrigins []string
	// Readiness lists the dependencies checked by /health/ready.
	Readiness []handlers.DependencyCheck

	// MetricsRegisterer enables HTTP metrics and the /metrics route.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer

	// Swagger mounts the API docs under /swagger/*.
	Swagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(opts.CORSOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			handler.IdempotencyHeader,
		},
	}))

	if opts.MetricsRegisterer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "tracking",
			Subsystem:  "http",
			Registerer: opts.MetricsRegisterer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: opts.MetricsGatherer,
		}))
	}

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(opts.Readiness...).Readiness)

	if opts.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	adminHandler := handler.NewAdminHandler(svc.Admins)
	clientHandler := handler.NewClientHandler(svc.Clients)
	txHandler := handler.NewTransactionHandler(svc.Transactions)
	historyHandler := handler.NewHistoryHandler(svc.History)

	writers := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)
	superAdmins := middleware.RBAC(domain.RoleSuperAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, middleware.OptionalAuth(opts.JWTSecret))
	auth.POST("/login", authHandler.Login, middleware.RateLimit(opts.LoginLimiter, opts.Logger))

	// Everything else needs a valid token. Reads are open to every role.
	protected := api.Group("", middleware.Auth(opts.JWTSecret))

	protected.GET("/admins", adminHandler.List)
	protected.GET("/admins/:id", adminHandler.Get)
	protected.PUT("/admins/:id", adminHandler.Update, superAdmins)
	protected.DELETE("/admins/:id", adminHandler.Delete, superAdmins)

	protected.GET("/clients", clientHandler.List)
	protected.GET("/clients/:id", clientHandler.Get)
	protected.POST("/clients", clientHandler.Create, writers)
	protected.PUT("/clients/:id", clientHandler.Update, writers)
	protected.DELETE("/clients/:id", clientHandler.Delete, writers)

	protected.GET("/transactions", txHandler.List)
	protected.GET("/transactions/:trackingId", txHandler.Get)
	protected.POST("/transactions", txHandler.Create, writers)
	protected.PUT("/transactions/:trackingId", txHandler.Update, writers)
	protected.DELETE("/transactions/:trackingId", txHandler.Delete, writers)
	protected.GET("/statuses", txHandler.Statuses)

	protected.GET("/transaction-history", historyHandler.List)
	protected.GET("/transaction-history/:trackingId", historyHandler.Get)
	protected.DELETE("/transaction-history/:trackingId", historyHandler.Delete, writers)

	return e
}

func corsOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
