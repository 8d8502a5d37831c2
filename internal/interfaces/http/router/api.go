package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/podplatform/backend/internal/infrastructure/config"
	"github.com/podplatform/backend/internal/infrastructure/logger"
	"github.com/podplatform/backend/internal/infrastructure/telemetry"
	"github.com/podplatform/backend/internal/interfaces/http/handler"
	"github.com/podplatform/backend/internal/interfaces/http/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers the API mounts
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Orders      *handler.OrderHandler
	Payments    *handler.PaymentHandler
	Integration *handler.IntegrationHandler
	SiteConfig  *handler.SiteConfigHandler
	System      *handler.SystemHandler
}

// Options carries what the engine needs besides the handlers
type Options struct {
	Config   *config.Config
	Auth     middleware.AuthConfig
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

// API is the assembled HTTP engine
type API struct {
	Engine   *gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops the rate limiter janitors
func (a *API) Close() {
	for _, l := range a.limiters {
		l.Stop()
	}
}

// New builds the engine with the middleware chain and every route.
//
// Order: request id, recovery, access log, tracing, CORS, security headers,
// body limit, rate limit, metrics.
func New(h Handlers, opts Options) *API {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	api := &API{Engine: gin.New()}
	engine := api.Engine

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled)...)
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    append(middleware.DefaultCORSConfig().ExposeHeaders, handler.ProductionFileURLHeader),
		AllowCredentials: true,
		MaxAge:           middleware.DefaultCORSConfig().MaxAge,
	}))
	engine.Use(middleware.Secure(cfg.App.Env == "production"))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		api.limiters = append(api.limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	if opts.Registry != nil {
		engine.Use(telemetry.NewHTTPMetrics(opts.Registry).Middleware())
		engine.GET("/metrics", gin.WrapH(telemetry.Handler(opts.Registry)))
	}

	engine.GET("/", h.System.Root)
	engine.GET("/health", h.System.Health)

	if cfg.Production.StorageBackend == "local" && strings.HasPrefix(cfg.Production.PublicBaseURL, "/") {
		engine.Static(cfg.Production.PublicBaseURL, cfg.Production.OutputDir)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	authn := middleware.Authenticate(opts.Auth)

	authRoutes := NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		api.limiters = append(api.limiters, limiter)
		authRoutes.Use(middleware.RateLimit(limiter))
	}
	authRoutes.POST("/register", h.Auth.Register)
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/logout", authn, middleware.RequireUser(), h.Auth.Logout)

	publicRoutes := NewDomainGroup("public", "")
	publicRoutes.GET("/site-config", h.SiteConfig.Public)

	userRoutes := NewDomainGroup("user", "").Use(authn, middleware.RequireUser())
	userRoutes.POST("/orders", h.Orders.Create)
	userRoutes.GET("/orders/:id", h.Orders.GetOwn)
	userRoutes.POST("/orders/:id/payments", h.Payments.Pay)
	userRoutes.GET("/orders/:id/payments", h.Payments.List)

	integrations := userRoutes.Group("integration", "/integrations")
	integrations.POST("/connect/:platform", h.Integration.Connect)
	integrations.GET("/stores", h.Integration.ListStores)
	integrations.POST("/sync/:store_id", h.Integration.Sync)
	integrations.GET("/orders", h.Integration.ImportedOrders)

	adminRoutes := NewDomainGroup("admin", "/admin").Use(authn, middleware.RequireAdmin())
	adminRoutes.GET("/users", h.Users.List)
	adminRoutes.GET("/users/:id", h.Users.Get)
	adminRoutes.POST("/users/:id/activate", h.Users.Activate)
	adminRoutes.POST("/users/:id/deactivate", h.Users.Deactivate)
	adminRoutes.PUT("/users/:id/pricing", h.Users.UpdatePricing)
	adminRoutes.GET("/orders", h.Orders.List)
	adminRoutes.GET("/orders/:id", h.Orders.Get)
	adminRoutes.POST("/orders/:id/verify", h.Orders.Verify)
	adminRoutes.POST("/orders/:id/ship", h.Orders.Ship)
	adminRoutes.POST("/orders/:id/production-file", h.Orders.ProductionFile)
	adminRoutes.GET("/site-config", h.SiteConfig.List)
	adminRoutes.POST("/site-config", h.SiteConfig.BulkUpdate)
	adminRoutes.GET("/config/payment", h.SiteConfig.GetPaymentConfig)
	adminRoutes.POST("/config/payment", h.SiteConfig.UpdatePaymentConfig)

	r.Register(authRoutes).
		Register(publicRoutes).
		Register(userRoutes).
		Register(adminRoutes)
	r.Setup()

	return api
}
