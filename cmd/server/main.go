// Command server runs the POD platform HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/podplatform/backend/internal/application/identity"
	"github.com/podplatform/backend/internal/application/integration"
	"github.com/podplatform/backend/internal/application/order"
	"github.com/podplatform/backend/internal/application/payment"
	"github.com/podplatform/backend/internal/application/production"
	"github.com/podplatform/backend/internal/application/siteconfig"
	domainintegration "github.com/podplatform/backend/internal/domain/integration"
	"github.com/podplatform/backend/internal/infrastructure/auth"
	"github.com/podplatform/backend/internal/infrastructure/cache"
	"github.com/podplatform/backend/internal/infrastructure/config"
	"github.com/podplatform/backend/internal/infrastructure/ecommerce"
	"github.com/podplatform/backend/internal/infrastructure/event"
	"github.com/podplatform/backend/internal/infrastructure/logger"
	"github.com/podplatform/backend/internal/infrastructure/notification"
	infrapayment "github.com/podplatform/backend/internal/infrastructure/payment"
	"github.com/podplatform/backend/internal/infrastructure/persistence"
	"github.com/podplatform/backend/internal/infrastructure/printing"
	"github.com/podplatform/backend/internal/infrastructure/storage"
	"github.com/podplatform/backend/internal/infrastructure/telemetry"
	"github.com/podplatform/backend/internal/interfaces/http/handler"
	"github.com/podplatform/backend/internal/interfaces/http/middleware"
	"github.com/podplatform/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POD platform",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		_ = tracerProvider.Shutdown(context.Background())
	}()

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate tables", zap.Error(err))
		}
	}

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.App.Env == "development"
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Redis backs the sync and payment locks and token revocations when enabled
	lock, redisClient, err := cache.NewKeyLockFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateLock()
	if err != nil {
		log.Fatal("Failed to create key lock", zap.Error(err))
	}
	defer func() {
		_ = lock.Close()
	}()

	var revocations auth.TokenRevocations = auth.NewInMemoryTokenRevocations()
	if redisClient != nil {
		revocations = auth.NewRedisTokenRevocations(redisClient)
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	registry := telemetry.NewRegistry()
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(telemetry.NewDomainMetrics(registry))
	shippedHandler := order.NewOrderShippedHandler(userRepo, notification.NewLogNotifier(log), log)
	bus.Subscribe(shippedHandler)
	log.Info("Event handlers registered", zap.Strings("order_shipped_events", shippedHandler.EventTypes()))

	jwtService := auth.NewJWTService(cfg.Auth)

	authService := identity.NewAuthService(userRepo, jwtService, revocations, bus, log)
	userService := identity.NewUserService(userRepo, revocations, jwtService, bus, log)
	siteConfigService := siteconfig.NewSiteConfigService(persistence.NewGormSiteConfigRepository(db.DB), log)
	orderService := order.NewOrderService(orderRepo, userRepo, bus, log)

	fileStore, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize production file store", zap.Error(err))
	}
	renderer := printing.NewChromedpSheetRenderer(printing.ChromedpConfig{
		RemoteURL: cfg.Production.ChromeRemoteURL,
		NoSandbox: cfg.Production.ChromeNoSandbox,
		Timeout:   cfg.Production.RenderTimeout,
		Logger:    log,
	})
	defer func() {
		_ = renderer.Close()
	}()
	productionService := production.NewProductionService(orderRepo, renderer, fileStore, bus, log)

	paymentService := payment.NewPaymentService(
		persistence.NewGormPaymentRepository(db.DB),
		orderRepo,
		infrapayment.NewRegistry(siteConfigService, cfg.Payment.StripeLive, log),
		lock,
		bus,
		log,
	)

	storeService := integration.NewStoreService(
		persistence.NewGormStoreRepository(db.DB),
		[]domainintegration.OrderSource{
			ecommerce.NewMockEtsySource(log),
			ecommerce.NewMockShopifySource(log),
		},
		integration.NewImportService(orderRepo, bus, log),
		lock,
		integration.StoreServiceConfig{
			SyncLockTTL: cfg.Integration.SyncLockTTL,
			SyncTimeout: cfg.Integration.SyncTimeout,
		},
		log,
	)

	if cfg.Auth.AdminEmail != "" {
		created, err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
		if err != nil {
			log.Fatal("Failed to seed admin account", zap.Error(err))
		}
		if created {
			log.Info("Admin account created", zap.String("email", cfg.Auth.AdminEmail))
		}
	}
	if !cfg.Auth.Enabled {
		log.Warn("Authentication disabled, every caller acts as an admin")
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	api := router.New(router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserHandler(userService),
		Orders:      handler.NewOrderHandler(orderService, productionService),
		Payments:    handler.NewPaymentHandler(paymentService),
		Integration: handler.NewIntegrationHandler(storeService, orderService),
		SiteConfig:  handler.NewSiteConfigHandler(siteConfigService),
		System:      handler.NewSystemHandler(db),
	}, router.Options{
		Config: cfg,
		Auth: middleware.AuthConfig{
			Enabled:     cfg.Auth.Enabled,
			JWTService:  jwtService,
			Revocations: revocations,
			DevUserID:   cfg.Auth.DevUserID,
			Logger:      log,
		},
		Registry: registry,
		Logger:   log,
	})
	defer api.Close()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        api.Engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = shutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
