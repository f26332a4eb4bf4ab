package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	analyticsapp "github.com/vendascrm/backend/internal/application/analytics"
	"github.com/vendascrm/backend/internal/application/importing"
	"github.com/vendascrm/backend/internal/infrastructure/cache"
	"github.com/vendascrm/backend/internal/infrastructure/config"
	"github.com/vendascrm/backend/internal/infrastructure/logger"
	"github.com/vendascrm/backend/internal/infrastructure/persistence"
	"github.com/vendascrm/backend/internal/interfaces/http/handler"
	"github.com/vendascrm/backend/internal/interfaces/http/middleware"
	"github.com/vendascrm/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting sales analytics backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Analysis cache: Redis when configured, in-memory otherwise
	cacheFactory := cache.NewAnalysisCacheFactory(cfg.Redis, cache.WithLogger(log))
	analysisCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize analysis cache", zap.Error(err))
	}
	defer func() {
		if err := analysisCache.Close(); err != nil {
			log.Error("Error closing analysis cache", zap.Error(err))
		}
	}()

	// Initialize repositories
	ledgerRepo := persistence.NewGormSaleLineRepository(db.DB)
	rollupRepo := persistence.NewGormRollupRepository(db.DB)

	// Initialize application services
	aggregationService := analyticsapp.NewAggregationService(ledgerRepo, rollupRepo, analysisCache, log)
	customerService := analyticsapp.NewCustomerAnalysisService(rollupRepo, ledgerRepo, analysisCache, cfg.Analytics.CacheTTL, log)
	productService := analyticsapp.NewProductAnalysisService(rollupRepo, ledgerRepo, analysisCache, cfg.Analytics.CacheTTL, log)
	dashboardService := analyticsapp.NewDashboardService(rollupRepo, ledgerRepo, analysisCache, cfg.Analytics.CacheTTL, log)
	importService := importing.NewLedgerImportService(ledgerRepo, aggregationService, log, cfg.Analytics.ImportBatchMax)

	// Initialize HTTP handlers
	analyticsHandler := handler.NewAnalyticsHandler(customerService, productService, dashboardService, aggregationService)
	importHandler := handler.NewSalesImportHandler(importService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Full-ledger imports arrive as one request body
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Probes live outside API versioning
	systemHandler.RegisterRootRoutes(engine)

	// Versioned API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(analyticsHandler).
		Register(importHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
