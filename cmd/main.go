package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vms-admin/internal/cache"
	"vms-admin/internal/clients"
	"vms-admin/internal/config"
	"vms-admin/internal/events"
	"vms-admin/internal/handlers"
	"vms-admin/internal/middleware"
	"vms-admin/internal/store"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/tracing"
)

// @title VMS Admin API
// @version 1.0
// @description View API of the VMS store admin console: catalog, orders and dashboard

// @host localhost:8090
// @BasePath /api/v1
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.App.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	base := logrus.NewEntry(logger)

	// Backend adapter shared by every client
	backend := clients.NewBackendClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Backend.RateLimit, base)
	catalogClient := clients.NewCatalogClient(backend)
	ordersClient := clients.NewOrdersClient(backend)
	dashboardClient := clients.NewDashboardClient(backend)
	logger.WithField("backend", backend.BaseURL()).Info("✓ Backend client initialized")

	// Dashboard snapshot cache (optional - loads go straight to the backend without it)
	var dashboardCache *cache.DashboardCache
	if cfg.CacheEnabled() {
		dashboardCache, err = cache.NewDashboardCache(context.Background(), cfg.Redis.URL, cfg.Redis.CacheTTL, base)
		if err != nil {
			logger.WithError(err).Warn("Continuing without dashboard caching")
			dashboardCache = nil
		} else {
			logger.Info("✓ Connected to Redis for dashboard caching")
		}
	} else {
		logger.Info("REDIS_URL not configured, dashboard caching disabled")
	}

	// Audit events publisher (no-op without NATS_URL)
	eventsPublisher, err := events.NewPublisher(cfg.NATS.URL, logger)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize NATS events publisher, continuing without audit events")
		eventsPublisher = events.Noop()
	}

	// Stores
	catalog := store.NewCatalogStore(catalogClient, eventsPublisher, backend.BaseURL(), base)
	views := store.NewSizeViews(catalogClient, eventsPublisher, base)
	pipeline := store.NewOrderPipeline(ordersClient, eventsPublisher, base)

	var snapshotCache store.SnapshotCache
	readiness := map[string]handlers.Pinger{}
	if dashboardCache != nil {
		snapshotCache = dashboardCache
		readiness["redis"] = dashboardCache
	}
	dashboard := store.NewDashboard(dashboardClient, snapshotCache, base)

	// Initial page loads
	initCtx, initCancel := context.WithTimeout(context.Background(), 2*cfg.Backend.Timeout)
	if err := catalog.FetchAll(initCtx); err != nil {
		logger.WithError(err).Warn("Initial catalog load incomplete")
	}
	if err := pipeline.Refresh(initCtx); err != nil {
		logger.WithError(err).Warn("Initial orders load incomplete")
	}
	initCancel()

	// Initialize OpenTelemetry tracing
	var tracerProvider *tracing.TracerProvider
	if cfg.IsProduction() {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("vms-admin"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("vms-admin"))
	}
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize tracing, continuing without tracing")
	} else {
		logger.Info("✓ OpenTelemetry tracing initialized")
	}

	// Initialize Prometheus metrics
	metrics := gosharedmw.InitGlobalMetrics("vms", "admin")

	productsHandler := handlers.NewProductsHandler(catalog, views, base)
	ordersHandler := handlers.NewOrdersHandler(pipeline, cfg.App.StoreName, base)
	dashboardHandler := handlers.NewDashboardHandler(dashboard)
	healthHandler := handlers.NewHealthHandler(readiness)

	router := setupRouter(cfg, base, metrics, productsHandler, ordersHandler, dashboardHandler, healthHandler)

	srv := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: router,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("Starting VMS admin server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down VMS admin server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	views.CloseAll()
	eventsPublisher.Close()
	logger.Info("✓ Events publisher closed")

	if dashboardCache != nil {
		if err := dashboardCache.Close(); err != nil {
			logger.WithError(err).Warn("Error closing redis client")
		}
	}

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("Error shutting down tracer provider")
		} else {
			logger.Info("✓ Tracer provider shut down")
		}
	}

	logger.Info("VMS admin server stopped")
}

func setupRouter(cfg *config.Config, logger *logrus.Entry, metrics *gosharedmw.Metrics, products *handlers.ProductsHandler, orders *handlers.OrdersHandler, dashboard *handlers.DashboardHandler, health *handlers.HealthHandler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	handlers.ConfigurePaths(router)

	httpLogger := logger.WithField("component", "http")
	router.Use(middleware.Recovery(httpLogger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(httpLogger))
	router.Use(gosharedmw.SecurityHeaders())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Observability middleware (metrics + tracing)
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("vms-admin"))
	router.Use(gosharedmw.CompressionMiddleware())

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/metrics", gosharedmw.Handler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.RegisterRoutes(router.Group("/api/v1"), products, orders, dashboard)

	return router
}
