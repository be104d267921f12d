package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/sawmill/backend/internal/application/audit"
	catalogapp "github.com/sawmill/backend/internal/application/catalog"
	productionapp "github.com/sawmill/backend/internal/application/production"
	timberapp "github.com/sawmill/backend/internal/application/timber"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/infrastructure/cache"
	"github.com/sawmill/backend/internal/infrastructure/config"
	"github.com/sawmill/backend/internal/infrastructure/logger"
	"github.com/sawmill/backend/internal/infrastructure/persistence"
	"github.com/sawmill/backend/internal/interfaces/http/handler"
	"github.com/sawmill/backend/internal/interfaces/http/middleware"
	"github.com/sawmill/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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

	log.Info("Starting Sawmill Backend",
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

	// Initialize repositories
	logRepo := persistence.NewGormLogRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	woodTypeRepo := persistence.NewGormWoodTypeRepository(db.DB)
	productTypeRepo := persistence.NewGormProductTypeRepository(db.DB)
	batchRepo := persistence.NewGormProductionBatchRepository(db.DB)

	// Transaction scopes
	purchaseScope := persistence.NewGormPurchaseScope(db.DB)
	productionScope := persistence.NewGormProductionScope(db.DB)

	// Application services
	logService := timberapp.NewLogService(purchaseScope, logRepo, ledgerRepo)
	productionService := productionapp.NewProductionService(productionScope, logRepo, batchRepo)
	masterDataService := catalogapp.NewMasterDataService(supplierRepo, woodTypeRepo, productTypeRepo)
	auditService := auditapp.NewAuditService(logRepo, ledgerRepo, productTypeRepo)

	// Idempotency store: redis when configured, in-process fallback otherwise
	idempotencyStore := newIdempotencyStore(cfg, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()
	productionService.SetIdempotencyStore(idempotencyStore, shared.DefaultIdempotencyConfig())

	// Handlers
	logHandler := handler.NewLogHandler(logService)
	productionHandler := handler.NewProductionHandler(productionService)
	masterDataHandler := handler.NewMasterDataHandler(masterDataService)
	auditHandler := handler.NewAuditHandler(auditService)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Register custom validator tag names
	middleware.SetupValidator()

	// Initialize gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Routes
	r := router.NewRouter(engine)

	timberRoutes := router.NewDomainGroup("timber", "/timber")
	timberRoutes.POST("/logs", logHandler.Create)
	timberRoutes.GET("/logs", logHandler.List)
	timberRoutes.GET("/logs/in-stock", logHandler.ListInStock)
	timberRoutes.GET("/logs/tag/:tag", logHandler.GetByTag)
	timberRoutes.GET("/logs/:id", logHandler.GetByID)
	timberRoutes.GET("/logs/:id/ledger", logHandler.GetLedger)
	timberRoutes.POST("/valuation/preview", logHandler.PreviewValuation)
	timberRoutes.GET("/summary", logHandler.StockSummary)

	productionRoutes := router.NewDomainGroup("production", "/production")
	productionRoutes.POST("/runs", productionHandler.RecordRun)
	productionRoutes.POST("/auto-allocate", productionHandler.AutoAllocate)
	productionRoutes.GET("/batches", productionHandler.ListBatches)
	productionRoutes.GET("/batches/:id", productionHandler.GetBatch)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/suppliers", masterDataHandler.CreateSupplier)
	catalogRoutes.GET("/suppliers", masterDataHandler.ListSuppliers)
	catalogRoutes.GET("/suppliers/:id", masterDataHandler.GetSupplier)
	catalogRoutes.POST("/wood-types", masterDataHandler.CreateWoodType)
	catalogRoutes.GET("/wood-types", masterDataHandler.ListWoodTypes)
	catalogRoutes.POST("/product-types", masterDataHandler.CreateProductType)
	catalogRoutes.GET("/product-types", masterDataHandler.ListProductTypes)
	catalogRoutes.GET("/product-types/:id", masterDataHandler.GetProductType)

	auditRoutes := router.NewDomainGroup("audit", "/audit")
	auditRoutes.GET("/reconciliation", auditHandler.Reconcile)
	auditRoutes.GET("/inventory", auditHandler.ProductInventory)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(timberRoutes).
		Register(productionRoutes).
		Register(catalogRoutes).
		Register(auditRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

// newIdempotencyStore prefers redis so duplicate-submission detection works
// across instances; without a configured redis host the in-process store
// still protects a single instance.
func newIdempotencyStore(cfg *config.Config, log *zap.Logger) shared.IdempotencyStore {
	if cfg.Redis.Host != "" {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory idempotency store",
				zap.Error(err))
		} else {
			log.Info("Using redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
			return store
		}
	}
	return cache.NewInMemoryIdempotencyStore()
}
