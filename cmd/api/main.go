// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	redis_a "github.com/yfarouk/dealstack-be/internal/adapters/redis_adapter"
	"github.com/yfarouk/dealstack-be/internal/adapters/storage"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/core/services"
	"github.com/yfarouk/dealstack-be/internal/handlers"
	"github.com/yfarouk/dealstack-be/internal/handlers/middleware"
	"github.com/yfarouk/dealstack-be/internal/pkg/config"
	"github.com/yfarouk/dealstack-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting dealstack API",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	slogger.Info("loading configuration")
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	// Run database migrations outside production; prod migrates in CI
	if cfg.App.Environment != "production" {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
		}
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database          *db.Database
	redisClient       *redis.Client
	redisCache        ports.CacheRepository
	mediaStore        ports.MediaStore
	asynqClient       *asynq.Client
	asynqInspector    *asynq.Inspector
	deviceService     *services.DeviceService
	settlementService *services.SettlementService
	insightService    *services.InsightService
	deviceHandler     *handlers.DeviceHandler
	dealHandler       *handlers.DealHandler
	insightHandler    *handlers.InsightHandler
	exportHandler     *handlers.ExportHandler
	importHandler     *handlers.ImportHandler
	mediaHandler      *handlers.MediaHandler
	healthHandler     *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	slogger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	slogger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		ConnMaxLifetime: cfg.Redis.MaxConnAge,
		PoolTimeout:     cfg.Redis.PoolTimeout,
		ConnMaxIdleTime: cfg.Redis.IdleTimeout,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient
	deps.redisCache = redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)

	slogger.Info("connecting to blob store",
		slog.String("bucket", cfg.AWS.S3Bucket),
	)

	mediaStore, err := storage.NewS3Media(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}
	deps.mediaStore = mediaStore

	slogger.Info("initializing Asynq client")

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Repositories
	deviceRepo := db.NewDeviceRepository(database, slogger)
	dealRepo := db.NewDealRepository(database, slogger)

	// Services
	deps.deviceService = services.NewDeviceService(deviceRepo, mediaStore, slogger)
	deps.settlementService = services.NewSettlementService(dealRepo, deviceRepo, database, deps.redisCache, slogger)
	deps.insightService = services.NewInsightService(dealRepo, database, deps.redisCache, slogger)

	// Handlers
	deps.deviceHandler = handlers.NewDeviceHandler(deps.deviceService, slogger)
	deps.dealHandler = handlers.NewDealHandler(deps.settlementService, deps.asynqClient, slogger)
	deps.insightHandler = handlers.NewInsightHandler(deps.insightService, slogger)
	deps.exportHandler = handlers.NewExportHandler(database, deps.redisCache, slogger)
	deps.mediaHandler = handlers.NewMediaHandler(mediaStore, slogger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, slogger)

	maxFileSize := int64(cfg.FileProcessing.ExcelMaxSizeMB) * 1024 * 1024
	deps.importHandler = handlers.NewImportHandler(deps.asynqClient, slogger, maxFileSize, cfg.FileProcessing.TempDir)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	registerRoutes(mux, deps, cfg)

	// Middleware chain, applied in reverse order (innermost first)
	var handler http.Handler = mux

	if cfg.App.Environment != "test" {
		handler = middleware.RequestID(handler)
		handler = middleware.Logger(slogger)(handler)
		handler = middleware.Recovery(slogger)(handler)
	}

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	apiV1 := "/api/v1"

	// Health and readiness endpoints stay public
	if cfg.Server.EnableHealthCheck {
		mux.HandleFunc("GET /health", deps.healthHandler.Health)
		mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
		mux.HandleFunc("GET "+apiV1+"/health", deps.healthHandler.Health)
	}

	// Everything under /api/v1 requires a dealer session
	auth := middleware.Authenticate(cfg.Security.JWTSecret)
	api := http.NewServeMux()

	// Device inventory
	api.HandleFunc("GET "+apiV1+"/devices/{id}", deps.deviceHandler.GetDevice)
	api.HandleFunc("GET "+apiV1+"/devices", deps.deviceHandler.ListDevices)
	api.HandleFunc("POST "+apiV1+"/devices", deps.deviceHandler.CreateDevice)
	api.HandleFunc("PUT "+apiV1+"/devices/{id}", deps.deviceHandler.UpdateDevice)
	api.HandleFunc("DELETE "+apiV1+"/devices/{id}", deps.deviceHandler.DeleteDevice)
	api.HandleFunc("PATCH "+apiV1+"/devices/status", deps.deviceHandler.UpdateDeviceStatus)

	// Device media
	api.HandleFunc("POST "+apiV1+"/devices/{id}/images/presign", deps.mediaHandler.PresignUpload)
	api.HandleFunc("GET "+apiV1+"/media/presign", deps.mediaHandler.PresignDownload)

	// Deals
	api.HandleFunc("POST "+apiV1+"/deals", deps.dealHandler.SettleDeal)
	api.HandleFunc("GET "+apiV1+"/deals", deps.dealHandler.ListDeals)
	api.HandleFunc("GET "+apiV1+"/deals/{id}", deps.dealHandler.GetDeal)
	api.HandleFunc("GET "+apiV1+"/deals/{id}/conditions", deps.dealHandler.GetPhoneConditions)
	api.HandleFunc("PATCH "+apiV1+"/deals/{id}/paid", deps.dealHandler.MarkDealPaid)
	api.HandleFunc("DELETE "+apiV1+"/deals/{id}", deps.dealHandler.DeleteDeal)

	// Insights
	api.HandleFunc("GET "+apiV1+"/insights/market", deps.insightHandler.GetMarketInsights)
	api.HandleFunc("GET "+apiV1+"/insights/recent-sales", deps.insightHandler.GetRecentSales)

	// Reports
	api.HandleFunc("GET "+apiV1+"/reports/brands", deps.insightHandler.GetBrandAnalytics)
	api.HandleFunc("GET "+apiV1+"/reports/top-models", deps.insightHandler.GetTopModels)
	api.HandleFunc("GET "+apiV1+"/reports/deal-types", deps.insightHandler.GetDealTypeDistribution)
	api.HandleFunc("GET "+apiV1+"/reports/revenue", deps.insightHandler.GetRevenueByPeriod)
	api.HandleFunc("GET "+apiV1+"/reports/inventory", deps.insightHandler.GetInventorySummary)

	// Import/export
	api.HandleFunc("POST "+apiV1+"/import/excel", deps.importHandler.ImportExcel)
	api.HandleFunc("GET "+apiV1+"/export/excel", deps.exportHandler.ExportExcel)
	api.HandleFunc("GET "+apiV1+"/export/json", deps.exportHandler.ExportJSON)

	mux.Handle(apiV1+"/", auth(api))

	// pprof endpoints (development only)
	if cfg.Server.EnablePprof && cfg.IsDevelopment() {
		mux.HandleFunc("GET /debug/pprof/", http.HandlerFunc(http.DefaultServeMux.ServeHTTP))
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, slogger *slog.Logger) error {
	slogger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, slogger, 3)
}
