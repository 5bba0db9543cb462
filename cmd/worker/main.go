// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	redis_a "github.com/yfarouk/dealstack-be/internal/adapters/redis_adapter"
	"github.com/yfarouk/dealstack-be/internal/adapters/storage"
	"github.com/yfarouk/dealstack-be/internal/core/services"
	"github.com/yfarouk/dealstack-be/internal/pkg/config"
	"github.com/yfarouk/dealstack-be/internal/pkg/logger"
	"github.com/yfarouk/dealstack-be/internal/workers"
)

func main() {
	log := logger.SetupLogger("info", "json")

	cfg, err := config.Load(log)
	if err != nil {
		fatal(log, "failed to load configuration", err)
	}

	// Reconfigure logger with loaded settings
	log = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	log.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	database, err := openDatabase(ctx, cfg, log)
	if err != nil {
		fatal(log, "failed to initialize database", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, log)

	mediaStore, err := storage.NewS3Media(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, log)
	if err != nil {
		fatal(log, "failed to initialize media store", err)
	}

	deviceRepo := db.NewDeviceRepository(database, log)
	dealRepo := db.NewDealRepository(database, log)
	deviceService := services.NewDeviceService(deviceRepo, mediaStore, log)
	insightService := services.NewInsightService(dealRepo, database, cache, log)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Asynq.RedisAddr,
			Password: cfg.Asynq.RedisPassword,
			DB:       cfg.Asynq.RedisDB,
		},
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(logTaskError),
			RetryDelayFunc:  retryDelay,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc: reportHealth,
			Logger:          &asynqLogger{log.With(slog.String("component", "asynq"))},
		},
	)

	mux := buildMux(cfg, database, mediaStore, deviceService, insightService, log)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	log.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	sig := <-shutdown
	log.Info("shutdown signal received", slog.String("signal", sig.String()))

	srv.Shutdown()
	log.Info("worker shutdown complete")
}

// buildMux registers every task processor against its task type.
func buildMux(cfg *config.Config, database *db.Database, mediaStore *storage.S3Media,
	deviceService *services.DeviceService, insightService *services.InsightService,
	log *slog.Logger) *asynq.ServeMux {

	mux := asynq.NewServeMux()

	insights := workers.NewInsightsProcessor(insightService, log)
	mux.HandleFunc(workers.TypeInsightsRefresh, insights.ProcessRefresh)

	excel := workers.NewExcelProcessor(deviceService, log)
	mux.HandleFunc(workers.TypeExcelImport, excel.ProcessExcel)

	notifications := workers.NewNotificationProcessor(cfg, log)
	mux.HandleFunc(workers.TypeDealReceipt, notifications.SendDealReceipt)

	cleanup := workers.NewCleanupProcessor(database, mediaStore, cfg, log)
	mux.HandleFunc(workers.TypeMediaCleanup, cleanup.CleanupOrphanMedia)
	mux.HandleFunc(workers.TypeCleanupTempFiles, cleanup.CleanupTempFiles)

	return mux
}

func openDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*db.Database, error) {
	// The worker needs far fewer connections than the API
	return db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     10,
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, log)
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}

func logTaskError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

// retryDelay doubles the wait per attempt, capped at ten minutes
func retryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	const maxDelay = 10 * time.Minute

	delay := time.Second << uint(n)
	if delay > maxDelay || delay <= 0 {
		return maxDelay
	}
	return delay
}

func reportHealth(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog to asynq's logging interface
type asynqLogger struct {
	logger *slog.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) { l.logger.Debug(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...interface{})  { l.logger.Info(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...interface{})  { l.logger.Warn(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...interface{}) { l.logger.Error(fmt.Sprint(args...)) }

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
