// internal/pkg/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App            AppConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Asynq          AsynqConfig
	AWS            AWSConfig
	FileProcessing FileProcessingConfig
	Security       SecurityConfig
	Server         ServerConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string
	EnableQueryLogging bool
	MigrationPath      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host            string
	Port            string
	Password        string
	DB              int
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	MinIdleConns    int
	MaxConnAge      time.Duration
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	TTL             time.Duration
}

// AsynqConfig holds Asynq configuration
type AsynqConfig struct {
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	Concurrency          int
	Queues               map[string]int // queue name -> priority
	StrictPriority       bool
	RetryMax             int
	ShutdownTimeout      time.Duration
	HealthCheckInterval  time.Duration
	DelayedTaskCheckTime time.Duration
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
}

// FileProcessingConfig holds file processing configuration
type FileProcessingConfig struct {
	ExcelMaxSizeMB    int
	ImageMaxSizeMB    int
	ProcessingTimeout time.Duration
	TempDir           string
	CleanupInterval   time.Duration
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	JWTSecret            string
	JWTExpiration        time.Duration
	JWTRefreshExpiration time.Duration
	BcryptCost           int
	RateLimitRequests    int
	RateLimitDuration    time.Duration
	AllowedOrigins       []string
	TrustedProxies       []string
	SecureHeaders        bool
	CSRFProtection       bool
	RequestIDHeader      string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host              string
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GracefulTimeout   time.Duration
	EnablePprof       bool
	EnableMetrics     bool
	EnableHealthCheck bool
	TLSEnabled        bool
	TLSCertFile       string
	TLSKeyFile        string
}

// Load builds the configuration from the environment. In development a
// .env file is merged in first, so local overrides work without
// exporting anything.
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	applyDefaults(v, env)

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Environment: env,
			Version:     v.GetString("APP_VERSION"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			LogFormat:   v.GetString("LOG_FORMAT"),
			Debug:       v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSL_MODE"),
			MaxConnections:     v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:     v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime:    v.GetDuration("DB_CONNECTION_LIFETIME"),
			MaxConnIdleTime:    v.GetDuration("DB_IDLE_TIME"),
			HealthCheckPeriod:  v.GetDuration("DB_HEALTH_CHECK_PERIOD"),
			ConnectTimeout:     v.GetDuration("DB_CONNECT_TIMEOUT"),
			StatementCacheMode: v.GetString("DB_STATEMENT_CACHE_MODE"),
			EnableQueryLogging: v.GetBool("DB_QUERY_LOGGING"),
			MigrationPath:      v.GetString("DB_MIGRATION_PATH"),
		},
		Redis: RedisConfig{
			Host:            v.GetString("REDIS_HOST"),
			Port:            v.GetString("REDIS_PORT"),
			Password:        v.GetString("REDIS_PASSWORD"),
			DB:              v.GetInt("REDIS_DB"),
			MaxRetries:      v.GetInt("REDIS_MAX_RETRIES"),
			MinRetryBackoff: v.GetDuration("REDIS_MIN_RETRY_BACKOFF"),
			MaxRetryBackoff: v.GetDuration("REDIS_MAX_RETRY_BACKOFF"),
			DialTimeout:     v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:     v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("REDIS_WRITE_TIMEOUT"),
			PoolSize:        v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns:    v.GetInt("REDIS_MIN_IDLE_CONNS"),
			MaxConnAge:      v.GetDuration("REDIS_MAX_CONN_AGE"),
			PoolTimeout:     v.GetDuration("REDIS_POOL_TIMEOUT"),
			IdleTimeout:     v.GetDuration("REDIS_IDLE_TIMEOUT"),
			TTL:             v.GetDuration("REDIS_TTL"),
		},
		Asynq: AsynqConfig{
			RedisAddr:            v.GetString("REDIS_HOST") + ":" + v.GetString("REDIS_PORT"),
			RedisPassword:        v.GetString("REDIS_PASSWORD"),
			RedisDB:              v.GetInt("ASYNQ_REDIS_DB"),
			Concurrency:          v.GetInt("ASYNQ_CONCURRENCY"),
			Queues:               parseQueues(v.GetString("ASYNQ_QUEUES")),
			StrictPriority:       v.GetBool("ASYNQ_STRICT_PRIORITY"),
			RetryMax:             v.GetInt("ASYNQ_RETRY_MAX"),
			ShutdownTimeout:      v.GetDuration("ASYNQ_SHUTDOWN_TIMEOUT"),
			HealthCheckInterval:  v.GetDuration("ASYNQ_HEALTH_CHECK_INTERVAL"),
			DelayedTaskCheckTime: v.GetDuration("ASYNQ_DELAYED_TASK_CHECK"),
		},
		AWS: AWSConfig{
			Region:          v.GetString("AWS_REGION"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			S3Bucket:        v.GetString("AWS_S3_BUCKET"),
			S3Endpoint:      v.GetString("AWS_S3_ENDPOINT"),
			UsePathStyle:    v.GetBool("AWS_S3_PATH_STYLE"),
		},
		FileProcessing: FileProcessingConfig{
			ExcelMaxSizeMB:    v.GetInt("EXCEL_MAX_SIZE_MB"),
			ImageMaxSizeMB:    v.GetInt("IMAGE_MAX_SIZE_MB"),
			ProcessingTimeout: v.GetDuration("PROCESSING_TIMEOUT"),
			TempDir:           v.GetString("TEMP_DIR"),
			CleanupInterval:   v.GetDuration("CLEANUP_INTERVAL"),
		},
		Security: SecurityConfig{
			JWTSecret:            v.GetString("JWT_SECRET"),
			JWTExpiration:        v.GetDuration("JWT_EXPIRATION"),
			JWTRefreshExpiration: v.GetDuration("JWT_REFRESH_EXPIRATION"),
			BcryptCost:           v.GetInt("BCRYPT_COST"),
			RateLimitRequests:    v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitDuration:    v.GetDuration("RATE_LIMIT_DURATION"),
			AllowedOrigins:       splitList(v.GetString("ALLOWED_ORIGINS")),
			TrustedProxies:       splitList(v.GetString("TRUSTED_PROXIES")),
			SecureHeaders:        v.GetBool("SECURE_HEADERS"),
			CSRFProtection:       v.GetBool("CSRF_PROTECTION"),
			RequestIDHeader:      v.GetString("REQUEST_ID_HEADER"),
		},
		Server: ServerConfig{
			Host:              v.GetString("SERVER_HOST"),
			Port:              v.GetString("SERVER_PORT"),
			ReadTimeout:       v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:      v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:       v.GetDuration("SERVER_IDLE_TIMEOUT"),
			MaxHeaderBytes:    v.GetInt("SERVER_MAX_HEADER_BYTES"),
			GracefulTimeout:   v.GetDuration("SERVER_GRACEFUL_TIMEOUT"),
			EnablePprof:       v.GetBool("ENABLE_PPROF"),
			EnableMetrics:     v.GetBool("ENABLE_METRICS"),
			EnableHealthCheck: v.GetBool("ENABLE_HEALTH_CHECK"),
			TLSEnabled:        v.GetBool("TLS_ENABLED"),
			TLSCertFile:       v.GetString("TLS_CERT_FILE"),
			TLSKeyFile:        v.GetString("TLS_KEY_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	// Production gets the strict validators on top of the basic checks.
	if cfg.IsProduction() {
		for _, val := range []interface{ Validate(*Config) error }{
			&ProductionValidator{},
			&SecurityValidator{},
		} {
			if err := val.Validate(cfg); err != nil {
				return nil, fmt.Errorf("configuration validation failed: %w", err)
			}
		}
	}

	return cfg, nil
}

func applyDefaults(v *viper.Viper, env string) {
	isDev := env == "development" || env == "local"

	v.SetDefault("APP_NAME", "dealstack-api")
	v.SetDefault("APP_VERSION", "dev")
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_DEBUG", isDev)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "dealstack")
	v.SetDefault("DB_PASSWORD", "dealstack_dev_2026")
	v.SetDefault("DB_NAME", "dealstack")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 25)
	v.SetDefault("DB_MIN_CONNECTIONS", 5)
	v.SetDefault("DB_CONNECTION_LIFETIME", time.Hour)
	v.SetDefault("DB_IDLE_TIME", 30*time.Minute)
	v.SetDefault("DB_HEALTH_CHECK_PERIOD", time.Minute)
	v.SetDefault("DB_CONNECT_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_STATEMENT_CACHE_MODE", "describe")
	v.SetDefault("DB_QUERY_LOGGING", isDev)
	v.SetDefault("DB_MIGRATION_PATH", "migrations")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond)
	v.SetDefault("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("REDIS_POOL_TIMEOUT", 4*time.Second)
	v.SetDefault("REDIS_IDLE_TIMEOUT", 5*time.Minute)
	v.SetDefault("REDIS_TTL", time.Hour)

	v.SetDefault("ASYNQ_REDIS_DB", 0)
	v.SetDefault("ASYNQ_CONCURRENCY", 10)
	v.SetDefault("ASYNQ_QUEUES", "critical:6,default:3,low:1")
	v.SetDefault("ASYNQ_RETRY_MAX", 3)
	v.SetDefault("ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("ASYNQ_HEALTH_CHECK_INTERVAL", 30*time.Second)
	v.SetDefault("ASYNQ_DELAYED_TASK_CHECK", 5*time.Second)

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "minioadmin")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "minioadmin123")
	v.SetDefault("AWS_S3_BUCKET", "dealstack-media")
	v.SetDefault("AWS_S3_PATH_STYLE", isDev)

	v.SetDefault("EXCEL_MAX_SIZE_MB", 100)
	v.SetDefault("IMAGE_MAX_SIZE_MB", 10)
	v.SetDefault("PROCESSING_TIMEOUT", 5*time.Minute)
	v.SetDefault("TEMP_DIR", "/tmp")
	v.SetDefault("CLEANUP_INTERVAL", time.Hour)

	// Production must provide its own secret; Validate rejects an
	// empty one there.
	if isDev {
		v.SetDefault("JWT_SECRET", "development-secret-change-in-production")
	}
	v.SetDefault("JWT_EXPIRATION", 24*time.Hour)
	v.SetDefault("JWT_REFRESH_EXPIRATION", 7*24*time.Hour)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", time.Minute)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("SECURE_HEADERS", env == "production")
	v.SetDefault("CSRF_PROTECTION", env == "production")
	v.SetDefault("REQUEST_ID_HEADER", "X-Request-ID")

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_MAX_HEADER_BYTES", 1<<20)
	v.SetDefault("SERVER_GRACEFUL_TIMEOUT", 30*time.Second)
	v.SetDefault("ENABLE_PPROF", isDev)
	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("ENABLE_HEALTH_CHECK", true)
	v.SetDefault("TLS_ENABLED", false)
}

// Validate checks the invariants every environment must satisfy
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.App.Environment == "production" &&
		(c.Security.JWTSecret == "" || c.Security.JWTSecret == "change-me-in-production") {
		return fmt.Errorf("JWT secret must be set in production")
	}
	if c.Database.MaxConnections < c.Database.MinConnections {
		return fmt.Errorf("max connections must be >= min connections")
	}
	if c.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("rate limit requests must be positive")
	}
	return nil
}

// GetDatabaseURL returns the formatted database connection string
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the formatted server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// parseQueues turns "critical:6,default:3" into asynq's priority map
func parseQueues(spec string) map[string]int {
	queues := make(map[string]int)
	for _, pair := range strings.Split(spec, ",") {
		name, prio, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		if p, err := strconv.Atoi(strings.TrimSpace(prio)); err == nil {
			queues[strings.TrimSpace(name)] = p
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
