// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/pkg/config"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// TestDealerID is the dealer used across unit tests
const TestDealerID = "dealer-test-001"

// TestSession returns a session for TestDealerID
func TestSession() identity.Session {
	return identity.Session{DealerID: TestDealerID}
}

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a logger that stays quiet unless -v is set
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_dealstack",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_dealstack",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		SourcePath: "../../migrations",
		TableName:  "schema_migrations",
		SchemaName: "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a mock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		db.Close()
	})

	return mock, db
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_dealstack",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		FileProcessing: config.FileProcessingConfig{
			ExcelMaxSizeMB:    100,
			ImageMaxSizeMB:    10,
			ProcessingTimeout: 5 * time.Minute,
			TempDir:           "/tmp",
		},
		Security: config.SecurityConfig{
			JWTSecret:         "test-secret-test-secret-test-secret",
			JWTExpiration:     24 * time.Hour,
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestDevice creates a test device record
func CreateTestDevice(overrides ...func(*domain.Device)) *domain.Device {
	ram := 8
	device := &domain.Device{
		ID:        uuid.New(),
		DealerID:  TestDealerID,
		Brand:     "Samsung",
		Model:     "Galaxy S23",
		Condition: domain.ConditionGood,
		StorageGB: 256,
		RamGB:     &ram,
		BasePrice: decimal.NewFromFloat(450.00),
		Quantity:  5,
		IsIphone:  false,
		Status:    domain.StatusAvailable,
		IsPublic:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, override := range overrides {
		override(device)
	}

	return device
}

// CreateTestDevices creates multiple test devices
func CreateTestDevices(count int) []domain.Device {
	brands := []string{"Samsung", "Apple", "Xiaomi", "Google", "OnePlus"}
	conditions := []domain.DeviceCondition{
		domain.ConditionNew,
		domain.ConditionExcellent,
		domain.ConditionGood,
		domain.ConditionFair,
	}

	devices := make([]domain.Device, count)
	for i := 0; i < count; i++ {
		devices[i] = *CreateTestDevice(func(d *domain.Device) {
			d.Brand = brands[i%len(brands)]
			d.Model = fmt.Sprintf("Model %d", i+1)
			d.Condition = conditions[i%len(conditions)]
			d.BasePrice = decimal.NewFromFloat(float64(200 + (i * 50)))
			d.IsIphone = d.Brand == "Apple"
		})
	}

	return devices
}

// CreateTestDeal creates a test deal with one phone line per device
func CreateTestDeal(overrides ...func(*domain.Deal)) *domain.Deal {
	phoneID := uuid.New()
	condition := "good"
	deal := &domain.Deal{
		ID:           uuid.New(),
		DealerID:     TestDealerID,
		CustomerName: "Ahmed Mostafa",
		Contact:      "+20 100 123 4567",
		TotalAmount:  decimal.NewFromFloat(450.00),
		Status:       domain.DealStatusPaid,
		PaymentMode:  domain.PaymentCash,
		DealType:     domain.DealRetail,
		Phones: []domain.PhoneLine{
			{
				Model:     "Galaxy S23",
				Price:     decimal.NewFromFloat(450.00),
				Quantity:  1,
				PhoneID:   &phoneID,
				Condition: &condition,
			},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, override := range overrides {
		override(deal)
	}

	return deal
}

// CreateTestSoldUnit creates one sold-unit history record
func CreateTestSoldUnit(overrides ...func(*domain.SoldUnit)) domain.SoldUnit {
	unit := domain.SoldUnit{
		ID:        uuid.New(),
		DealID:    uuid.New(),
		DealerID:  TestDealerID,
		Model:     "Galaxy S23",
		Brand:     "Samsung",
		Condition: "good",
		Price:     decimal.NewFromFloat(450.00),
		BuyerName: "Ahmed Mostafa",
		DealType:  domain.DealRetail,
		SoldAt:    time.Now().AddDate(0, 0, -2),
	}

	for _, override := range overrides {
		override(&unit)
	}

	return unit
}

// CompareDevices compares two devices for testing
func CompareDevices(t *testing.T, expected, actual *domain.Device) {
	t.Helper()

	require.Equal(t, expected.DealerID, actual.DealerID)
	require.Equal(t, expected.Brand, actual.Brand)
	require.Equal(t, expected.Model, actual.Model)
	require.Equal(t, expected.Condition, actual.Condition)
	require.Equal(t, expected.StorageGB, actual.StorageGB)
	require.Equal(t, expected.Quantity, actual.Quantity)
	require.Equal(t, expected.Status, actual.Status)
	require.True(t, expected.BasePrice.Equal(actual.BasePrice),
		"Expected price: %s, Got: %s", expected.BasePrice, actual.BasePrice)
}

// AssertEventuallyWithTimeout polls condition until it holds or the
// timeout elapses.
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables empties every table, children first
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	for _, table := range []string{"sold_units", "deals", "devices"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// SeedTestDevices seeds the database with device stock
func SeedTestDevices(t *testing.T, db *pgxpool.Pool, devices []domain.Device) {
	t.Helper()

	ctx := context.Background()

	for _, d := range devices {
		query := `
			INSERT INTO devices (
				id, dealer_id, brand, model, condition, storage_gb, ram_gb,
				base_price, quantity, is_iphone, images, status, is_public,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`

		_, err := db.Exec(ctx, query,
			d.ID, d.DealerID, d.Brand, d.Model, d.Condition, d.StorageGB, d.RamGB,
			d.BasePrice, d.Quantity, d.IsIphone, d.Images, d.Status, d.IsPublic,
			d.CreatedAt, d.UpdatedAt,
		)
		require.NoError(t, err, "Failed to seed test device")
	}
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp("", fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")

	file.Close()

	t.Cleanup(func() {
		os.Remove(file.Name())
	})

	return file.Name()
}
