// cmd/seeder/main.go
//
// Loads a dealer's device stock from an Excel workbook into the
// database, and optionally prints a development JWT for that dealer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	"github.com/yfarouk/dealstack-be/internal/adapters/storage"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/services"
	"github.com/yfarouk/dealstack-be/internal/handlers/middleware"
	"github.com/yfarouk/dealstack-be/internal/pkg/config"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
	"github.com/yfarouk/dealstack-be/internal/pkg/logger"
)

func main() {
	var (
		stockFile = flag.String("file", "./devices.xlsx", "Excel workbook with device stock")
		dealerID  = flag.String("dealer", "", "Dealer ID to seed stock under (required)")
		dryRun    = flag.Bool("dry-run", false, "Parse and report without writing to the database")
		emitToken = flag.Bool("token", false, "Print a development JWT for the dealer")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")

	if *dealerID == "" {
		slogger.Error("dealer is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *emitToken {
		token, err := middleware.IssueDealerToken(*dealerID, cfg.Security.JWTSecret, 24*time.Hour)
		if err != nil {
			slogger.Error("failed to issue token", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("DEALER_TOKEN=%s\n", token)
	}

	devices, err := parseWorkbook(*stockFile, slogger)
	if err != nil {
		slogger.Error("failed to parse workbook",
			slog.String("file", *stockFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("parsed device stock",
		slog.String("file", *stockFile),
		slog.Int("devices", len(devices)))

	if *dryRun {
		for _, d := range devices {
			fmt.Printf("%-10s %-30s qty=%-4d price=%s\n", d.Brand, d.Model, d.Quantity, d.BasePrice.StringFixed(2))
		}
		fmt.Println("[DRY RUN] No changes were made to the database")
		return
	}

	ctx := context.Background()

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	mediaStore, err := storage.NewS3Media(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, slogger)
	if err != nil {
		slogger.Error("failed to initialize media store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	deviceRepo := db.NewDeviceRepository(database, slogger)
	deviceService := services.NewDeviceService(deviceRepo, mediaStore, slogger)

	session := identity.Session{DealerID: *dealerID}
	if err := deviceService.ImportDevices(ctx, session, devices); err != nil {
		slogger.Error("failed to import devices", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seed operation completed",
		slog.String("dealer_id", *dealerID),
		slog.Int("devices_created", len(devices)))
}

// parseWorkbook reads the first sheet of the workbook. Expected columns:
// brand, model, condition, storage_gb, ram_gb, base_price, quantity,
// is_iphone, is_public. The first row is treated as a header.
func parseWorkbook(path string, slogger *slog.Logger) ([]domain.Device, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := file.Sheets[0]

	var devices []domain.Device
	rowIdx := 0
	skipped := 0

	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		if rowIdx == 0 {
			rowIdx++
			return nil
		}
		rowIdx++

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			if s, err := c.FormattedValue(); err == nil {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(c.String())
		}

		model := get(1)
		if model == "" {
			return nil
		}

		priceStr := strings.TrimPrefix(get(5), "$")
		priceStr = strings.ReplaceAll(priceStr, ",", "")
		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			slogger.Warn("skipping row with bad price",
				slog.Int("row", rowIdx-1),
				slog.String("price", priceStr))
			skipped++
			return nil
		}

		storageGB, _ := strconv.Atoi(get(3))
		quantity, _ := strconv.Atoi(get(6))

		device := domain.Device{
			Brand:     get(0),
			Model:     model,
			Condition: domain.DeviceCondition(strings.ToLower(get(2))),
			StorageGB: storageGB,
			BasePrice: price,
			Quantity:  quantity,
			IsIphone:  parseBool(get(7)),
			IsPublic:  parseBool(get(8)),
		}
		if ram, err := strconv.Atoi(get(4)); err == nil && ram > 0 {
			device.RamGB = &ram
		}

		devices = append(devices, device)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	if skipped > 0 {
		slogger.Warn("skipped rows during parse", slog.Int("count", skipped))
	}
	return devices, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
