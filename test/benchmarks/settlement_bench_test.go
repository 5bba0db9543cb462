package benchmarks

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	redis_a "github.com/yfarouk/dealstack-be/internal/adapters/redis_adapter"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/core/services"
	"github.com/yfarouk/dealstack-be/test/helpers"
)

func BenchmarkDeviceOperations(b *testing.B) {
	testDB := helpers.SetupTestDB(&testing.T{})
	defer testDB.Database.Close()

	repo := db.NewDeviceRepository(testDB.Database, helpers.TestLogger())
	service := services.NewDeviceService(repo, nil, helpers.TestLogger())
	ctx := context.Background()
	session := helpers.TestSession()

	b.Run("Create", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = service.AddDevice(ctx, session, benchmarkDevice(i))
		}
	})

	// Pre-create devices for read benchmarks
	devices := make([]*domain.Device, 100)
	for i := range devices {
		d := benchmarkDevice(1_000_000 + i)
		_ = service.AddDevice(ctx, session, d)
		devices[i] = d
	}

	b.Run("Read", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.GetDevice(ctx, session, devices[i%len(devices)].ID)
		}
	})

	b.Run("List", func(b *testing.B) {
		params := ports.DeviceListParams{
			Page:     1,
			PageSize: 50,
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.ListDevices(ctx, session, params)
		}
	})

	b.Run("Search", func(b *testing.B) {
		params := ports.DeviceListParams{
			Search:   "Bench",
			Page:     1,
			PageSize: 50,
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.ListDevices(ctx, session, params)
		}
	})

	b.Run("BatchImport", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = service.ImportDevices(ctx, session, benchmarkBatch(100, i))
		}
	})
}

func BenchmarkDealSettlement(b *testing.B) {
	testDB := helpers.SetupTestDB(&testing.T{})
	defer testDB.Database.Close()

	mr, err := miniredis.Run()
	if err != nil {
		b.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	logger := helpers.TestLogger()
	cache := redis_a.NewCache(client, 5*time.Minute, logger)
	deviceRepo := db.NewDeviceRepository(testDB.Database, logger)
	dealRepo := db.NewDealRepository(testDB.Database, logger)

	deviceService := services.NewDeviceService(deviceRepo, nil, logger)
	settlement := services.NewSettlementService(dealRepo, deviceRepo, testDB.Database, cache, logger)

	ctx := context.Background()
	session := helpers.TestSession()

	// One device with enough stock for every settlement in the run
	device := benchmarkDevice(0)
	device.Quantity = 1 << 30
	if err := deviceService.AddDevice(ctx, session, device); err != nil {
		b.Fatalf("failed to seed device: %v", err)
	}

	input := ports.SettlementInput{
		CustomerName: "Bench Buyer",
		Contact:      "+201000000000",
		DealType:     domain.DealRetail,
		PaymentMode:  domain.PaymentCash,
		Phones: []ports.SettlementLine{
			{
				Model:    device.Model,
				Price:    decimal.NewFromInt(450),
				Quantity: 1,
				PhoneID:  &device.ID,
			},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := settlement.SettleDeal(ctx, session, input); err != nil {
			b.Fatalf("settlement failed: %v", err)
		}
	}
}

func BenchmarkWorkbookParsing(b *testing.B) {
	path, err := createBenchmarkWorkbook(100)
	if err != nil {
		b.Fatalf("failed to create workbook: %v", err)
	}
	defer os.Remove(path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		file, err := xlsx.OpenFile(path)
		if err != nil {
			b.Fatalf("failed to open workbook: %v", err)
		}

		sheet := file.Sheets[0]
		_ = sheet.ForEachRow(func(r *xlsx.Row) error {
			_ = r.GetCell(1).String()
			return nil
		})
	}
}

// Memory allocation benchmarks
func BenchmarkMemoryAllocation(b *testing.B) {
	b.Run("Device", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = benchmarkDevice(i)
		}
	})

	b.Run("ListResult", func(b *testing.B) {
		devices := make([]*domain.Device, 100)
		for i := range devices {
			devices[i] = benchmarkDevice(i)
		}

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = &ports.DeviceListResult{
				Devices:    devices,
				Page:       1,
				PageSize:   50,
				TotalCount: 100,
				TotalPages: 2,
			}
		}
	})
}
