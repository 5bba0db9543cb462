// internal/workers/excel_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// ExcelProcessor imports device rows from an uploaded workbook
type ExcelProcessor struct {
	service ports.DeviceService
	logger  *slog.Logger
}

// NewExcelProcessor creates a new Excel processor
func NewExcelProcessor(service ports.DeviceService, logger *slog.Logger) *ExcelProcessor {
	return &ExcelProcessor{
		service: service,
		logger:  logger.With(slog.String("processor", "excel")),
	}
}

// ProcessExcel parses the workbook's first sheet and imports every
// parseable row as a device for the uploading dealer. Column layout:
// brand, model, condition, storage_gb, ram_gb, base_price, quantity,
// is_iphone, is_public.
func (p *ExcelProcessor) ProcessExcel(ctx context.Context, t *asynq.Task) error {
	var payload ExcelImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.DealerID == "" {
		return fmt.Errorf("excel import task missing dealer_id")
	}

	p.logger.InfoContext(ctx, "processing Excel file",
		slog.String("job_id", payload.JobID),
		slog.String("dealer_id", payload.DealerID),
		slog.String("file_path", payload.FilePath))

	file, err := xlsx.OpenFile(payload.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open Excel file: %w", err)
	}

	var devices []domain.Device
	var skipped int

	if len(file.Sheets) > 0 {
		sheet := file.Sheets[0]
		rowIdx := 0

		err = sheet.ForEachRow(func(r *xlsx.Row) error {
			// Skip header row
			if rowIdx == 0 {
				rowIdx++
				return nil
			}
			rowIdx++

			device := p.parseRow(r)
			if device == nil {
				skipped++
				return nil
			}
			devices = append(devices, *device)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to process Excel rows: %w", err)
		}
	}

	if len(devices) > 0 {
		session := identity.Session{DealerID: payload.DealerID}
		if err := p.service.ImportDevices(ctx, session, devices); err != nil {
			return fmt.Errorf("failed to import devices: %w", err)
		}
	}

	if strings.HasPrefix(payload.FilePath, os.TempDir()) {
		os.Remove(payload.FilePath)
	}

	p.logger.InfoContext(ctx, "Excel processing completed",
		slog.String("job_id", payload.JobID),
		slog.Int("devices_imported", len(devices)),
		slog.Int("rows_skipped", skipped))

	return nil
}

func (p *ExcelProcessor) parseRow(r *xlsx.Row) *domain.Device {
	get := func(i int) string {
		c := r.GetCell(i)
		if c == nil {
			return ""
		}
		return strings.TrimSpace(c.String())
	}

	getInt := func(i int) int {
		n, _ := strconv.Atoi(get(i))
		return n
	}

	getBool := func(i int) bool {
		b, _ := strconv.ParseBool(strings.ToLower(get(i)))
		return b
	}

	brand := get(0)
	model := get(1)
	if model == "" {
		return nil
	}

	price, _ := decimal.NewFromString(strings.TrimPrefix(get(5), "$"))
	if price.IsNegative() {
		return nil
	}

	device := &domain.Device{
		Brand:     brand,
		Model:     model,
		Condition: domain.DeviceCondition(strings.ToLower(get(2))),
		StorageGB: getInt(3),
		BasePrice: price,
		Quantity:  getInt(6),
		IsIphone:  getBool(7),
		IsPublic:  getBool(8),
	}

	if ram := getInt(4); ram > 0 {
		device.RamGB = &ram
	}
	if device.Quantity < 0 {
		device.Quantity = 0
	}

	return device
}
