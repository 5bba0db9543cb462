// internal/workers/excel_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
	"github.com/yfarouk/dealstack-be/internal/workers"
	"github.com/yfarouk/dealstack-be/test/helpers"
	"github.com/yfarouk/dealstack-be/test/mocks"
)

// writeWorkbook saves device rows to a temp xlsx file and returns its path.
// Each row is: brand, model, condition, storage_gb, ram_gb, base_price,
// quantity, is_iphone, is_public.
func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Devices")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, col := range []string{"brand", "model", "condition", "storage_gb", "ram_gb", "base_price", "quantity", "is_iphone", "is_public"} {
		header.AddCell().SetString(col)
	}

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, cell := range cells {
			row.AddCell().SetString(cell)
		}
	}

	path := filepath.Join(t.TempDir(), "import.xlsx")
	require.NoError(t, wb.Save(path))
	return path
}

func excelTask(t *testing.T, payload workers.ExcelImportPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(workers.TypeExcelImport, data)
}

func TestExcelProcessor_ProcessExcel(t *testing.T) {
	t.Run("imports_parseable_rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockDeviceService(ctrl)
		processor := workers.NewExcelProcessor(mockService, helpers.TestLogger())

		path := writeWorkbook(t, [][]string{
			{"Samsung", "Galaxy S23", "good", "256", "8", "450.00", "5", "false", "true"},
			{"Apple", "iPhone 14", "excellent", "128", "6", "$700", "2", "true", "false"},
			{"Samsung", "", "good", "128", "8", "300.00", "1", "false", "true"}, // no model, skipped
		})

		mockService.EXPECT().
			ImportDevices(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, session identity.Session, devices []domain.Device) error {
				assert.Equal(t, "dealer-import-1", session.DealerID)
				require.Len(t, devices, 2)

				assert.Equal(t, "Samsung", devices[0].Brand)
				assert.Equal(t, "Galaxy S23", devices[0].Model)
				assert.Equal(t, domain.ConditionGood, devices[0].Condition)
				assert.Equal(t, 256, devices[0].StorageGB)
				require.NotNil(t, devices[0].RamGB)
				assert.Equal(t, 8, *devices[0].RamGB)
				assert.True(t, decimal.RequireFromString("450.00").Equal(devices[0].BasePrice))
				assert.Equal(t, 5, devices[0].Quantity)
				assert.True(t, devices[0].IsPublic)

				// Currency prefix is stripped
				assert.True(t, decimal.NewFromInt(700).Equal(devices[1].BasePrice))
				assert.True(t, devices[1].IsIphone)
				return nil
			})

		err := processor.ProcessExcel(context.Background(), excelTask(t, workers.ExcelImportPayload{
			JobID:    uuid.New().String(),
			DealerID: "dealer-import-1",
			FilePath: path,
		}))
		require.NoError(t, err)
	})

	t.Run("removes_temp_file_after_import", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockDeviceService(ctrl)
		processor := workers.NewExcelProcessor(mockService, helpers.TestLogger())

		// File inside os.TempDir is cleaned up by the processor
		path := filepath.Join(os.TempDir(), "import-cleanup.xlsx")
		wb := xlsx.NewFile()
		sheet, err := wb.AddSheet("Devices")
		require.NoError(t, err)
		sheet.AddRow().AddCell().SetString("brand")
		row := sheet.AddRow()
		row.AddCell().SetString("Xiaomi")
		row.AddCell().SetString("Redmi Note 12")
		require.NoError(t, wb.Save(path))

		mockService.EXPECT().
			ImportDevices(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err = processor.ProcessExcel(context.Background(), excelTask(t, workers.ExcelImportPayload{
			JobID:    uuid.New().String(),
			DealerID: "dealer-import-2",
			FilePath: path,
		}))
		require.NoError(t, err)

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("empty_workbook_imports_nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockDeviceService(ctrl)
		processor := workers.NewExcelProcessor(mockService, helpers.TestLogger())

		path := writeWorkbook(t, nil)

		// ImportDevices is never called
		err := processor.ProcessExcel(context.Background(), excelTask(t, workers.ExcelImportPayload{
			JobID:    uuid.New().String(),
			DealerID: "dealer-import-3",
			FilePath: path,
		}))
		require.NoError(t, err)
	})

	t.Run("missing_dealer_id_fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockDeviceService(ctrl)
		processor := workers.NewExcelProcessor(mockService, helpers.TestLogger())

		err := processor.ProcessExcel(context.Background(), excelTask(t, workers.ExcelImportPayload{
			JobID:    uuid.New().String(),
			FilePath: "/tmp/whatever.xlsx",
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dealer_id")
	})

	t.Run("unreadable_file_fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockDeviceService(ctrl)
		processor := workers.NewExcelProcessor(mockService, helpers.TestLogger())

		path := helpers.CreateTempFile(t, []byte("not a workbook"), ".xlsx")

		err := processor.ProcessExcel(context.Background(), excelTask(t, workers.ExcelImportPayload{
			JobID:    uuid.New().String(),
			DealerID: "dealer-import-4",
			FilePath: path,
		}))
		require.Error(t, err)
	})

	t.Run("garbage_payload_fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockDeviceService(ctrl)
		processor := workers.NewExcelProcessor(mockService, helpers.TestLogger())

		task := asynq.NewTask(workers.TypeExcelImport, []byte("{not json"))
		err := processor.ProcessExcel(context.Background(), task)
		require.Error(t, err)
	})
}
