// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
)

var benchmarkBrands = []string{"Samsung", "Apple", "Xiaomi", "Google", "OnePlus"}

// benchmarkDevice builds a valid device with deterministic per-index
// variation so repeated saves don't collide on the same model.
func benchmarkDevice(i int) *domain.Device {
	ram := 8
	return &domain.Device{
		Brand:     benchmarkBrands[i%len(benchmarkBrands)],
		Model:     fmt.Sprintf("Bench Model %d", i),
		Condition: domain.ConditionGood,
		StorageGB: 128,
		RamGB:     &ram,
		BasePrice: decimal.NewFromInt(int64(100 + i%400)),
		Quantity:  10,
	}
}

func benchmarkBatch(n, seed int) []domain.Device {
	devices := make([]domain.Device, n)
	for i := range devices {
		devices[i] = *benchmarkDevice(seed*n + i)
	}
	return devices
}

// createBenchmarkWorkbook writes an import workbook with numRows device
// rows in the column layout the Excel processor expects.
func createBenchmarkWorkbook(numRows int) (string, error) {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Devices")
	if err != nil {
		return "", err
	}

	header := sheet.AddRow()
	for _, col := range []string{"brand", "model", "condition", "storage_gb", "ram_gb", "base_price", "quantity", "is_iphone", "is_public"} {
		header.AddCell().SetString(col)
	}

	for i := 0; i < numRows; i++ {
		row := sheet.AddRow()
		row.AddCell().SetString(benchmarkBrands[i%len(benchmarkBrands)])
		row.AddCell().SetString(fmt.Sprintf("Import Model %d", i))
		row.AddCell().SetString("good")
		row.AddCell().SetString("128")
		row.AddCell().SetString("8")
		row.AddCell().SetString(fmt.Sprintf("%.2f", float64(100+i)))
		row.AddCell().SetString("5")
		row.AddCell().SetString("false")
		row.AddCell().SetString("true")
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("bench-devices-%d.xlsx", numRows))
	if err := wb.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
