// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/yfarouk/dealstack-be/internal/adapters/redis_adapter"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// ExportParams defines parameters for sold-unit export operations
type ExportParams struct {
	DealType string     `json:"deal_type"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
}

// SoldUnitExportRow is one flattened sold-unit row for export
type SoldUnitExportRow struct {
	ID        string          `json:"id"`
	DealID    string          `json:"deal_id"`
	Model     string          `json:"model"`
	Brand     string          `json:"brand"`
	Condition string          `json:"condition"`
	Price     decimal.Decimal `json:"price"`
	BuyerName string          `json:"buyer_name"`
	DealType  string          `json:"deal_type"`
	SoldAt    time.Time       `json:"sold_at"`
}

// JSONExportResponse wraps the JSON export body
type JSONExportResponse struct {
	SoldUnits []SoldUnitExportRow `json:"sold_units"`
	Metadata  ExportMetadata      `json:"metadata"`
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate time.Time `json:"export_date"`
	TotalUnits int       `json:"total_units"`
	DealType   string    `json:"deal_type,omitempty"`
}

// ExportHandler streams a dealer's sold-unit history as a workbook or
// JSON document.
type ExportHandler struct {
	db     ports.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(db ports.Database, cache ports.CacheRepository, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		db:     db,
		cache:  cache,
		logger: logger.With(slog.String("handler", "export")),
	}
}

// ExportExcel handles GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	params := h.parseExportParams(r)

	data, err := h.getSoldUnits(ctx, session.DealerID, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve sold units",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	excelData, err := h.generateExcelFile(data)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("sales_export_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(excelData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(excelData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.Int("total_rows", len(data)),
		slog.String("filename", filename))
}

// ExportJSON handles GET /api/v1/export/json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	params := h.parseExportParams(r)

	cacheKey := redis_a.BuildKey(redis_a.PrefixExport, "json", session.DealerID, h.cacheKeyFromParams(params))
	var cachedData []byte
	if err := h.cache.Get(ctx, cacheKey, &cachedData); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Length", strconv.Itoa(len(cachedData)))

		if _, err := w.Write(cachedData); err != nil {
			h.logger.ErrorContext(ctx, "failed to write cached JSON response",
				slog.String("error", err.Error()))
		}
		return
	}

	data, err := h.getSoldUnits(ctx, session.DealerID, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve sold units",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	response := JSONExportResponse{
		SoldUnits: data,
		Metadata: ExportMetadata{
			ExportDate: time.Now(),
			TotalUnits: len(data),
			DealType:   params.DealType,
		},
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal JSON response",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to generate JSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseData)))

	if _, err := w.Write(responseData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write JSON response",
			slog.String("error", err.Error()))
		return
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := h.cache.SetWithTTL(cacheCtx, cacheKey, responseData, 5*time.Minute); err != nil {
			h.logger.WarnContext(cacheCtx, "failed to cache JSON export",
				slog.String("error", err.Error()))
		}
	}()

	h.logger.InfoContext(ctx, "JSON export completed",
		slog.Int("total_rows", len(data)))
}

// Helper methods

func (h *ExportHandler) parseExportParams(r *http.Request) *ExportParams {
	params := &ExportParams{}

	if dt := r.URL.Query().Get("deal_type"); dt == "retail" || dt == "wholesale" {
		params.DealType = dt
	}

	if from := r.URL.Query().Get("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			params.DateFrom = &t
		}
	}

	if to := r.URL.Query().Get("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			params.DateTo = &t
		}
	}

	return params
}

func (h *ExportHandler) getSoldUnits(ctx context.Context, dealerID string, params *ExportParams) ([]SoldUnitExportRow, error) {
	query := `SELECT id, deal_id, model, brand, condition, price, buyer_name, deal_type, sold_at
		FROM sold_units
		WHERE dealer_id = $1`
	args := []any{dealerID}

	if params.DealType != "" {
		args = append(args, params.DealType)
		query += fmt.Sprintf(" AND deal_type = $%d", len(args))
	}
	if params.DateFrom != nil {
		args = append(args, *params.DateFrom)
		query += fmt.Sprintf(" AND sold_at >= $%d", len(args))
	}
	if params.DateTo != nil {
		args = append(args, *params.DateTo)
		query += fmt.Sprintf(" AND sold_at <= $%d", len(args))
	}

	query += " ORDER BY sold_at DESC"

	rows, err := h.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sold units: %w", err)
	}
	defer rows.Close()

	var data []SoldUnitExportRow
	for rows.Next() {
		var row SoldUnitExportRow
		if err := rows.Scan(&row.ID, &row.DealID, &row.Model, &row.Brand, &row.Condition,
			&row.Price, &row.BuyerName, &row.DealType, &row.SoldAt); err != nil {
			return nil, fmt.Errorf("failed to scan sold unit row: %w", err)
		}
		data = append(data, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sold unit rows: %w", err)
	}

	return data, nil
}

func (h *ExportHandler) generateExcelFile(data []SoldUnitExportRow) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Sales")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{
		"ID", "Deal ID", "Model", "Brand", "Condition",
		"Price", "Buyer", "Deal Type", "Sold At",
	}

	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, row := range data {
		dataRow := sheet.AddRow()
		for _, value := range []string{
			row.ID,
			row.DealID,
			row.Model,
			row.Brand,
			row.Condition,
			row.Price.StringFixed(2),
			row.BuyerName,
			row.DealType,
			row.SoldAt.Format("2006-01-02 15:04:05"),
		} {
			dataRow.AddCell().Value = value
		}
	}

	for i := range headers {
		sheet.SetColWidth(i, i, 15)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

func (h *ExportHandler) cacheKeyFromParams(params *ExportParams) string {
	key := "all"
	if params.DealType != "" {
		key = params.DealType
	}
	if params.DateFrom != nil {
		key += "_from_" + params.DateFrom.Format("20060102")
	}
	if params.DateTo != nil {
		key += "_to_" + params.DateTo.Format("20060102")
	}
	return key
}
