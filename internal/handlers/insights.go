// internal/handlers/insights.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// InsightHandler serves the read side: market insights over sold-unit
// history plus dashboard aggregates.
type InsightHandler struct {
	service ports.InsightService
	logger  *slog.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(service ports.InsightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "insights")),
	}
}

// GetMarketInsights handles GET /api/v1/insights/market
func (h *InsightHandler) GetMarketInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	brand := r.URL.Query().Get("brand")
	model := r.URL.Query().Get("model")
	if brand == "" {
		respondError(w, http.StatusBadRequest, "brand is required")
		return
	}

	insights, err := h.service.GetMarketInsights(ctx, session, brand, model)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get market insights",
			slog.String("brand", brand),
			slog.String("model", model),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve market insights")
		return
	}

	respondJSON(w, http.StatusOK, insights)
}

// GetRecentSales handles GET /api/v1/insights/recent-sales
func (h *InsightHandler) GetRecentSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	brand := r.URL.Query().Get("brand")
	model := r.URL.Query().Get("model")
	if brand == "" {
		respondError(w, http.StatusBadRequest, "brand is required")
		return
	}

	sales, err := h.service.GetRecentSales(ctx, session, brand, model)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get recent sales",
			slog.String("brand", brand),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve recent sales")
		return
	}

	respondJSON(w, http.StatusOK, sales)
}

// GetBrandAnalytics handles GET /api/v1/reports/brands
func (h *InsightHandler) GetBrandAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	stats, err := h.service.GetBrandAnalytics(ctx, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get brand analytics",
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve brand analytics")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetTopModels handles GET /api/v1/reports/top-models
func (h *InsightHandler) GetTopModels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	stats, err := h.service.GetTopModels(ctx, session, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get top models",
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve top models")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetDealTypeDistribution handles GET /api/v1/reports/deal-types
func (h *InsightHandler) GetDealTypeDistribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	stats, err := h.service.GetDealTypeDistribution(ctx, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get deal type distribution",
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve deal type distribution")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetRevenueByPeriod handles GET /api/v1/reports/revenue
func (h *InsightHandler) GetRevenueByPeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}

	points, err := h.service.GetRevenueByPeriod(ctx, session, period)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get revenue by period",
			slog.String("period", period),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve revenue report")
		return
	}

	respondJSON(w, http.StatusOK, points)
}

// GetInventorySummary handles GET /api/v1/reports/inventory
func (h *InsightHandler) GetInventorySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	summary, err := h.service.GetInventorySummary(ctx, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get inventory summary",
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve inventory summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
