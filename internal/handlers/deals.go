// internal/handlers/deals.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
	"github.com/yfarouk/dealstack-be/internal/workers"
)

// DealHandler handles deal settlement HTTP requests
type DealHandler struct {
	service     ports.SettlementService
	asynqClient *asynq.Client
	logger      *slog.Logger
}

// NewDealHandler creates a new deal handler. The asynq client may be
// nil in tests; background tasks are then skipped.
func NewDealHandler(service ports.SettlementService, asynqClient *asynq.Client, logger *slog.Logger) *DealHandler {
	return &DealHandler{
		service:     service,
		asynqClient: asynqClient,
		logger:      logger.With(slog.String("handler", "deals")),
	}
}

// SettleDeal handles POST /api/v1/deals
func (h *DealHandler) SettleDeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	var input ports.SettlementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dealID, err := h.service.SettleDeal(ctx, session, input)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to settle deal",
			slog.String("customer", input.CustomerName),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to settle deal")
		return
	}

	h.logger.InfoContext(ctx, "deal settled",
		slog.String("deal_id", dealID.String()),
		slog.String("deal_type", string(input.DealType)),
		slog.Int("lines", len(input.Phones)))

	h.enqueueSettlementTasks(ctx, session, dealID, input)

	respondJSON(w, http.StatusCreated, map[string]string{
		"deal_id": dealID.String(),
		"message": "Deal settled successfully",
	})
}

// GetDeal handles GET /api/v1/deals/{id}
func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	dealID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid deal ID format")
		return
	}

	deal, err := h.service.GetDealByID(ctx, session, dealID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get deal",
			slog.String("deal_id", dealID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve deal")
		return
	}

	respondJSON(w, http.StatusOK, deal)
}

// ListDeals handles GET /api/v1/deals
func (h *DealHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	params := h.parseListParams(r)

	result, err := h.service.ListDeals(ctx, session, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list deals",
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to list deals")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// MarkDealPaid handles PATCH /api/v1/deals/{id}/paid
func (h *DealHandler) MarkDealPaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	dealID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid deal ID format")
		return
	}

	if err := h.service.MarkDealPaid(ctx, session, dealID); err != nil {
		h.logger.ErrorContext(ctx, "failed to mark deal paid",
			slog.String("deal_id", dealID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to mark deal as paid")
		return
	}

	h.logger.InfoContext(ctx, "deal marked paid",
		slog.String("deal_id", dealID.String()))

	respondJSON(w, http.StatusOK, map[string]string{
		"deal_id": dealID.String(),
		"status":  string(domain.DealStatusPaid),
	})
}

// DeleteDeal handles DELETE /api/v1/deals/{id}
func (h *DealHandler) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	dealID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid deal ID format")
		return
	}

	if err := h.service.DeleteDeal(ctx, session, dealID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete deal",
			slog.String("deal_id", dealID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to delete deal")
		return
	}

	h.logger.InfoContext(ctx, "deal deleted",
		slog.String("deal_id", dealID.String()))

	h.enqueueInsightsRefresh(ctx, session.DealerID)

	respondJSON(w, http.StatusOK, map[string]string{
		"deal_id": dealID.String(),
		"message": "Deal deleted successfully",
	})
}

// GetPhoneConditions handles GET /api/v1/deals/{id}/conditions
func (h *DealHandler) GetPhoneConditions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	dealID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid deal ID format")
		return
	}

	conditions, err := h.service.GetPhoneConditions(ctx, session, dealID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get phone conditions",
			slog.String("deal_id", dealID.String()),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve phone conditions")
		return
	}

	respondJSON(w, http.StatusOK, conditions)
}

// parseListParams parses query parameters for listing deals
func (h *DealHandler) parseListParams(r *http.Request) ports.DealListParams {
	params := ports.DealListParams{
		Page:     1,
		PageSize: 50,
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				params.PageSize = 100
			} else {
				params.PageSize = l
			}
		}
	}

	params.DealType = r.URL.Query().Get("deal_type")
	params.Status = r.URL.Query().Get("status")

	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// enqueueSettlementTasks queues the background work that follows a
// settlement: insight cache refresh and the customer receipt. Both are
// best-effort; the deal is already committed.
func (h *DealHandler) enqueueSettlementTasks(ctx context.Context, session identity.Session, dealID uuid.UUID, input ports.SettlementInput) {
	h.enqueueInsightsRefresh(ctx, session.DealerID)

	if h.asynqClient == nil {
		return
	}

	deal, err := h.service.GetDealByID(ctx, session, dealID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load deal for receipt",
			slog.String("deal_id", dealID.String()),
			slog.String("error", err.Error()))
		return
	}

	payload := workers.DealReceiptPayload{
		DealID:       dealID.String(),
		DealerID:     session.DealerID,
		CustomerName: deal.CustomerName,
		Contact:      deal.Contact,
		TotalAmount:  deal.TotalAmount.StringFixed(2),
		DealType:     string(deal.DealType),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to marshal receipt payload",
			slog.String("error", err.Error()))
		return
	}

	task := asynq.NewTask(workers.TypeDealReceipt, b)
	if _, err := h.asynqClient.Enqueue(task,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour)); err != nil {
		h.logger.WarnContext(ctx, "failed to enqueue receipt task",
			slog.String("deal_id", dealID.String()),
			slog.String("error", err.Error()))
	}
}

func (h *DealHandler) enqueueInsightsRefresh(ctx context.Context, dealerID string) {
	if h.asynqClient == nil {
		return
	}

	b, err := json.Marshal(workers.InsightsRefreshPayload{DealerID: dealerID})
	if err != nil {
		h.logger.WarnContext(ctx, "failed to marshal insights payload",
			slog.String("error", err.Error()))
		return
	}

	task := asynq.NewTask(workers.TypeInsightsRefresh, b)
	if _, err := h.asynqClient.Enqueue(task,
		asynq.Queue("low"),
		asynq.MaxRetry(2)); err != nil {
		h.logger.WarnContext(ctx, "failed to enqueue insights refresh",
			slog.String("dealer_id", dealerID),
			slog.String("error", err.Error()))
	}
}
