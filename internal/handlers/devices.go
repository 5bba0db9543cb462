// internal/handlers/devices.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// DeviceHandler handles device inventory HTTP requests
type DeviceHandler struct {
	service ports.DeviceService
	logger  *slog.Logger
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(service ports.DeviceService, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "devices")),
	}
}

// CreateDevice handles POST /api/v1/devices
func (h *DeviceHandler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	var req CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	device := req.ToDomain()

	if err := h.service.AddDevice(ctx, session, device); err != nil {
		h.logger.ErrorContext(ctx, "failed to create device",
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to create device")
		return
	}

	h.logger.InfoContext(ctx, "device created",
		slog.String("device_id", device.ID.String()),
		slog.String("brand", device.Brand),
		slog.String("model", device.Model))

	respondJSON(w, http.StatusCreated, device)
}

// GetDevice handles GET /api/v1/devices/{id}
func (h *DeviceHandler) GetDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)
	idStr := r.PathValue("id")

	deviceID, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid device ID format")
		return
	}

	device, err := h.service.GetDevice(ctx, session, deviceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get device",
			slog.String("device_id", idStr),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to retrieve device")
		return
	}

	respondJSON(w, http.StatusOK, device)
}

// ListDevices handles GET /api/v1/devices
func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	params := h.parseListParams(r)

	result, err := h.service.ListDevices(ctx, session, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list devices",
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to list devices")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// UpdateDevice handles PUT /api/v1/devices/{id}
func (h *DeviceHandler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)
	idStr := r.PathValue("id")

	deviceID, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid device ID format")
		return
	}

	var req CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	device := req.ToDomain()

	if err := h.service.UpdateDevice(ctx, session, deviceID, device); err != nil {
		h.logger.ErrorContext(ctx, "failed to update device",
			slog.String("device_id", idStr),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to update device")
		return
	}

	updated, err := h.service.GetDevice(ctx, session, deviceID)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]string{"message": "Device updated successfully"})
		return
	}

	h.logger.InfoContext(ctx, "device updated",
		slog.String("device_id", idStr))

	respondJSON(w, http.StatusOK, updated)
}

// DeleteDevice handles DELETE /api/v1/devices/{id}
func (h *DeviceHandler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)
	idStr := r.PathValue("id")

	deviceID, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid device ID format")
		return
	}

	if err := h.service.DeleteDevice(ctx, session, deviceID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete device",
			slog.String("device_id", idStr),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to delete device")
		return
	}

	h.logger.InfoContext(ctx, "device deleted",
		slog.String("device_id", idStr))

	respondJSON(w, http.StatusOK, map[string]string{
		"message":   "Device deleted successfully",
		"device_id": idStr,
	})
}

// UpdateDeviceStatus handles PATCH /api/v1/devices/status
func (h *DeviceHandler) UpdateDeviceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	var req UpdateDeviceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateDeviceStatus(ctx, session, req.IDs, domain.DeviceStatus(req.Status)); err != nil {
		h.logger.ErrorContext(ctx, "failed to update device status",
			slog.Int("count", len(req.IDs)),
			slog.String("status", req.Status),
			slog.String("error", err.Error()))
		respondDomainError(w, err, "Failed to update device status")
		return
	}

	h.logger.InfoContext(ctx, "device status updated",
		slog.Int("count", len(req.IDs)),
		slog.String("status", req.Status))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Device status updated successfully",
		"count":   len(req.IDs),
		"status":  req.Status,
	})
}

// parseListParams parses query parameters for listing devices
func (h *DeviceHandler) parseListParams(r *http.Request) ports.DeviceListParams {
	params := ports.DeviceListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "created_at",
		SortOrder: "desc",
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

	params.Search = r.URL.Query().Get("search")
	params.Brand = r.URL.Query().Get("brand")
	params.Status = r.URL.Query().Get("status")

	if isPublic := r.URL.Query().Get("is_public"); isPublic != "" {
		if val, err := strconv.ParseBool(isPublic); err == nil {
			params.IsPublic = &val
		}
	}

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}

	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// Request/Response DTOs

// CreateDeviceRequest represents the request body for creating or
// replacing a device record
type CreateDeviceRequest struct {
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Condition string          `json:"condition,omitempty"`
	StorageGB int             `json:"storage_gb"`
	RamGB     *int            `json:"ram_gb,omitempty"`
	BasePrice decimal.Decimal `json:"base_price"`
	Quantity  int             `json:"quantity"`
	IsIphone  bool            `json:"is_iphone,omitempty"`
	Images    []string        `json:"images,omitempty"`
	IsPublic  bool            `json:"is_public,omitempty"`
}

// Validate validates the create device request
func (r *CreateDeviceRequest) Validate() error {
	if r.Brand == "" && !r.IsIphone {
		return fmt.Errorf("brand is required")
	}
	if r.Model == "" {
		return fmt.Errorf("model is required")
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if r.BasePrice.IsNegative() {
		return fmt.Errorf("base_price cannot be negative")
	}
	if len(r.Images) > domain.MaxDeviceImages {
		return fmt.Errorf("at most %d images allowed", domain.MaxDeviceImages)
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *CreateDeviceRequest) ToDomain() *domain.Device {
	return &domain.Device{
		Brand:     r.Brand,
		Model:     r.Model,
		Condition: domain.DeviceCondition(r.Condition),
		StorageGB: r.StorageGB,
		RamGB:     r.RamGB,
		BasePrice: r.BasePrice,
		Quantity:  r.Quantity,
		IsIphone:  r.IsIphone,
		Images:    r.Images,
		IsPublic:  r.IsPublic,
	}
}

// UpdateDeviceStatusRequest represents a batch status change
type UpdateDeviceStatusRequest struct {
	IDs    []uuid.UUID `json:"ids"`
	Status string      `json:"status"`
}

// Validate validates the status update request
func (r *UpdateDeviceStatusRequest) Validate() error {
	if len(r.IDs) == 0 {
		return fmt.Errorf("ids is required")
	}
	switch domain.DeviceStatus(r.Status) {
	case domain.StatusAvailable, domain.StatusSold:
		return nil
	default:
		return fmt.Errorf("status must be %q or %q", domain.StatusAvailable, domain.StatusSold)
	}
}
