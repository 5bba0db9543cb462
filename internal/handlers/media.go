// internal/handlers/media.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

const presignTTL = 15 * time.Minute

// MediaHandler issues presigned blob-store URLs for device images.
// Clients upload directly to the store; the API never proxies bytes.
type MediaHandler struct {
	media  ports.MediaStore
	logger *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media ports.MediaStore, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		media:  media,
		logger: logger.With(slog.String("handler", "media")),
	}
}

// PresignUploadRequest asks for an upload URL for one image
type PresignUploadRequest struct {
	ContentType string `json:"content_type"`
}

// PresignUpload handles POST /api/v1/devices/{id}/images/presign
func (h *MediaHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	deviceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid device ID format")
		return
	}

	var req PresignUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		respondError(w, http.StatusBadRequest, "content_type must be an image type")
		return
	}

	key := fmt.Sprintf("devices/%s/%s/%s", session.DealerID, deviceID, uuid.New())
	url, err := h.media.PresignUpload(ctx, key, req.ContentType, presignTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to presign upload",
			slog.String("key", key),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"key":        key,
		"upload_url": url,
		"expires_in": int(presignTTL.Seconds()),
	})
}

// PresignDownload handles GET /api/v1/media/presign?key=...
func (h *MediaHandler) PresignDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "key is required")
		return
	}
	// Keys are namespaced per dealer; refuse cross-dealer reads
	if !strings.HasPrefix(key, "devices/"+session.DealerID+"/") {
		respondError(w, http.StatusForbidden, "access denied")
		return
	}

	url, err := h.media.PresignDownload(ctx, key, presignTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to presign download",
			slog.String("key", key),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to create download URL")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"key":          key,
		"download_url": url,
		"expires_in":   int(presignTTL.Seconds()),
	})
}
