// internal/handlers/import.go
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
	"github.com/yfarouk/dealstack-be/internal/workers"
)

var excelContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel":                                          true,
}

// ImportHandler accepts device workbooks and queues them for
// background import.
type ImportHandler struct {
	asynqClient *asynq.Client
	logger      *slog.Logger
	maxFileSize int64
	uploadDir   string
}

// NewImportHandler creates a new import handler
func NewImportHandler(asynqClient *asynq.Client, logger *slog.Logger, maxFileSize int64, uploadDir string) *ImportHandler {
	return &ImportHandler{
		asynqClient: asynqClient,
		logger:      logger.With(slog.String("handler", "import")),
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
	}
}

// ImportExcel handles POST /api/v1/import/excel
func (h *ImportHandler) ImportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := identity.FromContext(ctx)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if !excelContentTypes[header.Header.Get("Content-Type")] {
		respondError(w, http.StatusBadRequest, "Only Excel files are allowed")
		return
	}

	tempFile, err := h.saveUpload(file, header.Filename)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save upload",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	jobID := uuid.New().String()
	if err := h.enqueueImport(jobID, session.DealerID, tempFile); err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to enqueue import",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	h.logger.InfoContext(ctx, "Excel import queued",
		slog.String("job_id", jobID),
		slog.String("dealer_id", session.DealerID))

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  jobID,
		"status":  "queued",
		"message": "Excel import has been queued for processing",
	})
}

// saveUpload spools the uploaded workbook to the upload directory so
// the worker can read it after this request returns.
func (h *ImportHandler) saveUpload(file multipart.File, filename string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return path, nil
}

func (h *ImportHandler) enqueueImport(jobID, dealerID, filePath string) error {
	b, err := json.Marshal(workers.ExcelImportPayload{
		JobID:    jobID,
		DealerID: dealerID,
		FilePath: filePath,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = h.asynqClient.Enqueue(
		asynq.NewTask(workers.TypeExcelImport, b),
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour),
	)
	return err
}
