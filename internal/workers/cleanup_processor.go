// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/config"
)

// CleanupProcessor handles cleanup tasks
type CleanupProcessor struct {
	db     *db.Database
	media  ports.MediaStore
	config *config.Config
	logger *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(database *db.Database, media ports.MediaStore, cfg *config.Config, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		db:     database,
		media:  media,
		config: cfg,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupOrphanMedia deletes blob-store objects under devices/ that no
// device record references anymore. Deletions of devices only remove
// media best-effort, so orphans accumulate and this sweep reclaims them.
func (p *CleanupProcessor) CleanupOrphanMedia(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up orphaned media")

	keys, err := p.media.List(ctx, "devices/")
	if err != nil {
		return fmt.Errorf("failed to list media objects: %w", err)
	}

	referenced := make(map[string]struct{})
	rows, err := p.db.Query(ctx, `SELECT unnest(images) FROM devices WHERE array_length(images, 1) > 0`)
	if err != nil {
		return fmt.Errorf("failed to load image references: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return fmt.Errorf("failed to scan image reference: %w", err)
		}
		referenced[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read image references: %w", err)
	}

	var orphans []string
	for _, key := range keys {
		if _, ok := referenced[key]; !ok {
			orphans = append(orphans, key)
		}
	}

	if len(orphans) > 0 {
		if err := p.media.DeleteMultiple(ctx, orphans); err != nil {
			return fmt.Errorf("failed to delete orphaned media: %w", err)
		}
	}

	p.logger.InfoContext(ctx, "orphaned media cleaned up",
		slog.Int("objects_listed", len(keys)),
		slog.Int("objects_deleted", len(orphans)))

	return nil
}

// CleanupTempFiles removes stale uploads from the temp directory
func (p *CleanupProcessor) CleanupTempFiles(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up temp files")

	tempDir := p.config.FileProcessing.TempDir
	maxAge := 24 * time.Hour

	var deletedCount int
	err := filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				p.logger.WarnContext(ctx, "failed to delete temp file",
					slog.String("file", path),
					slog.String("error", err.Error()))
			} else {
				deletedCount++
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk temp directory: %w", err)
	}

	p.logger.InfoContext(ctx, "temp files cleaned up",
		slog.Int("files_deleted", deletedCount))

	return nil
}
