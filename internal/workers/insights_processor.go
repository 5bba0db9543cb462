// internal/workers/insights_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/yfarouk/dealstack-be/internal/core/ports"
)

// InsightsProcessor rebuilds a dealer's cached insight aggregates in
// the background so the next dashboard read is warm.
type InsightsProcessor struct {
	service ports.InsightService
	logger  *slog.Logger
}

// NewInsightsProcessor creates a new insights processor
func NewInsightsProcessor(service ports.InsightService, logger *slog.Logger) *InsightsProcessor {
	return &InsightsProcessor{
		service: service,
		logger:  logger.With(slog.String("processor", "insights")),
	}
}

// ProcessRefresh recomputes and re-caches the dealer's aggregates
func (p *InsightsProcessor) ProcessRefresh(ctx context.Context, t *asynq.Task) error {
	var payload InsightsRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.DealerID == "" {
		return fmt.Errorf("insights refresh task missing dealer_id")
	}

	p.logger.InfoContext(ctx, "refreshing dealer insights",
		slog.String("dealer_id", payload.DealerID))

	if err := p.service.RefreshDealerCache(ctx, payload.DealerID); err != nil {
		return fmt.Errorf("failed to refresh insights for dealer %s: %w", payload.DealerID, err)
	}

	p.logger.InfoContext(ctx, "dealer insights refreshed",
		slog.String("dealer_id", payload.DealerID))

	return nil
}
