// internal/core/ports/deal_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
)

// DealRepository defines the persistence port for deals and the
// denormalized sold-unit history they produce.
type DealRepository interface {
	// SaveTx and SaveSoldUnitsTx participate in the settlement
	// transaction owned by the settlement service.
	SaveTx(ctx context.Context, tx pgx.Tx, deal *domain.Deal) error
	SaveSoldUnitsTx(ctx context.Context, tx pgx.Tx, units []domain.SoldUnit) error

	FindByID(ctx context.Context, dealerID string, id uuid.UUID) (*domain.Deal, error)
	FindAll(ctx context.Context, dealerID string, params DealListParams) ([]*domain.Deal, int64, error)
	UpdateStatus(ctx context.Context, dealerID string, id uuid.UUID, status domain.DealStatus) error
	Delete(ctx context.Context, dealerID string, id uuid.UUID) error

	FindSoldUnitsByDeal(ctx context.Context, dealerID string, dealID uuid.UUID) ([]domain.SoldUnit, error)
	// FindRecentSoldUnits returns the dealer's most recent sold units
	// matching brand and, when model is non-empty, model too.
	FindRecentSoldUnits(ctx context.Context, dealerID string, brand, model string, wholesaleOnly bool, limit int) ([]domain.SoldUnit, error)
}

// DealListParams holds filters for listing deals
type DealListParams struct {
	DealType  string
	Status    string
	SortOrder string
	Page      int
	PageSize  int
}
