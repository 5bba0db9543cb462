// internal/core/ports/device_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
)

// DeviceRepository defines the persistence port for the inventory
// ledger. Implemented by the database adapter.
type DeviceRepository interface {
	Save(ctx context.Context, device *domain.Device) error
	SaveBatch(ctx context.Context, devices []domain.Device) error
	Update(ctx context.Context, device *domain.Device) error
	FindByID(ctx context.Context, dealerID string, id uuid.UUID) (*domain.Device, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, dealerID string, params DeviceListParams) ([]*domain.Device, int64, error)
	UpdateStatusBatch(ctx context.Context, dealerID string, ids []uuid.UUID, status domain.DeviceStatus) error

	// DecrementQuantityTx runs the conditional stock decrement inside
	// the caller's transaction. It reports:
	//   applied=true  when the row was decremented (status rederived),
	//   applied=false when the device does not exist for this dealer.
	// domain.ErrInsufficientStock is returned when the device exists
	// but holds fewer than qty units.
	DecrementQuantityTx(ctx context.Context, tx pgx.Tx, dealerID string, id uuid.UUID, qty int) (applied bool, err error)

	// FindBrandTx resolves a device's brand inside the caller's
	// transaction; ("", nil) when the device is absent.
	FindBrandTx(ctx context.Context, tx pgx.Tx, dealerID string, id uuid.UUID) (string, error)
}
