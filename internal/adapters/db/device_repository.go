// internal/adapters/db/device_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
)

// deviceRepository implements ports.DeviceRepository
type deviceRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *Database, logger *slog.Logger) ports.DeviceRepository {
	return &deviceRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "devices")),
	}
}

const deviceColumns = `
	id, dealer_id, brand, model, condition, storage_gb, ram_gb,
	base_price, quantity, is_iphone, images, status, is_public,
	created_at, updated_at`

// Save creates a new device record
func (r *deviceRepository) Save(ctx context.Context, device *domain.Device) error {
	query := `
		INSERT INTO devices (
			id, dealer_id, brand, model, condition, storage_gb, ram_gb,
			base_price, quantity, is_iphone, images, status, is_public,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		device.ID, device.DealerID, device.Brand, device.Model, device.Condition,
		device.StorageGB, device.RamGB, device.BasePrice, device.Quantity,
		device.IsIphone, device.Images, device.Status, device.IsPublic,
		device.CreatedAt, device.UpdatedAt,
	).Scan(&device.ID, &device.CreatedAt, &device.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save device: %w", err)
	}

	r.logger.DebugContext(ctx, "device saved",
		slog.String("id", device.ID.String()),
		slog.String("model", device.Model))

	return nil
}

// SaveBatch saves multiple devices in one transaction
func (r *deviceRepository) SaveBatch(ctx context.Context, devices []domain.Device) error {
	if len(devices) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}

		query := `
			INSERT INTO devices (
				id, dealer_id, brand, model, condition, storage_gb, ram_gb,
				base_price, quantity, is_iphone, images, status, is_public,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
			)`

		for i := range devices {
			d := &devices[i]
			batch.Queue(query,
				d.ID, d.DealerID, d.Brand, d.Model, d.Condition,
				d.StorageGB, d.RamGB, d.BasePrice, d.Quantity,
				d.IsIphone, d.Images, d.Status, d.IsPublic,
				d.CreatedAt, d.UpdatedAt,
			)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := range devices {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("failed to save device %d: %w", i, err)
			}
		}

		return nil
	})
}

// Update overwrites an existing device record
func (r *deviceRepository) Update(ctx context.Context, device *domain.Device) error {
	query := `
		UPDATE devices SET
			brand = $3, model = $4, condition = $5, storage_gb = $6, ram_gb = $7,
			base_price = $8, quantity = $9, is_iphone = $10, images = $11,
			status = $12, is_public = $13, updated_at = $14
		WHERE id = $1 AND dealer_id = $2
		RETURNING updated_at`

	device.UpdatedAt = time.Now()

	err := r.db.QueryRow(ctx, query,
		device.ID, device.DealerID, device.Brand, device.Model, device.Condition,
		device.StorageGB, device.RamGB, device.BasePrice, device.Quantity,
		device.IsIphone, device.Images, device.Status, device.IsPublic,
		device.UpdatedAt,
	).Scan(&device.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: device %s", domain.ErrNotFound, device.ID)
		}
		return fmt.Errorf("failed to update device: %w", err)
	}

	r.logger.DebugContext(ctx, "device updated",
		slog.String("id", device.ID.String()))

	return nil
}

// FindByID retrieves a device owned by the given dealer; nil when absent
func (r *deviceRepository) FindByID(ctx context.Context, dealerID string, id uuid.UUID) (*domain.Device, error) {
	query := `SELECT ` + deviceColumns + `
		FROM devices
		WHERE id = $1 AND dealer_id = $2`

	device := &domain.Device{}
	err := r.db.QueryRow(ctx, query, id, dealerID).Scan(
		&device.ID, &device.DealerID, &device.Brand, &device.Model, &device.Condition,
		&device.StorageGB, &device.RamGB, &device.BasePrice, &device.Quantity,
		&device.IsIphone, &device.Images, &device.Status, &device.IsPublic,
		&device.CreatedAt, &device.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find device: %w", err)
	}

	return device, nil
}

// Delete performs a hard delete
func (r *deviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: device %s", domain.ErrNotFound, id)
	}

	r.logger.InfoContext(ctx, "device deleted", slog.String("id", id.String()))
	return nil
}

// Exists checks if a device exists regardless of owner
func (r *deviceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM devices WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// UpdateStatusBatch flips status across all given IDs in one statement,
// so the transition is all-or-nothing.
func (r *deviceRepository) UpdateStatusBatch(ctx context.Context, dealerID string, ids []uuid.UUID, status domain.DeviceStatus) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE devices
		SET status = $3, updated_at = $4
		WHERE id = ANY($1) AND dealer_id = $2`

	tag, err := r.db.Exec(ctx, query, ids, dealerID, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update device status: %w", err)
	}

	if tag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("%w: %d of %d devices matched", domain.ErrNotFound,
			tag.RowsAffected(), len(ids))
	}

	r.logger.InfoContext(ctx, "device status updated",
		slog.Int("count", len(ids)),
		slog.String("status", string(status)))

	return nil
}

// DecrementQuantityTx applies the conditional stock decrement inside
// the caller's transaction. The quantity >= qty predicate keeps the
// floor at zero; concurrent settlements of the same device serialize
// on the row lock.
func (r *deviceRepository) DecrementQuantityTx(ctx context.Context, tx pgx.Tx, dealerID string, id uuid.UUID, qty int) (bool, error) {
	query := `
		UPDATE devices
		SET quantity = quantity - $3,
		    status = CASE WHEN quantity - $3 = 0 THEN 'sold' ELSE 'available' END,
		    updated_at = $4
		WHERE id = $1 AND dealer_id = $2 AND quantity >= $3`

	tag, err := tx.Exec(ctx, query, id, dealerID, qty, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to decrement quantity: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Distinguish a missing device from one without enough stock.
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM devices WHERE id = $1 AND dealer_id = $2)`,
		id, dealerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check device existence: %w", err)
	}

	if exists {
		return false, fmt.Errorf("%w: device %s has fewer than %d units",
			domain.ErrInsufficientStock, id, qty)
	}

	return false, nil
}

// FindBrandTx resolves a device's brand inside the caller's transaction
func (r *deviceRepository) FindBrandTx(ctx context.Context, tx pgx.Tx, dealerID string, id uuid.UUID) (string, error) {
	var brand string
	err := tx.QueryRow(ctx,
		`SELECT brand FROM devices WHERE id = $1 AND dealer_id = $2`,
		id, dealerID).Scan(&brand)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve brand: %w", err)
	}

	return brand, nil
}

// FindAll retrieves devices with filtering and pagination
func (r *deviceRepository) FindAll(ctx context.Context, dealerID string, params ports.DeviceListParams) ([]*domain.Device, int64, error) {
	qb := squirrel.Select(
		"id", "dealer_id", "brand", "model", "condition", "storage_gb", "ram_gb",
		"base_price", "quantity", "is_iphone", "images", "status", "is_public",
		"created_at", "updated_at",
	).From("devices").
		Where(squirrel.Eq{"dealer_id": dealerID}).
		PlaceholderFormat(squirrel.Dollar)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"brand": pattern},
			squirrel.ILike{"model": pattern},
		})
	}
	if params.Brand != "" {
		qb = qb.Where(squirrel.Eq{"brand": params.Brand})
	}
	if params.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": params.Status})
	}
	if params.IsPublic != nil {
		qb = qb.Where(squirrel.Eq{"is_public": *params.IsPublic})
	}

	countQb := qb.Column("COUNT(*) OVER()").Limit(1)
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	err = r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, fmt.Errorf("failed to count devices: %w", err)
	}

	orderBy := "created_at DESC"
	if params.SortBy != "" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}

		switch params.SortBy {
		case "brand":
			orderBy = fmt.Sprintf("brand %s, model %s", direction, direction)
		case "price":
			orderBy = fmt.Sprintf("base_price %s", direction)
		case "quantity":
			orderBy = fmt.Sprintf("quantity %s", direction)
		case "updated":
			orderBy = fmt.Sprintf("updated_at %s", direction)
		default:
			orderBy = fmt.Sprintf("created_at %s", direction)
		}
	}
	qb = qb.OrderBy(orderBy)

	if params.PageSize > 0 {
		qb = qb.Limit(uint64(params.PageSize))
		if params.Page > 1 {
			qb = qb.Offset(uint64((params.Page - 1) * params.PageSize))
		}
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	var devices []*domain.Device
	for rows.Next() {
		device := &domain.Device{}
		err := rows.Scan(
			&device.ID, &device.DealerID, &device.Brand, &device.Model, &device.Condition,
			&device.StorageGB, &device.RamGB, &device.BasePrice, &device.Quantity,
			&device.IsIphone, &device.Images, &device.Status, &device.IsPublic,
			&device.CreatedAt, &device.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, device)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return devices, totalCount, nil
}
