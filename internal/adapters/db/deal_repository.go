// internal/adapters/db/deal_repository.go
package db

import (
	"context"
	"encoding/json"
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

// dealRepository implements ports.DealRepository
type dealRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewDealRepository creates a new deal repository
func NewDealRepository(db *Database, logger *slog.Logger) ports.DealRepository {
	return &dealRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "deals")),
	}
}

// SaveTx inserts the deal inside the settlement transaction. Phone
// lines are stored as a JSONB document in insertion order.
func (r *dealRepository) SaveTx(ctx context.Context, tx pgx.Tx, deal *domain.Deal) error {
	phones, err := json.Marshal(deal.Phones)
	if err != nil {
		return fmt.Errorf("failed to encode phone lines: %w", err)
	}

	query := `
		INSERT INTO deals (
			id, dealer_id, customer_name, contact, total_amount, status,
			phones, payment_mode, credit_term, deal_type, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err = tx.Exec(ctx, query,
		deal.ID, deal.DealerID, deal.CustomerName, deal.Contact,
		deal.TotalAmount, deal.Status, phones, deal.PaymentMode,
		deal.CreditTerm, deal.DealType, deal.CreatedAt, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}

	r.logger.DebugContext(ctx, "deal saved",
		slog.String("id", deal.ID.String()),
		slog.Int("phones", len(deal.Phones)))

	return nil
}

// SaveSoldUnitsTx inserts the denormalized sold units inside the
// settlement transaction.
func (r *dealRepository) SaveSoldUnitsTx(ctx context.Context, tx pgx.Tx, units []domain.SoldUnit) error {
	if len(units) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	query := `
		INSERT INTO sold_units (
			id, deal_id, dealer_id, model, brand, condition, price,
			buyer_name, deal_type, sold_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	for i := range units {
		u := &units[i]
		batch.Queue(query,
			u.ID, u.DealID, u.DealerID, u.Model, u.Brand, u.Condition,
			u.Price, u.BuyerName, u.DealType, u.SoldAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := range units {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save sold unit %d: %w", i, err)
		}
	}

	return nil
}

const dealColumns = `
	id, dealer_id, customer_name, contact, total_amount, status,
	phones, payment_mode, credit_term, deal_type, created_at, updated_at`

func scanDeal(row pgx.Row) (*domain.Deal, error) {
	deal := &domain.Deal{}
	var phones []byte

	err := row.Scan(
		&deal.ID, &deal.DealerID, &deal.CustomerName, &deal.Contact,
		&deal.TotalAmount, &deal.Status, &phones, &deal.PaymentMode,
		&deal.CreditTerm, &deal.DealType, &deal.CreatedAt, &deal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(phones, &deal.Phones); err != nil {
		return nil, fmt.Errorf("failed to decode phone lines: %w", err)
	}

	return deal, nil
}

// FindByID retrieves a deal owned by the given dealer; nil when absent
func (r *dealRepository) FindByID(ctx context.Context, dealerID string, id uuid.UUID) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + `
		FROM deals
		WHERE id = $1 AND dealer_id = $2`

	deal, err := scanDeal(r.db.QueryRow(ctx, query, id, dealerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find deal: %w", err)
	}

	return deal, nil
}

// FindAll retrieves the dealer's deals, insertion order ascending by
// default, with optional filters and pagination.
func (r *dealRepository) FindAll(ctx context.Context, dealerID string, params ports.DealListParams) ([]*domain.Deal, int64, error) {
	qb := squirrel.Select(
		"id", "dealer_id", "customer_name", "contact", "total_amount", "status",
		"phones", "payment_mode", "credit_term", "deal_type", "created_at", "updated_at",
	).From("deals").
		Where(squirrel.Eq{"dealer_id": dealerID}).
		PlaceholderFormat(squirrel.Dollar)

	if params.DealType != "" {
		qb = qb.Where(squirrel.Eq{"deal_type": params.DealType})
	}
	if params.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": params.Status})
	}

	countQb := qb.Column("COUNT(*) OVER()").Limit(1)
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	err = r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, fmt.Errorf("failed to count deals: %w", err)
	}

	if params.SortOrder == "desc" {
		qb = qb.OrderBy("created_at DESC")
	} else {
		qb = qb.OrderBy("created_at ASC")
	}

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
		return nil, 0, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	var deals []*domain.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, deal)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return deals, totalCount, nil
}

// UpdateStatus writes a new payment status; callers validate the
// transition beforehand.
func (r *dealRepository) UpdateStatus(ctx context.Context, dealerID string, id uuid.UUID, status domain.DealStatus) error {
	query := `
		UPDATE deals
		SET status = $3, updated_at = $4
		WHERE id = $1 AND dealer_id = $2`

	tag, err := r.db.Exec(ctx, query, id, dealerID, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update deal status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: deal %s", domain.ErrNotFound, id)
	}

	r.logger.InfoContext(ctx, "deal status updated",
		slog.String("id", id.String()),
		slog.String("status", string(status)))

	return nil
}

// Delete removes a deal. Sold units are deliberately retained so the
// sale history survives.
func (r *dealRepository) Delete(ctx context.Context, dealerID string, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM deals WHERE id = $1 AND dealer_id = $2`, id, dealerID)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: deal %s", domain.ErrNotFound, id)
	}

	r.logger.InfoContext(ctx, "deal deleted", slog.String("id", id.String()))
	return nil
}

const soldUnitColumns = `
	id, deal_id, dealer_id, model, brand, condition, price,
	buyer_name, deal_type, sold_at`

func scanSoldUnit(rows pgx.Rows) (domain.SoldUnit, error) {
	var u domain.SoldUnit
	err := rows.Scan(
		&u.ID, &u.DealID, &u.DealerID, &u.Model, &u.Brand, &u.Condition,
		&u.Price, &u.BuyerName, &u.DealType, &u.SoldAt,
	)
	return u, err
}

// FindSoldUnitsByDeal retrieves all sold units recorded for one deal
func (r *dealRepository) FindSoldUnitsByDeal(ctx context.Context, dealerID string, dealID uuid.UUID) ([]domain.SoldUnit, error) {
	query := `SELECT ` + soldUnitColumns + `
		FROM sold_units
		WHERE deal_id = $1 AND dealer_id = $2
		ORDER BY sold_at ASC`

	rows, err := r.db.Query(ctx, query, dealID, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sold units: %w", err)
	}
	defer rows.Close()

	var units []domain.SoldUnit
	for rows.Next() {
		u, err := scanSoldUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sold unit: %w", err)
		}
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return units, nil
}

// FindRecentSoldUnits retrieves the dealer's most recent sold units
// for a brand, narrowed to one model when given.
func (r *dealRepository) FindRecentSoldUnits(ctx context.Context, dealerID string, brand, model string, wholesaleOnly bool, limit int) ([]domain.SoldUnit, error) {
	qb := squirrel.Select(
		"id", "deal_id", "dealer_id", "model", "brand", "condition", "price",
		"buyer_name", "deal_type", "sold_at",
	).From("sold_units").
		Where(squirrel.Eq{"dealer_id": dealerID, "brand": brand}).
		PlaceholderFormat(squirrel.Dollar)

	if model != "" {
		qb = qb.Where(squirrel.Eq{"model": model})
	}
	if wholesaleOnly {
		qb = qb.Where(squirrel.Eq{"deal_type": domain.DealWholesale})
	}

	qb = qb.OrderBy("sold_at DESC").Limit(uint64(limit))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sold units: %w", err)
	}
	defer rows.Close()

	var units []domain.SoldUnit
	for rows.Next() {
		u, err := scanSoldUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sold unit: %w", err)
		}
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return units, nil
}
