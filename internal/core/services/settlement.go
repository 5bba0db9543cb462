// internal/core/services/settlement.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// TxRunner runs a function inside one database transaction, retrying
// on serialization conflicts. Implemented by db.Database.
type TxRunner interface {
	TransactionWithRetry(ctx context.Context, fn func(pgx.Tx) error) error
}

// SettlementService converts a proposed sale into persisted deal,
// sold-unit, and inventory-decrement state. The whole settlement runs
// in one transaction: either everything commits or nothing does.
type SettlementService struct {
	deals   ports.DealRepository
	devices ports.DeviceRepository
	db      TxRunner
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// Statically assert that *SettlementService implements the port.
var _ ports.SettlementService = (*SettlementService)(nil)

// NewSettlementService creates a new settlement service
func NewSettlementService(deals ports.DealRepository, devices ports.DeviceRepository, db TxRunner, cache ports.CacheRepository, logger *slog.Logger) *SettlementService {
	return &SettlementService{
		deals:   deals,
		devices: devices,
		db:      db,
		cache:   cache,
		logger:  logger.With(slog.String("service", "settlement")),
	}
}

// SettleDeal records the deal, one sold unit per phone line, and the
// stock decrements for every line that references a device.
//
// Sequence inside the transaction, per line:
//  1. resolve brand from the referenced device ("" when the line has
//     no phone_id or the device is gone),
//  2. insert the sold unit,
//  3. conditionally decrement the device quantity; a device with
//     fewer units than the line sells aborts the whole settlement
//     with ErrInsufficientStock and rolls everything back.
//
// The dealer-entered line prices are authoritative: total_amount is
// their sum, never recomputed from base prices.
func (s *SettlementService) SettleDeal(ctx context.Context, session identity.Session, input ports.SettlementInput) (uuid.UUID, error) {
	if !session.Valid() {
		return uuid.Nil, domain.ErrUnauthenticated
	}

	deal := &domain.Deal{
		DealerID:     session.DealerID,
		CustomerName: input.CustomerName,
		Contact:      input.Contact,
		PaymentMode:  input.PaymentMode,
		CreditTerm:   input.CreditTerm,
		DealType:     input.DealType,
		Phones:       make([]domain.PhoneLine, len(input.Phones)),
	}
	for i, line := range input.Phones {
		deal.Phones[i] = domain.PhoneLine{
			Model:     line.Model,
			Price:     line.Price,
			Quantity:  line.Quantity,
			PhoneID:   line.PhoneID,
			Condition: line.Condition,
		}
	}

	if err := deal.Validate(); err != nil {
		return uuid.Nil, err
	}
	deal.PrepareForStorage()

	err := s.db.TransactionWithRetry(ctx, func(tx pgx.Tx) error {
		if err := s.deals.SaveTx(ctx, tx, deal); err != nil {
			return err
		}

		soldAt := time.Now()
		units := make([]domain.SoldUnit, len(deal.Phones))
		for i := range deal.Phones {
			line := &deal.Phones[i]

			brand := ""
			if line.PhoneID != nil {
				var err error
				brand, err = s.devices.FindBrandTx(ctx, tx, deal.DealerID, *line.PhoneID)
				if err != nil {
					return err
				}
			}

			condition := ""
			if line.Condition != nil {
				condition = *line.Condition
			}

			units[i] = domain.SoldUnit{
				ID:        uuid.New(),
				DealID:    deal.ID,
				DealerID:  deal.DealerID,
				Model:     line.Model,
				Brand:     brand,
				Condition: condition,
				Price:     line.Price,
				BuyerName: deal.CustomerName,
				DealType:  deal.DealType,
				SoldAt:    soldAt,
			}
		}

		if err := s.deals.SaveSoldUnitsTx(ctx, tx, units); err != nil {
			return err
		}

		for i := range deal.Phones {
			line := &deal.Phones[i]
			if line.PhoneID == nil {
				continue
			}

			applied, err := s.devices.DecrementQuantityTx(ctx, tx, deal.DealerID, *line.PhoneID, line.Quantity)
			if err != nil {
				return err
			}
			if !applied {
				// The referenced device no longer exists; the sale is
				// still recorded, just without a stock movement.
				s.logger.WarnContext(ctx, "phone line references missing device",
					slog.String("deal_id", deal.ID.String()),
					slog.String("phone_id", line.PhoneID.String()))
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("settlement failed: %w", err)
	}

	s.invalidateInsights(ctx, deal.DealerID)

	s.logger.InfoContext(ctx, "deal settled",
		slog.String("deal_id", deal.ID.String()),
		slog.String("deal_type", string(deal.DealType)),
		slog.Int("phones", len(deal.Phones)),
		slog.String("total", deal.TotalAmount.String()))

	return deal.ID, nil
}

// invalidateInsights drops the dealer's cached aggregates after a
// write. Best effort; a stale cache expires on its own TTL.
func (s *SettlementService) invalidateInsights(ctx context.Context, dealerID string) {
	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("insights:%s:*", dealerID)); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate insight cache",
			slog.String("dealer_id", dealerID),
			slog.String("error", err.Error()))
	}
}

// GetDealByID retrieves one of the dealer's deals
func (s *SettlementService) GetDealByID(ctx context.Context, session identity.Session, id uuid.UUID) (*domain.Deal, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	deal, err := s.deals.FindByID(ctx, session.DealerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	if deal == nil {
		return nil, fmt.Errorf("%w: deal %s", domain.ErrNotFound, id)
	}

	return deal, nil
}

// ListDeals retrieves the dealer's deals with filtering and pagination
func (s *SettlementService) ListDeals(ctx context.Context, session identity.Session, params ports.DealListParams) (*ports.DealListResult, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 50
	}

	deals, totalCount, err := s.deals.FindAll(ctx, session.DealerID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}

	totalPages := int(totalCount) / params.PageSize
	if int(totalCount)%params.PageSize > 0 {
		totalPages++
	}

	return &ports.DealListResult{
		Deals:      deals,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// MarkDealPaid transitions a pending credit deal to paid. The only
// legal transition; a paid deal stays paid.
func (s *SettlementService) MarkDealPaid(ctx context.Context, session identity.Session, id uuid.UUID) error {
	if !session.Valid() {
		return domain.ErrUnauthenticated
	}

	deal, err := s.deals.FindByID(ctx, session.DealerID, id)
	if err != nil {
		return fmt.Errorf("failed to get deal: %w", err)
	}
	if deal == nil {
		return fmt.Errorf("%w: deal %s", domain.ErrNotFound, id)
	}
	if deal.Status != domain.DealStatusPending {
		return fmt.Errorf("%w: deal %s is already %s", domain.ErrInvalidInput, id, deal.Status)
	}

	if err := s.deals.UpdateStatus(ctx, session.DealerID, id, domain.DealStatusPaid); err != nil {
		return fmt.Errorf("failed to mark deal paid: %w", err)
	}

	s.logger.InfoContext(ctx, "deal marked paid", slog.String("deal_id", id.String()))
	return nil
}

// DeleteDeal is the administrative escape hatch. Sold units survive
// so the sale history and insights keep working.
func (s *SettlementService) DeleteDeal(ctx context.Context, session identity.Session, id uuid.UUID) error {
	if !session.Valid() {
		return domain.ErrUnauthenticated
	}

	if err := s.deals.Delete(ctx, session.DealerID, id); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}

	s.invalidateInsights(ctx, session.DealerID)
	return nil
}

// GetPhoneConditions returns a model-to-condition mapping rebuilt from
// the deal's sold units, for deal views whose lines lack condition.
func (s *SettlementService) GetPhoneConditions(ctx context.Context, session identity.Session, dealID uuid.UUID) (map[string]string, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	units, err := s.deals.FindSoldUnitsByDeal(ctx, session.DealerID, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sold units: %w", err)
	}

	conditions := make(map[string]string, len(units))
	for _, u := range units {
		if u.Condition != "" {
			conditions[u.Model] = u.Condition
		}
	}

	return conditions, nil
}
