// internal/core/ports/settlement_service.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// SettlementInput is the dealer-entered proposal for one deal
type SettlementInput struct {
	CustomerName string             `json:"customer_name"`
	Contact      string             `json:"contact"`
	DealType     domain.DealType    `json:"deal_type"`
	PaymentMode  domain.PaymentMode `json:"payment_mode"`
	CreditTerm   *int               `json:"credit_term,omitempty"`
	Phones       []SettlementLine   `json:"phones"`
}

// SettlementLine is one proposed phone line
type SettlementLine struct {
	Model     string          `json:"model"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	PhoneID   *uuid.UUID      `json:"phone_id,omitempty"`
	Condition *string         `json:"condition,omitempty"`
}

// SettlementService converts a proposed sale into persisted deal,
// sold-unit, and inventory-decrement state in one transaction.
type SettlementService interface {
	SettleDeal(ctx context.Context, session identity.Session, input SettlementInput) (uuid.UUID, error)
	GetDealByID(ctx context.Context, session identity.Session, id uuid.UUID) (*domain.Deal, error)
	ListDeals(ctx context.Context, session identity.Session, params DealListParams) (*DealListResult, error)
	MarkDealPaid(ctx context.Context, session identity.Session, id uuid.UUID) error
	DeleteDeal(ctx context.Context, session identity.Session, id uuid.UUID) error
	GetPhoneConditions(ctx context.Context, session identity.Session, dealID uuid.UUID) (map[string]string, error)
}

// DealListResult holds one page of deals
type DealListResult struct {
	Deals      []*domain.Deal `json:"deals"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}
