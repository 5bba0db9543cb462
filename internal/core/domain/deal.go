// internal/core/domain/deal.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealStatus represents the payment state of a deal
type DealStatus string

const (
	DealStatusPaid    DealStatus = "Paid"
	DealStatusPending DealStatus = "Pending"
)

// PaymentMode represents how the buyer pays
type PaymentMode string

const (
	PaymentCash   PaymentMode = "cash"
	PaymentOnline PaymentMode = "online"
	PaymentCredit PaymentMode = "credit"
)

// DealType distinguishes retail sales from wholesale bulk sales
type DealType string

const (
	DealRetail    DealType = "retail"
	DealWholesale DealType = "wholesale"
)

// PhoneLine is one phone within a deal. PhoneID is optional: a line
// need not reference a stocked device (manual/free-text sale entry).
type PhoneLine struct {
	Model     string          `json:"model"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	PhoneID   *uuid.UUID      `json:"phone_id,omitempty"`
	Condition *string         `json:"condition,omitempty"`
}

// Deal represents one commercial transaction: one buyer, one payment
// arrangement, one or more phone lines.
type Deal struct {
	ID           uuid.UUID       `json:"id"`
	DealerID     string          `json:"dealer_id"`
	CustomerName string          `json:"customer_name"`
	Contact      string          `json:"contact"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       DealStatus      `json:"status"`
	Phones       []PhoneLine     `json:"phones"`
	PaymentMode  PaymentMode     `json:"payment_mode"`
	CreditTerm   *int            `json:"credit_term,omitempty"`
	DealType     DealType        `json:"deal_type"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SoldUnit is an immutable historical record of one sold phone line.
// It is denormalized from the deal and the device at settlement time
// so it survives deletion of either. BuyerName is the deal's customer
// name, not the selling dealer.
type SoldUnit struct {
	ID        uuid.UUID       `json:"id"`
	DealID    uuid.UUID       `json:"deal_id"`
	DealerID  string          `json:"dealer_id"`
	Model     string          `json:"model"`
	Brand     string          `json:"brand"`
	Condition string          `json:"condition,omitempty"`
	Price     decimal.Decimal `json:"price"`
	BuyerName string          `json:"buyer_name"`
	DealType  DealType        `json:"deal_type"`
	SoldAt    time.Time       `json:"sold_at"`
}

// Validate checks the deal's input fields before settlement
func (d *Deal) Validate() error {
	if d.DealerID == "" {
		return fmt.Errorf("%w: dealer_id is required", ErrUnauthenticated)
	}
	if d.CustomerName == "" {
		return fmt.Errorf("%w: customer_name is required", ErrInvalidInput)
	}
	if d.Contact == "" {
		return fmt.Errorf("%w: contact is required", ErrInvalidInput)
	}
	if len(d.Phones) == 0 {
		return fmt.Errorf("%w: at least one phone line is required", ErrInvalidInput)
	}
	switch d.PaymentMode {
	case PaymentCash, PaymentOnline:
		if d.CreditTerm != nil {
			return fmt.Errorf("%w: credit_term only applies to credit deals", ErrInvalidInput)
		}
	case PaymentCredit:
		if d.CreditTerm == nil || *d.CreditTerm <= 0 {
			return fmt.Errorf("%w: credit deals require a positive credit_term", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown payment_mode %q", ErrInvalidInput, d.PaymentMode)
	}
	switch d.DealType {
	case DealRetail, DealWholesale:
	default:
		return fmt.Errorf("%w: unknown deal_type %q", ErrInvalidInput, d.DealType)
	}
	for i := range d.Phones {
		line := &d.Phones[i]
		if line.Model == "" {
			return fmt.Errorf("%w: phone line %d missing model", ErrInvalidInput, i)
		}
		if line.Price.IsNegative() {
			return fmt.Errorf("%w: phone line %d has negative price", ErrInvalidInput, i)
		}
		if line.Quantity < 0 {
			return fmt.Errorf("%w: phone line %d has negative quantity", ErrInvalidInput, i)
		}
		if line.Quantity == 0 {
			line.Quantity = 1
		}
	}
	return nil
}

// ComputeTotal sets TotalAmount to the sum of line prices. The
// dealer-entered price is authoritative; base price is not consulted.
func (d *Deal) ComputeTotal() {
	total := decimal.Zero
	for _, line := range d.Phones {
		total = total.Add(line.Price)
	}
	d.TotalAmount = total
}

// DeriveStatus sets the payment status from the payment mode
func (d *Deal) DeriveStatus() {
	if d.PaymentMode == PaymentCredit {
		d.Status = DealStatusPending
	} else {
		d.Status = DealStatusPaid
	}
}

// PrepareForStorage stamps identity and timestamps and derives the
// computed fields before the deal is persisted.
func (d *Deal) PrepareForStorage() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.ComputeTotal()
	d.DeriveStatus()

	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}
