// internal/core/domain/deal_test.go
package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
)

func validDeal() *domain.Deal {
	return &domain.Deal{
		DealerID:     "dealer-1",
		CustomerName: "Omar Hassan",
		Contact:      "+20 111 222 3333",
		PaymentMode:  domain.PaymentCash,
		DealType:     domain.DealRetail,
		Phones: []domain.PhoneLine{
			{Model: "iPhone 13", Price: decimal.NewFromFloat(600), Quantity: 1},
		},
	}
}

func TestDeal_Validate(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name          string
		mutate        func(*domain.Deal)
		expectedError bool
		errorContains string
	}{
		{
			name:   "valid_cash_deal",
			mutate: func(d *domain.Deal) {},
		},
		{
			name: "missing_dealer_id",
			mutate: func(d *domain.Deal) {
				d.DealerID = ""
			},
			expectedError: true,
			errorContains: "dealer_id is required",
		},
		{
			name: "missing_customer_name",
			mutate: func(d *domain.Deal) {
				d.CustomerName = ""
			},
			expectedError: true,
			errorContains: "customer_name is required",
		},
		{
			name: "missing_contact",
			mutate: func(d *domain.Deal) {
				d.Contact = ""
			},
			expectedError: true,
			errorContains: "contact is required",
		},
		{
			name: "no_phone_lines",
			mutate: func(d *domain.Deal) {
				d.Phones = nil
			},
			expectedError: true,
			errorContains: "at least one phone line",
		},
		{
			name: "credit_term_on_cash_deal",
			mutate: func(d *domain.Deal) {
				d.CreditTerm = intPtr(30)
			},
			expectedError: true,
			errorContains: "credit_term only applies to credit deals",
		},
		{
			name: "credit_deal_without_term",
			mutate: func(d *domain.Deal) {
				d.PaymentMode = domain.PaymentCredit
			},
			expectedError: true,
			errorContains: "credit deals require a positive credit_term",
		},
		{
			name: "credit_deal_with_term",
			mutate: func(d *domain.Deal) {
				d.PaymentMode = domain.PaymentCredit
				d.CreditTerm = intPtr(30)
			},
		},
		{
			name: "unknown_payment_mode",
			mutate: func(d *domain.Deal) {
				d.PaymentMode = "barter"
			},
			expectedError: true,
			errorContains: "unknown payment_mode",
		},
		{
			name: "unknown_deal_type",
			mutate: func(d *domain.Deal) {
				d.DealType = "consignment"
			},
			expectedError: true,
			errorContains: "unknown deal_type",
		},
		{
			name: "line_missing_model",
			mutate: func(d *domain.Deal) {
				d.Phones[0].Model = ""
			},
			expectedError: true,
			errorContains: "missing model",
		},
		{
			name: "line_with_negative_price",
			mutate: func(d *domain.Deal) {
				d.Phones[0].Price = decimal.NewFromFloat(-10)
			},
			expectedError: true,
			errorContains: "negative price",
		},
		{
			name: "line_with_negative_quantity",
			mutate: func(d *domain.Deal) {
				d.Phones[0].Quantity = -1
			},
			expectedError: true,
			errorContains: "negative quantity",
		},
		{
			name: "zero_price_line_allowed",
			mutate: func(d *domain.Deal) {
				d.Phones[0].Price = decimal.Zero
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := validDeal()
			tt.mutate(deal)

			err := deal.Validate()
			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDeal_Validate_DefaultsZeroQuantityToOne(t *testing.T) {
	deal := validDeal()
	deal.Phones[0].Quantity = 0

	require.NoError(t, deal.Validate())
	assert.Equal(t, 1, deal.Phones[0].Quantity)
}

func TestDeal_ComputeTotal(t *testing.T) {
	deal := validDeal()
	deal.Phones = []domain.PhoneLine{
		{Model: "iPhone 13", Price: decimal.NewFromFloat(600.50), Quantity: 1},
		{Model: "Galaxy S23", Price: decimal.NewFromFloat(450.25), Quantity: 2},
		{Model: "Redmi Note 12", Price: decimal.Zero, Quantity: 1},
	}

	deal.ComputeTotal()

	expected := decimal.NewFromFloat(1050.75)
	assert.True(t, deal.TotalAmount.Equal(expected),
		"Expected total: %s, Got: %s", expected, deal.TotalAmount)
}

func TestDeal_DeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.PaymentMode
		expected domain.DealStatus
	}{
		{"cash_is_paid", domain.PaymentCash, domain.DealStatusPaid},
		{"online_is_paid", domain.PaymentOnline, domain.DealStatusPaid},
		{"credit_is_pending", domain.PaymentCredit, domain.DealStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := validDeal()
			deal.PaymentMode = tt.mode

			deal.DeriveStatus()
			assert.Equal(t, tt.expected, deal.Status)
		})
	}
}

func TestDeal_PrepareForStorage(t *testing.T) {
	deal := validDeal()
	require.Equal(t, uuid.Nil, deal.ID)
	require.True(t, deal.CreatedAt.IsZero())

	deal.PrepareForStorage()

	assert.NotEqual(t, uuid.Nil, deal.ID)
	assert.False(t, deal.CreatedAt.IsZero())
	assert.False(t, deal.UpdatedAt.IsZero())
	assert.Equal(t, domain.DealStatusPaid, deal.Status)
	assert.True(t, deal.TotalAmount.Equal(decimal.NewFromFloat(600)))
}

func TestDeal_PrepareForStorage_KeepsExistingID(t *testing.T) {
	deal := validDeal()
	id := uuid.New()
	deal.ID = id

	deal.PrepareForStorage()
	assert.Equal(t, id, deal.ID)
}
