// internal/core/ports/insight_service.go
package ports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// MarketInsights summarizes recent sold units for a brand/model
type MarketInsights struct {
	Brand            string          `json:"brand"`
	Model            string          `json:"model,omitempty"`
	ExactMatch       bool            `json:"exact_match"`
	Count            int             `json:"count"`
	AveragePrice     decimal.Decimal `json:"average_price"`
	MinPrice         decimal.Decimal `json:"min_price"`
	MaxPrice         decimal.Decimal `json:"max_price"`
	RetailAverage    decimal.Decimal `json:"retail_average"`
	WholesaleAverage decimal.Decimal `json:"wholesale_average"`
}

// BrandStats aggregates sales per brand
type BrandStats struct {
	Brand        string          `json:"brand"`
	UnitsSold    int64           `json:"units_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	AveragePrice decimal.Decimal `json:"average_price"`
}

// ModelStats aggregates sales per model
type ModelStats struct {
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DealTypeStats aggregates deals per deal type
type DealTypeStats struct {
	DealType domain.DealType `json:"deal_type"`
	Count    int64           `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// RevenuePoint is one bucket of revenue over time
type RevenuePoint struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	Deals   int64           `json:"deals"`
}

// InventorySummary describes the dealer's current stock position
type InventorySummary struct {
	TotalDevices   int64           `json:"total_devices"`
	TotalUnits     int64           `json:"total_units"`
	AvailableUnits int64           `json:"available_units"`
	SoldOutModels  int64           `json:"sold_out_models"`
	StockValue     decimal.Decimal `json:"stock_value"`
	PublicListings int64           `json:"public_listings"`
}

// InsightService is the read side over sold-unit history. It performs
// no writes.
type InsightService interface {
	GetMarketInsights(ctx context.Context, session identity.Session, brand, model string) (*MarketInsights, error)
	GetRecentSales(ctx context.Context, session identity.Session, brand, model string) ([]domain.SoldUnit, error)
	GetBrandAnalytics(ctx context.Context, session identity.Session) ([]BrandStats, error)
	GetTopModels(ctx context.Context, session identity.Session, limit int) ([]ModelStats, error)
	GetDealTypeDistribution(ctx context.Context, session identity.Session) ([]DealTypeStats, error)
	GetRevenueByPeriod(ctx context.Context, session identity.Session, period string) ([]RevenuePoint, error)
	GetInventorySummary(ctx context.Context, session identity.Session) (*InventorySummary, error)
	RefreshDealerCache(ctx context.Context, dealerID string) error
}
