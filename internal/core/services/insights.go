// internal/core/services/insights.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

const (
	// marketInsightWindow caps aggregation at the most recent records
	// so quotes track the current market, not all history.
	marketInsightWindow = 30
	recentSalesLimit    = 5

	insightCacheTTL = 5 * time.Minute
	reportCacheTTL  = 15 * time.Minute
)

// InsightService is the read side over sold-unit history
type InsightService struct {
	deals  ports.DealRepository
	db     ports.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *InsightService implements the port.
var _ ports.InsightService = (*InsightService)(nil)

// NewInsightService creates a new insight service
func NewInsightService(deals ports.DealRepository, db ports.Database, cache ports.CacheRepository, logger *slog.Logger) *InsightService {
	return &InsightService{
		deals:  deals,
		db:     db,
		cache:  cache,
		logger: logger.With(slog.String("service", "insights")),
	}
}

func insightKey(dealerID, name string, parts ...string) string {
	key := fmt.Sprintf("insights:%s:%s", dealerID, name)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// GetMarketInsights aggregates the dealer's recent sold units for a
// brand and model. When no exact brand+model match exists the scope
// widens to the brand alone.
func (s *InsightService) GetMarketInsights(ctx context.Context, session identity.Session, brand, model string) (*ports.MarketInsights, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if brand == "" {
		return nil, fmt.Errorf("%w: brand is required", domain.ErrInvalidInput)
	}

	var insights ports.MarketInsights
	key := insightKey(session.DealerID, "market", brand, model)

	err := s.cache.GetOrSet(ctx, key, &insights, func() (interface{}, error) {
		return s.computeMarketInsights(ctx, session.DealerID, brand, model)
	}, insightCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to get market insights: %w", err)
	}

	return &insights, nil
}

func (s *InsightService) computeMarketInsights(ctx context.Context, dealerID, brand, model string) (*ports.MarketInsights, error) {
	units, err := s.deals.FindRecentSoldUnits(ctx, dealerID, brand, model, false, marketInsightWindow)
	if err != nil {
		return nil, err
	}

	exact := true
	if len(units) == 0 && model != "" {
		exact = false
		units, err = s.deals.FindRecentSoldUnits(ctx, dealerID, brand, "", false, marketInsightWindow)
		if err != nil {
			return nil, err
		}
	}

	insights := &ports.MarketInsights{
		Brand:      brand,
		Model:      model,
		ExactMatch: exact,
		Count:      len(units),
	}
	if len(units) == 0 {
		return insights, nil
	}

	var sum, retailSum, wholesaleSum decimal.Decimal
	var retailCount, wholesaleCount int64
	insights.MinPrice = units[0].Price
	insights.MaxPrice = units[0].Price

	for _, u := range units {
		sum = sum.Add(u.Price)
		if u.Price.LessThan(insights.MinPrice) {
			insights.MinPrice = u.Price
		}
		if u.Price.GreaterThan(insights.MaxPrice) {
			insights.MaxPrice = u.Price
		}
		switch u.DealType {
		case domain.DealWholesale:
			wholesaleSum = wholesaleSum.Add(u.Price)
			wholesaleCount++
		default:
			retailSum = retailSum.Add(u.Price)
			retailCount++
		}
	}

	insights.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(units)))).Round(2)
	if retailCount > 0 {
		insights.RetailAverage = retailSum.Div(decimal.NewFromInt(retailCount)).Round(2)
	}
	if wholesaleCount > 0 {
		insights.WholesaleAverage = wholesaleSum.Div(decimal.NewFromInt(wholesaleCount)).Round(2)
	}

	return insights, nil
}

// GetRecentSales returns the dealer's latest wholesale sales for a
// brand/model, used as a price floor when quoting bulk buyers.
func (s *InsightService) GetRecentSales(ctx context.Context, session identity.Session, brand, model string) ([]domain.SoldUnit, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if brand == "" {
		return nil, fmt.Errorf("%w: brand is required", domain.ErrInvalidInput)
	}

	units, err := s.deals.FindRecentSoldUnits(ctx, session.DealerID, brand, model, true, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sales: %w", err)
	}

	if len(units) == 0 && model != "" {
		units, err = s.deals.FindRecentSoldUnits(ctx, session.DealerID, brand, "", true, recentSalesLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to get recent sales: %w", err)
		}
	}

	return units, nil
}

// GetBrandAnalytics aggregates units sold and revenue per brand
func (s *InsightService) GetBrandAnalytics(ctx context.Context, session identity.Session) ([]ports.BrandStats, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	var stats []ports.BrandStats
	key := insightKey(session.DealerID, "brands")

	err := s.cache.GetOrSet(ctx, key, &stats, func() (interface{}, error) {
		return s.fetchBrandAnalytics(ctx, session.DealerID)
	}, reportCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to get brand analytics: %w", err)
	}

	return stats, nil
}

func (s *InsightService) fetchBrandAnalytics(ctx context.Context, dealerID string) ([]ports.BrandStats, error) {
	query := `
		SELECT brand, COUNT(*), COALESCE(SUM(price), 0), COALESCE(ROUND(AVG(price), 2), 0)
		FROM sold_units
		WHERE dealer_id = $1 AND brand <> ''
		GROUP BY brand
		ORDER BY SUM(price) DESC`

	rows, err := s.db.Query(ctx, query, dealerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ports.BrandStats
	for rows.Next() {
		var b ports.BrandStats
		if err := rows.Scan(&b.Brand, &b.UnitsSold, &b.Revenue, &b.AveragePrice); err != nil {
			return nil, err
		}
		stats = append(stats, b)
	}
	return stats, rows.Err()
}

// GetTopModels returns the best-selling models by units sold
func (s *InsightService) GetTopModels(ctx context.Context, session identity.Session, limit int) ([]ports.ModelStats, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var stats []ports.ModelStats
	key := insightKey(session.DealerID, "top-models", fmt.Sprintf("%d", limit))

	err := s.cache.GetOrSet(ctx, key, &stats, func() (interface{}, error) {
		return s.fetchTopModels(ctx, session.DealerID, limit)
	}, reportCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to get top models: %w", err)
	}

	return stats, nil
}

func (s *InsightService) fetchTopModels(ctx context.Context, dealerID string, limit int) ([]ports.ModelStats, error) {
	query := `
		SELECT brand, model, COUNT(*), COALESCE(SUM(price), 0)
		FROM sold_units
		WHERE dealer_id = $1
		GROUP BY brand, model
		ORDER BY COUNT(*) DESC, SUM(price) DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, dealerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ports.ModelStats
	for rows.Next() {
		var m ports.ModelStats
		if err := rows.Scan(&m.Brand, &m.Model, &m.UnitsSold, &m.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, m)
	}
	return stats, rows.Err()
}

// GetDealTypeDistribution splits deal count and revenue by deal type
func (s *InsightService) GetDealTypeDistribution(ctx context.Context, session identity.Session) ([]ports.DealTypeStats, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	var stats []ports.DealTypeStats
	key := insightKey(session.DealerID, "deal-types")

	err := s.cache.GetOrSet(ctx, key, &stats, func() (interface{}, error) {
		return s.fetchDealTypeDistribution(ctx, session.DealerID)
	}, reportCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal type distribution: %w", err)
	}

	return stats, nil
}

func (s *InsightService) fetchDealTypeDistribution(ctx context.Context, dealerID string) ([]ports.DealTypeStats, error) {
	query := `
		SELECT deal_type, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM deals
		WHERE dealer_id = $1
		GROUP BY deal_type
		ORDER BY deal_type`

	rows, err := s.db.Query(ctx, query, dealerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ports.DealTypeStats
	for rows.Next() {
		var d ports.DealTypeStats
		if err := rows.Scan(&d.DealType, &d.Count, &d.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// GetRevenueByPeriod buckets deal revenue by day, week, or month over
// the trailing year.
func (s *InsightService) GetRevenueByPeriod(ctx context.Context, session identity.Session, period string) ([]ports.RevenuePoint, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	switch period {
	case "day", "week", "month":
	case "":
		period = "month"
	default:
		return nil, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidInput, period)
	}

	var points []ports.RevenuePoint
	key := insightKey(session.DealerID, "revenue", period)

	err := s.cache.GetOrSet(ctx, key, &points, func() (interface{}, error) {
		return s.fetchRevenueByPeriod(ctx, session.DealerID, period)
	}, reportCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by period: %w", err)
	}

	return points, nil
}

func (s *InsightService) fetchRevenueByPeriod(ctx context.Context, dealerID, period string) ([]ports.RevenuePoint, error) {
	// period is validated against a fixed set before it reaches SQL.
	query := fmt.Sprintf(`
		SELECT to_char(date_trunc('%s', created_at), 'YYYY-MM-DD'),
		       COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM deals
		WHERE dealer_id = $1 AND created_at >= now() - interval '1 year'
		GROUP BY date_trunc('%s', created_at)
		ORDER BY date_trunc('%s', created_at)`, period, period, period)

	rows, err := s.db.Query(ctx, query, dealerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []ports.RevenuePoint
	for rows.Next() {
		var p ports.RevenuePoint
		if err := rows.Scan(&p.Period, &p.Revenue, &p.Deals); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetInventorySummary describes the dealer's current stock position
func (s *InsightService) GetInventorySummary(ctx context.Context, session identity.Session) (*ports.InventorySummary, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	var summary ports.InventorySummary
	key := insightKey(session.DealerID, "inventory")

	err := s.cache.GetOrSet(ctx, key, &summary, func() (interface{}, error) {
		return s.fetchInventorySummary(ctx, session.DealerID)
	}, reportCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory summary: %w", err)
	}

	return &summary, nil
}

func (s *InsightService) fetchInventorySummary(ctx context.Context, dealerID string) (*ports.InventorySummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(quantity) FILTER (WHERE status = 'available'), 0),
		       COUNT(*) FILTER (WHERE status = 'sold'),
		       COALESCE(SUM(base_price * quantity), 0),
		       COUNT(*) FILTER (WHERE is_public)
		FROM devices
		WHERE dealer_id = $1`

	var summary ports.InventorySummary
	err := s.db.QueryRow(ctx, query, dealerID).Scan(
		&summary.TotalDevices, &summary.TotalUnits, &summary.AvailableUnits,
		&summary.SoldOutModels, &summary.StockValue, &summary.PublicListings,
	)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// RefreshDealerCache recomputes and rewrites the dealer's cached
// report aggregates. Called by the background refresh worker, which
// runs without a request session.
func (s *InsightService) RefreshDealerCache(ctx context.Context, dealerID string) error {
	if dealerID == "" {
		return fmt.Errorf("%w: dealer_id is required", domain.ErrInvalidInput)
	}

	brands, err := s.fetchBrandAnalytics(ctx, dealerID)
	if err != nil {
		return fmt.Errorf("failed to refresh brand analytics: %w", err)
	}
	if err := s.cache.SetWithTTL(ctx, insightKey(dealerID, "brands"), brands, reportCacheTTL); err != nil {
		return fmt.Errorf("failed to cache brand analytics: %w", err)
	}

	models, err := s.fetchTopModels(ctx, dealerID, 10)
	if err != nil {
		return fmt.Errorf("failed to refresh top models: %w", err)
	}
	if err := s.cache.SetWithTTL(ctx, insightKey(dealerID, "top-models", "10"), models, reportCacheTTL); err != nil {
		return fmt.Errorf("failed to cache top models: %w", err)
	}

	dealTypes, err := s.fetchDealTypeDistribution(ctx, dealerID)
	if err != nil {
		return fmt.Errorf("failed to refresh deal type distribution: %w", err)
	}
	if err := s.cache.SetWithTTL(ctx, insightKey(dealerID, "deal-types"), dealTypes, reportCacheTTL); err != nil {
		return fmt.Errorf("failed to cache deal type distribution: %w", err)
	}

	summary, err := s.fetchInventorySummary(ctx, dealerID)
	if err != nil {
		return fmt.Errorf("failed to refresh inventory summary: %w", err)
	}
	if err := s.cache.SetWithTTL(ctx, insightKey(dealerID, "inventory"), summary, reportCacheTTL); err != nil {
		return fmt.Errorf("failed to cache inventory summary: %w", err)
	}

	s.logger.InfoContext(ctx, "dealer insight cache refreshed",
		slog.String("dealer_id", dealerID))

	return nil
}
