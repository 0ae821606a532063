package service

import (
	"context"
	"fmt"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
	"github.com/ITS-ERP/qms-risk-backend/internal/risk"
	"github.com/ITS-ERP/qms-risk-backend/internal/trend"
)

// ErrUnknownDomain is returned for a trend request naming no known fact type.
var ErrUnknownDomain = fmt.Errorf("unknown trend domain")

// Trend returns the conform/nonconform series for one fact type. monthly
// switches to "Jan 2006" buckets; recent windows the series to the most
// recent periods.
func (s *RiskService) Trend(ctx context.Context, tenantID int64, authToken, domainKey string, monthly, recent bool) ([]models.TrendPoint, error) {
	observe, ok := s.observers.ByKey(domainKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domainKey)
	}

	obs, err := observe(ctx, tenantID, authToken)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", domainKey, err)
	}

	var points []models.TrendPoint
	if monthly {
		points = trend.AggregateMonthly(obs)
	} else {
		points = trend.AggregateYearly(obs)
	}
	if recent {
		points = trend.TopRecent(points, risk.RecentPeriodWindow)
	}
	return points, nil
}

// RateTrend is Trend with each period reduced to its nonconformance rate.
func (s *RiskService) RateTrend(ctx context.Context, tenantID int64, authToken, domainKey string, monthly, recent bool) ([]risk.RatePoint, error) {
	points, err := s.Trend(ctx, tenantID, authToken, domainKey, monthly, recent)
	if err != nil {
		return nil, err
	}
	return risk.RateSeries(points), nil
}

// ReceiveSummary flattens the full yearly receive trend into the totals the
// inventory summary endpoint reports. Rates are consistent with the per-year
// trend to two decimal places.
func (s *RiskService) ReceiveSummary(ctx context.Context, tenantID int64, authToken string) (*models.ReceiveSummary, error) {
	obs, err := s.observers.ReceiveRejects(ctx, tenantID, authToken)
	if err != nil {
		return nil, fmt.Errorf("fetch receives: %w", err)
	}

	var accept, reject float64
	for _, p := range trend.AggregateYearly(obs) {
		accept += p.Conform
		reject += p.Nonconform
	}
	total := accept + reject

	return &models.ReceiveSummary{
		TotalQuantity: total,
		TotalAccept:   accept,
		TotalReject:   reject,
		AcceptRate:    risk.RateOf(accept, total),
		RejectRate:    risk.RateOf(reject, total),
	}, nil
}
