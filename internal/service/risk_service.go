package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ITS-ERP/qms-risk-backend/internal/forecast"
	"github.com/ITS-ERP/qms-risk-backend/internal/logging"
	"github.com/ITS-ERP/qms-risk-backend/internal/metrics"
	"github.com/ITS-ERP/qms-risk-backend/internal/models"
	"github.com/ITS-ERP/qms-risk-backend/internal/risk"
	"github.com/ITS-ERP/qms-risk-backend/internal/trend"
)

// CatalogLister loads the tenant's configured risk catalog.
type CatalogLister interface {
	List(ctx context.Context, tenantID int64, riskUser string) ([]models.RiskCatalogEntry, error)
}

// ForecastLookup fetches the actual/forecast series pair for one risk.
type ForecastLookup interface {
	Lookup(ctx context.Context, endpoint string, codes map[string]string) (*forecast.Series, error)
}

// ReportCache is an optional short-TTL cache of assembled report rows. A
// miss or cache error is transparent; rows remain transient either way.
type ReportCache interface {
	Get(ctx context.Context, tenantID int64, riskUser string) ([]models.RiskReportRow, bool)
	Set(ctx context.Context, tenantID int64, riskUser string, rows []models.RiskReportRow)
}

// RiskService assembles risk reports for one tenant at a time. Tenant
// identity and the caller's token are threaded explicitly through every call;
// the service holds no per-request state.
type RiskService struct {
	catalog   CatalogLister
	registry  Registry
	observers *Observers
	forecast  ForecastLookup
	cache     ReportCache
	logger    *logging.Logger
}

// NewRiskService wires the orchestration layer.
func NewRiskService(catalog CatalogLister, registry Registry, observers *Observers, fc ForecastLookup) *RiskService {
	return &RiskService{
		catalog:   catalog,
		registry:  registry,
		observers: observers,
		forecast:  fc,
		logger:    logging.Default().With(slog.String("component", "risk-service")),
	}
}

// WithCache attaches a report cache.
func (s *RiskService) WithCache(c ReportCache) *RiskService {
	s.cache = c
	return s
}

// BuildReport produces one report row per catalog entry for the tenant and
// risk user type. Per-entry failures degrade that entry's row and never
// abort the batch; only a catalog load failure fails the whole request.
// An empty catalog yields an empty (non-nil) row list.
func (s *RiskService) BuildReport(ctx context.Context, tenantID int64, riskUser, authToken string) ([]models.RiskReportRow, error) {
	if s.cache != nil {
		if rows, ok := s.cache.Get(ctx, tenantID, riskUser); ok {
			return rows, nil
		}
	}

	start := time.Now()
	entries, err := s.catalog.List(ctx, tenantID, riskUser)
	if err != nil {
		return nil, fmt.Errorf("load risk catalog: %w", err)
	}

	rows := make([]models.RiskReportRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, s.buildRow(ctx, tenantID, entry, authToken))
	}
	metrics.ReportBuildDuration.Observe(time.Since(start).Seconds())

	s.logger.WithContext(ctx).Info("risk report assembled",
		logging.Tenant(tenantID),
		logging.RiskUser(riskUser),
		slog.Int("rows", len(rows)),
		logging.Duration(time.Since(start).Milliseconds()))

	if s.cache != nil {
		s.cache.Set(ctx, tenantID, riskUser, rows)
	}
	return rows, nil
}

// buildRow computes one entry's row. It never returns an error: any failure
// along the dispatch/aggregate/rate path yields the degraded row instead.
func (s *RiskService) buildRow(ctx context.Context, tenantID int64, entry models.RiskCatalogEntry, authToken string) (row models.RiskReportRow) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithContext(ctx).Error("risk row computation panicked",
				logging.RiskName(entry.RiskName),
				slog.Any("panic", r))
			metrics.ReportRowErrors.Inc()
			row = degradedRow(entry)
		}
	}()

	key := HandlerKey{RiskUser: entry.RiskUser, RiskGroup: entry.RiskGroup, RiskName: entry.RiskName}
	h, ok := s.registry[key]
	if !ok {
		s.logger.WithContext(ctx).Warn("no handler registered for catalog entry",
			logging.RiskUser(entry.RiskUser),
			slog.String("risk_group", entry.RiskGroup),
			logging.RiskName(entry.RiskName))
		metrics.ReportRowErrors.Inc()
		return degradedRow(entry)
	}

	obs, err := h.Observe(ctx, tenantID, authToken)
	if err != nil {
		s.logger.WithContext(ctx).Error("fetch failed for catalog entry",
			logging.Tenant(tenantID),
			logging.RiskName(entry.RiskName),
			logging.Error(err))
		metrics.ReportRowErrors.Inc()
		return degradedRow(entry)
	}

	yearly := trend.AggregateYearly(obs)
	recent := trend.TopRecent(yearly, risk.RecentPeriodWindow)
	rates := risk.RateSeries(recent)

	var currentRate *float64
	if len(rates) > 0 {
		v := rates[len(rates)-1].Rate
		currentRate = &v
	}

	row = models.RiskReportRow{
		RiskName: entry.RiskName,
		RiskDesc: entry.RiskDesc,
		RiskRate: currentRate,
		Priority: risk.PriorityOf(currentRate),
	}

	if eff, enough := risk.MitigationEffectivity(rates); enough {
		row.MitigationEffectivity = eff
	} else {
		row.MitigationEffectivity = risk.InsufficientData
	}

	row.ForecastPrediction = s.lookupForecast(ctx, tenantID, entry.RiskName, h)
	return row
}

// lookupForecast asks the forecast service for the entry's series pair. Any
// failure or malformed payload downgrades to "unavailable"; forecast issues
// never fail a row.
func (s *RiskService) lookupForecast(ctx context.Context, tenantID int64, riskName string, h Handler) string {
	if h.ForecastEndpoint == "" || s.forecast == nil {
		return risk.Unavailable
	}

	codes := map[string]string{h.ForecastCodeField: strconv.FormatInt(tenantID, 10)}
	series, err := s.forecast.Lookup(ctx, h.ForecastEndpoint, codes)
	if err != nil {
		s.logger.WithContext(ctx).Warn("forecast lookup failed",
			logging.RiskName(riskName),
			slog.String("endpoint", h.ForecastEndpoint),
			logging.Error(err))
		return risk.Unavailable
	}
	return risk.ForecastPrediction(series.ActualData, series.ForecastData)
}

// degradedRow is the row emitted when an entry cannot be computed: the entry
// still appears in the report, with every derived figure marked unavailable.
func degradedRow(entry models.RiskCatalogEntry) models.RiskReportRow {
	return models.RiskReportRow{
		RiskName:              entry.RiskName,
		RiskDesc:              entry.RiskDesc,
		RiskRate:              nil,
		Priority:              risk.Unavailable,
		ForecastPrediction:    risk.Unavailable,
		MitigationEffectivity: risk.InsufficientData,
	}
}
