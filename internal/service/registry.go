// Package service orchestrates the risk report: it loads a tenant's risk
// catalog, dispatches each entry through the matching gateway + aggregator +
// rate engine, and assembles the combined report rows.
package service

import (
	"context"
	"time"

	"github.com/ITS-ERP/qms-risk-backend/internal/gateway"
	"github.com/ITS-ERP/qms-risk-backend/internal/models"
	"github.com/ITS-ERP/qms-risk-backend/internal/trend"
)

// ObserveFunc fetches one fact type for a tenant and classifies it into
// trend observations.
type ObserveFunc func(ctx context.Context, tenantID int64, authToken string) ([]trend.Observation, error)

// HandlerKey identifies one monitored risk: the catalog's
// (risk_user, risk_group, risk_name) triple.
type HandlerKey struct {
	RiskUser  string
	RiskGroup string
	RiskName  string
}

// Handler bundles everything needed to compute one risk's report row.
type Handler struct {
	Observe ObserveFunc

	// ForecastEndpoint names the series pair on the forecast service.
	// Empty means no forecast exists for this risk.
	ForecastEndpoint string

	// ForecastCodeField is the identity field the forecast service expects
	// for this risk user type (industry_code, supplier_code, retail_code).
	ForecastCodeField string
}

// Registry maps catalog keys to handlers. It is built once at startup;
// catalog entries with no registered handler still produce a report row,
// with every figure marked unavailable.
type Registry map[HandlerKey]Handler

// Domain keys for the per-domain trend endpoints.
const (
	TrendReceives     = "receives"
	TrendTransfers    = "transfers"
	TrendProductions  = "productions"
	TrendInspections  = "inspections"
	TrendRFQs         = "rfqs"
	TrendLoA          = "loa"
	TrendShipments    = "shipments"
	TrendRequisitions = "requisitions"
)

// Observers holds the classified fetch function for every fact type. Both
// the registry and the trend endpoints are built from the same set, so a
// risk row and its drill-down trend always agree.
type Observers struct {
	ReceiveRejects     ObserveFunc
	TransferDelays     ObserveFunc
	ProductionShortage ObserveFunc
	InspectionDefects  ObserveFunc
	RFQDelays          ObserveFunc
	LoADelays          ObserveFunc
	ShipmentDelays     ObserveFunc
	ShipmentShortage   ObserveFunc
	RequisitionDelays  ObserveFunc
}

// NewObservers binds the observation builders to the domain gateways. now is
// injectable so punctuality classification stays deterministic under test.
func NewObservers(g *gateway.Gateways, now func() time.Time) *Observers {
	if now == nil {
		now = time.Now
	}
	return &Observers{
		ReceiveRejects: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			records, err := g.FetchReceives(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromReceives(records), nil
		},
		TransferDelays: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			records, err := g.FetchTransfers(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromTransfers(records, now()), nil
		},
		ProductionShortage: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			records, err := g.FetchProductionRequests(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromProductionRequests(records), nil
		},
		InspectionDefects: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			records, err := g.FetchInspectionProducts(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromInspectionProducts(records), nil
		},
		RFQDelays: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			records, err := g.FetchRFQs(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromRFQs(records, now()), nil
		},
		LoADelays: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			records, err := g.FetchLetterOfAgreements(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromLetterOfAgreements(records, now()), nil
		},
		ShipmentDelays: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			groups, err := g.FetchShipmentHistory(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromShipmentPunctuality(groups, now()), nil
		},
		ShipmentShortage: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			groups, err := g.FetchShipmentHistory(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromShipmentQuantities(groups), nil
		},
		RequisitionDelays: func(ctx context.Context, tenantID int64, token string) ([]trend.Observation, error) {
			records, err := g.FetchRequisitions(ctx, tenantID, token)
			if err != nil {
				return nil, err
			}
			return trend.FromRequisitions(records, now()), nil
		},
	}
}

// ByKey returns the observer for a trend domain key.
func (o *Observers) ByKey(key string) (ObserveFunc, bool) {
	switch key {
	case TrendReceives:
		return o.ReceiveRejects, true
	case TrendTransfers:
		return o.TransferDelays, true
	case TrendProductions:
		return o.ProductionShortage, true
	case TrendInspections:
		return o.InspectionDefects, true
	case TrendRFQs:
		return o.RFQDelays, true
	case TrendLoA:
		return o.LoADelays, true
	case TrendShipments:
		return o.ShipmentDelays, true
	case TrendRequisitions:
		return o.RequisitionDelays, true
	default:
		return nil, false
	}
}

// DefaultRegistry builds the startup dispatch table covering every risk the
// reference catalog configures.
func DefaultRegistry(obs *Observers) Registry {
	const (
		industryCode = "industry_code"
		supplierCode = "supplier_code"
		retailCode   = "retail_code"
	)

	return Registry{
		// Industry risks
		{models.RiskUserIndustry, "Inventory", "Penerimaan barang reject"}: {
			Observe:           obs.ReceiveRejects,
			ForecastEndpoint:  "receive-rejects",
			ForecastCodeField: industryCode,
		},
		{models.RiskUserIndustry, "Inventory", "Keterlambatan transfer barang"}: {
			Observe:           obs.TransferDelays,
			ForecastEndpoint:  "transfer-delays",
			ForecastCodeField: industryCode,
		},
		{models.RiskUserIndustry, "Manufacturing", "Produksi tidak mencapai target"}: {
			Observe:           obs.ProductionShortage,
			ForecastEndpoint:  "production-shortage",
			ForecastCodeField: industryCode,
		},
		{models.RiskUserIndustry, "Manufacturing", "Produk cacat inspeksi"}: {
			Observe:           obs.InspectionDefects,
			ForecastEndpoint:  "inspection-defects",
			ForecastCodeField: industryCode,
		},
		{models.RiskUserIndustry, "SRM", "RFQ melewati deadline"}: {
			Observe:           obs.RFQDelays,
			ForecastEndpoint:  "rfq-delays",
			ForecastCodeField: industryCode,
		},
		{models.RiskUserIndustry, "SRM", "Penerimaan LoA terlambat"}: {
			Observe:           obs.LoADelays,
			ForecastEndpoint:  "loa-delays",
			ForecastCodeField: industryCode,
		},

		// Supplier risks
		{models.RiskUserSupplier, "SRM", "Keterlambatan pengiriman barang"}: {
			Observe:           obs.ShipmentDelays,
			ForecastEndpoint:  "shipment-delays",
			ForecastCodeField: supplierCode,
		},
		{models.RiskUserSupplier, "SRM", "Jumlah pengiriman tidak sesuai"}: {
			Observe:           obs.ShipmentShortage,
			ForecastEndpoint:  "shipment-shortage",
			ForecastCodeField: supplierCode,
		},

		// Retail risks
		{models.RiskUserRetail, "CRM", "Keterlambatan pemenuhan requisition"}: {
			Observe:           obs.RequisitionDelays,
			ForecastEndpoint:  "requisition-delays",
			ForecastCodeField: retailCode,
		},
		{models.RiskUserRetail, "Inventory", "Penerimaan barang reject"}: {
			Observe:           obs.ReceiveRejects,
			ForecastEndpoint:  "receive-rejects",
			ForecastCodeField: retailCode,
		},
	}
}
