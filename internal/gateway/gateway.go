// Package gateway exposes one typed fetch function per domain fact. Each
// fetch tries the broker RPC first and falls back to the domain's secondary
// store only when the exchange times out or the broker cannot be reached.
// Callers observe identical record shape and tenant semantics on both paths.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ITS-ERP/qms-risk-backend/internal/logging"
	"github.com/ITS-ERP/qms-risk-backend/internal/messaging"
	"github.com/ITS-ERP/qms-risk-backend/internal/metrics"
	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// Transport issues one correlated broker round-trip. served=false with a nil
// error is the fallback signal (timeout or unreachable broker).
type Transport interface {
	Call(ctx context.Context, queue string, tenantID int64, authToken string, extra map[string]any) (payload []byte, served bool, err error)
}

// InventoryReader reads the inventory domain's secondary store.
type InventoryReader interface {
	Receives(ctx context.Context, tenantID int64) ([]models.Receive, error)
	Transfers(ctx context.Context, tenantID int64) ([]models.Transfer, error)
}

// ManufacturingReader reads the manufacturing domain's secondary store.
type ManufacturingReader interface {
	ProductionRequests(ctx context.Context, tenantID int64) ([]models.ProductionRequest, error)
	InspectionProducts(ctx context.Context, tenantID int64) ([]models.InspectionProduct, error)
}

// ProcurementReader reads the procurement domain's secondary store.
type ProcurementReader interface {
	RFQs(ctx context.Context, tenantID int64) ([]models.RFQ, error)
}

// ContractReader reads the contract domain's secondary store.
type ContractReader interface {
	LetterOfAgreements(ctx context.Context, tenantID int64) ([]models.LetterOfAgreement, error)
	ShipmentHistory(ctx context.Context, tenantID int64) ([]models.ShipmentYearGroup, error)
}

// RequisitionReader reads the CRM requisition domain's secondary store.
type RequisitionReader interface {
	Requisitions(ctx context.Context, tenantID int64) ([]models.Requisition, error)
}

// Gateways bundles the transport and the per-domain fallback readers.
type Gateways struct {
	rpc           Transport
	inventory     InventoryReader
	manufacturing ManufacturingReader
	procurement   ProcurementReader
	contract      ContractReader
	requisition   RequisitionReader
	logger        *slog.Logger
}

// New wires the gateways. Every reader must be non-nil; domains may share an
// underlying store.
func New(rpc Transport, inv InventoryReader, man ManufacturingReader, proc ProcurementReader, con ContractReader, req RequisitionReader) *Gateways {
	return &Gateways{
		rpc:           rpc,
		inventory:     inv,
		manufacturing: man,
		procurement:   proc,
		contract:      con,
		requisition:   req,
		logger:        slog.Default().With(slog.String("component", "gateway")),
	}
}

// fetch runs the shared broker-then-fallback sequence for one fact type.
//
// A reply that cannot be decoded is a hard error: the owner service broke the
// serialization contract and masking that with fallback data would hide the
// break. Only timeouts and unreachable brokers fall back; if the fallback
// read then fails too, its error is the gateway's terminal error.
func fetch[T any](ctx context.Context, g *Gateways, queue, domain string, tenantID int64, authToken string, read func(context.Context, int64) ([]T, error)) ([]T, error) {
	payload, served, err := g.rpc.Call(ctx, queue, tenantID, authToken, nil)
	if err != nil {
		return nil, err
	}

	if served {
		var records []T
		if err := json.Unmarshal(payload, &records); err != nil {
			return nil, fmt.Errorf("decode %s reply: %w", queue, err)
		}
		g.logger.Info("served by broker",
			logging.Queue(queue),
			logging.Tenant(tenantID),
			slog.Int("records", len(records)))
		return records, nil
	}

	records, err := read(ctx, tenantID)
	if err != nil {
		metrics.FallbackReadsTotal.WithLabelValues(domain, metrics.StatusError).Inc()
		return nil, fmt.Errorf("fallback read %s: %w", domain, err)
	}
	metrics.FallbackReadsTotal.WithLabelValues(domain, metrics.StatusOK).Inc()
	g.logger.Info("served by fallback store",
		logging.Queue(queue),
		logging.Domain(domain),
		logging.Tenant(tenantID),
		slog.Int("records", len(records)))
	return records, nil
}

// FetchReceives returns the tenant's goods receipts with detail rows.
func (g *Gateways) FetchReceives(ctx context.Context, tenantID int64, authToken string) ([]models.Receive, error) {
	records, err := fetch(ctx, g, messaging.QueueGetReceives, messaging.DomainInventory, tenantID, authToken, g.inventory.Receives)
	if err != nil {
		return nil, err
	}
	return models.FilterByTenant(records, tenantID), nil
}

// FetchTransfers returns the tenant's inventory transfers.
func (g *Gateways) FetchTransfers(ctx context.Context, tenantID int64, authToken string) ([]models.Transfer, error) {
	records, err := fetch(ctx, g, messaging.QueueGetTransfers, messaging.DomainInventory, tenantID, authToken, g.inventory.Transfers)
	if err != nil {
		return nil, err
	}
	return models.FilterByTenant(records, tenantID), nil
}

// FetchProductionRequests returns the tenant's manufacturing orders.
func (g *Gateways) FetchProductionRequests(ctx context.Context, tenantID int64, authToken string) ([]models.ProductionRequest, error) {
	records, err := fetch(ctx, g, messaging.QueueGetProductionRequests, messaging.DomainManufacturing, tenantID, authToken, g.manufacturing.ProductionRequests)
	if err != nil {
		return nil, err
	}
	return models.FilterByTenant(records, tenantID), nil
}

// FetchInspectionProducts returns the tenant's inspection results.
func (g *Gateways) FetchInspectionProducts(ctx context.Context, tenantID int64, authToken string) ([]models.InspectionProduct, error) {
	records, err := fetch(ctx, g, messaging.QueueGetInspectionProducts, messaging.DomainManufacturing, tenantID, authToken, g.manufacturing.InspectionProducts)
	if err != nil {
		return nil, err
	}
	return models.FilterByTenant(records, tenantID), nil
}

// FetchRFQs returns the tenant's requests-for-quotation.
func (g *Gateways) FetchRFQs(ctx context.Context, tenantID int64, authToken string) ([]models.RFQ, error) {
	records, err := fetch(ctx, g, messaging.QueueGetRFQs, messaging.DomainProcurement, tenantID, authToken, g.procurement.RFQs)
	if err != nil {
		return nil, err
	}
	return models.FilterByTenant(records, tenantID), nil
}

// FetchLetterOfAgreements returns the tenant's LoAs.
func (g *Gateways) FetchLetterOfAgreements(ctx context.Context, tenantID int64, authToken string) ([]models.LetterOfAgreement, error) {
	records, err := fetch(ctx, g, messaging.QueueGetLetterOfAgreements, messaging.DomainContract, tenantID, authToken, g.contract.LetterOfAgreements)
	if err != nil {
		return nil, err
	}
	return models.FilterByTenant(records, tenantID), nil
}

// FetchShipmentHistory returns contract shipment history grouped by year.
// The tenant filter applies to the shipments inside each group; groups left
// empty after filtering are dropped.
func (g *Gateways) FetchShipmentHistory(ctx context.Context, tenantID int64, authToken string) ([]models.ShipmentYearGroup, error) {
	groups, err := fetch(ctx, g, messaging.QueueGetContracts, messaging.DomainContract, tenantID, authToken, g.contract.ShipmentHistory)
	if err != nil {
		return nil, err
	}

	out := make([]models.ShipmentYearGroup, 0, len(groups))
	for _, grp := range groups {
		shipments := models.FilterByTenant(grp.HistoryShipments, tenantID)
		if len(shipments) == 0 {
			continue
		}
		out = append(out, models.ShipmentYearGroup{Year: grp.Year, HistoryShipments: shipments})
	}
	return out, nil
}

// FetchRequisitions returns the tenant's retail requisitions.
func (g *Gateways) FetchRequisitions(ctx context.Context, tenantID int64, authToken string) ([]models.Requisition, error) {
	records, err := fetch(ctx, g, messaging.QueueGetRequisitions, messaging.DomainRequisition, tenantID, authToken, g.requisition.Requisitions)
	if err != nil {
		return nil, err
	}
	return models.FilterByTenant(records, tenantID), nil
}
