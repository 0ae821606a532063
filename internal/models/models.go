// Package models defines the domain records exchanged with the owning ERP
// services, the derived trend/report types, and the risk catalog entity.
package models

import "time"

// Risk user types. Each catalog entry belongs to exactly one of these.
const (
	RiskUserIndustry = "Industry"
	RiskUserSupplier = "Supplier"
	RiskUserRetail   = "Retail"
)

// TenantScoped is implemented by every top-level domain record.
// A nil tenant ID means the record applies to all tenants.
type TenantScoped interface {
	Tenant() *int64
}

// FilterByTenant keeps records whose tenant matches the target or is unset.
// The same filter is applied regardless of which path (broker or fallback)
// produced the records, so callers observe identical semantics.
func FilterByTenant[T TenantScoped](records []T, tenantID int64) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if t := r.Tenant(); t == nil || *t == tenantID {
			out = append(out, r)
		}
	}
	return out
}

// Receive is an inventory goods receipt with its item-level details.
type Receive struct {
	PKID         int64           `json:"pkid"`
	TenantID     *int64          `json:"tenant_id"`
	ReceivedDate time.Time       `json:"received_date"`
	SourceType   string          `json:"source_type,omitempty"`
	Details      []ReceiveDetail `json:"receiveDetails"`
}

func (r Receive) Tenant() *int64 { return r.TenantID }

// ReceiveDetail carries the accepted/rejected quantities for one item line.
type ReceiveDetail struct {
	PKID             int64   `json:"pkid"`
	ItemName         string  `json:"item_name,omitempty"`
	AcceptedQuantity float64 `json:"accepted_quantity"`
	RejectedQuantity float64 `json:"rejected_quantity"`
}

// Transfer is an inventory transfer between warehouses.
type Transfer struct {
	PKID                int64      `json:"pkid"`
	TenantID            *int64     `json:"tenant_id"`
	RequestedDate       time.Time  `json:"requested_date"`
	ExpectedArrivalDate time.Time  `json:"expected_arrival_date"`
	ReceivedDate        *time.Time `json:"received_date"`
}

func (t Transfer) Tenant() *int64 { return t.TenantID }

// OnTime reports whether the transfer arrived by its expected date.
// An unreceived transfer counts as late once the expected date has passed.
func (t Transfer) OnTime(now time.Time) bool {
	if t.ReceivedDate != nil {
		return !t.ReceivedDate.After(t.ExpectedArrivalDate)
	}
	return !now.After(t.ExpectedArrivalDate)
}

// ProductionRequest is a manufacturing order with requested vs produced quantities.
type ProductionRequest struct {
	PKID              int64     `json:"pkid"`
	TenantID          *int64    `json:"tenant_id"`
	RequestedDate     time.Time `json:"requested_date"`
	QuantityRequested float64   `json:"quantity_requested"`
	QuantityProduced  float64   `json:"quantity_produced"`
}

func (p ProductionRequest) Tenant() *int64 { return p.TenantID }

// InspectionProduct is one manufacturing inspection result.
type InspectionProduct struct {
	PKID           int64     `json:"pkid"`
	TenantID       *int64    `json:"tenant_id"`
	InspectionDate time.Time `json:"inspection_date"`
	QuantityPassed float64   `json:"quantity_passed"`
	QuantityDefect float64   `json:"quantity_defect"`
}

func (i InspectionProduct) Tenant() *int64 { return i.TenantID }

// RFQ is a procurement request-for-quotation.
type RFQ struct {
	PKID               int64      `json:"pkid"`
	TenantID           *int64     `json:"tenant_id"`
	RequestDate        time.Time  `json:"request_date"`
	TargetDeadlineDate time.Time  `json:"target_deadline_date"`
	ClosedDate         *time.Time `json:"closed_date"`
}

func (r RFQ) Tenant() *int64 { return r.TenantID }

// LetterOfAgreement is a contract-domain LoA with a target receipt date.
type LetterOfAgreement struct {
	PKID               int64      `json:"pkid"`
	TenantID           *int64     `json:"tenant_id"`
	TargetReceivedDate time.Time  `json:"target_received_date"`
	ReceivedDate       *time.Time `json:"received_date"`
}

func (l LetterOfAgreement) Tenant() *int64 { return l.TenantID }

// HistoryShipment is one delivery against a contract detail.
type HistoryShipment struct {
	PKID               int64      `json:"pkid"`
	TenantID           *int64     `json:"tenant_id"`
	ShipmentDate       time.Time  `json:"shipment_date"`
	TargetDeliveryDate time.Time  `json:"target_delivery_date"`
	DeliveredDate      *time.Time `json:"delivered_date"`
	TargetQuantity     float64    `json:"target_quantity"`
	DeliveredQuantity  float64    `json:"delivered_quantity"`
}

func (h HistoryShipment) Tenant() *int64 { return h.TenantID }

// ShipmentYearGroup is the wire shape the contract service replies with:
// shipments pre-grouped by year.
type ShipmentYearGroup struct {
	Year             string            `json:"year"`
	HistoryShipments []HistoryShipment `json:"historyShipments"`
}

// Requisition is a CRM sales requisition from a retail tenant.
type Requisition struct {
	PKID               int64      `json:"pkid"`
	TenantID           *int64     `json:"tenant_id"`
	RequisitionDate    time.Time  `json:"requisition_date"`
	TargetDeliveryDate time.Time  `json:"target_delivery_date"`
	DeliveredDate      *time.Time `json:"delivered_date"`
}

func (r Requisition) Tenant() *int64 { return r.TenantID }

// TrendPoint is one bucket in a yearly or monthly trend series.
// For a given (tenant, risk, period) there is at most one point; series are
// produced in ascending period order.
type TrendPoint struct {
	Period     string  `json:"period"`
	Conform    float64 `json:"conform"`
	Nonconform float64 `json:"nonconform"`
}

// RiskCatalogEntry is a configured definition of one monitored business risk.
type RiskCatalogEntry struct {
	PKID           int64  `json:"pkid"`
	RiskName       string `json:"risk_name"`
	RiskDesc       string `json:"risk_desc"`
	RiskUser       string `json:"risk_user"`
	RiskGroup      string `json:"risk_group"`
	RiskMitigation string `json:"risk_mitigation"`
	TenantID       *int64 `json:"tenant_id"`
}

// RiskReportRow is one assembled row of the risk report. Rows are transient
// and recomputed on every request, never persisted.
type RiskReportRow struct {
	RiskName string   `json:"risk_name"`
	RiskDesc string   `json:"risk_desc"`
	RiskRate *float64 `json:"risk_rate"`
	Priority string   `json:"priority"`
	// ForecastPrediction is "Akan Meningkat", "Akan Menurun" or "unavailable".
	ForecastPrediction string `json:"forecast_prediction"`
	// MitigationEffectivity is a percentage (float64) when at least two
	// yearly points exist, otherwise the "insufficient data" sentinel string.
	MitigationEffectivity any `json:"mitigation_effectivity"`
}

// ReceiveSummary is the flattened receive trend used by the inventory summary endpoint.
type ReceiveSummary struct {
	TotalQuantity float64 `json:"total_quantity"`
	TotalAccept   float64 `json:"total_accept"`
	TotalReject   float64 `json:"total_reject"`
	AcceptRate    float64 `json:"accept_rate"`
	RejectRate    float64 `json:"reject_rate"`
}
