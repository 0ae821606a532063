package trend

import (
	"time"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// FromReceives fans each receipt out to its detail rows, bucketing on the
// receive date with accepted/rejected quantities as increments. A receipt
// with no detail rows still registers its bucket with zero increments.
func FromReceives(receives []models.Receive) []Observation {
	var out []Observation
	for _, r := range receives {
		if len(r.Details) == 0 {
			out = append(out, Observation{At: r.ReceivedDate})
			continue
		}
		for _, d := range r.Details {
			out = append(out, Observation{
				At:         r.ReceivedDate,
				Conform:    d.AcceptedQuantity,
				Nonconform: d.RejectedQuantity,
			})
		}
	}
	return out
}

// FromTransfers classifies transfers as on-time or late against their
// expected arrival date, bucketing on that date. An unreceived transfer is
// late once its expected date has passed relative to now.
func FromTransfers(transfers []models.Transfer, now time.Time) []Observation {
	out := make([]Observation, 0, len(transfers))
	for _, t := range transfers {
		o := Observation{At: t.ExpectedArrivalDate}
		if t.OnTime(now) {
			o.Conform = 1
		} else {
			o.Nonconform = 1
		}
		out = append(out, o)
	}
	return out
}

// FromProductionRequests classifies orders as fulfilled or short against the
// requested quantity, bucketing on the requested date.
func FromProductionRequests(requests []models.ProductionRequest) []Observation {
	out := make([]Observation, 0, len(requests))
	for _, p := range requests {
		o := Observation{At: p.RequestedDate}
		if p.QuantityProduced >= p.QuantityRequested {
			o.Conform = 1
		} else {
			o.Nonconform = 1
		}
		out = append(out, o)
	}
	return out
}

// FromInspectionProducts uses passed/defect quantities directly, bucketing on
// the inspection date.
func FromInspectionProducts(inspections []models.InspectionProduct) []Observation {
	out := make([]Observation, 0, len(inspections))
	for _, i := range inspections {
		out = append(out, Observation{
			At:         i.InspectionDate,
			Conform:    i.QuantityPassed,
			Nonconform: i.QuantityDefect,
		})
	}
	return out
}

// FromRFQs classifies quotations as settled on time or delayed against their
// target deadline, bucketing on that deadline. An open RFQ counts as delayed
// only after its deadline has passed.
func FromRFQs(rfqs []models.RFQ, now time.Time) []Observation {
	out := make([]Observation, 0, len(rfqs))
	for _, r := range rfqs {
		o := Observation{At: r.TargetDeadlineDate}
		switch {
		case r.ClosedDate != nil && !r.ClosedDate.After(r.TargetDeadlineDate):
			o.Conform = 1
		case r.ClosedDate == nil && !now.After(r.TargetDeadlineDate):
			o.Conform = 1
		default:
			o.Nonconform = 1
		}
		out = append(out, o)
	}
	return out
}

// FromLetterOfAgreements classifies LoAs as received on time or late against
// the target receipt date, bucketing on that date.
func FromLetterOfAgreements(loas []models.LetterOfAgreement, now time.Time) []Observation {
	out := make([]Observation, 0, len(loas))
	for _, l := range loas {
		o := Observation{At: l.TargetReceivedDate}
		switch {
		case l.ReceivedDate != nil && !l.ReceivedDate.After(l.TargetReceivedDate):
			o.Conform = 1
		case l.ReceivedDate == nil && !now.After(l.TargetReceivedDate):
			o.Conform = 1
		default:
			o.Nonconform = 1
		}
		out = append(out, o)
	}
	return out
}

// FromShipmentPunctuality flattens year groups and classifies each shipment
// as delivered on time or late, bucketing on the shipment date.
func FromShipmentPunctuality(groups []models.ShipmentYearGroup, now time.Time) []Observation {
	var out []Observation
	for _, grp := range groups {
		for _, h := range grp.HistoryShipments {
			o := Observation{At: h.ShipmentDate}
			switch {
			case h.DeliveredDate != nil && !h.DeliveredDate.After(h.TargetDeliveryDate):
				o.Conform = 1
			case h.DeliveredDate == nil && !now.After(h.TargetDeliveryDate):
				o.Conform = 1
			default:
				o.Nonconform = 1
			}
			out = append(out, o)
		}
	}
	return out
}

// FromShipmentQuantities flattens year groups and classifies each shipment by
// whether the delivered quantity met the contracted target.
func FromShipmentQuantities(groups []models.ShipmentYearGroup) []Observation {
	var out []Observation
	for _, grp := range groups {
		for _, h := range grp.HistoryShipments {
			o := Observation{At: h.ShipmentDate}
			if h.DeliveredQuantity >= h.TargetQuantity {
				o.Conform = 1
			} else {
				o.Nonconform = 1
			}
			out = append(out, o)
		}
	}
	return out
}

// FromRequisitions classifies requisitions as fulfilled on time or late
// against the target delivery date, bucketing on that date.
func FromRequisitions(requisitions []models.Requisition, now time.Time) []Observation {
	out := make([]Observation, 0, len(requisitions))
	for _, r := range requisitions {
		o := Observation{At: r.TargetDeliveryDate}
		switch {
		case r.DeliveredDate != nil && !r.DeliveredDate.After(r.TargetDeliveryDate):
			o.Conform = 1
		case r.DeliveredDate == nil && !now.After(r.TargetDeliveryDate):
			o.Conform = 1
		default:
			o.Nonconform = 1
		}
		out = append(out, o)
	}
	return out
}
