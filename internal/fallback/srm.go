package fallback

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// RFQs returns all requests-for-quotation visible to the tenant.
func (s *Store) RFQs(ctx context.Context, tenantID int64) ([]models.RFQ, error) {
	q := `SELECT pkid, tenant_id, request_date, target_deadline_date, closed_date
          FROM rfqs
          WHERE (tenant_id = $1 OR tenant_id IS NULL)
            AND is_deleted IS NOT TRUE
          ORDER BY pkid`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query rfqs: %w", err)
	}
	defer rows.Close()

	var out []models.RFQ
	for rows.Next() {
		var r models.RFQ
		if err := rows.Scan(&r.PKID, &r.TenantID, &r.RequestDate, &r.TargetDeadlineDate, &r.ClosedDate); err != nil {
			return nil, fmt.Errorf("scan rfq: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rfqs: %w", err)
	}
	return out, nil
}

// LetterOfAgreements returns all LoAs visible to the tenant.
func (s *Store) LetterOfAgreements(ctx context.Context, tenantID int64) ([]models.LetterOfAgreement, error) {
	q := `SELECT pkid, tenant_id, target_received_date, received_date
          FROM letter_of_agreements
          WHERE (tenant_id = $1 OR tenant_id IS NULL)
            AND is_deleted IS NOT TRUE
          ORDER BY pkid`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query letter of agreements: %w", err)
	}
	defer rows.Close()

	var out []models.LetterOfAgreement
	for rows.Next() {
		var l models.LetterOfAgreement
		if err := rows.Scan(&l.PKID, &l.TenantID, &l.TargetReceivedDate, &l.ReceivedDate); err != nil {
			return nil, fmt.Errorf("scan letter of agreement: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate letter of agreements: %w", err)
	}
	return out, nil
}

// ShipmentHistory returns contract shipment history grouped by year, matching
// the shape the contract service replies with over the broker. Shipments hang
// off contract details, so the join walks contracts -> contract_details ->
// history_shipments before grouping.
func (s *Store) ShipmentHistory(ctx context.Context, tenantID int64) ([]models.ShipmentYearGroup, error) {
	q := `SELECT h.pkid, h.tenant_id, h.shipment_date, h.target_delivery_date,
                 h.delivered_date, h.target_quantity, h.delivered_quantity
          FROM history_shipments h
          JOIN contract_details d ON d.pkid = h.contract_detail_pkid AND d.is_deleted IS NOT TRUE
          JOIN contracts c ON c.pkid = d.contract_pkid AND c.is_deleted IS NOT TRUE
          WHERE (h.tenant_id = $1 OR h.tenant_id IS NULL)
            AND h.is_deleted IS NOT TRUE
          ORDER BY h.shipment_date, h.pkid`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query shipment history: %w", err)
	}
	defer rows.Close()

	byYear := make(map[int][]models.HistoryShipment)
	for rows.Next() {
		var h models.HistoryShipment
		if err := rows.Scan(&h.PKID, &h.TenantID, &h.ShipmentDate, &h.TargetDeliveryDate,
			&h.DeliveredDate, &h.TargetQuantity, &h.DeliveredQuantity); err != nil {
			return nil, fmt.Errorf("scan history shipment: %w", err)
		}
		year := h.ShipmentDate.Year()
		byYear[year] = append(byYear[year], h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipment history: %w", err)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]models.ShipmentYearGroup, 0, len(years))
	for _, y := range years {
		out = append(out, models.ShipmentYearGroup{
			Year:             strconv.Itoa(y),
			HistoryShipments: byYear[y],
		})
	}
	return out, nil
}
