package fallback

import (
	"context"
	"fmt"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// Receives returns all goods receipts for the tenant with their detail rows
// eagerly joined. The read is all-or-nothing: any scan failure fails the
// whole call with no partial result.
func (s *Store) Receives(ctx context.Context, tenantID int64) ([]models.Receive, error) {
	q := `SELECT r.pkid, r.tenant_id, r.received_date, r.source_type,
                 d.pkid, d.item_name, d.accepted_quantity, d.rejected_quantity
          FROM receives r
          LEFT JOIN receive_details d
                 ON d.receive_pkid = r.pkid AND d.is_deleted IS NOT TRUE
          WHERE (r.tenant_id = $1 OR r.tenant_id IS NULL)
            AND r.is_deleted IS NOT TRUE
          ORDER BY r.pkid`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query receives: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.Receive)
	var order []int64
	for rows.Next() {
		var (
			rec        models.Receive
			detailID   *int64
			itemName   *string
			acceptedQ  *float64
			rejectedQ  *float64
		)
		if err := rows.Scan(
			&rec.PKID, &rec.TenantID, &rec.ReceivedDate, &rec.SourceType,
			&detailID, &itemName, &acceptedQ, &rejectedQ,
		); err != nil {
			return nil, fmt.Errorf("scan receive: %w", err)
		}

		existing, ok := byID[rec.PKID]
		if !ok {
			r := rec
			r.Details = nil
			byID[r.PKID] = &r
			order = append(order, r.PKID)
			existing = &r
		}
		if detailID != nil {
			detail := models.ReceiveDetail{PKID: *detailID}
			if itemName != nil {
				detail.ItemName = *itemName
			}
			if acceptedQ != nil {
				detail.AcceptedQuantity = *acceptedQ
			}
			if rejectedQ != nil {
				detail.RejectedQuantity = *rejectedQ
			}
			existing.Details = append(existing.Details, detail)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receives: %w", err)
	}

	out := make([]models.Receive, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

// Transfers returns all inventory transfers visible to the tenant.
func (s *Store) Transfers(ctx context.Context, tenantID int64) ([]models.Transfer, error) {
	q := `SELECT pkid, tenant_id, requested_date, expected_arrival_date, received_date
          FROM transfers
          WHERE (tenant_id = $1 OR tenant_id IS NULL)
            AND is_deleted IS NOT TRUE
          ORDER BY pkid`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	var out []models.Transfer
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.PKID, &t.TenantID, &t.RequestedDate, &t.ExpectedArrivalDate, &t.ReceivedDate); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}
	return out, nil
}
