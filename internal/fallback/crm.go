package fallback

import (
	"context"
	"fmt"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// Requisitions returns all retail sales requisitions visible to the tenant.
func (s *Store) Requisitions(ctx context.Context, tenantID int64) ([]models.Requisition, error) {
	q := `SELECT pkid, tenant_id, requisition_date, target_delivery_date, delivered_date
          FROM requisitions
          WHERE (tenant_id = $1 OR tenant_id IS NULL)
            AND is_deleted IS NOT TRUE
          ORDER BY pkid`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query requisitions: %w", err)
	}
	defer rows.Close()

	var out []models.Requisition
	for rows.Next() {
		var r models.Requisition
		if err := rows.Scan(&r.PKID, &r.TenantID, &r.RequisitionDate, &r.TargetDeliveryDate, &r.DeliveredDate); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requisitions: %w", err)
	}
	return out, nil
}
