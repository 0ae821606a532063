package fallback

import (
	"context"
	"fmt"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// ProductionRequests returns all manufacturing orders visible to the tenant.
func (s *Store) ProductionRequests(ctx context.Context, tenantID int64) ([]models.ProductionRequest, error) {
	q := `SELECT pkid, tenant_id, requested_date, quantity_requested, quantity_produced
          FROM production_requests
          WHERE (tenant_id = $1 OR tenant_id IS NULL)
            AND is_deleted IS NOT TRUE
          ORDER BY pkid`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query production requests: %w", err)
	}
	defer rows.Close()

	var out []models.ProductionRequest
	for rows.Next() {
		var p models.ProductionRequest
		if err := rows.Scan(&p.PKID, &p.TenantID, &p.RequestedDate, &p.QuantityRequested, &p.QuantityProduced); err != nil {
			return nil, fmt.Errorf("scan production request: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate production requests: %w", err)
	}
	return out, nil
}

// InspectionProducts returns all inspection results visible to the tenant.
func (s *Store) InspectionProducts(ctx context.Context, tenantID int64) ([]models.InspectionProduct, error) {
	q := `SELECT pkid, tenant_id, inspection_date, quantity_passed, quantity_defect
          FROM inspection_products
          WHERE (tenant_id = $1 OR tenant_id IS NULL)
            AND is_deleted IS NOT TRUE
          ORDER BY pkid`

	rows, err := s.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query inspection products: %w", err)
	}
	defer rows.Close()

	var out []models.InspectionProduct
	for rows.Next() {
		var i models.InspectionProduct
		if err := rows.Scan(&i.PKID, &i.TenantID, &i.InspectionDate, &i.QuantityPassed, &i.QuantityDefect); err != nil {
			return nil, fmt.Errorf("scan inspection product: %w", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inspection products: %w", err)
	}
	return out, nil
}
