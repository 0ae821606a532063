// Package catalog persists the tenant-scoped risk catalog: the configured
// definitions of the business risks each tenant monitors.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// ErrNotFound is returned when a catalog entry does not exist or is deleted.
var ErrNotFound = errors.New("catalog entry not found")

// Repository stores risk catalog entries in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository opens a pool against the catalog database and verifies it.
func NewRepository(ctx context.Context, connString string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// NewRepositoryFromPool wraps an existing pool.
func NewRepositoryFromPool(pool *pgxpool.Pool) *Repository { return &Repository{pool: pool} }

// Close releases the pool.
func (r *Repository) Close() { r.pool.Close() }

// Ping verifies connectivity, used by readiness checks.
func (r *Repository) Ping(ctx context.Context) error { return r.pool.Ping(ctx) }

// List returns the tenant's catalog entries for one risk user type. Entries
// with a null tenant apply to every tenant and are always included.
func (r *Repository) List(ctx context.Context, tenantID int64, riskUser string) ([]models.RiskCatalogEntry, error) {
	q := `SELECT pkid, risk_name, risk_desc, risk_user, risk_group, risk_mitigation, tenant_id
          FROM risk_bases
          WHERE (tenant_id = $1 OR tenant_id IS NULL)
            AND risk_user = $2
            AND is_deleted IS NOT TRUE
          ORDER BY risk_group, risk_name`

	rows, err := r.pool.Query(ctx, q, tenantID, riskUser)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	var out []models.RiskCatalogEntry
	for rows.Next() {
		var e models.RiskCatalogEntry
		if err := rows.Scan(&e.PKID, &e.RiskName, &e.RiskDesc, &e.RiskUser, &e.RiskGroup, &e.RiskMitigation, &e.TenantID); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog: %w", err)
	}
	return out, nil
}

// Get returns one entry by primary key.
func (r *Repository) Get(ctx context.Context, pkid int64) (*models.RiskCatalogEntry, error) {
	q := `SELECT pkid, risk_name, risk_desc, risk_user, risk_group, risk_mitigation, tenant_id
          FROM risk_bases
          WHERE pkid = $1 AND is_deleted IS NOT TRUE`

	var e models.RiskCatalogEntry
	err := r.pool.QueryRow(ctx, q, pkid).Scan(
		&e.PKID, &e.RiskName, &e.RiskDesc, &e.RiskUser, &e.RiskGroup, &e.RiskMitigation, &e.TenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get catalog entry: %w", err)
	}
	return &e, nil
}

// Create inserts a new entry and returns it with its assigned key.
func (r *Repository) Create(ctx context.Context, e *models.RiskCatalogEntry) (*models.RiskCatalogEntry, error) {
	q := `INSERT INTO risk_bases (risk_name, risk_desc, risk_user, risk_group, risk_mitigation, tenant_id)
          VALUES ($1, $2, $3, $4, $5, $6)
          RETURNING pkid`

	created := *e
	err := r.pool.QueryRow(ctx, q,
		e.RiskName, e.RiskDesc, e.RiskUser, e.RiskGroup, e.RiskMitigation, e.TenantID,
	).Scan(&created.PKID)
	if err != nil {
		return nil, fmt.Errorf("create catalog entry: %w", err)
	}
	return &created, nil
}

// Update rewrites the mutable fields of an entry.
func (r *Repository) Update(ctx context.Context, e *models.RiskCatalogEntry) error {
	q := `UPDATE risk_bases
          SET risk_name = $2, risk_desc = $3, risk_user = $4, risk_group = $5, risk_mitigation = $6
          WHERE pkid = $1 AND is_deleted IS NOT TRUE`

	tag, err := r.pool.Exec(ctx, q, e.PKID, e.RiskName, e.RiskDesc, e.RiskUser, e.RiskGroup, e.RiskMitigation)
	if err != nil {
		return fmt.Errorf("update catalog entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks an entry deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, pkid int64) error {
	q := `UPDATE risk_bases SET is_deleted = TRUE WHERE pkid = $1 AND is_deleted IS NOT TRUE`

	tag, err := r.pool.Exec(ctx, q, pkid)
	if err != nil {
		return fmt.Errorf("delete catalog entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
