// Package fallback reads domain facts directly from the secondary relational
// stores owned by the ERP services. It is only used when the broker exchange
// for the same query times out or cannot be established.
package fallback

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a connection pool to one domain's secondary schema. Every read
// applies the shared tenant filter (tenant_id = target OR tenant_id IS NULL)
// and skips soft-deleted rows, matching the primary path's semantics.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the domain's secondary store and verifies it.
func Connect(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewStore wraps an existing pool. Used when several domains share one store.
func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

// Ping verifies connectivity, used by readiness checks.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
