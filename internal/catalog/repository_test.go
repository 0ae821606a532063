package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// setupTestDatabase starts a PostgreSQL container and applies the schema.
func setupTestDatabase(t *testing.T) *Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("qms_risk_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, runMigrations(connStr))

	repo, err := NewRepository(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func runMigrations(connStr string) error {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	migrationPath := filepath.Join("..", "..", "migrations", "001_init.up.sql")
	migrationSQL, err := os.ReadFile(migrationPath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}
	if _, err := db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	return nil
}

func TestListIncludesGlobalEntries(t *testing.T) {
	repo := setupTestDatabase(t)
	ctx := context.Background()

	entries, err := repo.List(ctx, 1, models.RiskUserIndustry)
	require.NoError(t, err)
	assert.Len(t, entries, 6, "the schema seeds six global Industry risks")
	for _, e := range entries {
		assert.Nil(t, e.TenantID)
	}

	supplier, err := repo.List(ctx, 1, models.RiskUserSupplier)
	require.NoError(t, err)
	assert.Len(t, supplier, 2)
}

func TestCatalogLifecycle(t *testing.T) {
	repo := setupTestDatabase(t)
	ctx := context.Background()
	tenant := int64(42)

	created, err := repo.Create(ctx, &models.RiskCatalogEntry{
		RiskName:       "Risiko stok gudang",
		RiskDesc:       "Stok gudang di bawah batas aman",
		RiskUser:       models.RiskUserIndustry,
		RiskGroup:      "Inventory",
		RiskMitigation: "Atur ulang titik pemesanan",
		TenantID:       &tenant,
	})
	require.NoError(t, err)
	require.NotZero(t, created.PKID)

	got, err := repo.Get(ctx, created.PKID)
	require.NoError(t, err)
	assert.Equal(t, "Risiko stok gudang", got.RiskName)
	require.NotNil(t, got.TenantID)
	assert.Equal(t, tenant, *got.TenantID)

	t.Run("visible to own tenant only", func(t *testing.T) {
		own, err := repo.List(ctx, tenant, models.RiskUserIndustry)
		require.NoError(t, err)
		assert.Len(t, own, 7, "six global plus the tenant's own entry")

		other, err := repo.List(ctx, 99, models.RiskUserIndustry)
		require.NoError(t, err)
		assert.Len(t, other, 6)
	})

	t.Run("update", func(t *testing.T) {
		got.RiskMitigation = "Tambah pemasok cadangan"
		require.NoError(t, repo.Update(ctx, got))

		after, err := repo.Get(ctx, got.PKID)
		require.NoError(t, err)
		assert.Equal(t, "Tambah pemasok cadangan", after.RiskMitigation)
	})

	t.Run("soft delete hides the entry", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, created.PKID))

		_, err := repo.Get(ctx, created.PKID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, repo.SoftDelete(ctx, created.PKID), ErrNotFound)
		assert.ErrorIs(t, repo.Update(ctx, got), ErrNotFound)
	})
}

func TestGetMissingEntry(t *testing.T) {
	repo := setupTestDatabase(t)

	_, err := repo.Get(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrNotFound)
}
