package fallback

import (
	"context"
	"database/sql"
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
)

func setupTestStore(t *testing.T) (*Store, *sql.DB) {
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

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrationSQL, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_init.up.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(migrationSQL))
	require.NoError(t, err)

	store, err := Connect(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store, db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func TestReceivesJoinsDetails(t *testing.T) {
	store, db := setupTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	var receiveID int64
	err := db.QueryRow(
		`INSERT INTO receives (received_date, source_type, tenant_id) VALUES ($1, 'Purchase Order', 7) RETURNING pkid`,
		day).Scan(&receiveID)
	require.NoError(t, err)
	mustExec(t, db,
		`INSERT INTO receive_details (receive_pkid, item_name, accepted_quantity, rejected_quantity, tenant_id)
         VALUES ($1, 'Widget', 100, 5, 7), ($1, 'Gadget', 50, 0, 7)`, receiveID)

	// A receipt with no detail rows, and one soft-deleted receipt.
	mustExec(t, db, `INSERT INTO receives (received_date, tenant_id) VALUES ($1, 7)`, day)
	mustExec(t, db, `INSERT INTO receives (received_date, tenant_id, is_deleted) VALUES ($1, 7, TRUE)`, day)

	got, err := store.Receives(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 2, "soft-deleted receipts are invisible")
	require.Len(t, got[0].Details, 2)
	var accepted, rejected float64
	for _, d := range got[0].Details {
		accepted += d.AcceptedQuantity
		rejected += d.RejectedQuantity
	}
	assert.Equal(t, 150.0, accepted)
	assert.Equal(t, 5.0, rejected)
	assert.Empty(t, got[1].Details, "a receipt without details still appears")
}

func TestTenantFilterOnFallbackReads(t *testing.T) {
	store, db := setupTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	mustExec(t, db, `INSERT INTO transfers (requested_date, expected_arrival_date, tenant_id) VALUES ($1, $1, 7)`, day)
	mustExec(t, db, `INSERT INTO transfers (requested_date, expected_arrival_date, tenant_id) VALUES ($1, $1, 8)`, day)
	mustExec(t, db, `INSERT INTO transfers (requested_date, expected_arrival_date, tenant_id) VALUES ($1, $1, NULL)`, day)

	got, err := store.Transfers(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, got, 2, "own-tenant and global rows only")
}

func TestShipmentHistoryGroupsByYear(t *testing.T) {
	store, db := setupTestStore(t)
	ctx := context.Background()

	var contractID, detailID int64
	err := db.QueryRow(
		`INSERT INTO contracts (contract_date, tenant_id) VALUES (NOW(), 7) RETURNING pkid`).Scan(&contractID)
	require.NoError(t, err)
	err = db.QueryRow(
		`INSERT INTO contract_details (contract_pkid, tenant_id) VALUES ($1, 7) RETURNING pkid`,
		contractID).Scan(&detailID)
	require.NoError(t, err)

	ship := func(year int) {
		at := time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
		mustExec(t, db,
			`INSERT INTO history_shipments (contract_detail_pkid, shipment_date, target_delivery_date,
                 delivered_date, target_quantity, delivered_quantity, tenant_id)
             VALUES ($1, $2, $2, $2, 100, 100, 7)`, detailID, at)
	}
	ship(2023)
	ship(2023)
	ship(2024)

	groups, err := store.ShipmentHistory(ctx, 7)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "2023", groups[0].Year)
	assert.Len(t, groups[0].HistoryShipments, 2)
	assert.Equal(t, "2024", groups[1].Year)
}

func TestRFQsAndRequisitions(t *testing.T) {
	store, db := setupTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	mustExec(t, db,
		`INSERT INTO rfqs (request_date, target_deadline_date, closed_date, tenant_id) VALUES ($1, $1, $1, 7)`, day)
	mustExec(t, db,
		`INSERT INTO rfqs (request_date, target_deadline_date, tenant_id) VALUES ($1, $1, 7)`, day)

	rfqs, err := store.RFQs(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rfqs, 2)
	assert.NotNil(t, rfqs[0].ClosedDate)
	assert.Nil(t, rfqs[1].ClosedDate, "open RFQs keep a null closed date")

	mustExec(t, db,
		`INSERT INTO requisitions (requisition_date, target_delivery_date, tenant_id) VALUES ($1, $1, 7)`, day)
	reqs, err := store.Requisitions(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}
