package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedManifest tunes how much sample data the seeder writes. Values from a
// manifest file override the command-line flags.
type seedManifest struct {
	TenantID int64 `yaml:"tenant_id"`
	Years    int   `yaml:"years"`
	PerYear  int   `yaml:"per_year"`
	Seed     int64 `yaml:"seed"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the fallback stores with sample domain data",
	Long: `Insert generated goods receipts, transfers, production orders,
inspections, RFQs, LoAs, shipments and requisitions spread across recent
years, so trend and report endpoints return data without the broker.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	dbURL, _ := cmd.Flags().GetString("db")
	manifestPath, _ := cmd.Flags().GetString("manifest")

	m := seedManifest{}
	m.TenantID, _ = cmd.Flags().GetInt64("tenant")
	m.Years, _ = cmd.Flags().GetInt("years")
	m.PerYear, _ = cmd.Flags().GetInt("per-year")

	if manifestPath != "" {
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("parse manifest: %w", err)
		}
	}
	if m.Years <= 0 || m.PerYear <= 0 {
		return fmt.Errorf("years and per_year must be positive")
	}

	faker := gofakeit.New(m.Seed)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	s := &seeder{pool: pool, faker: faker, tenantID: m.TenantID, now: time.Now()}
	steps := []struct {
		name string
		run  func(context.Context, int, int) error
	}{
		{"receives", s.receives},
		{"transfers", s.transfers},
		{"production_requests", s.productionRequests},
		{"inspection_products", s.inspectionProducts},
		{"rfqs", s.rfqs},
		{"letter_of_agreements", s.letterOfAgreements},
		{"shipments", s.shipments},
		{"requisitions", s.requisitions},
	}
	for _, step := range steps {
		if err := step.run(ctx, m.Years, m.PerYear); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		fmt.Printf("seeded %s (%d years x %d rows)\n", step.name, m.Years, m.PerYear)
	}
	return nil
}

type seeder struct {
	pool     *pgxpool.Pool
	faker    *gofakeit.Faker
	tenantID int64
	now      time.Time
}

// dateIn picks a random instant inside the year that is yearsAgo before now.
func (s *seeder) dateIn(yearsAgo int) time.Time {
	year := s.now.Year() - yearsAgo
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-time.Second)
	if end.After(s.now) {
		end = s.now
	}
	return s.faker.DateRange(start, end)
}

// maybe returns a non-nil pointer to t with the given probability, modelling
// events that sometimes have not happened yet (late deliveries, open RFQs).
func (s *seeder) maybe(t time.Time, probability float32) *time.Time {
	if s.faker.Float32Range(0, 1) < probability {
		return &t
	}
	return nil
}

func (s *seeder) forEach(years, perYear int, insert func(at time.Time) error) error {
	for y := years - 1; y >= 0; y-- {
		for i := 0; i < perYear; i++ {
			if err := insert(s.dateIn(y)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *seeder) receives(ctx context.Context, years, perYear int) error {
	return s.forEach(years, perYear, func(at time.Time) error {
		var pkid int64
		err := s.pool.QueryRow(ctx,
			`INSERT INTO receives (received_date, source_type, tenant_id) VALUES ($1, $2, $3) RETURNING pkid`,
			at, s.faker.RandomString([]string{"Purchase Order", "Production", "Transfer"}), s.tenantID,
		).Scan(&pkid)
		if err != nil {
			return err
		}
		details := s.faker.IntRange(1, 4)
		for d := 0; d < details; d++ {
			accepted := s.faker.Float64Range(50, 500)
			rejected := s.faker.Float64Range(0, 40)
			_, err := s.pool.Exec(ctx,
				`INSERT INTO receive_details (receive_pkid, item_name, accepted_quantity, rejected_quantity, tenant_id)
                 VALUES ($1, $2, $3, $4, $5)`,
				pkid, s.faker.ProductName(), accepted, rejected, s.tenantID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *seeder) transfers(ctx context.Context, years, perYear int) error {
	return s.forEach(years, perYear, func(at time.Time) error {
		expected := at.AddDate(0, 0, s.faker.IntRange(3, 14))
		received := expected.AddDate(0, 0, s.faker.IntRange(-2, 7))
		_, err := s.pool.Exec(ctx,
			`INSERT INTO transfers (requested_date, expected_arrival_date, received_date, tenant_id)
             VALUES ($1, $2, $3, $4)`,
			at, expected, s.maybe(received, 0.9), s.tenantID)
		return err
	})
}

func (s *seeder) productionRequests(ctx context.Context, years, perYear int) error {
	return s.forEach(years, perYear, func(at time.Time) error {
		requested := s.faker.Float64Range(100, 1000)
		produced := requested * s.faker.Float64Range(0.7, 1.1)
		_, err := s.pool.Exec(ctx,
			`INSERT INTO production_requests (requested_date, quantity_requested, quantity_produced, tenant_id)
             VALUES ($1, $2, $3, $4)`,
			at, requested, produced, s.tenantID)
		return err
	})
}

func (s *seeder) inspectionProducts(ctx context.Context, years, perYear int) error {
	return s.forEach(years, perYear, func(at time.Time) error {
		passed := s.faker.Float64Range(80, 600)
		defect := s.faker.Float64Range(0, 60)
		_, err := s.pool.Exec(ctx,
			`INSERT INTO inspection_products (inspection_date, quantity_passed, quantity_defect, tenant_id)
             VALUES ($1, $2, $3, $4)`,
			at, passed, defect, s.tenantID)
		return err
	})
}

func (s *seeder) rfqs(ctx context.Context, years, perYear int) error {
	return s.forEach(years, perYear, func(at time.Time) error {
		deadline := at.AddDate(0, 0, s.faker.IntRange(7, 30))
		closed := deadline.AddDate(0, 0, s.faker.IntRange(-5, 10))
		_, err := s.pool.Exec(ctx,
			`INSERT INTO rfqs (request_date, target_deadline_date, closed_date, tenant_id)
             VALUES ($1, $2, $3, $4)`,
			at, deadline, s.maybe(closed, 0.85), s.tenantID)
		return err
	})
}

func (s *seeder) letterOfAgreements(ctx context.Context, years, perYear int) error {
	return s.forEach(years, perYear, func(at time.Time) error {
		received := at.AddDate(0, 0, s.faker.IntRange(-3, 12))
		_, err := s.pool.Exec(ctx,
			`INSERT INTO letter_of_agreements (target_received_date, received_date, tenant_id)
             VALUES ($1, $2, $3)`,
			at, s.maybe(received, 0.9), s.tenantID)
		return err
	})
}

func (s *seeder) shipments(ctx context.Context, years, perYear int) error {
	var contractID int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO contracts (contract_date, tenant_id) VALUES ($1, $2) RETURNING pkid`,
		s.dateIn(years-1), s.tenantID).Scan(&contractID)
	if err != nil {
		return err
	}
	var detailID int64
	err = s.pool.QueryRow(ctx,
		`INSERT INTO contract_details (contract_pkid, tenant_id) VALUES ($1, $2) RETURNING pkid`,
		contractID, s.tenantID).Scan(&detailID)
	if err != nil {
		return err
	}

	return s.forEach(years, perYear, func(at time.Time) error {
		target := at.AddDate(0, 0, s.faker.IntRange(5, 20))
		delivered := target.AddDate(0, 0, s.faker.IntRange(-3, 8))
		quantity := s.faker.Float64Range(100, 800)
		_, err := s.pool.Exec(ctx,
			`INSERT INTO history_shipments (contract_detail_pkid, shipment_date, target_delivery_date,
                 delivered_date, target_quantity, delivered_quantity, tenant_id)
             VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			detailID, at, target, s.maybe(delivered, 0.9),
			quantity, quantity*s.faker.Float64Range(0.8, 1.0), s.tenantID)
		return err
	})
}

func (s *seeder) requisitions(ctx context.Context, years, perYear int) error {
	return s.forEach(years, perYear, func(at time.Time) error {
		target := at.AddDate(0, 0, s.faker.IntRange(2, 10))
		delivered := target.AddDate(0, 0, s.faker.IntRange(-2, 6))
		_, err := s.pool.Exec(ctx,
			`INSERT INTO requisitions (requisition_date, target_delivery_date, delivered_date, tenant_id)
             VALUES ($1, $2, $3, $4)`,
			at, target, s.maybe(delivered, 0.9), s.tenantID)
		return err
	})
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("db", "postgres://localhost:5432/qms_risk?sslmode=disable", "database URL to seed")
	seedCmd.Flags().String("manifest", "", "YAML manifest overriding the flags")
	seedCmd.Flags().Int64("tenant", 1, "tenant id to seed under")
	seedCmd.Flags().Int("years", 3, "number of calendar years to cover, ending now")
	seedCmd.Flags().Int("per-year", 40, "rows per table per year")
}
