// pkg/store/store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/config"
	"github.com/startuppulse/ecosystem-ingress/pkg/model"
)

// Store persists cleaned and enriched batches to PostgreSQL using an
// insert-or-update keyed on the (name, website) natural key. The
// pipeline hands over a finished in-memory batch; the store owns the
// transaction discipline.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
	cfg    *config.PostgresConfig
}

// New creates and validates a PostgreSQL-backed store.
func New(ctx context.Context, cfg *config.PostgresConfig, logger *zap.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("postgres configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	s := &Store{db: db, logger: logger, cfg: cfg}

	if err := s.ensureTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure tables: %w", err)
	}

	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Columns contributed by the enrichment sources rather than the
// cleaning stages. Both entity tables carry the full set since every
// source serves both entity types.
const enrichmentColumnDDL = `
		total_funding DOUBLE PRECISION,
		funding_rounds JSONB,
		investors TEXT[],
		portfolio_companies TEXT[],
		investment_history JSONB,
		recent_hires DOUBLE PRECISION,
		company_size TEXT,
		key_personnel TEXT[],
		recent_activities JSONB,
		website_description TEXT,
		team_members TEXT[],`

// ensureTables creates the entity tables and their natural-key
// constraints if they do not exist.
func (s *Store) ensureTables(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS startups (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			website TEXT NOT NULL,
			industry TEXT,
			sub_sector TEXT,
			funding_round TEXT,
			employee_count DOUBLE PRECISION,
			funding_amount DOUBLE PRECISION,
			suspicious_employee_count BOOLEAN,
			suspicious_funding_amount BOOLEAN,
			founded_date TIMESTAMP WITH TIME ZONE,
			last_funding_date TIMESTAMP WITH TIME ZONE,
			last_updated TIMESTAMP WITH TIME ZONE,` + enrichmentColumnDDL + `
			UNIQUE (name, website)
		)`,
		`CREATE TABLE IF NOT EXISTS investors (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			website TEXT NOT NULL,
			investor_type TEXT,
			investment_focus TEXT[],
			sector TEXT[],
			investment_amount DOUBLE PRECISION,
			founded_date TIMESTAMP WITH TIME ZONE,
			last_investment_date TIMESTAMP WITH TIME ZONE,
			last_updated TIMESTAMP WITH TIME ZONE,` + enrichmentColumnDDL + `
			UNIQUE (name, website)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	s.logger.Info("Ensured entity tables exist")
	return nil
}

// UpsertBatch writes every record in the batch, inserting new rows
// and updating existing ones by natural key. Returns the number of
// rows written.
func (s *Store) UpsertBatch(ctx context.Context, batch model.Batch) (int, error) {
	if batch.Schema == nil {
		return 0, errors.New("batch has no schema")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	written := 0
	for _, row := range batch.Rows {
		switch batch.Schema.Entity {
		case "startup":
			err = s.upsertStartup(ctx, tx, row)
		case "investor":
			err = s.upsertInvestor(ctx, tx, row)
		default:
			err = fmt.Errorf("unsupported entity type %q", batch.Schema.Entity)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to upsert record %q: %w", batch.Schema.NameOf(row), err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Persisted batch",
		zap.String("entity", batch.Schema.Entity),
		zap.Int("rows", written))

	return written, nil
}

// Cleaning columns replace the stored row outright; enrichment columns
// use COALESCE so a run whose fetches failed never wipes values a
// previous run managed to collect.
const startupUpsertSQL = `
	INSERT INTO startups
	(name, website, industry, sub_sector, funding_round,
	 employee_count, funding_amount,
	 suspicious_employee_count, suspicious_funding_amount,
	 founded_date, last_funding_date, last_updated,
	 total_funding, funding_rounds, investors, portfolio_companies,
	 investment_history, recent_hires, company_size, key_personnel,
	 recent_activities, website_description, team_members)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
	        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	ON CONFLICT (name, website) DO UPDATE SET
		industry = EXCLUDED.industry,
		sub_sector = EXCLUDED.sub_sector,
		funding_round = EXCLUDED.funding_round,
		employee_count = EXCLUDED.employee_count,
		funding_amount = EXCLUDED.funding_amount,
		suspicious_employee_count = EXCLUDED.suspicious_employee_count,
		suspicious_funding_amount = EXCLUDED.suspicious_funding_amount,
		founded_date = EXCLUDED.founded_date,
		last_funding_date = EXCLUDED.last_funding_date,
		last_updated = EXCLUDED.last_updated,
		total_funding = COALESCE(EXCLUDED.total_funding, startups.total_funding),
		funding_rounds = COALESCE(EXCLUDED.funding_rounds, startups.funding_rounds),
		investors = COALESCE(EXCLUDED.investors, startups.investors),
		portfolio_companies = COALESCE(EXCLUDED.portfolio_companies, startups.portfolio_companies),
		investment_history = COALESCE(EXCLUDED.investment_history, startups.investment_history),
		recent_hires = COALESCE(EXCLUDED.recent_hires, startups.recent_hires),
		company_size = COALESCE(EXCLUDED.company_size, startups.company_size),
		key_personnel = COALESCE(EXCLUDED.key_personnel, startups.key_personnel),
		recent_activities = COALESCE(EXCLUDED.recent_activities, startups.recent_activities),
		website_description = COALESCE(EXCLUDED.website_description, startups.website_description),
		team_members = COALESCE(EXCLUDED.team_members, startups.team_members)`

const investorUpsertSQL = `
	INSERT INTO investors
	(name, website, investor_type, investment_focus, sector,
	 investment_amount, founded_date, last_investment_date, last_updated,
	 total_funding, funding_rounds, investors, portfolio_companies,
	 investment_history, recent_hires, company_size, key_personnel,
	 recent_activities, website_description, team_members)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
	        $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	ON CONFLICT (name, website) DO UPDATE SET
		investor_type = EXCLUDED.investor_type,
		investment_focus = EXCLUDED.investment_focus,
		sector = EXCLUDED.sector,
		investment_amount = EXCLUDED.investment_amount,
		founded_date = EXCLUDED.founded_date,
		last_investment_date = EXCLUDED.last_investment_date,
		last_updated = EXCLUDED.last_updated,
		total_funding = COALESCE(EXCLUDED.total_funding, investors.total_funding),
		funding_rounds = COALESCE(EXCLUDED.funding_rounds, investors.funding_rounds),
		investors = COALESCE(EXCLUDED.investors, investors.investors),
		portfolio_companies = COALESCE(EXCLUDED.portfolio_companies, investors.portfolio_companies),
		investment_history = COALESCE(EXCLUDED.investment_history, investors.investment_history),
		recent_hires = COALESCE(EXCLUDED.recent_hires, investors.recent_hires),
		company_size = COALESCE(EXCLUDED.company_size, investors.company_size),
		key_personnel = COALESCE(EXCLUDED.key_personnel, investors.key_personnel),
		recent_activities = COALESCE(EXCLUDED.recent_activities, investors.recent_activities),
		website_description = COALESCE(EXCLUDED.website_description, investors.website_description),
		team_members = COALESCE(EXCLUDED.team_members, investors.team_members)`

func (s *Store) upsertStartup(ctx context.Context, tx *sqlx.Tx, row model.Record) error {
	args := []any{
		row.String("name"),
		row.String("website"),
		row.String("industry"),
		row.String("sub_sector"),
		row.String("funding_round"),
		nullableFloat(row, "employee_count"),
		nullableFloat(row, "funding_amount"),
		row["suspicious_employee_count"] == true,
		row["suspicious_funding_amount"] == true,
		nullableTime(row, "founded_date"),
		nullableTime(row, "last_funding_date"),
		nullableTime(row, "last_updated"),
	}
	args = append(args, enrichmentArgs(row)...)

	_, err := tx.ExecContext(ctx, startupUpsertSQL, args...)
	return err
}

func (s *Store) upsertInvestor(ctx context.Context, tx *sqlx.Tx, row model.Record) error {
	args := []any{
		row.String("name"),
		row.String("website"),
		row.String("investor_type"),
		pq.Array(stringList(row["investment_focus"])),
		pq.Array(stringList(row["sector"])),
		nullableFloat(row, "investment_amount"),
		nullableTime(row, "founded_date"),
		nullableTime(row, "last_investment_date"),
		nullableTime(row, "last_updated"),
	}
	args = append(args, enrichmentArgs(row)...)

	_, err := tx.ExecContext(ctx, investorUpsertSQL, args...)
	return err
}

// enrichmentArgs binds the source-contributed columns in the order
// both upsert statements list them.
func enrichmentArgs(row model.Record) []any {
	return []any{
		nullableFloat(row, "total_funding"),
		jsonValue(row["funding_rounds"]),
		pq.Array(stringList(row["investors"])),
		pq.Array(stringList(row["portfolio_companies"])),
		jsonValue(row["investment_history"]),
		nullableFloat(row, "recent_hires"),
		nullableText(row, "company_size"),
		pq.Array(stringList(row["key_personnel"])),
		jsonValue(row["recent_activities"]),
		nullableText(row, "website_description"),
		pq.Array(stringList(row["team_members"])),
	}
}

// nullableFloat maps a missing numeric value to SQL NULL.
func nullableFloat(row model.Record, col string) any {
	if f, ok := row.Float(col); ok {
		return f
	}
	return nil
}

// nullableTime maps the zero-time sentinel back to SQL NULL.
func nullableTime(row model.Record, col string) any {
	if t, ok := row.Time(col); ok && !t.IsZero() {
		return t
	}
	return nil
}

// nullableText maps a missing or empty string value to SQL NULL.
func nullableText(row model.Record, col string) any {
	if s := row.String(col); s != "" {
		return s
	}
	return nil
}

// stringList coerces a list value to []string. Decoded JSON arrives
// as []any, so string elements are collected from either shape.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

// jsonValue serializes a loosely structured value for a JSONB column,
// mapping missing or unserializable values to SQL NULL.
func jsonValue(v any) any {
	if model.IsNull(v) {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
