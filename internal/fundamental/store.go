// Package fundamental supplies reference-data snapshots: a PostgreSQL
// store of per-symbol daily fundamentals, a cached snapshot provider and
// the HTML source that refreshes the store.
package fundamental

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantfabric/universe/internal/contracts"
)

// Store errors
var (
	ErrNotFound = errors.New("fundamental record not found")
)

// Store persists fundamental records, one row per symbol per day.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a fundamentals store.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UpsertBatch writes a batch of records, replacing existing rows for the
// same (symbol, market, day).
func (s *Store) UpsertBatch(ctx context.Context, records []contracts.Fundamental) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO universe.fundamentals (
			symbol_id, market, day, name, sector,
			market_cap, dollar_volume, pe_ratio, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (symbol_id, market, day) DO UPDATE SET
			name = EXCLUDED.name,
			sector = EXCLUDED.sector,
			market_cap = EXCLUDED.market_cap,
			dollar_volume = EXCLUDED.dollar_volume,
			pe_ratio = EXCLUDED.pe_ratio,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query,
			rec.Symbol.ID,
			rec.Symbol.Market,
			rec.Day,
			rec.Name,
			rec.Sector,
			rec.MarketCap,
			rec.DollarVolume,
			rec.PERatio,
		)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert fundamental: %w", err)
		}
	}

	return nil
}

// GetBySymbol retrieves the most recent record for one symbol.
func (s *Store) GetBySymbol(ctx context.Context, symbol contracts.Symbol) (*contracts.Fundamental, error) {
	query := `
		SELECT symbol_id, market, day, name, sector,
		       market_cap, dollar_volume, pe_ratio
		FROM universe.fundamentals
		WHERE symbol_id = $1 AND market = $2
		ORDER BY day DESC
		LIMIT 1
	`

	rec, err := scanFundamental(s.db.QueryRow(ctx, query, symbol.ID, symbol.Market))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query fundamental: %w", err)
	}

	return rec, nil
}

// RecordsAsOf returns the latest row per symbol with day <= asOf, ordered
// by symbol. Rows older than the requested day come back flagged as
// sentinels (HasData=false): the symbol is known but lacks fresh data.
func (s *Store) RecordsAsOf(ctx context.Context, asOf time.Time) ([]contracts.Fundamental, error) {
	query := `
		SELECT DISTINCT ON (symbol_id, market)
		       symbol_id, market, day, name, sector,
		       market_cap, dollar_volume, pe_ratio
		FROM universe.fundamentals
		WHERE day <= $1
		ORDER BY symbol_id, market, day DESC
	`

	day := asOf.Truncate(24 * time.Hour)

	rows, err := s.db.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("query fundamentals: %w", err)
	}
	defer rows.Close()

	records := make([]contracts.Fundamental, 0)
	for rows.Next() {
		rec, err := scanFundamental(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fundamental: %w", err)
		}

		rec.HasData = rec.Day.Equal(day)
		records = append(records, *rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate fundamentals: %w", rows.Err())
	}

	return records, nil
}

// row covers both pgx.Row and pgx.Rows.
type row interface {
	Scan(dest ...any) error
}

func scanFundamental(r row) (*contracts.Fundamental, error) {
	var rec contracts.Fundamental
	err := r.Scan(
		&rec.Symbol.ID,
		&rec.Symbol.Market,
		&rec.Day,
		&rec.Name,
		&rec.Sector,
		&rec.MarketCap,
		&rec.DollarVolume,
		&rec.PERatio,
	)
	if err != nil {
		return nil, err
	}

	rec.HasData = true
	return &rec, nil
}
