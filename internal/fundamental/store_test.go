package fundamental

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfabric/universe/internal/contracts"
)

// setupStore connects to the database named by TEST_DATABASE_URL and
// prepares an empty fundamentals table.
func setupStore(t *testing.T) *Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS universe;
		CREATE TABLE IF NOT EXISTS universe.fundamentals (
			symbol_id     TEXT NOT NULL,
			market        TEXT NOT NULL,
			day           TIMESTAMPTZ NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			sector        TEXT NOT NULL DEFAULT '',
			market_cap    DOUBLE PRECISION NOT NULL DEFAULT 0,
			dollar_volume DOUBLE PRECISION NOT NULL DEFAULT 0,
			pe_ratio      DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (symbol_id, market, day)
		);
		TRUNCATE universe.fundamentals;
	`)
	require.NoError(t, err)

	return NewStore(pool)
}

func TestStore_UpsertAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	symbol := contracts.NewSymbol("AAPL", contracts.MarketUS)

	records := []contracts.Fundamental{
		{Symbol: symbol, Day: day, Name: "Apple Inc", Sector: "Technology", MarketCap: 3e12},
	}
	require.NoError(t, store.UpsertBatch(ctx, records))

	got, err := store.GetBySymbol(ctx, symbol)
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", got.Name)
	assert.True(t, got.HasData)

	// Upserting the same day replaces the row.
	records[0].MarketCap = 3.1e12
	require.NoError(t, store.UpsertBatch(ctx, records))

	got, err = store.GetBySymbol(ctx, symbol)
	require.NoError(t, err)
	assert.Equal(t, 3.1e12, got.MarketCap)
}

func TestStore_GetBySymbol_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetBySymbol(context.Background(), contracts.NewSymbol("NOPE", contracts.MarketUS))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RecordsAsOf(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	stale := day.AddDate(0, 0, -3)

	require.NoError(t, store.UpsertBatch(ctx, []contracts.Fundamental{
		{Symbol: contracts.NewSymbol("AAPL", contracts.MarketUS), Day: day, MarketCap: 3e12},
		{Symbol: contracts.NewSymbol("AAPL", contracts.MarketUS), Day: stale, MarketCap: 2.9e12},
		{Symbol: contracts.NewSymbol("OLD", contracts.MarketUS), Day: stale, MarketCap: 1e9},
	}))

	records, err := store.RecordsAsOf(ctx, day)
	require.NoError(t, err)
	require.Len(t, records, 2, "one row per symbol")

	byID := make(map[string]contracts.Fundamental)
	for _, rec := range records {
		byID[rec.Symbol.ID] = rec
	}

	aapl := byID["AAPL"]
	assert.Equal(t, 3e12, aapl.MarketCap, "latest row wins")
	assert.True(t, aapl.HasData)

	old := byID["OLD"]
	assert.False(t, old.HasData, "stale rows come back as sentinels")
}
