package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfabric/universe/internal/contracts"
	"github.com/quantfabric/universe/internal/universe"
	"github.com/quantfabric/universe/pkg/logger"
)

func sym(id string) contracts.Symbol {
	return contracts.NewSymbol(id, contracts.MarketUS)
}

func newTestManager(minTime time.Duration) *Manager {
	settings := contracts.DefaultUniverseSettings()
	settings.MinimumTimeInUniverse = minTime

	spec := universe.CreateFundamentalSpec(contracts.UniverseSymbol(contracts.MarketUS))
	return NewManager(settings, spec, nil, logger.Nop())
}

func TestManager_FirstApplyAddsEverything(t *testing.T) {
	m := newTestManager(0)
	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	change := m.Apply(now, []contracts.Symbol{sym("BBB"), sym("AAA")})

	assert.Equal(t, []contracts.Symbol{sym("AAA"), sym("BBB")}, change.Added, "additions are sorted")
	assert.Empty(t, change.Removed)
	assert.Equal(t, []contracts.Symbol{sym("AAA"), sym("BBB")}, m.Active())
}

func TestManager_DiffsAgainstMembership(t *testing.T) {
	m := newTestManager(0)
	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	m.Apply(now, []contracts.Symbol{sym("AAA"), sym("BBB")})
	change := m.Apply(now.Add(24*time.Hour), []contracts.Symbol{sym("BBB"), sym("CCC")})

	assert.Equal(t, []contracts.Symbol{sym("CCC")}, change.Added)
	assert.Equal(t, []contracts.Symbol{sym("AAA")}, change.Removed)
	assert.Equal(t, []contracts.Symbol{sym("BBB"), sym("CCC")}, m.Active())
}

func TestManager_UnchangedSelectionIsEmptyChange(t *testing.T) {
	m := newTestManager(0)
	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	m.Apply(now, []contracts.Symbol{sym("AAA")})
	change := m.Apply(now.Add(24*time.Hour), []contracts.Symbol{sym("AAA")})

	assert.True(t, change.Empty())
}

func TestManager_MinimumTimeInUniverse(t *testing.T) {
	m := newTestManager(24 * time.Hour)
	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	m.Apply(now, []contracts.Symbol{sym("AAA")})

	// Deselected too early: the symbol is retained.
	change := m.Apply(now.Add(time.Hour), nil)
	assert.Empty(t, change.Removed)
	assert.True(t, m.Contains(sym("AAA")))

	// After the holding period it leaves.
	change = m.Apply(now.Add(24*time.Hour), nil)
	assert.Equal(t, []contracts.Symbol{sym("AAA")}, change.Removed)
	assert.False(t, m.Contains(sym("AAA")))
}

func TestManager_DuplicateSelectionsCollapse(t *testing.T) {
	m := newTestManager(0)
	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	change := m.Apply(now, []contracts.Symbol{sym("AAA"), sym("AAA"), sym("AAA")})

	assert.Equal(t, []contracts.Symbol{sym("AAA")}, change.Added)
	assert.Equal(t, []contracts.Symbol{sym("AAA")}, m.Active())
}

func TestManager_RecentChanges(t *testing.T) {
	m := newTestManager(0)
	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	m.Apply(now, []contracts.Symbol{sym("AAA")})
	m.Apply(now.Add(24*time.Hour), []contracts.Symbol{sym("BBB")})
	m.Apply(now.Add(48*time.Hour), []contracts.Symbol{sym("CCC")})

	recent := m.RecentChanges(2)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].Time.Before(recent[1].Time), "oldest first")
	assert.Equal(t, []contracts.Symbol{sym("CCC")}, recent[1].Added)

	assert.Len(t, m.RecentChanges(100), 3)
	assert.Empty(t, m.RecentChanges(0))
}

func TestManager_Stats(t *testing.T) {
	m := newTestManager(0)
	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	stats := m.Stats()
	assert.Equal(t, 0, stats.ActiveSymbols)
	assert.Nil(t, stats.LastChangeAt)

	m.Apply(now, []contracts.Symbol{sym("AAA"), sym("BBB")})

	stats = m.Stats()
	assert.Equal(t, 2, stats.ActiveSymbols)
	assert.Equal(t, 1, stats.TotalChanges)
	require.NotNil(t, stats.LastChangeAt)
	assert.Equal(t, now, *stats.LastChangeAt)
}
