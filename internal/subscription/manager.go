// Package subscription turns each selection tick's symbol set into stable
// subscription state: it diffs against current membership, honors minimum
// time in universe, and pushes the resulting changes to listeners.
package subscription

import (
	"sort"
	"sync"
	"time"

	"github.com/quantfabric/universe/internal/contracts"
	"github.com/quantfabric/universe/pkg/logger"
)

const changeHistoryLimit = 100

// member tracks when a symbol entered the universe.
type member struct {
	joinedAt time.Time
}

// Manager owns subscription state for one universe. It implements
// contracts.SubscriptionSink and is safe for concurrent use: the
// scheduler applies ticks while the API reads state.
type Manager struct {
	mu       sync.RWMutex
	settings contracts.UniverseSettings
	spec     contracts.SubscriptionSpec
	members  map[contracts.Symbol]member
	changes  []contracts.SubscriptionChange
	hub      *Hub
	logger   *logger.Logger
}

// NewManager creates a manager for a universe's settings and spec. hub
// may be nil when no change stream is wanted.
func NewManager(settings contracts.UniverseSettings, spec contracts.SubscriptionSpec, hub *Hub, log *logger.Logger) *Manager {
	return &Manager{
		settings: settings,
		spec:     spec,
		members:  make(map[contracts.Symbol]member),
		hub:      hub,
		logger:   log,
	}
}

// Apply diffs one tick's selected set against current membership and
// returns the change. The first apply reports every symbol as an
// addition. A symbol missing from the selection leaves only after
// MinimumTimeInUniverse has elapsed since it joined.
func (m *Manager) Apply(utc time.Time, selected []contracts.Symbol) contracts.SubscriptionChange {
	m.mu.Lock()

	selectedSet := make(map[contracts.Symbol]bool, len(selected))
	for _, s := range selected {
		selectedSet[s] = true
	}

	change := contracts.SubscriptionChange{Time: utc}

	// Additions: selected but not yet subscribed. Duplicate selections
	// collapse naturally; membership is a set.
	for _, s := range selected {
		if _, ok := m.members[s]; ok {
			continue
		}
		m.members[s] = member{joinedAt: utc}
		change.Added = append(change.Added, s)
	}

	// Removals: subscribed but no longer selected, if held long enough.
	for s, mem := range m.members {
		if selectedSet[s] {
			continue
		}
		if utc.Sub(mem.joinedAt) < m.settings.MinimumTimeInUniverse {
			continue
		}
		delete(m.members, s)
		change.Removed = append(change.Removed, s)
	}

	sortSymbols(change.Added)
	sortSymbols(change.Removed)

	m.changes = append(m.changes, change)
	if len(m.changes) > changeHistoryLimit {
		m.changes = m.changes[len(m.changes)-changeHistoryLimit:]
	}

	active := len(m.members)
	m.mu.Unlock()

	if !change.Empty() && m.hub != nil {
		m.hub.Broadcast(change)
	}

	m.logger.WithFields(map[string]interface{}{
		"added":   len(change.Added),
		"removed": len(change.Removed),
		"active":  active,
	}).Info("Applied universe selection")

	return change
}

// Active returns the current membership, ordered by symbol.
func (m *Manager) Active() []contracts.Symbol {
	m.mu.RLock()
	defer m.mu.RUnlock()

	symbols := make([]contracts.Symbol, 0, len(m.members))
	for s := range m.members {
		symbols = append(symbols, s)
	}

	sortSymbols(symbols)
	return symbols
}

// Contains reports whether a symbol is currently subscribed.
func (m *Manager) Contains(s contracts.Symbol) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.members[s]
	return ok
}

// RecentChanges returns up to n most recent changes, oldest first.
func (m *Manager) RecentChanges(n int) []contracts.SubscriptionChange {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n > len(m.changes) {
		n = len(m.changes)
	}
	if n <= 0 {
		return []contracts.SubscriptionChange{}
	}

	out := make([]contracts.SubscriptionChange, n)
	copy(out, m.changes[len(m.changes)-n:])
	return out
}

// Settings returns the universe settings the manager subscribes with.
func (m *Manager) Settings() contracts.UniverseSettings {
	return m.settings
}

// Spec returns the subscription spec for the universe's data feed.
func (m *Manager) Spec() contracts.SubscriptionSpec {
	return m.spec
}

// Stats returns a point-in-time view of subscription state.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var lastChange *time.Time
	if len(m.changes) > 0 {
		t := m.changes[len(m.changes)-1].Time
		lastChange = &t
	}

	return Stats{
		ActiveSymbols: len(m.members),
		TotalChanges:  len(m.changes),
		LastChangeAt:  lastChange,
	}
}

// Stats represents subscription statistics.
type Stats struct {
	ActiveSymbols int        `json:"active_symbols"`
	TotalChanges  int        `json:"total_changes"`
	LastChangeAt  *time.Time `json:"last_change_at,omitempty"`
}

func sortSymbols(symbols []contracts.Symbol) {
	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].ID != symbols[j].ID {
			return symbols[i].ID < symbols[j].ID
		}
		return symbols[i].Market < symbols[j].Market
	})
}
