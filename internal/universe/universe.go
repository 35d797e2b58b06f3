// Package universe implements the selection engine: a Universe owns one
// subscription spec, one settings value and one selection rule, and turns
// each reference-data snapshot into the symbol set selected at that
// instant. Diffing successive results into subscription changes is the
// subscription manager's job, not the engine's.
package universe

import (
	"time"

	"github.com/quantfabric/universe/internal/contracts"
)

// Universe evaluates a selection rule against fundamental snapshots.
// It is stateless across evaluations and carries no locks: callers must
// not run two evaluations of the same instance concurrently. Distinct
// instances share nothing and may run in parallel.
type Universe struct {
	symbol   contracts.Symbol
	spec     contracts.SubscriptionSpec
	settings contracts.UniverseSettings
	rule     SelectionRule
}

// New creates a universe rooted at the given symbol.
func New(symbol contracts.Symbol, settings contracts.UniverseSettings, rule SelectionRule) (*Universe, error) {
	if rule == nil {
		return nil, ErrNilRule
	}
	return &Universe{
		symbol:   symbol,
		spec:     CreateFundamentalSpec(symbol),
		settings: settings,
		rule:     rule,
	}, nil
}

// NewFundamental creates a universe rooted at the US-market fundamentals
// sentinel symbol.
func NewFundamental(settings contracts.UniverseSettings, rule SelectionRule) (*Universe, error) {
	return New(contracts.UniverseSymbol(contracts.MarketUS), settings, rule)
}

// NewFundamentalFromCallable creates a US-market fundamentals universe
// from a dynamically-typed callable. The callable is adapted once, here;
// a shape that cannot be adapted fails construction and the caller must
// not proceed with a partial instance.
func NewFundamentalFromCallable(settings contracts.UniverseSettings, callable any) (*Universe, error) {
	rule, err := AdaptRule(callable)
	if err != nil {
		return nil, err
	}
	return NewFundamental(settings, rule)
}

// SelectSymbols evaluates the rule against the snapshot and returns the
// selected symbols in the order the rule emitted them: no sorting, no
// deduplication. Records of other data types are skipped silently, so a
// snapshot shared across heterogeneous universes is not an error. utc is
// the snapshot's timestamp, carried for traceability only.
//
// Panics inside the rule are not recovered; rule failures propagate to
// the scheduler, which owns skip/abort policy.
func (u *Universe) SelectSymbols(utc time.Time, snap *contracts.Snapshot) []contracts.Symbol {
	_ = utc

	records := make([]contracts.Fundamental, 0, len(snap.Records))
	for _, rec := range snap.Records {
		f, ok := rec.(contracts.Fundamental)
		if !ok {
			continue
		}
		records = append(records, f)
	}

	return u.rule.Select(records)
}

// Symbol returns the universe root symbol.
func (u *Universe) Symbol() contracts.Symbol {
	return u.symbol
}

// Spec returns the subscription spec, created once at construction.
func (u *Universe) Spec() contracts.SubscriptionSpec {
	return u.spec
}

// Settings returns the settings forwarded to the subscription manager.
// The engine never mutates them.
func (u *Universe) Settings() contracts.UniverseSettings {
	return u.settings
}
