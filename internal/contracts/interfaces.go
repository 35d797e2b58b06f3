package contracts

import (
	"context"
	"time"
)

// SnapshotProvider materializes the reference-data snapshot for a
// subscription spec as of a UTC instant. Implementations may return
// sentinel records (HasData=false) for symbols lacking fresh data.
type SnapshotProvider interface {
	SnapshotAt(ctx context.Context, spec SubscriptionSpec, utc time.Time) (*Snapshot, error)
}

// SymbolSelector evaluates which symbols belong to the universe at one
// instant. Stateless with respect to prior evaluations: diffing against
// the previous tick is the SubscriptionSink's job.
type SymbolSelector interface {
	SelectSymbols(utc time.Time, snap *Snapshot) []Symbol
}

// SubscriptionSink applies one tick's selected symbol set against current
// subscription state and returns the resulting diff.
type SubscriptionSink interface {
	Apply(utc time.Time, selected []Symbol) SubscriptionChange
}
