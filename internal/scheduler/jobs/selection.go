package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/quantfabric/universe/internal/contracts"
	"github.com/quantfabric/universe/internal/universe"
	"github.com/quantfabric/universe/pkg/logger"
)

// SelectionJob runs one universe selection tick: materialize the
// snapshot, evaluate the rule, hand the result to the subscription sink.
// One job instance owns one Universe; evaluations are serialized by the
// scheduler, as the engine requires.
type SelectionJob struct {
	uni      *universe.Universe
	provider contracts.SnapshotProvider
	sink     contracts.SubscriptionSink
	logger   *logger.Logger
}

// NewSelectionJob creates the selection tick job.
func NewSelectionJob(uni *universe.Universe, provider contracts.SnapshotProvider, sink contracts.SubscriptionSink, log *logger.Logger) *SelectionJob {
	return &SelectionJob{
		uni:      uni,
		provider: provider,
		sink:     sink,
		logger:   log,
	}
}

// Name returns the job name.
func (j *SelectionJob) Name() string {
	return "universe_selection"
}

// Schedule returns the cron schedule (6 PM daily, after the refresh).
func (j *SelectionJob) Schedule() string {
	return "0 0 18 * * *"
}

// Run executes one selection tick. Provider errors are returned for the
// scheduler to retry; a panic inside the selection rule is deliberately
// left unrecovered.
func (j *SelectionJob) Run(ctx context.Context) error {
	now := time.Now().UTC()

	snap, err := j.provider.SnapshotAt(ctx, j.uni.Spec(), now)
	if err != nil {
		return fmt.Errorf("materialize snapshot: %w", err)
	}

	selected := j.uni.SelectSymbols(now, snap)
	change := j.sink.Apply(now, selected)

	j.logger.WithFields(map[string]interface{}{
		"records":  snap.Len(),
		"selected": len(selected),
		"added":    len(change.Added),
		"removed":  len(change.Removed),
	}).Info("Universe selection tick completed")

	return nil
}
