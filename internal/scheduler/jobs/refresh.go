// Package jobs defines the scheduled jobs driving the universe service:
// the daily fundamentals refresh and the selection tick that follows it.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/quantfabric/universe/internal/fundamental"
	"github.com/quantfabric/universe/pkg/logger"
)

// RefreshJob pulls the fundamentals reference table and upserts it into
// the store. Scheduled before the selection tick so each day's selection
// sees fresh data.
type RefreshJob struct {
	source *fundamental.Source
	store  *fundamental.Store
	logger *logger.Logger
}

// NewRefreshJob creates the fundamentals refresh job.
func NewRefreshJob(source *fundamental.Source, store *fundamental.Store, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		source: source,
		store:  store,
		logger: log,
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string {
	return "fundamentals_refresh"
}

// Schedule returns the cron schedule (5:30 PM daily, with seconds).
func (j *RefreshJob) Schedule() string {
	return "0 30 17 * * *"
}

// Run fetches fundamentals for today and persists them.
func (j *RefreshJob) Run(ctx context.Context) error {
	day := time.Now().UTC().Truncate(24 * time.Hour)

	j.logger.WithField("day", day.Format("2006-01-02")).Info("Refreshing fundamentals")

	records, err := j.source.FetchAll(ctx, day)
	if err != nil {
		return fmt.Errorf("fetch fundamentals: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("fundamentals source returned no records")
	}

	if err := j.store.UpsertBatch(ctx, records); err != nil {
		return fmt.Errorf("store fundamentals: %w", err)
	}

	j.logger.WithField("count", len(records)).Info("Fundamentals refreshed")
	return nil
}
