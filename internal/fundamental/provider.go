package fundamental

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/quantfabric/universe/internal/contracts"
	"github.com/quantfabric/universe/pkg/logger"
	"github.com/quantfabric/universe/pkg/redis"
)

// Provider implements contracts.SnapshotProvider over the store, with a
// Redis day-level cache in front. Safe for concurrent readers.
type Provider struct {
	store  *Store
	cache  *redis.Cache
	logger *logger.Logger
}

// NewProvider creates a snapshot provider.
func NewProvider(store *Store, cache *redis.Cache, log *logger.Logger) *Provider {
	return &Provider{
		store:  store,
		cache:  cache,
		logger: log,
	}
}

// SnapshotAt returns the fundamentals snapshot for the spec as of utc.
// The day boundary follows the spec's source time zone. Records come back
// ordered by symbol; symbols without fresh data for the day appear as
// sentinel records.
func (p *Provider) SnapshotAt(ctx context.Context, spec contracts.SubscriptionSpec, utc time.Time) (*contracts.Snapshot, error) {
	day, err := sourceDay(spec, utc)
	if err != nil {
		return nil, err
	}

	key := redis.SnapshotKey(spec.DataType, day.Format("2006-01-02"))

	var records []contracts.Fundamental
	found, err := p.cache.Get(ctx, key, &records)
	if err != nil {
		p.logger.WithError(err).Warn("Snapshot cache read failed")
	}

	if !found {
		records, err = p.store.RecordsAsOf(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("load snapshot records: %w", err)
		}

		if err := p.cache.Set(ctx, key, records, redis.TTLDaily); err != nil {
			p.logger.WithError(err).Warn("Snapshot cache write failed")
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Symbol.ID != records[j].Symbol.ID {
			return records[i].Symbol.ID < records[j].Symbol.ID
		}
		return records[i].Symbol.Market < records[j].Symbol.Market
	})

	p.logger.WithFields(map[string]interface{}{
		"day":     day.Format("2006-01-02"),
		"records": len(records),
		"cached":  found,
	}).Debug("Snapshot materialized")

	return contracts.NewSnapshot(utc, records), nil
}

// sourceDay converts a UTC instant into the spec's source-zone day.
func sourceDay(spec contracts.SubscriptionSpec, utc time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(spec.SourceTimeZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load source time zone: %w", err)
	}

	local := utc.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC), nil
}
