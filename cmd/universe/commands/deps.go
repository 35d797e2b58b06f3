package commands

import (
	"fmt"
	"time"

	"github.com/quantfabric/universe/internal/contracts"
	"github.com/quantfabric/universe/internal/fundamental"
	"github.com/quantfabric/universe/internal/selection"
	"github.com/quantfabric/universe/internal/subscription"
	"github.com/quantfabric/universe/internal/universe"
	"github.com/quantfabric/universe/pkg/config"
	"github.com/quantfabric/universe/pkg/database"
	"github.com/quantfabric/universe/pkg/httputil"
	"github.com/quantfabric/universe/pkg/logger"
	"github.com/quantfabric/universe/pkg/redis"
)

// deps bundles the wired service components shared by the commands.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	rdb      *redis.Client
	store    *fundamental.Store
	provider *fundamental.Provider
	source   *fundamental.Source
	uni      *universe.Universe
	hub      *subscription.Hub
	manager  *subscription.Manager
}

// initDeps assembles the service from configuration.
func initDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
		cfg.LogFormat = "console"
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	cache := redis.NewCache(rdb, "universe")
	limiter := redis.NewRateLimiter(rdb, "universe")

	httpClient := httputil.New(log).
		WithRateLimiter(limiter, redis.SourceRateLimit)

	store := fundamental.NewStore(db.Pool)
	provider := fundamental.NewProvider(store, cache, log)
	source := fundamental.NewSource(
		httpClient,
		cfg.Source.BaseURL,
		cfg.Source.MaxPages,
		cfg.Source.RequestsPerSec,
		log,
	)

	uni, err := universe.NewFundamental(universeSettings(cfg), selectionRule(cfg))
	if err != nil {
		return nil, fmt.Errorf("construct universe: %w", err)
	}

	hub := subscription.NewHub(log)
	manager := subscription.NewManager(uni.Settings(), uni.Spec(), hub, log)

	return &deps{
		cfg:      cfg,
		log:      log,
		db:       db,
		rdb:      rdb,
		store:    store,
		provider: provider,
		source:   source,
		uni:      uni,
		hub:      hub,
		manager:  manager,
	}, nil
}

// close releases connections.
func (d *deps) close() {
	d.hub.Close()
	d.db.Close()
	_ = d.rdb.Close()
}

// selectionRule assembles the config-driven rule: liquidity and size
// floors intersected with a top-N cut by dollar volume.
func selectionRule(cfg *config.Config) universe.SelectionRule {
	return selection.Intersect(
		selection.TopNBy(contracts.FieldDollarVolume, cfg.Selection.TopN),
		selection.FieldAbove(contracts.FieldMarketCap, cfg.Selection.MinMarketCap),
		selection.FieldAbove(contracts.FieldDollarVolume, cfg.Selection.MinDollarVolume),
	)
}

// universeSettings maps config onto universe settings.
func universeSettings(cfg *config.Config) contracts.UniverseSettings {
	settings := contracts.DefaultUniverseSettings()
	settings.MinimumTimeInUniverse = time.Duration(cfg.Selection.MinTimeInUniverseDays) * 24 * time.Hour
	return settings
}
