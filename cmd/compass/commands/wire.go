package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rmaia/fiicompass/internal/analysis"
	"github.com/rmaia/fiicompass/internal/collector"
	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/snapshot"
	"github.com/rmaia/fiicompass/internal/source"
	"github.com/rmaia/fiicompass/internal/source/bcb"
	"github.com/rmaia/fiicompass/internal/source/fundsexplorer"
	"github.com/rmaia/fiicompass/internal/source/statusinvest"
	"github.com/rmaia/fiicompass/internal/source/yahoo"
	"github.com/rmaia/fiicompass/internal/store"
	"github.com/rmaia/fiicompass/pkg/config"
	"github.com/rmaia/fiicompass/pkg/database"
	"github.com/rmaia/fiicompass/pkg/httputil"
	"github.com/rmaia/fiicompass/pkg/logger"
	"github.com/rmaia/fiicompass/pkg/redis"
)

// deps bundles everything a command needs. Build once per process.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB      // nil without DATABASE_URL
	repo     *store.Repository // nil without DATABASE_URL
	rds      *redis.Client
	snapshot *snapshot.Store
	universe []fund.Fund
	col      *collector.Collector
	rates    *source.RateResolver
	service  *analysis.Service
}

// buildDeps loads config and wires the full pipeline. sourceOverride, when
// non-empty, replaces the configured metric source for this process.
func buildDeps(sourceOverride string) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if sourceOverride != "" {
		cfg.Collector.Source = sourceOverride
	}

	log := logger.New(cfg)
	if verbose {
		cfg.LogLevel = "debug"
		log = logger.New(cfg)
	}

	d := &deps{cfg: cfg, log: log}

	// Redis is optional: a dead cache never blocks a pass
	d.rds, err = redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, caching disabled")
		disabled := *cfg
		disabled.Redis.Enabled = false
		d.rds, _ = redis.New(&disabled)
	}

	// Database is optional: history endpoints degrade without it
	if cfg.Database.URL != "" {
		d.db, err = database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.repo = store.NewRepository(d.db.Pool)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := d.repo.EnsureSchema(ctx); err != nil {
			d.db.Close()
			return nil, err
		}
	}

	httpClient := httputil.New(cfg, log)
	if d.rds.Enabled() {
		limiter := redis.NewRateLimiter(d.rds, "compass")
		httpClient = httpClient.WithRateLimiter(limiter, redis.RateLimitConfig{
			Key:    "sources",
			Limit:  120,
			Window: time.Minute,
		})
	}

	d.snapshot = snapshot.NewStore(cfg.Collector.SnapshotPath)

	statusInvest := statusinvest.NewClient(httpClient, log, cfg.StatusInvest.BaseURL)

	var metricSource source.MetricSource
	switch cfg.Collector.Source {
	case "statusinvest":
		metricSource = statusInvest
	case "fundsexplorer":
		metricSource = fundsexplorer.NewClient(httpClient, log, cfg.FundsExplorer.BaseURL)
	case "yahoo":
		metricSource = yahoo.NewClient(httpClient, log, cfg.Yahoo.BaseURL)
	case "snapshot":
		metricSource = snapshot.NewSource(d.snapshot)
	default:
		return nil, fmt.Errorf("unknown metrics source: %s", cfg.Collector.Source)
	}

	d.universe, err = fund.LoadUniverse(cfg.Collector.UniverseFile)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}

	d.col = collector.New(metricSource, cfg.Collector.RequestInterval, log)

	d.rates = source.NewRateResolver(log,
		bcb.NewClient(httpClient, log, cfg.BCB.BaseURL),
		statusinvest.NewRateSource(statusInvest),
	)

	var cache *redis.Cache
	if d.rds.Enabled() {
		cache = redis.NewCache(d.rds, "compass")
	}

	d.service = analysis.New(d.col, d.rates, d.universe, d.repo, cache, log)

	return d, nil
}

// close releases connections.
func (d *deps) close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.rds != nil {
		_ = d.rds.Close()
	}
}
