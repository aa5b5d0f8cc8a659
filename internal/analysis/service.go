// Package analysis runs one full dashboard pass: resolve the reference
// rate, collect metrics, score, rank. Records are rebuilt from scratch on
// every pass; nothing is mutated incrementally.
package analysis

import (
	"context"
	"sort"
	"time"

	"github.com/rmaia/fiicompass/internal/collector"
	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/ranking"
	"github.com/rmaia/fiicompass/internal/scoring"
	"github.com/rmaia/fiicompass/internal/source"
	"github.com/rmaia/fiicompass/internal/store"
	"github.com/rmaia/fiicompass/pkg/logger"
	"github.com/rmaia/fiicompass/pkg/redis"
)

// Report is the output of one pass: what the presentation layer consumes.
type Report struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	ReferenceRate float64         `json:"reference_rate"`
	RateSource    string          `json:"rate_source"`
	MetricSource  string          `json:"metric_source"`
	Entries       []ranking.Entry `json:"entries"`
	Failed        []string        `json:"failed_tickers,omitempty"`
}

// Funds rebuilds the plain fund list from the ranked entries, in ticker
// order. Used by the snapshot exporter, which stores metrics only.
func (r *Report) Funds() []fund.Fund {
	funds := make([]fund.Fund, 0, len(r.Entries))
	for _, e := range r.Entries {
		funds = append(funds, fund.Fund{
			Ticker:   e.Ticker,
			Category: e.Category,
			Metrics:  e.Metrics,
		})
	}
	sort.Slice(funds, func(i, j int) bool {
		return funds[i].Ticker < funds[j].Ticker
	})
	return funds
}

// Service wires the pass together. Store and cache are optional; a nil
// store skips history persistence and a disabled cache recomputes every
// call.
type Service struct {
	collector *collector.Collector
	rates     *source.RateResolver
	universe  []fund.Fund
	repo      *store.Repository
	cache     *redis.Cache
	logger    *logger.Logger

	onReport func(*Report)
}

// New creates an analysis service.
func New(
	col *collector.Collector,
	rates *source.RateResolver,
	universe []fund.Fund,
	repo *store.Repository,
	cache *redis.Cache,
	log *logger.Logger,
) *Service {
	return &Service{
		collector: col,
		rates:     rates,
		universe:  universe,
		repo:      repo,
		cache:     cache,
		logger:    log.WithField("module", "analysis"),
	}
}

// SetReportHook registers a callback invoked after every successful pass.
// The API layer uses it to push refresh events to connected dashboards.
func (s *Service) SetReportHook(fn func(*Report)) {
	s.onReport = fn
}

// Universe returns the configured watchlist.
func (s *Service) Universe() []fund.Fund {
	return s.universe
}

// cachedRate is the redis representation of a resolved reference rate.
type cachedRate struct {
	Rate   float64 `json:"rate"`
	Source string  `json:"source"`
}

// ReferenceRate resolves the current reference rate and its source,
// serving from the cache inside the rate TTL. The fixed fallback is never
// cached, so a recovered source takes effect on the next call.
func (s *Service) ReferenceRate(ctx context.Context) (float64, string) {
	if s.cache != nil {
		var c cachedRate
		if found, err := s.cache.Get(ctx, redis.ReferenceRateKey(), &c); err == nil && found {
			return c.Rate, c.Source
		}
	}

	rate, src := s.rates.Resolve(ctx)

	if s.cache != nil && src != source.FallbackRateName {
		if err := s.cache.Set(ctx, redis.ReferenceRateKey(), cachedRate{Rate: rate, Source: src}, redis.TTLRate); err != nil {
			s.logger.WithError(err).Warn("Failed to cache reference rate")
		}
	}

	return rate, src
}

// Run executes one full pass. Returns collector.ErrNoData when acquisition
// failed wholesale; partial results are a normal outcome.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	rate, rateSource := s.ReferenceRate(ctx)

	result, err := s.collector.Collect(ctx, s.universe)
	if err != nil {
		return nil, err
	}

	scored := make([]ranking.ScoredFund, 0, len(result.Funds))
	for _, fd := range result.Funds {
		scored = append(scored, ranking.ScoredFund{
			Fund:   fd,
			Scores: scoring.Score(fd.Category, fd.Metrics, rate),
		})
	}

	report := &Report{
		GeneratedAt:   result.CollectedAt,
		ReferenceRate: rate,
		RateSource:    rateSource,
		MetricSource:  result.Source,
		Entries:       ranking.Rank(scored),
		Failed:        result.Failed,
	}

	s.persist(ctx, result, rate, rateSource)

	if s.onReport != nil {
		s.onReport(report)
	}

	return report, nil
}

// RunCached serves the last report if one is newer than the metrics TTL,
// otherwise runs a fresh pass and caches it.
func (s *Service) RunCached(ctx context.Context) (*Report, error) {
	key := redis.RankingKey(s.collector.Source())

	if s.cache != nil {
		var cached Report
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	report, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, redis.TTLMetrics); err != nil {
			s.logger.WithError(err).Warn("Failed to cache report")
		}
	}

	return report, nil
}

// persist stores the pass in the history repository when one is wired.
// Persistence failure never fails the pass.
func (s *Service) persist(ctx context.Context, result *collector.Result, rate float64, rateSource string) {
	if s.repo == nil {
		return
	}

	if err := s.repo.SaveMetrics(ctx, result.CollectedAt, result.Funds); err != nil {
		s.logger.WithError(err).Warn("Failed to persist metrics history")
	}
	if err := s.repo.SaveReferenceRate(ctx, rate, rateSource, result.CollectedAt); err != nil {
		s.logger.WithError(err).Warn("Failed to persist reference rate")
	}
}
