// Package collector orchestrates metric acquisition for the whole
// universe. One source strategy per collector; per-ticker failures are
// logged and skipped, only a pass that produces nothing at all is an
// error.
package collector

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/source"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// ErrNoData signals a total acquisition failure: every ticker failed (or
// the snapshot is absent). Distinct from an empty universe or a filtered
// result.
var ErrNoData = errors.New("no fund data collected")

// Collector fetches metrics for a universe through one source strategy.
type Collector struct {
	src     source.MetricSource
	limiter *rate.Limiter
	logger  *logger.Logger
}

// New creates a collector. interval paces per-ticker requests; zero
// disables pacing (batch sources never pace).
func New(src source.MetricSource, interval time.Duration, log *logger.Logger) *Collector {
	var limiter *rate.Limiter
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return &Collector{
		src:     src,
		limiter: limiter,
		logger:  log.WithField("module", "collector"),
	}
}

// Source returns the name of the wired strategy.
func (c *Collector) Source() string {
	return c.src.Name()
}

// Result is the outcome of one collection pass.
type Result struct {
	Funds       []fund.Fund
	Failed      []string // tickers that produced no metrics
	Source      string
	CollectedAt time.Time
	Duration    time.Duration
}

// Collect fetches metrics for every fund in the universe. Category and
// ticker come from the universe; only metrics come from the source.
// Returns ErrNoData (possibly wrapped) when nothing was collected.
func (c *Collector) Collect(ctx context.Context, universe []fund.Fund) (*Result, error) {
	start := time.Now()

	result := &Result{
		Source:      c.src.Name(),
		CollectedAt: start,
	}

	c.logger.WithFields(map[string]interface{}{
		"source":  c.src.Name(),
		"tickers": len(universe),
	}).Info("Starting collection pass")

	if batch, ok := c.src.(source.BatchMetricSource); ok {
		if err := c.collectBatch(ctx, batch, universe, result); err != nil {
			return nil, err
		}
	} else {
		if err := c.collectSequential(ctx, universe, result); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)

	if len(result.Funds) == 0 {
		c.logger.WithField("source", c.src.Name()).Error("Collection pass produced no data")
		return nil, ErrNoData
	}

	c.logger.WithFields(map[string]interface{}{
		"source":   c.src.Name(),
		"success":  len(result.Funds),
		"failed":   len(result.Failed),
		"duration": result.Duration,
	}).Info("Collection pass completed")

	return result, nil
}

func (c *Collector) collectSequential(ctx context.Context, universe []fund.Fund, result *Result) error {
	for _, fd := range universe {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		metrics, err := c.src.FetchMetrics(ctx, fd.Ticker)
		if err != nil {
			// Context cancellation aborts the pass; anything else is a
			// per-ticker failure and the pass continues
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.WithFields(map[string]interface{}{
				"ticker": fd.Ticker,
				"error":  err.Error(),
			}).Warn("Ticker fetch failed, skipping")
			result.Failed = append(result.Failed, fd.Ticker)
			continue
		}

		fd.Metrics = *metrics
		result.Funds = append(result.Funds, fd)
	}
	return nil
}

func (c *Collector) collectBatch(ctx context.Context, src source.BatchMetricSource, universe []fund.Fund, result *Result) error {
	tickers := make([]string, 0, len(universe))
	for _, fd := range universe {
		tickers = append(tickers, fd.Ticker)
	}

	batch, err := src.FetchBatch(ctx, tickers)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.WithFields(map[string]interface{}{
			"source": src.Name(),
			"error":  err.Error(),
		}).Error("Batch fetch failed")
		// Wholesale failure: every ticker failed
		for _, fd := range universe {
			result.Failed = append(result.Failed, fd.Ticker)
		}
		return nil
	}

	for _, fd := range universe {
		metrics, ok := batch[fd.Ticker]
		if !ok {
			result.Failed = append(result.Failed, fd.Ticker)
			continue
		}
		fd.Metrics = *metrics
		result.Funds = append(result.Funds, fd)
	}
	return nil
}
