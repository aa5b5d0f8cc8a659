package snapshot

import (
	"context"
	"fmt"

	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/source"
)

// Source adapts a Store to source.MetricSource and BatchMetricSource.
// The file is re-read on every batch, so a long-running process picks up
// snapshots written by other commands.
type Source struct {
	store *Store
}

// NewSource wraps a store as a metric source.
func NewSource(store *Store) *Source {
	return &Source{store: store}
}

// Name identifies this strategy.
func (s *Source) Name() string {
	return "snapshot"
}

func (s *Source) load() (map[string]fund.Metrics, error) {
	funds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	byTick := make(map[string]fund.Metrics, len(funds))
	for _, fd := range funds {
		byTick[fd.Ticker] = fd.Metrics
	}
	return byTick, nil
}

// FetchMetrics returns the stored metrics for ticker.
func (s *Source) FetchMetrics(ctx context.Context, ticker string) (*fund.Metrics, error) {
	byTick, err := s.load()
	if err != nil {
		return nil, err
	}

	m, ok := byTick[ticker]
	if !ok || m.Empty() {
		return nil, fmt.Errorf("%w: %s: not in snapshot", source.ErrUnavailable, ticker)
	}
	return &m, nil
}

// FetchBatch returns all stored metrics for the requested tickers in one
// file read.
func (s *Source) FetchBatch(ctx context.Context, tickers []string) (map[string]*fund.Metrics, error) {
	byTick, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make(map[string]*fund.Metrics, len(tickers))
	for _, t := range tickers {
		if m, ok := byTick[t]; ok && !m.Empty() {
			mm := m
			out[t] = &mm
		}
	}
	return out, nil
}
