// Package source defines the acquisition interfaces the rest of the system
// depends on. Concrete strategies (scrapers, APIs, file snapshot) live in
// subpackages and are selected by configuration, not by parallel programs.
package source

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rmaia/fiicompass/internal/fund"
)

// ErrUnavailable signals that a source could not produce metrics for one
// ticker. The collector logs it, skips the ticker and continues.
var ErrUnavailable = errors.New("metrics unavailable")

// MetricSource fetches metrics for a single ticker. A failure for one
// ticker must not affect others.
type MetricSource interface {
	// Name identifies the strategy ("statusinvest", "yahoo", ...).
	Name() string

	// FetchMetrics returns the metrics for ticker, or ErrUnavailable
	// (possibly wrapped) when the source has nothing usable.
	FetchMetrics(ctx context.Context, ticker string) (*fund.Metrics, error)
}

// BatchMetricSource is implemented by sources that can resolve the whole
// universe in one request.
type BatchMetricSource interface {
	MetricSource

	// FetchBatch returns metrics keyed by ticker. Missing tickers are
	// simply absent from the map.
	FetchBatch(ctx context.Context, tickers []string) (map[string]*fund.Metrics, error)
}

// RateSource fetches the benchmark reference rate (decimal percentage).
type RateSource interface {
	Name() string
	FetchRate(ctx context.Context) (float64, error)
}

// ParseBRNumber parses a Brazilian-formatted decimal ("1.234,56") into a
// float64. It tolerates currency and percent decorations ("R$ 98,50",
// "8,71%"). Returns (0, false) when nothing numeric remains.
func ParseBRNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)

	// Thousand separators out, decimal comma in
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	if s == "" || s == "-" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
