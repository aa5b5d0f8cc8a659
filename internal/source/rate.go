package source

import (
	"context"

	"github.com/rmaia/fiicompass/pkg/logger"
)

// FallbackRate is the fixed reference rate used when every source fails.
const FallbackRate = 10.5

// FallbackRateName identifies the fallback in reports and logs.
const FallbackRateName = "default"

// RateResolver tries rate sources in order and falls back to the fixed
// default. Resolve never fails: a missing reference rate degrades the
// analysis, it does not abort it.
type RateResolver struct {
	sources []RateSource
	logger  *logger.Logger
}

// NewRateResolver creates a resolver over the given sources, in priority
// order.
func NewRateResolver(log *logger.Logger, sources ...RateSource) *RateResolver {
	return &RateResolver{
		sources: sources,
		logger:  log,
	}
}

// Resolve returns the first rate a source produces, plus the source name.
func (r *RateResolver) Resolve(ctx context.Context) (float64, string) {
	for _, src := range r.sources {
		rate, err := src.FetchRate(ctx)
		if err != nil {
			r.logger.WithFields(map[string]interface{}{
				"source": src.Name(),
				"error":  err.Error(),
			}).Warn("Reference rate source failed")
			continue
		}

		r.logger.WithFields(map[string]interface{}{
			"source": src.Name(),
			"rate":   rate,
		}).Debug("Reference rate resolved")
		return rate, src.Name()
	}

	r.logger.WithField("rate", FallbackRate).Warn("All reference rate sources failed, using default")
	return FallbackRate, FallbackRateName
}
