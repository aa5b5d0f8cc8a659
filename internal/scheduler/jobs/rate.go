package jobs

import (
	"context"
	"time"

	"github.com/rmaia/fiicompass/internal/analysis"
	"github.com/rmaia/fiicompass/internal/store"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// RateRefreshJob re-resolves the reference rate on its own, slower cadence
// and stores the observation. SELIC moves on Copom meetings, not minutes.
type RateRefreshJob struct {
	service *analysis.Service
	repo    *store.Repository // nil when no database is configured
	logger  *logger.Logger
}

// NewRateRefreshJob creates a new rate refresh job.
func NewRateRefreshJob(service *analysis.Service, repo *store.Repository, log *logger.Logger) *RateRefreshJob {
	return &RateRefreshJob{
		service: service,
		repo:    repo,
		logger:  log,
	}
}

// Name returns the job name.
func (j *RateRefreshJob) Name() string {
	return "rate_refresh"
}

// Schedule runs hourly.
func (j *RateRefreshJob) Schedule() string {
	return "0 0 * * * *"
}

// Run resolves the rate and records it.
func (j *RateRefreshJob) Run(ctx context.Context) error {
	rate, src := j.service.ReferenceRate(ctx)

	j.logger.WithFields(map[string]interface{}{
		"rate":   rate,
		"source": src,
	}).Info("Reference rate refreshed")

	if j.repo == nil {
		return nil
	}

	if prev, err := j.repo.LatestReferenceRate(ctx); err == nil && prev != nil && *prev != rate {
		j.logger.WithFields(map[string]interface{}{
			"from": *prev,
			"to":   rate,
		}).Info("Reference rate changed")
	}

	return j.repo.SaveReferenceRate(ctx, rate, src, time.Now())
}
