package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rmaia/fiicompass/internal/store"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// MaintenanceJob prunes history beyond the retention window.
type MaintenanceJob struct {
	repo      *store.Repository
	retention time.Duration
	logger    *logger.Logger
}

// NewMaintenanceJob creates a new maintenance job.
func NewMaintenanceJob(repo *store.Repository, retention time.Duration, log *logger.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		repo:      repo,
		retention: retention,
		logger:    log,
	}
}

// Name returns the job name.
func (j *MaintenanceJob) Name() string {
	return "maintenance"
}

// Schedule runs daily, off-hours for B3.
func (j *MaintenanceJob) Schedule() string {
	return "0 30 3 * * *"
}

// Run prunes old history rows.
func (j *MaintenanceJob) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-j.retention)

	removed, err := j.repo.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"cutoff":  cutoff.Format("2006-01-02"),
		"removed": removed,
	}).Info("History pruned")

	return nil
}
