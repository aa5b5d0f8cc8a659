package jobs

import (
	"context"
	"fmt"

	"github.com/rmaia/fiicompass/internal/analysis"
	"github.com/rmaia/fiicompass/internal/snapshot"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// MetricsRefreshJob runs a full analysis pass on schedule, keeping the
// cache and history warm, and exports the result to the snapshot file so
// the offline source always has fresh data.
type MetricsRefreshJob struct {
	service  *analysis.Service
	snapshot *snapshot.Store
	logger   *logger.Logger
}

// NewMetricsRefreshJob creates a new refresh job. snapshotStore may be nil
// when no snapshot export is wanted.
func NewMetricsRefreshJob(service *analysis.Service, snapshotStore *snapshot.Store, log *logger.Logger) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		service:  service,
		snapshot: snapshotStore,
		logger:   log,
	}
}

// Name returns the job name.
func (j *MetricsRefreshJob) Name() string {
	return "metrics_refresh"
}

// Schedule runs every 15 minutes, matching the metrics cache TTL.
func (j *MetricsRefreshJob) Schedule() string {
	return "0 */15 * * * *"
}

// Run executes one analysis pass and exports the snapshot.
func (j *MetricsRefreshJob) Run(ctx context.Context) error {
	report, err := j.service.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis pass: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"funds":  len(report.Entries),
		"failed": len(report.Failed),
		"rate":   report.ReferenceRate,
	}).Info("Scheduled refresh completed")

	if j.snapshot == nil {
		return nil
	}

	funds := report.Funds()
	if err := j.snapshot.Save(funds, report.GeneratedAt); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"path":  j.snapshot.Path(),
		"funds": len(funds),
	}).Debug("Snapshot exported")

	return nil
}
