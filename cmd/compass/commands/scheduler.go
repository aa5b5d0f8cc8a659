package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rmaia/fiicompass/internal/scheduler"
	"github.com/rmaia/fiicompass/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the periodic refresh jobs",
	Long: `Runs the background refresh jobs on their cron schedules until
interrupted.

Jobs:
  metrics_refresh  - every 15 minutes: full pass + snapshot
  rate_refresh     - hourly: SELIC reference rate
  maintenance      - daily 03:30: prune metric history (needs database)

Example:
  go run ./cmd/compass scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	d, err := buildDeps("")
	if err != nil {
		return err
	}
	defer d.close()

	sched := scheduler.New(d.log)

	if err := sched.AddJob(jobs.NewMetricsRefreshJob(d.service, d.snapshot, d.log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewRateRefreshJob(d.service, d.repo, d.log)); err != nil {
		return err
	}
	if d.repo != nil {
		if err := sched.AddJob(jobs.NewMaintenanceJob(d.repo, d.cfg.Database.Retention, d.log)); err != nil {
			return err
		}
	} else {
		d.log.Warn("No database configured, maintenance job disabled")
	}

	sched.Start()

	// First pass right away, so the dashboard has data before the first tick
	if err := sched.RunJob("metrics_refresh"); err != nil {
		d.log.WithError(err).Warn("Failed to trigger initial refresh")
	}

	PrintHeader("Scheduler")
	PrintKeyValue("Source", d.col.Source(), 8)
	PrintList(sched.GetAllJobs())
	PrintSeparator()
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	d.log.Info("Scheduler stopped")
	return nil
}
