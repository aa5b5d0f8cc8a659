package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmaia/fiicompass/internal/snapshot"
	"github.com/rmaia/fiicompass/internal/source"
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check every wired dependency",
	Long: `Checks each dependency the dashboard relies on and reports its state:
configuration, database, redis, the reference rate chain and the
snapshot file.

Example:
  go run ./cmd/compass status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := buildDeps("")
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	PrintHeader("FII Compass Status")

	PrintKeyValue("Environment", d.cfg.Env, 13)
	PrintKeyValue("Source", d.col.Source(), 13)
	PrintKeyValue("Universe", fmt.Sprintf("%d funds", len(d.universe)), 13)
	PrintSeparator()

	if d.db != nil {
		if err := d.db.Ping(ctx); err != nil {
			PrintError(fmt.Sprintf("Database: %v", err))
		} else {
			PrintSuccess("Database: connected")
		}
	} else {
		PrintInfo("Database: not configured (history disabled)")
	}

	if d.rds.Enabled() {
		if err := d.rds.Redis().Ping(ctx).Err(); err != nil {
			PrintError(fmt.Sprintf("Redis: %v", err))
		} else {
			PrintSuccess("Redis: connected")
		}
	} else {
		PrintInfo("Redis: disabled (caching off)")
	}

	rate, src := d.rates.Resolve(ctx)
	if src == source.FallbackRateName {
		PrintWarning(fmt.Sprintf("Reference rate: %.2f%% (built-in fallback, all sources down)", rate))
	} else {
		PrintSuccess(fmt.Sprintf("Reference rate: %.2f%% via %s", rate, src))
	}

	funds, err := d.snapshot.Load()
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		PrintInfo(fmt.Sprintf("Snapshot: none yet (%s)", d.snapshot.Path()))
	case err != nil:
		PrintError(fmt.Sprintf("Snapshot: %v", err))
	default:
		PrintSuccess(fmt.Sprintf("Snapshot: %d funds in %s", len(funds), d.snapshot.Path()))
	}

	return nil
}
