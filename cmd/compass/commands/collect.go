package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// collectCmd represents the collect command.
var collectCmd = &cobra.Command{
	Use:   "collect [source]",
	Short: "Run one collection pass and write the snapshot",
	Long: `Fetches metrics for every fund in the universe from the given source
(default: the configured METRICS_SOURCE) and writes the result to the
snapshot file. Funds the source cannot serve are skipped and listed.

Sources:
  statusinvest   - StatusInvest pages (full metrics)
  fundsexplorer  - Funds Explorer pages (price and yield only)
  yahoo          - Yahoo Finance quote API (batch)
  snapshot       - local snapshot file

Example:
  go run ./cmd/compass collect
  go run ./cmd/compass collect yahoo
  go run ./cmd/compass collect --timeout 5m`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCollect,
}

var collectTimeout time.Duration

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().DurationVar(&collectTimeout, "timeout", 3*time.Minute, "Overall pass timeout")
}

func runCollect(cmd *cobra.Command, args []string) error {
	sourceOverride := ""
	if len(args) > 0 {
		sourceOverride = args[0]
	}

	d, err := buildDeps(sourceOverride)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	PrintHeader("Collection Pass")
	PrintKeyValue("Source", d.col.Source(), 10)
	PrintKeyValue("Universe", fmt.Sprintf("%d funds", len(d.universe)), 10)
	PrintSeparator()

	start := time.Now()
	result, err := d.col.Collect(ctx, d.universe)
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	if err := d.snapshot.Save(result.Funds, result.CollectedAt); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Collected %d/%d funds in %.1fs",
		len(result.Funds), len(d.universe), time.Since(start).Seconds()))
	PrintInfo(fmt.Sprintf("Snapshot written to %s", d.snapshot.Path()))

	if len(result.Failed) > 0 {
		PrintWarning(fmt.Sprintf("%d funds unavailable from %s:", len(result.Failed), result.Source))
		PrintList(result.Failed)
	}

	return nil
}
