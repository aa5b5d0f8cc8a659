package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmaia/fiicompass/internal/ranking"
	"github.com/rmaia/fiicompass/internal/scoring"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [source]",
	Short: "Run a full pass and print the ranked table",
	Long: `Resolves the SELIC reference rate, collects metrics, scores every
fund against the rate and prints the ranked table. The top row carries
the monthly recommendation when its score clears the bar.

Example:
  go run ./cmd/compass analyze
  go run ./cmd/compass analyze snapshot`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var analyzeTimeout time.Duration

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 3*time.Minute, "Overall pass timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	sourceOverride := ""
	if len(args) > 0 {
		sourceOverride = args[0]
	}

	d, err := buildDeps(sourceOverride)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	report, err := d.service.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	PrintHeader("FII Compass")
	PrintKeyValue("Generated", report.GeneratedAt.Format("2006-01-02 15:04:05"), 14)
	PrintKeyValue("SELIC", fmt.Sprintf("%.2f%% (%s)", report.ReferenceRate, report.RateSource), 14)
	PrintKeyValue("Source", report.MetricSource, 14)
	PrintSeparator()
	fmt.Println()

	printRankingTable(report.Entries)

	if len(report.Entries) > 0 {
		fmt.Println()
		top := report.Entries[0]
		switch top.Recommendation {
		case ranking.RecommendationTopPick:
			PrintSuccess(fmt.Sprintf("🏆 Aporte do Mês: %s (score %d)", top.Ticker, top.Scores.Final))
		default:
			PrintWarning("Nenhuma Oportunidade Clara este mês")
		}
	}

	if len(report.Failed) > 0 {
		fmt.Println()
		PrintWarning(fmt.Sprintf("%d funds unavailable:", len(report.Failed)))
		PrintList(report.Failed)
	}

	return nil
}

func printRankingTable(entries []ranking.Entry) {
	columns := []string{"#", "Ticker", "Category", "Price", "P/VP", "Yield", "Score", "Mode"}
	widths := []int{3, 8, 16, 9, 6, 7, 5, 11}

	PrintTableHeader(columns, widths)
	for _, e := range entries {
		pvp := "-"
		if e.Scores.PriceToBook > 0 {
			pvp = fmt.Sprintf("%.2f", e.Scores.PriceToBook)
		}
		mode := string(e.Scores.Mode)
		if e.Scores.Mode == scoring.ModeNone {
			mode = "no data"
		}
		PrintTableRow([]string{
			strconv.Itoa(e.Rank),
			e.Ticker,
			e.Category.Label(),
			formatOptional(e.Metrics.Price, e.Metrics.HasPrice, "R$ %.2f"),
			pvp,
			formatOptional(e.Metrics.DividendYield, e.Metrics.HasYield, "%.2f%%"),
			strconv.Itoa(e.Scores.Final),
			mode,
		}, widths)
	}
}
