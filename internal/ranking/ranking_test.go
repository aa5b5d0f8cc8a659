package ranking

import (
	"testing"

	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/scoring"
)

func scored(ticker string, final int) ScoredFund {
	return ScoredFund{
		Fund: fund.Fund{Ticker: ticker, Category: fund.CategoryBrick},
		Scores: scoring.Scores{
			Final: final,
			Mode:  scoring.ModeTwoFactor,
		},
	}
}

func TestRankOrdering(t *testing.T) {
	entries := Rank([]ScoredFund{
		scored("HGLG11", 7),
		scored("MXRF11", 0),
		scored("XPLG11", 8),
		scored("KNCR11", 4),
	})

	wantOrder := []string{"XPLG11", "HGLG11", "KNCR11", "MXRF11"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("Rank() returned %d entries, want %d", len(entries), len(wantOrder))
	}
	for i, want := range wantOrder {
		if entries[i].Ticker != want {
			t.Errorf("Rank()[%d] = %s, want %s", i, entries[i].Ticker, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("Rank()[%d].Rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestRankTieBreak(t *testing.T) {
	// Equal scores order by ticker so a pass over the same data is
	// deterministic regardless of fetch order
	entries := Rank([]ScoredFund{
		scored("XPML11", 6),
		scored("BTLG11", 6),
		scored("HGRU11", 6),
	})

	wantOrder := []string{"BTLG11", "HGRU11", "XPML11"}
	for i, want := range wantOrder {
		if entries[i].Ticker != want {
			t.Errorf("Rank()[%d] = %s, want %s", i, entries[i].Ticker, want)
		}
	}
}

func TestRankTopPick(t *testing.T) {
	tests := []struct {
		name     string
		topScore int
		want     Recommendation
	}{
		{"clears threshold", 8, RecommendationTopPick},
		{"exactly at threshold", TopPickThreshold, RecommendationTopPick},
		{"below threshold", 3, RecommendationNone},
		{"all zero", 0, RecommendationNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Rank([]ScoredFund{
				scored("HGLG11", tt.topScore),
				scored("MXRF11", 0),
			})

			if entries[0].Recommendation != tt.want {
				t.Errorf("Rank()[0].Recommendation = %s, want %s", entries[0].Recommendation, tt.want)
			}
			if entries[1].Recommendation != "" {
				t.Errorf("Rank()[1].Recommendation = %s, want empty", entries[1].Recommendation)
			}
		})
	}
}

// A fund that never produced metrics can never become the monthly pick,
// even if its zero score somehow tops an all-zero table.
func TestRankNoDataNeverTopPick(t *testing.T) {
	noData := ScoredFund{
		Fund:   fund.Fund{Ticker: "TORD11", Category: fund.CategoryPaper},
		Scores: scoring.Scores{Mode: scoring.ModeNone, Final: 0},
	}

	entries := Rank([]ScoredFund{noData})
	if entries[0].Recommendation != RecommendationNone {
		t.Errorf("Rank()[0].Recommendation = %s, want %s", entries[0].Recommendation, RecommendationNone)
	}
}

func TestRankYieldOnlyCanBeTopPick(t *testing.T) {
	yieldOnly := ScoredFund{
		Fund:   fund.Fund{Ticker: "MXRF11", Category: fund.CategoryPaper},
		Scores: scoring.Scores{Mode: scoring.ModeYieldOnly, YieldScore: 5, Final: 5},
	}

	entries := Rank([]ScoredFund{yieldOnly})
	if entries[0].Recommendation != RecommendationTopPick {
		t.Errorf("Rank()[0].Recommendation = %s, want %s", entries[0].Recommendation, RecommendationTopPick)
	}
}

func TestRankEmpty(t *testing.T) {
	entries := Rank(nil)
	if len(entries) != 0 {
		t.Errorf("Rank(nil) returned %d entries, want 0", len(entries))
	}
}
