// Package ranking orders scored funds and applies the recommendation rule.
package ranking

import (
	"sort"

	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/scoring"
)

// Recommendation labels the top-ranked row. Only the first row ever
// carries a label.
type Recommendation string

const (
	RecommendationTopPick Recommendation = "top_pick"
	RecommendationNone    Recommendation = "no_clear_opportunity"
)

// TopPickThreshold is the minimum final score for a top pick. Below it
// the month has no clear opportunity and nothing is recommended.
const TopPickThreshold = 4

// Entry is one row of the ranked table.
type Entry struct {
	Rank           int            `json:"rank"`
	Ticker         string         `json:"ticker"`
	Category       fund.Category  `json:"category"`
	Metrics        fund.Metrics   `json:"metrics"`
	Scores         scoring.Scores `json:"scores"`
	Recommendation Recommendation `json:"recommendation,omitempty"`
}

// ScoredFund pairs a fund with its computed scores.
type ScoredFund struct {
	Fund   fund.Fund
	Scores scoring.Scores
}

// Rank sorts descending by final score and assigns positions.
// Ties break by ticker ascending, so a pass over the same data always
// produces the same table regardless of fetch order.
func Rank(scored []ScoredFund) []Entry {
	entries := make([]Entry, 0, len(scored))
	for _, s := range scored {
		entries = append(entries, Entry{
			Ticker:   s.Fund.Ticker,
			Category: s.Fund.Category,
			Metrics:  s.Fund.Metrics,
			Scores:   s.Scores,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Scores.Final != entries[j].Scores.Final {
			return entries[i].Scores.Final > entries[j].Scores.Final
		}
		return entries[i].Ticker < entries[j].Ticker
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if len(entries) > 0 {
		top := &entries[0]
		if top.Scores.Final >= TopPickThreshold && top.Scores.Mode != scoring.ModeNone {
			top.Recommendation = RecommendationTopPick
		} else {
			top.Recommendation = RecommendationNone
		}
	}

	return entries
}
