// Package scoring turns raw fund metrics into an attractiveness score
// relative to the SELIC reference rate. Score is a pure function: same
// inputs, same output, no I/O, no errors for any finite numeric input.
package scoring

import "github.com/rmaia/fiicompass/internal/fund"

// Mode records which rule set produced the scores.
type Mode string

const (
	// ModeTwoFactor is the primary algorithm: price-to-book plus yield,
	// weighted by category. Used whenever price and book value are both
	// available.
	ModeTwoFactor Mode = "two_factor"

	// ModeYieldOnly is the degraded single-metric variant used when only
	// the dividend yield is available. Category-independent.
	ModeYieldOnly Mode = "yield_only"

	// ModeNone means no scored metric was available.
	ModeNone Mode = "none"
)

// Scores holds the derived values for one fund.
type Scores struct {
	// PriceToBook is price / book value, or 0 when unavailable.
	// The 0 sentinel never qualifies for any score band.
	PriceToBook float64 `json:"price_to_book"`

	PriceToBookScore int  `json:"price_to_book_score"`
	YieldScore       int  `json:"yield_score"`
	Final            int  `json:"final_score"`
	Mode             Mode `json:"mode"`
}

// Score computes the scores for one fund against the reference rate.
// referenceRate is a decimal percentage (10.5 means 10.5%); negative
// values are legal input.
func Score(category fund.Category, m fund.Metrics, referenceRate float64) Scores {
	if m.HasPrice && m.HasBookValue {
		return scoreTwoFactor(category, m, referenceRate)
	}
	if m.HasYield {
		return scoreYieldOnly(m.DividendYield, referenceRate)
	}
	return Scores{Mode: ModeNone}
}

func scoreTwoFactor(category fund.Category, m fund.Metrics, rate float64) Scores {
	s := Scores{Mode: ModeTwoFactor}

	if m.BookValue > 0 {
		s.PriceToBook = m.Price / m.BookValue
	}

	s.PriceToBookScore = priceToBookScore(category, s.PriceToBook)
	if m.HasYield {
		s.YieldScore = yieldScore(category, m.DividendYield, rate)
	}

	switch category {
	case fund.CategoryBrick:
		// Physical assets: valuation discount matters more than yield
		s.Final = s.PriceToBookScore*2 + s.YieldScore
	case fund.CategoryPaper:
		// Credit paper: yield is the product, valuation is secondary
		s.Final = s.PriceToBookScore + s.YieldScore*2
	default:
		// No rule defined for this category
		s.Final = 0
	}

	return s
}

// priceToBookScore applies the category band table. First matching band
// wins. The ratio > 0 guard keeps the "unavailable" sentinel out of the
// top band.
func priceToBookScore(category fund.Category, ratio float64) int {
	if ratio <= 0 {
		return 0
	}

	switch category {
	case fund.CategoryBrick:
		switch {
		case ratio < 0.98:
			return 3
		case ratio < 1.02:
			return 2
		case ratio < 1.05:
			return 1
		}
	case fund.CategoryPaper:
		switch {
		case ratio < 1.01:
			return 3
		case ratio < 1.04:
			return 2
		case ratio < 1.06:
			return 1
		}
	}
	return 0
}

// yieldScore compares the trailing yield against the reference rate,
// with per-category spreads.
func yieldScore(category fund.Category, yield, rate float64) int {
	switch category {
	case fund.CategoryBrick:
		switch {
		case yield > rate+2.0:
			return 3
		case yield > rate:
			return 2
		case yield >= rate-2.0:
			return 1
		}
	case fund.CategoryPaper:
		switch {
		case yield > rate+3.0:
			return 3
		case yield > rate+1.5:
			return 2
		case yield > rate:
			return 1
		}
	}
	return 0
}

// scoreYieldOnly is the degraded mode: five bands on the distance between
// yield and the reference rate, no category dependence.
func scoreYieldOnly(yield, rate float64) Scores {
	diff := yield - rate

	var band int
	switch {
	case diff > 2.0:
		band = 5
	case diff > 0:
		band = 4
	case diff >= -2.0:
		band = 3
	case diff >= -4.0:
		band = 2
	default:
		band = 1
	}

	return Scores{
		YieldScore: band,
		Final:      band,
		Mode:       ModeYieldOnly,
	}
}
