package scoring

import (
	"math"
	"testing"

	"github.com/rmaia/fiicompass/internal/fund"
)

func metrics(price, bookValue, yield float64) fund.Metrics {
	m := fund.Metrics{}
	m.SetPrice(price)
	m.SetBookValue(bookValue)
	m.SetYield(yield)
	return m
}

func TestScorePriceToBook(t *testing.T) {
	tests := []struct {
		name     string
		category fund.Category
		price    float64
		book     float64
		want     int
	}{
		{"brick deep discount", fund.CategoryBrick, 97.0, 100.0, 3},
		{"brick near par", fund.CategoryBrick, 100.0, 100.0, 2},
		{"brick slight premium", fund.CategoryBrick, 103.0, 100.0, 1},
		{"brick expensive", fund.CategoryBrick, 110.0, 100.0, 0},
		{"paper at par", fund.CategoryPaper, 100.0, 100.0, 3},
		{"paper small premium", fund.CategoryPaper, 102.0, 100.0, 2},
		{"paper mid premium", fund.CategoryPaper, 105.0, 100.0, 1},
		{"paper expensive", fund.CategoryPaper, 110.0, 100.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fund.Metrics{}
			m.SetPrice(tt.price)
			m.SetBookValue(tt.book)

			got := Score(tt.category, m, 10.0)
			if got.PriceToBookScore != tt.want {
				t.Errorf("Score() PriceToBookScore = %d, want %d (ratio %.3f)",
					got.PriceToBookScore, tt.want, got.PriceToBook)
			}
			if got.Mode != ModeTwoFactor {
				t.Errorf("Score() Mode = %s, want %s", got.Mode, ModeTwoFactor)
			}
		})
	}
}

func TestScorePriceToBookDerivation(t *testing.T) {
	m := fund.Metrics{}
	m.SetPrice(95.0)
	m.SetBookValue(100.0)

	got := Score(fund.CategoryBrick, m, 10.0)
	if math.Abs(got.PriceToBook-0.95) > 1e-9 {
		t.Errorf("Score() PriceToBook = %f, want 0.95", got.PriceToBook)
	}
}

// A zero book value must not flow into the cheapest band: ratio stays 0
// and scores nothing.
func TestScoreZeroBookValue(t *testing.T) {
	m := fund.Metrics{}
	m.SetPrice(100.0)
	m.SetBookValue(0)

	got := Score(fund.CategoryBrick, m, 10.0)
	if got.PriceToBook != 0 {
		t.Errorf("Score() PriceToBook = %f, want 0", got.PriceToBook)
	}
	if got.PriceToBookScore != 0 {
		t.Errorf("Score() PriceToBookScore = %d, want 0", got.PriceToBookScore)
	}
}

func TestScoreYield(t *testing.T) {
	const rate = 10.0

	tests := []struct {
		name     string
		category fund.Category
		yield    float64
		want     int
	}{
		{"brick well above rate", fund.CategoryBrick, 13.0, 3},
		{"brick just above rate", fund.CategoryBrick, 10.5, 2},
		{"brick slightly below rate", fund.CategoryBrick, 9.0, 1},
		{"brick far below rate", fund.CategoryBrick, 5.0, 0},
		{"paper well above rate", fund.CategoryPaper, 13.5, 3},
		{"paper above spread", fund.CategoryPaper, 12.0, 2},
		{"paper just above rate", fund.CategoryPaper, 10.5, 1},
		{"paper at rate", fund.CategoryPaper, 10.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.category, metrics(100.0, 100.0, tt.yield), rate)
			if got.YieldScore != tt.want {
				t.Errorf("Score() YieldScore = %d, want %d", got.YieldScore, tt.want)
			}
		})
	}
}

func TestScoreWeighting(t *testing.T) {
	// 97/100 with yield 12 vs rate 10 produces sub-scores 3 and 2 in
	// both categories. Brick weights valuation double, paper weights
	// yield double.
	brick := Score(fund.CategoryBrick, metrics(97.0, 100.0, 12.0), 10.0)
	if brick.PriceToBookScore != 3 || brick.YieldScore != 2 {
		t.Fatalf("brick component scores = %d/%d, want 3/2", brick.PriceToBookScore, brick.YieldScore)
	}
	if brick.Final != 8 {
		t.Errorf("brick Final = %d, want 8 (2*3 + 2)", brick.Final)
	}

	paper := Score(fund.CategoryPaper, metrics(97.0, 100.0, 12.0), 10.0)
	if paper.PriceToBookScore != 3 || paper.YieldScore != 2 {
		t.Fatalf("paper component scores = %d/%d, want 3/2", paper.PriceToBookScore, paper.YieldScore)
	}
	if paper.Final != 7 {
		t.Errorf("paper Final = %d, want 7 (3 + 2*2)", paper.Final)
	}
}

func TestScoreUnknownCategory(t *testing.T) {
	got := Score(fund.CategoryFundOfFunds, metrics(97.0, 100.0, 13.0), 10.0)
	if got.Final != 0 {
		t.Errorf("Score() Final = %d for fund-of-funds, want 0", got.Final)
	}
}

func TestScoreYieldOnlyMode(t *testing.T) {
	const rate = 10.0

	tests := []struct {
		name  string
		yield float64
		want  int
	}{
		{"well above rate", 12.5, 5},
		{"above rate", 11.0, 4},
		{"near rate", 9.0, 3},
		{"below rate", 7.0, 2},
		{"far below rate", 5.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fund.Metrics{}
			m.SetYield(tt.yield)

			got := Score(fund.CategoryBrick, m, rate)
			if got.Mode != ModeYieldOnly {
				t.Fatalf("Score() Mode = %s, want %s", got.Mode, ModeYieldOnly)
			}
			if got.Final != tt.want {
				t.Errorf("Score() Final = %d, want %d", got.Final, tt.want)
			}
			if got.PriceToBookScore != 0 {
				t.Errorf("Score() PriceToBookScore = %d, want 0 in yield-only mode", got.PriceToBookScore)
			}
		})
	}
}

func TestScoreNoData(t *testing.T) {
	got := Score(fund.CategoryBrick, fund.Metrics{}, 10.0)
	if got.Mode != ModeNone {
		t.Errorf("Score() Mode = %s, want %s", got.Mode, ModeNone)
	}
	if got.Final != 0 {
		t.Errorf("Score() Final = %d, want 0", got.Final)
	}
}

// Price without book value degrades to yield-only, not to a half-filled
// two-factor score.
func TestScorePriceWithoutBookValue(t *testing.T) {
	m := fund.Metrics{}
	m.SetPrice(100.0)
	m.SetYield(12.5)

	got := Score(fund.CategoryBrick, m, 10.0)
	if got.Mode != ModeYieldOnly {
		t.Errorf("Score() Mode = %s, want %s", got.Mode, ModeYieldOnly)
	}
	if got.Final != 5 {
		t.Errorf("Score() Final = %d, want 5", got.Final)
	}
}

func TestScoreNegativeReferenceRate(t *testing.T) {
	got := Score(fund.CategoryBrick, metrics(97.0, 100.0, 1.5), -1.0)
	if got.YieldScore != 3 {
		t.Errorf("Score() YieldScore = %d, want 3 with negative rate", got.YieldScore)
	}
}
