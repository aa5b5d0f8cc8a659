package fund

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// defaultCategories is the built-in master list of funds under analysis.
// Ticker selection is configuration, not design: override with a universe
// file when the watchlist changes.
var defaultCategories = map[string]Category{
	"ALZR11": CategoryBrick,
	"BRCO11": CategoryBrick,
	"BTLG11": CategoryBrick,
	"GGRC11": CategoryBrick,
	"HGLG11": CategoryBrick,
	"HGRE11": CategoryBrick,
	"HGRU11": CategoryBrick,
	"JSRE11": CategoryBrick,
	"LVBI11": CategoryBrick,
	"MALL11": CategoryBrick,
	"PVBI11": CategoryBrick,
	"RBRP11": CategoryBrick,
	"VILG11": CategoryBrick,
	"VINO11": CategoryBrick,
	"VISC11": CategoryBrick,
	"XPLG11": CategoryBrick,
	"XPML11": CategoryBrick,

	"BCRI11": CategoryPaper,
	"BTCI11": CategoryPaper,
	"CPTS11": CategoryPaper,
	"DEVA11": CategoryPaper,
	"HGCR11": CategoryPaper,
	"IRDM11": CategoryPaper,
	"KNCR11": CategoryPaper,
	"KNIP11": CategoryPaper,
	"KNSC11": CategoryPaper,
	"MCCI11": CategoryPaper,
	"MXRF11": CategoryPaper,
	"RBRR11": CategoryPaper,
	"RECR11": CategoryPaper,
	"TORD11": CategoryPaper,
	"VGIR11": CategoryPaper,
	"VRTA11": CategoryPaper,

	"BCFF11": CategoryFundOfFunds,
}

// DefaultUniverse returns the built-in watchlist sorted by ticker.
func DefaultUniverse() []Fund {
	funds := make([]Fund, 0, len(defaultCategories))
	for ticker, cat := range defaultCategories {
		funds = append(funds, Fund{Ticker: ticker, Category: cat})
	}
	sort.Slice(funds, func(i, j int) bool {
		return funds[i].Ticker < funds[j].Ticker
	})
	return funds
}

// LoadUniverse reads a watchlist from a CSV file with a "ticker,category"
// header row. An empty path returns the built-in universe.
func LoadUniverse(path string) ([]Fund, error) {
	if path == "" {
		return DefaultUniverse(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open universe file: %w", err)
	}
	defer f.Close()

	return readUniverse(f)
}

func readUniverse(r io.Reader) ([]Fund, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read universe csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("universe file has no data rows")
	}

	seen := make(map[string]bool)
	funds := make([]Fund, 0, len(records)-1)
	for _, row := range records[1:] { // skip header
		if len(row) < 2 {
			continue
		}
		ticker := strings.ToUpper(strings.TrimSpace(row[0]))
		if ticker == "" || seen[ticker] {
			continue
		}
		seen[ticker] = true
		funds = append(funds, Fund{
			Ticker:   ticker,
			Category: ParseCategory(row[1]),
		})
	}

	if len(funds) == 0 {
		return nil, fmt.Errorf("universe file has no valid rows")
	}

	sort.Slice(funds, func(i, j int) bool {
		return funds[i].Ticker < funds[j].Ticker
	})
	return funds, nil
}
