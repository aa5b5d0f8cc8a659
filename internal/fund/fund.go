package fund

import "strings"

// Category classifies a FII by what backs its portfolio. The scoring rule
// table is keyed by category, so this is a closed set: anything the sources
// label otherwise maps to CategoryOther and receives no score.
type Category string

const (
	CategoryBrick       Category = "brick"         // physical property ("tijolo")
	CategoryPaper       Category = "paper"         // receivables / credit paper ("papel")
	CategoryFundOfFunds Category = "fund_of_funds" // FOF ("fundo de fundos")
	CategoryOther       Category = "other"
)

// ParseCategory maps source labels (Portuguese or internal) to a Category.
// Unknown labels become CategoryOther, never an error.
func ParseCategory(label string) Category {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "tijolo", "brick":
		return CategoryBrick
	case "papel", "paper":
		return CategoryPaper
	case "fundo de fundos", "fof", "fund_of_funds":
		return CategoryFundOfFunds
	default:
		return CategoryOther
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBrick, CategoryPaper, CategoryFundOfFunds, CategoryOther:
		return true
	}
	return false
}

// Label returns the display label used by Brazilian sources.
func (c Category) Label() string {
	switch c {
	case CategoryBrick:
		return "Tijolo"
	case CategoryPaper:
		return "Papel"
	case CategoryFundOfFunds:
		return "Fundo de Fundos"
	default:
		return "Outro"
	}
}

// Metrics holds the raw per-fund figures from a source. Every numeric field
// carries an availability flag: sources drop fields at random, and a missing
// dividend yield is not the same thing as a fund that paid nothing. A field
// with its flag false holds zero and must be treated as unknown.
type Metrics struct {
	Price         float64 `json:"price"`              // BRL
	BookValue     float64 `json:"book_value"`         // BRL per quota
	DividendYield float64 `json:"dividend_yield_12m"` // percent, trailing 12 months

	HasPrice     bool `json:"has_price"`
	HasBookValue bool `json:"has_book_value"`
	HasYield     bool `json:"has_yield"`

	// Display-only supplementary metrics, never scored
	DailyLiquidity   float64 `json:"daily_liquidity,omitempty"`
	QuotaholderCount int64   `json:"quotaholder_count,omitempty"`
	NetAssets        float64 `json:"net_assets,omitempty"`
	LastDistribution float64 `json:"last_distribution,omitempty"`
}

// SetPrice records a known price. Negative input is discarded as noise.
func (m *Metrics) SetPrice(v float64) {
	if v < 0 {
		return
	}
	m.Price = v
	m.HasPrice = true
}

// SetBookValue records a known book value per quota.
func (m *Metrics) SetBookValue(v float64) {
	if v < 0 {
		return
	}
	m.BookValue = v
	m.HasBookValue = true
}

// SetYield records a known trailing dividend yield.
func (m *Metrics) SetYield(v float64) {
	if v < 0 {
		return
	}
	m.DividendYield = v
	m.HasYield = true
}

// Empty reports whether no scored metric is available at all.
func (m *Metrics) Empty() bool {
	return !m.HasPrice && !m.HasBookValue && !m.HasYield
}

// Fund is one row of the dashboard: identity, classification and the
// metrics fetched in the current pass. Funds are rebuilt from scratch on
// every pass; the ticker is the only identity.
type Fund struct {
	Ticker   string   `json:"ticker"`
	Category Category `json:"category"`
	Metrics  Metrics  `json:"metrics"`
}
