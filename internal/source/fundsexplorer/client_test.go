package fundsexplorer

import (
	"math"
	"testing"
)

const fundPageHTML = `
<html><body>
<div class="headerTicker__content__price">
	<p>R$ 10,05</p>
	<span>Min. 52 semanas</span>
</div>
<section class="indicators">
	<div class="indicators__box">
		<p>Dividend Yield</p>
		<b>12,64%</b>
	</div>
	<div class="indicators__box">
		<p>Liquidez Diária</p>
		<b>1.845.210</b>
	</div>
	<div class="indicators__box">
		<p>Último Rendimento</p>
		<b>R$ 0,10</b>
	</div>
</section>
</body></html>`

func TestParseFundPage(t *testing.T) {
	m, err := parseFundPage(fundPageHTML)
	if err != nil {
		t.Fatalf("parseFundPage() error = %v", err)
	}

	if !m.HasPrice || math.Abs(m.Price-10.05) > 1e-9 {
		t.Errorf("Price = %f (has=%v), want 10.05", m.Price, m.HasPrice)
	}
	if !m.HasYield || math.Abs(m.DividendYield-12.64) > 1e-9 {
		t.Errorf("DividendYield = %f (has=%v), want 12.64", m.DividendYield, m.HasYield)
	}
	if math.Abs(m.DailyLiquidity-1845210) > 1e-9 {
		t.Errorf("DailyLiquidity = %f, want 1845210", m.DailyLiquidity)
	}
	if math.Abs(m.LastDistribution-0.10) > 1e-9 {
		t.Errorf("LastDistribution = %f, want 0.10", m.LastDistribution)
	}

	// This source never serves a book value
	if m.HasBookValue {
		t.Error("HasBookValue should be false")
	}
}

func TestParseFundPageEmpty(t *testing.T) {
	if _, err := parseFundPage(`<html><body><h1>404</h1></body></html>`); err == nil {
		t.Error("parseFundPage() on a page with no metrics should error")
	}
}
