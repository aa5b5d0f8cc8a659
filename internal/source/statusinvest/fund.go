package statusinvest

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/source"
)

// FetchMetrics scrapes the fund page for one ticker.
func (c *Client) FetchMetrics(ctx context.Context, ticker string) (*fund.Metrics, error) {
	path := fmt.Sprintf("/fundos-imobiliarios/%s", strings.ToLower(ticker))

	html, err := c.fetchHTML(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrUnavailable, ticker, err)
	}

	metrics, err := parseFundPage(html)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrUnavailable, ticker, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":     ticker,
		"price":      metrics.Price,
		"book_value": metrics.BookValue,
		"yield":      metrics.DividendYield,
	}).Debug("Fetched fund metrics")

	return metrics, nil
}

// parseFundPage extracts metrics from a fund page. Each field is optional:
// a missing element leaves its availability flag off, it never errors the
// whole page. Only a page with no usable figure at all is an error.
func parseFundPage(html string) (*fund.Metrics, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	m := &fund.Metrics{}

	// Current price is the first headline value of the page
	if v, ok := source.ParseBRNumber(doc.Find("strong.value").First().Text()); ok {
		m.SetPrice(v)
	}

	if v, ok := indicatorValue(doc, "Valor patrimonial por cota"); ok {
		m.SetBookValue(v)
	}

	if v, ok := indicatorValue(doc, "Dividend Yield com base nos últimos 12 meses"); ok {
		m.SetYield(v)
	}

	// Display-only supplementary metrics
	if v, ok := indicatorValue(doc, "Liquidez média diária"); ok {
		m.DailyLiquidity = v
	}
	if v, ok := indicatorValue(doc, "Total de cotistas"); ok {
		m.QuotaholderCount = int64(v)
	}
	if v, ok := indicatorValue(doc, "Patrimônio líquido"); ok {
		m.NetAssets = v
	}
	if v, ok := indicatorValue(doc, "Último rendimento"); ok {
		m.LastDistribution = v
	}

	if m.Empty() {
		return nil, fmt.Errorf("no usable metrics on page")
	}

	return m, nil
}

// indicatorValue finds the strong.value under the indicator block titled
// title. Status Invest nests the value inside the titled div or in its
// immediate sibling, depending on the indicator.
func indicatorValue(doc *goquery.Document, title string) (float64, bool) {
	block := doc.Find(fmt.Sprintf(`div[title=%q]`, title)).First()
	if block.Length() == 0 {
		return 0, false
	}

	text := block.Find("strong.value").First().Text()
	if strings.TrimSpace(text) == "" {
		text = block.Next().Find("strong.value").First().Text()
	}
	if strings.TrimSpace(text) == "" {
		text = block.Parent().Find("strong.value").First().Text()
	}

	return source.ParseBRNumber(text)
}
