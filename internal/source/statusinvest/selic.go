package statusinvest

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rmaia/fiicompass/internal/source"
)

// RateSource adapts the client to source.RateSource, scraping the SELIC
// page. Same site as the fund metrics, so one blocked source takes both
// down; that is why this is a fallback behind the BCB API.
type RateSource struct {
	client *Client
}

// NewRateSource wraps a client as a reference rate source.
func NewRateSource(client *Client) *RateSource {
	return &RateSource{client: client}
}

// Name identifies this rate source.
func (r *RateSource) Name() string {
	return "statusinvest"
}

// FetchRate scrapes the current SELIC rate.
func (r *RateSource) FetchRate(ctx context.Context) (float64, error) {
	html, err := r.client.fetchHTML(ctx, "/taxas/selic")
	if err != nil {
		return 0, err
	}

	return parseSelicPage(html)
}

// parseSelicPage extracts the SELIC rate: the first strong.value on the
// rates page.
func parseSelicPage(html string) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("parse HTML: %w", err)
	}

	text := doc.Find("strong.value").First().Text()
	rate, ok := source.ParseBRNumber(text)
	if !ok {
		return 0, fmt.Errorf("SELIC value not found on page")
	}

	return rate, nil
}
