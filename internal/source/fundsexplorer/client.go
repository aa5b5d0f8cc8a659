// Package fundsexplorer scrapes Funds Explorer fund pages. It exposes a
// reduced field set (no book value), so passes sourced here run in the
// yield-only degraded scoring mode. Kept as an alternate strategy for when
// Status Invest blocks or changes layout.
package fundsexplorer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/source"
	"github.com/rmaia/fiicompass/pkg/httputil"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// Client handles communication with Funds Explorer.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Funds Explorer client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://www.fundsexplorer.com.br"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Name identifies this strategy.
func (c *Client) Name() string {
	return "fundsexplorer"
}

// FetchMetrics scrapes the fund page for one ticker.
func (c *Client) FetchMetrics(ctx context.Context, ticker string) (*fund.Metrics, error) {
	fullURL := fmt.Sprintf("%s/funds/%s", c.baseURL, strings.ToLower(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrUnavailable, ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", source.ErrUnavailable, ticker, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrUnavailable, ticker, err)
	}

	metrics, err := parseFundPage(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrUnavailable, ticker, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  metrics.Price,
		"yield":  metrics.DividendYield,
	}).Debug("Fetched fund metrics")

	return metrics, nil
}

// parseFundPage extracts the reduced field set from a fund page.
func parseFundPage(html string) (*fund.Metrics, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	m := &fund.Metrics{}

	if v, ok := source.ParseBRNumber(doc.Find("div.headerTicker__content__price p").First().Text()); ok {
		m.SetPrice(v)
	}

	// Indicator boxes: label + value pairs
	doc.Find("div.indicators__box").Each(func(i int, box *goquery.Selection) {
		label := strings.TrimSpace(box.Find("p").First().Text())
		value := box.Find("b").First().Text()

		switch {
		case strings.Contains(label, "Dividend Yield"):
			if v, ok := source.ParseBRNumber(value); ok {
				m.SetYield(v)
			}
		case strings.Contains(label, "Liquidez"):
			if v, ok := source.ParseBRNumber(value); ok {
				m.DailyLiquidity = v
			}
		case strings.Contains(label, "Último Rendimento"):
			if v, ok := source.ParseBRNumber(value); ok {
				m.LastDistribution = v
			}
		}
	})

	if m.Empty() {
		return nil, fmt.Errorf("no usable metrics on page")
	}

	return m, nil
}
