// Package yahoo fetches fund metrics from the Yahoo Finance quote API.
// B3 tickers carry the ".SA" suffix. This is the batch-capable strategy:
// the whole universe resolves in a single request.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/internal/source"
	"github.com/rmaia/fiicompass/pkg/httputil"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// Client handles communication with the Yahoo Finance quote API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Name identifies this strategy.
func (c *Client) Name() string {
	return "yahoo"
}

// quoteResponse mirrors the v7 quote API envelope. Numeric fields are
// pointers so an absent field is distinguishable from zero.
type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"quoteResponse"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	BookValue                  *float64 `json:"bookValue"`
	TrailingAnnualDividendRate *float64 `json:"trailingAnnualDividendRate"`
	TrailingAnnualDividendYld  *float64 `json:"trailingAnnualDividendYield"`
	AverageDailyVolume3Month   *float64 `json:"averageDailyVolume3Month"`
}

// FetchMetrics fetches metrics for a single ticker.
func (c *Client) FetchMetrics(ctx context.Context, ticker string) (*fund.Metrics, error) {
	batch, err := c.FetchBatch(ctx, []string{ticker})
	if err != nil {
		return nil, err
	}

	m, ok := batch[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s: not in quote response", source.ErrUnavailable, ticker)
	}
	return m, nil
}

// FetchBatch fetches quotes for all tickers in one request.
func (c *Client) FetchBatch(ctx context.Context, tickers []string) (map[string]*fund.Metrics, error) {
	symbols := make([]string, 0, len(tickers))
	for _, t := range tickers {
		symbols = append(symbols, toSymbol(t))
	}

	fullURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		c.baseURL, url.QueryEscape(strings.Join(symbols, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var qr quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if qr.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote API error: %s", qr.QuoteResponse.Error.Description)
	}

	out := make(map[string]*fund.Metrics, len(qr.QuoteResponse.Result))
	for _, res := range qr.QuoteResponse.Result {
		ticker := fromSymbol(res.Symbol)
		m := toMetrics(res)
		if m.Empty() {
			continue
		}
		out[ticker] = m
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(tickers),
		"resolved":  len(out),
	}).Debug("Fetched quote batch")

	return out, nil
}

// toMetrics converts one quote result, preferring to derive the yield from
// the trailing distribution total over the precomputed ratio.
func toMetrics(res quoteResult) *fund.Metrics {
	m := &fund.Metrics{}

	if res.RegularMarketPrice != nil {
		m.SetPrice(*res.RegularMarketPrice)
	}
	if res.BookValue != nil {
		m.SetBookValue(*res.BookValue)
	}

	switch {
	case res.TrailingAnnualDividendRate != nil && m.HasPrice && m.Price > 0:
		m.SetYield(*res.TrailingAnnualDividendRate / m.Price * 100)
	case res.TrailingAnnualDividendYld != nil:
		// API reports a fraction, the dashboard works in percent
		m.SetYield(*res.TrailingAnnualDividendYld * 100)
	}

	if res.AverageDailyVolume3Month != nil {
		m.DailyLiquidity = *res.AverageDailyVolume3Month
	}

	return m
}

// toSymbol maps a B3 ticker to a Yahoo symbol.
func toSymbol(ticker string) string {
	return strings.ToUpper(ticker) + ".SA"
}

// fromSymbol maps a Yahoo symbol back to a B3 ticker.
func fromSymbol(symbol string) string {
	return strings.TrimSuffix(strings.ToUpper(symbol), ".SA")
}
