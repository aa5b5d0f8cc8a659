// Package statusinvest scrapes fund metrics and the SELIC rate from
// Status Invest. Selectors are inherently fragile: every parse guards
// against missing elements and degrades to "unavailable" instead of
// failing the pass.
package statusinvest

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rmaia/fiicompass/pkg/httputil"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// Client handles communication with Status Invest.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Status Invest client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://statusinvest.com.br"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Name identifies this strategy.
func (c *Client) Name() string {
	return "statusinvest"
}

// fetchHTML fetches a page from Status Invest.
func (c *Client) fetchHTML(ctx context.Context, path string) (string, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
