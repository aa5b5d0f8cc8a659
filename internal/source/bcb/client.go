// Package bcb fetches the SELIC target rate from the Banco Central do
// Brasil SGS API. Primary reference rate source: a stable public API
// instead of a scrape.
package bcb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rmaia/fiicompass/pkg/httputil"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// selicSeries is the SGS series id for the SELIC target rate (% a.a.).
const selicSeries = 432

// Client handles communication with the SGS API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new SGS client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.bcb.gov.br"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Name identifies this rate source.
func (c *Client) Name() string {
	return "bcb"
}

// sgsObservation is one row of an SGS series. Values come back as strings.
type sgsObservation struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// FetchRate returns the latest SELIC target rate as a decimal percentage.
func (c *Client) FetchRate(ctx context.Context) (float64, error) {
	fullURL := fmt.Sprintf("%s/dados/serie/bcdata.sgs.%d/dados/ultimos/1?formato=json",
		c.baseURL, selicSeries)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var observations []sgsObservation
	if err := json.NewDecoder(resp.Body).Decode(&observations); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(observations) == 0 {
		return 0, fmt.Errorf("empty SGS series")
	}

	rate, err := parseRate(observations[len(observations)-1].Value)
	if err != nil {
		return 0, err
	}

	c.logger.WithFields(map[string]interface{}{
		"rate": rate,
		"date": observations[len(observations)-1].Date,
	}).Debug("Fetched SELIC rate")

	return rate, nil
}

// parseRate parses an SGS value, tolerating a decimal comma.
func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse SGS value %q: %w", s, err)
	}
	return rate, nil
}
