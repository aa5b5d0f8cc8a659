package store

import (
	"context"
	"fmt"
)

// schema holds the DDL for the history tables. Metric cells are nullable:
// NULL is "unavailable", matching the in-memory availability flags.
const schema = `
CREATE TABLE IF NOT EXISTS metric_history (
	id                 BIGSERIAL PRIMARY KEY,
	ticker             TEXT        NOT NULL,
	category           TEXT        NOT NULL,
	collected_at       TIMESTAMPTZ NOT NULL,
	price              NUMERIC(12,2),
	book_value         NUMERIC(12,2),
	dividend_yield_12m NUMERIC(8,2),
	daily_liquidity    NUMERIC(18,2),
	quotaholder_count  BIGINT,
	net_assets         NUMERIC(18,2),
	last_distribution  NUMERIC(12,4),
	UNIQUE (ticker, collected_at)
);

CREATE INDEX IF NOT EXISTS idx_metric_history_ticker_time
	ON metric_history (ticker, collected_at DESC);

CREATE TABLE IF NOT EXISTS reference_rates (
	id         BIGSERIAL PRIMARY KEY,
	rate       NUMERIC(8,2) NOT NULL,
	source     TEXT         NOT NULL,
	fetched_at TIMESTAMPTZ  NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reference_rates_time
	ON reference_rates (fetched_at DESC);
`

// EnsureSchema creates the history tables when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
