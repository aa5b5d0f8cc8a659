// Package store persists metric history in PostgreSQL for the dashboard
// charts. The snapshot CSV keeps only the latest pass; this keeps the
// series.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmaia/fiicompass/internal/fund"
)

// Repository reads and writes history rows.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new history repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveMetrics stores one pass worth of metrics. Re-running a pass for the
// same instant overwrites it.
func (r *Repository) SaveMetrics(ctx context.Context, collectedAt time.Time, funds []fund.Fund) error {
	query := `
		INSERT INTO metric_history (
			ticker, category, collected_at,
			price, book_value, dividend_yield_12m,
			daily_liquidity, quotaholder_count, net_assets, last_distribution
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (ticker, collected_at) DO UPDATE SET
			price = EXCLUDED.price,
			book_value = EXCLUDED.book_value,
			dividend_yield_12m = EXCLUDED.dividend_yield_12m,
			daily_liquidity = EXCLUDED.daily_liquidity,
			quotaholder_count = EXCLUDED.quotaholder_count,
			net_assets = EXCLUDED.net_assets,
			last_distribution = EXCLUDED.last_distribution
	`

	for _, fd := range funds {
		m := fd.Metrics
		_, err := r.pool.Exec(ctx, query,
			fd.Ticker, string(fd.Category), collectedAt,
			nullable(m.Price, m.HasPrice),
			nullable(m.BookValue, m.HasBookValue),
			nullable(m.DividendYield, m.HasYield),
			nullable(m.DailyLiquidity, m.DailyLiquidity != 0),
			nullableInt(m.QuotaholderCount),
			nullable(m.NetAssets, m.NetAssets != 0),
			nullable(m.LastDistribution, m.LastDistribution != 0),
		)
		if err != nil {
			return fmt.Errorf("insert metric history for %s: %w", fd.Ticker, err)
		}
	}

	return nil
}

// SaveReferenceRate stores one reference rate observation.
func (r *Repository) SaveReferenceRate(ctx context.Context, rate float64, src string, fetchedAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reference_rates (rate, source, fetched_at)
		VALUES ($1, $2, $3)
	`, rate, src, fetchedAt)
	if err != nil {
		return fmt.Errorf("insert reference rate: %w", err)
	}
	return nil
}

// HistoryPoint is one stored observation for a fund.
type HistoryPoint struct {
	CollectedAt   time.Time `json:"collected_at"`
	Price         *float64  `json:"price,omitempty"`
	BookValue     *float64  `json:"book_value,omitempty"`
	DividendYield *float64  `json:"dividend_yield_12m,omitempty"`
}

// GetHistory returns the stored series for a ticker since from, oldest
// first.
func (r *Repository) GetHistory(ctx context.Context, ticker string, from time.Time) ([]HistoryPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT collected_at, price, book_value, dividend_yield_12m
		FROM metric_history
		WHERE ticker = $1 AND collected_at >= $2
		ORDER BY collected_at ASC
	`, ticker, from)
	if err != nil {
		return nil, fmt.Errorf("query metric history: %w", err)
	}
	defer rows.Close()

	var points []HistoryPoint
	for rows.Next() {
		var p HistoryPoint
		if err := rows.Scan(&p.CollectedAt, &p.Price, &p.BookValue, &p.DividendYield); err != nil {
			return nil, fmt.Errorf("scan metric history: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// LatestMetrics returns the most recent stored observation per ticker.
func (r *Repository) LatestMetrics(ctx context.Context) (map[string]HistoryPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (ticker)
			ticker, collected_at, price, book_value, dividend_yield_12m
		FROM metric_history
		ORDER BY ticker, collected_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query latest metrics: %w", err)
	}
	defer rows.Close()

	out := make(map[string]HistoryPoint)
	for rows.Next() {
		var ticker string
		var p HistoryPoint
		if err := rows.Scan(&ticker, &p.CollectedAt, &p.Price, &p.BookValue, &p.DividendYield); err != nil {
			return nil, fmt.Errorf("scan latest metrics: %w", err)
		}
		out[ticker] = p
	}
	return out, rows.Err()
}

// LatestReferenceRate returns the most recent stored rate, or nil when
// none is stored yet.
func (r *Repository) LatestReferenceRate(ctx context.Context) (*float64, error) {
	var rate float64
	err := r.pool.QueryRow(ctx, `
		SELECT rate FROM reference_rates
		ORDER BY fetched_at DESC
		LIMIT 1
	`).Scan(&rate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest rate: %w", err)
	}
	return &rate, nil
}

// PruneBefore deletes history older than cutoff. Returns rows removed.
func (r *Repository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM metric_history WHERE collected_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune metric history: %w", err)
	}
	removed := tag.RowsAffected()

	tag, err = r.pool.Exec(ctx, `
		DELETE FROM reference_rates WHERE fetched_at < $1
	`, cutoff)
	if err != nil {
		return removed, fmt.Errorf("prune reference rates: %w", err)
	}

	return removed + tag.RowsAffected(), nil
}

func nullable(v float64, available bool) interface{} {
	if !available {
		return nil
	}
	return v
}

func nullableInt(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}
