// Package snapshot persists the latest collection pass as a flat CSV file
// keyed by ticker. The file doubles as a metric source, so a pass can run
// entirely offline from the last collected data. Scores are never stored;
// they are recomputed on load against the current reference rate.
package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rmaia/fiicompass/internal/fund"
)

// ErrNoSnapshot signals that no snapshot file exists yet. A normal
// condition, not a failure.
var ErrNoSnapshot = errors.New("snapshot file not found")

var header = []string{
	"ticker", "category",
	"price", "book_value", "dividend_yield_12m",
	"daily_liquidity", "quotaholder_count", "net_assets", "last_distribution",
	"collected_at",
}

// Store reads and writes snapshot files at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the funds to the snapshot file, replacing any previous one.
// Unavailable metrics serialize as empty cells, not zeros, so a reload
// keeps the availability flags intact.
func (s *Store) Save(funds []fund.Fund, collectedAt time.Time) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot header: %w", err)
	}

	at := collectedAt.UTC().Format(time.RFC3339)
	for _, fd := range funds {
		m := fd.Metrics
		row := []string{
			fd.Ticker,
			string(fd.Category),
			formatOptional(m.Price, m.HasPrice),
			formatOptional(m.BookValue, m.HasBookValue),
			formatOptional(m.DividendYield, m.HasYield),
			formatOptional(m.DailyLiquidity, m.DailyLiquidity != 0),
			formatOptionalInt(m.QuotaholderCount),
			formatOptional(m.NetAssets, m.NetAssets != 0),
			formatOptional(m.LastDistribution, m.LastDistribution != 0),
			at,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write snapshot row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	return os.Rename(tmp, s.path)
}

// Load reads the snapshot file. Returns ErrNoSnapshot when the file does
// not exist.
func (s *Store) Load() ([]fund.Fund, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return read(f)
}

func read(r io.Reader) ([]fund.Fund, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate older files with fewer columns

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read snapshot csv: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("snapshot has no header row")
	}

	funds := make([]fund.Fund, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 || row[0] == "" {
			continue
		}

		fd := fund.Fund{
			Ticker:   row[0],
			Category: fund.ParseCategory(row[1]),
		}

		m := &fd.Metrics
		if v, ok := cell(row, 2); ok {
			m.SetPrice(v)
		}
		if v, ok := cell(row, 3); ok {
			m.SetBookValue(v)
		}
		if v, ok := cell(row, 4); ok {
			m.SetYield(v)
		}
		if v, ok := cell(row, 5); ok {
			m.DailyLiquidity = v
		}
		if v, ok := cell(row, 6); ok {
			m.QuotaholderCount = int64(v)
		}
		if v, ok := cell(row, 7); ok {
			m.NetAssets = v
		}
		if v, ok := cell(row, 8); ok {
			m.LastDistribution = v
		}

		funds = append(funds, fd)
	}

	return funds, nil
}

// cell parses an optional numeric cell. Empty or malformed cells read as
// unavailable, never as an error.
func cell(row []string, idx int) (float64, bool) {
	if idx >= len(row) || row[idx] == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(row[idx], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatOptional(v float64, available bool) string {
	if !available {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptionalInt(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}
