package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/rmaia/fiicompass/internal/fund"
	"github.com/rmaia/fiicompass/pkg/logger"
)

type fakeSource struct {
	metrics map[string]*fund.Metrics
	calls   []string
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchMetrics(ctx context.Context, ticker string) (*fund.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.calls = append(f.calls, ticker)
	m, ok := f.metrics[ticker]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

type fakeBatchSource struct {
	fakeSource
	batchErr error
}

func (f *fakeBatchSource) FetchBatch(ctx context.Context, tickers []string) (map[string]*fund.Metrics, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.metrics, nil
}

func priced(v float64) *fund.Metrics {
	m := &fund.Metrics{}
	m.SetPrice(v)
	return m
}

func universe(tickers ...string) []fund.Fund {
	funds := make([]fund.Fund, 0, len(tickers))
	for _, t := range tickers {
		funds = append(funds, fund.Fund{Ticker: t, Category: fund.CategoryBrick})
	}
	return funds
}

func TestCollectPartialFailure(t *testing.T) {
	src := &fakeSource{metrics: map[string]*fund.Metrics{
		"HGLG11": priced(161.50),
		"XPLG11": priced(105.20),
	}}
	c := New(src, 0, logger.NewNop())

	result, err := c.Collect(context.Background(), universe("HGLG11", "TORD11", "XPLG11"))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(result.Funds) != 2 {
		t.Errorf("Collect() returned %d funds, want 2", len(result.Funds))
	}
	if len(result.Failed) != 1 || result.Failed[0] != "TORD11" {
		t.Errorf("Collect() Failed = %v, want [TORD11]", result.Failed)
	}
	if len(src.calls) != 3 {
		t.Errorf("source called %d times, want 3 (failure must not stop the pass)", len(src.calls))
	}

	// Universe fields pass through untouched
	if result.Funds[0].Category != fund.CategoryBrick {
		t.Errorf("Funds[0].Category = %s, want brick", result.Funds[0].Category)
	}
}

func TestCollectTotalFailure(t *testing.T) {
	src := &fakeSource{metrics: map[string]*fund.Metrics{}}
	c := New(src, 0, logger.NewNop())

	_, err := c.Collect(context.Background(), universe("HGLG11", "MXRF11"))
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Collect() error = %v, want ErrNoData", err)
	}
}

func TestCollectContextCancelled(t *testing.T) {
	src := &fakeSource{metrics: map[string]*fund.Metrics{"HGLG11": priced(161.50)}}
	c := New(src, 0, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Collect(ctx, universe("HGLG11"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Collect() error = %v, want context.Canceled", err)
	}
}

func TestCollectBatch(t *testing.T) {
	src := &fakeBatchSource{fakeSource: fakeSource{metrics: map[string]*fund.Metrics{
		"HGLG11": priced(161.50),
	}}}
	c := New(src, 0, logger.NewNop())

	result, err := c.Collect(context.Background(), universe("HGLG11", "TORD11"))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(result.Funds) != 1 || result.Funds[0].Ticker != "HGLG11" {
		t.Errorf("Collect() Funds = %+v, want only HGLG11", result.Funds)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "TORD11" {
		t.Errorf("Collect() Failed = %v, want [TORD11]", result.Failed)
	}
	if len(src.calls) != 0 {
		t.Errorf("per-ticker fetch called %d times on a batch source, want 0", len(src.calls))
	}
}

func TestCollectBatchWholesaleFailure(t *testing.T) {
	src := &fakeBatchSource{batchErr: errors.New("API down")}
	c := New(src, 0, logger.NewNop())

	_, err := c.Collect(context.Background(), universe("HGLG11", "MXRF11"))
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Collect() error = %v, want ErrNoData", err)
	}
}

func TestCollectEmptyUniverse(t *testing.T) {
	src := &fakeSource{metrics: map[string]*fund.Metrics{}}
	c := New(src, 0, logger.NewNop())

	_, err := c.Collect(context.Background(), nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Collect() error = %v, want ErrNoData", err)
	}
}
