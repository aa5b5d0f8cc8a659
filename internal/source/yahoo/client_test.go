package yahoo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rmaia/fiicompass/pkg/config"
	"github.com/rmaia/fiicompass/pkg/httputil"
	"github.com/rmaia/fiicompass/pkg/logger"
)

func floatPtr(v float64) *float64 { return &v }

func TestToMetrics(t *testing.T) {
	tests := []struct {
		name      string
		result    quoteResult
		wantPrice float64
		wantYield float64
		hasYield  bool
	}{
		{
			name: "yield derived from trailing distribution",
			result: quoteResult{
				Symbol:                     "HGLG11.SA",
				RegularMarketPrice:         floatPtr(160.0),
				BookValue:                  floatPtr(165.0),
				TrailingAnnualDividendRate: floatPtr(14.4),
			},
			wantPrice: 160.0,
			wantYield: 9.0, // 14.4 / 160 * 100
			hasYield:  true,
		},
		{
			name: "precomputed fraction converts to percent",
			result: quoteResult{
				Symbol:                    "MXRF11.SA",
				RegularMarketPrice:        floatPtr(10.0),
				TrailingAnnualDividendYld: floatPtr(0.1264),
			},
			wantPrice: 10.0,
			wantYield: 12.64,
			hasYield:  true,
		},
		{
			name: "no dividend fields",
			result: quoteResult{
				Symbol:             "VINO11.SA",
				RegularMarketPrice: floatPtr(8.5),
			},
			wantPrice: 8.5,
			hasYield:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := toMetrics(tt.result)
			if math.Abs(m.Price-tt.wantPrice) > 1e-9 {
				t.Errorf("Price = %f, want %f", m.Price, tt.wantPrice)
			}
			if m.HasYield != tt.hasYield {
				t.Fatalf("HasYield = %v, want %v", m.HasYield, tt.hasYield)
			}
			if tt.hasYield && math.Abs(m.DividendYield-tt.wantYield) > 1e-9 {
				t.Errorf("DividendYield = %f, want %f", m.DividendYield, tt.wantYield)
			}
		})
	}
}

func TestSymbolMapping(t *testing.T) {
	if got := toSymbol("hglg11"); got != "HGLG11.SA" {
		t.Errorf("toSymbol(hglg11) = %s, want HGLG11.SA", got)
	}
	if got := fromSymbol("HGLG11.SA"); got != "HGLG11" {
		t.Errorf("fromSymbol(HGLG11.SA) = %s, want HGLG11", got)
	}
}

func TestFetchBatch(t *testing.T) {
	body := `{
		"quoteResponse": {
			"result": [
				{
					"symbol": "HGLG11.SA",
					"regularMarketPrice": 160.0,
					"bookValue": 165.0,
					"trailingAnnualDividendRate": 14.4
				},
				{
					"symbol": "MXRF11.SA",
					"regularMarketPrice": 10.0,
					"trailingAnnualDividendYield": 0.1264
				}
			],
			"error": null
		}
	}`

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	log := logger.NewNop()
	client := NewClient(httputil.New(&config.Config{}, log), log, srv.URL)

	batch, err := client.FetchBatch(context.Background(), []string{"HGLG11", "MXRF11", "TORD11"})
	if err != nil {
		t.Fatalf("FetchBatch() error = %v", err)
	}

	if gotPath != "/v7/finance/quote?symbols=HGLG11.SA%2CMXRF11.SA%2CTORD11.SA" {
		t.Errorf("request path = %s", gotPath)
	}

	if len(batch) != 2 {
		t.Fatalf("FetchBatch() returned %d funds, want 2", len(batch))
	}

	hglg := batch["HGLG11"]
	if hglg == nil || !hglg.HasBookValue || math.Abs(hglg.BookValue-165.0) > 1e-9 {
		t.Errorf("HGLG11 = %+v, want book value 165.0", hglg)
	}

	// TORD11 absent from the response: missing, not zeroed
	if _, ok := batch["TORD11"]; ok {
		t.Error("TORD11 should be absent from the batch")
	}
}

func TestFetchBatchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse": {"result": [], "error": {"code": "Bad Request", "description": "Missing symbols"}}}`))
	}))
	defer srv.Close()

	log := logger.NewNop()
	client := NewClient(httputil.New(&config.Config{}, log), log, srv.URL)

	if _, err := client.FetchBatch(context.Background(), []string{"HGLG11"}); err == nil {
		t.Error("FetchBatch() with API error should fail")
	}
}
