package bcb

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

func TestParseRate(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"10.50", 10.50, false},
		{"10,50", 10.50, false},
		{" 13.75 ", 13.75, false},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseRate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("parseRate(%q) = %f, want %f", tt.input, got, tt.want)
			}
		})
	}
}

func TestFetchRate(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"data": "29/08/2026", "valor": "10.50"}]`))
	}))
	defer srv.Close()

	log := logger.NewNop()
	client := NewClient(httputil.New(&config.Config{}, log), log, srv.URL)

	rate, err := client.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("FetchRate() error = %v", err)
	}
	if math.Abs(rate-10.50) > 1e-9 {
		t.Errorf("FetchRate() = %f, want 10.50", rate)
	}
	if gotPath != "/dados/serie/bcdata.sgs.432/dados/ultimos/1" {
		t.Errorf("request path = %s, want the SELIC series", gotPath)
	}
}

func TestFetchRateEmptySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	log := logger.NewNop()
	client := NewClient(httputil.New(&config.Config{}, log), log, srv.URL)

	if _, err := client.FetchRate(context.Background()); err == nil {
		t.Error("FetchRate() with empty series should fail")
	}
}
