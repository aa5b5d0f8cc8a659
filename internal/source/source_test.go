package source

import (
	"math"
	"testing"
)

func TestParseBRNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"98,50", 98.50, true},
		{"1.234,56", 1234.56, true},
		{"R$ 98,50", 98.50, true},
		{"R$1.234,56", 1234.56, true},
		{"8,71%", 8.71, true},
		{"  10,50  ", 10.50, true},
		{"2.345.678", 2345678, true},
		{"0,00", 0, true},
		{"-", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBRNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseBRNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseBRNumber(%q) = %f, want %f", tt.input, got, tt.want)
			}
		})
	}
}
