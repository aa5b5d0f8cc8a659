package fund

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"Tijolo", CategoryBrick},
		{"tijolo", CategoryBrick},
		{"brick", CategoryBrick},
		{"Papel", CategoryPaper},
		{"paper", CategoryPaper},
		{"Fundo de Fundos", CategoryFundOfFunds},
		{"fof", CategoryFundOfFunds},
		{"  papel  ", CategoryPaper},
		{"híbrido", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ParseCategory(tt.label); got != tt.want {
				t.Errorf("ParseCategory(%q) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryBrick.Label(); got != "Tijolo" {
		t.Errorf("CategoryBrick.Label() = %q, want Tijolo", got)
	}
	if got := CategoryPaper.Label(); got != "Papel" {
		t.Errorf("CategoryPaper.Label() = %q, want Papel", got)
	}
}

func TestMetricsSetters(t *testing.T) {
	m := Metrics{}
	if !m.Empty() {
		t.Error("zero Metrics should be Empty")
	}

	m.SetPrice(98.50)
	if !m.HasPrice || m.Price != 98.50 {
		t.Errorf("SetPrice: HasPrice=%v Price=%f", m.HasPrice, m.Price)
	}
	if m.Empty() {
		t.Error("Metrics with a price should not be Empty")
	}

	// A yield of exactly zero is a known value, not an absence
	m.SetYield(0)
	if !m.HasYield {
		t.Error("SetYield(0) should mark the yield as known")
	}
}

func TestMetricsSettersDiscardNegative(t *testing.T) {
	m := Metrics{}
	m.SetPrice(-1)
	m.SetBookValue(-0.5)
	m.SetYield(-3)

	if m.HasPrice || m.HasBookValue || m.HasYield {
		t.Errorf("negative inputs must be discarded: %+v", m)
	}
}
