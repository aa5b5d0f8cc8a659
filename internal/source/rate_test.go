package source

import (
	"context"
	"errors"
	"testing"

	"github.com/rmaia/fiicompass/pkg/logger"
)

type fakeRateSource struct {
	name string
	rate float64
	err  error
}

func (f *fakeRateSource) Name() string { return f.name }

func (f *fakeRateSource) FetchRate(ctx context.Context) (float64, error) {
	return f.rate, f.err
}

func TestRateResolverFirstSourceWins(t *testing.T) {
	r := NewRateResolver(logger.NewNop(),
		&fakeRateSource{name: "primary", rate: 11.25},
		&fakeRateSource{name: "secondary", rate: 99.0},
	)

	rate, src := r.Resolve(context.Background())
	if rate != 11.25 || src != "primary" {
		t.Errorf("Resolve() = %f/%s, want 11.25/primary", rate, src)
	}
}

func TestRateResolverFallsThrough(t *testing.T) {
	r := NewRateResolver(logger.NewNop(),
		&fakeRateSource{name: "primary", err: errors.New("timeout")},
		&fakeRateSource{name: "secondary", rate: 10.75},
	)

	rate, src := r.Resolve(context.Background())
	if rate != 10.75 || src != "secondary" {
		t.Errorf("Resolve() = %f/%s, want 10.75/secondary", rate, src)
	}
}

func TestRateResolverDefault(t *testing.T) {
	r := NewRateResolver(logger.NewNop(),
		&fakeRateSource{name: "primary", err: errors.New("timeout")},
		&fakeRateSource{name: "secondary", err: errors.New("blocked")},
	)

	rate, src := r.Resolve(context.Background())
	if rate != FallbackRate || src != FallbackRateName {
		t.Errorf("Resolve() = %f/%s, want %f/%s", rate, src, float64(FallbackRate), FallbackRateName)
	}
}

func TestRateResolverNoSources(t *testing.T) {
	r := NewRateResolver(logger.NewNop())

	rate, src := r.Resolve(context.Background())
	if rate != FallbackRate || src != FallbackRateName {
		t.Errorf("Resolve() = %f/%s, want fallback", rate, src)
	}
}
