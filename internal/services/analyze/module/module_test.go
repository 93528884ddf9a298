package module

import (
	"context"
	"testing"
	"time"

	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/core/table"
	"reviewlens/internal/modkit"
	mmodule "reviewlens/internal/modkit/module"
	"reviewlens/internal/platform/testkit"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("REVIEWLENS_ANALYZE_WORKERS", "3")
	t.Setenv("REVIEWLENS_ANALYZE_MAX_ANALYSES", "0")
	t.Setenv("REVIEWLENS_ANALYZE_TTL", "15m")

	got := FromConfig(modkitDeps().Cfg)
	if got.Workers != 3 || got.MaxAnalyses != 64 || got.TTL != 15*time.Minute {
		t.Fatalf("FromConfig = %+v", got)
	}
}

func TestNewExposesPorts(t *testing.T) {
	m := New(modkitDeps(), Options{Workers: 2},
		modkit.WithPorts(Inputs{Scorer: sentiment.ScorerFunc(func(string) float64 { return 0.5 })}),
	)
	if m.Name() != "analyze" {
		t.Fatalf("Name = %q", m.Name())
	}
	p := mmodule.MustPortsOf[Ports](m)

	tab, err := table.ReadBytes([]byte("review,product\ngreat lip balm,P1\n"))
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	a, err := p.Runner.Run(context.Background(), tab)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rec, err := p.Store.Save(context.Background(), "x.csv", a)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ExpiresAt.IsZero() {
		t.Fatalf("default TTL should stamp ExpiresAt")
	}
	if got := a.Recommend("Cracked Lips"); len(got) != 1 || got[0] != "P1" {
		t.Fatalf("Recommend = %v", got)
	}
}

func TestNewRequiresScorer(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkitDeps(), Options{}) })
	testkit.MustPanic(t, func() { New(modkitDeps(), Options{}, modkit.WithPorts(Inputs{})) })
}
