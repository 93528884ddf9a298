// Package module implements the analyze module
package module

import (
	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/core/taxonomy"
	"reviewlens/internal/modkit"
	"reviewlens/internal/modkit/httpkit"
	"reviewlens/internal/services/analyze/domain"
	"reviewlens/internal/services/analyze/repo"
	"reviewlens/internal/services/analyze/service"
)

// Inputs are the collaborators built once in main and injected with modkit.WithPorts
type Inputs struct {
	Scorer   sentiment.Scorer   // required
	Taxonomy *taxonomy.Taxonomy // nil uses the embedded default
}

// Ports exposed by the analyze module
type Ports struct {
	Runner domain.RunnerPort
	Store  domain.StorePort
}

// Module implements modkit.Module; it owns no routes
type Module struct {
	deps  modkit.Deps
	name  string
	ports Ports
}

// New constructs the analyze module; zero fields in overrides keep the configured values
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analyze"),
	}, opts...)...)

	in, ok := modkit.PortsAs[Inputs](b)
	if !ok {
		panic("analyze module: expected WithPorts(analyze/module.Inputs)")
	}
	if in.Scorer == nil {
		panic("analyze module: Inputs missing Scorer")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.MaxAnalyses != 0 {
		cfg.MaxAnalyses = overrides.MaxAnalyses
	}
	if overrides.TTL != 0 {
		cfg.TTL = overrides.TTL
	}

	runner := service.New(in.Scorer, in.Taxonomy, service.Config{Workers: cfg.Workers})
	store := repo.NewMemory(repo.Options{MaxEntries: cfg.MaxAnalyses, TTL: cfg.TTL})

	deps.Logger("analyze").Info().
		Int("workers", runner.Workers()).
		Int("max_analyses", cfg.MaxAnalyses).
		Dur("ttl", cfg.TTL).
		Int("categories", len(runner.Taxonomy().Categories)).
		Msg("analyze module ready")

	return &Module{
		deps:  deps,
		name:  b.Name,
		ports: Ports{Runner: runner, Store: store},
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
