// Package api provides the HTTP API for the application
package api

import (
	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/core/taxonomy"
	"reviewlens/internal/platform/config"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/metrics"
	phttp "reviewlens/internal/platform/net/http"

	"reviewlens/internal/modkit"
	"reviewlens/internal/modkit/httpkit"
	"reviewlens/internal/modkit/module"
	"reviewlens/internal/modkit/swaggerkit"

	analyzemod "reviewlens/internal/services/analyze/module"
	analysesmod "reviewlens/internal/services/api/analyses/module"
	"reviewlens/internal/services/api/docs"
	metamod "reviewlens/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf // REVIEWLENS_ view; modules read API_* and ANALYZE_* under it
	Logger         *logger.Logger
	Scorer         sentiment.Scorer   // required, built once by the caller
	Taxonomy       *taxonomy.Taxonomy // nil uses the embedded default
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		Log: opt.Logger,
	}

	// the analyze module owns the pipeline and the store; the API consumes its ports
	analyze := analyzemod.New(deps, analyzemod.Options{}, modkit.WithPorts(analyzemod.Inputs{
		Scorer:   opt.Scorer,
		Taxonomy: opt.Taxonomy,
	}))
	ap := module.MustPortsOf[analyzemod.Ports](analyze)

	mods := []module.Module{
		analyze,
		analysesmod.New(deps, modkit.WithPorts(analysesmod.Ports{Runner: ap.Runner, Store: ap.Store})),
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Analyses: ap.Store})),
	}

	swaggerkit.Mount(r, opt.EnableSwagger, docs.OpenAPI)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	r.Handle("/metrics", metrics.Handler())

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
