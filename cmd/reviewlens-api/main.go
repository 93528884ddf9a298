// @title         Reviewlens API
// @version       0.1.0
// @description   Review sentiment and concern classification with product recommendations
// @BasePath      /api/v1

// Command reviewlens-api serves review classification and recommendations over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/core/taxonomy"
	"reviewlens/internal/platform/config"
	"reviewlens/internal/platform/logger"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/net/middleware"

	"reviewlens/internal/services/api"
	metamod "reviewlens/internal/services/api/meta/module"

	"github.com/go-chi/chi/v5"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lo := logger.FromEnv()
	if lo.Service == "" {
		lo.Service = metamod.ServiceName
	}
	logger.Init(lo)
	l := logger.Get()

	// REVIEWLENS_* for modules, REVIEWLENS_API_* for the listener
	root := config.New().Prefix("REVIEWLENS_")
	apiCfg := root.Prefix("API_")

	var tax *taxonomy.Taxonomy
	if path := root.MayString("TAXONOMY_FILE", ""); path != "" {
		t, err := taxonomy.LoadFile(path)
		if err != nil {
			l.Fatal().Err(err).Str("path", path).Msg("load taxonomy")
		}
		tax = t
		l.Info().Str("path", path).Int("categories", len(t.Categories)).Msg("taxonomy override loaded")
	}

	// the lexicon is loaded once and shared by every request
	scorer := sentiment.NewVader()

	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/ping"))
	})

	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Logger:         l,
		Scorer:         scorer,
		Taxonomy:       tax,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	l.Info().Str("addr", srv.Addr()).Msg("listening")
	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}
