// Package module wires the analyses endpoints into the API
package module

import (
	"net/http"
	"time"

	"reviewlens/internal/modkit"
	"reviewlens/internal/modkit/httpkit"
	"reviewlens/internal/platform/config"
	"reviewlens/internal/platform/net/middleware"
	str "reviewlens/internal/platform/strings"
	andom "reviewlens/internal/services/analyze/domain"
	anhttp "reviewlens/internal/services/api/analyses/http"
	"reviewlens/internal/services/api/analyses/service"
)

// Ports are the analyze ports this module consumes
type Ports struct {
	Runner andom.RunnerPort
	Store  andom.StorePort
}

// Options holds configuration settings for the analyses endpoints
type Options struct {
	MaxUploadBytes int64
	RateLimit      int // uploads per minute per client IP, 0 disables
}

// FromConfig extracts Options from API_* under the given config view
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("API_")
	return Options{
		MaxUploadBytes: ac.MayBytes("MAX_UPLOAD_BYTES", 32<<20),
		RateLimit:      ac.MayInt("RATE_LIMIT", 0),
	}
}

// Module implements modkit.Module
type Module struct {
	b    modkit.Built
	svc  *service.Service
	opts Options
}

// New constructs the analyses module; routes mount at the API root so the
// module owns /analyses, /classify and /taxonomy
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analyses"),
	}, opts...)...)

	p, ok := modkit.PortsAs[Ports](b)
	if !ok || p.Runner == nil || p.Store == nil {
		panic("analyses module: expected WithPorts(analyses/module.Ports) with Runner and Store")
	}
	return &Module{
		b:    b,
		svc:  service.New(p.Runner, p.Store),
		opts: FromConfig(deps.Cfg),
	}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		var upMw []func(http.Handler) http.Handler
		if m.opts.RateLimit > 0 {
			upMw = append(upMw, middleware.RateLimitByIP(m.opts.RateLimit, time.Minute))
		}
		anhttp.Register(rr, anhttp.Deps{
			Service:        m.svc,
			MaxUploadBytes: m.opts.MaxUploadBytes,
			UploadMw:       upMw,
		})
	}
	m.b.Mount(r, mount)
}

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.b.Name, "analyses") }

// Ports implements modkit.Module; the module only consumes ports
func (m *Module) Ports() any { return nil }
