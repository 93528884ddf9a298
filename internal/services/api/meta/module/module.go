// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"reviewlens/internal/modkit"
	"reviewlens/internal/modkit/httpkit"
	str "reviewlens/internal/platform/strings"

	metahttp "reviewlens/internal/services/api/meta/http"
)

// ServiceName is reported by /meta endpoints
const ServiceName = "reviewlens-api"

// Ports are the optional collaborators meta reports on
type Ports struct {
	Analyses metahttp.Counter
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	b         modkit.Built
	ports     Ports
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	p, _ := modkit.PortsAs[Ports](b)
	return &Module{deps: deps, b: b, ports: p, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Analyses:    m.ports.Analyses,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface; meta owns no ports
func (m *Module) Ports() any { return nil }
