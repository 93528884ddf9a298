package modkit

import (
	"net/http"

	phttp "reviewlens/internal/platform/net/http"
	str "reviewlens/internal/platform/strings"
)

// Built is the resolved option set a module keeps
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies options over defaults; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount mounts routes under b.Prefix with b.Mw, then own, then the extra Register hook
// an empty prefix mounts into an inline group at the router root
// modules call this from MountRoutes
func (b Built) Mount(r phttp.Router, own func(phttp.Router)) {
	mount := func(rr phttp.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		own(rr)
		b.Register(rr)
	}
	if str.Blank(b.Prefix) {
		r.Group(mount)
		return
	}
	r.Route(str.MustPrefix(b.Prefix), mount)
}

// PortsAs returns b.Ports as T when the caller injected one
func PortsAs[T any](b Built) (T, bool) {
	t, ok := b.Ports.(T)
	return t, ok
}
