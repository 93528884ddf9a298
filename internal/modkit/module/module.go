// Package module defines the minimal module contract and port lookup helpers
// it sits beside modkit so modules exporting their own port types avoid import cycles
package module

import (
	phttp "reviewlens/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
