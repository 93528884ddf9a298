// Package swaggerkit serves Swagger UI over an OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "reviewlens/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the UI at /api/docs/ and the decorated document at /api/docs/doc.json
// nothing is mounted when disabled
func Mount(r phttp.Router, enabled bool, doc []byte) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(doc))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
