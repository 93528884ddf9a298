package httpkit

import (
	"net/http"

	phttp "reviewlens/internal/platform/net/http"
)

// Get registers a body-less GET handler using the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Delete registers a body-less DELETE handler using the envelope adapter
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, Call(h))
}

// Post registers a POST handler that reads the body itself
func Post(r Router, path string, h func(*http.Request) Response) {
	r.Post(path, Handle(h))
}

// PostJSON mounts a validated JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// GetQuery mounts a GET handler whose query string is bound and validated into Q
func GetQuery[Q any](r Router, path string, h func(*http.Request, Q) Response) {
	phttp.GetQuery(r, path, h)
}
