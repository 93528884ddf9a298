package http

import "net/http"

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a pure JSON handler for POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}

// GetQuery mounts a GET handler whose query string binds into Q
func GetQuery[Q any](r Router, path string, h func(*http.Request, Q) Response) {
	r.Get(path, QueryHandler(h))
}
