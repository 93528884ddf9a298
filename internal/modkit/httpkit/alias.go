// Package httpkit re-exports the platform http helpers modules use
// modules import this instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "reviewlens/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Page is the pagination metadata type
	Page = phttp.Page

	// Response is the return-style response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// List returns a 200 response with items and pagination
func List(items any, total, page, size int) Response { return phttp.List(items, total, page, size) }

// Attachment returns a raw file download
func Attachment(filename, contentType string, body []byte) Response {
	return phttp.Attachment(filename, contentType, body)
}

// Param returns a path parameter
func Param(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// Call adapts a handler that takes no JSON body
// a returned Response is written as is, anything else is wrapped in OK
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Handle adapts a Response returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }
