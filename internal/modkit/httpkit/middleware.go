package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"reviewlens/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration // default 60s
	SlowRequest time.Duration // access log warn threshold, default 2s
	CORS        middleware.CORSOptions
}

// CommonStack returns the baseline middleware for the versioned API
// order matters: ids first, then recovery, then observability
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	o := StackOptions{Timeout: 60 * time.Second, SlowRequest: 2 * time.Second}
	if len(opts) > 0 {
		if opts[0].Timeout > 0 {
			o.Timeout = opts[0].Timeout
		}
		if opts[0].SlowRequest > 0 {
			o.SlowRequest = opts[0].SlowRequest
		}
		o.CORS = opts[0].CORS
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogContext(),

		middleware.RecoverJSON,
		middleware.NoCache(),

		middleware.Prometheus(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(o.Timeout),
	}
}
