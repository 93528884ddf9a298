package middleware

import (
	"net/http"
	"time"

	perr "reviewlens/internal/platform/errors"
	phttp "reviewlens/internal/platform/net/http"

	"github.com/go-chi/httprate"
)

// RateLimitByIP allows requests per window for each client IP
// requests <= 0 disables limiting; rejections use the JSON error envelope
func RateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			phttp.RespondError(w, r, perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit of %d requests per %s exceeded", requests, window))
		}),
	)
}
