package middleware

import (
	"net/http"
	"runtime/debug"

	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	pnet "reviewlens/internal/platform/net"
	phttp "reviewlens/internal/platform/net/http"
)

// RecoverJSON converts panics into the JSON error envelope and logs the stack
// http.ErrAbortHandler is re-panicked so the server can abort the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID := pnet.RequestID(r.Context()); reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
