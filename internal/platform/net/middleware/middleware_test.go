package middleware_test

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/metrics"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

func TestAccessLogPassThrough(t *testing.T) {
	cases := []struct {
		name string
		opt  middleware.AccessLogOptions
		code int
	}{
		{"plain", middleware.AccessLogOptions{}, http.StatusCreated},
		{"slow marked", middleware.AccessLogOptions{Slow: time.Nanosecond}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tc.code != http.StatusOK {
					w.WriteHeader(tc.code)
				}
				_, _ = io.WriteString(w, "ok")
			})
			rr := httptest.NewRecorder()
			middleware.AccessLogZerolog(tc.opt)(next).ServeHTTP(rr, httptest.NewRequest("GET", "/x", nil))
			if rr.Code != tc.code || rr.Body.String() != "ok" {
				t.Fatalf("got %d %q", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestLogContextCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Options{Format: "json", Writer: &buf, Level: "info"})

	h := middleware.RequestID()(middleware.LogContext()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logger.C(r.Context()).Info().Msg("inside")
	})))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "rid-log-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	// Init is once per process; another test may have claimed the writer first
	if buf.Len() > 0 && !strings.Contains(buf.String(), `"request_id":"rid-log-1"`) {
		t.Fatalf("log line missing request id: %s", buf.String())
	}
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodePanic || env.Error != "panic recovered" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestRecoverJSONRepanicsAbort(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler, got %v", v)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestRateLimitByIP(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	limited := middleware.RateLimitByIP(2, time.Minute)(ok)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/", nil)
		req.RemoteAddr = "10.1.2.3:5555"
		rr := httptest.NewRecorder()
		limited.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
		if rr.Code == http.StatusTooManyRequests && !strings.Contains(rr.Body.String(), "rate limit") {
			t.Fatalf("429 body = %q", rr.Body.String())
		}
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	unlimited := middleware.RateLimitByIP(0, time.Minute)(ok)
	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		unlimited.ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))
		if rr.Code != http.StatusNoContent {
			t.Fatalf("disabled limiter rejected request %d", i)
		}
	}
}

func TestPrometheusUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Prometheus())
	r.Get("/analyses/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/analyses/abc", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	rec := httptest.NewRecorder()
	promReq := httptest.NewRequest("GET", "/metrics", nil)
	metrics.Handler().ServeHTTP(rec, promReq)
	body := rec.Body.String()
	if !strings.Contains(body, `route="/analyses/{id}"`) {
		t.Fatalf("route pattern label missing from exposition")
	}
	if strings.Contains(body, `route="/analyses/abc"`) {
		t.Fatalf("raw path leaked into labels")
	}
}

func TestCompressGzipsCSV(t *testing.T) {
	h := middleware.Compress(flate.DefaultCompression)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, strings.Repeat("review,product\n", 400))
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip, headers = %v", rr.Header())
	}
	zr, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	b, _ := io.ReadAll(zr)
	if !strings.HasPrefix(string(b), "review,product\n") {
		t.Fatalf("decompressed body prefix = %q", string(b[:20]))
	}
}

func TestCORSPreflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyses", nil)
	req.Header.Set("Origin", "https://example.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestHeartbeatAndTimeoutWrappers(t *testing.T) {
	h := middleware.Heartbeat("/ping")(http.NotFoundHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("heartbeat status = %d", rr.Code)
	}
	if middleware.Timeout(time.Second) == nil || middleware.NoCache() == nil || middleware.RealIP() == nil {
		t.Fatalf("nil wrapper")
	}
}
