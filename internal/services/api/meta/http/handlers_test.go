package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewlens/internal/modkit/httpkit"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type fixedCounter int

func (c fixedCounter) Len() int { return int(c) }

func TestMetaRoutes(t *testing.T) {
	started := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, Deps{
		ServiceName: "reviewlens-api",
		StartedAt:   started,
		Analyses:    fixedCounter(3),
		Now:         func() time.Time { return started.Add(90 * time.Second) },
	})

	cases := []struct {
		path  string
		wants []string
	}{
		{"/health", []string{`"ok":true`, `"now":"2026-10-01T12:01:30Z"`}},
		{"/version", []string{`"service":"reviewlens-api"`, `"version":"dev"`}},
		{"/service", []string{`"uptime":90`, `"analyses":3`}},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, c.path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", c.path, rec.Code)
		}
		for _, w := range c.wants {
			testkit.MustContain(t, rec.Body.String(), w)
		}
	}
}

func TestServiceWithoutCounter(t *testing.T) {
	var r httpkit.Router = phttp.AdaptChi(chi.NewRouter())
	Register(r, Deps{ServiceName: "reviewlens-api", StartedAt: time.Now()})
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/service", nil))
	testkit.MustContain(t, rec.Body.String(), `"analyses":0`)
}
