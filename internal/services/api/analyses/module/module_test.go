package module

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/modkit"
	"reviewlens/internal/platform/config"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/testkit"
	anrepo "reviewlens/internal/services/analyze/repo"
	ansvc "reviewlens/internal/services/analyze/service"

	"github.com/go-chi/chi/v5"
)

func deps() modkit.Deps {
	return modkit.Deps{Cfg: config.New().Prefix("REVIEWLENS_")}
}

func ports() Ports {
	return Ports{
		Runner: ansvc.New(sentiment.ScorerFunc(func(string) float64 { return 0 }), nil, ansvc.Config{Workers: 1}),
		Store:  anrepo.NewMemory(anrepo.Options{}),
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("REVIEWLENS_API_MAX_UPLOAD_BYTES", "1MiB")
	t.Setenv("REVIEWLENS_API_RATE_LIMIT", "10")

	got := FromConfig(deps().Cfg)
	if got.MaxUploadBytes != 1<<20 || got.RateLimit != 10 {
		t.Fatalf("FromConfig = %+v", got)
	}
}

func TestFromConfigDefaults(t *testing.T) {
	got := FromConfig(config.New().Prefix("REVIEWLENS_UNSET_"))
	if got.MaxUploadBytes != 32<<20 || got.RateLimit != 0 {
		t.Fatalf("defaults = %+v", got)
	}
}

func TestNewRequiresPorts(t *testing.T) {
	testkit.MustPanic(t, func() { New(deps()) })
	testkit.MustPanic(t, func() { New(deps(), modkit.WithPorts(Ports{})) })
}

func TestUploadRateLimit(t *testing.T) {
	t.Setenv("REVIEWLENS_API_RATE_LIMIT", "1")
	m := New(deps(), modkit.WithPorts(ports()))
	if m.Name() != "analyses" || m.Ports() != nil {
		t.Fatalf("Name = %q Ports = %v", m.Name(), m.Ports())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	post := func() int {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", strings.NewReader("review,product\nok,P1\n")))
		return rec.Code
	}
	if got := post(); got != http.StatusCreated {
		t.Fatalf("first upload = %d", got)
	}
	if got := post(); got != http.StatusTooManyRequests {
		t.Fatalf("second upload = %d, want 429", got)
	}

	// reads are not limited
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/taxonomy", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("taxonomy = %d", rec.Code)
	}
}
