package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"
	phttp "reviewlens/internal/platform/net/http"

	json "github.com/goccy/go-json"
)

func reqWithID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestHandleSuccessShapes(t *testing.T) {
	cases := []struct {
		name   string
		resp   phttp.Response
		status int
		page   bool
	}{
		{"ok", phttp.OK(map[string]int{"rows": 3}), http.StatusOK, false},
		{"created", phttp.Created(map[string]string{"id": "a"}), http.StatusCreated, false},
		{"zero status", phttp.Response{Body: "x"}, http.StatusOK, false},
		{"list", phttp.List([]int{1, 2}, 10, 2, 2), http.StatusOK, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			phttp.Handle(func(*http.Request) phttp.Response { return tc.resp })(rec, reqWithID("GET", "/", "rid-1"))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			env := decodeEnvelope(t, rec)
			if env.StatusCode != tc.status || env.RequestID != "rid-1" || env.Data == nil {
				t.Fatalf("envelope = %+v", env)
			}
			if tc.page && (env.Page == nil || env.Page.Total != 10 || env.Page.Page != 2) {
				t.Fatalf("page = %+v", env.Page)
			}
		})
	}
}

func TestHandleNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response { return phttp.NoContent() })(rec, reqWithID("DELETE", "/", "r"))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content: code=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestHandleErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
		field  string
	}{
		{"not found", perr.NotFoundf("analysis %s not found", "x"), http.StatusNotFound, perr.ErrorCodeNotFound, ""},
		{"schema", perr.NewSchema("review"), http.StatusUnprocessableEntity, perr.ErrorCodeSchema, "review"},
		{"validation field", perr.WithField(perr.Validationf("bad"), "page"), http.StatusBadRequest, perr.ErrorCodeValidation, "page"},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(tc.err) })(rec, reqWithID("GET", "/", "rid-e"))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			env := decodeEnvelope(t, rec)
			if env.Code != tc.code || env.Error == "" || env.Field != tc.field || env.RequestID != "rid-e" {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	body := []byte("review,product\n")
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Attachment("review_analysis.csv", "text/csv; charset=utf-8", body)
	})(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="review_analysis.csv"` {
		t.Fatalf("disposition = %q", cd)
	}
	if rec.Body.String() != string(body) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondError(rec, reqWithID("GET", "/", "rid-x"), perr.TooLargef("too big"))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != perr.ErrorCodeTooLarge {
		t.Fatalf("code = %v", env.Code)
	}
}
