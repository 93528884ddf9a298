// Package http provides http transport for analyses
package http

import (
	"io"
	"mime"
	stdhttp "net/http"
	"strings"

	"reviewlens/internal/modkit/httpkit"
	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/services/api/analyses/domain"
	svc "reviewlens/internal/services/api/analyses/service"
)

// ExportFilename is the download name of the output table
const ExportFilename = "review_analysis.csv"

// UploadField is the multipart form field carrying the CSV
const UploadField = "file"

// Deps are the handler dependencies
type Deps struct {
	Service        *svc.Service
	MaxUploadBytes int64
	// UploadMw wraps only the upload route, e.g. a rate limiter
	UploadMw []func(stdhttp.Handler) stdhttp.Handler
}

type handlers struct {
	svc      *svc.Service
	maxBytes int64
}

// Register mounts the analyses, classify and taxonomy routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{svc: d.Service, maxBytes: d.MaxUploadBytes}

	r.Group(func(up httpkit.Router) {
		if len(d.UploadMw) > 0 {
			up.Use(d.UploadMw...)
		}
		httpkit.Post(up, "/analyses", h.upload)
	})
	httpkit.Get(r, "/analyses/{id}", h.get)
	httpkit.GetQuery[domain.ReviewsQuery](r, "/analyses/{id}/reviews", h.reviews)
	httpkit.GetQuery[domain.RecommendationsQuery](r, "/analyses/{id}/recommendations", h.recommendations)
	r.Get("/analyses/{id}/export", httpkit.Handle(h.export))
	httpkit.Delete(r, "/analyses/{id}", h.delete)

	httpkit.PostJSON[domain.ClassifyInput](r, "/classify", h.classify)
	httpkit.Get(r, "/taxonomy", h.taxonomy)
}

// @Summary Classify a CSV of reviews and store the result
// @Tags Analyses
// @Accept text/csv
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV upload when sent as multipart"
// @Success 201 {object} domain.Summary "stored"
// @Failure 400 {object} httpkit.Envelope "malformed CSV"
// @Failure 413 {object} httpkit.Envelope "upload too large"
// @Failure 422 {object} httpkit.Envelope "missing required columns"
// @Router /analyses [post]
func (h *handlers) upload(r *stdhttp.Request) httpkit.Response {
	if h.maxBytes > 0 {
		if r.ContentLength > h.maxBytes {
			return httpkit.Error(perr.TooLargef("upload exceeds %d bytes", h.maxBytes))
		}
		r.Body = stdhttp.MaxBytesReader(nil, r.Body, h.maxBytes)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Debug().Err(err).Msg("close upload body")
		}
	}()

	body, source, err := uploadBody(r)
	if err != nil {
		return httpkit.Error(svc.TooLarge(err))
	}
	sum, err := h.svc.Upload(r.Context(), source, body)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Created(sum)
}

// uploadBody returns the CSV stream: the "file" part of a multipart form or the raw body
func uploadBody(r *stdhttp.Request) (io.Reader, string, error) {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mt, "multipart/") {
		return r.Body, "", nil
	}
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", perr.WithField(perr.Validationf("malformed multipart body"), UploadField)
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, "", perr.WithField(perr.Validationf("multipart field %q is required", UploadField), UploadField)
		}
		if err != nil {
			return nil, "", perr.Wrap(err, perr.ErrorCodeValidation, "read multipart body")
		}
		if part.FormName() == UploadField {
			return part, part.FileName(), nil
		}
	}
}

// @Summary Analysis summary
// @Tags Analyses
// @Produce json
// @Param id path string true "Analysis id"
// @Success 200 {object} domain.Summary "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /analyses/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

// @Summary Classified rows, paginated
// @Tags Analyses
// @Produce json
// @Param id path string true "Analysis id"
// @Param query query domain.ReviewsQuery false "Paging and filters"
// @Success 200 {array} domain.Review "ok"
// @Failure 400 {object} httpkit.Envelope "bad query"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /analyses/{id}/reviews [get]
func (h *handlers) reviews(r *stdhttp.Request, q domain.ReviewsQuery) httpkit.Response {
	items, total, err := h.svc.Reviews(r.Context(), httpkit.Param(r, "id"), q)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(items, total, q.Page, q.PageSize)
}

// @Summary Top products for a concern
// @Tags Analyses
// @Produce json
// @Param id path string true "Analysis id"
// @Param concern query string true "Concern name"
// @Success 200 {object} domain.Recommendations "ok"
// @Failure 400 {object} httpkit.Envelope "missing concern"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /analyses/{id}/recommendations [get]
func (h *handlers) recommendations(r *stdhttp.Request, q domain.RecommendationsQuery) httpkit.Response {
	out, err := h.svc.Recommendations(r.Context(), httpkit.Param(r, "id"), q.Concern)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(out)
}

// @Summary Download the output table
// @Tags Analyses
// @Produce text/csv
// @Param id path string true "Analysis id"
// @Success 200 {file} file "review_analysis.csv"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /analyses/{id}/export [get]
func (h *handlers) export(r *stdhttp.Request) httpkit.Response {
	b, err := h.svc.Export(r.Context(), httpkit.Param(r, "id"))
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Attachment(ExportFilename, "text/csv; charset=utf-8", b)
}

// @Summary Drop a stored analysis
// @Tags Analyses
// @Param id path string true "Analysis id"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /analyses/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Classify a single text
// @Tags Classify
// @Accept json
// @Produce json
// @Param payload body domain.ClassifyInput true "Text"
// @Success 200 {object} domain.Classification "ok"
// @Failure 400 {object} httpkit.Envelope "bad body"
// @Router /classify [post]
func (h *handlers) classify(_ *stdhttp.Request, in domain.ClassifyInput) (any, error) {
	return h.svc.Classify(in.Text), nil
}

// @Summary Concern categories in precedence order
// @Tags Classify
// @Produce json
// @Success 200 {object} domain.Taxonomy "ok"
// @Router /taxonomy [get]
func (h *handlers) taxonomy(_ *stdhttp.Request) (any, error) {
	return h.svc.Taxonomy(), nil
}
