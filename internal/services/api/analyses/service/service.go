// Package service implements the analyses API use cases over the analyze ports
package service

import (
	"context"
	stderrs "errors"
	"io"
	"net/http"

	"reviewlens/internal/core/recommend"
	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/core/table"
	"reviewlens/internal/core/taxonomy"
	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/metrics"
	ptime "reviewlens/internal/platform/time"
	andom "reviewlens/internal/services/analyze/domain"
	"reviewlens/internal/services/api/analyses/domain"
)

// Service is the analyses use case surface
type Service struct {
	runner andom.RunnerPort
	store  andom.StorePort
}

// New constructs the service
func New(runner andom.RunnerPort, store andom.StorePort) *Service {
	return &Service{runner: runner, store: store}
}

// Upload parses a CSV document, classifies it and stores the result
func (s *Service) Upload(ctx context.Context, source string, body io.Reader) (domain.Summary, error) {
	t, err := table.Read(body)
	if err != nil {
		metrics.RecordAnalysis(metrics.OutcomeInvalid, 0)
		return domain.Summary{}, TooLarge(err)
	}

	a, err := s.runner.Run(ctx, t)
	if err != nil {
		return domain.Summary{}, err
	}
	rec, err := s.store.Save(ctx, source, a)
	if err != nil {
		return domain.Summary{}, err
	}
	logger.C(logger.WithAnalysis(ctx, rec.ID)).Info().
		Str("source", source).
		Int("rows", a.Len()).
		Bool("has_rating", a.HasRating()).
		Msg("analysis stored")
	return summaryOf(rec), nil
}

// Get returns the summary of a stored analysis
func (s *Service) Get(ctx context.Context, id string) (domain.Summary, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Summary{}, err
	}
	return summaryOf(rec), nil
}

// Reviews returns one page of classified rows and the filtered total
func (s *Service) Reviews(ctx context.Context, id string, q domain.ReviewsQuery) ([]domain.Review, int, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	rows := rec.Analysis.Filter(q.Concern, sentiment.Label(q.Sentiment))
	total := len(rows)

	// pages past the end are empty; the offset is only computed for pages in range
	from, to := total, total
	if q.Page-1 < (total+q.PageSize-1)/q.PageSize {
		from = (q.Page - 1) * q.PageSize
		to = min(from+q.PageSize, total)
	}

	out := make([]domain.Review, 0, to-from)
	for _, r := range rows[from:to] {
		out = append(out, domain.Review{
			Index:     r.Index,
			Review:    r.Text,
			Product:   r.Product,
			Rating:    r.Rating,
			Cleaned:   r.Cleaned,
			Score:     r.Score,
			Sentiment: r.Sentiment,
			Concern:   r.Concern,
			Keyword:   r.Keyword,
		})
	}
	return out, total, nil
}

// Recommendations ranks products for concern
func (s *Service) Recommendations(ctx context.Context, id, concern string) (domain.Recommendations, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Recommendations{}, err
	}
	res := rec.Analysis.Rank(concern)
	basis := string(res.Basis)
	if res.Empty() {
		basis = "none"
	}
	metrics.RecordRecommendation(basis)

	ranked := res.Products
	if ranked == nil {
		ranked = []recommend.Ranked{}
	}
	return domain.Recommendations{
		Concern:  concern,
		Basis:    res.Basis,
		Products: res.Names(),
		Sentinel: res.Empty(),
		Ranked:   ranked,
	}, nil
}

// Export renders the output table as CSV
func (s *Service) Export(ctx context.Context, id string) ([]byte, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := rec.Analysis.Table().Bytes()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "export analysis")
	}
	return b, nil
}

// Delete drops a stored analysis
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Classify labels a single text without storing anything
func (s *Service) Classify(text string) andom.Classification {
	return s.runner.Classify(text)
}

// Taxonomy returns the categories in precedence order
func (s *Service) Taxonomy() domain.Taxonomy {
	tax := s.runner.Taxonomy()
	out := domain.Taxonomy{
		Version:    tax.Version,
		Categories: make([]domain.Category, len(tax.Categories)),
		Fallback:   taxonomy.Other,
	}
	for i, c := range tax.Categories {
		out.Categories[i] = domain.Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// TooLarge maps a body size overrun anywhere in err's chain to a too large error
func TooLarge(err error) error {
	var mbe *http.MaxBytesError
	if stderrs.As(err, &mbe) {
		return perr.TooLargef("upload exceeds %d bytes", mbe.Limit)
	}
	return err
}

func summaryOf(rec andom.Record) domain.Summary {
	a := rec.Analysis
	out := domain.Summary{
		ID:           rec.ID,
		Source:       rec.Source,
		CreatedAt:    rec.CreatedAt,
		Rows:         a.Len(),
		HasRating:    a.HasRating(),
		Columns:      a.Columns(),
		Concerns:     a.Concerns(),
		Distribution: a.Distribution(),
		ExpiresAt:    ptime.Ptr(rec.ExpiresAt),
	}
	if out.Concerns == nil {
		out.Concerns = []string{}
	}
	if out.Distribution.Concerns == nil {
		out.Distribution.Concerns = []andom.ConcernCount{}
	}
	return out
}
