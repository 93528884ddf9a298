// Package service implements the analyze pipeline
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"reviewlens/internal/core/concern"
	"reviewlens/internal/core/normalize"
	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/core/table"
	"reviewlens/internal/core/taxonomy"
	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/metrics"
	"reviewlens/internal/services/analyze/domain"
)

// Config for the analyze service
type Config struct {
	Workers int // default runtime.NumCPU()
}

// Service implements domain.RunnerPort
type Service struct {
	norm *normalize.Normalizer
	sent *sentiment.Classifier
	conc *concern.Classifier
	cfg  Config
}

// New constructs the pipeline; scorer and tax are shared read only across runs
func New(scorer sentiment.Scorer, tax *taxonomy.Taxonomy, cfg Config) *Service {
	if tax == nil {
		tax = taxonomy.MustDefault()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Service{
		norm: normalize.New(),
		sent: sentiment.NewClassifier(scorer),
		conc: concern.New(tax),
		cfg:  cfg,
	}
}

// Workers returns the resolved pool size
func (s *Service) Workers() int { return s.cfg.Workers }

// Taxonomy implements domain.RunnerPort
func (s *Service) Taxonomy() *taxonomy.Taxonomy { return s.conc.Taxonomy() }

// Classify implements domain.RunnerPort
func (s *Service) Classify(text string) domain.Classification {
	cleaned := s.norm.Normalize(text)
	score, label := s.sent.Evaluate(cleaned)
	out := domain.Classification{Cleaned: cleaned, Score: score, Sentiment: label, Concern: concern.Other}
	if m, ok := s.conc.Match(cleaned); ok {
		out.Concern, out.Keyword = m.Category, m.Keyword
	}
	return out
}

func (s *Service) classify(r domain.Review) domain.ClassifiedReview {
	c := s.Classify(r.Text)
	return domain.ClassifiedReview{
		Review:    r,
		Cleaned:   c.Cleaned,
		Score:     c.Score,
		Sentiment: c.Sentiment,
		Concern:   c.Concern,
		Keyword:   c.Keyword,
	}
}

// Run implements domain.RunnerPort
func (s *Service) Run(ctx context.Context, t *table.Table) (*domain.Analysis, error) {
	start := time.Now()
	log := logger.C(ctx)

	if err := t.RequireColumns(domain.Required()...); err != nil {
		metrics.RecordAnalysis(metrics.OutcomeSchema, 0)
		log.Warn().Err(err).Strs("header", t.Header).Msg("analysis rejected")
		return nil, err
	}

	reviews := domain.ReviewsFrom(t)
	out := make([]domain.ClassifiedReview, len(reviews))

	sem := make(chan struct{}, s.cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range reviews {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			if ctx.Err() != nil {
				return
			}
			// each slot is written by exactly one goroutine so order needs no lock
			out[i] = s.classify(reviews[i])
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		metrics.RecordAnalysis(metrics.OutcomeCancelled, 0)
		log.Info().Err(err).Int("rows", len(reviews)).Msg("analysis cancelled")
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "analysis cancelled")
	}

	for _, r := range out {
		metrics.RecordRow(string(r.Sentiment), r.Concern)
	}
	a := domain.NewAnalysis(t.Header, out, t.Has(domain.ColRating))

	elapsed := time.Since(start)
	metrics.RecordAnalysis(metrics.OutcomeOK, elapsed)
	log.Debug().
		Int("rows", a.Len()).
		Int("workers", s.cfg.Workers).
		Bool("has_rating", a.HasRating()).
		Dur("elapsed", elapsed).
		Msg("analysis complete")
	return a, nil
}
