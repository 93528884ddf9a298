package domain

import (
	"context"
	"time"

	"reviewlens/internal/core/table"
	"reviewlens/internal/core/taxonomy"
)

// RunnerPort runs the classification pipeline
type RunnerPort interface {
	// Run classifies every row of t; it returns a schema error before touching any row
	// when a required column is missing and nothing when ctx is cancelled mid run
	Run(ctx context.Context, t *table.Table) (*Analysis, error)

	// Classify runs the per row stages over a single text
	Classify(text string) Classification

	// Taxonomy returns the categories the runner classifies against
	Taxonomy() *taxonomy.Taxonomy
}

// Record is a stored analysis with its bookkeeping
type Record struct {
	ID        string
	Source    string // upload file name when known
	CreatedAt time.Time
	ExpiresAt time.Time
	Analysis  *Analysis
}

// StorePort holds completed analyses for later queries
type StorePort interface {
	Save(ctx context.Context, source string, a *Analysis) (Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	Len() int
}
