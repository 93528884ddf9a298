// Package domain defines the API payloads of the analyses module
package domain

import (
	"time"

	"reviewlens/internal/core/recommend"
	"reviewlens/internal/core/sentiment"
	andom "reviewlens/internal/services/analyze/domain"
)

// Summary describes a stored analysis
type Summary struct {
	ID           string             `json:"id"`
	Source       string             `json:"source,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	ExpiresAt    *time.Time         `json:"expires_at,omitempty"`
	Rows         int                `json:"rows"`
	HasRating    bool               `json:"has_rating"`
	Columns      []string           `json:"columns"`
	Concerns     []string           `json:"concerns"`
	Distribution andom.Distribution `json:"distribution"`
}

// ReviewsQuery pages and filters classified rows
type ReviewsQuery struct {
	Page      int    `query:"page"      default:"1"  validate:"min=1"`
	PageSize  int    `query:"page_size" default:"50" validate:"min=1,max=500"`
	Concern   string `query:"concern"`
	Sentiment string `query:"sentiment" validate:"omitempty,oneof=Positive Negative Neutral"`
}

// Review is one classified row as returned by the API
type Review struct {
	Index     int             `json:"index"`
	Review    string          `json:"review"`
	Product   string          `json:"product"`
	Rating    *float64        `json:"rating,omitempty"`
	Cleaned   string          `json:"cleaned_review"`
	Score     float64         `json:"score"`
	Sentiment sentiment.Label `json:"sentiment"`
	Concern   string          `json:"concern"`
	Keyword   string          `json:"keyword,omitempty"`
}

// RecommendationsQuery selects the concern to rank
type RecommendationsQuery struct {
	Concern string `query:"concern" validate:"required"`
}

// Recommendations is the ranked product list for a concern
// Products holds the sentinel entry alone when Sentinel is true
type Recommendations struct {
	Concern  string             `json:"concern"`
	Basis    recommend.Basis    `json:"basis"`
	Products []string           `json:"products"`
	Sentinel bool               `json:"sentinel"`
	Ranked   []recommend.Ranked `json:"ranked"`
}

// ClassifyInput is a single text to classify
type ClassifyInput struct {
	Text string `json:"text" validate:"max=100000"`
}

// Classification is the result of classifying one text
type Classification = andom.Classification

// Category is one taxonomy entry
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Taxonomy lists the categories in precedence order
type Taxonomy struct {
	Version    int        `json:"version"`
	Categories []Category `json:"categories"`
	Fallback   string     `json:"fallback"`
}
