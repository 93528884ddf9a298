// Package domain defines the types and ports of the analyze service
package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"reviewlens/internal/core/recommend"
	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/core/table"
)

// Input and output column names
const (
	ColReview    = "review"
	ColProduct   = "product"
	ColRating    = "rating"
	ColCleaned   = "cleaned_review"
	ColSentiment = "sentiment"
	ColConcern   = "concern"
)

// Required lists the columns every input table must carry
func Required() []string { return []string{ColReview, ColProduct} }

// Review is one processable input row
type Review struct {
	Index   int      // 0-based input row position
	Text    string   // review cell as read
	Product string   // product cell as read
	Rating  *float64 // nil when absent, empty or unparseable
	Fields  []string // the full input row, passed through untouched
}

// ClassifiedReview is a Review with every derived label attached
type ClassifiedReview struct {
	Review
	Cleaned   string
	Score     float64
	Sentiment sentiment.Label
	Concern   string
	Keyword   string // the taxonomy keyword behind Concern, empty for Other
}

// Classification is the result of classifying a single text
type Classification struct {
	Cleaned   string          `json:"cleaned"`
	Score     float64         `json:"score"`
	Sentiment sentiment.Label `json:"sentiment"`
	Concern   string          `json:"concern"`
	Keyword   string          `json:"keyword,omitempty"`
}

// ReviewsFrom maps table rows to Reviews; the caller has already checked Required
func ReviewsFrom(t *table.Table) []Review {
	ri, pi, rt := t.Index(ColReview), t.Index(ColProduct), t.Index(ColRating)
	out := make([]Review, len(t.Rows))
	for i, row := range t.Rows {
		r := Review{Index: i, Text: row[ri], Product: row[pi], Fields: row}
		if rt >= 0 {
			r.Rating = ParseRating(row[rt])
		}
		out[i] = r
	}
	return out
}

// ParseRating returns nil for empty, unparseable or non finite cells
func ParseRating(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Distribution holds label counts for chart collaborators
// Concerns is ordered by descending count, ties in first seen order
type Distribution struct {
	Sentiment map[sentiment.Label]int `json:"sentiment"`
	Concerns  []ConcernCount          `json:"concerns"`
}

// ConcernCount is one bar of the concern distribution
type ConcernCount struct {
	Concern string `json:"concern"`
	Count   int    `json:"count"`
}

// Analysis is a completed pipeline run; it is read only once returned
type Analysis struct {
	header    []string
	rows      []ClassifiedReview
	hasRating bool
	concerns  []string
}

// NewAnalysis assembles a completed run; rows must be in input order
func NewAnalysis(header []string, rows []ClassifiedReview, hasRating bool) *Analysis {
	a := &Analysis{
		header:    append([]string(nil), header...),
		rows:      rows,
		hasRating: hasRating,
	}
	seen := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seen[r.Concern]; !ok {
			seen[r.Concern] = struct{}{}
			a.concerns = append(a.concerns, r.Concern)
		}
	}
	return a
}

// Len returns the number of classified rows
func (a *Analysis) Len() int { return len(a.rows) }

// Rows returns the classified rows in input order; callers must not modify them
func (a *Analysis) Rows() []ClassifiedReview { return a.rows }

// HasRating reports whether the input carried a rating column
func (a *Analysis) HasRating() bool { return a.hasRating }

// Concerns returns the distinct concerns in first seen order
func (a *Analysis) Concerns() []string { return append([]string(nil), a.concerns...) }

// Columns returns the output header: input columns in input order followed by the derived columns.
// A derived column that already exists in the input keeps its position
func (a *Analysis) Columns() []string {
	header, _ := a.layout()
	return header
}

// layout returns the output header and the positions of cleaned_review, sentiment and concern
func (a *Analysis) layout() ([]string, [3]int) {
	header := append([]string(nil), a.header...)
	var pos [3]int
	for i, col := range []string{ColCleaned, ColSentiment, ColConcern} {
		pos[i] = -1
		for j, h := range header {
			if h == col {
				pos[i] = j
				break
			}
		}
		if pos[i] < 0 {
			pos[i] = len(header)
			header = append(header, col)
		}
	}
	return header, pos
}

// Table returns the output table laid out as Columns; existing derived columns are overwritten
func (a *Analysis) Table() *table.Table {
	header, pos := a.layout()
	rows := make([][]string, len(a.rows))
	for i, r := range a.rows {
		row := make([]string, len(header))
		copy(row, r.Fields)
		row[pos[0]] = r.Cleaned
		row[pos[1]] = string(r.Sentiment)
		row[pos[2]] = r.Concern
		rows[i] = row
	}
	return &table.Table{Header: header, Rows: rows}
}

// Rank returns the ranked recommendation for concern
// rows with an empty product never rank
func (a *Analysis) Rank(concern string) recommend.Result {
	in := make([]recommend.Row, 0, len(a.rows))
	for _, r := range a.rows {
		if r.Product == "" {
			continue
		}
		row := recommend.Row{Product: r.Product, Concern: r.Concern, Sentiment: r.Sentiment}
		if r.Rating != nil {
			row.Rating, row.HasRating = *r.Rating, true
		}
		in = append(in, row)
	}
	return recommend.Rank(in, concern, a.hasRating)
}

// Recommend returns up to five products for concern or the sentinel entry
func (a *Analysis) Recommend(concern string) []string { return a.Rank(concern).Names() }

// Distribution counts rows by sentiment and by concern
func (a *Analysis) Distribution() Distribution {
	d := Distribution{Sentiment: make(map[sentiment.Label]int, 3)}
	for _, l := range sentiment.Labels() {
		d.Sentiment[l] = 0
	}
	idx := make(map[string]int)
	for _, r := range a.rows {
		d.Sentiment[r.Sentiment]++
		i, ok := idx[r.Concern]
		if !ok {
			i = len(d.Concerns)
			idx[r.Concern] = i
			d.Concerns = append(d.Concerns, ConcernCount{Concern: r.Concern})
		}
		d.Concerns[i].Count++
	}
	sort.SliceStable(d.Concerns, func(i, j int) bool { return d.Concerns[i].Count > d.Concerns[j].Count })
	return d
}

// Filter returns rows matching concern and label; empty values match everything
func (a *Analysis) Filter(concern string, label sentiment.Label) []ClassifiedReview {
	if concern == "" && label == "" {
		return a.rows
	}
	var out []ClassifiedReview
	for _, r := range a.rows {
		if concern != "" && r.Concern != concern {
			continue
		}
		if label != "" && r.Sentiment != label {
			continue
		}
		out = append(out, r)
	}
	return out
}
