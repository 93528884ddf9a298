// Package recommend ranks products for a concern from positively reviewed rows
package recommend

import (
	"sort"

	"reviewlens/internal/core/sentiment"
)

// MaxResults caps every recommendation list
const MaxResults = 5

// NoRecommendations is the sentinel entry returned in place of an empty list
// it is a marker, never a product
const NoRecommendations = "No recommendations available"

// Basis names the ranking rule that produced a Result
type Basis string

const (
	// ByRating ranks products by mean rating
	ByRating Basis = "rating"
	// ByCount ranks products by the number of positive reviews
	ByCount Basis = "count"
)

// Row is the slice of a classified review the engine needs
type Row struct {
	Product   string
	Rating    float64
	HasRating bool // false when the cell was empty or unparseable
	Concern   string
	Sentiment sentiment.Label
}

// Ranked is one recommended product with the numbers behind its position
type Ranked struct {
	Product string  `json:"product"`
	Score   float64 `json:"score"`   // mean rating or review count
	Reviews int     `json:"reviews"` // positive reviews for the concern
}

// Result is a ranked recommendation list
type Result struct {
	Concern  string   `json:"concern"`
	Basis    Basis    `json:"basis"`
	Products []Ranked `json:"products"`
}

// Empty reports whether nothing qualified
func (r Result) Empty() bool { return len(r.Products) == 0 }

// Names returns the product names, or the single sentinel entry when empty
func (r Result) Names() []string {
	if r.Empty() {
		return []string{NoRecommendations}
	}
	out := make([]string, len(r.Products))
	for i, p := range r.Products {
		out[i] = p.Product
	}
	return out
}

// Recommend returns up to MaxResults products for concern, or the sentinel
func Recommend(rows []Row, concern string, hasRating bool) []string {
	return Rank(rows, concern, hasRating).Names()
}

type agg struct {
	product string
	first   int
	reviews int
	rated   int
	sum     float64
}

// Rank filters rows to concern and Positive, then ranks products.
// With a rating column products are ordered by mean rating and products without any parseable
// rating are left out; without one they are ordered by review count.
// Ties keep the order in which products first appear among the filtered rows
func Rank(rows []Row, concern string, hasRating bool) Result {
	basis := ByCount
	if hasRating {
		basis = ByRating
	}

	byProduct := make(map[string]*agg)
	var order []*agg
	for _, r := range rows {
		if r.Concern != concern || r.Sentiment != sentiment.Positive {
			continue
		}
		a, ok := byProduct[r.Product]
		if !ok {
			a = &agg{product: r.Product, first: len(order)}
			byProduct[r.Product] = a
			order = append(order, a)
		}
		a.reviews++
		if r.HasRating {
			a.rated++
			a.sum += r.Rating
		}
	}

	ranked := make([]Ranked, 0, len(order))
	for _, a := range order {
		switch basis {
		case ByRating:
			if a.rated == 0 {
				continue
			}
			ranked = append(ranked, Ranked{Product: a.product, Score: a.sum / float64(a.rated), Reviews: a.reviews})
		default:
			ranked = append(ranked, Ranked{Product: a.product, Score: float64(a.reviews), Reviews: a.reviews})
		}
	}

	// stable keeps first seen order among equal scores
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return Result{Concern: concern, Basis: basis, Products: ranked}
}
