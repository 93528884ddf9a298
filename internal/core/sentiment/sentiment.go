// Package sentiment turns a compound polarity score into a three way label
package sentiment

// Label is the sentiment class of a review
type Label string

const (
	// Positive is a compound score at or above the positive threshold
	Positive Label = "Positive"
	// Negative is a compound score at or below the negative threshold
	Negative Label = "Negative"
	// Neutral is everything in between
	Neutral Label = "Neutral"
)

// Labels lists every label in display order
func Labels() []Label { return []Label{Positive, Negative, Neutral} }

// Valid reports whether l is one of the three labels
func (l Label) Valid() bool {
	switch l {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// boundaries are inclusive on both sides
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer returns a compound polarity in [-1, 1] for already cleaned text
type Scorer interface {
	Score(text string) float64
}

// ScorerFunc adapts a plain function to Scorer
type ScorerFunc func(string) float64

// Score implements Scorer
func (f ScorerFunc) Score(text string) float64 { return f(text) }

// Classifier labels cleaned text with an injected Scorer
type Classifier struct {
	scorer Scorer
}

// NewClassifier panics on a nil scorer; the scorer is built once at startup
func NewClassifier(s Scorer) *Classifier {
	if s == nil {
		panic("sentiment: nil scorer")
	}
	return &Classifier{scorer: s}
}

// Classify returns the label for cleaned text
func (c *Classifier) Classify(cleaned string) Label {
	_, l := c.Evaluate(cleaned)
	return l
}

// Evaluate returns the compound score together with its label
// empty text is 0 and never reaches the scorer
func (c *Classifier) Evaluate(cleaned string) (float64, Label) {
	if cleaned == "" {
		return 0, Neutral
	}
	score := c.scorer.Score(cleaned)
	return score, LabelFor(score)
}

// LabelFor maps a compound score to its label
func LabelFor(score float64) Label {
	switch {
	case score >= positiveThreshold:
		return Positive
	case score <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
