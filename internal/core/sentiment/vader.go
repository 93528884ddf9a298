package sentiment

import (
	"sync"

	"github.com/jonreiter/govader"
)

// Vader scores text with the VADER lexicon and rule set
// the underlying analyzer is not documented as goroutine safe so calls are serialized
type Vader struct {
	mu  sync.Mutex
	sia *govader.SentimentIntensityAnalyzer
}

// NewVader loads the lexicon; construct it once per process and share it
func NewVader() *Vader {
	return &Vader{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the VADER compound score
func (v *Vader) Score(text string) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sia.PolarityScores(text).Compound
}
