// Package concern assigns each cleaned review to the first taxonomy category it mentions
package concern

import (
	"strings"

	"reviewlens/internal/core/taxonomy"
)

// Other is returned when no category keyword occurs in the text
const Other = taxonomy.Other

// Match describes why a category was chosen
type Match struct {
	Category string
	Keyword  string
	Index    int // category position in the taxonomy
}

// Classifier is immutable after construction and safe for concurrent use
type Classifier struct {
	tax *taxonomy.Taxonomy
	ac  *acAutomaton
}

// New compiles every keyword of tax into one automaton
func New(tax *taxonomy.Taxonomy) *Classifier {
	ac := newAutomaton()
	for i, c := range tax.Categories {
		for _, kw := range c.Keywords {
			ac.add(kw, int32(i))
		}
	}
	ac.build()
	return &Classifier{tax: tax, ac: ac}
}

// Taxonomy returns the taxonomy the classifier was built from
func (c *Classifier) Taxonomy() *taxonomy.Taxonomy { return c.tax }

// Classify returns the first category in taxonomy order with any keyword occurring as a
// substring of cleaned, or Other
func (c *Classifier) Classify(cleaned string) string {
	if m, ok := c.Match(cleaned); ok {
		return m.Category
	}
	return Other
}

// Match is Classify that also reports the triggering keyword
// when several keywords of the winning category occur, the one listed first wins
func (c *Classifier) Match(cleaned string) (Match, bool) {
	if cleaned == "" {
		return Match{}, false
	}
	idx, _ := c.ac.lowest(cleaned)
	if idx == none {
		return Match{}, false
	}
	cat := c.tax.Categories[idx]
	for _, kw := range cat.Keywords {
		if kw != "" && strings.Contains(cleaned, kw) {
			return Match{Category: cat.Name, Keyword: kw, Index: int(idx)}, true
		}
	}
	// unreachable while the automaton and the keyword list agree
	return Match{Category: cat.Name, Index: int(idx)}, true
}
