// Package normalize reduces review text to the form every classifier sees
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode lowercase mapping
// 3 Keep ASCII letters, ASCII digits and whitespace, drop everything else
// 4 Whitespace only results become empty
//
// Whitespace is kept as is, never collapsed, so offsets stay comparable across stages
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer is concurrency safe; casers are pooled because they carry state
type Normalizer struct{}

var casePool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the cleaned form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string { return Normalize(s) }

// Normalize is the package level form of (*Normalizer).Normalize
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8
	s = strings.ToValidUTF8(s, "")

	// 2 lowercase via pooled caser then reset and return it
	c := casePool.Get().(*cases.Caser)
	s = c.String(s)
	c.Reset()
	casePool.Put(c)

	// 3 filter
	s = keep(s)

	// 4 whitespace only collapses to empty
	if strings.TrimFunc(s, isSpace) == "" {
		return ""
	}
	return s
}

// keep drops every rune outside [a-z0-9] and whitespace
// the fast path returns s unchanged when nothing would be dropped
func keep(s string) string {
	clean := true
	for _, r := range s {
		if !allowed(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	default:
		return isSpace(r)
	}
}

// isSpace matches unicode.IsSpace plus the ASCII information separators
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
