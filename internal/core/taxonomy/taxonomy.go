// Package taxonomy loads the ordered concern categories used by the concern classifier
// category order is significant: earlier categories win ties, so the taxonomy is a slice, never a map
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.json
var embedded []byte

// Other is the reserved fallback concern for text matching no category
const Other = "Other"

// Category is one named concern with its trigger keywords
type Category struct {
	Name     string   `json:"name"     yaml:"name"     validate:"required"`
	Keywords []string `json:"keywords" yaml:"keywords" validate:"required,min=1,dive,required"`
}

// Taxonomy is an ordered list of categories
type Taxonomy struct {
	Version    int        `json:"version"    yaml:"version"    validate:"eq=1"`
	Categories []Category `json:"categories" yaml:"categories" validate:"required,min=1,dive"`
}

// Names returns the category names in order
func (t *Taxonomy) Names() []string {
	out := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		out[i] = c.Name
	}
	return out
}

// Format selects the decoder for Parse
type Format string

const (
	// JSON documents
	JSON Format = "json"
	// YAML documents
	YAML Format = "yaml"
)

var (
	defOnce sync.Once
	defTax  *Taxonomy
	defErr  error
	valid   = validator.New(validator.WithRequiredStructEnabled())
)

// Default returns the embedded taxonomy, parsed once
// callers must treat the result as read only
func Default() (*Taxonomy, error) {
	defOnce.Do(func() {
		defTax, defErr = Parse(embedded, JSON)
	})
	return defTax, defErr
}

// MustDefault is Default that panics on a broken embedded asset
func MustDefault() *Taxonomy {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// LoadFile reads a taxonomy override from disk; the extension picks the format
func LoadFile(path string) (*Taxonomy, error) {
	var f Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f = JSON
	case ".yaml", ".yml":
		f = YAML
	default:
		return nil, fmt.Errorf("taxonomy: unsupported file extension %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read %s: %w", path, err)
	}
	t, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes, normalizes and validates a taxonomy document
func Parse(data []byte, f Format) (*Taxonomy, error) {
	var t Taxonomy
	var err error
	switch f {
	case JSON:
		err = json.Unmarshal(data, &t)
	case YAML:
		err = yaml.Unmarshal(data, &t)
	default:
		return nil, fmt.Errorf("taxonomy: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("taxonomy: decode %s: %w", f, err)
	}
	t.normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// normalize trims names and trims plus lowercases keywords
func (t *Taxonomy) normalize() {
	for i := range t.Categories {
		c := &t.Categories[i]
		c.Name = strings.TrimSpace(c.Name)
		for j, k := range c.Keywords {
			c.Keywords[j] = strings.ToLower(strings.TrimSpace(k))
		}
	}
}

// Validate checks struct rules plus unique names and the reserved fallback
func (t *Taxonomy) Validate() error {
	if err := valid.Struct(t); err != nil {
		return fmt.Errorf("taxonomy: invalid: %w", err)
	}
	seen := make(map[string]struct{}, len(t.Categories))
	for _, c := range t.Categories {
		if strings.EqualFold(c.Name, Other) {
			return fmt.Errorf("taxonomy: category name %q is reserved", Other)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("taxonomy: duplicate category %q", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
