package module

import (
	"time"

	"reviewlens/internal/platform/config"
)

// Options holds configuration settings for the analyze module
type Options struct {
	Workers     int
	MaxAnalyses int
	TTL         time.Duration
}

// FromConfig extracts Options from ANALYZE_* under the given config view
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("ANALYZE_")
	return Options{
		Workers:     ac.MayInt("WORKERS", 0),
		MaxAnalyses: ac.MayPositiveInt("MAX_ANALYSES", 64),
		TTL:         ac.MayDuration("TTL", time.Hour),
	}
}
