// Package repo provides the in memory analysis store
package repo

import (
	"context"
	"sync"
	"time"

	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/metrics"
	"reviewlens/internal/services/analyze/domain"

	"github.com/google/uuid"
)

// Options bound the store
type Options struct {
	MaxEntries int           // oldest analyses are evicted past this, default 64
	TTL        time.Duration // 0 keeps analyses until evicted by MaxEntries
}

// Memory implements domain.StorePort
// analyses are immutable so records are handed out without copying
type Memory struct {
	mu    sync.Mutex
	opts  Options
	now   func() time.Time
	byID  map[string]domain.Record
	order []string // insertion order, oldest first
}

// NewMemory constructs an empty store
func NewMemory(opts Options) *Memory {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 64
	}
	return &Memory{
		opts: opts,
		now:  time.Now,
		byID: make(map[string]domain.Record),
	}
}

// Save implements domain.StorePort
func (m *Memory) Save(ctx context.Context, source string, a *domain.Analysis) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return domain.Record{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "save analysis")
	}
	if a == nil {
		return domain.Record{}, perr.InvalidArgf("nil analysis")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	for len(m.order) >= m.opts.MaxEntries {
		m.removeLocked(m.order[0])
	}

	rec := domain.Record{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: now.UTC(),
		Analysis:  a,
	}
	if m.opts.TTL > 0 {
		rec.ExpiresAt = rec.CreatedAt.Add(m.opts.TTL)
	}
	m.byID[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	metrics.AnalysesStored.Set(float64(len(m.order)))
	return rec, nil
}

// Get implements domain.StorePort
func (m *Memory) Get(_ context.Context, id string) (domain.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Record{}, perr.NotFoundf("analysis %q not found", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[id]
	if !ok || m.expired(rec, m.now()) {
		if ok {
			m.removeLocked(id)
		}
		return domain.Record{}, perr.NotFoundf("analysis %q not found", id)
	}
	return rec, nil
}

// Delete implements domain.StorePort
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked(m.now())
	if _, ok := m.byID[id]; !ok {
		return perr.NotFoundf("analysis %q not found", id)
	}
	m.removeLocked(id)
	return nil
}

// Len implements domain.StorePort; expired records are swept first
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(m.now())
	return len(m.order)
}

func (m *Memory) expired(rec domain.Record, now time.Time) bool {
	return !rec.ExpiresAt.IsZero() && !now.Before(rec.ExpiresAt)
}

func (m *Memory) sweepLocked(now time.Time) {
	if m.opts.TTL <= 0 {
		return
	}
	// records expire in insertion order
	for len(m.order) > 0 && m.expired(m.byID[m.order[0]], now) {
		m.removeLocked(m.order[0])
	}
}

func (m *Memory) removeLocked(id string) {
	delete(m.byID, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	metrics.AnalysesStored.Set(float64(len(m.order)))
}
