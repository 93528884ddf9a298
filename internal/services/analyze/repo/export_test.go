package repo

import "time"

// SetClock replaces the store clock in tests
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}
