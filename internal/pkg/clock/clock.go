// Package clock supplies the time used for cart timestamps and retention
// cutoffs.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time { return f() }

// NewRealClock returns the system clock in UTC. Persisted cart timestamps
// compare cleanly across machines.
func NewRealClock() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// RetentionCutoff is the instant days calendar days before c.Now().
func RetentionCutoff(c Clock, days int) time.Time {
	return c.Now().AddDate(0, 0, -days)
}

// MockClock is a settable clock for tests. Safe for concurrent use.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a MockClock reading start.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the mocked time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
