package limiter

import (
	"sync"
	"time"
)

// Clock is the time source of the frame loop.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
	// Sleep blocks for d.
	Sleep(d time.Duration)
}

// RealClock reads the wall clock.
type RealClock struct{}

var _ Clock = RealClock{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// MockClock is a manually driven clock for tests. Sleep advances the clock instead of blocking.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

var _ Clock = &MockClock{}

// NewMockClock creates a mock clock starting at start.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

// Now returns the mocked instant.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// SetTime moves the clock to t.
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// Sleep advances the clock by d.
func (m *MockClock) Sleep(d time.Duration) {
	if d > 0 {
		m.Advance(d)
	}
}
