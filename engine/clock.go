package engine

import (
	"sync"
	"time"
)

// Clock is the time source for the run loop
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the monotonic wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// ManualClock is a controllable clock for tests. Sleep advances time
// instantly and records the requested duration.
type ManualClock struct {
	mu    sync.RWMutex
	now   time.Time
	slept []time.Duration
}

// NewManualClock starts a clock at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *ManualClock) Sleep(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.slept = append(m.slept, d)
	m.mu.Unlock()
}

// Slept returns every duration passed to Sleep
func (m *ManualClock) Slept() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]time.Duration(nil), m.slept...)
}
