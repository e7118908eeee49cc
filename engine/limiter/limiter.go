// Package limiter paces the frame loop: it decides on each pass whether a variable tick, a
// fixed tick and a render submission are due.
package limiter

import (
	"time"

	"github.com/Carmen-Shannon/scion-go/engine/config"
)

// Pass is the work due on one loop iteration.
type Pass struct {
	Now    time.Time
	Tick   bool
	Fixed  bool
	Render bool
}

// FrameLimiter tracks the last variable tick, fixed tick and render instants.
//
// The variable tick fires once the tick interval elapsed since the previous tick and reports
// the measured delta, with no catch-up. Fixed ticks use an accumulator advanced by exactly one
// interval per firing and fire at most once per pass. Renders advance by one interval too, but
// snap to the current instant when more than one interval behind so a stall does not cause a
// burst of renders. Fixed and render counts therefore never exceed floor(elapsed/interval).
type FrameLimiter struct {
	clock Clock

	tickInterval   time.Duration
	fixedInterval  time.Duration
	renderInterval time.Duration

	lastTick   time.Time
	lastFixed  time.Time
	lastRender time.Time
}

// NewFrameLimiter creates a limiter whose intervals all start at the clock's current instant.
//
// Parameters:
//   - clock: the time source
//   - cfg: the rates in hertz
//
// Returns:
//   - *FrameLimiter: the limiter
func NewFrameLimiter(clock Clock, cfg config.FrameLimiterConfig) *FrameLimiter {
	now := clock.Now()
	return &FrameLimiter{
		clock:          clock,
		tickInterval:   interval(cfg.TickRate),
		fixedInterval:  interval(cfg.FixedUpdateRate),
		renderInterval: interval(cfg.RenderRate),
		lastTick:       now,
		lastFixed:      now,
		lastRender:     now,
	}
}

func interval(hz int) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Second / time.Duration(hz)
}

// TickInterval returns the minimum spacing between variable ticks.
func (l *FrameLimiter) TickInterval() time.Duration { return l.tickInterval }

// FixedInterval returns the fixed tick interval.
func (l *FrameLimiter) FixedInterval() time.Duration { return l.fixedInterval }

// RenderInterval returns the render interval.
func (l *FrameLimiter) RenderInterval() time.Duration { return l.renderInterval }

// Poll computes the work due now. It does not record anything.
func (l *FrameLimiter) Poll() Pass {
	now := l.clock.Now()
	return Pass{
		Now:    now,
		Tick:   now.Sub(l.lastTick) >= l.tickInterval,
		Fixed:  now.Sub(l.lastFixed) >= l.fixedInterval,
		Render: now.Sub(l.lastRender) >= l.renderInterval,
	}
}

// Ticked records a variable tick at now.
func (l *FrameLimiter) Ticked(now time.Time) {
	l.lastTick = now
}

// FixedTicked records one fixed tick.
func (l *FrameLimiter) FixedTicked() {
	l.lastFixed = l.lastFixed.Add(l.fixedInterval)
}

// Rendered records a render submission at now.
func (l *FrameLimiter) Rendered(now time.Time) {
	l.lastRender = l.lastRender.Add(l.renderInterval)
	if now.Sub(l.lastRender) >= l.renderInterval {
		l.lastRender = now
	}
}

// UntilNext returns how long the loop may sleep before any work becomes due.
func (l *FrameLimiter) UntilNext() time.Duration {
	now := l.clock.Now()
	next := min(
		l.lastTick.Add(l.tickInterval).Sub(now),
		l.lastFixed.Add(l.fixedInterval).Sub(now),
		l.lastRender.Add(l.renderInterval).Sub(now),
	)
	return max(next, 0)
}
