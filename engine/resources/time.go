// Package resources holds the singleton state registered in the world's resource registry.
package resources

import (
	"maps"
	"slices"
	"time"

	"github.com/rotisserie/eris"
)

// Time tracks the variable tick delta. Delta is the measured time since the previous tick,
// with no catch-up: a late tick simply reports a longer delta.
type Time struct {
	lastFrame time.Time
	delta     time.Duration
	elapsed   time.Duration
	frames    uint64
}

// NewTime starts the clock at now.
func NewTime(now time.Time) *Time {
	return &Time{lastFrame: now}
}

// Frame records a tick at now and returns the delta since the previous one.
func (t *Time) Frame(now time.Time) time.Duration {
	t.delta = max(now.Sub(t.lastFrame), 0)
	t.lastFrame = now
	t.elapsed += t.delta
	t.frames++
	return t.delta
}

// DeltaDuration returns the delta of the current tick.
func (t *Time) DeltaDuration() time.Duration { return t.delta }

// Delta returns the delta of the current tick in seconds.
func (t *Time) Delta() float32 { return float32(t.delta.Seconds()) }

// Elapsed returns the sum of every delta.
func (t *Time) Elapsed() time.Duration { return t.elapsed }

// FrameCount returns the number of ticks recorded.
func (t *Time) FrameCount() uint64 { return t.frames }

// Now returns the instant of the current tick.
func (t *Time) Now() time.Time { return t.lastFrame }

// TimerType selects what a timer does when it runs out.
type TimerType uint8

const (
	// TimerManual stays ended until reset.
	TimerManual TimerType = iota
	// TimerCyclic restarts immediately and reports ended for the tick it ran out.
	TimerCyclic
)

// Timer counts down a duration fed by the variable tick delta.
type Timer struct {
	duration time.Duration
	current  time.Duration
	kind     TimerType
	ended    bool
	cycles   int
}

// Ended reports whether the timer ran out.
func (t *Timer) Ended() bool { return t.ended }

// Cycles returns how many times a cyclic timer ran out.
func (t *Timer) Cycles() int { return t.cycles }

// Progress returns the elapsed fraction of the duration.
func (t *Timer) Progress() float32 {
	if t.duration <= 0 {
		return 1
	}
	return min(float32(t.current)/float32(t.duration), 1)
}

// Reset restarts the timer.
func (t *Timer) Reset() {
	t.current = 0
	t.ended = false
}

// ChangeDuration replaces the duration and restarts the timer.
func (t *Timer) ChangeDuration(d time.Duration) {
	t.duration = d
	t.Reset()
}

func (t *Timer) add(delta time.Duration) {
	if t.kind == TimerCyclic {
		t.ended = false
	}
	if t.ended {
		return
	}
	t.current += delta
	if t.current < t.duration {
		return
	}
	t.ended = true
	t.cycles++
	if t.kind == TimerCyclic {
		if t.duration > 0 {
			t.current %= t.duration
		} else {
			t.current = 0
		}
	}
}

// Timers is the registry of named timers.
type Timers struct {
	timers map[string]*Timer
}

// NewTimers creates an empty registry.
func NewTimers() *Timers {
	return &Timers{timers: make(map[string]*Timer)}
}

// Add creates a timer. It fails when the name is taken.
func (t *Timers) Add(name string, duration time.Duration, kind TimerType) (*Timer, error) {
	if _, ok := t.timers[name]; ok {
		return nil, eris.Errorf("timer %q already exists", name)
	}
	timer := &Timer{duration: duration, kind: kind}
	t.timers[name] = timer
	return timer, nil
}

// Get returns the named timer.
func (t *Timers) Get(name string) (*Timer, bool) {
	timer, ok := t.timers[name]
	return timer, ok
}

// Ended reports whether the named timer exists and ran out.
func (t *Timers) Ended(name string) bool {
	timer, ok := t.timers[name]
	return ok && timer.ended
}

// Exists reports whether the name is registered.
func (t *Timers) Exists(name string) bool {
	_, ok := t.timers[name]
	return ok
}

// Delete removes the named timer.
func (t *Timers) Delete(name string) {
	delete(t.timers, name)
}

// AddDelta feeds the tick delta into every timer.
func (t *Timers) AddDelta(delta time.Duration) {
	for _, name := range slices.Sorted(maps.Keys(t.timers)) {
		t.timers[name].add(delta)
	}
}
