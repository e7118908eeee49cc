package limiter

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/scion-go/engine/config"
	"github.com/stretchr/testify/assert"
)

type counts struct {
	ticks, fixed, renders int
}

func drive(l *FrameLimiter, clock *MockClock, step, span time.Duration) counts {
	var c counts
	start := clock.Now()
	for clock.Now().Sub(start) < span {
		clock.Advance(step)
		p := l.Poll()
		if p.Tick {
			c.ticks++
			l.Ticked(p.Now)
		}
		if p.Fixed {
			c.fixed++
			l.FixedTicked()
		}
		if p.Render {
			c.renders++
			l.Rendered(p.Now)
		}
	}
	return c
}

func TestCountsNeverExceedElapsedOverInterval(t *testing.T) {
	cfg := config.FrameLimiterConfig{TickRate: 120, FixedUpdateRate: 60, RenderRate: 30}

	for _, step := range []time.Duration{time.Millisecond, 7 * time.Millisecond, 50 * time.Millisecond} {
		clock := NewMockClock(time.Unix(0, 0))
		l := NewFrameLimiter(clock, cfg)
		c := drive(l, clock, step, time.Second)

		assert.LessOrEqual(t, c.fixed, int(time.Second/l.FixedInterval()), "step %v", step)
		assert.LessOrEqual(t, c.renders, int(time.Second/l.RenderInterval()), "step %v", step)
		assert.LessOrEqual(t, c.ticks, int(time.Second/l.TickInterval()), "step %v", step)
	}
}

func TestFinePollingReachesTheBound(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	l := NewFrameLimiter(clock, config.FrameLimiterConfig{TickRate: 120, FixedUpdateRate: 60, RenderRate: 30})
	c := drive(l, clock, time.Millisecond, time.Second)

	assert.Equal(t, 60, c.fixed)
	assert.Equal(t, 30, c.renders)
}

func TestStallDoesNotBurst(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	l := NewFrameLimiter(clock, config.FrameLimiterConfig{TickRate: 60, FixedUpdateRate: 60, RenderRate: 60})

	clock.Advance(100 * time.Millisecond)
	p := l.Poll()
	assert.True(t, p.Tick)
	assert.True(t, p.Fixed)
	assert.True(t, p.Render)
	l.Ticked(p.Now)
	l.FixedTicked()
	l.Rendered(p.Now)

	p = l.Poll()
	assert.False(t, p.Tick)
	assert.False(t, p.Render)
	// the fixed accumulator is still behind and catches up one step per pass
	assert.True(t, p.Fixed)
}

func TestUntilNext(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	l := NewFrameLimiter(clock, config.FrameLimiterConfig{TickRate: 100, FixedUpdateRate: 50, RenderRate: 25})
	assert.Equal(t, 10*time.Millisecond, l.UntilNext())

	clock.Advance(4 * time.Millisecond)
	assert.Equal(t, 6*time.Millisecond, l.UntilNext())

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, time.Duration(0), l.UntilNext())
}

func TestMockClockSleepAdvances(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	clock.Sleep(5 * time.Millisecond)
	clock.Sleep(-time.Second)
	assert.Equal(t, time.Unix(0, 0).Add(5*time.Millisecond), clock.Now())
}
