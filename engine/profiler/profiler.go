package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/scion-go/engine/limiter"
	"go.uber.org/zap"
)

// Stats is one profiling sample.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log every interval ticks.
type Profiler struct {
	clock          limiter.Clock
	logger         *zap.Logger
	interval       int
	frameCount     int
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithClock replaces the time source used to measure the frame rate.
func WithClock(clock limiter.Clock) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.clock = clock
	}
}

// WithLogger replaces the profiler logger.
func WithLogger(logger *zap.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// NewProfiler creates a new Profiler logging every interval ticks.
//
// Parameters:
//   - interval: ticks between two samples, 600 when <= 0
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval int, options ...ProfilerBuilderOption) *Profiler {
	if interval <= 0 {
		interval = 600
	}
	p := &Profiler{
		clock:    limiter.RealClock{},
		logger:   zap.L().Named("profiler"),
		interval: interval,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clock.Now()
	return p
}

// Last returns the most recent sample.
func (p *Profiler) Last() Stats { return p.last }

// Tick should be called once per variable tick.
// Logs performance statistics when the interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	if p.frameCount < p.interval {
		return false
	}

	now := p.clock.Now()
	elapsed := now.Sub(p.lastTime).Seconds()

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		HeapMB:  float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:   float64(p.memStats.Sys) / 1024 / 1024,
		GCCount: p.memStats.NumGC,
	}
	if elapsed > 0 {
		s.FPS = float64(p.frameCount) / elapsed
		s.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed
	}

	// PauseNs is a circular buffer of the last 256 GC pauses.
	if s.GCCount > 0 {
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		start := p.lastGCCount
		if s.GCCount-start > 256 {
			start = s.GCCount - 256
		}
		for i := start; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info("frame stats",
		zap.Float64("fps", s.FPS),
		zap.Float64("heap_mb", s.HeapMB),
		zap.Float64("alloc_rate_mb_s", s.AllocRateMB),
		zap.Uint32("gc", s.GCCount),
		zap.Uint64("gc_last_pause_us", s.LastPauseUs),
		zap.Uint64("gc_max_pause_us", s.MaxPauseUs),
		zap.Float64("sys_mb", s.SysMB),
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
