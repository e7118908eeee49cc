// Package audio plays the sounds requested through the resources.Audio resource. The controller
// runs in its own goroutine and mixes every active sound into a single speaker stream.
package audio

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/scion-go/engine/config"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"github.com/google/uuid"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Decoder opens the sound file at path.
type Decoder func(path string) (beep.StreamSeekCloser, beep.Format, error)

// sound is one playing stream.
type sound struct {
	source beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	done   atomic.Bool
}

// Controller consumes audio events and owns the speaker mixer.
type Controller struct {
	mu      sync.Mutex
	events  chan resources.AudioEvent
	sounds  map[uuid.UUID]*sound
	mixer   *beep.Mixer
	rate    beep.SampleRate
	output  Output
	decode  Decoder
	sweep   time.Duration
	started bool
	logger  *zap.Logger
}

// NewController creates the controller. The speaker is initialized by Run.
//
// Parameters:
//   - cfg: the audio configuration
//   - options: functional options to configure the controller
//
// Returns:
//   - *Controller: the audio controller
func NewController(cfg config.AudioConfig, options ...ControllerBuilderOption) *Controller {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	c := &Controller{
		events: make(chan resources.AudioEvent, 64),
		sounds: make(map[uuid.UUID]*sound),
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(rate),
		output: speakerOutput{},
		decode: DecodeFile,
		sweep:  time.Second,
		logger: zap.L().Named("audio"),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Events returns the channel to hand to resources.NewAudio.
func (c *Controller) Events() chan<- resources.AudioEvent { return c.events }

// Start initializes the output and starts mixing.
//
// Returns:
//   - error: error if the audio device cannot be opened
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil
	}
	if err := c.output.Init(c.rate, c.rate.N(100*time.Millisecond)); err != nil {
		return eris.Wrap(err, "failed to initialize speaker")
	}
	c.output.Play(c.mixer)
	c.started = true
	return nil
}

// Run starts the output and handles events until ctx ends, sweeping finished sounds periodically.
//
// Parameters:
//   - ctx: stops the loop
//
// Returns:
//   - error: error if the audio device cannot be opened
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Start(); err != nil {
		return err
	}
	ticker := time.NewTicker(c.sweep)
	defer ticker.Stop()
	defer c.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-c.events:
			c.Handle(ev)
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// Handle applies one event.
//
// Parameters:
//   - ev: the play or stop request
func (c *Controller) Handle(ev resources.AudioEvent) {
	switch ev.Kind {
	case resources.PlaySound:
		if err := c.play(ev); err != nil {
			c.logger.Warn("failed to play sound", zap.String("path", ev.Path), zap.Error(err))
		}
	case resources.StopSound:
		c.stop(ev.ID)
	}
	c.Cleanup()
}

// Playing reports whether the sound id is still tracked.
func (c *Controller) Playing(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sounds[id]
	return ok && !s.done.Load()
}

// Len returns the number of tracked sounds.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sounds)
}

// Cleanup forgets the one-shot sounds that finished playing.
func (c *Controller) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, s := range c.sounds {
		if s.done.Load() {
			c.release(id, s)
		}
	}
}

// Close stops every sound.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.output.Lock()
	for _, s := range c.sounds {
		s.ctrl.Streamer = nil
	}
	c.mixer.Clear()
	c.output.Unlock()
	for id, s := range c.sounds {
		c.release(id, s)
	}
}

func (c *Controller) play(ev resources.AudioEvent) error {
	source, format, err := c.decode(ev.Path)
	if err != nil {
		return err
	}

	s := &sound{source: source}
	var stream beep.Streamer = source
	if ev.Config.Looped {
		stream = &looper{source: source}
	}
	if format.SampleRate != 0 && format.SampleRate != c.rate {
		stream = beep.Resample(4, format.SampleRate, c.rate, stream)
	}
	stream = volume(stream, ev.Config.Volume)
	s.ctrl = &beep.Ctrl{Streamer: beep.Seq(stream, beep.Callback(func() { s.done.Store(true) }))}

	c.mu.Lock()
	c.sounds[ev.ID] = s
	c.mu.Unlock()

	c.output.Lock()
	c.mixer.Add(s.ctrl)
	c.output.Unlock()
	return nil
}

func (c *Controller) stop(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sounds[id]
	if !ok {
		return
	}
	c.output.Lock()
	s.ctrl.Streamer = nil
	c.output.Unlock()
	c.release(id, s)
}

// release closes the source and forgets the sound. c.mu must be held.
func (c *Controller) release(id uuid.UUID, s *sound) {
	if err := s.source.Close(); err != nil {
		c.logger.Debug("failed to close sound source", zap.Stringer("id", id), zap.Error(err))
	}
	delete(c.sounds, id)
}

// volume scales s linearly; a volume of 0 or less is silent.
func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// looper rewinds its source whenever it runs out.
type looper struct {
	source beep.StreamSeeker
}

func (l *looper) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.source.Stream(samples[filled:])
		filled += n
		if ok && n > 0 {
			continue
		}
		if l.source.Err() != nil || l.source.Len() == 0 {
			return filled, filled > 0
		}
		if err := l.source.Seek(0); err != nil {
			return filled, filled > 0
		}
	}
	return filled, true
}

func (l *looper) Err() error { return l.source.Err() }

// DecodeFile opens a wav file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - beep.StreamSeekCloser: the decoded stream
//   - beep.Format: the stream format
//   - error: error if the file cannot be opened or is not a wav file
func DecodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".wav" {
		return nil, beep.Format{}, eris.Errorf("unsupported audio format %q", ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, eris.Wrapf(err, "failed to open sound %s", path)
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, eris.Wrapf(err, "failed to decode sound %s", path)
	}
	return s, format, nil
}
