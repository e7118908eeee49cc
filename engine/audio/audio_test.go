package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/scion-go/engine/config"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"github.com/google/uuid"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	pos, length int
	closed      bool
}

func (f *fakeSource) Stream(samples [][2]float64) (int, bool) {
	if f.pos >= f.length {
		return 0, false
	}
	n := min(len(samples), f.length-f.pos)
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{0.5, 0.5}
	}
	f.pos += n
	return n, true
}

func (f *fakeSource) Err() error       { return nil }
func (f *fakeSource) Len() int         { return f.length }
func (f *fakeSource) Position() int    { return f.pos }
func (f *fakeSource) Seek(p int) error { f.pos = p; return nil }
func (f *fakeSource) Close() error     { f.closed = true; return nil }

type fakeOutput struct {
	rate    beep.SampleRate
	playing []beep.Streamer
	initErr error
}

func (o *fakeOutput) Init(rate beep.SampleRate, _ int) error {
	o.rate = rate
	return o.initErr
}
func (o *fakeOutput) Play(s ...beep.Streamer) { o.playing = append(o.playing, s...) }
func (o *fakeOutput) Lock()                   {}
func (o *fakeOutput) Unlock()                 {}

// pull streams n samples out of the mixed output.
func (o *fakeOutput) pull(n int) [][2]float64 {
	buf := make([][2]float64, n)
	o.playing[0].Stream(buf)
	return buf
}

func newTestController(t *testing.T, sources map[string]*fakeSource) (*Controller, *fakeOutput) {
	t.Helper()
	out := &fakeOutput{}
	c := NewController(config.AudioConfig{SampleRate: 22050},
		WithOutput(out),
		WithLogger(zap.NewNop()),
		WithDecoder(func(path string) (beep.StreamSeekCloser, beep.Format, error) {
			s, ok := sources[path]
			if !ok {
				return nil, beep.Format{}, errors.New("missing")
			}
			return s, beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}, nil
		}),
	)
	require.NoError(t, c.Start())
	return c, out
}

func TestOneShotSoundIsCleanedUpWhenFinished(t *testing.T) {
	src := &fakeSource{length: 100}
	c, out := newTestController(t, map[string]*fakeSource{"hit.wav": src})
	assert.Equal(t, beep.SampleRate(22050), out.rate)

	id := uuid.New()
	c.Handle(resources.AudioEvent{Kind: resources.PlaySound, ID: id, Path: "hit.wav", Config: resources.SoundConfig{Volume: 1}})
	assert.True(t, c.Playing(id))

	samples := out.pull(256)
	assert.InDelta(t, 0.5, samples[0][0], 1e-9)
	assert.Zero(t, samples[200][0])

	c.Cleanup()
	assert.False(t, c.Playing(id))
	assert.Zero(t, c.Len())
	assert.True(t, src.closed)
}

func TestLoopedSoundPlaysUntilStopped(t *testing.T) {
	src := &fakeSource{length: 100}
	c, out := newTestController(t, map[string]*fakeSource{"music.wav": src})

	id := uuid.New()
	c.Handle(resources.AudioEvent{Kind: resources.PlaySound, ID: id, Path: "music.wav", Config: resources.SoundConfig{Volume: 1, Looped: true}})

	samples := out.pull(512)
	assert.InDelta(t, 0.5, samples[511][1], 1e-9)
	c.Cleanup()
	assert.True(t, c.Playing(id))

	c.Handle(resources.AudioEvent{Kind: resources.StopSound, ID: id})
	assert.False(t, c.Playing(id))
	assert.True(t, src.closed)
	assert.Zero(t, out.pull(16)[0][0])
}

func TestSilentVolumeAndMissingFiles(t *testing.T) {
	src := &fakeSource{length: 1000}
	c, out := newTestController(t, map[string]*fakeSource{"quiet.wav": src})

	c.Handle(resources.AudioEvent{Kind: resources.PlaySound, ID: uuid.New(), Path: "quiet.wav"})
	assert.Zero(t, out.pull(32)[0][0])

	missing := uuid.New()
	c.Handle(resources.AudioEvent{Kind: resources.PlaySound, ID: missing, Path: "nope.wav"})
	assert.False(t, c.Playing(missing))
	assert.Equal(t, 1, c.Len())

	c.Close()
	assert.Zero(t, c.Len())
	assert.True(t, src.closed)
}

func TestRunConsumesResourceEvents(t *testing.T) {
	src := &fakeSource{length: 1 << 20}
	c, _ := newTestController(t, map[string]*fakeSource{"loop.wav": src})
	audio := resources.NewAudio(c.Events())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	id := audio.PlaySound("loop.wav", resources.SoundConfig{Volume: 0.5})
	assert.Eventually(t, func() bool { return c.Playing(id) }, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, c.Len())
}

func TestDecodeFileRejectsUnknownFormats(t *testing.T) {
	_, _, err := DecodeFile("song.mp3")
	assert.Error(t, err)

	_, _, err = DecodeFile("does-not-exist.wav")
	assert.Error(t, err)
}
