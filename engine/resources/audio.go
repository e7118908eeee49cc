package resources

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SoundConfig controls how a sound is played.
type SoundConfig struct {
	Volume float64
	Looped bool
}

// AudioEventKind discriminates audio events.
type AudioEventKind uint8

const (
	PlaySound AudioEventKind = iota
	StopSound
)

// AudioEvent is a request consumed by the audio controller.
type AudioEvent struct {
	Kind   AudioEventKind
	ID     uuid.UUID
	Path   string
	Config SoundConfig
}

// Audio forwards sound requests to the audio controller without blocking the simulation.
type Audio struct {
	events chan<- AudioEvent
}

// NewAudio binds the resource to the controller's event channel. A nil channel drops every request.
func NewAudio(events chan<- AudioEvent) *Audio {
	return &Audio{events: events}
}

// PlaySound queues a sound and returns its id.
func (a *Audio) PlaySound(path string, cfg SoundConfig) uuid.UUID {
	id := uuid.New()
	a.send(AudioEvent{Kind: PlaySound, ID: id, Path: path, Config: cfg})
	return id
}

// StopSound stops a playing sound.
func (a *Audio) StopSound(id uuid.UUID) {
	a.send(AudioEvent{Kind: StopSound, ID: id})
}

func (a *Audio) send(ev AudioEvent) {
	if a.events == nil {
		return
	}
	select {
	case a.events <- ev:
	default:
		zap.L().Named("audio").Warn("audio queue full, dropping event", zap.String("path", ev.Path), zap.Stringer("id", ev.ID))
	}
}
