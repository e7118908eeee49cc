package rendering

import (
	"context"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Thread is the rendering side of the mailbox. It owns the Renderer and is the only caller of
// its methods once started.
type Thread struct {
	mailbox  *Mailbox
	renderer Renderer
	picked   chan common.Color
	cursor   *[2]uint32
	picking  bool
	skipped  uint64
	logger   *zap.Logger
}

// NewThread creates the rendering thread shim.
//
// Parameters:
//   - renderer: the GPU renderer driven by the thread
//   - mailbox: the queue fed by the simulation
//   - options: functional options to configure the thread
//
// Returns:
//   - *Thread: the rendering thread
func NewThread(renderer Renderer, mailbox *Mailbox, options ...ThreadBuilderOption) *Thread {
	t := &Thread{
		mailbox:  mailbox,
		renderer: renderer,
		picked:   make(chan common.Color, 1),
		logger:   zap.L().Named("rendering"),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Picked delivers the most recent color read under the cursor. Only the latest value is kept.
func (t *Thread) Picked() <-chan common.Color { return t.picked }

// SkippedFrames returns the number of frames dropped because the surface was unavailable.
func (t *Thread) SkippedFrames() uint64 { return t.skipped }

// Run processes messages until ctx ends or the mailbox is closed and drained.
//
// Parameters:
//   - ctx: stops the loop
//
// Returns:
//   - error: the first fatal renderer error
func (t *Thread) Run(ctx context.Context) error {
	for {
		msg, ok := t.mailbox.Pop(ctx)
		if !ok {
			return nil
		}
		if err := t.Process(msg); err != nil {
			return err
		}
	}
}

// Process handles one message.
//
// Parameters:
//   - msg: the message to apply
//
// Returns:
//   - error: error if the renderer failed for a reason other than a lost surface
func (t *Thread) Process(msg Message) error {
	switch m := msg.(type) {
	case EventsMessage:
		for _, ev := range m.Events {
			if ev.Kind == EventCursorMoved {
				t.cursor = ev.Cursor
			}
			t.renderer.HandleEvent(ev)
		}
	case FrameMessage:
		return t.frame(m)
	case DespawnMessage:
		if len(m.Entities) > 0 {
			t.renderer.Forget(m.Entities)
		}
	case PickingStatusMessage:
		t.picking = m.Enabled
	}
	return nil
}

func (t *Thread) frame(m FrameMessage) error {
	if err := t.renderer.Update(m.Updates); err != nil {
		return eris.Wrap(err, "failed to apply rendering updates")
	}

	if picker, ok := t.renderer.(Picker); ok && t.picking && t.cursor != nil {
		c, err := picker.PickColor(m.Draws, t.cursor[0], t.cursor[1])
		if err != nil {
			t.logger.Warn("color picking readback failed", zap.Error(err))
		} else {
			t.publishPick(c)
		}
	}

	if err := t.renderer.Render(m.Draws, m.Background); err != nil {
		if eris.Is(err, ErrSurfaceUnavailable) {
			t.skipped++
			t.logger.Debug("skipping frame", zap.Error(err))
			return nil
		}
		return eris.Wrap(err, "failed to render frame")
	}
	return nil
}

// publishPick replaces any unread pick with c.
func (t *Thread) publishPick(c common.Color) {
	select {
	case t.picked <- c:
	default:
		select {
		case <-t.picked:
		default:
		}
		select {
		case t.picked <- c:
		default:
		}
	}
}
