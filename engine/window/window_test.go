package window

import (
	"testing"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("demo"),
		WithWidth(640),
		WithHeight(480),
		WithMinWidth(100),
		WithMinHeight(50),
		WithMaxWidth(1920),
		WithMaxHeight(1080),
		WithResizable(false),
		WithCloseOnEscape(false),
	)

	assert.Equal(t, "demo", w.title)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 50, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)
	assert.False(t, w.resizable)
	assert.False(t, w.closeOnEscape)
	assert.Equal(t, 1.0, w.ScaleFactor())
}

func TestEventsDrainInArrivalOrder(t *testing.T) {
	w := newEngineWindow()
	w.push(Event{Kind: EventCursorMoved, X: 10, Y: 20})
	w.push(Event{Kind: EventKey, Key: common.KeyA, Pressed: true})
	w.resized(800, 600, 2)
	w.push(Event{Kind: EventKey, Key: common.KeyA})

	events := w.DrainEvents()
	require.Len(t, events, 4)
	assert.Equal(t, EventCursorMoved, events[0].Kind)
	assert.Equal(t, EventKey, events[1].Kind)
	assert.True(t, events[1].Pressed)
	assert.Equal(t, Event{Kind: EventResized, Width: 800, Height: 600, ScaleFactor: 2}, events[2])
	assert.False(t, events[3].Pressed)

	assert.Nil(t, w.DrainEvents())
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 2.0, w.ScaleFactor())
}

func TestResizeWithoutScaleKeepsPreviousScale(t *testing.T) {
	w := newEngineWindow()
	w.resized(100, 100, 1.5)
	w.resized(200, 150, 0)

	events := w.DrainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, 1.5, events[1].ScaleFactor)
}

func TestRequestsAreTakenOnce(t *testing.T) {
	w := newEngineWindow()
	w.RequestCursor(common.CursorText)
	w.RequestCursor(common.CursorPointer)
	w.RequestSize(300, 200)

	cursor, size := w.takeRequests()
	require.NotNil(t, cursor)
	assert.Equal(t, common.CursorPointer, *cursor)
	assert.Equal(t, &[2]int{300, 200}, size)

	cursor, size = w.takeRequests()
	assert.Nil(t, cursor)
	assert.Nil(t, size)
}

func TestRequestCloseStopsWithoutPlatformWindow(t *testing.T) {
	w := newEngineWindow()
	assert.False(t, w.IsRunning())
	w.RequestClose()
	assert.False(t, w.IsRunning())
	assert.Error(t, w.Close())
	assert.Nil(t, w.SurfaceDescriptor())
}

func TestTranslateInput(t *testing.T) {
	code, ok := translateKey(glfw.KeyW)
	require.True(t, ok)
	assert.Equal(t, common.KeyW, code)

	code, ok = translateKey(glfw.KeyEscape)
	require.True(t, ok)
	assert.Equal(t, common.KeyEsc, code)

	_, ok = translateKey(glfw.KeyUnknown)
	assert.False(t, ok)

	b, ok := translateMouseButton(glfw.MouseButtonRight)
	require.True(t, ok)
	assert.Equal(t, common.MouseButtonRight, b)

	assert.Equal(t, glfw.HandCursor, standardCursor(common.CursorPointer))
	assert.Equal(t, glfw.ArrowCursor, standardCursor(common.CursorDefault))
}
