package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Input is not delivered through callbacks: the platform layer queues every event in arrival
// order and the simulation drains the queue once per variable tick.
type Window interface {
	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// DrainEvents returns the events queued since the previous call, oldest first.
	//
	// Returns:
	//   - []Event: the queued events, nil when none
	DrainEvents() []Event

	// RequestCursor asks for a cursor icon. The request is applied by the message loop.
	//
	// Parameters:
	//   - icon: the cursor shape to show over the window
	RequestCursor(icon common.CursorIcon)

	// RequestSize asks for a new client area size in screen coordinates. The request is applied
	// by the message loop and reported back through an EventResized.
	//
	// Parameters:
	//   - width: requested width
	//   - height: requested height
	RequestSize(width, height int)

	// RequestClose asks the message loop to stop.
	RequestClose()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop on the calling thread, which must be the
	// thread that created the window. Blocks until the window is closed.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// ScaleFactor returns the content scale of the monitor the window is on.
	//
	// Returns:
	//   - float64: the ratio between framebuffer pixels and logical pixels
	ScaleFactor() float64
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and the pending event queue.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// scale is the current content scale.
	scale float64

	// resizable lets the user drag the window borders.
	resizable bool

	// closeOnEscape stops the loop when the escape key is pressed.
	closeOnEscape bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	mu      sync.Mutex
	queue   eventQueue
	cursor  *common.CursorIcon
	size    *[2]int
	closing bool
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options and spawns the platform window.
// Applies default values first, then each option in order. The calling goroutine is locked to
// its OS thread and must later call ProcessMessages.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:         "Scion",
		maxWidth:      3840,
		maxHeight:     2160,
		minWidth:      320,
		minHeight:     200,
		width:         1024,
		height:        768,
		scale:         1,
		resizable:     true,
		closeOnEscape: true,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) DrainEvents() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.queue.drain()
}

func (w *engineWindow) RequestCursor(icon common.CursorIcon) {
	w.mu.Lock()
	w.cursor = &icon
	w.mu.Unlock()
}

func (w *engineWindow) RequestSize(width, height int) {
	w.mu.Lock()
	w.size = &[2]int{width, height}
	w.mu.Unlock()
}

func (w *engineWindow) RequestClose() {
	w.mu.Lock()
	w.closing = true
	w.mu.Unlock()
}

func (w *engineWindow) IsRunning() bool {
	w.mu.Lock()
	closing := w.closing
	w.mu.Unlock()
	return !closing && platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		cursor, size := w.takeRequests()
		if cursor != nil {
			platformSetCursor(w, *cursor)
		}
		if size != nil {
			platformSetSize(w, size[0], size[1])
		}

		runtime.Gosched()
	}
	w.push(Event{Kind: EventCloseRequested})
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *engineWindow) ScaleFactor() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale
}

// push queues ev for the next DrainEvents call.
func (w *engineWindow) push(ev Event) {
	w.mu.Lock()
	w.queue.push(ev)
	w.mu.Unlock()
}

// resized records the new framebuffer metrics and queues the matching event.
func (w *engineWindow) resized(width, height int, scale float64) {
	w.mu.Lock()
	w.width, w.height = width, height
	if scale > 0 {
		w.scale = scale
	}
	w.queue.push(Event{Kind: EventResized, Width: width, Height: height, ScaleFactor: w.scale})
	w.mu.Unlock()
}

// takeRequests returns and clears the pending cursor and size requests.
func (w *engineWindow) takeRequests() (*common.CursorIcon, *[2]int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cursor, size := w.cursor, w.size
	w.cursor, w.size = nil, nil
	return cursor, size
}
