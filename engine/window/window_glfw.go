package window

import (
	"runtime"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rotisserie/eris"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	cursors map[common.CursorIcon]*glfw.Cursor
	running bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return eris.Wrap(err, "failed to initialize GLFW")
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfwBool(w.resizable))

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return eris.Wrap(err, "failed to create GLFW window")
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		cursors: make(map[common.CursorIcon]*glfw.Cursor),
		running: true,
	}
	w.internalWindow = gw

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if w.closeOnEscape && key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		code, ok := translateKey(key)
		if !ok || action == glfw.Repeat {
			return
		}
		w.push(Event{Kind: EventKey, Key: code, Pressed: action == glfw.Press})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.push(Event{Kind: EventScroll, X: xoff, Y: yoff})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := translateMouseButton(button)
		if !ok {
			return
		}
		x, y := gw.cursorPixels(win.GetCursorPos())
		w.push(Event{Kind: EventMouseButton, Button: b, Pressed: action == glfw.Press, X: x, Y: y})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		x, y := gw.cursorPixels(xpos, ypos)
		w.push(Event{Kind: EventCursorMoved, X: x, Y: y})
	})

	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			w.push(Event{Kind: EventCursorLeft})
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height, 0)
	})

	win.SetContentScaleCallback(func(_ *glfw.Window, x float32, _ float32) {
		fbWidth, fbHeight := win.GetFramebufferSize()
		w.resized(fbWidth, fbHeight, float64(x))
	})

	win.SetCloseCallback(func(_ *glfw.Window) {
		gw.running = false
	})

	// Report the actual framebuffer size and scale (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	scale, _ := win.GetContentScale()
	w.resized(fbWidth, fbHeight, float64(scale))

	return nil
}

// cursorPixels converts a cursor position in screen coordinates into framebuffer pixels.
func (gw *glfwWindow) cursorPixels(x, y float64) (float64, float64) {
	width, height := gw.window.GetSize()
	fbWidth, fbHeight := gw.window.GetFramebufferSize()
	if width == 0 || height == 0 {
		return x, y
	}
	return x * float64(fbWidth) / float64(width), y * float64(fbHeight) / float64(height)
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return eris.New("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	for _, c := range gw.cursors {
		c.Destroy()
	}
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

// platformSetCursor shows the standard cursor matching icon, creating it on first use.
func platformSetCursor(w *engineWindow, icon common.CursorIcon) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	c, ok := gw.cursors[icon]
	if !ok {
		c = glfw.CreateStandardCursor(standardCursor(icon))
		gw.cursors[icon] = c
	}
	gw.window.SetCursor(c)
}

// platformSetSize resizes the window. The framebuffer callback reports the result.
func platformSetSize(w *engineWindow, width, height int) {
	if w.internalWindow == nil || width <= 0 || height <= 0 {
		return
	}
	w.internalWindow.(*glfwWindow).window.SetSize(width, height)
}

// translateKey maps a GLFW key to the engine key code. Both share the GLFW numbering.
func translateKey(key glfw.Key) (common.KeyCode, bool) {
	if key == glfw.KeyUnknown || key < 0 {
		return 0, false
	}
	return common.KeyCode(key), true
}

// translateMouseButton maps a GLFW mouse button to the engine button.
func translateMouseButton(button glfw.MouseButton) (common.MouseButton, bool) {
	if button < glfw.MouseButton1 || button > glfw.MouseButtonLast {
		return 0, false
	}
	return common.MouseButton(button), true
}

func standardCursor(icon common.CursorIcon) glfw.StandardCursor {
	switch icon {
	case common.CursorPointer:
		return glfw.HandCursor
	case common.CursorText:
		return glfw.IBeamCursor
	case common.CursorCrosshair:
		return glfw.CrosshairCursor
	case common.CursorHResize:
		return glfw.HResizeCursor
	case common.CursorVResize:
		return glfw.VResizeCursor
	default:
		return glfw.ArrowCursor
	}
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
