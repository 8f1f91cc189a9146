package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides the platform window the map viewer renders into, plus the
// input events the camera controller consumes (keys, scroll wheel, mouse drag).
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	// Positive delta is scroll up (zoom in), negative is scroll down (zoom out).
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common key constants)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDragCallback sets the callback for mouse drags. It fires for each
	// cursor movement while the left or middle button is held, with the movement
	// since the previous event in pixels.
	//
	// Parameters:
	//   - callback: function receiving the drag delta in pixels
	SetMouseDragCallback(callback func(dx, dy float32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor for creating a WebGPU
	// surface on this window. The descriptor is platform-appropriate (Windows
	// HWND, X11, Wayland, macOS Metal) and comes from the wgpuglfw bridge.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil before the window exists
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// ProcessMessages runs the event loop, blocking until the window closes.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// viewerWindow is the implementation of the Window interface. It holds the
// requested configuration and the registered input callbacks; the GLFW state
// lives in the platform layer.
type viewerWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// minWidth/minHeight and maxWidth/maxHeight bound user resizing.
	// A zero value leaves that bound unconstrained.
	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	// width and height track the current framebuffer size in pixels. On
	// high-DPI displays this differs from the requested window size.
	width  int
	height int

	// internalWindow holds the platform window state (glfwWindow).
	internalWindow any

	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDrag func(dx, dy float32)
}

var _ Window = &viewerWindow{}

// NewWindow creates a window with the given options and spawns the platform
// window immediately. Panics if the platform window cannot be created, since
// nothing downstream (surface, renderer) can exist without it.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &viewerWindow{
		title:  "Strata",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *viewerWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *viewerWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *viewerWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *viewerWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *viewerWindow) SetMouseDragCallback(callback func(dx, dy float32)) {
	w.onMouseDrag = callback
}

func (w *viewerWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *viewerWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *viewerWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *viewerWindow) ProcessMessages() {
	for w.IsRunning() {
		if ok := platformProcessMessages(w); !ok {
			break
		}
		runtime.Gosched()
	}
}

func (w *viewerWindow) Width() int {
	return w.width
}

func (w *viewerWindow) Height() int {
	return w.height
}
