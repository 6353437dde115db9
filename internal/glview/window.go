package glview

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"organix/internal/logging"
)

// WindowOptions configures NewWindow. glfw.Init must have been called.
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	// Hidden creates the window invisible, for embedding into a parent.
	Hidden    bool
	Resizable bool
}

// Window is the GLFW window hosting the frame loop. It implements
// shader.Host.
type Window struct {
	win *glfw.Window

	onResize  func(width, height int, ratio float64)
	onPointer func(x, y float64)
	onScroll  func(dy float64)
	onKey     func(key glfw.Key, mods glfw.ModifierKey)
}

// NewWindow creates a GL 3.3 core window and registers its input callbacks.
// The context is not made current; call MakeCurrent.
func NewWindow(opts WindowOptions) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))
	glfw.WindowHint(glfw.Visible, boolHint(!opts.Hidden))

	width, height := opts.Width, opts.Height
	var monitor *glfw.Monitor
	if opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor != nil {
			mode := monitor.GetVideoMode()
			width, height = mode.Width, mode.Height
		}
	}

	win, err := glfw.CreateWindow(width, height, opts.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("glview: create window: %w", err)
	}

	w := &Window{win: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		w.emitResize()
	})
	win.SetSizeCallback(func(_ *glfw.Window, _, _ int) {
		w.emitResize()
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.onPointer != nil {
			w.onPointer(x, y)
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(yoff)
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
			return
		}
		if w.onKey != nil {
			w.onKey(key, mods)
		}
	})
	return w, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// MakeCurrent binds the GL context to the calling thread and loads GL.
func (w *Window) MakeCurrent() (Backend, error) {
	w.win.MakeContextCurrent()
	b, err := Init()
	if err != nil {
		return b, err
	}
	glfw.SwapInterval(1)
	gl.Disable(gl.DEPTH_TEST)
	logging.L().Info("gl context ready", "version", Version())
	return b, nil
}

// GLFW returns the underlying window.
func (w *Window) GLFW() *glfw.Window {
	return w.win
}

// OnResize registers the handler for logical size or pixel ratio changes.
func (w *Window) OnResize(fn func(width, height int, ratio float64)) { w.onResize = fn }

// OnPointer registers the cursor handler. Coordinates are logical pixels.
func (w *Window) OnPointer(fn func(x, y float64)) { w.onPointer = fn }

// OnScroll registers the wheel handler.
func (w *Window) OnScroll(fn func(dy float64)) { w.onScroll = fn }

// OnKey registers the key handler. Escape closes the window and is not
// forwarded.
func (w *Window) OnKey(fn func(key glfw.Key, mods glfw.ModifierKey)) { w.onKey = fn }

// Size returns the logical window size.
func (w *Window) Size() (int, int) {
	return w.win.GetSize()
}

// PixelRatio is framebuffer pixels per logical pixel.
func (w *Window) PixelRatio() float64 {
	ww, _ := w.win.GetSize()
	fw, _ := w.win.GetFramebufferSize()
	if ww <= 0 || fw <= 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

func (w *Window) emitResize() {
	if w.onResize == nil {
		return
	}
	width, height := w.win.GetSize()
	w.onResize(width, height, w.PixelRatio())
}

// EmitResize reports the current size to the resize handler, for the first
// frame.
func (w *Window) EmitResize() {
	w.emitResize()
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// ShouldClose implements shader.Host.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// BeginFrame implements shader.Host.
func (w *Window) BeginFrame() {
	fw, fh := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// EndFrame implements shader.Host.
func (w *Window) EndFrame() {
	w.win.SwapBuffers()
	glfw.PollEvents()
}

// Destroy closes the window.
func (w *Window) Destroy() {
	w.win.Destroy()
}
