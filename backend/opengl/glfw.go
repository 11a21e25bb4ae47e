package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window with a current OpenGL 3.3 core context.
// Escape closes it and resizing the framebuffer resizes the viewport.
type Window struct {
	window *glfw.Window
}

// NewWindow initializes GLFW, opens a window, makes its context current and loads the
// OpenGL function pointers. It must be called from the main thread.
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{window: window}
	window.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	window.SetKeyCallback(w.keyCallback)

	fbw, fbh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	return w, nil
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// Clear fills the color buffer with c.
func (w *Window) Clear(c [4]float32) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// EndFrame swaps buffers and processes pending events.
func (w *Window) EndFrame() {
	w.window.SwapBuffers()
	glfw.PollEvents()
}

// Time returns seconds since GLFW was initialized.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// Destroy closes the window and terminates GLFW. Release GL resources first.
func (w *Window) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (w *Window) keyCallback(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		win.SetShouldClose(true)
	}
}
