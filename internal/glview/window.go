// Package glview is the GLFW + OpenGL 3.2 core backend of the viewer. All
// of its functions must be called from the main OS thread.
package glview

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"orbit-renderer/internal/config"
	"orbit-renderer/internal/input"
	"orbit-renderer/internal/shader"
)

func init() {
	// GLFW and GL must run on the main thread.
	runtime.LockOSThread()
}

// Window is a GLFW window with a current GL context. Callbacks only queue
// input events; PollEvents drains the queue on the calling thread.
type Window struct {
	glw     *glfw.Window
	queue   []input.Event
	device  *Device
	reloads <-chan shader.Sources
}

// Open initializes GLFW, creates the window and GL context, and compiles
// the shader program from src.
func Open(cfg config.Window, src shader.Sources) (*Window, *Device, error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("glview: init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Samples, cfg.Samples)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	glw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("glview: create window: %w", err)
	}
	glw.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		glw.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("glview: init gl: %w", err)
	}
	slog.Info("gl context", "version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	dev, err := newDevice(src)
	if err != nil {
		glw.Destroy()
		glfw.Terminate()
		return nil, nil, err
	}

	w := &Window{glw: glw, device: dev}
	glw.SetKeyCallback(w.keyEvent)
	glw.SetMouseButtonCallback(w.mouseButtonEvent)
	glw.SetCursorPosCallback(w.cursorPosEvent)
	glw.SetScrollCallback(w.scrollEvent)
	glw.SetFramebufferSizeCallback(w.framebufferSizeEvent)

	fw, fh := glw.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))
	return w, dev, nil
}

// WatchShaders makes PollEvents recompile the program whenever new sources
// arrive on ch.
func (w *Window) WatchShaders(ch <-chan shader.Sources) {
	w.reloads = ch
}

// PollEvents processes pending window-system events and returns the input
// gathered since the last call. It also applies a pending shader reload.
func (w *Window) PollEvents() []input.Event {
	glfw.PollEvents()

	if w.reloads != nil {
		select {
		case src, ok := <-w.reloads:
			if !ok {
				w.reloads = nil
				break
			}
			if err := w.device.Reload(src); err != nil {
				slog.Warn("shader reload failed, keeping previous program", "err", err)
			} else {
				slog.Info("shader program reloaded")
			}
		default:
		}
	}

	events := w.queue
	w.queue = nil
	return events
}

func (w *Window) SwapBuffers() { w.glw.SwapBuffers() }

func (w *Window) ShouldClose() bool { return w.glw.ShouldClose() }

func (w *Window) FramebufferSize() (int, int) { return w.glw.GetFramebufferSize() }

// Close releases GL objects, destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.device.Delete()
	w.glw.Destroy()
	glfw.Terminate()
}

func (w *Window) keyEvent(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	k := translateKey(key)
	if k == input.KeyUnknown {
		return
	}
	ev := input.Event{Kind: input.KeyDown, Key: k, Mods: translateMods(mods)}
	switch action {
	case glfw.Release:
		ev.Kind = input.KeyUp
	case glfw.Repeat:
		ev.Repeat = true
	}
	w.queue = append(w.queue, ev)
}

func (w *Window) mouseButtonEvent(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b input.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = input.ButtonLeft
	case glfw.MouseButtonRight:
		b = input.ButtonRight
	case glfw.MouseButtonMiddle:
		b = input.ButtonMiddle
	default:
		return
	}
	kind := input.ButtonDown
	if action == glfw.Release {
		kind = input.ButtonUp
	}
	w.queue = append(w.queue, input.Event{Kind: kind, Button: b, Mods: translateMods(mods)})
}

func (w *Window) cursorPosEvent(_ *glfw.Window, x, y float64) {
	w.queue = append(w.queue, input.Event{Kind: input.MouseMove, X: x, Y: y})
}

func (w *Window) scrollEvent(_ *glfw.Window, _, yoff float64) {
	w.queue = append(w.queue, input.Event{Kind: input.Scroll, ScrollY: yoff})
}

func (w *Window) framebufferSizeEvent(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func translateKey(k glfw.Key) input.Key {
	switch k {
	case glfw.KeyW:
		return input.KeyW
	case glfw.KeyA:
		return input.KeyA
	case glfw.KeyS:
		return input.KeyS
	case glfw.KeyD:
		return input.KeyD
	case glfw.KeyQ:
		return input.KeyQ
	case glfw.KeyE:
		return input.KeyE
	case glfw.KeyUp:
		return input.KeyArrowUp
	case glfw.KeyDown:
		return input.KeyArrowDown
	case glfw.KeyLeft:
		return input.KeyArrowLeft
	case glfw.KeyRight:
		return input.KeyArrowRight
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyLeftBracket:
		return input.KeyLeftBracket
	case glfw.KeyRightBracket:
		return input.KeyRightBracket
	case glfw.KeyEscape:
		return input.KeyEscape
	}
	return input.KeyUnknown
}

func translateMods(m glfw.ModifierKey) input.Mods {
	var out input.Mods
	if m&glfw.ModShift != 0 {
		out |= input.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= input.ModControl
	}
	if m&glfw.ModAlt != 0 {
		out |= input.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= input.ModSuper
	}
	return out
}
