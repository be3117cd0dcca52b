// Package desktop implements the glimpse event source on top of GLFW.
//
// All functions of this package must be called from the main goroutine,
// except for Wakeup.
package desktop

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/resurface/glimpse"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

func init() {
	// glfw must only be used from the main thread
	runtime.LockOSThread()
}

type WindowOptions struct {
	Width  int
	Height int
	Title  string
}

// Source is a glimpse.EventSource backed by GLFW.
type Source struct {
	windows map[glimpse.WindowID]*Window

	// events recorded by the glfw callbacks during PollEvents or WaitEvents
	pending []glimpse.Event
}

func NewSource() (*Source, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	return &Source{windows: map[glimpse.WindowID]*Window{}}, nil
}

func (s *Source) NewWindow(opts WindowOptions) (*Window, error) {
	// the surface is created by webgpu, glfw must not create a gl context
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{
		id:  glimpse.NewWindowID(),
		win: win,
	}

	s.windows[w.id] = w
	s.configureCallbacks(w)

	slog.Info("Window created",
		slog.Uint64("id", uint64(w.id)),
		slog.String("title", opts.Title),
	)

	return w, nil
}

func (s *Source) PollEvents(fn func(glimpse.Event)) {
	glfw.PollEvents()
	s.drain(fn)
}

func (s *Source) WaitEvents(fn func(glimpse.Event)) {
	glfw.WaitEvents()
	s.drain(fn)
}

// Wakeup posts an empty event. This is safe to call from any goroutine.
func (s *Source) Wakeup() {
	glfw.PostEmptyEvent()
}

func (s *Source) NativeWindow(id glimpse.WindowID) any {
	w, ok := s.windows[id]
	if !ok || w.win == nil {
		return nil
	}

	return w
}

// CloseWindow destroys the window. Its id will not resolve to a native window anymore.
func (s *Source) CloseWindow(w *Window) {
	delete(s.windows, w.id)

	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
}

// Terminate destroys all remaining windows and shuts down glfw.
func (s *Source) Terminate() {
	for _, w := range s.windows {
		s.CloseWindow(w)
	}

	glfw.Terminate()
}

func (s *Source) drain(fn func(glimpse.Event)) {
	events := s.pending
	s.pending = nil

	for _, event := range events {
		fn(event)
	}
}

func (s *Source) push(event glimpse.Event) {
	s.pending = append(s.pending, event)
}

func (s *Source) configureCallbacks(w *Window) {
	id := w.id

	// a minimized window has a zero sized framebuffer and can not present,
	// which is the desktop version of a revoked surface
	w.win.SetIconifyCallback(func(_win *glfw.Window, iconified bool) {
		s.push(glimpse.SuspendedEvent{Window: id, Suspended: iconified})
	})

	w.win.SetFocusCallback(func(_win *glfw.Window, focused bool) {
		s.push(glimpse.FocusedEvent{Window: id, Focused: focused})
	})

	w.win.SetCloseCallback(func(_win *glfw.Window) {
		s.push(glimpse.CloseRequestedEvent{Window: id})
	})

	w.win.SetFramebufferSizeCallback(func(_win *glfw.Window, width int, height int) {
		s.push(glimpse.ResizedEvent{Window: id, Width: uint32(width), Height: uint32(height)})
	})

	w.win.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey)
		if !ok {
			return
		}

		s.push(glimpse.KeyEvent{Window: id, Key: key, Pressed: action == glfw.Press})
	})

	w.win.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		s.push(glimpse.MouseButtonEvent{
			Window:  id,
			Button:  glimpse.MouseButton(btn),
			Pressed: action == glfw.Press,
		})
	})

	w.win.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		s.push(glimpse.CursorMovedEvent{Window: id, X: float32(xpos), Y: float32(ypos)})
	})
}

// Window is a glfw window. It satisfies the native window
// requirements of the webgpu driver.
type Window struct {
	id  glimpse.WindowID
	win *glfw.Window
}

func (w *Window) ID() glimpse.WindowID {
	return w.id
}

// NativeWindow returns the window itself, or nil after it was closed.
func (w *Window) NativeWindow() any {
	if w.win == nil {
		return nil
	}

	return w
}

func (w *Window) Wakeup() {
	glfw.PostEmptyEvent()
}

func (w *Window) ShouldClose() bool {
	return w.win == nil || w.win.ShouldClose()
}

func (w *Window) GetSize() (uint32, uint32) {
	if w.win == nil {
		return 0, 0
	}

	width, height := w.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}
