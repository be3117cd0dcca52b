package glimpse

import "sync/atomic"

// WindowID identifies a native window instance for as long as the
// window object lives. It is the join key between a windowing source
// and the contexts rendering into its windows.
type WindowID uint64

var lastWindowID atomic.Uint64

// NewWindowID returns a process unique window id.
func NewWindowID() WindowID {
	return WindowID(lastWindowID.Add(1))
}

// Event is one element of the tagged event stream emitted by an EventSource.
type Event interface {
	// Target returns the window this event is addressed to.
	Target() WindowID
}

// SuspendedEvent reports that the native surface of a window was revoked
// (Suspended is true) or granted again (Suspended is false).
type SuspendedEvent struct {
	Window    WindowID
	Suspended bool
}

type CloseRequestedEvent struct {
	Window WindowID
}

type ResizedEvent struct {
	Window        WindowID
	Width, Height uint32
}

type FocusedEvent struct {
	Window  WindowID
	Focused bool
}

type KeyEvent struct {
	Window  WindowID
	Key     Key
	Pressed bool
}

type MouseButtonEvent struct {
	Window  WindowID
	Button  MouseButton
	Pressed bool
}

type CursorMovedEvent struct {
	Window WindowID
	X, Y   float32
}

func (e SuspendedEvent) Target() WindowID      { return e.Window }
func (e CloseRequestedEvent) Target() WindowID { return e.Window }
func (e ResizedEvent) Target() WindowID        { return e.Window }
func (e FocusedEvent) Target() WindowID        { return e.Window }
func (e KeyEvent) Target() WindowID            { return e.Window }
func (e MouseButtonEvent) Target() WindowID    { return e.Window }
func (e CursorMovedEvent) Target() WindowID    { return e.Window }

// EventSource is the windowing layer as seen by the rest of this module.
//
// PollEvents and WaitEvents must be called from the event loop goroutine.
// Wakeup may be called from any goroutine.
type EventSource interface {
	// PollEvents delivers all currently queued events and returns.
	PollEvents(fn func(Event))

	// WaitEvents blocks until at least one event is queued or Wakeup
	// was called, then delivers the queued events.
	WaitEvents(fn func(Event))

	// Wakeup makes a concurrently blocked WaitEvents return.
	Wakeup()

	// NativeWindow returns the current native handle of the window,
	// or nil if the window has none right now.
	NativeWindow(id WindowID) any
}
