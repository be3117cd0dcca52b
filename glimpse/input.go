package glimpse

import "log/slog"

type MouseButton uint32

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to NextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to NextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key just pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

type MouseState struct {
	CursorX, CursorY float32

	// cursor movement since the last call to NextTick()
	DeltaX, DeltaY float32

	Pressed map[MouseButton]bool

	// mouse buttons that were just clicked after the last call to NextTick()
	JustPressed map[MouseButton]bool

	// mouse buttons that were just released after the last call to NextTick()
	JustReleased map[MouseButton]bool

	moved bool
}

func (m *MouseState) press(button MouseButton) {
	setTrue(&m.Pressed, button)
	setTrue(&m.JustPressed, button)
}

func (m *MouseState) release(button MouseButton) {
	setFalse(&m.Pressed, button)
	setTrue(&m.JustReleased, button)
}

func (m *MouseState) position(x, y float32) {
	if m.moved {
		m.DeltaX += x - m.CursorX
		m.DeltaY += y - m.CursorY
	}

	m.CursorX = x
	m.CursorY = y
	m.moved = true
}

func (m *MouseState) nextTick() {
	m.DeltaX = 0
	m.DeltaY = 0

	clear(m.JustPressed)
	clear(m.JustReleased)
}

// InputState accumulates the input events of a single window.
type InputState struct {
	Keys  KeysState
	Mouse MouseState

	// false while the window is minimized or in the background
	Focused bool
}

// Apply updates the state from an event. Events that do
// not carry input are ignored.
func (s *InputState) Apply(event Event) {
	switch event := event.(type) {
	case KeyEvent:
		if event.Pressed {
			s.Keys.press(event.Key)
		} else {
			s.Keys.release(event.Key)
		}

	case MouseButtonEvent:
		if event.Pressed {
			s.Mouse.press(event.Button)
		} else {
			s.Mouse.release(event.Button)
		}

	case CursorMovedEvent:
		s.Mouse.position(event.X, event.Y)

	case FocusedEvent:
		s.Focused = event.Focused

	case SuspendedEvent:
		if event.Suspended {
			// we will not see the release events of keys still held down
			clear(s.Keys.Pressed)
			clear(s.Mouse.Pressed)
			s.Focused = false
		}
	}
}

// NextTick resets the per frame state. Call it once per frame after
// the input was consumed.
func (s *InputState) NextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
