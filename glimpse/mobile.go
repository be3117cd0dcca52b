package glimpse

import (
	"log/slog"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
)

// MobileSource translates the events of a golang.org/x/mobile app into
// the event stream of a single window. The host keeps running its own
// app.Main loop and forwards every event to Feed.
//
// The native window of a mobile app is owned by the OS and can be
// recreated while the app is in the background. MobileSource therefore
// never caches it and asks nativeWindow every time it is needed.
type MobileSource struct {
	*Queue

	window       *MobileWindow
	nativeWindow func() any
}

// MobileWindow is the one window of a MobileSource.
type MobileWindow struct {
	id     WindowID
	source *MobileSource
}

func NewMobileSource(nativeWindow func() any) *MobileSource {
	src := &MobileSource{
		Queue:        NewQueue(),
		nativeWindow: nativeWindow,
	}

	src.window = &MobileWindow{id: NewWindowID(), source: src}

	return src
}

func (m *MobileSource) Window() *MobileWindow {
	return m.window
}

func (m *MobileSource) NativeWindow(id WindowID) any {
	if id != m.window.id {
		return nil
	}

	return m.nativeWindow()
}

// Feed translates one x/mobile event. Unknown events are ignored.
func (m *MobileSource) Feed(event any) {
	id := m.window.id

	switch event := event.(type) {
	case lifecycle.Event:
		slog.Debug("Lifecycle changed",
			slog.String("from", event.From.String()),
			slog.String("to", event.To.String()),
		)

		switch event.Crosses(lifecycle.StageVisible) {
		case lifecycle.CrossOff:
			m.Push(SuspendedEvent{Window: id, Suspended: true})
		case lifecycle.CrossOn:
			m.Push(SuspendedEvent{Window: id, Suspended: false})
		}

		switch event.Crosses(lifecycle.StageFocused) {
		case lifecycle.CrossOff:
			m.Push(FocusedEvent{Window: id, Focused: false})
		case lifecycle.CrossOn:
			m.Push(FocusedEvent{Window: id, Focused: true})
		}

		if event.Crosses(lifecycle.StageAlive) == lifecycle.CrossOff {
			m.Push(CloseRequestedEvent{Window: id})
		}

	case size.Event:
		m.Push(ResizedEvent{
			Window: id,
			Width:  uint32(max(0, event.WidthPx)),
			Height: uint32(max(0, event.HeightPx)),
		})

	case key.Event:
		if event.Direction == key.DirNone {
			return
		}

		m.Push(KeyEvent{
			Window:  id,
			Key:     keyOfMobile(event.Code),
			Pressed: event.Direction == key.DirPress,
		})

	case touch.Event:
		// the first finger acts like a left mouse button
		if event.Sequence != 0 {
			return
		}

		m.Push(CursorMovedEvent{Window: id, X: event.X, Y: event.Y})

		switch event.Type {
		case touch.TypeBegin:
			m.Push(MouseButtonEvent{Window: id, Button: MouseButtonLeft, Pressed: true})
		case touch.TypeEnd:
			m.Push(MouseButtonEvent{Window: id, Button: MouseButtonLeft, Pressed: false})
		}
	}
}

func (w *MobileWindow) ID() WindowID {
	return w.id
}

func (w *MobileWindow) NativeWindow() any {
	return w.source.nativeWindow()
}

func (w *MobileWindow) Wakeup() {
	w.source.Wakeup()
}

var mobileToKey = map[key.Code]Key{
	key.CodeA: KeyA, key.CodeB: KeyB, key.CodeC: KeyC, key.CodeD: KeyD,
	key.CodeE: KeyE, key.CodeF: KeyF, key.CodeG: KeyG, key.CodeH: KeyH,
	key.CodeI: KeyI, key.CodeJ: KeyJ, key.CodeK: KeyK, key.CodeL: KeyL,
	key.CodeM: KeyM, key.CodeN: KeyN, key.CodeO: KeyO, key.CodeP: KeyP,
	key.CodeQ: KeyQ, key.CodeR: KeyR, key.CodeS: KeyS, key.CodeT: KeyT,
	key.CodeU: KeyU, key.CodeV: KeyV, key.CodeW: KeyW, key.CodeX: KeyX,
	key.CodeY: KeyY, key.CodeZ: KeyZ,

	key.Code0: Key0, key.Code1: Key1, key.Code2: Key2, key.Code3: Key3,
	key.Code4: Key4, key.Code5: Key5, key.Code6: Key6, key.Code7: Key7,
	key.Code8: Key8, key.Code9: Key9,

	key.CodeSpacebar:        KeySpace,
	key.CodeReturnEnter:     KeyEnter,
	key.CodeEscape:          KeyEscape,
	key.CodeTab:             KeyTab,
	key.CodeDeleteBackspace: KeyBackspace,
	key.CodeLeftArrow:       KeyLeft,
	key.CodeRightArrow:      KeyRight,
	key.CodeUpArrow:         KeyUp,
	key.CodeDownArrow:       KeyDown,
	key.CodeLeftShift:       KeyLeftShift,
	key.CodeRightShift:      KeyRightShift,
	key.CodeLeftControl:     KeyLeftControl,
	key.CodeRightControl:    KeyRightControl,
}

func keyOfMobile(code key.Code) Key {
	if k, ok := mobileToKey[code]; ok {
		return k
	}

	return KeyUnknown
}
