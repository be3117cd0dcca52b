package glimpse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputState_Keys(t *testing.T) {
	var input InputState

	input.Apply(KeyEvent{Window: 1, Key: KeyA, Pressed: true})

	assert.True(t, input.Keys.Pressed[KeyA])
	assert.True(t, input.Keys.JustPressed[KeyA])

	input.NextTick()

	assert.True(t, input.Keys.Pressed[KeyA])
	assert.False(t, input.Keys.JustPressed[KeyA])

	input.Apply(KeyEvent{Window: 1, Key: KeyA, Pressed: false})

	assert.False(t, input.Keys.Pressed[KeyA])
	assert.True(t, input.Keys.JustReleased[KeyA])
}

func TestInputState_Mouse(t *testing.T) {
	var input InputState

	input.Apply(CursorMovedEvent{Window: 1, X: 10, Y: 10})
	input.Apply(CursorMovedEvent{Window: 1, X: 15, Y: 7})
	input.Apply(MouseButtonEvent{Window: 1, Button: MouseButtonLeft, Pressed: true})

	assert.Equal(t, float32(15), input.Mouse.CursorX)
	assert.Equal(t, float32(7), input.Mouse.CursorY)
	assert.Equal(t, float32(5), input.Mouse.DeltaX)
	assert.Equal(t, float32(-3), input.Mouse.DeltaY)
	assert.True(t, input.Mouse.JustPressed[MouseButtonLeft])

	input.NextTick()

	assert.Zero(t, input.Mouse.DeltaX)
	assert.Zero(t, input.Mouse.DeltaY)
	assert.True(t, input.Mouse.Pressed[MouseButtonLeft])
	assert.False(t, input.Mouse.JustPressed[MouseButtonLeft])
}

func TestInputState_SuspendReleasesKeys(t *testing.T) {
	var input InputState

	input.Apply(FocusedEvent{Window: 1, Focused: true})
	input.Apply(KeyEvent{Window: 1, Key: KeySpace, Pressed: true})
	input.Apply(MouseButtonEvent{Window: 1, Button: MouseButtonRight, Pressed: true})

	input.Apply(SuspendedEvent{Window: 1, Suspended: true})

	assert.False(t, input.Focused)
	assert.False(t, input.Keys.Pressed[KeySpace])
	assert.False(t, input.Mouse.Pressed[MouseButtonRight])
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "KeyA", KeyA.String())
	assert.Equal(t, "KeyRightControl", KeyRightControl.String())
	assert.Equal(t, "Key(1000)", Key(1000).String())
}
