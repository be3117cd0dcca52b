package glimpse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func collect(fn func(func(Event))) []Event {
	var events []Event
	fn(func(event Event) {
		events = append(events, event)
	})

	return events
}

func TestQueue_PollEvents(t *testing.T) {
	q := NewQueue()

	assert.Empty(t, collect(q.PollEvents))

	q.Push(FocusedEvent{Window: 1, Focused: true})
	q.Push(ResizedEvent{Window: 1, Width: 10, Height: 10})

	assert.Equal(t, []Event{
		FocusedEvent{Window: 1, Focused: true},
		ResizedEvent{Window: 1, Width: 10, Height: 10},
	}, collect(q.PollEvents))

	assert.Empty(t, collect(q.PollEvents))
}

func TestQueue_WaitEventsBlocksUntilPush(t *testing.T) {
	q := NewQueue()

	// drop the pending wakeup
	q.Wakeup()
	q.WaitEvents(func(Event) {})

	result := make(chan []Event)
	go func() {
		result <- collect(q.WaitEvents)
	}()

	select {
	case <-result:
		t.Fatal("WaitEvents returned without events")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(CloseRequestedEvent{Window: 3})

	select {
	case events := <-result:
		assert.Equal(t, []Event{CloseRequestedEvent{Window: 3}}, events)
	case <-time.After(5 * time.Second):
		t.Fatal("WaitEvents did not return")
	}
}

func TestQueue_WaitEventsReturnsQueuedEvents(t *testing.T) {
	q := NewQueue()
	q.Push(CloseRequestedEvent{Window: 1})

	assert.Equal(t, []Event{CloseRequestedEvent{Window: 1}}, collect(q.WaitEvents))
}

func TestQueue_NativeWindow(t *testing.T) {
	q := NewQueue()

	win := q.NewWindow("handle")
	assert.Equal(t, "handle", win.NativeWindow())
	assert.Equal(t, "handle", q.NativeWindow(win.ID()))

	q.SetNativeWindow(win.ID(), nil)
	assert.Nil(t, win.NativeWindow())

	q.SetNativeWindow(win.ID(), "new handle")
	assert.Equal(t, "new handle", win.NativeWindow())

	q.CloseWindow(win.ID())
	assert.Nil(t, win.NativeWindow())

	other := q.NewWindow("other")
	assert.NotEqual(t, win.ID(), other.ID())
}
