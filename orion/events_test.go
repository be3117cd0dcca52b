package orion_test

import (
	"sync"
	"testing"
	"time"

	"github.com/oliverbestmann/resurface/glimpse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_PollEvents(t *testing.T) {
	f := newFixture()
	win, ctx, _ := f.newContext(t)

	unknown := glimpse.NewWindowID()

	events := []glimpse.Event{
		glimpse.CursorMovedEvent{Window: win.ID(), X: 1, Y: 2},
		glimpse.SuspendedEvent{Window: unknown, Suspended: true},
		glimpse.SuspendedEvent{Window: win.ID(), Suspended: true},
	}

	f.queue.Push(events...)

	var received []glimpse.Event
	f.registry.PollEvents(func(event glimpse.Event) {
		received = append(received, event)
	})

	// every event reaches the callback unchanged, including the dropped notification
	assert.Equal(t, events, received)
	assert.True(t, ctx.IsSuspended())

	// the queue is drained
	received = nil
	f.registry.PollEvents(func(event glimpse.Event) {
		received = append(received, event)
	})

	assert.Empty(t, received)
}

func TestRegistry_DispatchBeforeCallback(t *testing.T) {
	f := newFixture()
	win, ctx, _ := f.newContext(t)

	f.queue.Push(glimpse.SuspendedEvent{Window: win.ID(), Suspended: true})

	var suspendedInCallback bool
	f.registry.PollEvents(func(event glimpse.Event) {
		suspendedInCallback = ctx.IsSuspended()
	})

	assert.True(t, suspendedInCallback)
}

func TestRegistry_WaitEventsWakeup(t *testing.T) {
	f := newFixture()

	done := make(chan struct{})

	go func() {
		defer close(done)
		f.registry.WaitEvents(func(event glimpse.Event) {})
	}()

	f.queue.Wakeup()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("WaitEvents did not return after Wakeup")
	}
}

func TestRegistry_RunForeverInterrupt(t *testing.T) {
	f := newFixture()
	win, ctx, _ := f.newContext(t)

	var mu sync.Mutex
	var received []glimpse.Event

	done := make(chan struct{})

	go func() {
		defer close(done)

		f.registry.RunForever(func(event glimpse.Event) {
			mu.Lock()
			defer mu.Unlock()

			received = append(received, event)
		})
	}()

	f.queue.Push(glimpse.SuspendedEvent{Window: win.ID(), Suspended: true})
	f.queue.Push(glimpse.FocusedEvent{Window: win.ID(), Focused: false})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(received) == 2
	}, 5*time.Second, time.Millisecond)

	assert.True(t, ctx.IsSuspended())

	f.registry.Interrupt()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RunForever did not return after Interrupt")
	}
}

func TestRegistry_RunForeverCanRunAgain(t *testing.T) {
	f := newFixture()

	for range 2 {
		done := make(chan struct{})

		go func() {
			defer close(done)
			f.registry.RunForever(func(event glimpse.Event) {})
		}()

		f.registry.Interrupt()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("RunForever did not return after Interrupt")
		}
	}
}
