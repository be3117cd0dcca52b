package glimpse

import (
	"sync"
)

// Queue is an in-memory EventSource. Events can be pushed from any
// goroutine and are delivered on the goroutine calling PollEvents or
// WaitEvents. It backs the mobile adapter and is handy for embedding
// this module into a host that already owns its event loop.
type Queue struct {
	mu      sync.Mutex
	events  []Event
	windows map[WindowID]any

	// buffered with capacity 1, a pending value means "wake up"
	wake chan struct{}
}

func NewQueue() *Queue {
	return &Queue{
		windows: map[WindowID]any{},
		wake:    make(chan struct{}, 1),
	}
}

// Push appends an event to the queue and wakes a blocked WaitEvents.
func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()

	q.Wakeup()
}

func (q *Queue) Wakeup() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) PollEvents(fn func(Event)) {
	for _, event := range q.take() {
		fn(event)
	}
}

func (q *Queue) WaitEvents(fn func(Event)) {
	q.mu.Lock()
	empty := len(q.events) == 0
	q.mu.Unlock()

	if empty {
		<-q.wake
	}

	q.PollEvents(fn)
}

func (q *Queue) take() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = nil
	return events
}

func (q *Queue) NativeWindow(id WindowID) any {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.windows[id]
}

// SetNativeWindow replaces the native handle of a window. A nil handle
// marks the window as currently having no surface. Publishing a handle
// wakes the event loop, it might wait for the window to come back.
func (q *Queue) SetNativeWindow(id WindowID, native any) {
	q.mu.Lock()
	q.windows[id] = native
	q.mu.Unlock()

	if native != nil {
		q.Wakeup()
	}
}

// NewWindow registers a new window with the given native handle.
func (q *Queue) NewWindow(native any) *QueueWindow {
	id := NewWindowID()
	q.SetNativeWindow(id, native)
	return &QueueWindow{id: id, queue: q}
}

// CloseWindow forgets the window. Later NativeWindow calls return nil.
func (q *Queue) CloseWindow(id WindowID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.windows, id)
}

// QueueWindow is a window known to a Queue.
type QueueWindow struct {
	id    WindowID
	queue *Queue
}

func (w *QueueWindow) ID() WindowID {
	return w.id
}

func (w *QueueWindow) NativeWindow() any {
	return w.queue.NativeWindow(w.id)
}

func (w *QueueWindow) Wakeup() {
	w.queue.Wakeup()
}
