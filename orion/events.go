package orion

import (
	"github.com/oliverbestmann/resurface/glimpse"
)

// PollEvents dispatches all queued events and passes them on to callback.
func (r *Registry) PollEvents(callback func(glimpse.Event)) {
	r.source.PollEvents(r.dispatchTo(callback))
}

// WaitEvents blocks until events are available or the source was woken up,
// then dispatches the queued events.
func (r *Registry) WaitEvents(callback func(glimpse.Event)) {
	r.source.WaitEvents(r.dispatchTo(callback))
}

// RunForever dispatches events until Interrupt is called. Each event is
// processed completely, including the callback, before the next one.
func (r *Registry) RunForever(callback func(glimpse.Event)) {
	handle := r.dispatchTo(callback)

	for !r.interrupted.Load() {
		r.source.WaitEvents(handle)
	}

	// the next call should run again
	r.interrupted.Store(false)
}

// Interrupt makes a running RunForever return once the current batch
// of events was processed. It is safe to call from any goroutine.
func (r *Registry) Interrupt() {
	r.interrupted.Store(true)
	r.source.Wakeup()
}

func (r *Registry) dispatchTo(callback func(glimpse.Event)) func(glimpse.Event) {
	return func(event glimpse.Event) {
		callback(r.Dispatch(event))
	}
}
