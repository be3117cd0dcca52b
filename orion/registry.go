package orion

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/oliverbestmann/resurface/glimpse"
	"github.com/oliverbestmann/resurface/pulse"
)

// Registry routes the suspend and resume notifications of an event source
// to the contexts rendering into the affected windows.
//
// The registry only keeps weak references. It never keeps a context
// alive, and a context that was released or garbage collected simply
// stops receiving notifications.
type Registry struct {
	source glimpse.EventSource

	mu      sync.Mutex
	entries map[glimpse.WindowID]weak.Pointer[pulse.Context]

	interrupted atomic.Bool
}

func NewRegistry(source glimpse.EventSource) *Registry {
	return &Registry{
		source:  source,
		entries: map[glimpse.WindowID]weak.Pointer[pulse.Context]{},
	}
}

type registryEntry struct {
	id  glimpse.WindowID
	ctx weak.Pointer[pulse.Context]
}

// Register associates the context with the window. An existing
// entry for the same window is replaced.
func (r *Registry) Register(id glimpse.WindowID, ctx *pulse.Context) {
	ref := weak.Make(ctx)

	r.mu.Lock()
	r.entries[id] = ref
	r.mu.Unlock()

	// drop the entry once the context is garbage collected
	runtime.AddCleanup(ctx, r.prune, registryEntry{id: id, ctx: ref})
}

// Unregister removes the entry of the window, if any.
func (r *Registry) Unregister(id glimpse.WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
}

func (r *Registry) prune(entry registryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// the window might have been registered again with a newer context
	if r.entries[entry.id] == entry.ctx {
		delete(r.entries, entry.id)
	}
}

// Len returns the number of entries, including stale ones not yet pruned.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Resolve returns the live context of the window, or nil if there is none.
func (r *Registry) Resolve(id glimpse.WindowID) *pulse.Context {
	r.mu.Lock()
	ref, ok := r.entries[id]
	r.mu.Unlock()

	if !ok {
		return nil
	}

	ctx := ref.Value()
	if ctx == nil || ctx.Released() {
		return nil
	}

	return ctx
}

// Dispatch forwards suspend and resume notifications to the registered
// context and returns the event unchanged. Notifications for unknown or
// destroyed windows are dropped, a late notification for a window
// that was just closed is expected.
func (r *Registry) Dispatch(event glimpse.Event) glimpse.Event {
	suspended, ok := event.(glimpse.SuspendedEvent)
	if !ok {
		return event
	}

	ctx := r.Resolve(suspended.Window)
	if ctx == nil {
		slog.Debug("Dropping lifecycle event of unknown window",
			slog.Uint64("window", uint64(suspended.Window)),
			slog.Bool("suspended", suspended.Suspended),
		)

		return event
	}

	if ctx.IsSuspended() == suspended.Suspended {
		return event
	}

	if suspended.Suspended {
		ctx.OnSuspend()
	} else {
		ctx.OnResume(r.source.NativeWindow(suspended.Window))
	}

	return event
}
