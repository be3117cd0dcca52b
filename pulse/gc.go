package pulse

import (
	"log/slog"
	"reflect"
	"runtime"
	"sync/atomic"
)

type releaser interface{ Release() }

// owned holds a native resource that must be released exactly once,
// either explicitly or after its owner was garbage collected.
type owned[T releaser] struct {
	value    T
	released atomic.Bool
}

func (o *owned[T]) release() bool {
	if !o.released.CompareAndSwap(false, true) {
		return false
	}

	o.value.Release()
	return true
}

// registerWithGC releases the resource once owner is garbage collected
// in case nobody released it before.
func registerWithGC[O any, T releaser](owner *O, resource *owned[T]) {
	runtime.AddCleanup(owner, releaseNow[T], resource)
}

func releaseNow[T releaser](resource *owned[T]) {
	if resource.release() {
		typ := reflect.TypeOf(resource.value).String()
		slog.Debug("Released garbage collected instance", slog.String("type", typ))
	}
}
