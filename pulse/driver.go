package pulse

import "unsafe"

// Driver creates native rendering contexts. It is the graphics backend
// as seen by a Context, e.g. the webgpu driver in the webgpu sub package.
type Driver interface {
	// CreateContext creates a logical context that is not yet bound to any surface.
	// If share is not nil, the new context shares its gpu objects with share.
	CreateContext(req PixelFormatRequirements, attrs Attributes, share NativeContext) (NativeContext, error)

	// CreateOffscreen creates a context rendering into an offscreen buffer of the given size.
	CreateOffscreen(width, height uint32, req PixelFormatRequirements, attrs Attributes, share NativeContext) (NativeContext, error)
}

// NativeContext is a context handle owned by the driver.
type NativeContext interface {
	// BindSurface binds the context to the drawable of the given native window.
	// The type of the native window is defined by the driver.
	BindSurface(nativeWindow any) error

	// ReleaseSurface drops the surface binding but keeps the logical context alive.
	ReleaseSurface()

	MakeCurrent() error
	IsCurrent() bool
	SwapBuffers() error

	// ProcAddress resolves a function of the underlying api.
	// Returns nil if the api has no such concept or the function is unknown.
	ProcAddress(name string) unsafe.Pointer

	PixelFormat() PixelFormat
	API() API

	// Release destroys the context together with any surface still bound.
	Release()
}

// Window provides the native window a Context renders into.
type Window interface {
	// NativeWindow returns the native window handle, or nil if the
	// platform did not provide a window (yet).
	NativeWindow() any
}

// Waker is implemented by windows that can wake up their event loop.
type Waker interface {
	Wakeup()
}

// Sharer is implemented by contexts whose gpu objects can be shared with new contexts.
type Sharer interface {
	nativeContext() NativeContext
}
