package pulse

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Options configure the creation of a Context or HeadlessContext.
type Options struct {
	// Driver creating the native context. This is the only required field.
	Driver Driver

	PixelFormat PixelFormatRequirements
	Attributes  Attributes

	// Optional context to share gpu objects with.
	Share Sharer
}

// Context is a rendering context bound to the surface of a native window.
//
// The OS may revoke the surface at any time (e.g. when a mobile app is sent
// to the background). The lifecycle registry then calls OnSuspend, and all
// rendering operations fail with ErrContextLost until OnResume was called.
//
// OnSuspend and OnResume must be called from the event loop goroutine.
// MakeCurrent, SwapBuffers and IsCurrent may be called from a render goroutine,
// but the caller must make sure they do not overlap with a suspend or resume.
type Context struct {
	native *owned[NativeContext]
	win    Window
	waker  Waker

	suspended atomic.Bool

	// surface binding state
	mu      sync.Mutex
	bound   bool
	pending bool
	window  any

	// only non nil addresses are cached, drivers without
	// function pointers (like webgpu) never fill it
	procs *lru.Cache[string, unsafe.Pointer]
}

// New creates a context for the given window and binds it to the window's surface.
//
// Returns a *PlatformError if the window has no native window (yet), and a
// *CreationError if the driver could not create or bind the context.
func New(win Window, opts Options) (*Context, error) {
	if opts.Driver == nil {
		return nil, &CreationError{Op: "create context", Err: errors.New("driver must not be nil")}
	}

	if win == nil {
		return nil, &PlatformError{Reason: "window must not be nil"}
	}

	nativeWindow := win.NativeWindow()
	if nativeWindow == nil {
		return nil, &PlatformError{Reason: "native window is not available"}
	}

	native, err := opts.Driver.CreateContext(opts.PixelFormat, opts.Attributes, shared(opts.Share))
	if err != nil {
		return nil, creationError("create context", err)
	}

	if err := native.BindSurface(nativeWindow); err != nil {
		native.Release()
		return nil, creationError("bind surface", err)
	}

	procs, _ := lru.New[string, unsafe.Pointer](64)

	ctx := &Context{
		native: &owned[NativeContext]{value: native},
		win:    win,
		bound:  true,
		procs:  procs,
	}

	if waker, ok := win.(Waker); ok {
		ctx.waker = waker
	}

	registerWithGC(ctx, ctx.native)

	slog.Debug("Context created",
		slog.String("api", native.API().String()),
		slog.Any("pixelFormat", native.PixelFormat()),
	)

	return ctx, nil
}

func shared(share Sharer) NativeContext {
	if share == nil {
		return nil
	}

	return share.nativeContext()
}

func (c *Context) nativeContext() NativeContext {
	return c.native.value
}

// Native returns the driver specific context, e.g. to issue draw calls.
func (c *Context) Native() NativeContext {
	return c.native.value
}

// MakeCurrent makes this context the current one. Returns ErrContextLost while suspended.
func (c *Context) MakeCurrent() error {
	if err := c.ensureBound(); err != nil {
		return err
	}

	return c.native.value.MakeCurrent()
}

// SwapBuffers presents the rendered frame. Returns ErrContextLost while suspended.
func (c *Context) SwapBuffers() error {
	if err := c.ensureBound(); err != nil {
		return err
	}

	return c.native.value.SwapBuffers()
}

// IsCurrent always reports false while the context is suspended.
func (c *Context) IsCurrent() bool {
	if c.suspended.Load() || c.native.released.Load() {
		return false
	}

	return c.native.value.IsCurrent()
}

// GetProcAddress resolves a function of the underlying api. This does
// not depend on the surface and works while suspended.
func (c *Context) GetProcAddress(name string) unsafe.Pointer {
	if ptr, ok := c.procs.Get(name); ok {
		return ptr
	}

	ptr := c.native.value.ProcAddress(name)
	if ptr != nil {
		c.procs.Add(name, ptr)
	}

	return ptr
}

func (c *Context) PixelFormat() PixelFormat {
	return c.native.value.PixelFormat()
}

func (c *Context) API() API {
	return c.native.value.API()
}

func (c *Context) IsSuspended() bool {
	return c.suspended.Load()
}

// Released reports whether Release was called.
func (c *Context) Released() bool {
	return c.native.released.Load()
}

// OnSuspend releases the surface binding. The logical context stays alive.
// Calling OnSuspend on a suspended context does nothing.
func (c *Context) OnSuspend() {
	if !c.suspended.CompareAndSwap(false, true) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// a resume that was never followed by a render has nothing to undo
	c.pending = false
	c.window = nil

	if c.bound && !c.native.released.Load() {
		c.native.value.ReleaseSurface()
	}

	c.bound = false

	slog.Debug("Context suspended")
}

// OnResume records the (possibly new) native window and wakes up the event loop.
// The surface is bound again by the next MakeCurrent or SwapBuffers. If
// nativeWindow is nil, the window is asked for its native window on every
// render attempt until it provides one.
// Calling OnResume on an active context does nothing.
func (c *Context) OnResume(nativeWindow any) {
	if !c.suspended.CompareAndSwap(true, false) {
		return
	}

	c.mu.Lock()
	c.pending = true
	c.window = nativeWindow
	c.mu.Unlock()

	slog.Debug("Context resumed")

	// rendering loops park while suspended and need a nudge to continue
	if c.waker != nil {
		c.waker.Wakeup()
	}
}

func (c *Context) ensureBound() error {
	if c.suspended.Load() {
		return ErrContextLost
	}

	if c.native.released.Load() {
		return ErrReleased
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.pending {
		return nil
	}

	if c.window == nil {
		// the platform might have published the window after the resume
		c.window = c.win.NativeWindow()
	}

	if c.window == nil {
		return &ContextError{Op: "bind surface", Err: ErrContextLost}
	}

	if err := c.native.value.BindSurface(c.window); err != nil {
		return &ContextError{Op: "bind surface", Err: err}
	}

	c.bound = true
	c.pending = false
	c.window = nil

	return nil
}

// Release destroys the context and its surface binding. It is safe to call
// Release multiple times and in any state.
func (c *Context) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.native.release() {
		c.bound = false
		c.pending = false
		c.window = nil

		c.procs.Purge()
	}
}
