package pulse_test

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/oliverbestmann/resurface/pulse"
	"github.com/oliverbestmann/resurface/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWindow struct {
	native  any
	wakeups int
}

func (w *testWindow) NativeWindow() any {
	return w.native
}

func (w *testWindow) Wakeup() {
	w.wakeups++
}

func newContext(t *testing.T) (*pulse.Context, *pulsetest.Context, *testWindow) {
	t.Helper()

	driver := pulsetest.NewDriver()
	win := &testWindow{native: "window-1"}

	ctx, err := pulse.New(win, pulse.Options{Driver: driver})
	require.NoError(t, err)

	t.Cleanup(ctx.Release)

	return ctx, driver.Last(), win
}

func TestContext_RenderingWhileActive(t *testing.T) {
	ctx, native, _ := newContext(t)

	assert.False(t, ctx.IsSuspended())
	assert.Equal(t, "window-1", native.Surface())

	require.NoError(t, ctx.MakeCurrent())
	assert.True(t, ctx.IsCurrent())
	require.NoError(t, ctx.SwapBuffers())
}

func TestContext_RenderingWhileSuspended(t *testing.T) {
	ctx, native, _ := newContext(t)

	require.NoError(t, ctx.MakeCurrent())

	ctx.OnSuspend()

	assert.True(t, ctx.IsSuspended())
	assert.False(t, ctx.IsCurrent())
	assert.ErrorIs(t, ctx.MakeCurrent(), pulse.ErrContextLost)
	assert.ErrorIs(t, ctx.SwapBuffers(), pulse.ErrContextLost)

	// the native context must not be touched while suspended
	assert.Equal(t, 1, native.Count("MakeCurrent"))
	assert.Equal(t, 0, native.Count("SwapBuffers"))
	assert.Nil(t, native.Surface())
	assert.False(t, native.Released())
}

func TestContext_SuspendIsIdempotent(t *testing.T) {
	ctx, native, _ := newContext(t)

	for range 5 {
		ctx.OnSuspend()
	}

	assert.True(t, ctx.IsSuspended())
	assert.Equal(t, 1, native.Count("ReleaseSurface"))
}

func TestContext_ResumeIsIdempotent(t *testing.T) {
	ctx, native, win := newContext(t)

	// resuming an active context does nothing
	ctx.OnResume("window-2")
	assert.Equal(t, 0, win.wakeups)

	ctx.OnSuspend()

	for range 5 {
		ctx.OnResume("window-2")
	}

	assert.False(t, ctx.IsSuspended())
	assert.Equal(t, 1, win.wakeups)

	require.NoError(t, ctx.MakeCurrent())
	require.NoError(t, ctx.SwapBuffers())

	assert.Equal(t, 2, native.Count("BindSurface"))
	assert.Equal(t, "window-2", native.Surface())
}

func TestContext_SuspendResumeCycle(t *testing.T) {
	ctx, native, _ := newContext(t)

	ctx.OnSuspend()
	assert.ErrorIs(t, ctx.MakeCurrent(), pulse.ErrContextLost)

	ctx.OnResume("window-1")
	require.NoError(t, ctx.MakeCurrent())
	assert.True(t, ctx.IsCurrent())

	assert.Equal(t, []string{"BindSurface", "ReleaseSurface", "BindSurface", "MakeCurrent"}, native.Calls())
}

func TestContext_RapidTogglingDoesNotRebind(t *testing.T) {
	ctx, native, _ := newContext(t)

	for range 10 {
		ctx.OnSuspend()
		ctx.OnResume("window-1")
	}

	// only the first suspend had a surface to release
	assert.Equal(t, 1, native.Count("ReleaseSurface"))
	assert.Equal(t, 1, native.Count("BindSurface"))

	require.NoError(t, ctx.MakeCurrent())
	require.NoError(t, ctx.MakeCurrent())

	assert.Equal(t, 2, native.Count("BindSurface"))
}

func TestContext_ResumeWithoutNativeWindow(t *testing.T) {
	ctx, native, win := newContext(t)

	ctx.OnSuspend()

	// the os destroyed the window and did not hand out a new one yet
	win.native = nil
	ctx.OnResume(nil)

	err := ctx.MakeCurrent()
	assert.ErrorIs(t, err, pulse.ErrContextLost)

	var contextErr *pulse.ContextError
	assert.ErrorAs(t, err, &contextErr)

	assert.Equal(t, 1, native.Count("BindSurface"))
	assert.False(t, ctx.IsSuspended())
}

func TestContext_ResumeBeforeNativeWindowIsAvailable(t *testing.T) {
	ctx, native, win := newContext(t)

	ctx.OnSuspend()

	win.native = nil
	ctx.OnResume(nil)

	assert.ErrorIs(t, ctx.MakeCurrent(), pulse.ErrContextLost)
	assert.ErrorIs(t, ctx.SwapBuffers(), pulse.ErrContextLost)

	win.native = "window-2"

	require.NoError(t, ctx.MakeCurrent())
	require.NoError(t, ctx.SwapBuffers())

	assert.Equal(t, "window-2", native.Surface())
	assert.Equal(t, 2, native.Count("BindSurface"))
	assert.True(t, ctx.IsCurrent())
}

func TestContext_RebindFailure(t *testing.T) {
	ctx, native, _ := newContext(t)

	ctx.OnSuspend()
	ctx.OnResume("window-1")

	bindErr := errors.New("surface gone")
	native.BindErr = bindErr

	assert.ErrorIs(t, ctx.MakeCurrent(), bindErr)

	// the next attempt tries again
	native.BindErr = nil
	require.NoError(t, ctx.MakeCurrent())
}

func TestContext_DriverReportsContextLost(t *testing.T) {
	ctx, native, _ := newContext(t)

	native.SwapErr = &pulse.ContextError{Op: "swap buffers", Err: pulse.ErrContextLost}

	assert.False(t, ctx.IsSuspended())
	assert.ErrorIs(t, ctx.SwapBuffers(), pulse.ErrContextLost)
}

func TestContext_GetProcAddress(t *testing.T) {
	ctx, native, _ := newContext(t)

	var symbol int
	native.Procs["glClear"] = unsafe.Pointer(&symbol)

	assert.Equal(t, unsafe.Pointer(&symbol), ctx.GetProcAddress("glClear"))
	assert.Nil(t, ctx.GetProcAddress("glUnknown"))

	// resolving symbols does not depend on the surface
	ctx.OnSuspend()
	assert.Equal(t, unsafe.Pointer(&symbol), ctx.GetProcAddress("glClear"))

	// known symbols are served from the cache
	assert.Equal(t, 2, native.Count("ProcAddress"))

	// unknown ones are asked for again, e.g. webgpu never resolves anything
	assert.Nil(t, ctx.GetProcAddress("glUnknown"))
	assert.Equal(t, 3, native.Count("ProcAddress"))
}

func TestContext_Release(t *testing.T) {
	ctx, native, _ := newContext(t)

	ctx.Release()
	ctx.Release()

	assert.True(t, ctx.Released())
	assert.True(t, native.Released())
	assert.Equal(t, 1, native.Count("Release"))

	assert.ErrorIs(t, ctx.MakeCurrent(), pulse.ErrReleased)
	assert.ErrorIs(t, ctx.SwapBuffers(), pulse.ErrReleased)
	assert.False(t, ctx.IsCurrent())

	// lifecycle transitions after release must not reach the driver
	ctx.OnSuspend()
	ctx.OnResume("window-1")
	assert.Equal(t, 0, native.Count("ReleaseSurface"))
}

func TestContext_ReleaseWhileSuspended(t *testing.T) {
	ctx, native, _ := newContext(t)

	ctx.OnSuspend()
	ctx.Release()

	assert.True(t, native.Released())
	assert.Equal(t, 1, native.Count("ReleaseSurface"))
}

func TestNew_NativeWindowUnavailable(t *testing.T) {
	driver := pulsetest.NewDriver()

	_, err := pulse.New(&testWindow{}, pulse.Options{Driver: driver})

	var platformErr *pulse.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Empty(t, driver.Contexts)

	_, err = pulse.New(nil, pulse.Options{Driver: driver})
	require.ErrorAs(t, err, &platformErr)
}

func TestNew_CreationFailure(t *testing.T) {
	driver := pulsetest.NewDriver()
	driver.CreateErr = pulse.ErrVersionNotSupported

	_, err := pulse.New(&testWindow{native: "window"}, pulse.Options{Driver: driver})

	var creationErr *pulse.CreationError
	require.ErrorAs(t, err, &creationErr)
	assert.ErrorIs(t, err, pulse.ErrVersionNotSupported)
}

func TestNew_UnsupportedPixelFormat(t *testing.T) {
	driver := pulsetest.NewDriver()

	_, err := pulse.New(&testWindow{native: "window"}, pulse.Options{
		Driver:      driver,
		PixelFormat: pulse.PixelFormatRequirements{StencilBits: 16},
	})

	assert.ErrorIs(t, err, pulse.ErrNoAvailablePixelFormat)
}

func TestNew_BindFailureReleasesContext(t *testing.T) {
	driver := pulsetest.NewDriver()
	driver.BindErr = errors.New("bind failed")

	_, err := pulse.New(&testWindow{native: "window"}, pulse.Options{Driver: driver})

	var creationErr *pulse.CreationError
	require.ErrorAs(t, err, &creationErr)
	assert.Equal(t, "bind surface", creationErr.Op)

	assert.True(t, driver.Last().Released())
}

func TestNew_SharedContext(t *testing.T) {
	driver := pulsetest.NewDriver()

	first, err := pulse.New(&testWindow{native: "window-1"}, pulse.Options{Driver: driver})
	require.NoError(t, err)
	defer first.Release()

	second, err := pulse.New(&testWindow{native: "window-2"}, pulse.Options{Driver: driver, Share: first})
	require.NoError(t, err)
	defer second.Release()

	assert.Same(t, first.Native(), second.Native().(*pulsetest.Context).Share)
}
