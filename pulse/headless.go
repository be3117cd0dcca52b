package pulse

import (
	"errors"
	"fmt"
	"unsafe"
)

// HeadlessContext renders into an offscreen buffer. It has no native
// window and is therefore never suspended.
type HeadlessContext struct {
	native *owned[NativeContext]

	width, height uint32
}

func NewHeadless(width, height uint32, opts Options) (*HeadlessContext, error) {
	if opts.Driver == nil {
		return nil, &CreationError{Op: "create headless context", Err: errors.New("driver must not be nil")}
	}

	if width == 0 || height == 0 {
		return nil, &CreationError{
			Op:  "create headless context",
			Err: fmt.Errorf("invalid dimensions %dx%d", width, height),
		}
	}

	native, err := opts.Driver.CreateOffscreen(width, height, opts.PixelFormat, opts.Attributes, shared(opts.Share))
	if err != nil {
		return nil, creationError("create headless context", err)
	}

	ctx := &HeadlessContext{
		native: &owned[NativeContext]{value: native},
		width:  width,
		height: height,
	}

	registerWithGC(ctx, ctx.native)

	return ctx, nil
}

func (h *HeadlessContext) nativeContext() NativeContext {
	return h.native.value
}

func (h *HeadlessContext) Native() NativeContext {
	return h.native.value
}

func (h *HeadlessContext) Size() (uint32, uint32) {
	return h.width, h.height
}

func (h *HeadlessContext) MakeCurrent() error {
	if h.native.released.Load() {
		return ErrReleased
	}

	return h.native.value.MakeCurrent()
}

func (h *HeadlessContext) SwapBuffers() error {
	if h.native.released.Load() {
		return ErrReleased
	}

	return h.native.value.SwapBuffers()
}

func (h *HeadlessContext) IsCurrent() bool {
	return !h.native.released.Load() && h.native.value.IsCurrent()
}

func (h *HeadlessContext) GetProcAddress(name string) unsafe.Pointer {
	return h.native.value.ProcAddress(name)
}

func (h *HeadlessContext) PixelFormat() PixelFormat {
	return h.native.value.PixelFormat()
}

func (h *HeadlessContext) API() API {
	return h.native.value.API()
}

func (h *HeadlessContext) Release() {
	h.native.release()
}
