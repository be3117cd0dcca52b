// Package pulsetest provides a recording in-memory pulse.Driver for tests.
package pulsetest

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"unsafe"

	"github.com/oliverbestmann/resurface/pulse"
)

// DefaultPixelFormat is the pixel format of every context created by a new Driver.
var DefaultPixelFormat = pulse.PixelFormat{
	HardwareAccelerated: true,
	ColorBits:           24,
	AlphaBits:           8,
	DepthBits:           24,
	StencilBits:         8,
	DoubleBuffer:        true,
	SRGB:                true,
}

// Driver creates fake contexts and records every call made to them.
type Driver struct {
	mu sync.Mutex

	// returned by CreateContext and CreateOffscreen if set
	CreateErr error

	// returned by BindSurface of new contexts if set
	BindErr error

	Format pulse.PixelFormat

	// every context created so far
	Contexts []*Context

	current *Context
}

func NewDriver() *Driver {
	return &Driver{Format: DefaultPixelFormat}
}

func (d *Driver) CreateContext(req pulse.PixelFormatRequirements, attrs pulse.Attributes, share pulse.NativeContext) (pulse.NativeContext, error) {
	return d.create(req, attrs, share, false, 0, 0)
}

func (d *Driver) CreateOffscreen(width, height uint32, req pulse.PixelFormatRequirements, attrs pulse.Attributes, share pulse.NativeContext) (pulse.NativeContext, error) {
	return d.create(req, attrs, share, true, width, height)
}

func (d *Driver) create(req pulse.PixelFormatRequirements, attrs pulse.Attributes, share pulse.NativeContext, offscreen bool, width, height uint32) (*Context, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.CreateErr != nil {
		return nil, d.CreateErr
	}

	if attrs.API != pulse.APIAny && attrs.API != pulse.APIOpenGL {
		return nil, fmt.Errorf("%w: %s", pulse.ErrNotSupported, attrs.API)
	}

	if !d.Format.Satisfies(req) {
		return nil, pulse.ErrNoAvailablePixelFormat
	}

	var shared *Context
	if share != nil {
		var ok bool
		shared, ok = share.(*Context)
		if !ok {
			return nil, fmt.Errorf("%w: can not share with %T", pulse.ErrNotSupported, share)
		}
	}

	ctx := &Context{
		driver:    d,
		Share:     shared,
		Offscreen: offscreen,
		Width:     width,
		Height:    height,
		BindErr:   d.BindErr,
		Procs:     map[string]unsafe.Pointer{},
	}

	d.Contexts = append(d.Contexts, ctx)

	return ctx, nil
}

// Current returns the context made current last, or nil.
func (d *Driver) Current() *Context {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.current
}

// Last returns the context created last.
func (d *Driver) Last() *Context {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.Contexts) == 0 {
		return nil
	}

	return d.Contexts[len(d.Contexts)-1]
}

// Context is a fake native context.
type Context struct {
	driver *Driver

	Share     *Context
	Offscreen bool

	Width, Height uint32

	// error injection
	BindErr        error
	MakeCurrentErr error
	SwapErr        error

	Procs map[string]unsafe.Pointer

	surface  any
	released bool
	calls    []string
}

var errReleased = errors.New("pulsetest: use of released context")

func (c *Context) record(call string) {
	c.calls = append(c.calls, call)
}

// Calls returns the recorded calls in order.
func (c *Context) Calls() []string {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	return slices.Clone(c.calls)
}

// Count returns how often call was recorded.
func (c *Context) Count(call string) int {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	var count int
	for _, recorded := range c.calls {
		if recorded == call {
			count++
		}
	}

	return count
}

// Surface returns the currently bound native window.
func (c *Context) Surface() any {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	return c.surface
}

func (c *Context) Released() bool {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	return c.released
}

func (c *Context) BindSurface(nativeWindow any) error {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	c.record("BindSurface")

	if c.released {
		return errReleased
	}

	if c.BindErr != nil {
		return c.BindErr
	}

	c.surface = nativeWindow
	return nil
}

func (c *Context) ReleaseSurface() {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	c.record("ReleaseSurface")

	c.surface = nil
	if c.driver.current == c {
		c.driver.current = nil
	}
}

func (c *Context) MakeCurrent() error {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	c.record("MakeCurrent")

	switch {
	case c.released:
		return errReleased
	case c.MakeCurrentErr != nil:
		return c.MakeCurrentErr
	case !c.Offscreen && c.surface == nil:
		return &pulse.ContextError{Op: "make current", Err: pulse.ErrContextLost}
	}

	c.driver.current = c
	return nil
}

func (c *Context) IsCurrent() bool {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	return c.driver.current == c
}

func (c *Context) SwapBuffers() error {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	c.record("SwapBuffers")

	switch {
	case c.released:
		return errReleased
	case c.SwapErr != nil:
		return c.SwapErr
	case !c.Offscreen && c.surface == nil:
		return &pulse.ContextError{Op: "swap buffers", Err: pulse.ErrContextLost}
	}

	return nil
}

func (c *Context) ProcAddress(name string) unsafe.Pointer {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	c.record("ProcAddress")

	return c.Procs[name]
}

func (c *Context) PixelFormat() pulse.PixelFormat {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	return c.driver.Format
}

func (c *Context) API() pulse.API {
	return pulse.APIOpenGL
}

func (c *Context) Release() {
	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()

	c.record("Release")

	c.released = true
	c.surface = nil

	if c.driver.current == c {
		c.driver.current = nil
	}
}
