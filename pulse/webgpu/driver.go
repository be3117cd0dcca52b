package webgpu

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"

	"github.com/oliverbestmann/resurface/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Window is the native window type understood by this driver.
type Window interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// GetSize returns the size of the drawable in pixels.
	GetSize() (uint32, uint32)
}

// Driver creates webgpu contexts.
type Driver struct {
	// Use a software adapter. This is also enabled by setting
	// WGPU_FORCE_FALLBACK_ADAPTER=1 or requesting a software pixel format.
	ForceFallbackAdapter bool
}

var _ pulse.Driver = Driver{}

func (d Driver) CreateContext(req pulse.PixelFormatRequirements, attrs pulse.Attributes, share pulse.NativeContext) (pulse.NativeContext, error) {
	b, err := d.newBase(req, attrs, share)
	if err != nil {
		return nil, err
	}

	return &Context{base: b}, nil
}

func (d Driver) CreateOffscreen(width, height uint32, req pulse.PixelFormatRequirements, attrs pulse.Attributes, share pulse.NativeContext) (pulse.NativeContext, error) {
	b, err := d.newBase(req, attrs, share)
	if err != nil {
		return nil, err
	}

	off, err := newOffscreen(b, width, height)
	if err != nil {
		b.dev.release()
		return nil, err
	}

	return off, nil
}

func (d Driver) newBase(req pulse.PixelFormatRequirements, attrs pulse.Attributes, share pulse.NativeContext) (*base, error) {
	if err := validate(req, attrs); err != nil {
		return nil, err
	}

	var dev *device

	if share != nil {
		shared, ok := share.(sharer)
		if !ok {
			return nil, fmt.Errorf("%w: can not share gpu objects with %T", pulse.ErrNotSupported, share)
		}

		dev = shared.shared().dev.acquire()
	} else {
		var err error

		forceFallback := d.ForceFallbackAdapter || forceFallbackAdapter || req.Software
		dev, err = newDevice(forceFallback)
		if err != nil {
			return nil, err
		}
	}

	b := &base{
		dev:   dev,
		req:   req,
		attrs: attrs,
		format: pulse.PixelFormat{
			HardwareAccelerated: !req.Software,
			ColorBits:           24,
			AlphaBits:           8,
			DepthBits:           depthBits(req),
			StencilBits:         stencilBits(req),
			DoubleBuffer:        true,
			Multisampling:       sampleCount(req),
			SRGB:                req.SRGB,
		},
	}

	slog.Debug("Created webgpu context", slog.Bool("shared", share != nil))

	return b, nil
}

// validate rejects requirements webgpu surfaces can not provide.
func validate(req pulse.PixelFormatRequirements, attrs pulse.Attributes) error {
	switch attrs.API {
	case pulse.APIAny, pulse.APIWebGPU:
	default:
		return fmt.Errorf("%w: api %s", pulse.ErrNotSupported, attrs.API)
	}

	if !attrs.Version.IsZero() {
		return fmt.Errorf("%w: webgpu is not versioned, got %s", pulse.ErrVersionNotSupported, attrs.Version)
	}

	switch {
	case req.FloatColorBuffer:
		return fmt.Errorf("%w: float color buffer", pulse.ErrNoAvailablePixelFormat)
	case req.ColorBits > 24 || req.AlphaBits > 8:
		return fmt.Errorf("%w: %d color bits, %d alpha bits", pulse.ErrNoAvailablePixelFormat, req.ColorBits, req.AlphaBits)
	case req.DepthBits > 32:
		return fmt.Errorf("%w: %d depth bits", pulse.ErrNoAvailablePixelFormat, req.DepthBits)
	case req.StencilBits > 8:
		return fmt.Errorf("%w: %d stencil bits", pulse.ErrNoAvailablePixelFormat, req.StencilBits)
	case req.Stereoscopy:
		return fmt.Errorf("%w: stereoscopy", pulse.ErrNoAvailablePixelFormat)
	}

	switch req.Multisampling {
	case 0, 1, 4:
	default:
		return fmt.Errorf("%w: %d samples", pulse.ErrNoAvailablePixelFormat, req.Multisampling)
	}

	return nil
}

func sampleCount(req pulse.PixelFormatRequirements) uint16 {
	return max(1, req.Multisampling)
}

func depthBits(req pulse.PixelFormatRequirements) uint8 {
	switch {
	case req.StencilBits > 0:
		return 24
	case req.DepthBits > 0:
		return 32
	default:
		return 0
	}
}

func stencilBits(req pulse.PixelFormatRequirements) uint8 {
	if req.StencilBits > 0 {
		return 8
	}

	return 0
}

// base is the state shared by on- and offscreen contexts.
type base struct {
	dev   *device
	req   pulse.PixelFormatRequirements
	attrs pulse.Attributes

	format pulse.PixelFormat

	released bool
}

type sharer interface {
	shared() *base
}

func (b *base) shared() *base {
	return b
}

// webgpu has no thread bound current context, we only remember
// which context was made current last.
var current atomic.Pointer[base]

func (b *base) makeCurrent() {
	current.Store(b)
}

func (b *base) IsCurrent() bool {
	return current.Load() == b
}

func (b *base) PixelFormat() pulse.PixelFormat {
	return b.format
}

// ProcAddress returns nil, webgpu has no function pointers to resolve.
func (b *base) ProcAddress(name string) unsafe.Pointer {
	return nil
}

func (b *base) API() pulse.API {
	return pulse.APIWebGPU
}

// Device exposes the webgpu device. Use it to build your own pipelines and render passes.
func (b *base) Device() *wgpu.Device {
	return b.dev.Device
}

func (b *base) Queue() *wgpu.Queue {
	return b.dev.Queue
}

func (b *base) release() {
	if b.released {
		return
	}

	b.released = true
	current.CompareAndSwap(b, nil)
	b.dev.release()
}
