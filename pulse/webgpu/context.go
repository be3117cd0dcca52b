package webgpu

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/resurface/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Context is a webgpu context rendering into the surface of a native window.
type Context struct {
	*base

	window  Window
	surface *wgpu.Surface
	config  *wgpu.SurfaceConfiguration

	att attachments

	// the surface texture acquired for the current frame
	frame     *wgpu.Texture
	frameView *wgpu.TextureView
}

func (c *Context) BindSurface(nativeWindow any) error {
	window, ok := nativeWindow.(Window)
	if !ok {
		return &pulse.ContextError{
			Op:  "bind surface",
			Err: fmt.Errorf("%w: native window of type %T", pulse.ErrNotSupported, nativeWindow),
		}
	}

	if c.surface != nil {
		c.ReleaseSurface()
	}

	surface := c.dev.Instance.CreateSurface(window.SurfaceDescriptor())

	caps := surface.GetCapabilities(c.dev.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	format, ok := chooseFormat(caps.Formats, c.req.SRGB)
	if !ok || len(caps.AlphaModes) == 0 {
		surface.Release()
		return &pulse.ContextError{Op: "bind surface", Err: pulse.ErrNoAvailablePixelFormat}
	}

	presentMode := wgpu.PresentModeFifo
	if !c.attrs.VSync {
		for _, mode := range caps.PresentModes {
			if mode == wgpu.PresentModeImmediate {
				presentMode = mode
			}
		}
	}

	c.window = window
	c.surface = surface
	c.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],

		// try to reduce input latency
		DesiredMaximumFrameLatency: 1,
	}

	// configured on the next MakeCurrent, the window might not have a size yet
	return nil
}

func chooseFormat(formats []wgpu.TextureFormat, srgb bool) (wgpu.TextureFormat, bool) {
	preferred := []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA8Unorm}
	if srgb {
		preferred = []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb}
	}

	for _, want := range preferred {
		for _, format := range formats {
			if format == want {
				return format, true
			}
		}
	}

	return 0, false
}

// ReleaseSurface releases the surface and everything sized after it.
// The device stays alive.
func (c *Context) ReleaseSurface() {
	c.releaseFrame()
	c.att.Release()

	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}

	c.config = nil
	c.window = nil

	current.CompareAndSwap(c.base, nil)
}

// MakeCurrent configures the surface to the current size of the window.
func (c *Context) MakeCurrent() error {
	if c.surface == nil {
		return &pulse.ContextError{Op: "make current", Err: pulse.ErrContextLost}
	}

	width, height := c.window.GetSize()
	if width == 0 || height == 0 {
		// minimized, nothing can be presented
		return &pulse.ContextError{Op: "make current", Err: pulse.ErrContextLost}
	}

	if c.config.Width != width || c.config.Height != height {
		if err := c.configure(width, height); err != nil {
			return &pulse.ContextError{Op: "configure surface", Err: err}
		}
	}

	c.makeCurrent()

	return nil
}

func (c *Context) configure(width, height uint32) error {
	slog.Debug("Resize surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	// a frame of the old size must not be presented anymore
	c.releaseFrame()

	c.config.Width = width
	c.config.Height = height
	c.surface.Configure(c.dev.Device, c.config)

	c.att.Release()

	att, err := newAttachments(c.dev.Device, c.config.Format, width, height,
		uint32(c.format.Multisampling), c.format.DepthBits, c.format.StencilBits)

	if err != nil {
		return err
	}

	c.att = att

	return nil
}

// Frame returns the target of the current frame. The surface texture is
// acquired on the first call after MakeCurrent or SwapBuffers.
func (c *Context) Frame() (*Target, error) {
	if c.surface == nil || c.config.Width == 0 {
		return nil, &pulse.ContextError{Op: "get current texture", Err: pulse.ErrContextLost}
	}

	if c.frame == nil {
		texture, err := c.surface.GetCurrentTexture()
		if err != nil {
			return nil, &pulse.ContextError{Op: "get current texture", Err: err}
		}

		view, err := texture.CreateView(nil)
		if err != nil {
			texture.Release()
			return nil, &pulse.ContextError{Op: "create view", Err: err}
		}

		c.frame = texture
		c.frameView = view
	}

	return c.att.target(c.frameView, c.config.Format, c.config.Width, c.config.Height, uint32(c.format.Multisampling)), nil
}

// SwapBuffers presents the current frame. Without a frame there is nothing to present.
func (c *Context) SwapBuffers() error {
	if c.surface == nil {
		return &pulse.ContextError{Op: "swap buffers", Err: pulse.ErrContextLost}
	}

	if c.frame == nil {
		return nil
	}

	c.surface.Present()

	c.frameView.Release()
	c.frameView = nil

	// we do not need to release the texture if present was successful
	c.frame = nil

	return nil
}

func (c *Context) releaseFrame() {
	if c.frameView != nil {
		c.frameView.Release()
		c.frameView = nil
	}

	if c.frame != nil {
		c.frame.Release()
		c.frame = nil
	}
}

// Clear clears the current frame to the given color.
func (c *Context) Clear(color Color) error {
	target, err := c.Frame()
	if err != nil {
		return err
	}

	return c.clear(target, color)
}

func (c *Context) Release() {
	c.ReleaseSurface()
	c.release()
}
