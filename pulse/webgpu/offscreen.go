package webgpu

import (
	"github.com/oliverbestmann/resurface/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Offscreen is a webgpu context rendering into a texture.
type Offscreen struct {
	*base

	color  *attachment
	att    attachments
	target *Target
}

func newOffscreen(b *base, width, height uint32) (*Offscreen, error) {
	format := wgpu.TextureFormatRGBA8Unorm
	if b.req.SRGB {
		format = wgpu.TextureFormatRGBA8UnormSrgb
	}

	color, err := newAttachment(b.dev.Device, &wgpu.TextureDescriptor{
		Label: "OffscreenTarget",
		Usage: wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        format,
		Dimension:     wgpu.TextureDimension2D,
		SampleCount:   1,
		MipLevelCount: 1,
	})

	if err != nil {
		return nil, err
	}

	sampleCount := uint32(b.format.Multisampling)

	att, err := newAttachments(b.dev.Device, format, width, height, sampleCount, b.format.DepthBits, b.format.StencilBits)
	if err != nil {
		color.Release()
		return nil, err
	}

	return &Offscreen{
		base:   b,
		color:  color,
		att:    att,
		target: att.target(color.view, format, width, height, sampleCount),
	}, nil
}

// BindSurface fails, an offscreen context has no surface.
func (o *Offscreen) BindSurface(nativeWindow any) error {
	return &pulse.ContextError{Op: "bind surface", Err: pulse.ErrNotSupported}
}

func (o *Offscreen) ReleaseSurface() {}

func (o *Offscreen) MakeCurrent() error {
	o.makeCurrent()
	return nil
}

// SwapBuffers does nothing, the rendered image stays in the texture.
func (o *Offscreen) SwapBuffers() error {
	return nil
}

func (o *Offscreen) Frame() (*Target, error) {
	return o.target, nil
}

// Texture returns the color texture rendered into.
func (o *Offscreen) Texture() *wgpu.Texture {
	return o.color.texture
}

func (o *Offscreen) Clear(color Color) error {
	return o.clear(o.target, color)
}

func (o *Offscreen) Release() {
	if o.released {
		return
	}

	o.att.Release()
	o.color.Release()
	o.release()
}
