package webgpu

import (
	"fmt"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// Target holds all the information of something that can be rendered to.
// This is either the current surface texture or an offscreen texture.
type Target struct {
	View *wgpu.TextureView

	// In case of multisample rendering, this holds the
	// texture the multisampled fragments are resolved to.
	ResolveTarget *wgpu.TextureView

	// Optional depth (and stencil) attachment
	Depth *wgpu.TextureView

	// true if Depth has a stencil aspect
	Stencil bool

	// Texture format of View
	Format wgpu.TextureFormat

	// Size of the target to render to
	Width  uint32
	Height uint32

	// The number of samples of the View texture
	SampleCount uint32
}

// attachment is a texture together with its default view.
type attachment struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func newAttachment(dev *wgpu.Device, desc *wgpu.TextureDescriptor) (*attachment, error) {
	texture, err := dev.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view %q: %w", desc.Label, err)
	}

	return &attachment{texture: texture, view: view}, nil
}

func (a *attachment) Release() {
	if a == nil {
		return
	}

	a.view.Release()
	a.texture.Release()
}

// attachments are the textures that accompany a color target of a given size.
type attachments struct {
	msaa    *attachment
	depth   *attachment
	stencil bool
}

func newAttachments(dev *wgpu.Device, format wgpu.TextureFormat, width, height, sampleCount uint32, depthBits, stencilBits uint8) (att attachments, err error) {
	defer func() {
		if err != nil {
			att.Release()
		}
	}()

	if sampleCount > 1 {
		att.msaa, err = newAttachment(dev, &wgpu.TextureDescriptor{
			Label: "MultisampleRenderTarget",
			Usage: wgpu.TextureUsageRenderAttachment,
			Size: wgpu.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: 1,
			},
			Format:        format,
			Dimension:     wgpu.TextureDimension2D,
			SampleCount:   sampleCount,
			MipLevelCount: 1,
		})

		if err != nil {
			return
		}
	}

	if depthBits > 0 {
		depthFormat := wgpu.TextureFormatDepth32Float
		if stencilBits > 0 {
			depthFormat = wgpu.TextureFormatDepth24PlusStencil8
			att.stencil = true
		}

		att.depth, err = newAttachment(dev, &wgpu.TextureDescriptor{
			Label:     "DepthTexture",
			Usage:     wgpu.TextureUsageRenderAttachment,
			Dimension: wgpu.TextureDimension2D,
			Size: wgpu.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: 1,
			},
			Format:        depthFormat,
			MipLevelCount: 1,
			SampleCount:   sampleCount,
		})
	}

	return
}

// target builds a Target rendering into view, going through the
// multisample texture if there is one.
func (a attachments) target(view *wgpu.TextureView, format wgpu.TextureFormat, width, height, sampleCount uint32) *Target {
	t := &Target{
		View:        view,
		Format:      format,
		Width:       width,
		Height:      height,
		SampleCount: sampleCount,
	}

	if a.msaa != nil {
		t.View = a.msaa.view
		t.ResolveTarget = view
	}

	if a.depth != nil {
		t.Depth = a.depth.view
		t.Stencil = a.stencil
	}

	return t
}

func (a *attachments) Release() {
	a.msaa.Release()
	a.depth.Release()

	a.msaa = nil
	a.depth = nil
}
