package webgpu

import (
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Color is a color in RGBA order with components in [0, 1].
type Color [4]float32

func (b *base) clear(target *Target, color Color) error {
	enc, err := b.dev.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "ClearTexture",
	})

	if err != nil {
		return err
	}

	defer enc.Release()

	var depth *wgpu.RenderPassDepthStencilAttachment
	if target.Depth != nil {
		depth = &wgpu.RenderPassDepthStencilAttachment{
			View:            target.Depth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		}

		if target.Stencil {
			depth.StencilLoadOp = wgpu.LoadOpClear
			depth.StencilStoreOp = wgpu.StoreOpStore
		}
	}

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ClearTexture",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          target.View,
				ResolveTarget: target.ResolveTarget,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(color[0]),
					G: float64(color[1]),
					B: float64(color[2]),
					A: float64(color[3]),
				},
			},
		},
		DepthStencilAttachment: depth,
	})

	passGuard := newReleaseGuard(pass)
	defer passGuard.Release()

	if err := pass.End(); err != nil {
		return err
	}

	passGuard.Release()

	// encode into a command buffer
	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "ClearTexture"})
	if err != nil {
		return err
	}

	defer buf.Release()

	b.dev.Queue.Submit(buf)

	return nil
}

type releaser interface {
	Release()
}

// releaseGuard releases a resource on all error paths unless
// it was released explicitly before.
type releaseGuard struct {
	delegate releaser
}

func newReleaseGuard(delegate releaser) releaseGuard {
	return releaseGuard{delegate: delegate}
}

func (r *releaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}
