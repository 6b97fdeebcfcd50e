package metacopy

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// RenderTarget wraps a destination view in the render pass and
// framebuffer one copy draw renders into. It is created per operation,
// retained while the recorded command buffer is in flight, and released
// when the work completes. It keeps both view descriptions alive for
// its lifetime so the recorder can rebuild barriers from them.
type RenderTarget struct {
	resource

	device      Device
	dst         ViewInfo
	src         ViewInfo
	renderPass  core1_0.RenderPass
	framebuffer core1_0.Framebuffer
}

// NewRenderTarget builds the pass and framebuffer for one copy into
// dst, sampling from src. With discard set the previous destination
// contents are dropped on load; otherwise they are loaded, for copies
// that cover only part of the attachment. The returned target holds one
// reference.
func NewRenderTarget(device Device, dst ViewInfo, src ViewInfo, discard bool) (*RenderTarget, error) {
	aspect := ClassifyAspect(FormatAspect(dst.Format))
	loadOp := core1_0.AttachmentLoadOpLoad
	if discard {
		loadOp = core1_0.AttachmentLoadOpDontCare
	}

	renderPass, _, err := device.CreateRenderPass(nil, copyPassInfo(dst.Format, dst.Samples, aspect, loadOp))
	if err != nil {
		return nil, errors.Wrap(err, "create copy render pass")
	}

	framebuffer, _, err := device.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
		RenderPass:  renderPass,
		Attachments: []core1_0.ImageView{dst.View},
		Width:       dst.Extent.Width,
		Height:      dst.Extent.Height,
		Layers:      uint32(dst.Layers),
	})
	if err != nil {
		device.DestroyRenderPass(renderPass, nil)
		return nil, errors.Wrap(err, "create copy framebuffer")
	}

	t := &RenderTarget{
		device:      device,
		dst:         dst,
		src:         src,
		renderPass:  renderPass,
		framebuffer: framebuffer,
	}
	t.init(t.destroyObjects)
	return t, nil
}

// RenderPass returns the per-copy pass, compatible with the cached
// pipeline for Dst().Key().
func (t *RenderTarget) RenderPass() core1_0.RenderPass {
	return t.renderPass
}

// Framebuffer returns the framebuffer binding the destination view.
func (t *RenderTarget) Framebuffer() core1_0.Framebuffer {
	return t.framebuffer
}

// Dst returns the destination view description.
func (t *RenderTarget) Dst() ViewInfo {
	return t.dst
}

// Src returns the source view description.
func (t *RenderTarget) Src() ViewInfo {
	return t.src
}

func (t *RenderTarget) destroyObjects() {
	t.device.DestroyFramebuffer(t.framebuffer, nil)
	t.device.DestroyRenderPass(t.renderPass, nil)
	t.framebuffer = core1_0.Framebuffer{}
	t.renderPass = core1_0.RenderPass{}
}

// copyPassInfo is the one-attachment pass both the pipeline template
// and the per-copy passes are built from. Only the load op varies, and
// load ops do not affect render pass compatibility.
func copyPassInfo(format core1_0.Format, samples core1_0.SampleCountFlags, aspect AspectClass, loadOp core1_0.AttachmentLoadOp) core1_0.RenderPassCreateInfo {
	layout := core1_0.ImageLayoutColorAttachmentOptimal
	if aspect == AspectClassDepthStencil {
		layout = core1_0.ImageLayoutDepthStencilAttachmentOptimal
	}

	subpass := core1_0.SubpassDescription{
		PipelineBindPoint: core1_0.PipelineBindPointGraphics,
	}
	reference := core1_0.AttachmentReference{Attachment: 0, Layout: layout}
	if aspect == AspectClassDepthStencil {
		subpass.DepthStencilAttachment = &reference
	} else {
		subpass.ColorAttachments = []core1_0.AttachmentReference{reference}
	}

	return core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         format,
				Samples:        samples,
				LoadOp:         loadOp,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  loadOp,
				StencilStoreOp: core1_0.AttachmentStoreOpStore,
				InitialLayout:  layout,
				FinalLayout:    layout,
			},
		},
		Subpasses: []core1_0.SubpassDescription{subpass},
	}
}
