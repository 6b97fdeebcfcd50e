package metacopy

import (
	"bytes"
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// CopyPipeline bundles the per-key objects a copy draw binds. All four
// handles are owned by the Cache that produced them and stay valid until
// the cache is destroyed.
type CopyPipeline struct {
	// RenderPass is the compatibility template the pipeline was built
	// against. Render passes created by NewRenderTarget for a matching
	// destination are compatible with it.
	RenderPass core1_0.RenderPass

	DescriptorSetLayout core1_0.DescriptorSetLayout
	PipelineLayout      core1_0.PipelineLayout
	Pipeline            core1_0.Pipeline
}

// PushArgs is the push-constant block every copy fragment shader reads:
// the texel offset added to the destination coordinate when fetching
// from the source image.
type PushArgs struct {
	SrcOffsetX int32
	SrcOffsetY int32
}

// PushArgsSize is the byte size of PushArgs as declared in the pipeline
// layout's push-constant range.
const PushArgsSize = 8

// Bytes serializes the block for CmdPushConstants.
func (a PushArgs) Bytes() []byte {
	buf := &bytes.Buffer{}
	// Fixed-size struct into a bytes.Buffer, cannot fail.
	_ = binary.Write(buf, common.ByteOrder, a)
	return buf.Bytes()
}

type fragmentModules struct {
	sampled1D    core1_0.ShaderModule
	sampled2D    core1_0.ShaderModule
	multisampled core1_0.ShaderModule
}

type shaderModules struct {
	vert  core1_0.ShaderModule
	geom  core1_0.ShaderModule
	color fragmentModules
	depth fragmentModules
}

func (m *shaderModules) all() []core1_0.ShaderModule {
	return []core1_0.ShaderModule{
		m.vert, m.geom,
		m.color.sampled1D, m.color.sampled2D, m.color.multisampled,
		m.depth.sampled1D, m.depth.sampled2D, m.depth.multisampled,
	}
}

// Cache creates and retains copy pipelines. Shader modules and the
// point sampler are created up front; pipeline bundles are created on
// first request per key and reused afterwards. Safe for concurrent use.
type Cache struct {
	device    Device
	sampler   core1_0.Sampler
	modules   shaderModules
	pipelines *memo[PipelineKey, CopyPipeline]
}

// New creates a cache on device from a complete shader set. On failure
// everything created so far is destroyed before returning.
func New(device Device, code ShaderCode) (*Cache, error) {
	if !code.Complete() {
		return nil, errors.New("metacopy: incomplete shader set")
	}

	c := &Cache{
		device:    device,
		pipelines: newMemo[PipelineKey, CopyPipeline](),
	}

	sampler, _, err := device.CreateSampler(nil, core1_0.SamplerCreateInfo{
		MagFilter:     core1_0.FilterNearest,
		MinFilter:     core1_0.FilterNearest,
		MipmapMode:    core1_0.SamplerMipmapModeNearest,
		AddressModeU:  core1_0.SamplerAddressModeClampToEdge,
		AddressModeV:  core1_0.SamplerAddressModeClampToEdge,
		AddressModeW:  core1_0.SamplerAddressModeClampToEdge,
		MaxAnisotropy: 1.0,
		BorderColor:   core1_0.BorderColorFloatTransparentBlack,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create copy sampler")
	}
	c.sampler = sampler

	created := make([]core1_0.ShaderModule, 0, 8)
	for _, stage := range []struct {
		name  string
		words []uint32
		dst   *core1_0.ShaderModule
	}{
		{"vert", code.Vert, &c.modules.vert},
		{"geom", code.Geom, &c.modules.geom},
		{"color 1d frag", code.Color.Sampled1D, &c.modules.color.sampled1D},
		{"color 2d frag", code.Color.Sampled2D, &c.modules.color.sampled2D},
		{"color ms frag", code.Color.Multisampled, &c.modules.color.multisampled},
		{"depth 1d frag", code.Depth.Sampled1D, &c.modules.depth.sampled1D},
		{"depth 2d frag", code.Depth.Sampled2D, &c.modules.depth.sampled2D},
		{"depth ms frag", code.Depth.Multisampled, &c.modules.depth.multisampled},
	} {
		module, _, err := device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
			Code: stage.words,
		})
		if err != nil {
			for _, m := range created {
				device.DestroyShaderModule(m, nil)
			}
			device.DestroySampler(sampler, nil)
			return nil, errors.Wrapf(err, "create %s shader module", stage.name)
		}
		created = append(created, module)
		*stage.dst = module
	}

	return c, nil
}

// Sampler returns the shared nearest/clamp sampler bound alongside the
// source view in the pipeline's descriptor set.
func (c *Cache) Sampler() core1_0.Sampler {
	return c.sampler
}

// GetPipeline returns the pipeline bundle for a destination described by
// view type, format and sample count, creating it on first use. The
// format must already be resolved with ResolveDstFormat for cross-aspect
// copies. Repeated calls with equal arguments return the same bundle.
func (c *Cache) GetPipeline(viewType core1_0.ImageViewType, format core1_0.Format, samples core1_0.SampleCountFlags) (CopyPipeline, error) {
	key := PipelineKey{ViewType: viewType, Format: format, Samples: samples}
	return c.pipelines.getOrCreate(key, func() (CopyPipeline, error) {
		return c.createPipeline(key)
	})
}

// Destroy releases every cached bundle, the shader modules and the
// sampler. Call once, after all GPU work using the pipelines finished.
func (c *Cache) Destroy() {
	for _, p := range c.pipelines.drain() {
		c.device.DestroyPipeline(p.Pipeline, nil)
		c.device.DestroyPipelineLayout(p.PipelineLayout, nil)
		c.device.DestroyDescriptorSetLayout(p.DescriptorSetLayout, nil)
		c.device.DestroyRenderPass(p.RenderPass, nil)
	}
	for _, module := range c.modules.all() {
		c.device.DestroyShaderModule(module, nil)
	}
	c.modules = shaderModules{}
	c.device.DestroySampler(c.sampler, nil)
	c.sampler = core1_0.Sampler{}
}

func (c *Cache) createPipeline(key PipelineKey) (CopyPipeline, error) {
	aspect := ClassifyAspect(FormatAspect(key.Format))

	renderPass, err := c.createRenderPassTemplate(key, aspect)
	if err != nil {
		return CopyPipeline{}, err
	}
	setLayout, err := c.createDescriptorSetLayout()
	if err != nil {
		c.device.DestroyRenderPass(renderPass, nil)
		return CopyPipeline{}, err
	}
	pipeLayout, err := c.createPipelineLayout(setLayout)
	if err != nil {
		c.device.DestroyDescriptorSetLayout(setLayout, nil)
		c.device.DestroyRenderPass(renderPass, nil)
		return CopyPipeline{}, err
	}
	pipeline, err := c.createPipelineObject(key, aspect, renderPass, pipeLayout)
	if err != nil {
		c.device.DestroyPipelineLayout(pipeLayout, nil)
		c.device.DestroyDescriptorSetLayout(setLayout, nil)
		c.device.DestroyRenderPass(renderPass, nil)
		return CopyPipeline{}, err
	}

	return CopyPipeline{
		RenderPass:          renderPass,
		DescriptorSetLayout: setLayout,
		PipelineLayout:      pipeLayout,
		Pipeline:            pipeline,
	}, nil
}

// createRenderPassTemplate builds the single-attachment pass the
// pipeline is compiled against. The per-copy passes built by
// NewRenderTarget use the same shape and stay compatible with it.
func (c *Cache) createRenderPassTemplate(key PipelineKey, aspect AspectClass) (core1_0.RenderPass, error) {
	renderPass, _, err := c.device.CreateRenderPass(nil,
		copyPassInfo(key.Format, key.Samples, aspect, core1_0.AttachmentLoadOpDontCare))
	if err != nil {
		return core1_0.RenderPass{}, errors.Wrap(err, "create copy render pass template")
	}
	return renderPass, nil
}

func (c *Cache) createDescriptorSetLayout() (core1_0.DescriptorSetLayout, error) {
	setLayout, _, err := c.device.CreateDescriptorSetLayout(nil, core1_0.DescriptorSetLayoutCreateInfo{
		Bindings: []core1_0.DescriptorSetLayoutBinding{
			{
				Binding:         0,
				DescriptorType:  core1_0.DescriptorTypeCombinedImageSampler,
				DescriptorCount: 1,
				StageFlags:      core1_0.StageFragment,
			},
		},
	})
	if err != nil {
		return core1_0.DescriptorSetLayout{}, errors.Wrap(err, "create copy descriptor set layout")
	}
	return setLayout, nil
}

func (c *Cache) createPipelineLayout(setLayout core1_0.DescriptorSetLayout) (core1_0.PipelineLayout, error) {
	pipeLayout, _, err := c.device.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{
		SetLayouts: []core1_0.DescriptorSetLayout{setLayout},
		PushConstantRanges: []core1_0.PushConstantRange{
			{
				StageFlags: core1_0.StageFragment,
				Offset:     0,
				Size:       PushArgsSize,
			},
		},
	})
	if err != nil {
		return core1_0.PipelineLayout{}, errors.Wrap(err, "create copy pipeline layout")
	}
	return pipeLayout, nil
}

func (c *Cache) createPipelineObject(key PipelineKey, aspect AspectClass, renderPass core1_0.RenderPass, pipeLayout core1_0.PipelineLayout) (core1_0.Pipeline, error) {
	stages := []core1_0.PipelineShaderStageCreateInfo{
		{
			Stage:  core1_0.StageVertex,
			Module: c.modules.vert,
			Name:   "main",
		},
	}
	if usesLayerBroadcast(key.ViewType) {
		stages = append(stages, core1_0.PipelineShaderStageCreateInfo{
			Stage:  core1_0.StageGeometry,
			Module: c.modules.geom,
			Name:   "main",
		})
	}
	stages = append(stages, core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageFragment,
		Module: c.fragmentModule(key, aspect),
		Name:   "main",
	})

	multisample := &core1_0.PipelineMultisampleStateCreateInfo{
		RasterizationSamples: key.Samples,
	}
	if key.Samples != core1_0.Samples1 {
		// Each covered sample runs its own fragment invocation so the
		// per-sample fetch in the shader lands on the right sample.
		multisample.SampleShadingEnable = true
		multisample.MinSampleShading = 1.0
	}

	info := core1_0.GraphicsPipelineCreateInfo{
		Stages:           stages,
		VertexInputState: &core1_0.PipelineVertexInputStateCreateInfo{},
		InputAssemblyState: &core1_0.PipelineInputAssemblyStateCreateInfo{
			Topology:               core1_0.PrimitiveTopologyTriangleList,
			PrimitiveRestartEnable: false,
		},
		ViewportState: &core1_0.PipelineViewportStateCreateInfo{
			Viewports: []core1_0.Viewport{{}},
			Scissors:  []core1_0.Rect2D{{}},
		},
		RasterizationState: &core1_0.PipelineRasterizationStateCreateInfo{
			PolygonMode: core1_0.PolygonModeFill,
			FrontFace:   core1_0.FrontFaceCounterClockwise,
			LineWidth:   1.0,
		},
		MultisampleState: multisample,
		DynamicState: &core1_0.PipelineDynamicStateCreateInfo{
			DynamicStates: []core1_0.DynamicState{
				core1_0.DynamicStateViewport,
				core1_0.DynamicStateScissor,
			},
		},
		Layout:            pipeLayout,
		RenderPass:        renderPass,
		Subpass:           0,
		BasePipelineIndex: -1,
	}
	if aspect == AspectClassDepthStencil {
		info.DepthStencilState = &core1_0.PipelineDepthStencilStateCreateInfo{
			DepthTestEnable:  true,
			DepthWriteEnable: true,
			DepthCompareOp:   core1_0.CompareOpAlways,
		}
	} else {
		info.ColorBlendState = &core1_0.PipelineColorBlendStateCreateInfo{
			Attachments: []core1_0.PipelineColorBlendAttachmentState{
				{
					BlendEnabled: false,
					ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen |
						core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
				},
			},
		}
	}

	pipelines, _, err := c.device.CreateGraphicsPipelines(nil, nil, info)
	if err != nil {
		return core1_0.Pipeline{}, errors.Wrap(err, "create copy pipeline")
	}
	return pipelines[0], nil
}

type fragmentVariant int

const (
	variantSampled1D fragmentVariant = iota
	variantSampled2D
	variantMultisampled
)

// fragmentVariantFor picks the fetch variant for a key: the multisampled
// fetch whenever the destination has more than one sample, the 1D fetch
// for 1D view types, the plain 2D fetch otherwise.
func fragmentVariantFor(key PipelineKey) fragmentVariant {
	switch {
	case key.Samples != core1_0.Samples1:
		return variantMultisampled
	case key.ViewType == core1_0.ImageViewType1D || key.ViewType == core1_0.ImageViewType1DArray:
		return variantSampled1D
	default:
		return variantSampled2D
	}
}

func (c *Cache) fragmentModule(key PipelineKey, aspect AspectClass) core1_0.ShaderModule {
	variants := c.modules.color
	if aspect == AspectClassDepthStencil {
		variants = c.modules.depth
	}
	switch fragmentVariantFor(key) {
	case variantSampled1D:
		return variants.sampled1D
	case variantMultisampled:
		return variants.multisampled
	default:
		return variants.sampled2D
	}
}

// usesLayerBroadcast reports whether a view type spans array layers and
// therefore needs the geometry stage to fan the triangle out per layer.
func usesLayerBroadcast(viewType core1_0.ImageViewType) bool {
	switch viewType {
	case core1_0.ImageViewType1DArray, core1_0.ImageViewType2DArray, core1_0.ImageViewTypeCubeArray:
		return true
	default:
		return false
	}
}
