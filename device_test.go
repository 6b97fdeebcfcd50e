package metacopy

import (
	"sync"

	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/core/v3/loader"
)

// fakeDevice records every create info and counts destroys. Returned
// handles are zero values, so assertions go against the recorded infos
// and the counters rather than handle identity.
type fakeDevice struct {
	mu sync.Mutex

	samplerInfos        []core1_0.SamplerCreateInfo
	shaderModuleInfos   []core1_0.ShaderModuleCreateInfo
	renderPassInfos     []core1_0.RenderPassCreateInfo
	framebufferInfos    []core1_0.FramebufferCreateInfo
	setLayoutInfos      []core1_0.DescriptorSetLayoutCreateInfo
	pipelineLayoutInfos []core1_0.PipelineLayoutCreateInfo
	pipelineInfos       []core1_0.GraphicsPipelineCreateInfo

	destroyedSamplers        int
	destroyedShaderModules   int
	destroyedRenderPasses    int
	destroyedFramebuffers    int
	destroyedSetLayouts      int
	destroyedPipelineLayouts int
	destroyedPipelines       int

	failSampler           error
	failShaderModule      error
	failShaderModuleAfter int
	failRenderPass        error
	failFramebuffer       error
	failSetLayout         error
	failPipelineLayout    error
	failPipeline          error
}

var _ Device = (*fakeDevice)(nil)

func (d *fakeDevice) CreateSampler(_ *loader.AllocationCallbacks, o core1_0.SamplerCreateInfo) (core1_0.Sampler, common.VkResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failSampler != nil {
		return core1_0.Sampler{}, core1_0.VKErrorOutOfHostMemory, d.failSampler
	}
	d.samplerInfos = append(d.samplerInfos, o)
	return core1_0.Sampler{}, core1_0.VKSuccess, nil
}

func (d *fakeDevice) DestroySampler(_ core1_0.Sampler, _ *loader.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyedSamplers++
}

func (d *fakeDevice) CreateShaderModule(_ *loader.AllocationCallbacks, o core1_0.ShaderModuleCreateInfo) (core1_0.ShaderModule, common.VkResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failShaderModule != nil && len(d.shaderModuleInfos) >= d.failShaderModuleAfter {
		return core1_0.ShaderModule{}, core1_0.VKErrorOutOfHostMemory, d.failShaderModule
	}
	d.shaderModuleInfos = append(d.shaderModuleInfos, o)
	return core1_0.ShaderModule{}, core1_0.VKSuccess, nil
}

func (d *fakeDevice) DestroyShaderModule(_ core1_0.ShaderModule, _ *loader.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyedShaderModules++
}

func (d *fakeDevice) CreateRenderPass(_ *loader.AllocationCallbacks, o core1_0.RenderPassCreateInfo) (core1_0.RenderPass, common.VkResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failRenderPass != nil {
		return core1_0.RenderPass{}, core1_0.VKErrorOutOfHostMemory, d.failRenderPass
	}
	d.renderPassInfos = append(d.renderPassInfos, o)
	return core1_0.RenderPass{}, core1_0.VKSuccess, nil
}

func (d *fakeDevice) DestroyRenderPass(_ core1_0.RenderPass, _ *loader.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyedRenderPasses++
}

func (d *fakeDevice) CreateFramebuffer(_ *loader.AllocationCallbacks, o core1_0.FramebufferCreateInfo) (core1_0.Framebuffer, common.VkResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failFramebuffer != nil {
		return core1_0.Framebuffer{}, core1_0.VKErrorOutOfHostMemory, d.failFramebuffer
	}
	d.framebufferInfos = append(d.framebufferInfos, o)
	return core1_0.Framebuffer{}, core1_0.VKSuccess, nil
}

func (d *fakeDevice) DestroyFramebuffer(_ core1_0.Framebuffer, _ *loader.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyedFramebuffers++
}

func (d *fakeDevice) CreateDescriptorSetLayout(_ *loader.AllocationCallbacks, o core1_0.DescriptorSetLayoutCreateInfo) (core1_0.DescriptorSetLayout, common.VkResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failSetLayout != nil {
		return core1_0.DescriptorSetLayout{}, core1_0.VKErrorOutOfHostMemory, d.failSetLayout
	}
	d.setLayoutInfos = append(d.setLayoutInfos, o)
	return core1_0.DescriptorSetLayout{}, core1_0.VKSuccess, nil
}

func (d *fakeDevice) DestroyDescriptorSetLayout(_ core1_0.DescriptorSetLayout, _ *loader.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyedSetLayouts++
}

func (d *fakeDevice) CreatePipelineLayout(_ *loader.AllocationCallbacks, o core1_0.PipelineLayoutCreateInfo) (core1_0.PipelineLayout, common.VkResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failPipelineLayout != nil {
		return core1_0.PipelineLayout{}, core1_0.VKErrorOutOfHostMemory, d.failPipelineLayout
	}
	d.pipelineLayoutInfos = append(d.pipelineLayoutInfos, o)
	return core1_0.PipelineLayout{}, core1_0.VKSuccess, nil
}

func (d *fakeDevice) DestroyPipelineLayout(_ core1_0.PipelineLayout, _ *loader.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyedPipelineLayouts++
}

func (d *fakeDevice) CreateGraphicsPipelines(_ *core1_0.PipelineCache, _ *loader.AllocationCallbacks, o ...core1_0.GraphicsPipelineCreateInfo) ([]core1_0.Pipeline, common.VkResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failPipeline != nil {
		return nil, core1_0.VKErrorOutOfHostMemory, d.failPipeline
	}
	d.pipelineInfos = append(d.pipelineInfos, o...)
	return make([]core1_0.Pipeline, len(o)), core1_0.VKSuccess, nil
}

func (d *fakeDevice) DestroyPipeline(_ core1_0.Pipeline, _ *loader.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyedPipelines++
}
