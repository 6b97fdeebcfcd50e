package metacopy

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/core/v3/loader"
)

// Device is the slice of the core1_0 device driver this package calls.
// A core1_0.CoreDeviceDriver satisfies it, and tests substitute a fake.
type Device interface {
	CreateShaderModule(allocationCallbacks *loader.AllocationCallbacks, o core1_0.ShaderModuleCreateInfo) (core1_0.ShaderModule, common.VkResult, error)
	DestroyShaderModule(shaderModule core1_0.ShaderModule, allocationCallbacks *loader.AllocationCallbacks)

	CreateSampler(allocationCallbacks *loader.AllocationCallbacks, o core1_0.SamplerCreateInfo) (core1_0.Sampler, common.VkResult, error)
	DestroySampler(sampler core1_0.Sampler, allocationCallbacks *loader.AllocationCallbacks)

	CreateRenderPass(allocationCallbacks *loader.AllocationCallbacks, o core1_0.RenderPassCreateInfo) (core1_0.RenderPass, common.VkResult, error)
	DestroyRenderPass(renderPass core1_0.RenderPass, allocationCallbacks *loader.AllocationCallbacks)

	CreateFramebuffer(allocationCallbacks *loader.AllocationCallbacks, o core1_0.FramebufferCreateInfo) (core1_0.Framebuffer, common.VkResult, error)
	DestroyFramebuffer(framebuffer core1_0.Framebuffer, allocationCallbacks *loader.AllocationCallbacks)

	CreateDescriptorSetLayout(allocationCallbacks *loader.AllocationCallbacks, o core1_0.DescriptorSetLayoutCreateInfo) (core1_0.DescriptorSetLayout, common.VkResult, error)
	DestroyDescriptorSetLayout(descriptorSetLayout core1_0.DescriptorSetLayout, allocationCallbacks *loader.AllocationCallbacks)

	CreatePipelineLayout(allocationCallbacks *loader.AllocationCallbacks, o core1_0.PipelineLayoutCreateInfo) (core1_0.PipelineLayout, common.VkResult, error)
	DestroyPipelineLayout(pipelineLayout core1_0.PipelineLayout, allocationCallbacks *loader.AllocationCallbacks)

	CreateGraphicsPipelines(pipelineCache *core1_0.PipelineCache, allocationCallbacks *loader.AllocationCallbacks, o ...core1_0.GraphicsPipelineCreateInfo) ([]core1_0.Pipeline, common.VkResult, error)
	DestroyPipeline(pipeline core1_0.Pipeline, allocationCallbacks *loader.AllocationCallbacks)
}
