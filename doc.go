// Package metacopy builds and caches the render pipelines used to copy
// image data between incompatible formats with a full-screen draw.
//
// A plain vkCmdCopyImage requires compatible formats. When the source and
// destination disagree (for example a depth image copied into a color
// image), the copy has to be expressed as a render pass instead: the
// destination becomes the sole attachment of a framebuffer, and a
// fragment shader samples the source and writes it back out. This package
// owns everything that draw needs apart from the command buffer itself:
//
//   - Cache hands out immutable CopyPipeline bundles keyed by destination
//     view type, format and sample count, creating each bundle at most
//     once for the lifetime of the cache.
//   - RenderTarget wraps a destination view in a single-use render pass
//     and framebuffer compatible with the cached pipeline for that view.
//   - ResolveDstFormat maps depth formats to the color formats they are
//     reinterpreted as when the destination is a color image.
//
// All objects are created against a core1_0 device driver from
// github.com/vkngwrapper/core/v3 and must be destroyed before the device.
package metacopy
