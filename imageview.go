package metacopy

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

// ViewInfo describes an image view together with the creation metadata
// the copy machinery needs. The bindings do not read this back from the
// handle, so callers fill it from the parameters they created the view
// with. Extent and Layers describe the subresource the view selects,
// not the whole image.
type ViewInfo struct {
	View     core1_0.ImageView
	Format   core1_0.Format
	Samples  core1_0.SampleCountFlags
	ViewType core1_0.ImageViewType
	Extent   core1_0.Extent2D
	Layers   int
}

// Key returns the pipeline key copies into this view resolve to.
func (v ViewInfo) Key() PipelineKey {
	return PipelineKey{ViewType: v.ViewType, Format: v.Format, Samples: v.Samples}
}
