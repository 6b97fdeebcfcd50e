package metacopy

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

// PipelineKey identifies one cached copy pipeline. Two destinations that
// agree on all three fields can share a pipeline and, because the cached
// render pass template carries a single attachment with matching format
// and sample count, any render pass built for either destination.
type PipelineKey struct {
	// ViewType is the destination image view's type. Array view types
	// select pipelines with a geometry stage that broadcasts the copy
	// across layers.
	ViewType core1_0.ImageViewType

	// Format is the destination view's format, after any depth-to-color
	// reinterpretation performed by ResolveDstFormat.
	Format core1_0.Format

	// Samples is the destination image's sample count.
	Samples core1_0.SampleCountFlags
}

// Hash folds the key into one value for map placement. Collisions only
// cost a comparison, so the mix stays cheap.
func (k PipelineKey) Hash() uint64 {
	return uint64(k.Format)<<8 ^ uint64(k.Samples)<<4 ^ uint64(k.ViewType)
}
