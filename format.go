package metacopy

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// ErrUnsupportedFormat is returned when a cross-aspect copy has no
// bit-compatible destination format.
var ErrUnsupportedFormat = errors.New("metacopy: no compatible destination format")

// AspectClass distinguishes the two attachment families a copy pipeline
// can render into.
type AspectClass int

const (
	AspectClassColor AspectClass = iota
	AspectClassDepthStencil
)

// ClassifyAspect reduces an aspect mask to its attachment family. Any
// mask containing a depth or stencil bit counts as depth-stencil.
func ClassifyAspect(aspect core1_0.ImageAspectFlags) AspectClass {
	if aspect&(core1_0.ImageAspectDepth|core1_0.ImageAspectStencil) != 0 {
		return AspectClassDepthStencil
	}
	return AspectClassColor
}

// FormatAspect returns the aspect mask a format's data lives in.
func FormatAspect(format core1_0.Format) core1_0.ImageAspectFlags {
	switch format {
	case core1_0.FormatD16UnsignedNormalized, core1_0.FormatD32SignedFloat:
		return core1_0.ImageAspectDepth
	case core1_0.FormatD16UnsignedNormalizedS8UnsignedInt,
		core1_0.FormatD24UnsignedNormalizedS8UnsignedInt,
		core1_0.FormatD32SignedFloatS8UnsignedInt:
		return core1_0.ImageAspectDepth | core1_0.ImageAspectStencil
	default:
		return core1_0.ImageAspectColor
	}
}

// ResolveDstFormat picks the format the destination view must use for a
// copy from srcFormat. Within one aspect class the source format is
// reused as-is and the shader performs the conversion. Across classes
// the source data has to be reinterpreted, which only works for the
// pairs whose texel layouts match bit for bit.
func ResolveDstFormat(dstAspect core1_0.ImageAspectFlags, srcAspect core1_0.ImageAspectFlags, srcFormat core1_0.Format) (core1_0.Format, error) {
	if ClassifyAspect(dstAspect) == ClassifyAspect(srcAspect) {
		return srcFormat, nil
	}

	if punned, ok := punnedFormats[srcFormat]; ok {
		return punned, nil
	}
	return core1_0.Format(0), errors.Wrapf(ErrUnsupportedFormat,
		"source format %d, destination aspect %d", srcFormat, dstAspect)
}

// punnedFormats holds the bit-compatible pairs, both directions.
var punnedFormats = map[core1_0.Format]core1_0.Format{
	core1_0.FormatD16UnsignedNormalized:              core1_0.FormatR16UnsignedNormalized,
	core1_0.FormatR16UnsignedNormalized:              core1_0.FormatD16UnsignedNormalized,
	core1_0.FormatD32SignedFloat:                     core1_0.FormatR32SignedFloat,
	core1_0.FormatR32SignedFloat:                     core1_0.FormatD32SignedFloat,
	core1_0.FormatD24UnsignedNormalizedS8UnsignedInt: core1_0.FormatR32UnsignedInt,
	core1_0.FormatR32UnsignedInt:                     core1_0.FormatD24UnsignedNormalizedS8UnsignedInt,
}
