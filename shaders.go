package metacopy

import (
	"io/fs"

	"github.com/cockroachdb/errors"
)

// FragmentCode groups the fragment variants for one output class. The
// variant is chosen per pipeline: Multisampled whenever the source has
// more than one sample, otherwise Sampled1D for 1D sources and Sampled2D
// for everything else.
type FragmentCode struct {
	Sampled1D    []uint32
	Sampled2D    []uint32
	Multisampled []uint32
}

// ShaderCode carries the SPIR-V for the full copy shader set. The vertex
// stage emits a full-screen triangle, the geometry stage replicates it
// across array layers, the color variants write a color output and the
// depth variants write gl_FragDepth.
type ShaderCode struct {
	Vert  []uint32
	Geom  []uint32
	Color FragmentCode
	Depth FragmentCode
}

// Complete reports whether all eight modules are present.
func (c ShaderCode) Complete() bool {
	for _, words := range [][]uint32{
		c.Vert, c.Geom,
		c.Color.Sampled1D, c.Color.Sampled2D, c.Color.Multisampled,
		c.Depth.Sampled1D, c.Depth.Sampled2D, c.Depth.Multisampled,
	} {
		if len(words) == 0 {
			return false
		}
	}
	return true
}

// Conventional file names produced by the shaders/ Makefile.
const (
	shaderFileVert    = "fullscreen.vert.spv"
	shaderFileGeom    = "layers.geom.spv"
	shaderFileColor1D = "copy_color_1d.frag.spv"
	shaderFileColor2D = "copy_color_2d.frag.spv"
	shaderFileColorMS = "copy_color_ms.frag.spv"
	shaderFileDepth1D = "copy_depth_1d.frag.spv"
	shaderFileDepth2D = "copy_depth_2d.frag.spv"
	shaderFileDepthMS = "copy_depth_ms.frag.spv"
)

// LoadShaderCode reads the compiled shader set from a filesystem, such as
// an embed.FS or os.DirFS over the build output of shaders/.
func LoadShaderCode(fsys fs.FS) (ShaderCode, error) {
	var code ShaderCode
	for _, entry := range []struct {
		name string
		dst  *[]uint32
	}{
		{shaderFileVert, &code.Vert},
		{shaderFileGeom, &code.Geom},
		{shaderFileColor1D, &code.Color.Sampled1D},
		{shaderFileColor2D, &code.Color.Sampled2D},
		{shaderFileColorMS, &code.Color.Multisampled},
		{shaderFileDepth1D, &code.Depth.Sampled1D},
		{shaderFileDepth2D, &code.Depth.Sampled2D},
		{shaderFileDepthMS, &code.Depth.Multisampled},
	} {
		raw, err := fs.ReadFile(fsys, entry.name)
		if err != nil {
			return ShaderCode{}, errors.Wrapf(err, "load shader %s", entry.name)
		}
		words, err := spirvWords(raw)
		if err != nil {
			return ShaderCode{}, errors.Wrapf(err, "shader %s", entry.name)
		}
		*entry.dst = words
	}
	return code, nil
}

// spirvWords reinterprets little-endian SPIR-V bytes as a word slice.
func spirvWords(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Newf("invalid SPIR-V length %d", len(b))
	}
	byteCode := make([]uint32, len(b)/4)
	for i := 0; i < len(byteCode); i++ {
		byteIndex := i * 4
		byteCode[i] = 0
		byteCode[i] |= uint32(b[byteIndex])
		byteCode[i] |= uint32(b[byteIndex+1]) << 8
		byteCode[i] |= uint32(b[byteIndex+2]) << 16
		byteCode[i] |= uint32(b[byteIndex+3]) << 24
	}
	return byteCode, nil
}
