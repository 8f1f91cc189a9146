package shader

import "github.com/cogentcore/webgpu/wgpu"

// parsedField is one field pulled out of a WGSL struct body: either a
// @location vertex attribute or a @builtin field (which carries no location).
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct is a WGSL struct block as extracted from the source.
type parsedStruct struct {
	name   string
	fields []parsedField
}

// vertexFormatInfo pairs a wgpu vertex format with its byte size, so attribute
// offsets and the array stride accumulate while walking a vertex input struct.
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// wgslTypeLayout is the byte size and alignment of a WGSL type per the WGSL
// specification's layout rules. Feeds MinBindingSize for buffer bindings, e.g.
// the 32-byte tile transform uniform.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// sampledTextureInfo captures the view dimension and multisampled flag of a
// sampled texture binding (texture_2d vs texture_2d_array for the tile atlas).
type sampledTextureInfo struct {
	viewDimension wgpu.TextureViewDimension
	multisampled  bool
}
