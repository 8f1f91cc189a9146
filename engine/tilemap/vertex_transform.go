package tilemap

import "github.com/Carmen-Shannon/strata-go/common"

// TransformTilePosition is the CPU reference for the tile vertex stage's position
// path. It converts the unsigned tile-grid coordinate to float, forms the
// homogeneous vector (x, y, 0, 1), multiplies by the draw-scoped 4x2 transform
// and re-embeds the 2D result as a clip-space vector with z=0 and w=1.
// The function is pure: no validation, no state, identical inputs always produce
// bit-identical outputs.
//
// Parameters:
//   - pos: tile-grid corner coordinate (2x u32)
//   - transform: the draw-scoped 4x2 matrix, column-major flat slice (8 elements), read-only
//
// Returns:
//   - [4]float32: clip-space position (x', y', 0.0, 1.0)
func TransformTilePosition(pos [2]uint32, transform []float32) [4]float32 {
	xy := common.Mul42Vec4(transform, [4]float32{float32(pos[0]), float32(pos[1]), 0, 1})
	return [4]float32{xy[0], xy[1], 0, 1}
}

// UnpackTexCoord is the CPU reference for the tile vertex stage's texture path.
// It extracts the two least-significant bits of the packed corner field (bit 0
// becomes u, bit 1 becomes v) and passes the layer index through unchanged as
// the third coordinate. Higher bits of tex3d[0] are ignored.
//
// Parameters:
//   - tex3d: packed texture cell (corner bits, atlas layer index)
//
// Returns:
//   - [3]float32: (u, v, layer) texture coordinate
func UnpackTexCoord(tex3d [2]uint32) [3]float32 {
	return [3]float32{
		float32(tex3d[0] & 1),
		float32((tex3d[0] >> 1) & 1),
		float32(tex3d[1]),
	}
}

// TransformTileVertex applies the full textured tile vertex stage on the CPU:
// position transform plus texture-coordinate unpacking.
//
// Parameters:
//   - v: the textured tile vertex
//   - transform: the draw-scoped 4x2 matrix, column-major flat slice (8 elements)
//
// Returns:
//   - [4]float32: clip-space position
//   - [3]float32: (u, v, layer) texture coordinate
func TransformTileVertex(v GPUTexturedTileVertex, transform []float32) ([4]float32, [3]float32) {
	return TransformTilePosition(v.Pos, transform), UnpackTexCoord(v.Tex3D)
}
