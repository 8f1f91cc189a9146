package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUTileTransformSource is the canonical WGSL definition of the TileTransform struct.
// Matches GPUTileTransform layout exactly (32 bytes, std430 aligned).
//
//go:embed assets/tile_transform.wgsl
var GPUTileTransformSource string

// GPUTileTransform is the GPU-aligned representation of the draw-scoped tile
// transform uniform. The matrix maps tile-grid coordinates to clip space and is
// written once before each draw; no vertex of the draw runs before the write and
// the value stays constant for the whole draw.
// Matches the WGSL TileTransform struct layout exactly (see GPUTileTransformSource).
// Size: 32 bytes (mat4x2<f32> = 4 columns of vec2<f32>, std430 aligned, no padding required).
type GPUTileTransform struct {
	M [8]float32 // offset 0: 4x2 tile-to-clip transform, column-major (32 bytes)
}

// Size returns the size of the GPUTileTransform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUTileTransform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTileTransform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUTileTransform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range g.M {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.M[i]))
	}
	return buf
}
