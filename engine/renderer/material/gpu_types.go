package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULayerColorSource is the canonical WGSL definition of the LayerColor struct.
// Matches GPULayerColor layout exactly (16 bytes, std430 aligned).
//
//go:embed assets/layer_color.wgsl
var GPULayerColorSource string

// GPULayerColor is the GPU-aligned uniform for the tile fragment shaders. The
// RGBA channels multiply the sampled (or flat) tile color, so a layer can be
// tinted or faded without touching its vertex data.
// Matches the WGSL LayerColor struct layout exactly (see GPULayerColorSource).
// Size: 16 bytes (one vec4<f32>, std430 aligned).
type GPULayerColor struct {
	Color [4]float32 // offset 0: RGBA multiplier applied to every fragment of the layer (16 bytes)
}

// Size returns the size of the GPULayerColor struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPULayerColor) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULayerColor struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPULayerColor) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Color[3]))
	return buf
}
