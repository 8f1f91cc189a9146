package tilemap

import (
	_ "embed"
	"encoding/binary"
	"unsafe"
)

const (
	// GPUTileVertexStride is the byte stride of one untextured tile-mesh vertex.
	GPUTileVertexStride = 8

	// GPUTexturedTileVertexStride is the byte stride of one textured tile-mesh vertex.
	GPUTexturedTileVertexStride = 16
)

// GPUTileVertexSource is the canonical WGSL definition of the VertexInput struct for untextured tile pipelines.
// Matches GPUTileVertex layout exactly (8 bytes, std430 aligned).
//
//go:embed assets/tile_vertex.wgsl
var GPUTileVertexSource string

// GPUTileVertex is the GPU representation of a single untextured tile-mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUTileVertexSource).
// Size: 8 bytes (std430 aligned, no padding required).
type GPUTileVertex struct {
	Pos [2]uint32 // offset 0: tile-grid corner coordinate, non-negative (8 bytes)
}

// Size returns the size of the GPUTileVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUTileVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTileVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 8-byte buffer ready for GPU upload.
func (g *GPUTileVertex) Marshal() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], g.Pos[0])
	binary.LittleEndian.PutUint32(buf[4:8], g.Pos[1])
	return buf
}

// GPUTexturedTileVertexSource is the canonical WGSL definition of the VertexInput struct for textured tile pipelines.
// Matches GPUTexturedTileVertex layout exactly (16 bytes, std430 aligned).
//
//go:embed assets/textured_tile_vertex.wgsl
var GPUTexturedTileVertexSource string

// GPUTexturedTileVertex is the GPU representation of a single textured tile-mesh vertex.
// It extends GPUTileVertex with a packed texture-cell coordinate: the two low bits of
// Tex3D[0] select the quad corner (bit 0 → u, bit 1 → v) and Tex3D[1] is the atlas
// layer index passed through to the fragment stage unchanged. Higher bits of Tex3D[0]
// are reserved and ignored by the vertex stage.
// Matches the WGSL VertexInput struct layout for textured pipelines (see GPUTexturedTileVertexSource).
// Size: 16 bytes (8 base vertex + 8 texture cell, std430 aligned, no padding required).
type GPUTexturedTileVertex struct {
	GPUTileVertex           // offset 0: tile-grid corner coordinate, 8 bytes
	Tex3D         [2]uint32 // offset 8: packed corner bits + atlas layer index (8 bytes)
}

// Size returns the size of the GPUTexturedTileVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUTexturedTileVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTexturedTileVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUTexturedTileVertex) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], g.Pos[0])
	binary.LittleEndian.PutUint32(buf[4:8], g.Pos[1])
	binary.LittleEndian.PutUint32(buf[8:12], g.Tex3D[0])
	binary.LittleEndian.PutUint32(buf[12:16], g.Tex3D[1])
	return buf
}
