package tilemap

import (
	"fmt"

	"github.com/Carmen-Shannon/strata-go/common"
)

// quadCorners orders each quad's corners top-left, top-right, bottom-right,
// bottom-left. Each entry is the (x, y) offset in tile units, which doubles as
// the corner's (u, v) bit pair before flips are applied.
var quadCorners = [4][2]uint32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// quadIndices splits a quad into two triangles over the corner order above.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// LayerMesh holds the GPU-ready geometry of one textured layer: one quad per
// non-empty cell, four vertices and six indices each.
type LayerMesh struct {
	Vertices []GPUTexturedTileVertex
	Indices  []uint32
	// QuadCount is the number of non-empty cells meshed.
	QuadCount int
}

// VertexBytes serializes the vertex data for GPU upload (little-endian).
//
// Returns:
//   - []byte: the packed vertex buffer contents
func (m *LayerMesh) VertexBytes() []byte {
	buf := make([]byte, 0, len(m.Vertices)*16)
	for i := range m.Vertices {
		buf = append(buf, m.Vertices[i].Marshal()...)
	}
	return buf
}

// IndexBytes serializes the index data for GPU upload.
//
// Returns:
//   - []byte: the packed index buffer contents
func (m *LayerMesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// FlatLayerMesh holds the GPU-ready geometry of one untextured layer. Vertices
// carry only the tile-grid position; the layer color is bound separately.
type FlatLayerMesh struct {
	Vertices []GPUTileVertex
	Indices  []uint32
	// QuadCount is the number of non-empty cells meshed.
	QuadCount int
}

// VertexBytes serializes the vertex data for GPU upload (little-endian).
//
// Returns:
//   - []byte: the packed vertex buffer contents
func (m *FlatLayerMesh) VertexBytes() []byte {
	buf := make([]byte, 0, len(m.Vertices)*8)
	for i := range m.Vertices {
		buf = append(buf, m.Vertices[i].Marshal()...)
	}
	return buf
}

// IndexBytes serializes the index data for GPU upload.
//
// Returns:
//   - []byte: the packed index buffer contents
func (m *FlatLayerMesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// cornerBits packs a quad corner's (u, v) pair into the low two bits of the
// texture cell field, applying flip flags by inverting the matching bit.
func cornerBits(corner [2]uint32, flags TileFlags) uint32 {
	u, v := corner[0], corner[1]
	if flags&TileFlagFlipH != 0 {
		u ^= 1
	}
	if flags&TileFlagFlipV != 0 {
		v ^= 1
	}
	return u | v<<1
}

// BuildLayerMesh meshes a textured layer into quads. Each non-empty cell
// produces four vertices at its tile-grid corners; the texture cell packs the
// corner's (u, v) bit pair (flips invert the matching bit) and the cell's
// atlas layer index.
//
// Parameters:
//   - layer: the layer to mesh (must be textured)
//
// Returns:
//   - *LayerMesh: the meshed geometry (empty mesh for an all-empty layer)
//   - error: error if the layer is not textured
func BuildLayerMesh(layer Layer) (*LayerMesh, error) {
	if !layer.Textured() {
		return nil, fmt.Errorf("layer %s is not textured", layer.Name())
	}

	width, height := layer.Size()
	mesh := &LayerMesh{}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := layer.TileAt(x, y)
			if t.Empty() {
				continue
			}
			base := uint32(len(mesh.Vertices))
			for _, c := range quadCorners {
				mesh.Vertices = append(mesh.Vertices, GPUTexturedTileVertex{
					GPUTileVertex: GPUTileVertex{Pos: [2]uint32{uint32(x) + c[0], uint32(y) + c[1]}},
					Tex3D:         [2]uint32{cornerBits(c, t.Flags), t.Index - 1},
				})
			}
			for _, i := range quadIndices {
				mesh.Indices = append(mesh.Indices, base+i)
			}
			mesh.QuadCount++
		}
	}
	return mesh, nil
}

// BuildFlatLayerMesh meshes an untextured layer into position-only quads.
// Flip flags have no visible effect without texture cells and are ignored.
//
// Parameters:
//   - layer: the layer to mesh
//
// Returns:
//   - *FlatLayerMesh: the meshed geometry (empty mesh for an all-empty layer)
func BuildFlatLayerMesh(layer Layer) *FlatLayerMesh {
	width, height := layer.Size()
	mesh := &FlatLayerMesh{}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if layer.TileAt(x, y).Empty() {
				continue
			}
			base := uint32(len(mesh.Vertices))
			for _, c := range quadCorners {
				mesh.Vertices = append(mesh.Vertices, GPUTileVertex{
					Pos: [2]uint32{uint32(x) + c[0], uint32(y) + c[1]},
				})
			}
			for _, i := range quadIndices {
				mesh.Indices = append(mesh.Indices, base+i)
			}
			mesh.QuadCount++
		}
	}
	return mesh
}
