package tilemap

import (
	"testing"

	"github.com/Carmen-Shannon/strata-go/common"
)

func buildTestMap(t *testing.T) (TileMap, Layer) {
	t.Helper()
	m := NewTileMap(
		WithName("test"),
		WithSize(4, 3),
		WithAtlas(&common.AtlasImage{Name: "test", TileSize: 16}),
	)
	layer, err := m.AddLayer("ground", true)
	if err != nil {
		t.Fatalf("AddLayer() error = %v", err)
	}
	return m, layer
}

func TestBuildLayerMeshSingleTile(t *testing.T) {
	_, layer := buildTestMap(t)
	layer.SetTile(2, 1, Tile{Index: 5})

	mesh, err := BuildLayerMesh(layer)
	if err != nil {
		t.Fatalf("BuildLayerMesh() error = %v", err)
	}
	if mesh.QuadCount != 1 {
		t.Fatalf("QuadCount = %d, want 1", mesh.QuadCount)
	}
	if len(mesh.Vertices) != 4 || len(mesh.Indices) != 6 {
		t.Fatalf("geometry = %d vertices / %d indices, want 4/6", len(mesh.Vertices), len(mesh.Indices))
	}

	// Corners wind top-left, top-right, bottom-right, bottom-left in tile units.
	wantPos := [4][2]uint32{{2, 1}, {3, 1}, {3, 2}, {2, 2}}
	// Corner bit pairs follow the same order; atlas layer is Index-1.
	wantTex := [4][2]uint32{{0, 4}, {1, 4}, {3, 4}, {2, 4}}
	for i, v := range mesh.Vertices {
		if v.Pos != wantPos[i] {
			t.Errorf("vertex %d Pos = %v, want %v", i, v.Pos, wantPos[i])
		}
		if v.Tex3D != wantTex[i] {
			t.Errorf("vertex %d Tex3D = %v, want %v", i, v.Tex3D, wantTex[i])
		}
	}

	wantIdx := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range mesh.Indices {
		if idx != wantIdx[i] {
			t.Errorf("index %d = %d, want %d", i, idx, wantIdx[i])
		}
	}
}

func TestBuildLayerMeshFlips(t *testing.T) {
	tests := []struct {
		name  string
		flags TileFlags
		// corner bit values in TL, TR, BR, BL order
		want [4]uint32
	}{
		{"no flip", 0, [4]uint32{0, 1, 3, 2}},
		{"horizontal flip inverts u", TileFlagFlipH, [4]uint32{1, 0, 2, 3}},
		{"vertical flip inverts v", TileFlagFlipV, [4]uint32{2, 3, 1, 0}},
		{"both flips invert both", TileFlagFlipH | TileFlagFlipV, [4]uint32{3, 2, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, layer := buildTestMap(t)
			layer.SetTile(0, 0, Tile{Index: 1, Flags: tt.flags})

			mesh, err := BuildLayerMesh(layer)
			if err != nil {
				t.Fatalf("BuildLayerMesh() error = %v", err)
			}
			for i, v := range mesh.Vertices {
				if v.Tex3D[0] != tt.want[i] {
					t.Errorf("corner %d bits = %d, want %d", i, v.Tex3D[0], tt.want[i])
				}
			}
		})
	}
}

func TestBuildLayerMeshSkipsEmptyCells(t *testing.T) {
	_, layer := buildTestMap(t)
	layer.SetTile(0, 0, Tile{Index: 1})
	layer.SetTile(3, 2, Tile{Index: 2})

	mesh, err := BuildLayerMesh(layer)
	if err != nil {
		t.Fatalf("BuildLayerMesh() error = %v", err)
	}
	if mesh.QuadCount != 2 {
		t.Errorf("QuadCount = %d, want 2", mesh.QuadCount)
	}
	// The second quad's indices reference its own vertices.
	if mesh.Indices[6] != 4 {
		t.Errorf("second quad base index = %d, want 4", mesh.Indices[6])
	}
}

func TestBuildLayerMeshRejectsUntextured(t *testing.T) {
	m := NewTileMap(WithSize(2, 2))
	layer, err := m.AddLayer("flat", false)
	if err != nil {
		t.Fatalf("AddLayer() error = %v", err)
	}
	if _, err := BuildLayerMesh(layer); err == nil {
		t.Error("expected error meshing untextured layer with the textured path")
	}
}

func TestBuildFlatLayerMesh(t *testing.T) {
	m := NewTileMap(WithSize(2, 2))
	layer, err := m.AddLayer("flat", false)
	if err != nil {
		t.Fatalf("AddLayer() error = %v", err)
	}
	layer.SetTile(1, 0, Tile{Index: 1})

	mesh := BuildFlatLayerMesh(layer)
	if mesh.QuadCount != 1 || len(mesh.Vertices) != 4 {
		t.Fatalf("QuadCount = %d, vertices = %d, want 1/4", mesh.QuadCount, len(mesh.Vertices))
	}
	if mesh.Vertices[0].Pos != [2]uint32{1, 0} {
		t.Errorf("first vertex = %v, want (1,0)", mesh.Vertices[0].Pos)
	}
	if len(mesh.VertexBytes()) != 4*8 {
		t.Errorf("VertexBytes() length = %d, want 32", len(mesh.VertexBytes()))
	}
}

func TestLayerMeshBytes(t *testing.T) {
	_, layer := buildTestMap(t)
	layer.SetTile(0, 0, Tile{Index: 1})

	mesh, err := BuildLayerMesh(layer)
	if err != nil {
		t.Fatalf("BuildLayerMesh() error = %v", err)
	}
	if len(mesh.VertexBytes()) != 4*16 {
		t.Errorf("VertexBytes() length = %d, want 64", len(mesh.VertexBytes()))
	}
	if len(mesh.IndexBytes()) != 6*4 {
		t.Errorf("IndexBytes() length = %d, want 24", len(mesh.IndexBytes()))
	}
}
