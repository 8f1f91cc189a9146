package tilemap

import (
	"testing"

	"github.com/Carmen-Shannon/strata-go/common"
)

func TestTransformTilePositionIdentity(t *testing.T) {
	m := make([]float32, common.Mat42Size)
	common.Identity42(m)

	got := TransformTilePosition([2]uint32{5, 7}, m)
	want := [4]float32{5, 7, 0, 1}
	if got != want {
		t.Errorf("TransformTilePosition() = %v, want %v", got, want)
	}
}

func TestTransformTilePositionTranslation(t *testing.T) {
	m := make([]float32, common.Mat42Size)
	common.Identity42(m)
	common.Translate42(m, 10, -3)

	got := TransformTilePosition([2]uint32{1, 1}, m)
	want := [4]float32{11, -2, 0, 1}
	if got != want {
		t.Errorf("TransformTilePosition() = %v, want %v", got, want)
	}
}

func TestTransformTilePositionConstantZW(t *testing.T) {
	// Nonzero z and w columns must not leak into the constant output
	// components: z is re-embedded as 0 and w as 1 regardless of the matrix.
	m := []float32{3, 1, -2, 4, 9, 9, 5, -5}

	positions := [][2]uint32{{0, 0}, {1, 0}, {0, 1}, {1000, 1000}, {4294967295, 0}}
	for _, pos := range positions {
		got := TransformTilePosition(pos, m)
		if got[2] != 0 || got[3] != 1 {
			t.Errorf("TransformTilePosition(%v) z/w = (%v, %v), want (0, 1)", pos, got[2], got[3])
		}
	}
}

func TestUnpackTexCoordCorners(t *testing.T) {
	tests := []struct {
		name  string
		tex3d [2]uint32
		want  [3]float32
	}{
		{"corner 0", [2]uint32{0, 4}, [3]float32{0, 0, 4}},
		{"corner 1", [2]uint32{1, 4}, [3]float32{1, 0, 4}},
		{"corner 2", [2]uint32{2, 4}, [3]float32{0, 1, 4}},
		{"corner 3", [2]uint32{3, 4}, [3]float32{1, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnpackTexCoord(tt.tex3d)
			if got != tt.want {
				t.Errorf("UnpackTexCoord(%v) = %v, want %v", tt.tex3d, got, tt.want)
			}
		})
	}
}

func TestUnpackTexCoordIgnoresHighBits(t *testing.T) {
	// Only the two least-significant bits select the corner.
	got := UnpackTexCoord([2]uint32{0xFFFFFFFD, 12})
	want := [3]float32{1, 0, 12}
	if got != want {
		t.Errorf("UnpackTexCoord() = %v, want %v", got, want)
	}
}

func TestTransformTileVertexPure(t *testing.T) {
	m := make([]float32, common.Mat42Size)
	common.OrthoCanvas42(m, 0, 0, 64, 32)
	v := GPUTexturedTileVertex{
		GPUTileVertex: GPUTileVertex{Pos: [2]uint32{17, 9}},
		Tex3D:         [2]uint32{3, 6},
	}

	pos1, tex1 := TransformTileVertex(v, m)
	pos2, tex2 := TransformTileVertex(v, m)
	if pos1 != pos2 || tex1 != tex2 {
		t.Errorf("repeated invocation differs: (%v, %v) vs (%v, %v)", pos1, tex1, pos2, tex2)
	}
}

func TestGPUTileVertexMarshal(t *testing.T) {
	v := GPUTileVertex{Pos: [2]uint32{0x01020304, 7}}
	if v.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", v.Size())
	}
	buf := v.Marshal()
	if len(buf) != 8 {
		t.Fatalf("Marshal() length = %d, want 8", len(buf))
	}
	if buf[0] != 0x04 || buf[3] != 0x01 || buf[4] != 7 {
		t.Errorf("Marshal() = %v, want little-endian layout", buf)
	}
}

func TestGPUTexturedTileVertexMarshal(t *testing.T) {
	v := GPUTexturedTileVertex{
		GPUTileVertex: GPUTileVertex{Pos: [2]uint32{1, 2}},
		Tex3D:         [2]uint32{3, 4},
	}
	if v.Size() != 16 {
		t.Fatalf("Size() = %d, want 16", v.Size())
	}
	buf := v.Marshal()
	if len(buf) != 16 {
		t.Fatalf("Marshal() length = %d, want 16", len(buf))
	}
	if buf[0] != 1 || buf[4] != 2 || buf[8] != 3 || buf[12] != 4 {
		t.Errorf("Marshal() = %v, want fields at offsets 0/4/8/12", buf)
	}
}
