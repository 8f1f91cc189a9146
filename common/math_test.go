package common

import (
	"math"
	"testing"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestIdentity42(t *testing.T) {
	m := make([]float32, Mat42Size)
	for i := range m {
		m[i] = 42
	}
	Identity42(m)

	want := []float32{1, 0, 0, 1, 0, 0, 0, 0}
	for i := range want {
		if m[i] != want[i] {
			t.Errorf("m[%d] = %v, want %v", i, m[i], want[i])
		}
	}
}

func TestMul42Vec4(t *testing.T) {
	tests := []struct {
		name string
		m    []float32
		v    [4]float32
		want [2]float32
	}{
		{
			name: "identity passes point through",
			m:    []float32{1, 0, 0, 1, 0, 0, 0, 0},
			v:    [4]float32{3, 5, 0, 1},
			want: [2]float32{3, 5},
		},
		{
			name: "translation column multiplies w",
			m:    []float32{1, 0, 0, 1, 0, 0, 10, -4},
			v:    [4]float32{3, 5, 0, 1},
			want: [2]float32{13, 1},
		},
		{
			name: "z column contributes when z nonzero",
			m:    []float32{1, 0, 0, 1, 7, 9, 0, 0},
			v:    [4]float32{0, 0, 2, 1},
			want: [2]float32{14, 18},
		},
		{
			name: "scale on diagonal",
			m:    []float32{2, 0, 0, -3, 0, 0, 0, 0},
			v:    [4]float32{4, 4, 0, 1},
			want: [2]float32{8, -12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mul42Vec4(tt.m, tt.v)
			if !almostEqual(got[0], tt.want[0]) || !almostEqual(got[1], tt.want[1]) {
				t.Errorf("Mul42Vec4() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrthoCanvas42(t *testing.T) {
	m := make([]float32, Mat42Size)
	OrthoCanvas42(m, 0, 0, 100, 50)

	tests := []struct {
		name string
		v    [4]float32
		want [2]float32
	}{
		{"top-left maps to (-1,1)", [4]float32{0, 0, 0, 1}, [2]float32{-1, 1}},
		{"bottom-right maps to (1,-1)", [4]float32{100, 50, 0, 1}, [2]float32{1, -1}},
		{"center maps to origin", [4]float32{50, 25, 0, 1}, [2]float32{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mul42Vec4(m, tt.v)
			if !almostEqual(got[0], tt.want[0]) || !almostEqual(got[1], tt.want[1]) {
				t.Errorf("Mul42Vec4() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrthoCanvas42OffsetCanvas(t *testing.T) {
	m := make([]float32, Mat42Size)
	OrthoCanvas42(m, 10, 20, 30, 40)

	got := Mul42Vec4(m, [4]float32{20, 30, 0, 1})
	if !almostEqual(got[0], 0) || !almostEqual(got[1], 0) {
		t.Errorf("canvas center = %v, want origin", got)
	}
	got = Mul42Vec4(m, [4]float32{10, 20, 0, 1})
	if !almostEqual(got[0], -1) || !almostEqual(got[1], 1) {
		t.Errorf("canvas top-left = %v, want (-1,1)", got)
	}
}

func TestTranslate42AndScale42(t *testing.T) {
	m := make([]float32, Mat42Size)
	Identity42(m)
	Scale42(m, 2, 3)
	Translate42(m, -1, 1)

	got := Mul42Vec4(m, [4]float32{5, 5, 0, 1})
	want := [2]float32{9, 16}
	if !almostEqual(got[0], want[0]) || !almostEqual(got[1], want[1]) {
		t.Errorf("transform = %v, want %v", got, want)
	}
}

func TestSliceToBytes(t *testing.T) {
	if got := SliceToBytes([]float32(nil)); got != nil {
		t.Errorf("SliceToBytes(nil) = %v, want nil", got)
	}

	data := []uint32{0x04030201}
	b := SliceToBytes(data)
	if len(b) != 4 {
		t.Fatalf("len = %d, want 4", len(b))
	}
	if b[0] != 0x01 || b[3] != 0x04 {
		t.Errorf("bytes = %v, want little-endian 0x04030201", b)
	}
}
