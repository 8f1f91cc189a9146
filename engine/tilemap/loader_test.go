package tilemap

import (
	"strings"
	"testing"
)

const testMapYAML = `
name: overworld
width: 4
height: 2
atlas:
  path: terrain.png
  tile_size: 16
layers:
  - name: ground
    textured: true
    rows:
      - "1 2 2h 3"
      - ". 4v . 1hv"
  - name: shade
    textured: false
    color: [0, 0, 0, 0.5]
    rows:
      - ". . 1 1"
      - ". . 1 1"
`

func TestLoad(t *testing.T) {
	m, err := Load([]byte(testMapYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if m.Name() != "overworld" {
		t.Errorf("Name() = %q, want overworld", m.Name())
	}
	w, h := m.Size()
	if w != 4 || h != 2 {
		t.Errorf("Size() = %dx%d, want 4x2", w, h)
	}
	if m.Atlas() == nil || m.Atlas().TileSize != 16 {
		t.Fatalf("Atlas() = %+v, want tile size 16", m.Atlas())
	}
	if len(m.Layers()) != 2 {
		t.Fatalf("got %d layers, want 2", len(m.Layers()))
	}

	ground, err := m.Layer("ground")
	if err != nil {
		t.Fatalf("Layer(ground) error = %v", err)
	}
	if !ground.Textured() {
		t.Error("ground should be textured")
	}
	if got := ground.TileAt(2, 0); got.Index != 2 || got.Flags != TileFlagFlipH {
		t.Errorf("tile (2,0) = %+v, want index 2 flipped horizontally", got)
	}
	if got := ground.TileAt(0, 1); !got.Empty() {
		t.Errorf("tile (0,1) = %+v, want empty", got)
	}
	if got := ground.TileAt(3, 1); got.Flags != TileFlagFlipH|TileFlagFlipV {
		t.Errorf("tile (3,1) flags = %v, want both flips", got.Flags)
	}

	shade, err := m.Layer("shade")
	if err != nil {
		t.Fatalf("Layer(shade) error = %v", err)
	}
	if shade.Textured() {
		t.Error("shade should not be textured")
	}
	if got := shade.Color(); got != [4]float32{0, 0, 0, 0.5} {
		t.Errorf("shade color = %v, want translucent black", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "zero dimensions",
			yaml: "name: bad\nwidth: 0\nheight: 2\n",
			want: "dimensions must be positive",
		},
		{
			name: "row count mismatch",
			yaml: "width: 2\nheight: 2\nlayers:\n  - name: l\n    rows: [\". .\"]\n",
			want: "expected 2 rows",
		},
		{
			name: "cell count mismatch",
			yaml: "width: 2\nheight: 1\nlayers:\n  - name: l\n    rows: [\". . .\"]\n",
			want: "expected 2 cells",
		},
		{
			name: "zero tile index",
			yaml: "width: 1\nheight: 1\nlayers:\n  - name: l\n    rows: [\"0\"]\n",
			want: "1-based",
		},
		{
			name: "garbage token",
			yaml: "width: 1\nheight: 1\nlayers:\n  - name: l\n    rows: [\"x\"]\n",
			want: "invalid tile token",
		},
		{
			name: "textured layer without atlas",
			yaml: "width: 1\nheight: 1\nlayers:\n  - name: l\n    textured: true\n    rows: [\".\"]\n",
			want: "requires an atlas",
		},
		{
			name: "bad color arity",
			yaml: "width: 1\nheight: 1\nlayers:\n  - name: l\n    color: [1, 1]\n    rows: [\".\"]\n",
			want: "4 components",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestTileMapAddLayerDuplicate(t *testing.T) {
	m := NewTileMap(WithSize(2, 2))
	if _, err := m.AddLayer("a", false); err != nil {
		t.Fatalf("AddLayer() error = %v", err)
	}
	if _, err := m.AddLayer("a", false); err == nil {
		t.Error("expected duplicate layer name to be rejected")
	}
}
