package common

import "testing"

// buildAtlasPixels fills a width x height RGBA image where every pixel's R
// channel encodes its x coordinate and G encodes its y coordinate.
func buildAtlasPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*width + x) * 4
			pixels[off] = byte(x)
			pixels[off+1] = byte(y)
			pixels[off+3] = 0xFF
		}
	}
	return pixels
}

func TestSliceLayers(t *testing.T) {
	atlas := &AtlasImage{Name: "terrain", TileSize: 4}
	pixels := buildAtlasPixels(8, 8)

	staging, err := atlas.SliceLayers(pixels, 8, 8)
	if err != nil {
		t.Fatalf("SliceLayers() error = %v", err)
	}
	if staging.Layers != 4 {
		t.Fatalf("Layers = %d, want 4", staging.Layers)
	}
	if staging.Width != 4 || staging.Height != 4 {
		t.Fatalf("layer size = %dx%d, want 4x4", staging.Width, staging.Height)
	}
	if len(staging.Pixels) != 4*4*4*4 {
		t.Fatalf("pixel bytes = %d, want %d", len(staging.Pixels), 4*4*4*4)
	}

	// Layer 1 is the top-right tile: its first pixel is atlas (4, 0).
	layerBytes := 4 * 4 * 4
	first := staging.Pixels[layerBytes : layerBytes+4]
	if first[0] != 4 || first[1] != 0 {
		t.Errorf("layer 1 first pixel = (%d,%d), want (4,0)", first[0], first[1])
	}

	// Layer 2 is the bottom-left tile: its first pixel is atlas (0, 4).
	first = staging.Pixels[2*layerBytes : 2*layerBytes+4]
	if first[0] != 0 || first[1] != 4 {
		t.Errorf("layer 2 first pixel = (%d,%d), want (0,4)", first[0], first[1])
	}
}

func TestSliceLayersDropsPartialCells(t *testing.T) {
	atlas := &AtlasImage{Name: "decor", TileSize: 4}
	pixels := buildAtlasPixels(10, 6)

	staging, err := atlas.SliceLayers(pixels, 10, 6)
	if err != nil {
		t.Fatalf("SliceLayers() error = %v", err)
	}
	if staging.Layers != 2 {
		t.Errorf("Layers = %d, want 2 (partial right/bottom cells dropped)", staging.Layers)
	}
}

func TestSliceLayersErrors(t *testing.T) {
	atlas := &AtlasImage{Name: "bad"}
	if _, err := atlas.SliceLayers(nil, 8, 8); err == nil {
		t.Error("expected error for missing tile size")
	}

	atlas.TileSize = 16
	if _, err := atlas.SliceLayers(buildAtlasPixels(8, 8), 8, 8); err == nil {
		t.Error("expected error for tile size exceeding atlas")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 5); got != 3 {
		t.Errorf("Coalesce() = %d, want 3", got)
	}
	if got := Coalesce("", "fallback"); got != "fallback" {
		t.Errorf("Coalesce() = %q, want fallback", got)
	}
	if got := Coalesce[int](); got != 0 {
		t.Errorf("Coalesce() = %d, want 0", got)
	}
}
