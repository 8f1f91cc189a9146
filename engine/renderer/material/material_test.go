package material

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// encodeAtlasPNG builds a PNG whose pixels encode their tile-cell column in the
// red channel, so sliced layers can be told apart after staging.
func encodeAtlasPNG(t *testing.T, width, height, tileSize int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x / tileSize), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test atlas: %v", err)
	}
	return buf.Bytes()
}

func TestMaterialStage(t *testing.T) {
	atlas := &common.AtlasImage{
		Name:     "terrain",
		Data:     encodeAtlasPNG(t, 8, 4, 4),
		TileSize: 4,
	}
	m := NewMaterial(WithName("terrain"), WithAtlas(atlas))

	staging, err := m.Stage()
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if staging.Width != 4 || staging.Height != 4 {
		t.Errorf("layer dimensions: got %dx%d, want 4x4", staging.Width, staging.Height)
	}
	if staging.Layers != 2 {
		t.Errorf("Layers: got %d, want 2", staging.Layers)
	}
	if got, want := len(staging.Pixels), 2*4*4*4; got != want {
		t.Fatalf("pixel byte count: got %d, want %d", got, want)
	}

	// First pixel of each layer carries its cell column in the red channel.
	layerBytes := 4 * 4 * 4
	for layer := 0; layer < 2; layer++ {
		if r := staging.Pixels[layer*layerBytes]; r != byte(layer) {
			t.Errorf("layer %d red channel: got %d, want %d", layer, r, layer)
		}
	}

	// Repeated calls return the cached staging data.
	again, err := m.Stage()
	if err != nil {
		t.Fatalf("second Stage: %v", err)
	}
	if &again.Pixels[0] != &staging.Pixels[0] {
		t.Error("second Stage did not return the cached staging data")
	}
}

func TestMaterialStageWithoutAtlas(t *testing.T) {
	m := NewMaterial(WithName("flat"))
	if _, err := m.Stage(); err == nil {
		t.Error("expected an error staging a material with no atlas")
	}
}

func TestMaterialSamplerDefaults(t *testing.T) {
	m := NewMaterial(WithAtlas(&common.AtlasImage{Name: "terrain", TileSize: 4}))
	s := m.SamplerData()
	if s.MagFilter != wgpu.FilterModeNearest || s.MinFilter != wgpu.FilterModeNearest {
		t.Errorf("filter modes: got mag=%v min=%v, want nearest", s.MagFilter, s.MinFilter)
	}
	if s.AddressModeU != wgpu.AddressModeClampToEdge {
		t.Errorf("AddressModeU: got %v, want clamp-to-edge", s.AddressModeU)
	}
	if s.MaxAnisotropy != 1 {
		t.Errorf("MaxAnisotropy: got %d, want 1", s.MaxAnisotropy)
	}
}

func TestMaterialSamplerOverride(t *testing.T) {
	atlas := &common.AtlasImage{
		Name:     "smooth",
		TileSize: 4,
		SamplerData: &common.SamplerStagingData{
			MagFilter: wgpu.FilterModeLinear,
			MinFilter: wgpu.FilterModeLinear,
		},
	}
	m := NewMaterial(WithAtlas(atlas))
	if s := m.SamplerData(); s.MagFilter != wgpu.FilterModeLinear {
		t.Errorf("MagFilter: got %v, want linear", s.MagFilter)
	}
}

func TestGPULayerColorMarshal(t *testing.T) {
	c := GPULayerColor{Color: [4]float32{0.25, 0.5, 0.75, 1}}
	if c.Size() != 16 {
		t.Fatalf("Size: got %d, want 16", c.Size())
	}
	data := c.Marshal()
	if len(data) != 16 {
		t.Fatalf("Marshal length: got %d, want 16", len(data))
	}
	for i, want := range c.Color {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
		if got != want {
			t.Errorf("component %d: got %v, want %v", i, got, want)
		}
	}
}
