// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
// When Layers > 1 the Pixels slice holds all layers back-to-back and the texture is created as a 2D array.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	// For layered textures the layers are packed consecutively, each Width*Height*4 bytes long.
	Pixels []byte
	// Width is the width of each texture layer in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of each texture layer in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
	// Layers is the number of array layers. Zero is treated as one (a plain 2D texture).
	Layers uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// This is primarily used in the BindGroupProvider to stage sampler data before creating the GPU sampler and bind group.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering, which can improve texture quality at oblique viewing angles.
	MaxAnisotropy uint16
}

// AtlasImage represents a tile atlas image pending decode. For embedded atlases
// the Data field contains raw image bytes; for external atlases the Path field
// contains the file path.
type AtlasImage struct {
	// Name is an identifier for this atlas (e.g., "terrain", "decor").
	Name string

	// Path is the file path for external atlases (empty for embedded).
	Path string

	// Data contains raw image bytes for embedded atlases (PNG/JPEG).
	Data []byte

	// TileSize is the side length in pixels of one square tile cell.
	TileSize int

	// Width is the atlas width in pixels (populated after Decode).
	Width int

	// Height is the atlas height in pixels (populated after Decode).
	Height int

	// SamplerData holds GPU sampler parameters for this atlas.
	// When non-nil, these values override the default nearest/clamp settings
	// used during material GPU initialization.
	SamplerData *SamplerStagingData
}

// Decode decodes the atlas to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: atlas width in pixels
//   - uint32: atlas height in pixels
//   - error: error if decoding fails
func (a *AtlasImage) Decode() ([]byte, uint32, uint32, error) {
	if a == nil {
		return nil, 0, 0, fmt.Errorf("atlas is nil")
	}

	var img image.Image
	var err error

	if len(a.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(a.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	} else if a.Path != "" {
		file, fileErr := os.Open(a.Path)
		if fileErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open atlas file %s: %w", a.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode atlas file %s: %w", a.Path, err)
		}
	} else {
		return nil, 0, 0, fmt.Errorf("atlas has neither data nor path")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	a.Width = width
	a.Height = height

	return rgba.Pix, uint32(width), uint32(height), nil
}

// SliceLayers cuts a decoded atlas into per-tile layers for a 2D array texture.
// Tiles are read row-major, left to right then top to bottom, each TileSize
// pixels square. Partial cells at the right/bottom edges are dropped.
//
// Parameters:
//   - pixels: the decoded RGBA atlas (4 bytes per pixel, row-major)
//   - width, height: atlas dimensions in pixels
//
// Returns:
//   - common.TextureStagingData: staging data with one layer per tile
//   - error: error if TileSize is unset or larger than the atlas
func (a *AtlasImage) SliceLayers(pixels []byte, width, height uint32) (*TextureStagingData, error) {
	if a.TileSize <= 0 {
		return nil, fmt.Errorf("atlas %s has no tile size", a.Name)
	}
	ts := uint32(a.TileSize)
	cols := width / ts
	rows := height / ts
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("atlas %s: tile size %d exceeds atlas dimensions %dx%d", a.Name, a.TileSize, width, height)
	}

	layerBytes := ts * ts * 4
	out := make([]byte, 0, layerBytes*cols*rows)
	for row := uint32(0); row < rows; row++ {
		for col := uint32(0); col < cols; col++ {
			for y := uint32(0); y < ts; y++ {
				srcOff := ((row*ts+y)*width + col*ts) * 4
				out = append(out, pixels[srcOff:srcOff+ts*4]...)
			}
		}
	}

	return &TextureStagingData{
		Pixels: out,
		Width:  ts,
		Height: ts,
		Layers: cols * rows,
	}, nil
}
