package tilemap

import "github.com/Carmen-Shannon/strata-go/common"

// TileMapBuilderOption is a functional option for configuring a tileMapImpl.
// Use the With* functions to create options.
type TileMapBuilderOption func(m *tileMapImpl)

// WithName sets the map identifier.
//
// Parameters:
//   - name: the map name
//
// Returns:
//   - TileMapBuilderOption: option function to apply
func WithName(name string) TileMapBuilderOption {
	return func(m *tileMapImpl) {
		m.name = name
	}
}

// WithSize sets the map dimensions in tiles. All layers share these dimensions.
//
// Parameters:
//   - width: map width in tiles
//   - height: map height in tiles
//
// Returns:
//   - TileMapBuilderOption: option function to apply
func WithSize(width, height int) TileMapBuilderOption {
	return func(m *tileMapImpl) {
		m.width = width
		m.height = height
	}
}

// WithAtlas attaches the tile atlas textured layers sample from.
//
// Parameters:
//   - atlas: the atlas image
//
// Returns:
//   - TileMapBuilderOption: option function to apply
func WithAtlas(atlas *common.AtlasImage) TileMapBuilderOption {
	return func(m *tileMapImpl) {
		m.atlas = atlas
	}
}
