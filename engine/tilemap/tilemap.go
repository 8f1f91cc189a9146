// package tilemap holds the CPU-side representation of layered tile maps and
// the meshing logic that turns layers into GPU vertex/index data for the tile
// rendering pipelines.
package tilemap

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/strata-go/common"
)

// TileFlags is a bitmask of per-tile placement flags.
type TileFlags uint8

const (
	// TileFlagFlipH mirrors the tile horizontally when meshed.
	TileFlagFlipH TileFlags = 1 << iota
	// TileFlagFlipV mirrors the tile vertically when meshed.
	TileFlagFlipV
)

// Tile is one cell of a layer. Index 0 means the cell is empty; any other
// value selects atlas layer Index-1.
type Tile struct {
	// Index is the 1-based atlas tile reference (0 = empty cell).
	Index uint32
	// Flags holds flip placement flags applied during meshing.
	Flags TileFlags
}

// Empty reports whether the cell holds no tile.
//
// Returns:
//   - bool: true if the cell is empty
func (t Tile) Empty() bool {
	return t.Index == 0
}

type layerImpl struct {
	name     string
	width    int
	height   int
	tiles    []Tile
	color    [4]float32
	textured bool
	visible  bool
}

// Layer is one drawable tile grid within a map. All layers of a map share the
// map's dimensions. A textured layer samples the map's atlas; an untextured
// layer renders flat quads modulated only by the layer color.
type Layer interface {
	// Name returns the layer's identifier within its map.
	//
	// Returns:
	//   - string: the layer name
	Name() string

	// Size returns the layer dimensions in tiles.
	//
	// Returns:
	//   - width, height: dimensions in tiles
	Size() (width, height int)

	// TileAt returns the tile at grid position (x, y).
	// Out-of-range positions return an empty tile.
	//
	// Parameters:
	//   - x, y: tile-grid position
	//
	// Returns:
	//   - Tile: the tile at that position (zero value if out of range)
	TileAt(x, y int) Tile

	// SetTile places a tile at grid position (x, y).
	// Out-of-range positions are ignored.
	//
	// Parameters:
	//   - x, y: tile-grid position
	//   - t: the tile to place
	SetTile(x, y int, t Tile)

	// Color returns the RGBA modulation color applied to the whole layer.
	//
	// Returns:
	//   - [4]float32: RGBA color, each component in [0, 1]
	Color() [4]float32

	// SetColor sets the RGBA modulation color applied to the whole layer.
	//
	// Parameters:
	//   - color: RGBA color, each component in [0, 1]
	SetColor(color [4]float32)

	// Textured reports whether this layer samples the map atlas. Untextured
	// layers are meshed without texture cells and drawn with the flat variant.
	//
	// Returns:
	//   - bool: true if the layer is textured
	Textured() bool

	// Visible reports whether the layer should be drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible toggles whether the layer should be drawn.
	//
	// Parameters:
	//   - visible: true to draw the layer
	SetVisible(visible bool)
}

var _ Layer = &layerImpl{}

func (l *layerImpl) Name() string {
	return l.name
}

func (l *layerImpl) Size() (int, int) {
	return l.width, l.height
}

func (l *layerImpl) TileAt(x, y int) Tile {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return Tile{}
	}
	return l.tiles[y*l.width+x]
}

func (l *layerImpl) SetTile(x, y int, t Tile) {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return
	}
	l.tiles[y*l.width+x] = t
}

func (l *layerImpl) Color() [4]float32 {
	return l.color
}

func (l *layerImpl) SetColor(color [4]float32) {
	l.color = color
}

func (l *layerImpl) Textured() bool {
	return l.textured
}

func (l *layerImpl) Visible() bool {
	return l.visible
}

func (l *layerImpl) SetVisible(visible bool) {
	l.visible = visible
}

type tileMapImpl struct {
	mu *sync.Mutex

	name   string
	width  int
	height int
	layers []Layer
	atlas  *common.AtlasImage
}

// TileMap is an ordered stack of equally-sized layers plus an optional tile
// atlas. Layers are drawn back to front in insertion order.
type TileMap interface {
	// Name returns the map identifier.
	//
	// Returns:
	//   - string: the map name
	Name() string

	// Size returns the map dimensions in tiles.
	//
	// Returns:
	//   - width, height: dimensions in tiles
	Size() (width, height int)

	// Layers returns the layer stack in draw order (back to front).
	//
	// Returns:
	//   - []Layer: the ordered layers
	Layers() []Layer

	// Layer looks up a layer by name.
	//
	// Parameters:
	//   - name: the layer name
	//
	// Returns:
	//   - Layer: the layer, or nil if not found
	//   - error: error if no layer has that name
	Layer(name string) (Layer, error)

	// AddLayer appends a new layer to the top of the stack, sized to the map.
	// A textured layer requires the map to have an atlas.
	//
	// Parameters:
	//   - name: the layer name (must be unique within the map)
	//   - textured: whether the layer samples the map atlas
	//
	// Returns:
	//   - Layer: the new layer
	//   - error: error if the name collides or the atlas is missing
	AddLayer(name string, textured bool) (Layer, error)

	// Atlas returns the map's tile atlas, or nil if none is set.
	//
	// Returns:
	//   - *common.AtlasImage: the atlas or nil
	Atlas() *common.AtlasImage
}

var _ TileMap = &tileMapImpl{}

// NewTileMap creates a tile map configured by the provided options.
// Panics if the resulting dimensions are not positive; map dimensions are a
// construction-time contract, not a runtime condition.
//
// Parameters:
//   - opts: functional options (see tilemap_builder.go)
//
// Returns:
//   - TileMap: the configured map
func NewTileMap(opts ...TileMapBuilderOption) TileMap {
	m := &tileMapImpl{
		mu:   &sync.Mutex{},
		name: "tilemap",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.width <= 0 || m.height <= 0 {
		panic(fmt.Sprintf("tilemap %s: dimensions must be positive, got %dx%d", m.name, m.width, m.height))
	}
	return m
}

func (m *tileMapImpl) Name() string {
	return m.name
}

func (m *tileMapImpl) Size() (int, int) {
	return m.width, m.height
}

func (m *tileMapImpl) Layers() []Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

func (m *tileMapImpl) Layer(name string) (Layer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.layers {
		if l.Name() == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("tilemap %s: no layer named %s", m.name, name)
}

func (m *tileMapImpl) AddLayer(name string, textured bool) (Layer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.layers {
		if l.Name() == name {
			return nil, fmt.Errorf("tilemap %s: layer %s already exists", m.name, name)
		}
	}
	if textured && m.atlas == nil {
		return nil, fmt.Errorf("tilemap %s: textured layer %s requires an atlas", m.name, name)
	}
	l := &layerImpl{
		name:     name,
		width:    m.width,
		height:   m.height,
		tiles:    make([]Tile, m.width*m.height),
		color:    [4]float32{1, 1, 1, 1},
		textured: textured,
		visible:  true,
	}
	m.layers = append(m.layers, l)
	return l, nil
}

func (m *tileMapImpl) Atlas() *common.AtlasImage {
	return m.atlas
}
