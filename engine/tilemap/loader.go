package tilemap

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/strata-go/common"
	"gopkg.in/yaml.v3"
)

// mapFile is the YAML document shape of a tile map definition.
type mapFile struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Atlas  *struct {
		Path     string `yaml:"path"`
		TileSize int    `yaml:"tile_size"`
	} `yaml:"atlas"`
	Layers []struct {
		Name     string    `yaml:"name"`
		Textured bool      `yaml:"textured"`
		Color    []float32 `yaml:"color"`
		Rows     []string  `yaml:"rows"`
	} `yaml:"layers"`
}

// LoadFile reads a tile map definition from a YAML file on disk.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - TileMap: the loaded map
//   - error: error if reading or parsing fails
func LoadFile(path string) (TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}
	m, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load map file %s: %w", path, err)
	}
	return m, nil
}

// Load parses a tile map definition from YAML bytes.
//
// Each layer's rows list one whitespace-separated token per cell, height rows
// of width tokens. A token is "." for an empty cell, or a 1-based atlas tile
// index with optional flip suffixes: "3" plain, "3h" horizontal flip, "3v"
// vertical flip, "3hv" both.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - TileMap: the loaded map
//   - error: error if parsing fails or the document is inconsistent
func Load(data []byte) (TileMap, error) {
	var doc mapFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse map yaml: %w", err)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("map dimensions must be positive, got %dx%d", doc.Width, doc.Height)
	}

	opts := []TileMapBuilderOption{
		WithName(common.Coalesce(doc.Name, "tilemap")),
		WithSize(doc.Width, doc.Height),
	}
	if doc.Atlas != nil {
		opts = append(opts, WithAtlas(&common.AtlasImage{
			Name:     doc.Name,
			Path:     doc.Atlas.Path,
			TileSize: doc.Atlas.TileSize,
		}))
	}
	m := NewTileMap(opts...)

	for _, ld := range doc.Layers {
		layer, err := m.AddLayer(ld.Name, ld.Textured)
		if err != nil {
			return nil, err
		}
		if len(ld.Color) == 4 {
			layer.SetColor([4]float32{ld.Color[0], ld.Color[1], ld.Color[2], ld.Color[3]})
		} else if len(ld.Color) != 0 {
			return nil, fmt.Errorf("layer %s: color must have 4 components, got %d", ld.Name, len(ld.Color))
		}
		if len(ld.Rows) != doc.Height {
			return nil, fmt.Errorf("layer %s: expected %d rows, got %d", ld.Name, doc.Height, len(ld.Rows))
		}
		for y, row := range ld.Rows {
			tokens := strings.Fields(row)
			if len(tokens) != doc.Width {
				return nil, fmt.Errorf("layer %s row %d: expected %d cells, got %d", ld.Name, y, doc.Width, len(tokens))
			}
			for x, tok := range tokens {
				t, err := parseTileToken(tok)
				if err != nil {
					return nil, fmt.Errorf("layer %s cell (%d,%d): %w", ld.Name, x, y, err)
				}
				layer.SetTile(x, y, t)
			}
		}
	}
	return m, nil
}

// parseTileToken decodes one cell token: "." for empty, otherwise a 1-based
// tile index followed by optional "h" and/or "v" flip suffixes.
func parseTileToken(tok string) (Tile, error) {
	if tok == "." {
		return Tile{}, nil
	}
	var flags TileFlags
	for strings.HasSuffix(tok, "h") || strings.HasSuffix(tok, "v") {
		switch tok[len(tok)-1] {
		case 'h':
			flags |= TileFlagFlipH
		case 'v':
			flags |= TileFlagFlipV
		}
		tok = tok[:len(tok)-1]
	}
	idx, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return Tile{}, fmt.Errorf("invalid tile token %q: %w", tok, err)
	}
	if idx == 0 {
		return Tile{}, fmt.Errorf("tile indices are 1-based, use \".\" for empty cells")
	}
	return Tile{Index: uint32(idx), Flags: flags}, nil
}
