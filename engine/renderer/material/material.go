package material

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/bind_group_provider"
)

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name              string
	atlas             *common.AtlasImage
	staging           *common.TextureStagingData
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a tile atlas material, pairing an atlas
// image with the GPU resource bindings needed for textured layer draws.
//
// The atlas reference is set at construction and is read-only through this
// interface. GPU resource references (pipeline key, bind group provider) are
// mutable so they can be configured during the renderer GPU-init phase.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Atlas retrieves the atlas image this material samples from, or nil for flat materials.
	//
	// Returns:
	//   - *common.AtlasImage: the atlas image, or nil
	Atlas() *common.AtlasImage

	// Stage decodes the atlas image and slices it into per-tile array layers,
	// producing staging data ready for GPU texture-array upload. The result is
	// cached; repeated calls decode at most once.
	//
	// Returns:
	//   - *common.TextureStagingData: the sliced pixel data with layer count
	//   - error: error if the material has no atlas or decoding fails
	Stage() (*common.TextureStagingData, error)

	// SamplerData retrieves the sampler configuration for the atlas texture.
	// Falls back to nearest-filter, clamp-to-edge settings when the atlas does
	// not carry its own; tile art wants hard texel edges, not bilinear bleed.
	//
	// Returns:
	//   - *common.SamplerStagingData: the sampler configuration
	SamplerData() *common.SamplerStagingData

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu: &sync.Mutex{},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Atlas() *common.AtlasImage {
	return m.atlas
}

func (m *material) Stage() (*common.TextureStagingData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staging != nil {
		return m.staging, nil
	}
	if m.atlas == nil {
		return nil, fmt.Errorf("material %s has no atlas to stage", m.name)
	}

	pixels, width, height, err := m.atlas.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode atlas for material %s: %w", m.name, err)
	}
	staging, err := m.atlas.SliceLayers(pixels, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to slice atlas for material %s: %w", m.name, err)
	}

	m.staging = staging
	return m.staging, nil
}

func (m *material) SamplerData() *common.SamplerStagingData {
	if m.atlas != nil && m.atlas.SamplerData != nil {
		return m.atlas.SamplerData
	}
	return defaultSamplerData()
}

func (m *material) PipelineKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindGroupProvider = provider
}
