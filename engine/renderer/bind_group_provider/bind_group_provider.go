package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupProvider is the handle a component (camera, atlas material, tile
// layer) uses to own GPU bind group resources. The component creates a bare
// provider; the renderer fills in buffers, views, samplers, and the bind group
// itself during initialization, and the scene hands the populated provider back
// to the renderer for buffer writes and draw calls.
//
// Mesh-owning providers (one per tile layer) additionally carry the layer's
// uploaded quad geometry: vertex buffer, index buffer, and index count.
type BindGroupProvider interface {
	// Release frees every GPU resource held by this provider and clears the
	// stored handles. Safe to call on a partially initialized provider.
	Release()

	// Label returns the debug label for this provider.
	Label() string

	// BindGroup returns the created bind group for draw-time binding, or nil
	// if the renderer has not initialized this provider yet.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created against,
	// or nil if not initialized.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the GPU buffer at the given binding index, or nil.
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the GPU texture view at the given binding index, or nil.
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the GPU sampler at the given binding index, or nil.
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the uploaded vertex buffer, or nil. Only mesh-owning
	// providers have one.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the uploaded index buffer, or nil. Only mesh-owning
	// providers have one.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices to draw for this provider's mesh.
	IndexCount() int

	// The Set* methods below are the renderer's write side; components do not
	// call them directly.

	// SetBindGroup stores the bind group created by Renderer.InitBindGroup.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the layout created alongside the bind group.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a GPU buffer at the given binding index.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTextureView stores a GPU texture view at the given binding index.
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores a GPU sampler at the given binding index.
	SetSampler(binding int, s *wgpu.Sampler)

	// SetVertexBuffer stores the uploaded vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the uploaded index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount stores the index count for draw calls.
	SetIndexCount(count int)
}

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	label string

	// GPU resources below are populated by the renderer, keyed by binding
	// index where a group has more than one binding, and must be released
	// through Release when the owning component goes away.

	bindGroup *wgpu.BindGroup
	// TODO: pipeline registration also builds layouts from the shader's descriptors; dedupe so the provider can borrow that layout instead of owning its own.
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	// Quad geometry of one tile layer, set only on mesh-owning providers.
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider with the given debug label.
// All GPU handles start nil; the renderer populates them.
//
// Parameters:
//   - label: a debug label identifying the owning component
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string) BindGroupProvider {
	return &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	if p.textureViews == nil {
		p.textureViews = make(map[int]*wgpu.TextureView)
	}
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	if p.samplers == nil {
		p.samplers = make(map[int]*wgpu.Sampler)
	}
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}
