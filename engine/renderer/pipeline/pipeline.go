package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/strata-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// AssemblyError describes why a pipeline's shader pairing is invalid. It is
// returned by Validate before any GPU pipeline objects are created, so a bad
// pairing fails at assembly time rather than surfacing as a driver error.
type AssemblyError struct {
	// PipelineKey is the key of the pipeline that failed validation.
	PipelineKey string

	// Reason describes the specific mismatch.
	Reason string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("pipeline %s: %s", e.PipelineKey, e.Reason)
}

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline object and related data.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// the following shader references are used for pipeline creation and material binding, they are required to be set before initializing a pipeline.

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is the GPU pipeline object, nil until initialized by the Renderer
	renderPipeline *wgpu.RenderPipeline

	// The following properties are used to configure the pipeline during creation and can be toggled/set with the builder options.

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a render pipeline pairing a vertex and a
// fragment shader. It holds all configuration state required for pipeline
// creation including depth, blend, cull, and topology settings, and validates
// the shader pairing before GPU objects are created.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified type if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the type of shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified type, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// Pipeline returns the underlying GPU render pipeline object, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the underlying render pipeline object
	Pipeline() *wgpu.RenderPipeline

	// Validate checks that the vertex and fragment shaders form a coherent
	// pairing. Both stages must be present, carry the correct shader types,
	// expose entry points, and be built with equal feature sets: a shader
	// variant with a feature enabled has a structurally different input/output
	// shape than one without, so mixed builds are rejected here rather than at
	// pipeline creation or draw time.
	//
	// Returns:
	//   - error: an *AssemblyError describing the first mismatch, or nil if the pairing is valid
	Validate() error

	// ValidateVertexStride checks that vertex data with the given byte stride
	// matches the vertex shader's parsed buffer layout. A mesh built with
	// texture coordinates cannot feed a pipeline whose vertex stage never
	// declares them, and vice versa.
	//
	// Parameters:
	//   - stride: the byte stride of one vertex in the candidate mesh
	//
	// Returns:
	//   - error: an *AssemblyError if the stride does not match, or nil
	ValidateVertexStride(stride uint64) error

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline (e.g., wgpu.PrimitiveTopologyTriangleList)
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline (e.g., wgpu.ColorWriteMaskAll)
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline, or nil if blending is not enabled
	BlendState() *wgpu.BlendState

	// SetRenderPipeline sets the underlying GPU render pipeline object.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline interface. Defaults
// suit layered 2D tile rendering: alpha blending enabled and depth testing
// disabled, since layers draw back-to-front in declaration order.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  false,
		depthWriteEnabled: false,
		blendEnabled:      true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) Validate() error {
	if p.vertexShader == nil {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: "no vertex shader set"}
	}
	if p.fragmentShader == nil {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: "no fragment shader set"}
	}
	if p.vertexShader.ShaderType() != shader.ShaderTypeVertex {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: fmt.Sprintf("shader %s is not a vertex shader", p.vertexShader.Key())}
	}
	if p.fragmentShader.ShaderType() != shader.ShaderTypeFragment {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: fmt.Sprintf("shader %s is not a fragment shader", p.fragmentShader.Key())}
	}
	if p.vertexShader.EntryPoint() == "" {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: fmt.Sprintf("vertex shader %s has no @vertex entry point", p.vertexShader.Key())}
	}
	if p.fragmentShader.EntryPoint() == "" {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: fmt.Sprintf("fragment shader %s has no @fragment entry point", p.fragmentShader.Key())}
	}
	if vf, ff := p.vertexShader.Features(), p.fragmentShader.Features(); !vf.Equal(ff) {
		return &AssemblyError{
			PipelineKey: p.pipelineKey,
			Reason:      fmt.Sprintf("feature set mismatch: vertex shader built with %s, fragment shader built with %s", vf, ff),
		}
	}
	if len(p.vertexShader.VertexLayouts()) == 0 {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: fmt.Sprintf("vertex shader %s declares no vertex input struct", p.vertexShader.Key())}
	}
	return nil
}

func (p *pipeline) ValidateVertexStride(stride uint64) error {
	if p.vertexShader == nil {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: "no vertex shader set"}
	}
	layouts := p.vertexShader.VertexLayout(0)
	if len(layouts) == 0 {
		return &AssemblyError{PipelineKey: p.pipelineKey, Reason: fmt.Sprintf("vertex shader %s declares no vertex input struct", p.vertexShader.Key())}
	}
	if want := layouts[0].ArrayStride; stride != want {
		return &AssemblyError{
			PipelineKey: p.pipelineKey,
			Reason:      fmt.Sprintf("vertex stride mismatch: mesh provides %d bytes per vertex, shader %s expects %d", stride, p.vertexShader.Key(), want),
		}
	}
	return nil
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
