package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/strata-go/engine/renderer/shader"
)

const testVertSource = `//@strata:include tile_transform
//@strata:group 0 0 storage_uniform transform tile_transform
//@strata:provider 0 0 camera

//@strata:ifdef textured
//@strata:include textured_tile_vertex
//@strata:else
//@strata:include tile_vertex
//@strata:endif

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
//@strata:ifdef textured
    @location(0) tex: vec3<f32>,
//@strata:endif
};

@vertex
fn vs_main(input: VertexInput) -> VertexOutput {
    var output: VertexOutput;
    let pos = transform.m * vec4<f32>(f32(input.pos.x), f32(input.pos.y), 0.0, 1.0);
    output.clip_position = vec4<f32>(pos.x, pos.y, 0.0, 1.0);
//@strata:ifdef textured
    output.tex = vec3<f32>(f32(input.tex3d.x & 1u), f32((input.tex3d.x >> 1u) & 1u), f32(input.tex3d.y));
//@strata:endif
    return output;
}
`

const testFragSource = `//@strata:include layer_color
//@strata:group 2 0 storage_uniform layer layer_color
//@strata:provider 2 0 layer

//@strata:ifdef textured
//@strata:provider 1 0 material atlas_texture
@group(1) @binding(0) var atlas_texture: texture_2d_array<f32>;
//@strata:provider 1 1 material atlas_sampler
@group(1) @binding(1) var atlas_sampler: sampler;

@fragment
fn fs_main(@location(0) tex: vec3<f32>) -> @location(0) vec4<f32> {
    return textureSample(atlas_texture, atlas_sampler, tex.xy, i32(tex.z)) * layer.color;
}
//@strata:else
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return layer.color;
}
//@strata:endif
`

func newTestShaders(t *testing.T, features ...shader.Feature) (shader.Shader, shader.Shader) {
	t.Helper()
	vert := shader.NewShaderFromSource("tile_vert", shader.ShaderTypeVertex, testVertSource, features...)
	frag := shader.NewShaderFromSource("tile_frag", shader.ShaderTypeFragment, testFragSource, features...)
	return vert, frag
}

func TestPipelineValidate(t *testing.T) {
	vert, frag := newTestShaders(t)
	p := NewPipeline("tile", WithVertexShader(vert), WithFragmentShader(frag))
	if err := p.Validate(); err != nil {
		t.Errorf("valid pairing rejected: %v", err)
	}

	vertTex, fragTex := newTestShaders(t, shader.FeatureTextured)
	pTex := NewPipeline("tile_textured", WithVertexShader(vertTex), WithFragmentShader(fragTex))
	if err := pTex.Validate(); err != nil {
		t.Errorf("valid textured pairing rejected: %v", err)
	}
}

func TestPipelineValidateFeatureMismatch(t *testing.T) {
	vertTex, _ := newTestShaders(t, shader.FeatureTextured)
	_, fragPlain := newTestShaders(t)

	p := NewPipeline("mixed", WithVertexShader(vertTex), WithFragmentShader(fragPlain))
	err := p.Validate()
	if err == nil {
		t.Fatal("expected a feature set mismatch error")
	}
	var ae *AssemblyError
	if !errors.As(err, &ae) {
		t.Fatalf("error type: got %T, want *AssemblyError", err)
	}
	if ae.PipelineKey != "mixed" {
		t.Errorf("PipelineKey: got %q, want \"mixed\"", ae.PipelineKey)
	}
	if !strings.Contains(ae.Reason, "feature set mismatch") {
		t.Errorf("Reason: got %q, want a feature set mismatch", ae.Reason)
	}
}

func TestPipelineValidateMissingShaders(t *testing.T) {
	vert, frag := newTestShaders(t)

	if err := NewPipeline("no_frag", WithVertexShader(vert)).Validate(); err == nil {
		t.Error("expected an error for a pipeline with no fragment shader")
	}
	if err := NewPipeline("no_vert", WithFragmentShader(frag)).Validate(); err == nil {
		t.Error("expected an error for a pipeline with no vertex shader")
	}

	// Stages swapped: a fragment shader cannot stand in for a vertex shader.
	swapped := NewPipeline("swapped", WithVertexShader(frag), WithFragmentShader(vert))
	if err := swapped.Validate(); err == nil {
		t.Error("expected an error for swapped shader stages")
	}
}

func TestPipelineValidateVertexStride(t *testing.T) {
	vert, frag := newTestShaders(t)
	p := NewPipeline("tile", WithVertexShader(vert), WithFragmentShader(frag))

	// The untextured vertex stage expects 8-byte vertices (one vec2<u32>).
	if err := p.ValidateVertexStride(8); err != nil {
		t.Errorf("matching stride rejected: %v", err)
	}

	// A mesh carrying texture coordinates (16-byte vertices) must be rejected
	// by a pipeline whose vertex stage never declares the tex3d input.
	err := p.ValidateVertexStride(16)
	if err == nil {
		t.Fatal("expected a stride mismatch error for textured vertices")
	}
	var ae *AssemblyError
	if !errors.As(err, &ae) {
		t.Fatalf("error type: got %T, want *AssemblyError", err)
	}
	if !strings.Contains(ae.Reason, "stride mismatch") {
		t.Errorf("Reason: got %q, want a stride mismatch", ae.Reason)
	}

	vertTex, fragTex := newTestShaders(t, shader.FeatureTextured)
	pTex := NewPipeline("tile_textured", WithVertexShader(vertTex), WithFragmentShader(fragTex))
	if err := pTex.ValidateVertexStride(16); err != nil {
		t.Errorf("matching textured stride rejected: %v", err)
	}
	if err := pTex.ValidateVertexStride(8); err == nil {
		t.Error("expected a stride mismatch error for untextured vertices on a textured pipeline")
	}
}

func TestPipelineDefaults(t *testing.T) {
	p := NewPipeline("tile")
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Error("layered 2D pipelines should default to depth testing disabled")
	}
	if !p.BlendEnabled() {
		t.Error("layered 2D pipelines should default to alpha blending enabled")
	}
	if p.BlendState() == nil {
		t.Error("default blend state should be set")
	}
}
