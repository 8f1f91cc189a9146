package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

// tileVertSource is the canonical tile vertex shader used across the shader tests.
// The textured feature gates the tex3d vertex input and the interpolated tex output.
const tileVertSource = `//@strata:include tile_transform
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

// tileFragSource is the canonical tile fragment shader used across the shader tests.
const tileFragSource = `//@strata:include layer_color
//@strata:group 2 0 storage_uniform layer layer_color
//@strata:provider 2 0 layer

//@strata:ifdef textured
//@strata:provider 1 0 material atlas_texture
@group(1) @binding(0) var atlas_texture: texture_2d_array<f32>;
//@strata:provider 1 1 material atlas_sampler
@group(1) @binding(1) var atlas_sampler: sampler;

@fragment
fn fs_main(@location(0) tex: vec3<f32>) -> @location(0) vec4<f32> {
    let sampled = textureSample(atlas_texture, atlas_sampler, tex.xy, i32(tex.z));
    return sampled * layer.color;
}
//@strata:else
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return layer.color;
}
//@strata:endif
`

func TestFeatureSet(t *testing.T) {
	empty := NewFeatureSet()
	if empty.String() != "plain" {
		t.Errorf("empty set String: got %q, want \"plain\"", empty.String())
	}
	if empty.Has(FeatureTextured) {
		t.Error("empty set should not contain textured")
	}

	textured := NewFeatureSet(FeatureTextured)
	if !textured.Has(FeatureTextured) {
		t.Error("textured set should contain textured")
	}
	if textured.String() != "textured" {
		t.Errorf("textured set String: got %q, want \"textured\"", textured.String())
	}

	// Duplicates collapse, so construction order and repetition do not matter.
	if !NewFeatureSet(FeatureTextured, FeatureTextured).Equal(textured) {
		t.Error("duplicated construction should equal single construction")
	}
	if textured.Equal(empty) {
		t.Error("textured set should not equal the empty set")
	}
}

func TestPreProcessorConditionals(t *testing.T) {
	plain, err := NewPreProcessor(NewFeatureSet()).Process(tileVertSource)
	if err != nil {
		t.Fatalf("plain Process: %v", err)
	}
	if strings.Contains(plain, "tex3d") {
		t.Error("plain build should not contain the tex3d input")
	}
	if strings.Contains(plain, "tex: vec3<f32>") {
		t.Error("plain build should not contain the tex output")
	}
	if !strings.Contains(plain, "pos: vec2<u32>") {
		t.Error("plain build should contain the pos input")
	}

	textured, err := NewPreProcessor(NewFeatureSet(FeatureTextured)).Process(tileVertSource)
	if err != nil {
		t.Fatalf("textured Process: %v", err)
	}
	if !strings.Contains(textured, "tex3d") {
		t.Error("textured build should contain the tex3d input")
	}
	if !strings.Contains(textured, "tex: vec3<f32>") {
		t.Error("textured build should contain the tex output")
	}
}

func TestPreProcessorGroupDeclaration(t *testing.T) {
	pp := NewPreProcessor(NewFeatureSet())
	out, err := pp.Process(tileVertSource)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> transform: TileTransform;") {
		t.Error("missing generated uniform declaration for the tile transform")
	}
	if !strings.Contains(out, "struct TileTransform") {
		t.Error("missing injected TileTransform struct source")
	}

	decls := pp.Declarations()
	if len(decls) != 2 {
		t.Fatalf("declarations: got %d, want 2", len(decls))
	}
	if decls[0].Type != AnnotationTypeBindingGroup {
		t.Errorf("first declaration type: got %q, want group", decls[0].Type)
	}
	if decls[1].Type != AnnotationTypeProvider || decls[1].Args[0] != AnnotationArgCamera {
		t.Errorf("second declaration: got %q %v, want camera provider", decls[1].Type, decls[1].Args)
	}
}

func TestPreProcessorErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name:   "unterminated ifdef",
			source: "//@strata:ifdef textured\nlet x = 1.0;\n",
		},
		{
			name:   "else without ifdef",
			source: "//@strata:else\n",
		},
		{
			name:   "endif without ifdef",
			source: "//@strata:endif\n",
		},
		{
			name:   "duplicate else",
			source: "//@strata:ifdef textured\n//@strata:else\n//@strata:else\n//@strata:endif\n",
		},
		{
			name:   "unknown feature",
			source: "//@strata:ifdef shadows\n//@strata:endif\n",
		},
		{
			name:   "unknown include type",
			source: "//@strata:include light_uniform\n",
		},
		{
			name:   "unknown annotation type",
			source: "//@strata:import tile_transform\n",
		},
		{
			name:   "group with missing arguments",
			source: "//@strata:group 0 0 storage_uniform transform\n",
		},
		{
			name:   "provider with unknown identity",
			source: "//@strata:provider 0 0 lighting\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPreProcessor(NewFeatureSet(FeatureTextured)).Process(tt.source); err == nil {
				t.Error("expected a pre-processing error")
			}
		})
	}
}

func TestPreProcessorDisabledSectionsSkipParsing(t *testing.T) {
	// Annotations inside a dropped section must not be validated or recorded;
	// the section is removed before any other processing happens.
	source := "//@strata:ifdef textured\n//@strata:provider 1 0 material atlas_texture\n//@strata:endif\n"
	pp := NewPreProcessor(NewFeatureSet())
	out, err := pp.Process(source)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if strings.Contains(out, "material") {
		t.Error("dropped section leaked into output")
	}
	if len(pp.Declarations()) != 0 {
		t.Errorf("declarations from a dropped section: got %d, want 0", len(pp.Declarations()))
	}
}

func TestVertexShaderPlain(t *testing.T) {
	s := NewShaderFromSource("tile_vert", ShaderTypeVertex, tileVertSource)

	if s.Key() != "tile_vert@plain" {
		t.Errorf("Key: got %q, want \"tile_vert@plain\"", s.Key())
	}
	if s.EntryPoint() != "vs_main" {
		t.Errorf("EntryPoint: got %q, want \"vs_main\"", s.EntryPoint())
	}

	layouts := s.VertexLayout(0)
	if len(layouts) != 1 {
		t.Fatalf("vertex layouts: got %d, want 1", len(layouts))
	}
	layout := layouts[0]
	if layout.ArrayStride != 8 {
		t.Errorf("ArrayStride: got %d, want 8", layout.ArrayStride)
	}
	if len(layout.Attributes) != 1 {
		t.Fatalf("attributes: got %d, want 1", len(layout.Attributes))
	}
	if layout.Attributes[0].Format != wgpu.VertexFormatUint32x2 {
		t.Errorf("attribute format: got %v, want Uint32x2", layout.Attributes[0].Format)
	}

	desc := s.BindGroupLayoutDescriptor(0)
	if len(desc.Entries) != 1 {
		t.Fatalf("group 0 entries: got %d, want 1", len(desc.Entries))
	}
	entry := desc.Entries[0]
	if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("buffer type: got %v, want uniform", entry.Buffer.Type)
	}
	if entry.Buffer.MinBindingSize != 32 {
		t.Errorf("MinBindingSize: got %d, want 32", entry.Buffer.MinBindingSize)
	}
	if entry.Visibility != wgpu.ShaderStageVertex {
		t.Errorf("visibility: got %v, want vertex", entry.Visibility)
	}
	if got := s.BindGroupVarName(0, 0); got != "transform" {
		t.Errorf("BindGroupVarName(0, 0): got %q, want \"transform\"", got)
	}
}

func TestVertexShaderTextured(t *testing.T) {
	s := NewShaderFromSource("tile_vert", ShaderTypeVertex, tileVertSource, FeatureTextured)

	if s.Key() != "tile_vert@textured" {
		t.Errorf("Key: got %q, want \"tile_vert@textured\"", s.Key())
	}

	layouts := s.VertexLayout(0)
	if len(layouts) != 1 {
		t.Fatalf("vertex layouts: got %d, want 1", len(layouts))
	}
	layout := layouts[0]
	if layout.ArrayStride != 16 {
		t.Errorf("ArrayStride: got %d, want 16", layout.ArrayStride)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("attributes: got %d, want 2", len(layout.Attributes))
	}
	if layout.Attributes[1].Format != wgpu.VertexFormatUint32x2 || layout.Attributes[1].Offset != 8 {
		t.Errorf("tex3d attribute: got format %v offset %d, want Uint32x2 at offset 8",
			layout.Attributes[1].Format, layout.Attributes[1].Offset)
	}
	if layout.Attributes[1].ShaderLocation != 1 {
		t.Errorf("tex3d shader location: got %d, want 1", layout.Attributes[1].ShaderLocation)
	}
}

func TestFragmentShaderTextured(t *testing.T) {
	s := NewShaderFromSource("tile_frag", ShaderTypeFragment, tileFragSource, FeatureTextured)

	if s.EntryPoint() != "fs_main" {
		t.Errorf("EntryPoint: got %q, want \"fs_main\"", s.EntryPoint())
	}

	atlasGroup := s.BindGroupLayoutDescriptor(1)
	if len(atlasGroup.Entries) != 2 {
		t.Fatalf("group 1 entries: got %d, want 2", len(atlasGroup.Entries))
	}
	tex := atlasGroup.Entries[0]
	if tex.Texture.ViewDimension != wgpu.TextureViewDimension2DArray {
		t.Errorf("texture view dimension: got %v, want 2D array", tex.Texture.ViewDimension)
	}
	if tex.Texture.SampleType != wgpu.TextureSampleTypeFloat {
		t.Errorf("texture sample type: got %v, want float", tex.Texture.SampleType)
	}
	samp := atlasGroup.Entries[1]
	if samp.Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Errorf("sampler type: got %v, want filtering", samp.Sampler.Type)
	}

	colorGroup := s.BindGroupLayoutDescriptor(2)
	if len(colorGroup.Entries) != 1 {
		t.Fatalf("group 2 entries: got %d, want 1", len(colorGroup.Entries))
	}
	if colorGroup.Entries[0].Buffer.MinBindingSize != 16 {
		t.Errorf("layer color MinBindingSize: got %d, want 16", colorGroup.Entries[0].Buffer.MinBindingSize)
	}

	// Provider declarations carry the material binding roles for resource wiring.
	var roles []AnnotationArg
	for _, d := range s.Declarations() {
		if d.Type == AnnotationTypeProvider && d.Args[0] == AnnotationArgMaterial {
			roles = append(roles, d.Args[1])
		}
	}
	if len(roles) != 2 || roles[0] != AnnotationArgAtlasTexture || roles[1] != AnnotationArgAtlasSampler {
		t.Errorf("material binding roles: got %v, want [atlas_texture atlas_sampler]", roles)
	}
}

func TestFragmentShaderPlain(t *testing.T) {
	s := NewShaderFromSource("tile_frag", ShaderTypeFragment, tileFragSource)

	if len(s.BindGroupLayoutDescriptor(1).Entries) != 0 {
		t.Error("plain build should not declare the atlas bind group")
	}
	if len(s.BindGroupLayoutDescriptor(2).Entries) != 1 {
		t.Error("plain build should still declare the layer color bind group")
	}
	if strings.Contains(s.Source(), "textureSample") {
		t.Error("plain build should not contain the sampling path")
	}
}

func TestShaderFeatureSetsPropagate(t *testing.T) {
	plain := NewShaderFromSource("tile_vert", ShaderTypeVertex, tileVertSource)
	textured := NewShaderFromSource("tile_vert", ShaderTypeVertex, tileVertSource, FeatureTextured)

	if plain.Features().Equal(textured.Features()) {
		t.Error("plain and textured builds should carry different feature sets")
	}
	if plain.Key() == textured.Key() {
		t.Error("plain and textured builds should cache under different keys")
	}
}
