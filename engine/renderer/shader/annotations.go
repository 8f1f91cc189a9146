// annotations.go defines the annotation types, argument constants, and parser for the
// Strata WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @strata: that drive automatic struct injection, bind group declaration, resource
// provider registration, and feature-gated conditional sections. The parsed results are
// stored as Annotation values and consumed by the PreProcessor and Scene to wire GPU
// resources without manual low-level plumbing.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies a Strata annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@strata:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
// Each type corresponds to a distinct pre-processor action and produces different
// fields on the resulting Annotation struct.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site. The struct source is embedded from the
	// corresponding Go GPU type's .wgsl asset file. This annotation does not produce
	// a declaration and is consumed entirely during pre-processing.
	//
	// Syntax: //@strata:include <struct_type>
	//
	// Example: //@strata:include tile_transform
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list. The declaration
	// carries the group index, binding index, and the resolved struct type, enabling the
	// Scene to semantically match bindings to resource providers without string lookups.
	//
	// Syntax: //@strata:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@strata:group 0 0 storage_uniform transform tile_transform
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider registers a resource provider identity for a group and binding
	// without generating any WGSL output. The WGSL binding declaration remains hand-written
	// in the shader source directly below the annotation. This is used for bindings that
	// contain raw WGSL types (textures, samplers) which have no corresponding registered
	// struct in the pre-processor's struct registry.
	//
	// An optional binding role can be appended after the provider identity to declare the
	// semantic purpose of an individual binding within a multi-binding provider group.
	//
	// Syntax:
	//   //@strata:provider <group> <binding> <provider_identity>
	//   //@strata:provider <group> <binding> <provider_identity> <binding_role>
	//
	// Examples:
	//   //@strata:provider 1 0 material atlas_texture
	//   //@strata:provider 2 0 layer
	AnnotationTypeProvider AnnotationType = "provider"

	// annotationTypeIfdef opens a conditional section that is kept only when the named
	// feature is enabled on the pre-processor. The section runs until the matching
	// @strata:else or @strata:endif. Sections nest. Feature gating is structural:
	// dropped lines never reach the WGSL compiler or the layout parsers, so a disabled
	// feature removes its input/output fields and code paths entirely.
	//
	// Syntax: //@strata:ifdef <feature>
	//
	// Example: //@strata:ifdef textured
	annotationTypeIfdef AnnotationType = "ifdef"

	// annotationTypeElse flips the innermost open conditional section.
	//
	// Syntax: //@strata:else
	annotationTypeElse AnnotationType = "else"

	// annotationTypeEndif closes the innermost open conditional section.
	//
	// Syntax: //@strata:endif
	annotationTypeEndif AnnotationType = "endif"
)

// Annotation represents a single parsed @strata: annotation from a WGSL shader source line.
// It carries the annotation type, its arguments, the source line number, and optional
// group/binding indices. Annotations of type AnnotationTypeBindingGroup and
// AnnotationTypeProvider are appended to the PreProcessor's declarations list for
// consumption by the Scene during resource wiring.
type Annotation struct {
	// Type identifies which annotation was parsed (include, group, provider, ifdef, else, or endif).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include:  [0] = struct type key (e.g. "tile_transform")
	//   - group:    [0] = address space, [1] = var name, [2] = WGSL type key
	//   - provider: [0] = provider identity (e.g. "material"), [1] = binding role (optional, e.g. "atlas_texture")
	//   - ifdef:    [0] = feature name (e.g. "textured")
	//   - else/endif: empty
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source where this annotation
	// was found. Used for error reporting.
	Line int

	// Group is the @group index for group and provider annotations. Nil for other annotations.
	Group *int

	// Binding is the @binding index for group and provider annotations. Nil for other annotations.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
// Arguments fall into four categories: struct type keys (used with include and group),
// address space identifiers (used with group), provider identity keys (used with
// provider), and feature names (used with ifdef).
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// These identify registered WGSL struct types. They can appear in @strata:include
// annotations (to inject the struct source) and in @strata:group annotations (as the
// type field, optionally wrapped in array<>). Each maps to a Go GPU type with an
// embedded .wgsl asset file.

const (
	// AnnotationArgTileTransform identifies the TileTransform struct holding the draw-scoped 4x2 matrix.
	// Source: engine/camera/assets/tile_transform.wgsl
	AnnotationArgTileTransform AnnotationArg = "tile_transform"

	// annotationArgTileVertex identifies the VertexInput struct for untextured tile meshes.
	// Source: engine/tilemap/assets/tile_vertex.wgsl
	annotationArgTileVertex AnnotationArg = "tile_vertex"

	// annotationArgTexturedTileVertex identifies the VertexInput struct for textured tile meshes.
	// Source: engine/tilemap/assets/textured_tile_vertex.wgsl
	annotationArgTexturedTileVertex AnnotationArg = "textured_tile_vertex"

	// AnnotationArgLayerColor identifies the LayerColor struct holding the per-layer modulation color.
	// Source: engine/renderer/material/assets/layer_color.wgsl
	AnnotationArgLayerColor AnnotationArg = "layer_color"
)

// ── Address space arguments ────────────────────────────────────────────────────
// These specify the WGSL variable address space in @strata:group annotations.
// They map to WGSL var<> declarations.

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

// ── Provider identity arguments ────────────────────────────────────────────────
// These identify which Scene-level resource provider owns a bind group. Used in
// @strata:provider annotations and matched by the Scene's draw call setup logic
// to wire the correct BindGroupProvider for each group.

const (
	// AnnotationArgCamera identifies the camera provider (draw-scoped tile transform uniform).
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgMaterial identifies the material provider (atlas texture array and sampler).
	AnnotationArgMaterial AnnotationArg = "material"

	// AnnotationArgLayer identifies the layer provider (per-layer modulation color uniform).
	AnnotationArgLayer AnnotationArg = "layer"
)

// ── Material binding role arguments ────────────────────────────────────────────
// These qualify individual bindings within a material provider group. They appear
// as the optional fourth argument of an @strata:provider annotation when the
// provider identity is "material", telling the renderer which texture or sampler
// role each binding fulfils without relying on variable-name string matching.

const (
	// AnnotationArgAtlasTexture identifies the tile atlas 2D array texture binding.
	AnnotationArgAtlasTexture AnnotationArg = "atlas_texture"

	// AnnotationArgAtlasSampler identifies the sampler paired with the atlas texture.
	AnnotationArgAtlasSampler AnnotationArg = "atlas_sampler"
)

// ── Feature arguments ──────────────────────────────────────────────────────────
// These name the build-time features accepted by @strata:ifdef annotations. A
// feature is enabled by constructing the shader with the matching Feature value.

const (
	// annotationArgFeatureTextured gates the texture-coordinate path of tile shaders.
	annotationArgFeatureTextured AnnotationArg = "textured"
)

// validStructTypes lists all AnnotationArg values that are accepted as struct type
// arguments in @strata:include and @strata:group annotations. Each entry must have
// a corresponding registryEntry in the PreProcessor's structRegistry.
var validStructTypes = []AnnotationArg{
	AnnotationArgTileTransform,
	annotationArgTileVertex,
	annotationArgTexturedTileVertex,
	AnnotationArgLayerColor,
}

// validAddressSpaces lists all AnnotationArg values that are accepted as address
// space arguments in @strata:group annotations. Each maps to a WGSL var<> declaration.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

// validProviderIdentities lists all AnnotationArg values that are accepted as
// provider identity arguments in @strata:provider annotations. Each maps to a
// Scene-level resource provider used during draw call wiring.
var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgMaterial,
	AnnotationArgLayer,
}

// validBindingRoles lists all AnnotationArg values that are accepted as binding
// role qualifiers in @strata:provider annotations. These identify the semantic
// purpose of individual bindings within a material provider group.
var validBindingRoles = []AnnotationArg{
	AnnotationArgAtlasTexture,
	AnnotationArgAtlasSampler,
}

// validFeatures lists all AnnotationArg values that are accepted as feature names
// in @strata:ifdef annotations.
var validFeatures = []AnnotationArg{
	annotationArgFeatureTextured,
}

// parseAnnotation attempts to parse a single line of WGSL source as a @strata: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix. Returns
// a populated Annotation for valid annotations, or an error describing the problem for
// malformed annotations with correct prefix but invalid syntax or unknown arguments.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @strata annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @strata include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @strata include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @strata group annotation requires exactly five arguments (group number, binding number, address space, var name, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @strata group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @strata group annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @strata group annotation", lineNum, args[3])
		}
		typeArg := args[5]
		if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
			inner = strings.TrimSuffix(inner, ">")
			if !slices.Contains(validStructTypes, AnnotationArg(inner)) {
				return nil, fmt.Errorf("line %d: unknown array element type %q in @strata group annotation", lineNum, inner)
			}
		} else {
			if !slices.Contains(validStructTypes, AnnotationArg(typeArg)) {
				return nil, fmt.Errorf("line %d: unknown struct type %q in @strata group annotation", lineNum, typeArg)
			}
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case string(AnnotationTypeProvider):
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("line %d: @strata provider annotation requires three or four arguments (group, binding, provider identity[, binding role])", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @strata provider annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @strata provider annotation", lineNum, args[3])
		}
		providerArgs := []AnnotationArg{AnnotationArg(args[3])}
		if len(args) == 5 {
			if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
				return nil, fmt.Errorf("line %d: unknown binding role %q in @strata provider annotation", lineNum, args[4])
			}
			providerArgs = append(providerArgs, AnnotationArg(args[4]))
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    providerArgs,
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case string(annotationTypeIfdef):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @strata ifdef annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validFeatures, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown feature %q in @strata ifdef annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeIfdef,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(annotationTypeElse):
		if len(args) != 1 {
			return nil, fmt.Errorf("line %d: @strata else annotation takes no arguments", lineNum)
		}
		return &Annotation{Type: annotationTypeElse, Line: lineNum}, nil
	case string(annotationTypeEndif):
		if len(args) != 1 {
			return nil, fmt.Errorf("line %d: @strata endif annotation takes no arguments", lineNum)
		}
		return &Annotation{Type: annotationTypeEndif, Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @strata annotation type %q", lineNum, args[0])
	}
}
