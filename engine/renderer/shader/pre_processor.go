// pre_processor.go implements the Strata WGSL shader pre-processor. It scans shader
// source code for @strata: annotations, replaces them with generated WGSL declarations
// or injected struct source, resolves feature-gated conditional sections, and collects
// a declarations list that the Scene uses to semantically wire GPU resources to bind
// groups without manual string lookups.
//
// The pre-processor maintains two registries:
//   - structRegistry: maps AnnotationArg keys to embedded WGSL struct sources and their
//     resolved type names. Used by @strata:include (to inject the struct source) and
//     @strata:group (to resolve the WGSL type name in the generated declaration).
//   - addressSpaceRegistry: maps address space argument keys to WGSL var<> syntax strings.
//
// Conditional sections (@strata:ifdef/else/endif) are resolved against the feature set
// the pre-processor was constructed with. Lines inside inactive sections are dropped
// before any other processing, so a disabled feature's annotations, declarations, and
// struct fields never exist as far as the rest of the shader tooling is concerned.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/strata-go/engine/camera"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/material"
	"github.com/Carmen-Shannon/strata-go/engine/tilemap"
)

// registryEntry pairs a WGSL struct source string (embedded from a .wgsl asset file)
// with the resolved WGSL type name used in generated @group/@binding declarations.
type registryEntry struct {
	// Source is the raw WGSL struct definition text injected by @strata:include.
	Source string

	// Type is the WGSL type name emitted in @strata:group declarations (e.g. "TileTransform", "LayerColor").
	Type string
}

// condFrame tracks one open @strata:ifdef section during processing.
type condFrame struct {
	keep     bool
	seenElse bool
	line     int
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// features is the feature set conditional sections are resolved against.
	features FeatureSet

	// structRegistry maps struct type argument keys to their embedded WGSL source and type name.
	structRegistry map[AnnotationArg]registryEntry

	// addressSpaceRegistry maps address space argument keys to WGSL var<> syntax strings.
	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates annotations of type AnnotationTypeBindingGroup and
	// AnnotationTypeProvider during a Process call. Reset at the start of each Process invocation.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @strata: annotations,
// replacing them with generated declarations or injected struct sources, resolving
// feature-gated sections, and collecting a declarations list for downstream resource
// wiring by the Scene.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and pre-processes it. Conditional
	// sections are resolved first: lines inside @strata:ifdef sections whose feature
	// is disabled are dropped. @strata:include annotations are replaced with embedded
	// struct source text. @strata:group annotations are replaced with generated
	// @group/@binding variable declarations. @strata:provider annotations produce no
	// WGSL output but are recorded in the declarations list.
	//
	// The declarations list is reset at the start of each call and can be retrieved
	// via Declarations() after Process returns.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed, references an unknown type, or leaves an unbalanced conditional section
	Process(source string) (string, error)

	// Declarations returns the list of AnnotationTypeBindingGroup and AnnotationTypeProvider
	// annotations collected during the most recent call to Process, in source-order.
	// Returns nil if Process has not been called.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation

	// Features returns the feature set conditional sections are resolved against.
	//
	// Returns:
	//   - FeatureSet: the enabled features
	Features() FeatureSet
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with all registered struct types and
// address space mappings pre-populated, resolving conditional sections against the
// provided feature set. The struct registry maps annotation argument keys to their
// embedded WGSL source and resolved WGSL type names from the engine's GPU type packages.
//
// Parameters:
//   - features: the feature set enabled for this shader build
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(features FeatureSet) PreProcessor {
	return &preProcessor{
		features: features,
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgTileTransform:      {Source: camera.GPUTileTransformSource, Type: "TileTransform"},
			annotationArgTileVertex:         {Source: tilemap.GPUTileVertexSource, Type: "VertexInput"},
			annotationArgTexturedTileVertex: {Source: tilemap.GPUTexturedTileVertexSource, Type: "VertexInput"},
			AnnotationArgLayerColor:         {Source: material.GPULayerColorSource, Type: "LayerColor"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	var conds []condFrame

	// iterate through each line of the source and attempt to parse it as an annotation, if it's an annotation replace it with the corresponding source from the registry, otherwise keep the line as is.
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}

		// conditional annotations are handled before the active check so that
		// nested sections inside inactive regions stay balanced
		if a != nil {
			switch a.Type {
			case annotationTypeIfdef:
				parentActive := condsActive(conds)
				conds = append(conds, condFrame{
					keep: parentActive && p.features.Has(Feature(a.Args[0])),
					line: i + 1,
				})
				continue
			case annotationTypeElse:
				if len(conds) == 0 {
					return "", fmt.Errorf("line %d: @strata else without matching ifdef", i+1)
				}
				top := &conds[len(conds)-1]
				if top.seenElse {
					return "", fmt.Errorf("line %d: duplicate @strata else for ifdef on line %d", i+1, top.line)
				}
				top.seenElse = true
				top.keep = condsActive(conds[:len(conds)-1]) && !top.keep
				continue
			case annotationTypeEndif:
				if len(conds) == 0 {
					return "", fmt.Errorf("line %d: @strata endif without matching ifdef", i+1)
				}
				conds = conds[:len(conds)-1]
				continue
			}
		}

		if !condsActive(conds) {
			continue
		}

		if a == nil {
			out = append(out, line)
			continue
		}

		// handle annotation based on its type and arguments
		switch a.Type {
		case annotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @strata include argument %q", i+1, a.Args[0])
			}

			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			varName := string(a.Args[1])
			var wgslType string
			if inner, ok := strings.CutPrefix(string(a.Args[2]), "array<"); ok {
				inner = strings.TrimSuffix(inner, ">")
				entry := p.structRegistry[AnnotationArg(inner)]
				wgslType = fmt.Sprintf("array<%s>", entry.Type)
			} else {
				entry := p.structRegistry[a.Args[2]]
				wgslType = entry.Type
			}

			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, varName, wgslType))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}

	}

	if len(conds) != 0 {
		return "", fmt.Errorf("unterminated @strata ifdef opened on line %d", conds[len(conds)-1].line)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) Features() FeatureSet {
	return p.features
}

// condsActive reports whether every open conditional frame keeps its lines.
func condsActive(conds []condFrame) bool {
	for _, c := range conds {
		if !c.keep {
			return false
		}
	}
	return true
}
