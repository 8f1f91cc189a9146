package shader

import (
	"slices"
	"sort"
	"strings"
)

// Feature is a build-time shader option toggled by @strata:ifdef sections.
// Enabling a feature changes the shader's input/output shape structurally, so
// pipelines must be assembled against shaders built with matching feature sets.
type Feature string

const (
	// FeatureTextured enables the tex3d vertex input and the interpolated tex
	// output of tile shaders. When disabled, both are absent from the shader's
	// input/output shape entirely.
	FeatureTextured Feature = "textured"
)

// FeatureSet is an immutable set of enabled shader features.
type FeatureSet struct {
	features []Feature
}

// NewFeatureSet builds a feature set from the given features, deduplicated and
// sorted so that equal sets compare equal regardless of construction order.
//
// Parameters:
//   - features: the features to enable
//
// Returns:
//   - FeatureSet: the normalized set
func NewFeatureSet(features ...Feature) FeatureSet {
	fs := make([]Feature, 0, len(features))
	for _, f := range features {
		if !slices.Contains(fs, f) {
			fs = append(fs, f)
		}
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
	return FeatureSet{features: fs}
}

// Has reports whether the set contains the given feature.
//
// Parameters:
//   - f: the feature to check
//
// Returns:
//   - bool: true if the feature is enabled
func (s FeatureSet) Has(f Feature) bool {
	return slices.Contains(s.features, f)
}

// Equal reports whether two feature sets enable exactly the same features.
//
// Parameters:
//   - other: the set to compare against
//
// Returns:
//   - bool: true if the sets are identical
func (s FeatureSet) Equal(other FeatureSet) bool {
	return slices.Equal(s.features, other.features)
}

// Features returns the enabled features in sorted order.
//
// Returns:
//   - []Feature: a copy of the enabled features
func (s FeatureSet) Features() []Feature {
	out := make([]Feature, len(s.features))
	copy(out, s.features)
	return out
}

// String renders the set as a stable "+"-joined list for shader cache keys and
// error messages. The empty set renders as "plain".
//
// Returns:
//   - string: the rendered set
func (s FeatureSet) String() string {
	if len(s.features) == 0 {
		return "plain"
	}
	parts := make([]string, len(s.features))
	for i, f := range s.features {
		parts[i] = string(f)
	}
	return strings.Join(parts, "+")
}
