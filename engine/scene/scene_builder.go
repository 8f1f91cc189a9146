package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithMeshWorkers sets the number of worker goroutines used for parallel layer
// meshing during Add. Defaults to runtime.NumCPU()-1.
// Higher values may improve attach time for maps with many layers; lower values
// reduce scheduling overhead for small maps.
//
// Parameters:
//   - n: the number of mesh workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMeshWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.meshWorkers = n
	}
}
