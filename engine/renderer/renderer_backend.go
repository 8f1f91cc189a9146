package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how finished frames reach the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting,
	// capping the frame rate at the monitor's refresh rate. No tearing; the
	// default for a map viewer, where latency matters less than smooth pans.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately without waiting for vertical
	// blank. Lowest latency, may tear.
	PresentModeUncapped
)

// MSAASampleCount is the multisample anti-aliasing sample count. MSAA mainly
// smooths tile edges at fractional zoom levels. WebGPU guarantees 1 (off) and
// 4; 8 and 16 are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisampling (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x is 4x multisampling, the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x is 8x multisampling. Adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x is 16x multisampling. Adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
