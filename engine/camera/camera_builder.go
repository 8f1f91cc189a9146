package camera

import (
	"github.com/Carmen-Shannon/strata-go/engine/renderer/bind_group_provider"
)

type CameraBuilderOption func(*cameraImpl)

// WithCenter sets the world-space point (tile units) at the middle of the viewport.
//
// Parameters:
//   - x, y: world-space center in tile units
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's center
func WithCenter(x, y float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.centerX = x
		c.centerY = y
	}
}

// WithZoom sets the camera's zoom factor.
//
// Parameters:
//   - zoom: the zoom factor (1 = one tile covers TilePixelSize pixels)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithViewport sets the viewport dimensions in pixels.
//
// Parameters:
//   - width, height: viewport dimensions in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport size
func WithViewport(width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewportWidth = width
		c.viewportHeight = height
	}
}

// WithTilePixelSize sets the on-screen side length of one tile at zoom 1.
//
// Parameters:
//   - size: pixels per tile at zoom 1
//
// Returns:
//   - CameraBuilderOption: a function that sets the tile pixel size
func WithTilePixelSize(size float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.tilePixelSize = size
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its transform from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
		if ctrl != nil {
			c.centerX, c.centerY = ctrl.Center()
			c.zoom = ctrl.ZoomLevel()
		}
	}
}

// WithBindGroupProvider attaches a bind group provider to the camera.
// The provider describes the GPU binding requirements for the tile transform uniform.
//
// Parameters:
//   - provider: the bind group provider to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the bind group provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.bindGroupProvider = provider
	}
}
