package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithStartCenter sets the initial camera center in tile coordinates.
//
// Parameters:
//   - x: X coordinate of the center, in tiles
//   - y: Y coordinate of the center, in tiles
//
// Returns:
//   - CameraControllerOption: functional option to set the starting center
func WithStartCenter(x, y float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.centerX = x
		cc.centerY = y
	}
}

// WithStartZoom sets the initial zoom factor.
//
// Parameters:
//   - zoom: zoom factor (1.0 = one tile spans TilePixelSize pixels)
//
// Returns:
//   - CameraControllerOption: functional option to set the starting zoom
func WithStartZoom(zoom float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoom = zoom
	}
}

// WithZoomBounds sets the minimum and maximum zoom factors.
//
// Parameters:
//   - min: minimum zoom factor (furthest out)
//   - max: maximum zoom factor (closest in)
//
// Returns:
//   - CameraControllerOption: functional option to set zoom bounds
func WithZoomBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZoom = min
		cc.maxZoom = max
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input, in tiles per pan call at zoom 1.0
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}
