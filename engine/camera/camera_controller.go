package camera

// CameraController defines the union interface for camera control systems.
// Controllers own positional state (center, zoom level). Camera reads from the
// controller and computes the tile-to-clip transform. Embeds both
// panCameraController and zoomCameraController, enabling pan and zoom controls
// to work simultaneously from a single controller instance.
type CameraController interface {
	panCameraController
	zoomCameraController

	// Center returns the world-space viewport center in tile units.
	//
	// Returns:
	//   - x, y: world-space center
	Center() (x, y float32)

	// SetCenter sets the world-space viewport center directly.
	//
	// Parameters:
	//   - x, y: world-space center in tile units
	SetCenter(x, y float32)
}

// panCameraController defines planar translation control methods.
// Panning shifts the viewport center along world axes in tile units; pan
// distance is divided by the current zoom level so a pan step covers the same
// on-screen distance at every magnification.
type panCameraController interface {
	// PanRight translates the viewport center along the world x axis.
	// Positive delta moves right, negative moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanDown translates the viewport center along the world y axis.
	// Positive delta moves down (y grows down in tile coordinates), negative moves up.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanDown(delta float32)

	// PanSpeed returns the pan speed in tile units per step at zoom 1.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32
}

// zoomCameraController defines magnification control methods. The zoom level is
// clamped to the controller's min/max bounds.
type zoomCameraController interface {
	// Zoom adjusts the zoom level multiplicatively. Positive delta zooms in,
	// negative zooms out, scaled by ZoomSpeed.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// ZoomLevel returns the current zoom level.
	//
	// Returns:
	//   - float32: the current zoom level
	ZoomLevel() float32

	// SetZoomLevel sets the zoom level directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - zoom: the new zoom level
	SetZoomLevel(zoom float32)

	// MinZoom returns the minimum allowed zoom level.
	//
	// Returns:
	//   - float32: minimum zoom level
	MinZoom() float32

	// MaxZoom returns the maximum allowed zoom level.
	//
	// Returns:
	//   - float32: maximum zoom level
	MaxZoom() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32
}
