package camera

import (
	"sync"
)

// cameraControllerImpl is the single implementation of CameraController.
// Supports pan and zoom controls simultaneously. Pan methods translate the
// viewport center along world axes; zoom methods adjust magnification within
// the configured bounds.
type cameraControllerImpl struct {
	mu *sync.Mutex

	centerX float32
	centerY float32

	zoom float32

	// Zoom constraints
	minZoom float32
	maxZoom float32

	// Speed settings
	zoomSpeed float32
	panSpeed  float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with sensible defaults.
// The returned controller supports both pan and zoom controls simultaneously.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		zoom:    1.0,
		minZoom: 0.25,
		maxZoom: 8.0,

		zoomSpeed: 0.1,
		panSpeed:  1.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.zoom = cc.clampZoom(cc.zoom)
	return cc
}

// --- internal helpers ---

// clampZoom limits a zoom level to the configured bounds.
// Caller must hold the mutex (or be inside construction).
func (cc *cameraControllerImpl) clampZoom(z float32) float32 {
	if z < cc.minZoom {
		return cc.minZoom
	}
	if z > cc.maxZoom {
		return cc.maxZoom
	}
	return z
}

// --- CameraController ---

func (cc *cameraControllerImpl) Center() (x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.centerX, cc.centerY
}

func (cc *cameraControllerImpl) SetCenter(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.centerX = x
	cc.centerY = y
}

// --- panCameraController ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.centerX += delta * cc.panSpeed / cc.zoom
}

func (cc *cameraControllerImpl) PanDown(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.centerY += delta * cc.panSpeed / cc.zoom
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

// --- zoomCameraController ---

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoom = cc.clampZoom(cc.zoom * (1 + delta*cc.zoomSpeed))
}

func (cc *cameraControllerImpl) ZoomLevel() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoom
}

func (cc *cameraControllerImpl) SetZoomLevel(zoom float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoom = cc.clampZoom(zoom)
}

func (cc *cameraControllerImpl) MinZoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minZoom
}

func (cc *cameraControllerImpl) MaxZoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxZoom
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}
