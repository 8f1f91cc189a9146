package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/bind_group_provider"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	centerX float32
	centerY float32
	zoom    float32

	viewportWidth  float32
	viewportHeight float32
	tilePixelSize  float32

	transform [8]float32

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for the 2D tile camera. The camera holds viewport
// settings and computes the draw-scoped 4x2 tile-to-clip transform from an attached
// CameraController each frame via Update(). World coordinates are tile units with
// x growing right and y growing down.
type Camera interface {
	// Center returns the world-space point (tile units) at the middle of the viewport.
	//
	// Returns:
	//   - x, y: world-space center in tile units
	Center() (x, y float32)

	// Zoom returns the current zoom factor. At zoom 1 a tile covers TilePixelSize
	// screen pixels; larger values magnify.
	//
	// Returns:
	//   - float32: the zoom factor
	Zoom() float32

	// Viewport returns the viewport dimensions in pixels.
	//
	// Returns:
	//   - width, height: viewport dimensions in pixels
	Viewport() (width, height float32)

	// TilePixelSize returns the on-screen side length of one tile at zoom 1.
	//
	// Returns:
	//   - float32: pixels per tile at zoom 1
	TilePixelSize() float32

	// Transform returns the current 4x2 tile-to-clip transform as 8 floats
	// (column-major). This is the draw-scoped constant the tile vertex stage
	// multiplies tile positions by.
	//
	// Returns:
	//   - [8]float32: the tile transform matrix
	Transform() [8]float32

	// VisibleTileRect returns the half-open tile-coordinate rectangle covered by the
	// viewport: every tile cell (x, y) with minX <= x < maxX and minY <= y < maxY
	// intersects the view. Bounds may be negative when the camera pans past the
	// map origin; clamping to map dimensions is the caller's concern.
	//
	// Returns:
	//   - minX, minY, maxX, maxY: the visible tile range
	VisibleTileRect() (minX, minY, maxX, maxY int)

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	// Returns nil if not set.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update reads center/zoom from the controller and recomputes the transform.
	// Should be called once per frame (typically in the tick callback).
	// If no controller is attached, the camera keeps its current center and zoom.
	Update()

	// SetViewport sets the viewport dimensions in pixels and recomputes the transform.
	//
	// Parameters:
	//   - width, height: viewport dimensions in pixels
	SetViewport(width, height float32)

	// SetTilePixelSize sets the on-screen tile side length at zoom 1 and recomputes the transform.
	//
	// Parameters:
	//   - size: pixels per tile at zoom 1
	SetTilePixelSize(size float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// SetBindGroupProvider sets the camera's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default viewport settings.
// A controller must be attached via SetController or WithController option
// before pan/zoom input has any effect.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:             &sync.Mutex{},
		zoom:           1,
		viewportWidth:  800,
		viewportHeight: 600,
		tilePixelSize:  32,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	c.updateTransform()
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Center() (x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.centerX, c.centerY
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) Viewport() (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewportWidth, c.viewportHeight
}

func (c *cameraImpl) TilePixelSize() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tilePixelSize
}

func (c *cameraImpl) Transform() [8]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

func (c *cameraImpl) VisibleTileRect() (minX, minY, maxX, maxY int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	left, top, right, bottom := c.canvasRect()
	return int(math.Floor(float64(left))), int(math.Floor(float64(top))),
		int(math.Ceil(float64(right))), int(math.Ceil(float64(bottom)))
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller != nil {
		c.centerX, c.centerY = c.controller.Center()
		c.zoom = c.controller.ZoomLevel()
	}
	c.updateTransform()
}

func (c *cameraImpl) SetViewport(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewportWidth = width
	c.viewportHeight = height
	c.updateTransform()
}

func (c *cameraImpl) SetTilePixelSize(size float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tilePixelSize = size
	c.updateTransform()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindGroupProvider = provider
}

// canvasRect computes the world-space rectangle (tile units) covered by the
// viewport at the current center and zoom. Caller must hold the mutex.
func (c *cameraImpl) canvasRect() (left, top, right, bottom float32) {
	halfW := c.viewportWidth / (c.tilePixelSize * c.zoom) / 2
	halfH := c.viewportHeight / (c.tilePixelSize * c.zoom) / 2
	return c.centerX - halfW, c.centerY - halfH, c.centerX + halfW, c.centerY + halfH
}

// updateTransform recalculates the 4x2 tile-to-clip transform from the current
// canvas rectangle. Caller must hold the mutex.
func (c *cameraImpl) updateTransform() {
	left, top, right, bottom := c.canvasRect()
	common.OrthoCanvas42(c.transform[:], left, top, right, bottom)
}
