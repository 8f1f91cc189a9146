package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/strata-go/common"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestCameraTransformMapsCanvasToClip(t *testing.T) {
	tests := []struct {
		name          string
		options       []CameraBuilderOption
		left, top     float32
		right, bottom float32
	}{
		{
			name:   "defaults",
			left:   -12.5, top: -9.375,
			right: 12.5, bottom: 9.375,
		},
		{
			name: "offset center with zoom",
			options: []CameraBuilderOption{
				WithCenter(10, 10),
				WithZoom(2),
				WithViewport(640, 480),
			},
			left: 5, top: 6.25,
			right: 15, bottom: 13.75,
		},
		{
			name: "larger tile size",
			options: []CameraBuilderOption{
				WithViewport(512, 512),
				WithTilePixelSize(64),
			},
			left: -4, top: -4,
			right: 4, bottom: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.options...)
			m := cam.Transform()

			// The top-left canvas corner must land at clip (-1, +1) and the
			// bottom-right at (+1, -1); canvas y grows down, clip y grows up.
			corners := []struct {
				world [2]float32
				clip  [2]float32
			}{
				{[2]float32{tt.left, tt.top}, [2]float32{-1, 1}},
				{[2]float32{tt.right, tt.top}, [2]float32{1, 1}},
				{[2]float32{tt.right, tt.bottom}, [2]float32{1, -1}},
				{[2]float32{tt.left, tt.bottom}, [2]float32{-1, -1}},
				{[2]float32{(tt.left + tt.right) / 2, (tt.top + tt.bottom) / 2}, [2]float32{0, 0}},
			}
			for _, c := range corners {
				got := common.Mul42Vec4(m[:], [4]float32{c.world[0], c.world[1], 0, 1})
				if !approxEqual(got[0], c.clip[0]) || !approxEqual(got[1], c.clip[1]) {
					t.Errorf("world (%v, %v): got clip (%v, %v), want (%v, %v)",
						c.world[0], c.world[1], got[0], got[1], c.clip[0], c.clip[1])
				}
			}
		})
	}
}

func TestCameraVisibleTileRect(t *testing.T) {
	tests := []struct {
		name                   string
		options                []CameraBuilderOption
		minX, minY, maxX, maxY int
	}{
		{
			name: "defaults straddle the origin",
			minX: -13, minY: -10, maxX: 13, maxY: 10,
		},
		{
			name: "zoomed in on a positive center",
			options: []CameraBuilderOption{
				WithCenter(10, 10),
				WithZoom(2),
				WithViewport(640, 480),
			},
			minX: 5, minY: 6, maxX: 15, maxY: 14,
		},
		{
			name: "exact tile alignment keeps tight bounds",
			options: []CameraBuilderOption{
				WithCenter(4, 4),
				WithViewport(256, 256),
			},
			minX: 0, minY: 0, maxX: 8, maxY: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.options...)
			minX, minY, maxX, maxY := cam.VisibleTileRect()
			if minX != tt.minX || minY != tt.minY || maxX != tt.maxX || maxY != tt.maxY {
				t.Errorf("got (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					minX, minY, maxX, maxY, tt.minX, tt.minY, tt.maxX, tt.maxY)
			}
		})
	}
}

func TestCameraUpdatePullsController(t *testing.T) {
	ctrl := NewCameraController(WithStartCenter(3, 4), WithStartZoom(2))
	cam := NewCamera(WithController(ctrl))

	// Construction with WithController syncs the initial state.
	if x, y := cam.Center(); x != 3 || y != 4 {
		t.Fatalf("initial center: got (%v, %v), want (3, 4)", x, y)
	}
	if z := cam.Zoom(); z != 2 {
		t.Fatalf("initial zoom: got %v, want 2", z)
	}

	ctrl.SetCenter(7, -1)
	ctrl.SetZoomLevel(4)
	cam.Update()

	if x, y := cam.Center(); x != 7 || y != -1 {
		t.Errorf("center after Update: got (%v, %v), want (7, -1)", x, y)
	}
	if z := cam.Zoom(); z != 4 {
		t.Errorf("zoom after Update: got %v, want 4", z)
	}
}

func TestCameraUpdateWithoutController(t *testing.T) {
	cam := NewCamera(WithCenter(2, 3), WithZoom(2))
	cam.Update()
	if x, y := cam.Center(); x != 2 || y != 3 {
		t.Errorf("center: got (%v, %v), want (2, 3)", x, y)
	}
	if z := cam.Zoom(); z != 2 {
		t.Errorf("zoom: got %v, want 2", z)
	}
}

func TestCameraSetViewportRecomputesTransform(t *testing.T) {
	cam := NewCamera(WithViewport(256, 256), WithTilePixelSize(32))
	before := cam.Transform()
	cam.SetViewport(512, 512)
	after := cam.Transform()
	if before == after {
		t.Error("transform unchanged after SetViewport")
	}

	// Doubling the viewport halves the scale terms.
	if !approxEqual(after[0]*2, before[0]) || !approxEqual(after[3]*2, before[3]) {
		t.Errorf("scale terms: before (%v, %v), after (%v, %v)", before[0], before[3], after[0], after[3])
	}
}

func TestCameraControllerZoomClamping(t *testing.T) {
	tests := []struct {
		name    string
		options []CameraControllerOption
		set     float32
		want    float32
	}{
		{
			name: "below minimum clamps up",
			set:  0.01,
			want: 0.25,
		},
		{
			name: "above maximum clamps down",
			set:  100,
			want: 8,
		},
		{
			name: "in range passes through",
			set:  3,
			want: 3,
		},
		{
			name:    "custom bounds",
			options: []CameraControllerOption{WithZoomBounds(0.5, 2)},
			set:     4,
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCameraController(tt.options...)
			ctrl.SetZoomLevel(tt.set)
			if got := ctrl.ZoomLevel(); got != tt.want {
				t.Errorf("ZoomLevel: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCameraControllerStartZoomClamped(t *testing.T) {
	ctrl := NewCameraController(WithStartZoom(50))
	if got := ctrl.ZoomLevel(); got != 8 {
		t.Errorf("ZoomLevel: got %v, want 8", got)
	}
}

func TestCameraControllerZoomDelta(t *testing.T) {
	ctrl := NewCameraController(WithZoomSpeed(0.5))
	ctrl.Zoom(1)
	if got := ctrl.ZoomLevel(); !approxEqual(got, 1.5) {
		t.Errorf("after zoom in: got %v, want 1.5", got)
	}
	ctrl.Zoom(-1)
	if got := ctrl.ZoomLevel(); !approxEqual(got, 0.75) {
		t.Errorf("after zoom out: got %v, want 0.75", got)
	}
}

func TestCameraControllerPanScalesWithZoom(t *testing.T) {
	ctrl := NewCameraController(WithStartZoom(2), WithPanSpeed(4))
	ctrl.PanRight(1)
	ctrl.PanDown(-1)
	x, y := ctrl.Center()
	if !approxEqual(x, 2) {
		t.Errorf("centerX: got %v, want 2", x)
	}
	if !approxEqual(y, -2) {
		t.Errorf("centerY: got %v, want -2", y)
	}
}

func TestGPUTileTransformMarshal(t *testing.T) {
	cam := NewCamera()
	u := GPUTileTransform{M: cam.Transform()}
	if u.Size() != 32 {
		t.Fatalf("Size: got %d, want 32", u.Size())
	}
	data := u.Marshal()
	if len(data) != 32 {
		t.Fatalf("Marshal length: got %d, want 32", len(data))
	}
}
