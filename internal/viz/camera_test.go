package viz

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"threatlens/internal/domain"
)

func TestCameraRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("ToModel inverts ToScreen", prop.ForAll(
		func(zoom, panX, panY, px, py float64) bool {
			cam := NewCamera()
			cam.Zoom = zoom
			cam.Pan = domain.Position{X: panX, Y: panY}

			p := domain.Position{X: px, Y: py}
			back := cam.ToModel(cam.ToScreen(p))

			return math.Abs(back.X-p.X) < 1e-6 && math.Abs(back.Y-p.Y) < 1e-6
		},
		gen.Float64Range(DefaultZoomMin, DefaultZoomMax),
		gen.Float64Range(-5000, 5000),
		gen.Float64Range(-5000, 5000),
		gen.Float64Range(-2000, 2000),
		gen.Float64Range(-2000, 2000),
	))

	properties.TestingRun(t)
}

func TestZoomClamp(t *testing.T) {
	t.Run("repeated zoom in never exceeds max", func(t *testing.T) {
		cam := NewCamera()
		for i := 0; i < 50; i++ {
			cam.ZoomBy(1.5)
		}
		assert.Equal(t, DefaultZoomMax, cam.Zoom)
	})

	t.Run("repeated zoom out never drops below min", func(t *testing.T) {
		cam := NewCamera()
		for i := 0; i < 50; i++ {
			cam.ZoomBy(0.5)
		}
		assert.Equal(t, DefaultZoomMin, cam.Zoom)
	})

	t.Run("non-positive factors are ignored", func(t *testing.T) {
		cam := NewCamera()
		cam.ZoomBy(0)
		cam.ZoomBy(-2)
		assert.Equal(t, 1.0, cam.Zoom)
	})
}

func TestPanUnbounded(t *testing.T) {
	cam := NewCamera()
	cam.PanBy(1e7, -1e7)
	cam.PanBy(1, 1)
	assert.Equal(t, 1e7+1, cam.Pan.X)
	assert.Equal(t, -1e7+1, cam.Pan.Y)
}

func TestCameraReset(t *testing.T) {
	cam := NewCamera()
	cam.ZoomBy(1.5)
	cam.PanBy(100, -50)

	cam.Reset()

	assert.Equal(t, 1.0, cam.Zoom)
	assert.Equal(t, domain.Position{}, cam.Pan)
}

func TestCameraBoundsValidation(t *testing.T) {
	cam := NewCameraWithBounds(-1, 0.05)
	// Degenerate bounds fall back to sane ones
	cam.ZoomBy(0.001)
	assert.Greater(t, cam.Zoom, 0.0)
}
