package viz

import "threatlens/internal/domain"

// Default zoom clamp bounds
const (
	DefaultZoomMin = 0.1
	DefaultZoomMax = 3.0
)

// Camera holds the zoom factor and pan offset that map model space onto
// screen space. Created once per view mount; only the interaction
// controller mutates it.
type Camera struct {
	Zoom float64
	Pan  domain.Position

	zoomMin float64
	zoomMax float64
}

// NewCamera creates a camera at zoom 1 with default zoom bounds
func NewCamera() *Camera {
	return NewCameraWithBounds(DefaultZoomMin, DefaultZoomMax)
}

// NewCameraWithBounds creates a camera with explicit zoom bounds
func NewCameraWithBounds(zoomMin, zoomMax float64) *Camera {
	if zoomMin <= 0 {
		zoomMin = DefaultZoomMin
	}
	if zoomMax < zoomMin {
		zoomMax = zoomMin
	}
	return &Camera{Zoom: 1, zoomMin: zoomMin, zoomMax: zoomMax}
}

// ToScreen converts a model-space point to screen space
func (c *Camera) ToScreen(p domain.Position) domain.Position {
	return domain.Position{
		X: p.X*c.Zoom + c.Pan.X,
		Y: p.Y*c.Zoom + c.Pan.Y,
	}
}

// ToModel converts a screen-space point back to model space. Inverse of
// ToScreen up to floating-point tolerance.
func (c *Camera) ToModel(p domain.Position) domain.Position {
	return domain.Position{
		X: (p.X - c.Pan.X) / c.Zoom,
		Y: (p.Y - c.Pan.Y) / c.Zoom,
	}
}

// ZoomBy multiplies the zoom factor and clamps it to bounds.
// Non-positive factors are ignored.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.Zoom *= factor
	if c.Zoom < c.zoomMin {
		c.Zoom = c.zoomMin
	}
	if c.Zoom > c.zoomMax {
		c.Zoom = c.zoomMax
	}
}

// PanBy adds to the pan offset. Unbounded: panning past the content is
// allowed.
func (c *Camera) PanBy(dx, dy float64) {
	c.Pan.X += dx
	c.Pan.Y += dy
}

// Reset restores zoom 1 and zero pan (the explicit "center" action)
func (c *Camera) Reset() {
	c.Zoom = 1
	c.Pan = domain.Position{}
}
