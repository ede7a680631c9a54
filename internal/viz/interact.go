package viz

import (
	"math"

	"threatlens/internal/domain"
)

const (
	// edgeHitSlop is the model-space distance within which a click
	// counts as hitting an edge
	edgeHitSlop = 4.0

	zoomOutFactor = 0.9
	zoomInFactor  = 1.1
)

// Controller maps pointer events to camera changes, hover tracking and
// selection. Two interaction states exist: idle and dragging-pan,
// entered by pressing on empty space and moving, exited on release.
//
// The wheel convention is inherited from the product: scroll forward
// zooms out, scroll backward zooms in.
type Controller struct {
	cam  *Camera
	snap *domain.Snapshot

	hoveredID  string
	selectedID string

	pointerDown bool
	downOnEmpty bool
	moved       bool
	lastX       float64
	lastY       float64

	// Host callbacks, fired synchronously. Either may be nil.
	OnNodeClick func(*domain.Node)
	OnEdgeClick func(*domain.Edge)
}

// NewController creates a controller driving the given camera
func NewController(cam *Camera) *Controller {
	if cam == nil {
		cam = NewCamera()
	}
	return &Controller{cam: cam}
}

// Camera returns the camera the controller mutates
func (c *Controller) Camera() *Camera {
	return c.cam
}

// SetSnapshot replaces the graph the controller hit-tests against.
// Hover and selection reset: they referred to the old arena.
func (c *Controller) SetSnapshot(snap *domain.Snapshot) {
	c.snap = snap
	c.hoveredID = ""
	c.selectedID = ""
	c.pointerDown = false
	c.moved = false
}

// HoveredID returns the id of the currently hovered node, or ""
func (c *Controller) HoveredID() string {
	return c.hoveredID
}

// SelectedID returns the id of the currently selected node, or ""
func (c *Controller) SelectedID() string {
	return c.selectedID
}

// ClearSelection drops the current selection
func (c *Controller) ClearSelection() {
	c.selectedID = ""
}

// PointerDown begins a potential click or pan at screen coordinates
func (c *Controller) PointerDown(x, y float64) {
	c.pointerDown = true
	c.moved = false
	c.downOnEmpty = c.HitTest(x, y) == nil
	c.lastX, c.lastY = x, y
}

// PointerMove recomputes hover and, while pressed over empty space,
// pans the camera by the screen-space delta
func (c *Controller) PointerMove(x, y float64) {
	if c.pointerDown {
		dx, dy := x-c.lastX, y-c.lastY
		if dx != 0 || dy != 0 {
			c.moved = true
			if c.downOnEmpty {
				c.cam.PanBy(dx, dy)
			}
		}
	}
	c.lastX, c.lastY = x, y
	c.updateHover(x, y)
}

// PointerUp completes the gesture. Without an intervening drag it is a
// click: a hit node becomes selected (firing OnNodeClick), a hit edge
// fires OnEdgeClick, and empty space clears the selection.
func (c *Controller) PointerUp(x, y float64) {
	wasClick := c.pointerDown && !c.moved
	c.pointerDown = false
	c.moved = false
	if !wasClick {
		return
	}

	if node := c.HitTest(x, y); node != nil {
		c.selectedID = node.ID
		if c.OnNodeClick != nil {
			c.OnNodeClick(node)
		}
		return
	}
	if edge := c.hitEdge(x, y); edge != nil {
		if c.OnEdgeClick != nil {
			c.OnEdgeClick(edge)
		}
		return
	}
	c.selectedID = ""
}

// Wheel zooms the camera. Positive delta (scroll forward) zooms out,
// negative zooms in; preserved product convention.
func (c *Controller) Wheel(delta float64) {
	switch {
	case delta > 0:
		c.cam.ZoomBy(zoomOutFactor)
	case delta < 0:
		c.cam.ZoomBy(zoomInFactor)
	}
}

// HitTest returns the node under the given screen point: distance from
// the model-space pointer to the node center must not exceed the node
// radius, and the smallest distance wins on overlap.
func (c *Controller) HitTest(x, y float64) *domain.Node {
	if c.snap == nil {
		return nil
	}
	p := c.cam.ToModel(domain.Position{X: x, Y: y})

	best := -1
	bestDist := math.MaxFloat64
	for i := range c.snap.Nodes {
		node := &c.snap.Nodes[i]
		d := math.Hypot(p.X-node.Position.X, p.Y-node.Position.Y)
		if d <= node.Radius && d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return nil
	}
	return &c.snap.Nodes[best]
}

func (c *Controller) updateHover(x, y float64) {
	if node := c.HitTest(x, y); node != nil {
		c.hoveredID = node.ID
	} else {
		c.hoveredID = ""
	}
}

// hitEdge returns the edge whose segment passes within edgeHitSlop of
// the model-space pointer. Self-loops are resolved by node proximity
// already, so they are skipped here.
func (c *Controller) hitEdge(x, y float64) *domain.Edge {
	if c.snap == nil {
		return nil
	}
	p := c.cam.ToModel(domain.Position{X: x, Y: y})

	best := -1
	bestDist := math.MaxFloat64
	for i := range c.snap.Edges {
		edge := &c.snap.Edges[i]
		if edge.SourceID == edge.TargetID {
			continue
		}
		src := c.snap.NodeByID(edge.SourceID)
		tgt := c.snap.NodeByID(edge.TargetID)
		if src == nil || tgt == nil {
			continue
		}
		d := pointSegmentDistance(p, src.Position, tgt.Position)
		if d <= edgeHitSlop && d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return nil
	}
	return &c.snap.Edges[best]
}

func pointSegmentDistance(p, a, b domain.Position) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	len2 := abx*abx + aby*aby
	if len2 == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / len2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return math.Hypot(p.X-(a.X+t*abx), p.Y-(a.Y+t*aby))
}
