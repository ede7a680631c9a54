package viz

import (
	"math"

	"threatlens/internal/domain"
)

const (
	highlightColor = "#ffffff"
	labelColor     = "#bdc3c7"

	// Terminal cells are roughly twice as tall as wide; disc fills
	// compensate so nodes read as circles. Model-space geometry and hit
	// testing are unaffected.
	cellAspect = 2.0
)

// Render draws one frame: edges with per-type color, dash pattern and
// arrowheads, then nodes as filled discs with risk-scaled radius, then
// labels. Selected and hovered nodes get a highlight ring.
//
// Render never mutates the snapshot or the camera. A nil or zero-sized
// surface is a no-op so a detached view during teardown can't crash the
// host, and placeholder positions from a not-yet-laid-out snapshot draw
// without error.
func Render(s Surface, snap *domain.Snapshot, cam *Camera, selectedID, hoveredID string) {
	if s == nil {
		return
	}
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}
	s.Clear()
	if snap == nil {
		return
	}
	if cam == nil {
		cam = NewCamera()
	}

	for i := range snap.Edges {
		drawEdge(s, snap, cam, &snap.Edges[i])
	}
	for i := range snap.Nodes {
		node := &snap.Nodes[i]
		drawNode(s, cam, node, node.ID == selectedID || node.ID == hoveredID)
	}
	for i := range snap.Nodes {
		node := &snap.Nodes[i]
		drawLabel(s, cam, node, node.ID == selectedID)
	}
}

func drawEdge(s Surface, snap *domain.Snapshot, cam *Camera, edge *domain.Edge) {
	src := snap.NodeByID(edge.SourceID)
	tgt := snap.NodeByID(edge.TargetID)
	if src == nil || tgt == nil {
		return
	}

	if src.ID == tgt.ID {
		drawSelfLoop(s, cam, src, edge)
		return
	}

	p1 := cam.ToScreen(src.Position)
	p2 := cam.ToScreen(tgt.Position)
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	dist := math.Hypot(dx, dy)
	r1 := src.Radius * cam.Zoom
	r2 := tgt.Radius * cam.Zoom
	if dist <= r1+r2 {
		// Nodes overlap on screen; nothing visible to draw between them
		return
	}

	ux, uy := dx/dist, dy/dist
	startX := p1.X + ux*r1
	startY := p1.Y + uy*r1/cellAspect
	endX := p2.X - ux*(r2+1)
	endY := p2.Y - uy*(r2+1)/cellAspect

	drawLine(s, startX, startY, endX, endY, edge.Dash, edge.Color)
	drawArrowhead(s, endX, endY, ux, uy, edge.Color)
}

// drawSelfLoop renders a small loop glyph at the node's upper right so
// self-referencing edges stay visible without degenerate geometry.
func drawSelfLoop(s Surface, cam *Camera, node *domain.Node, edge *domain.Edge) {
	p := cam.ToScreen(node.Position)
	r := node.Radius * cam.Zoom
	cx := int(math.Round(p.X + r))
	cy := int(math.Round(p.Y - r/cellAspect))

	offsets := [][2]int{{1, -1}, {2, -2}, {3, -1}, {2, 0}}
	for _, o := range offsets {
		s.Set(cx+o[0], cy+o[1], '∘', edge.Color)
	}
	s.Set(cx, cy, '◀', edge.Color)
}

// drawLine rasterizes a screen-space segment with the edge's dash
// pattern. Bresenham over cells; the step counter drives the pattern.
func drawLine(s Surface, x0f, y0f, x1f, y1f float64, dash domain.DashStyle, color string) {
	x0, y0 := int(math.Round(x0f)), int(math.Round(y0f))
	x1, y1 := int(math.Round(x1f)), int(math.Round(y1f))

	ch := lineRune(x1-x0, y1-y0)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for step := 0; ; step++ {
		if dashOn(dash, step) {
			s.Set(x0, y0, ch, color)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func dashOn(dash domain.DashStyle, step int) bool {
	switch dash {
	case domain.DashDashed:
		return step%4 < 2
	case domain.DashDotted:
		return step%2 == 0
	default:
		return true
	}
}

func lineRune(dx, dy int) rune {
	ax, ay := abs(dx), abs(dy)
	switch {
	case ax >= 2*ay:
		return '─'
	case ay >= 2*ax:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// drawArrowhead places a triangular head at the edge's target end,
// oriented by the approach angle: a direction-keyed tip plus two flank
// cells one step back.
func drawArrowhead(s Surface, tipX, tipY, ux, uy float64, color string) {
	tx := int(math.Round(tipX))
	ty := int(math.Round(tipY))

	var tip rune
	switch {
	case math.Abs(ux) >= math.Abs(uy) && ux >= 0:
		tip = '▶'
	case math.Abs(ux) >= math.Abs(uy):
		tip = '◀'
	case uy >= 0:
		tip = '▼'
	default:
		tip = '▲'
	}
	s.Set(tx, ty, tip, color)

	// Flanks perpendicular to the approach direction
	px, py := -uy, ux
	bx := tipX - ux
	by := tipY - uy
	s.Set(int(math.Round(bx+px)), int(math.Round(by+py)), '∙', color)
	s.Set(int(math.Round(bx-px)), int(math.Round(by-py)), '∙', color)
}

func drawNode(s Surface, cam *Camera, node *domain.Node, highlighted bool) {
	p := cam.ToScreen(node.Position)
	cx := int(math.Round(p.X))
	cy := int(math.Round(p.Y))
	r := node.Radius * cam.Zoom
	if r < 1 {
		r = 1
	}

	rx := int(math.Ceil(r))
	ry := int(math.Ceil(r / cellAspect))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			d := math.Hypot(float64(dx), float64(dy)*cellAspect)
			if d <= r {
				s.Set(cx+dx, cy+dy, '█', node.Color)
			} else if highlighted && d <= r+2 {
				s.Set(cx+dx, cy+dy, '░', highlightColor)
			}
		}
	}
}

func drawLabel(s Surface, cam *Camera, node *domain.Node, selected bool) {
	if node.Label == "" {
		return
	}
	p := cam.ToScreen(node.Position)
	r := node.Radius * cam.Zoom
	cx := int(math.Round(p.X))
	cy := int(math.Round(p.Y)) + int(math.Ceil(r/cellAspect)) + 1

	color := labelColor
	if selected {
		color = highlightColor
	}

	runes := []rune(node.Label)
	if len(runes) > 24 {
		runes = append(runes[:23], '…')
	}
	startX := cx - len(runes)/2
	for i, ch := range runes {
		s.Set(startX+i, cy, ch, color)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
