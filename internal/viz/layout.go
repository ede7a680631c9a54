package viz

import (
	"math"

	"threatlens/internal/domain"
)

const (
	// DefaultIterations is the fixed relaxation pass count
	DefaultIterations = 50

	// DefaultMargin keeps nodes inside the visible working area
	DefaultMargin = 40.0

	repulsionCutoff   = 100.0 // pairs farther apart than this don't repel
	repulsionStrength = 500.0 // k in k/d²
	idealEdgeLength   = 80.0  // edges longer than this attract
	attractionGain    = 0.05
	damping           = 0.1

	seedBaseRadius = 80.0
	seedRadiusStep = 5.0
	seedAngleStep  = 0.35
)

// Size is the layout working area in model units
type Size struct {
	Width  float64
	Height float64
}

// LayoutConfig tunes the relaxation phase. Zero values select defaults.
type LayoutConfig struct {
	Iterations int
	Margin     float64
}

// Layout computes positions for every node in the snapshot, mutating
// Position in place. Runs with default configuration.
func Layout(snap *domain.Snapshot, size Size) {
	LayoutWithConfig(snap, size, LayoutConfig{})
}

// LayoutWithConfig seeds nodes on grouped radial sectors and then runs a
// fixed number of relaxation iterations. It is total: empty snapshots
// and disconnected graphs are fine, and every output coordinate is
// finite and inside the margin box.
//
// Determinism: seeding depends only on input order; relaxation updates
// nodes in index order against current positions, so identical input
// yields identical output bit for bit.
func LayoutWithConfig(snap *domain.Snapshot, size Size, cfg LayoutConfig) {
	if snap == nil || len(snap.Nodes) == 0 {
		return
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.Margin == 0 {
		cfg.Margin = DefaultMargin
	}
	// A margin that doesn't fit the canvas collapses to the center line
	// rather than inverting the clamp range.
	if 2*cfg.Margin > size.Width {
		cfg.Margin = size.Width / 2
	}
	if 2*cfg.Margin > size.Height {
		cfg.Margin = math.Min(cfg.Margin, size.Height/2)
	}

	seed(snap, size, cfg.Margin)
	relax(snap, size, cfg)
}

// seed assigns each node-type group an angular sector of the circle
// around the canvas center. Within a group, members walk outward
// (radius grows per member) and around (small angular increment), so
// dense groups stay readable before any physics runs.
func seed(snap *domain.Snapshot, size Size, margin float64) {
	nodes := snap.Nodes
	center := domain.Position{X: size.Width / 2, Y: size.Height / 2}

	if len(nodes) == 1 {
		nodes[0].Position = center
		return
	}

	// Group membership in order of first appearance keeps seeding a pure
	// function of input order.
	var groupOrder []domain.NodeType
	members := make(map[domain.NodeType][]int)
	for i := range nodes {
		t := nodes[i].Type
		if _, seen := members[t]; !seen {
			groupOrder = append(groupOrder, t)
		}
		members[t] = append(members[t], i)
	}

	sector := 2 * math.Pi / float64(len(groupOrder))
	for gi, t := range groupOrder {
		base := sector * float64(gi)
		for mi, idx := range members[t] {
			angle := base + seedAngleStep*float64(mi)
			radius := seedBaseRadius + seedRadiusStep*float64(mi)
			nodes[idx].Position = domain.Position{
				X: clampRange(center.X+radius*math.Cos(angle), margin, size.Width-margin),
				Y: clampRange(center.Y+radius*math.Sin(angle), margin, size.Height-margin),
			}
		}
	}
}

// relax applies pairwise repulsion and edge attraction for a fixed
// iteration count. O(n²) per iteration; n is tens to low hundreds of
// security-graph entities, so this stays well inside a frame budget.
func relax(snap *domain.Snapshot, size Size, cfg LayoutConfig) {
	nodes := snap.Nodes

	// Incident-edge adjacency, built once
	adjacent := make([][]int, len(nodes))
	for _, e := range snap.Edges {
		si, ok1 := snap.Lookup(e.SourceID)
		ti, ok2 := snap.Lookup(e.TargetID)
		if !ok1 || !ok2 || si == ti {
			// Self-loops exert no spring force
			continue
		}
		adjacent[si] = append(adjacent[si], ti)
		adjacent[ti] = append(adjacent[ti], si)
	}

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range nodes {
			var fx, fy float64

			// Repulsion against every other node inside the cutoff
			for j := range nodes {
				if j == i {
					continue
				}
				dx := nodes[i].Position.X - nodes[j].Position.X
				dy := nodes[i].Position.Y - nodes[j].Position.Y
				d2 := dx*dx + dy*dy
				if d2 < 1e-9 {
					// Coincident pair: nudge along x. The sequential
					// update separates them on the next pass.
					fx += repulsionStrength
					continue
				}
				d := math.Sqrt(d2)
				if d < repulsionCutoff {
					f := repulsionStrength / d2
					fx += dx / d * f
					fy += dy / d * f
				}
			}

			// Attraction along incident edges longer than ideal
			for _, j := range adjacent[i] {
				dx := nodes[j].Position.X - nodes[i].Position.X
				dy := nodes[j].Position.Y - nodes[i].Position.Y
				d := math.Hypot(dx, dy)
				if d > idealEdgeLength {
					f := attractionGain * (d - idealEdgeLength)
					fx += dx / d * f
					fy += dy / d * f
				}
			}

			nodes[i].Position.X = clampRange(nodes[i].Position.X+fx*damping, cfg.Margin, size.Width-cfg.Margin)
			nodes[i].Position.Y = clampRange(nodes[i].Position.Y+fy*damping, cfg.Margin, size.Height-cfg.Margin)
		}
	}
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
