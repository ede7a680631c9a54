package viz

import (
	"fmt"
	"math"

	"threatlens/internal/domain"
)

const (
	// riskRadiusGain scales node radius with risk: radius grows by up
	// to 50% for a riskScore of 1.0.
	riskRadiusGain = 0.5

	// minNodeRadius keeps low-risk nodes visible
	minNodeRadius = 6.0

	// minEdgeWidth is the floor for weight-derived stroke widths
	minEdgeWidth = 1.0
)

// NormalizeStats reports silent repairs performed while normalizing.
// Dropped edges are diagnostics, not errors: the graph stays meaningful
// without them.
type NormalizeStats struct {
	DroppedEdges   int
	GeneratedNodes int
}

// Normalize converts a raw backend payload into a canonical snapshot.
// Malformed records are repaired rather than rejected: missing node IDs
// and labels get deterministic substitutes, unknown categories fall back
// to the unknown style, and edges referencing absent endpoints are
// dropped. Inputs are never mutated.
func Normalize(raw domain.RawGraph) (*domain.Snapshot, NormalizeStats) {
	snap := domain.NewSnapshot()
	var stats NormalizeStats

	for i, rn := range raw.Nodes {
		id := rn.ID
		if id == "" {
			id = domain.GenerateID("node", rn.Category(), rn.Label, fmt.Sprintf("%d", i))
			stats.GeneratedNodes++
		}
		if _, dup := snap.Lookup(id); dup {
			// First record wins; IDs are unique within a snapshot.
			continue
		}

		nodeType := domain.ParseNodeType(rn.Category())
		node := domain.NewNode(id, nodeType, nodeLabel(rn, id))
		if cat := rn.Category(); cat != "" {
			node.RawType = cat
		}
		for k, v := range rn.Properties {
			node.SetProperty(k, v)
		}

		node.RiskScore = clamp01(riskScore(rn.Properties))
		style := nodeType.Style()
		node.Radius = math.Max(minNodeRadius, style.BaseRadius*(1+riskRadiusGain*node.RiskScore))

		// Deterministic placeholder on a golden-angle spiral. The layout
		// engine reseeds before first paint, but the renderer must be
		// able to draw this position as-is.
		node.Position = placeholderPosition(i)

		snap.AddNode(*node)
	}

	for _, re := range raw.Edges {
		if _, ok := snap.Lookup(re.Source); !ok {
			stats.DroppedEdges++
			continue
		}
		if _, ok := snap.Lookup(re.Target); !ok {
			stats.DroppedEdges++
			continue
		}

		edgeType := domain.ParseEdgeType(re.Type)
		edge := domain.NewEdge(re.Source, re.Target, edgeType)
		if re.ID != "" {
			edge.ID = re.ID
		}
		if re.Type != "" {
			edge.RawType = re.Type
		}
		edge.Label = re.Label
		for k, v := range re.Properties {
			edge.SetProperty(k, v)
		}
		edge.Width = math.Max(minEdgeWidth, edgeWeight(re.Properties))

		snap.AddEdge(*edge)
	}

	return snap, stats
}

// nodeLabel resolves display text in the backend's preference order:
// properties.name, properties.label, the record's label field, then a
// generated fallback.
func nodeLabel(rn domain.RawNode, id string) string {
	if name, ok := rn.Properties["name"].(string); ok && name != "" {
		return name
	}
	if label, ok := rn.Properties["label"].(string); ok && label != "" {
		return label
	}
	if rn.Label != "" {
		return rn.Label
	}
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return "node-" + short
}

func riskScore(props map[string]any) float64 {
	for _, key := range []string{"riskScore", "risk_score"} {
		switch v := props[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}

func edgeWeight(props map[string]any) float64 {
	switch v := props["weight"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return minEdgeWidth
}

// placeholderPosition places node i on a golden-angle spiral around the
// origin. Index-derived and reproducible across runs, unlike the random
// fallback it replaces.
func placeholderPosition(i int) domain.Position {
	const goldenAngle = 2.399963229728653
	angle := goldenAngle * float64(i)
	radius := 10 * math.Sqrt(float64(i+1))
	return domain.Position{
		X: radius * math.Cos(angle),
		Y: radius * math.Sin(angle),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
