package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threatlens/internal/domain"
)

func laidOutSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	snap, _ := Normalize(rawSecurityGraph())
	Layout(snap, Size{Width: 400, Height: 300})
	return snap
}

func TestRenderDrawsNodes(t *testing.T) {
	snap := laidOutSnapshot(t)
	canvas := NewCanvas(400, 300)

	Render(canvas, snap, NewCamera(), "", "")

	// Each node's center cell carries its fill in the node's color
	for i := range snap.Nodes {
		node := &snap.Nodes[i]
		cell := canvas.At(int(node.Position.X), int(node.Position.Y))
		assert.Equal(t, '█', cell.Ch, "node %s center should be filled", node.ID)
		assert.Equal(t, node.Color, cell.Color)
	}
}

func TestRenderHighlightsSelection(t *testing.T) {
	snap := laidOutSnapshot(t)
	canvas := NewCanvas(400, 300)

	Render(canvas, snap, NewCamera(), "host1", "")

	// The highlight ring sits just outside the disc
	node := snap.NodeByID("host1")
	require.NotNil(t, node)
	found := false
	cx, cy := int(node.Position.X), int(node.Position.Y)
	for dy := -14; dy <= 14 && !found; dy++ {
		for dx := -22; dx <= 22 && !found; dx++ {
			cell := canvas.At(cx+dx, cy+dy)
			if cell.Ch == '░' && cell.Color == highlightColor {
				found = true
			}
		}
	}
	assert.True(t, found, "expected highlight ring cells near selected node")
}

func TestRenderGuards(t *testing.T) {
	snap := laidOutSnapshot(t)

	t.Run("nil surface is a no-op", func(t *testing.T) {
		Render(nil, snap, NewCamera(), "", "")
	})

	t.Run("zero-sized surface is a no-op", func(t *testing.T) {
		Render(NewCanvas(0, 0), snap, NewCamera(), "", "")
	})

	t.Run("nil snapshot clears only", func(t *testing.T) {
		canvas := NewCanvas(10, 10)
		canvas.Set(3, 3, 'x', "#fff")
		Render(canvas, nil, NewCamera(), "", "")
		assert.Equal(t, ' ', canvas.At(3, 3).Ch)
	})

	t.Run("nil camera uses identity view", func(t *testing.T) {
		canvas := NewCanvas(400, 300)
		Render(canvas, snap, nil, "", "")
	})
}

func TestRenderPlaceholderPositions(t *testing.T) {
	// A snapshot straight out of Normalize, before layout, must render
	// without error.
	snap, _ := Normalize(rawSecurityGraph())
	canvas := NewCanvas(60, 30)
	Render(canvas, snap, NewCamera(), "", "")
}

func TestRenderSelfLoop(t *testing.T) {
	raw := domain.RawGraph{
		Nodes: []domain.RawNode{{ID: "a", Labels: []string{"process"}, Properties: map[string]any{"name": "fork-bomb"}}},
		Edges: []domain.RawEdge{{Source: "a", Target: "a", Type: "execute"}},
	}
	snap, _ := Normalize(raw)
	Layout(snap, Size{Width: 60, Height: 40})

	canvas := NewCanvas(60, 40)
	Render(canvas, snap, NewCamera(), "", "")

	// Loop glyph cells carry the edge color somewhere on the canvas
	edgeColor := snap.Edges[0].Color
	found := false
	for y := 0; y < 40 && !found; y++ {
		for x := 0; x < 60 && !found; x++ {
			if canvas.At(x, y).Color == edgeColor {
				found = true
			}
		}
	}
	assert.True(t, found, "self-loop must produce visible geometry")
}

func TestRenderDoesNotMutateState(t *testing.T) {
	snap := laidOutSnapshot(t)
	cam := NewCamera()
	cam.ZoomBy(1.1)
	cam.PanBy(5, 5)

	positions := make([]domain.Position, len(snap.Nodes))
	for i := range snap.Nodes {
		positions[i] = snap.Nodes[i].Position
	}
	zoom, pan := cam.Zoom, cam.Pan

	Render(NewCanvas(400, 300), snap, cam, "host1", "user1")

	for i := range snap.Nodes {
		assert.Equal(t, positions[i], snap.Nodes[i].Position)
	}
	assert.Equal(t, zoom, cam.Zoom)
	assert.Equal(t, pan, cam.Pan)
}

func TestRenderEmptySnapshot(t *testing.T) {
	canvas := NewCanvas(40, 20)
	Render(canvas, domain.NewSnapshot(), NewCamera(), "", "")

	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			assert.Equal(t, ' ', canvas.At(x, y).Ch)
		}
	}
}
