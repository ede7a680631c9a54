package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threatlens/internal/domain"
)

// twoNodeSnapshot places two non-overlapping nodes at known positions
func twoNodeSnapshot() *domain.Snapshot {
	snap := domain.NewSnapshot()

	a := domain.NewNode("a", domain.NodeTypeHost, "A")
	a.Position = domain.Position{X: 100, Y: 100}
	a.Radius = 10
	snap.AddNode(*a)

	b := domain.NewNode("b", domain.NodeTypeUser, "B")
	b.Position = domain.Position{X: 200, Y: 100}
	b.Radius = 10
	snap.AddNode(*b)

	snap.AddEdge(*domain.NewEdge("a", "b", domain.EdgeTypeAccess))
	return snap
}

func TestHoverHitTest(t *testing.T) {
	ctrl := NewController(NewCamera())
	ctrl.SetSnapshot(twoNodeSnapshot())

	t.Run("pointer at node center hovers that node only", func(t *testing.T) {
		ctrl.PointerMove(100, 100)
		assert.Equal(t, "a", ctrl.HoveredID())

		ctrl.PointerMove(200, 100)
		assert.Equal(t, "b", ctrl.HoveredID())
	})

	t.Run("pointer in empty space hovers nothing", func(t *testing.T) {
		ctrl.PointerMove(150, 160)
		assert.Equal(t, "", ctrl.HoveredID())
	})

	t.Run("hit requires distance within radius", func(t *testing.T) {
		ctrl.PointerMove(100, 111) // 11 > radius 10
		assert.Equal(t, "", ctrl.HoveredID())

		ctrl.PointerMove(100, 109)
		assert.Equal(t, "a", ctrl.HoveredID())
	})
}

func TestHitTestSmallestDistanceWins(t *testing.T) {
	snap := domain.NewSnapshot()
	big := domain.NewNode("big", domain.NodeTypeHost, "big")
	big.Position = domain.Position{X: 100, Y: 100}
	big.Radius = 30
	snap.AddNode(*big)

	small := domain.NewNode("small", domain.NodeTypeUser, "small")
	small.Position = domain.Position{X: 115, Y: 100}
	small.Radius = 10
	snap.AddNode(*small)

	ctrl := NewController(NewCamera())
	ctrl.SetSnapshot(snap)

	// Point inside both discs, nearer the small node's center
	node := ctrl.HitTest(113, 100)
	require.NotNil(t, node)
	assert.Equal(t, "small", node.ID)
}

func TestClickSelectsAndFiresCallback(t *testing.T) {
	ctrl := NewController(NewCamera())
	ctrl.SetSnapshot(twoNodeSnapshot())

	var clicked *domain.Node
	ctrl.OnNodeClick = func(n *domain.Node) { clicked = n }

	ctrl.PointerDown(200, 100)
	ctrl.PointerUp(200, 100)

	require.NotNil(t, clicked)
	assert.Equal(t, "b", clicked.ID)
	assert.Equal(t, "b", ctrl.SelectedID())
}

func TestClickEmptySpaceClearsSelection(t *testing.T) {
	ctrl := NewController(NewCamera())
	ctrl.SetSnapshot(twoNodeSnapshot())

	ctrl.PointerDown(100, 100)
	ctrl.PointerUp(100, 100)
	require.Equal(t, "a", ctrl.SelectedID())

	ctrl.PointerDown(400, 400)
	ctrl.PointerUp(400, 400)
	assert.Equal(t, "", ctrl.SelectedID())
}

func TestDragPansCamera(t *testing.T) {
	cam := NewCamera()
	ctrl := NewController(cam)
	ctrl.SetSnapshot(twoNodeSnapshot())

	ctrl.PointerDown(300, 300) // empty space
	ctrl.PointerMove(310, 305)
	ctrl.PointerMove(320, 310)
	ctrl.PointerUp(320, 310)

	assert.Equal(t, 20.0, cam.Pan.X)
	assert.Equal(t, 10.0, cam.Pan.Y)
	assert.Equal(t, "", ctrl.SelectedID(), "a drag is not a click")
}

func TestDragFromNodeDoesNotPanOrSelect(t *testing.T) {
	cam := NewCamera()
	ctrl := NewController(cam)
	ctrl.SetSnapshot(twoNodeSnapshot())

	ctrl.PointerDown(100, 100) // on node a
	ctrl.PointerMove(120, 120)
	ctrl.PointerUp(120, 120)

	assert.Equal(t, domain.Position{}, cam.Pan)
	assert.Equal(t, "", ctrl.SelectedID())
}

func TestWheelZoomConvention(t *testing.T) {
	cam := NewCamera()
	ctrl := NewController(cam)

	// Scroll forward (positive delta) zooms out
	ctrl.Wheel(1)
	assert.InDelta(t, 0.9, cam.Zoom, 1e-9)

	// Scroll backward zooms in
	ctrl.Wheel(-1)
	ctrl.Wheel(-1)
	assert.InDelta(t, 0.9*1.1*1.1, cam.Zoom, 1e-9)

	// Zero delta is a no-op
	zoom := cam.Zoom
	ctrl.Wheel(0)
	assert.Equal(t, zoom, cam.Zoom)
}

func TestHitTestRespectsCamera(t *testing.T) {
	cam := NewCamera()
	ctrl := NewController(cam)
	ctrl.SetSnapshot(twoNodeSnapshot())

	cam.ZoomBy(0.5)
	cam.PanBy(10, 10)

	// Node a's model center (100,100) lands at screen (60,60)
	node := ctrl.HitTest(60, 60)
	require.NotNil(t, node)
	assert.Equal(t, "a", node.ID)
}

func TestEdgeClickCallback(t *testing.T) {
	ctrl := NewController(NewCamera())
	ctrl.SetSnapshot(twoNodeSnapshot())

	var clicked *domain.Edge
	ctrl.OnEdgeClick = func(e *domain.Edge) { clicked = e }

	// Midpoint of the a→b segment, outside both node discs
	ctrl.PointerDown(150, 100)
	ctrl.PointerUp(150, 100)

	require.NotNil(t, clicked)
	assert.Equal(t, "a", clicked.SourceID)
	assert.Equal(t, "b", clicked.TargetID)
}

func TestSnapshotReplacementResetsInteraction(t *testing.T) {
	ctrl := NewController(NewCamera())
	ctrl.SetSnapshot(twoNodeSnapshot())

	ctrl.PointerMove(100, 100)
	ctrl.PointerDown(100, 100)
	ctrl.PointerUp(100, 100)
	require.Equal(t, "a", ctrl.SelectedID())

	ctrl.SetSnapshot(domain.NewSnapshot())
	assert.Equal(t, "", ctrl.SelectedID())
	assert.Equal(t, "", ctrl.HoveredID())

	// Empty snapshot: no hover for any pointer position
	ctrl.PointerMove(100, 100)
	assert.Equal(t, "", ctrl.HoveredID())
}
