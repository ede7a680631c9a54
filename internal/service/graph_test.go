package service

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threatlens/internal/domain"
	"threatlens/internal/metrics"
	"threatlens/internal/viz"
)

var testCanvas = viz.Size{Width: 800, Height: 600}

func testRawGraph() domain.RawGraph {
	return domain.RawGraph{
		Nodes: []domain.RawNode{
			{ID: "host1", Labels: []string{"host"}, Properties: map[string]any{"name": "Web-Server-01"}},
			{ID: "user1", Labels: []string{"user"}, Properties: map[string]any{"name": "admin"}},
			{ID: "proc1", Labels: []string{"process"}, Properties: map[string]any{"name": "nginx", "riskScore": 0.8}},
		},
		Edges: []domain.RawEdge{
			{Source: "user1", Target: "host1", Type: "access"},
			{Source: "user1", Target: "proc1", Type: "execute"},
			{Source: "user1", Target: "ghost", Type: "connect"},
		},
	}
}

func newTestService() *GraphService {
	return NewGraphService(testCanvas, NewEventBus(), metrics.NewRegistry())
}

func TestApplySnapshotSwapsAndLaysOut(t *testing.T) {
	svc := newTestService()

	stats := svc.ApplySnapshot(testRawGraph())
	assert.Equal(t, 1, stats.DroppedEdges)

	snap := svc.Snapshot()
	require.Len(t, snap.Nodes, 3)
	require.Len(t, snap.Edges, 2)

	// Positions are laid out, not left at the placeholder origin region
	for _, node := range snap.Nodes {
		assert.GreaterOrEqual(t, node.Position.X, viz.DefaultMargin)
		assert.LessOrEqual(t, node.Position.X, testCanvas.Width-viz.DefaultMargin)
	}
}

func TestSetLayoutConfigTightensMargin(t *testing.T) {
	svc := newTestService()
	svc.SetLayoutConfig(viz.LayoutConfig{Margin: 120})

	svc.ApplySnapshot(testRawGraph())

	for _, node := range svc.Snapshot().Nodes {
		assert.GreaterOrEqual(t, node.Position.X, 120.0)
		assert.LessOrEqual(t, node.Position.X, testCanvas.Width-120.0)
		assert.GreaterOrEqual(t, node.Position.Y, 120.0)
		assert.LessOrEqual(t, node.Position.Y, testCanvas.Height-120.0)
	}
}

func TestApplySnapshotPublishesEvent(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 4)
	bus.Subscribe(ch)

	svc := NewGraphService(testCanvas, bus, metrics.NewRegistry())
	svc.ApplySnapshot(testRawGraph())

	select {
	case event := <-ch:
		assert.Equal(t, EventSnapshotUpdated, event.Type)
		payload, ok := event.Payload.(map[string]int)
		require.True(t, ok)
		assert.Equal(t, 3, payload["nodes"])
		assert.Equal(t, 1, payload["dropped_edges"])
	default:
		t.Fatal("expected a snapshot_updated event")
	}
}

func TestLastSnapshotWins(t *testing.T) {
	svc := newTestService()

	svc.ApplySnapshot(testRawGraph())
	svc.ApplySnapshot(domain.RawGraph{
		Nodes: []domain.RawNode{{ID: "only", Labels: []string{"service"}}},
	})

	snap := svc.Snapshot()
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, "only", snap.Nodes[0].ID)
}

func TestViewDerivesWithoutReplacing(t *testing.T) {
	svc := newTestService()
	svc.ApplySnapshot(testRawGraph())

	view, _ := svc.View(viz.Filter{NodeTypes: []string{"user", "process"}})
	require.Len(t, view.Nodes, 2)

	// The current snapshot is untouched by per-request views
	assert.Len(t, svc.Snapshot().Nodes, 3)
}

func TestStatistics(t *testing.T) {
	svc := newTestService()
	svc.ApplySnapshot(testRawGraph())

	stats := svc.Statistics()
	assert.Equal(t, 3, stats.TotalNodes)
	assert.Equal(t, 2, stats.TotalEdges)
	assert.Equal(t, 1, stats.NodeTypes["host"])
	assert.Equal(t, 1, stats.NodeTypes["user"])
	assert.Equal(t, 1, stats.EdgeTypes["access"])
	assert.Equal(t, 1, stats.DroppedEdges)
	assert.False(t, stats.UpdatedAt.IsZero())
}

func TestNodeDetails(t *testing.T) {
	svc := newTestService()
	svc.ApplySnapshot(testRawGraph())

	details, err := svc.NodeDetails("user1")
	require.NoError(t, err)
	assert.Equal(t, "user1", details.Node.ID)
	assert.Len(t, details.Edges, 2)
	assert.Len(t, details.Neighbors, 2)

	_, err = svc.NodeDetails("ghost")
	assert.Error(t, err)
}

func TestEdgeDetails(t *testing.T) {
	svc := newTestService()
	svc.ApplySnapshot(testRawGraph())

	snap := svc.Snapshot()
	require.NotEmpty(t, snap.Edges)
	id := snap.Edges[0].ID

	details, err := svc.EdgeDetails(id)
	require.NoError(t, err)
	assert.Equal(t, id, details.Edge.ID)
	assert.Equal(t, details.Edge.SourceID, details.Source.ID)
	assert.Equal(t, details.Edge.TargetID, details.Target.ID)

	_, err = svc.EdgeDetails("missing")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	svc := newTestService()
	svc.ApplySnapshot(testRawGraph())

	hits := svc.Search("nginx", 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "proc1", hits[0].ID)

	assert.Empty(t, svc.Search("no-such-thing", 0))
}

func TestExportJSON(t *testing.T) {
	svc := newTestService()
	svc.ApplySnapshot(testRawGraph())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportJSON(&buf))

	var payload struct {
		Nodes []domain.Node `json:"nodes"`
		Edges []domain.Edge `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Len(t, payload.Nodes, 3)
	assert.Len(t, payload.Edges, 2)
}

func TestClear(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 4)
	bus.Subscribe(ch)

	svc := NewGraphService(testCanvas, bus, metrics.NewRegistry())
	svc.ApplySnapshot(testRawGraph())
	<-ch

	svc.Clear()

	assert.Empty(t, svc.Snapshot().Nodes)
	assert.Zero(t, svc.Statistics().TotalNodes)

	event := <-ch
	assert.Equal(t, EventSnapshotCleared, event.Type)
}
