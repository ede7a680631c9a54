package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threatlens/internal/metrics"
	"threatlens/internal/service"
	"threatlens/internal/viz"
)

func newGraphService() *service.GraphService {
	return service.NewGraphService(viz.Size{Width: 800, Height: 600}, service.NewEventBus(), metrics.NewRegistry())
}

func TestDemoGraphNormalizesCleanly(t *testing.T) {
	snap, stats := viz.Normalize(DemoGraph())

	assert.Zero(t, stats.DroppedEdges, "the built-in graph must not reference missing nodes")
	assert.Zero(t, stats.GeneratedNodes)
	assert.Len(t, snap.Nodes, 8)
	assert.Len(t, snap.Edges, 7)

	// The demo covers every display category so the legend is complete
	types := map[string]bool{}
	for _, node := range snap.Nodes {
		types[string(node.Type)] = true
	}
	for _, want := range []string{"host", "user", "process", "file", "network", "service", "event"} {
		assert.True(t, types[want], "demo graph missing %s node", want)
	}
}

func TestPollerFetchOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DemoGraph())
	}))
	defer server.Close()

	graphs := newGraphService()
	poller := NewPoller(server.URL, 0, graphs, service.NewEventBus())

	require.NoError(t, poller.FetchOnce(context.Background()))
	assert.Len(t, graphs.Snapshot().Nodes, 8)
}

func TestPollerKeepsSnapshotOnFailure(t *testing.T) {
	fail := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(DemoGraph())
	}))
	defer server.Close()

	graphs := newGraphService()
	graphs.ApplySnapshot(DemoGraph())

	poller := NewPoller(server.URL, 0, graphs, service.NewEventBus())
	err := poller.FetchOnce(context.Background())
	assert.Error(t, err)

	// The previous snapshot stays on screen
	assert.Len(t, graphs.Snapshot().Nodes, 8)

	fail = false
	require.NoError(t, poller.FetchOnce(context.Background()))
}

func TestPollerRejectsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{broken"))
	}))
	defer server.Close()

	poller := NewPoller(server.URL, 0, newGraphService(), service.NewEventBus())
	assert.Error(t, poller.FetchOnce(context.Background()))
}

func TestPollerPublishesSourceErrors(t *testing.T) {
	bus := service.NewEventBus()
	ch := make(chan service.Event, 1)
	bus.Subscribe(ch)

	poller := NewPoller("http://127.0.0.1:1/graph", 0, newGraphService(), bus)
	poller.reportError(assert.AnError)

	event := <-ch
	assert.Equal(t, service.EventSourceError, event.Type)
}

func TestFileSourceLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	data, err := json.Marshal(DemoGraph())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	graphs := newGraphService()
	src := NewFileSource(path, graphs, service.NewEventBus())

	require.NoError(t, src.Load())
	assert.Len(t, graphs.Snapshot().Nodes, 8)
}

func TestFileSourceLoadYAML(t *testing.T) {
	payload := `
nodes:
  - id: a
    labels: [host]
    properties:
      name: edge-gw
  - id: b
    labels: [user]
edges:
  - source: b
    target: a
    type: access
`
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	graphs := newGraphService()
	src := NewFileSource(path, graphs, service.NewEventBus())

	require.NoError(t, src.Load())
	assert.Len(t, graphs.Snapshot().Nodes, 2)
	assert.Len(t, graphs.Snapshot().Edges, 1)
}

func TestFileSourceLoadFalco(t *testing.T) {
	payload := `[{"rule": "Shell spawned", "output": "shell user=root proc=bash", "priority": "WARNING", "hostname": "web-01"}]`
	path := filepath.Join(t.TempDir(), "alerts.falco.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	graphs := newGraphService()
	src := NewFileSource(path, graphs, service.NewEventBus())

	require.NoError(t, src.Load())
	assert.NotEmpty(t, graphs.Snapshot().Nodes)
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent.json"), newGraphService(), service.NewEventBus())
	assert.Error(t, src.Load())
}
