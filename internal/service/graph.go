package service

import (
	"fmt"
	"io"
	"sync"
	"time"

	"threatlens/internal/codec"
	"threatlens/internal/domain"
	"threatlens/internal/metrics"
	"threatlens/internal/viz"
)

// GraphService owns the displayed snapshot and the raw payload it came
// from. Snapshots are replaced wholesale; the newest accepted payload
// wins regardless of arrival order upstream.
type GraphService struct {
	mu        sync.RWMutex
	raw       domain.RawGraph
	snap      *domain.Snapshot
	stats     viz.NormalizeStats
	updatedAt time.Time

	canvas    viz.Size
	layoutCfg viz.LayoutConfig
	eventBus  *EventBus
	metrics   *metrics.Registry
}

// NewGraphService creates a graph service laying out onto the given
// model canvas
func NewGraphService(canvas viz.Size, eventBus *EventBus, reg *metrics.Registry) *GraphService {
	return &GraphService{
		snap:     domain.NewSnapshot(),
		canvas:   canvas,
		eventBus: eventBus,
		metrics:  reg,
	}
}

// SetLayoutConfig overrides the relaxation tunables for subsequent
// layouts. Zero fields keep their defaults.
func (s *GraphService) SetLayoutConfig(cfg viz.LayoutConfig) {
	s.mu.Lock()
	s.layoutCfg = cfg
	s.mu.Unlock()
}

// ApplySnapshot normalizes and lays out a raw payload, then swaps it in
// as the current snapshot
func (s *GraphService) ApplySnapshot(raw domain.RawGraph) viz.NormalizeStats {
	snap, stats := viz.Normalize(raw)

	s.mu.RLock()
	layoutCfg := s.layoutCfg
	s.mu.RUnlock()

	start := time.Now()
	viz.LayoutWithConfig(snap, s.canvas, layoutCfg)
	layoutTime := time.Since(start)

	s.mu.Lock()
	s.raw = raw
	s.snap = snap
	s.stats = stats
	s.updatedAt = time.Now()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordSnapshot(len(snap.Nodes), len(snap.Edges), stats.DroppedEdges, stats.GeneratedNodes, layoutTime)
	}

	s.eventBus.Publish(Event{
		Type: EventSnapshotUpdated,
		Payload: map[string]int{
			"nodes":         len(snap.Nodes),
			"edges":         len(snap.Edges),
			"dropped_edges": stats.DroppedEdges,
		},
	})

	return stats
}

// Snapshot returns the current snapshot. Callers must treat it as
// read-only; it is replaced, never patched.
func (s *GraphService) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// View builds a filtered snapshot from the retained raw payload. The
// current snapshot is untouched: views are per-request derivations.
func (s *GraphService) View(f viz.Filter) (*domain.Snapshot, viz.NormalizeStats) {
	s.mu.RLock()
	raw := s.raw
	layoutCfg := s.layoutCfg
	s.mu.RUnlock()

	snap, stats := viz.Normalize(f.Apply(raw))
	viz.LayoutWithConfig(snap, s.canvas, layoutCfg)
	return snap, stats
}

// Statistics summarizes the current snapshot
type Statistics struct {
	TotalNodes   int            `json:"total_nodes"`
	TotalEdges   int            `json:"total_edges"`
	NodeTypes    map[string]int `json:"node_types"`
	EdgeTypes    map[string]int `json:"edge_types"`
	DroppedEdges int            `json:"dropped_edges"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Statistics returns per-type counts for the current snapshot
func (s *GraphService) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{
		TotalNodes:   len(s.snap.Nodes),
		TotalEdges:   len(s.snap.Edges),
		NodeTypes:    make(map[string]int),
		EdgeTypes:    make(map[string]int),
		DroppedEdges: s.stats.DroppedEdges,
		UpdatedAt:    s.updatedAt,
	}
	for i := range s.snap.Nodes {
		stats.NodeTypes[string(s.snap.Nodes[i].Type)]++
	}
	for i := range s.snap.Edges {
		stats.EdgeTypes[string(s.snap.Edges[i].Type)]++
	}
	return stats
}

// NodeDetails is a node together with its incident edges and neighbors
type NodeDetails struct {
	Node      domain.Node   `json:"node"`
	Edges     []domain.Edge `json:"edges"`
	Neighbors []domain.Node `json:"neighbors"`
}

// NodeDetails returns the node with the given ID plus its incident
// edges and neighbor nodes
func (s *GraphService) NodeDetails(id string) (*NodeDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := s.snap.NodeByID(id)
	if node == nil {
		return nil, fmt.Errorf("node %s not found", id)
	}

	details := &NodeDetails{
		Node:      *node,
		Edges:     make([]domain.Edge, 0),
		Neighbors: make([]domain.Node, 0),
	}

	seen := map[string]bool{id: true}
	for i := range s.snap.Edges {
		edge := &s.snap.Edges[i]
		if edge.SourceID != id && edge.TargetID != id {
			continue
		}
		details.Edges = append(details.Edges, *edge)

		other := edge.TargetID
		if other == id {
			other = edge.SourceID
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		if neighbor := s.snap.NodeByID(other); neighbor != nil {
			details.Neighbors = append(details.Neighbors, *neighbor)
		}
	}

	return details, nil
}

// EdgeDetails is an edge together with its endpoint nodes
type EdgeDetails struct {
	Edge   domain.Edge `json:"edge"`
	Source domain.Node `json:"source"`
	Target domain.Node `json:"target"`
}

// EdgeDetails returns the edge with the given ID and its endpoints
func (s *GraphService) EdgeDetails(id string) (*EdgeDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edge := s.snap.EdgeByID(id)
	if edge == nil {
		return nil, fmt.Errorf("edge %s not found", id)
	}

	source := s.snap.NodeByID(edge.SourceID)
	target := s.snap.NodeByID(edge.TargetID)
	if source == nil || target == nil {
		return nil, fmt.Errorf("edge %s has unresolved endpoints", id)
	}

	return &EdgeDetails{Edge: *edge, Source: *source, Target: *target}, nil
}

// Search returns nodes from the current snapshot matching the query,
// using the same matching rules as the inbound filter
func (s *GraphService) Search(query string, limit int) []domain.Node {
	s.mu.RLock()
	raw := s.raw
	s.mu.RUnlock()

	f := viz.Filter{Search: query, Limit: limit}
	snap, _ := viz.Normalize(f.Apply(raw))
	return snap.Nodes
}

// ExportJSON writes the current snapshot as JSON
func (s *GraphService) ExportJSON(w io.Writer) error {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	return codec.NewJSONCodec().Export(snap, w)
}

// ExportYAML writes the current snapshot as YAML
func (s *GraphService) ExportYAML(w io.Writer) error {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	return codec.NewYAMLCodec().Export(snap, w)
}

// Clear replaces the current snapshot with an empty one
func (s *GraphService) Clear() {
	s.mu.Lock()
	s.raw = domain.RawGraph{}
	s.snap = domain.NewSnapshot()
	s.stats = viz.NormalizeStats{}
	s.updatedAt = time.Now()
	s.mu.Unlock()

	s.eventBus.Publish(Event{
		Type:    EventSnapshotCleared,
		Payload: map[string]string{"action": "cleared"},
	})
}
