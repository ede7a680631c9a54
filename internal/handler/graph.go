package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"threatlens/internal/codec"
	"threatlens/internal/domain"
	"threatlens/internal/service"
	"threatlens/internal/viz"
)

// GraphHandler serves the graph snapshot and everything derived from it
type GraphHandler struct {
	graphs *service.GraphService
	canvas viz.Size

	// fallback supplies a built-in graph while no real data has arrived
	fallback func() domain.RawGraph
}

// NewGraphHandler creates a new graph handler laying out fallback data
// onto the given canvas
func NewGraphHandler(graphs *service.GraphService, canvas viz.Size) *GraphHandler {
	return &GraphHandler{graphs: graphs, canvas: canvas}
}

// SetFallback installs the demo graph served while the snapshot is empty
func (h *GraphHandler) SetFallback(fn func() domain.RawGraph) {
	h.fallback = fn
}

// GraphDataResponse is the payload for GET /api/graph/data
type GraphDataResponse struct {
	Nodes        []domain.Node `json:"nodes"`
	Edges        []domain.Edge `json:"edges"`
	Source       string        `json:"source"`
	DroppedEdges int           `json:"dropped_edges"`
}

// GetGraphData returns the current laid-out snapshot, optionally
// filtered by query parameters. With no data ingested yet it serves the
// built-in demo graph so the dashboard never opens blank.
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, "Invalid filter", err.Error(), http.StatusBadRequest)
		return
	}

	snap, stats, source := h.resolveView(filter)

	writeJSON(w, GraphDataResponse{
		Nodes:        snap.Nodes,
		Edges:        snap.Edges,
		Source:       source,
		DroppedEdges: stats.DroppedEdges,
	}, http.StatusOK)
}

// resolveView picks live data when any snapshot has been applied and
// the demo fallback otherwise. Filters apply to either source.
func (h *GraphHandler) resolveView(f viz.Filter) (*domain.Snapshot, viz.NormalizeStats, string) {
	if len(h.graphs.Snapshot().Nodes) == 0 && h.fallback != nil {
		snap, stats := viz.Normalize(f.Apply(h.fallback()))
		viz.Layout(snap, h.canvas)
		return snap, stats, "demo"
	}

	if filterIsEmpty(f) {
		s := h.graphs.Statistics()
		return h.graphs.Snapshot(), viz.NormalizeStats{DroppedEdges: s.DroppedEdges}, "live"
	}

	snap, stats := h.graphs.View(f)
	return snap, stats, "live"
}

func filterIsEmpty(f viz.Filter) bool {
	return len(f.NodeTypes) == 0 && len(f.EdgeTypes) == 0 &&
		f.Search == "" && f.TimeRange == "" && f.Limit == 0
}

// filterFromQuery builds an inbound filter from request query params.
// List params are comma-separated.
func filterFromQuery(r *http.Request) (viz.Filter, error) {
	q := r.URL.Query()

	f := viz.Filter{
		NodeTypes: splitList(q.Get("node_type")),
		EdgeTypes: splitList(q.Get("edge_type")),
		Search:    strings.TrimSpace(q.Get("search")),
		TimeRange: q.Get("time_range"),
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return f, fmt.Errorf("limit must be a non-negative integer")
		}
		f.Limit = limit
	}

	return f, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetStatistics returns per-type counts for the current snapshot
func (h *GraphHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.graphs.Statistics(), http.StatusOK)
}

// GetNode returns a node with its incident edges and neighbors
func (h *GraphHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, "Node ID required", "", http.StatusBadRequest)
		return
	}

	details, err := h.graphs.NodeDetails(id)
	if err != nil {
		writeError(w, "Node not found", err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, details, http.StatusOK)
}

// GetEdge returns an edge with its endpoint nodes
func (h *GraphHandler) GetEdge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, "Edge ID required", "", http.StatusBadRequest)
		return
	}

	details, err := h.graphs.EdgeDetails(id)
	if err != nil {
		writeError(w, "Edge not found", err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, details, http.StatusOK)
}

// SearchRequest is the body for POST /api/graph/search
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResponse is the reply for POST /api/graph/search
type SearchResponse struct {
	Results []domain.Node `json:"results"`
	Count   int           `json:"count"`
}

// Search returns nodes matching a query string
func (h *GraphHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, "Query required", "", http.StatusBadRequest)
		return
	}

	results := h.graphs.Search(req.Query, req.Limit)
	writeJSON(w, SearchResponse{Results: results, Count: len(results)}, http.StatusOK)
}

// IngestResponse reports what an accepted payload produced
type IngestResponse struct {
	Nodes        int `json:"nodes"`
	Edges        int `json:"edges"`
	DroppedEdges int `json:"dropped_edges"`
}

// Ingest accepts a raw graph payload and swaps it in as the current
// snapshot. The format is chosen by the format query param or the
// Content-Type header; JSON is the default.
func (h *GraphHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	importer, err := pickImporter(r)
	if err != nil {
		writeError(w, "Unsupported format", err.Error(), http.StatusUnsupportedMediaType)
		return
	}

	raw, err := importer.Parse(r.Body)
	if err != nil {
		log.Printf("Ingest rejected %s payload: %v", importer.Format(), err)
		writeError(w, "Invalid payload", err.Error(), http.StatusBadRequest)
		return
	}

	stats := h.graphs.ApplySnapshot(*raw)
	snap := h.graphs.Snapshot()

	if stats.DroppedEdges > 0 {
		log.Printf("Ingest dropped %d edges with missing endpoints", stats.DroppedEdges)
	}

	writeJSON(w, IngestResponse{
		Nodes:        len(snap.Nodes),
		Edges:        len(snap.Edges),
		DroppedEdges: stats.DroppedEdges,
	}, http.StatusOK)
}

func pickImporter(r *http.Request) (codec.Importer, error) {
	format := r.URL.Query().Get("format")
	if format == "" {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
				switch mediaType {
				case "application/yaml", "application/x-yaml", "text/yaml":
					format = "yaml"
				case "application/json", "text/json":
					format = "json"
				}
			}
		}
	}

	switch format {
	case "", "json":
		return codec.NewJSONCodec(), nil
	case "yaml":
		return codec.NewYAMLCodec(), nil
	case "falco":
		return codec.NewFalcoCodec(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// ClearGraph discards the current snapshot
func (h *GraphHandler) ClearGraph(w http.ResponseWriter, r *http.Request) {
	h.graphs.Clear()
	writeJSON(w, map[string]string{"status": "cleared"}, http.StatusOK)
}

// ExportJSON streams the current snapshot as a JSON download
func (h *GraphHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=threatlens-graph.json")

	if err := h.graphs.ExportJSON(w); err != nil {
		log.Printf("Failed to export JSON: %v", err)
	}
}

// ExportYAML streams the current snapshot as a YAML download
func (h *GraphHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", "attachment; filename=threatlens-graph.yaml")

	if err := h.graphs.ExportYAML(w); err != nil {
		log.Printf("Failed to export YAML: %v", err)
	}
}

// ClientConfig is the display configuration handed to clients
type ClientConfig struct {
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	ZoomMin      float64 `json:"zoom_min"`
	ZoomMax      float64 `json:"zoom_max"`
}

// ConfigHandler serves the client display configuration
type ConfigHandler struct {
	cfg ClientConfig
}

// NewConfigHandler creates a config handler for the given client config
func NewConfigHandler(cfg ClientConfig) *ConfigHandler {
	if cfg.ZoomMin <= 0 {
		cfg.ZoomMin = viz.DefaultZoomMin
	}
	if cfg.ZoomMax <= 0 {
		cfg.ZoomMax = viz.DefaultZoomMax
	}
	return &ConfigHandler{cfg: cfg}
}

// GetConfig returns camera bounds and canvas dimensions
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cfg, http.StatusOK)
}

// Health reports server liveness
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
