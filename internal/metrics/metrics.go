package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Graph pipeline metrics
	SnapshotsIngestedTotal prometheus.Counter
	EdgesDroppedTotal      prometheus.Counter
	NodesGeneratedTotal    prometheus.Counter
	GraphNodes             prometheus.Gauge
	GraphEdges             prometheus.Gauge
	LayoutDuration         prometheus.Histogram

	// Event stream metrics
	StreamClients prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{registry: reg}

	r.HTTPRequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "threatlens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "threatlens_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	r.SnapshotsIngestedTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "threatlens_snapshots_ingested_total",
			Help: "Total number of graph snapshots accepted for display",
		},
	)

	r.EdgesDroppedTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "threatlens_edges_dropped_total",
			Help: "Total number of edges dropped for missing endpoints",
		},
	)

	r.NodesGeneratedTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "threatlens_node_ids_generated_total",
			Help: "Total number of node identifiers synthesized for id-less records",
		},
	)

	r.GraphNodes = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "threatlens_graph_nodes",
			Help: "Node count of the current snapshot",
		},
	)

	r.GraphEdges = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "threatlens_graph_edges",
			Help: "Edge count of the current snapshot",
		},
	)

	r.LayoutDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "threatlens_layout_duration_seconds",
			Help:    "Force layout relaxation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.StreamClients = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "threatlens_stream_clients",
			Help: "Connected event stream clients",
		},
	)

	return r
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordSnapshot records a snapshot swap and the normalization stats
// that produced it
func (r *Registry) RecordSnapshot(nodes, edges, droppedEdges, generatedNodes int, layoutTime time.Duration) {
	r.SnapshotsIngestedTotal.Inc()
	r.EdgesDroppedTotal.Add(float64(droppedEdges))
	r.NodesGeneratedTotal.Add(float64(generatedNodes))
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.LayoutDuration.Observe(layoutTime.Seconds())
}

// PrometheusRegistry returns the underlying registry for the exposition
// handler
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}
