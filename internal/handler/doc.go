// Package handler implements the HTTP layer of the ThreatLens API.
//
// GraphHandler serves the laid-out snapshot, per-node and per-edge
// detail lookups, search, ingest, and export. While no payload has been
// ingested it falls back to a built-in demo graph so the dashboard
// never opens blank.
//
// ViewHandler manages saved camera and position arrangements.
//
// Errors are returned as JSON with an {error, details} structure and
// conventional status codes. Middleware provides panic recovery, CORS,
// and request logging with Prometheus metrics.
package handler
