// Package domain defines the canonical graph model shared by the
// visualization engine and the dashboard server: typed nodes and edges,
// the per-snapshot arena, and the styling tables keyed by category.
package domain
