// Package service implements business logic for the ThreatLens server.
//
// This package coordinates between the HTTP handlers and the
// visualization pipeline, owning the current graph snapshot and the
// saved-view store.
//
// # Services
//
// GraphService owns the displayed snapshot. Inbound raw graphs pass
// through filter, normalize and layout before an atomic swap; older
// in-flight payloads lose to the newest one. Read operations
// (statistics, detail lookups, search, export) serve from the current
// snapshot without blocking writers for long.
//
// ViewService persists named camera and position sets so operators can
// return to a hand-tuned arrangement of a large graph.
//
// # Event System
//
// Services publish events via EventBus for real-time updates to
// connected clients via Server-Sent Events (SSE). Event types include
// snapshot swaps, saved-view changes and upstream source errors.
package service
