// Package repository defines the data access interfaces for ThreatLens.
//
// Graph data itself is never persisted: snapshots arrive from upstream
// and are replaced wholesale. What does persist is operator state, the
// saved views that capture a camera and a hand-tuned node arrangement.
// The actual implementation is in the sqlite subpackage.
//
// # SQLite Implementation
//
// The sqlite implementation uses WAL mode for concurrency, stores the
// position map as a JSON column and migrates its schema on startup.
package repository
