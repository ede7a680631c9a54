// Package viz is the graph visualization engine: it normalizes raw
// backend payloads into the canonical node/edge arena, computes a 2D
// force-directed layout, and renders the result onto a cell surface
// under an interactive camera.
//
// The engine is single-threaded and frame-driven. Per turn of the host
// loop there is exactly one writer (the interaction controller or the
// layout engine) and one reader (the renderer); both run to completion
// before yielding, so no locking happens here. A new snapshot replaces
// the previous arena wholesale: last snapshot wins.
package viz
