package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"threatlens/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports raw graph data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.RawGraph, error) {
	var raw domain.RawGraph
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &raw, nil
}

// Export writes the snapshot to JSON, positions and styling included
func (c *JSONCodec) Export(snap *domain.Snapshot, w io.Writer) error {
	payload := struct {
		Nodes []domain.Node `json:"nodes"`
		Edges []domain.Edge `json:"edges"`
	}{
		Nodes: snap.Nodes,
		Edges: snap.Edges,
	}
	if payload.Nodes == nil {
		payload.Nodes = []domain.Node{}
	}
	if payload.Edges == nil {
		payload.Edges = []domain.Edge{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
