package codec

import (
	"fmt"
	"io"

	"threatlens/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlGraph represents the YAML structure for graph payloads
type yamlGraph struct {
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

type yamlNode struct {
	ID         string         `yaml:"id,omitempty"`
	Labels     []string       `yaml:"labels,omitempty"`
	Type       string         `yaml:"type,omitempty"`
	Label      string         `yaml:"label,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
	X          *float64       `yaml:"x,omitempty"`
	Y          *float64       `yaml:"y,omitempty"`
}

type yamlEdge struct {
	ID         string         `yaml:"id,omitempty"`
	Source     string         `yaml:"source"`
	Target     string         `yaml:"target"`
	Type       string         `yaml:"type,omitempty"`
	Label      string         `yaml:"label,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// Parse imports raw graph data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.RawGraph, error) {
	var yg yamlGraph
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	raw := &domain.RawGraph{}

	for _, yn := range yg.Nodes {
		raw.Nodes = append(raw.Nodes, domain.RawNode{
			ID:         yn.ID,
			Labels:     yn.Labels,
			Type:       yn.Type,
			Label:      yn.Label,
			Properties: yn.Properties,
		})
	}

	for _, ye := range yg.Edges {
		raw.Edges = append(raw.Edges, domain.RawEdge{
			ID:         ye.ID,
			Source:     ye.Source,
			Target:     ye.Target,
			Type:       ye.Type,
			Label:      ye.Label,
			Properties: ye.Properties,
		})
	}

	return raw, nil
}

// Export writes the snapshot to YAML
func (c *YAMLCodec) Export(snap *domain.Snapshot, w io.Writer) error {
	yg := yamlGraph{
		Nodes: make([]yamlNode, 0, len(snap.Nodes)),
		Edges: make([]yamlEdge, 0, len(snap.Edges)),
	}

	for _, node := range snap.Nodes {
		x, y := node.Position.X, node.Position.Y
		yg.Nodes = append(yg.Nodes, yamlNode{
			ID:         node.ID,
			Type:       string(node.Type),
			Label:      node.Label,
			Properties: node.Properties,
			X:          &x,
			Y:          &y,
		})
	}

	for _, edge := range snap.Edges {
		yg.Edges = append(yg.Edges, yamlEdge{
			ID:         edge.ID,
			Source:     edge.SourceID,
			Target:     edge.TargetID,
			Type:       string(edge.Type),
			Label:      edge.Label,
			Properties: edge.Properties,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yg); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
