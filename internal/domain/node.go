package domain

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// NodeType represents the category of a security graph entity
type NodeType string

const (
	NodeTypeHost    NodeType = "host"
	NodeTypeUser    NodeType = "user"
	NodeTypeProcess NodeType = "process"
	NodeTypeFile    NodeType = "file"
	NodeTypeNetwork NodeType = "network"
	NodeTypeService NodeType = "service"
	NodeTypeEvent   NodeType = "event"
	NodeTypeUnknown NodeType = "unknown"
)

// ParseNodeType maps a raw category label to a known node type.
// Unrecognized labels map to NodeTypeUnknown; callers keep the raw
// string on the node so detail views can still show it.
func ParseNodeType(raw string) NodeType {
	switch NodeType(strings.ToLower(strings.TrimSpace(raw))) {
	case NodeTypeHost:
		return NodeTypeHost
	case NodeTypeUser:
		return NodeTypeUser
	case NodeTypeProcess:
		return NodeTypeProcess
	case NodeTypeFile:
		return NodeTypeFile
	case NodeTypeNetwork:
		return NodeTypeNetwork
	case NodeTypeService:
		return NodeTypeService
	case NodeTypeEvent:
		return NodeTypeEvent
	default:
		return NodeTypeUnknown
	}
}

// Position is a mutable 2D coordinate in model space. It is assigned by
// the normalizer, refined in place by the layout engine, and only read
// by the renderer.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents a security entity in the graph
type Node struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       NodeType       `json:"type"`
	RawType    string         `json:"raw_type,omitempty"`
	Position   Position       `json:"position"`
	Radius     float64        `json:"radius"`
	Color      string         `json:"color"`
	RiskScore  float64        `json:"risk_score,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewNode creates a node with initialized properties
func NewNode(id string, nodeType NodeType, label string) *Node {
	style := nodeType.Style()
	return &Node{
		ID:         id,
		Type:       nodeType,
		RawType:    string(nodeType),
		Label:      label,
		Radius:     style.BaseRadius,
		Color:      style.Color,
		Properties: make(map[string]any),
	}
}

// SetProperty sets a property value
func (n *Node) SetProperty(key string, value any) {
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
}

// GetProperty gets a property value
func (n *Node) GetProperty(key string) (any, bool) {
	if n.Properties == nil {
		return nil, false
	}
	val, ok := n.Properties[key]
	return val, ok
}

// GetPropertyString gets a property as a string
func (n *Node) GetPropertyString(key string) string {
	val, ok := n.GetProperty(key)
	if !ok {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// GetPropertyFloat gets a property as a float64. Integer-typed values
// are widened; anything else returns the zero value.
func (n *Node) GetPropertyFloat(key string) (float64, bool) {
	val, ok := n.GetProperty(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// GenerateID creates a deterministic identifier from the given parts.
// Same derivation the backend uses: sha256 of the joined content,
// truncated to 16 hex characters.
func GenerateID(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%x", hash[:8])
}
