package domain

import "strings"

// EdgeType represents the category of a relationship between entities
type EdgeType string

const (
	EdgeTypeAccess  EdgeType = "access"
	EdgeTypeExecute EdgeType = "execute"
	EdgeTypeConnect EdgeType = "connect"
	EdgeTypeModify  EdgeType = "modify"
	EdgeTypeCreate  EdgeType = "create"
	EdgeTypeDelete  EdgeType = "delete"
	EdgeTypeUnknown EdgeType = "unknown"
)

// ParseEdgeType maps a raw relationship label to a known edge type,
// falling back to EdgeTypeUnknown
func ParseEdgeType(raw string) EdgeType {
	switch EdgeType(strings.ToLower(strings.TrimSpace(raw))) {
	case EdgeTypeAccess:
		return EdgeTypeAccess
	case EdgeTypeExecute:
		return EdgeTypeExecute
	case EdgeTypeConnect:
		return EdgeTypeConnect
	case EdgeTypeModify:
		return EdgeTypeModify
	case EdgeTypeCreate:
		return EdgeTypeCreate
	case EdgeTypeDelete:
		return EdgeTypeDelete
	default:
		return EdgeTypeUnknown
	}
}

// Edge represents a directed relationship between two nodes.
// Self-loops (SourceID == TargetID) are permitted.
type Edge struct {
	ID         string         `json:"id"`
	SourceID   string         `json:"source"`
	TargetID   string         `json:"target"`
	Type       EdgeType       `json:"type"`
	RawType    string         `json:"raw_type,omitempty"`
	Label      string         `json:"label,omitempty"`
	Width      float64        `json:"width"`
	Color      string         `json:"color"`
	Dash       DashStyle      `json:"dash"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewEdge creates an edge between two nodes
func NewEdge(sourceID, targetID string, edgeType EdgeType) *Edge {
	style := edgeType.Style()
	edge := &Edge{
		SourceID:   sourceID,
		TargetID:   targetID,
		Type:       edgeType,
		RawType:    string(edgeType),
		Width:      1,
		Color:      style.Color,
		Dash:       style.Dash,
		Properties: make(map[string]any),
	}
	edge.ID = edge.GenerateID()
	return edge
}

// GenerateID creates a deterministic ID from the edge's endpoints and type.
// Direction is significant: A-access->B and B-access->A are distinct edges.
func (e *Edge) GenerateID() string {
	return GenerateID(e.SourceID, string(e.Type), e.TargetID)
}

// SetProperty sets a property value
func (e *Edge) SetProperty(key string, value any) {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[key] = value
}

// GetProperty gets a property value
func (e *Edge) GetProperty(key string) (any, bool) {
	if e.Properties == nil {
		return nil, false
	}
	val, ok := e.Properties[key]
	return val, ok
}
