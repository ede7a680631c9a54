package domain

// RawGraph is the inbound payload shape produced by the backend graph
// store. Optional fields may be absent; the normalizer substitutes
// defaults rather than rejecting the record.
type RawGraph struct {
	Nodes []RawNode `json:"nodes"`
	Edges []RawEdge `json:"edges"`
}

// RawNode is an unnormalized node record. The first entry in Labels
// determines the category; Type is accepted as a fallback for payloads
// that pre-flatten the label list.
type RawNode struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels,omitempty"`
	Type       string         `json:"type,omitempty"`
	Label      string         `json:"label,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Category returns the raw category string for the node, preferring the
// first label over the flat type field
func (r RawNode) Category() string {
	if len(r.Labels) > 0 {
		return r.Labels[0]
	}
	return r.Type
}

// RawEdge is an unnormalized relationship record
type RawEdge struct {
	ID         string         `json:"id,omitempty"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type,omitempty"`
	Label      string         `json:"label,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}
