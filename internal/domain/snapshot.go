package domain

// Snapshot is one complete graph state. Snapshots are replaced wholesale
// when new data arrives, never patched incrementally: the node and edge
// slices form a single owned arena that the layout engine mutates by
// index and the renderer borrows read-only.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	index map[string]int
}

// NewSnapshot creates an empty snapshot with initialized collections
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
		index: make(map[string]int),
	}
}

// AddNode appends a node to the arena and indexes it by ID
func (s *Snapshot) AddNode(node Node) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[node.ID] = len(s.Nodes)
	s.Nodes = append(s.Nodes, node)
}

// AddEdge appends an edge to the arena
func (s *Snapshot) AddEdge(edge Edge) {
	s.Edges = append(s.Edges, edge)
}

// Lookup returns the arena index for a node ID
func (s *Snapshot) Lookup(id string) (int, bool) {
	if s.index == nil {
		s.RebuildIndex()
	}
	i, ok := s.index[id]
	return i, ok
}

// NodeByID returns a pointer into the arena, or nil if the ID is unknown.
// The pointer is invalidated when the snapshot is replaced.
func (s *Snapshot) NodeByID(id string) *Node {
	i, ok := s.Lookup(id)
	if !ok {
		return nil
	}
	return &s.Nodes[i]
}

// EdgeByID returns a pointer into the edge arena, or nil
func (s *Snapshot) EdgeByID(id string) *Edge {
	for i := range s.Edges {
		if s.Edges[i].ID == id {
			return &s.Edges[i]
		}
	}
	return nil
}

// RebuildIndex recomputes the ID index after deserialization
func (s *Snapshot) RebuildIndex() {
	s.index = make(map[string]int, len(s.Nodes))
	for i := range s.Nodes {
		s.index[s.Nodes[i].ID] = i
	}
}
