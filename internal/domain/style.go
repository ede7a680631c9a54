package domain

// DashStyle selects the stroke pattern used when drawing an edge
type DashStyle string

const (
	DashSolid  DashStyle = "solid"
	DashDashed DashStyle = "dashed"
	DashDotted DashStyle = "dotted"
)

// NodeStyle carries the visual attributes derived from a node type
type NodeStyle struct {
	Color      string
	BaseRadius float64
}

// EdgeStyle carries the visual attributes derived from an edge type
type EdgeStyle struct {
	Color string
	Dash  DashStyle
}

// Style returns the visual style for a node type. The switch is total:
// unrecognized types get the unknown style rather than a zero value.
func (t NodeType) Style() NodeStyle {
	switch t {
	case NodeTypeHost:
		return NodeStyle{Color: "#3498db", BaseRadius: 18}
	case NodeTypeUser:
		return NodeStyle{Color: "#2ecc71", BaseRadius: 16}
	case NodeTypeProcess:
		return NodeStyle{Color: "#e67e22", BaseRadius: 14}
	case NodeTypeFile:
		return NodeStyle{Color: "#f1c40f", BaseRadius: 12}
	case NodeTypeNetwork:
		return NodeStyle{Color: "#9b59b6", BaseRadius: 14}
	case NodeTypeService:
		return NodeStyle{Color: "#1abc9c", BaseRadius: 16}
	case NodeTypeEvent:
		return NodeStyle{Color: "#e74c3c", BaseRadius: 15}
	default:
		return NodeStyle{Color: "#95a5a6", BaseRadius: 12}
	}
}

// Style returns the visual style for an edge type
func (t EdgeType) Style() EdgeStyle {
	switch t {
	case EdgeTypeAccess:
		return EdgeStyle{Color: "#3498db", Dash: DashSolid}
	case EdgeTypeExecute:
		return EdgeStyle{Color: "#e67e22", Dash: DashDashed}
	case EdgeTypeConnect:
		return EdgeStyle{Color: "#9b59b6", Dash: DashDotted}
	case EdgeTypeModify:
		return EdgeStyle{Color: "#f39c12", Dash: DashDashed}
	case EdgeTypeCreate:
		return EdgeStyle{Color: "#2ecc71", Dash: DashSolid}
	case EdgeTypeDelete:
		return EdgeStyle{Color: "#e74c3c", Dash: DashDotted}
	default:
		return EdgeStyle{Color: "#7f8c8d", Dash: DashSolid}
	}
}
