package domain

import "testing"

func TestParseEdgeType(t *testing.T) {
	tests := []struct {
		raw  string
		want EdgeType
	}{
		{"access", EdgeTypeAccess},
		{"EXECUTE", EdgeTypeExecute},
		{"connect", EdgeTypeConnect},
		{"modify", EdgeTypeModify},
		{"create", EdgeTypeCreate},
		{"delete", EdgeTypeDelete},
		{"spawns", EdgeTypeUnknown},
		{"", EdgeTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseEdgeType(tt.raw); got != tt.want {
				t.Errorf("ParseEdgeType(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewEdge(t *testing.T) {
	edge := NewEdge("a", "b", EdgeTypeAccess)

	if edge.ID == "" {
		t.Error("expected generated ID")
	}
	if edge.Width != 1 {
		t.Errorf("expected default width 1, got %f", edge.Width)
	}
	if edge.Dash != DashSolid {
		t.Errorf("expected solid dash for access, got %s", edge.Dash)
	}
}

func TestEdgeGenerateIDDirectional(t *testing.T) {
	forward := NewEdge("a", "b", EdgeTypeAccess)
	reverse := NewEdge("b", "a", EdgeTypeAccess)

	if forward.ID == reverse.ID {
		t.Error("expected direction to be significant in edge IDs")
	}

	again := NewEdge("a", "b", EdgeTypeAccess)
	if forward.ID != again.ID {
		t.Error("expected deterministic edge IDs")
	}
}

func TestEdgeStyleTotal(t *testing.T) {
	// Unknown types must still get a usable style
	style := EdgeType("bogus").Style()
	if style.Color == "" {
		t.Error("expected fallback color for unknown edge type")
	}
	if style.Dash == "" {
		t.Error("expected fallback dash for unknown edge type")
	}
}
