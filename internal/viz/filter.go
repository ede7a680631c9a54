package viz

import (
	"strings"
	"time"

	"threatlens/internal/domain"
)

// Filter restricts which raw records enter normalization. Zero-valued
// criteria pass everything. Edges whose endpoints are filtered out fall
// away in the normalizer's endpoint check, so the filter only prunes
// edges by their own type.
type Filter struct {
	NodeTypes []string
	EdgeTypes []string
	Search    string
	TimeRange string // "", "1h", "6h", "24h" or "7d"
	Limit     int

	// Now is a test seam for the time-range cutoff; nil means time.Now
	Now func() time.Time
}

// Apply returns a filtered copy of the payload. The input is not
// mutated; record maps are shared, not copied, because normalization
// copies them again.
func (f Filter) Apply(raw domain.RawGraph) domain.RawGraph {
	out := domain.RawGraph{
		Nodes: make([]domain.RawNode, 0, len(raw.Nodes)),
		Edges: make([]domain.RawEdge, 0, len(raw.Edges)),
	}

	cutoff, hasCutoff := f.cutoff()

	for _, rn := range raw.Nodes {
		if !matchType(f.NodeTypes, rn.Category()) {
			continue
		}
		if !f.matchSearch(rn) {
			continue
		}
		if hasCutoff && !matchTime(rn.Properties, cutoff) {
			continue
		}
		out.Nodes = append(out.Nodes, rn)
		if f.Limit > 0 && len(out.Nodes) >= f.Limit {
			break
		}
	}

	for _, re := range raw.Edges {
		if !matchType(f.EdgeTypes, re.Type) {
			continue
		}
		out.Edges = append(out.Edges, re)
	}

	return out
}

func (f Filter) cutoff() (time.Time, bool) {
	var window time.Duration
	switch f.TimeRange {
	case "1h":
		window = time.Hour
	case "6h":
		window = 6 * time.Hour
	case "24h":
		window = 24 * time.Hour
	case "7d":
		window = 7 * 24 * time.Hour
	default:
		return time.Time{}, false
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return now().Add(-window), true
}

func matchType(allowed []string, raw string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(raw)) {
			return true
		}
	}
	return false
}

func (f Filter) matchSearch(rn domain.RawNode) bool {
	query := strings.TrimSpace(f.Search)
	if query == "" {
		return true
	}
	if containsFold(rn.ID, query) || containsFold(rn.Label, query) {
		return true
	}
	for _, key := range []string{"name", "label"} {
		if s, ok := rn.Properties[key].(string); ok && containsFold(s, query) {
			return true
		}
	}
	return false
}

// matchTime keeps nodes whose timestamp property falls inside the
// window. Records without a parseable timestamp pass: a dashboard must
// not go blank because one source omits timestamps.
func matchTime(props map[string]any, cutoff time.Time) bool {
	raw, ok := props["timestamp"].(string)
	if !ok || raw == "" {
		return true
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return true
	}
	return !ts.Before(cutoff)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
