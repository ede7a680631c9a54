package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"threatlens/internal/domain"
)

// FalcoCodec imports Falco alert streams. Each alert names a rule and a
// free-form output line; entities are pulled out of the output line and
// become nodes, with edges reconstructing who did what to what.
type FalcoCodec struct{}

// NewFalcoCodec creates a new Falco alert importer
func NewFalcoCodec() *FalcoCodec {
	return &FalcoCodec{}
}

// Format returns the codec format identifier
func (c *FalcoCodec) Format() string {
	return "falco"
}

// falcoAlert is the subset of the Falco alert JSON we consume
type falcoAlert struct {
	Rule     string   `json:"rule"`
	Output   string   `json:"output"`
	Priority string   `json:"priority"`
	Time     string   `json:"time"`
	Tags     []string `json:"tags,omitempty"`
	Hostname string   `json:"hostname,omitempty"`
}

var (
	procPattern = regexp.MustCompile(`(?:proc|proc\.name|command)=(\S+)`)
	filePattern = regexp.MustCompile(`(?:file|fd\.name)=(\S+)`)
	userPattern = regexp.MustCompile(`(?:user|user\.name)=(\S+)`)
	connPattern = regexp.MustCompile(`connection=(\S+)`)
)

// priorityRisk maps Falco alert priorities onto the [0,1] risk scale
var priorityRisk = map[string]float64{
	"EMERGENCY": 1.0,
	"ALERT":     0.9,
	"CRITICAL":  0.8,
	"ERROR":     0.7,
	"WARNING":   0.6,
	"NOTICE":    0.5,
	"INFO":      0.4,
	"DEBUG":     0.3,
}

// Parse imports a JSON array of Falco alerts and derives a raw graph
func (c *FalcoCodec) Parse(r io.Reader) (*domain.RawGraph, error) {
	var alerts []falcoAlert
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&alerts); err != nil {
		return nil, fmt.Errorf("failed to parse Falco alerts: %w", err)
	}

	b := newGraphBuilder()
	for _, alert := range alerts {
		b.addAlert(alert)
	}

	return b.raw, nil
}

// graphBuilder accumulates deduplicated nodes and edges across alerts
type graphBuilder struct {
	raw   *domain.RawGraph
	nodes map[string]int
	edges map[string]bool
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		raw:   &domain.RawGraph{},
		nodes: make(map[string]int),
		edges: make(map[string]bool),
	}
}

func (b *graphBuilder) addAlert(alert falcoAlert) {
	risk := priorityRisk[strings.ToUpper(strings.TrimSpace(alert.Priority))]

	eventID := b.node("event", alert.Rule, map[string]any{
		"riskScore": risk,
		"priority":  alert.Priority,
		"timestamp": alert.Time,
		"output":    alert.Output,
	})

	var hostID, userID, procID string
	if alert.Hostname != "" {
		hostID = b.node("host", alert.Hostname, nil)
	}
	if m := userPattern.FindStringSubmatch(alert.Output); m != nil {
		userID = b.node("user", m[1], nil)
	}
	if m := procPattern.FindStringSubmatch(alert.Output); m != nil {
		procID = b.node("process", m[1], map[string]any{"riskScore": risk})
	}

	// Actor chain: user executes process, process raises the event on
	// the host it runs on.
	if userID != "" && procID != "" {
		b.edge(userID, procID, "execute")
	}
	if procID != "" {
		b.edge(procID, eventID, "create")
		if hostID != "" {
			b.edge(procID, hostID, "access")
		}
	}

	if m := filePattern.FindStringSubmatch(alert.Output); m != nil && procID != "" {
		fileID := b.node("file", m[1], map[string]any{"path": m[1]})
		action := "access"
		lower := strings.ToLower(alert.Output)
		if strings.Contains(lower, "write") || strings.Contains(lower, "modif") {
			action = "modify"
		}
		b.edge(procID, fileID, action)
	}

	if m := connPattern.FindStringSubmatch(alert.Output); m != nil && procID != "" {
		netID := b.node("network", m[1], map[string]any{"endpoint": m[1]})
		b.edge(procID, netID, "connect")
	}
}

// node adds a node once per (category,name) pair and returns its id
func (b *graphBuilder) node(category, name string, props map[string]any) string {
	id := domain.GenerateID(category, name)
	if idx, ok := b.nodes[id]; ok {
		// Later alerts may carry a higher risk for a known entity
		if props != nil {
			existing := b.raw.Nodes[idx].Properties
			if r, ok := props["riskScore"].(float64); ok {
				if prev, _ := existing["riskScore"].(float64); r > prev {
					existing["riskScore"] = r
				}
			}
		}
		return id
	}

	if props == nil {
		props = make(map[string]any)
	}
	props["name"] = name

	b.nodes[id] = len(b.raw.Nodes)
	b.raw.Nodes = append(b.raw.Nodes, domain.RawNode{
		ID:         id,
		Labels:     []string{category},
		Properties: props,
	})
	return id
}

func (b *graphBuilder) edge(source, target, edgeType string) {
	key := source + "|" + edgeType + "|" + target
	if b.edges[key] {
		return
	}
	b.edges[key] = true
	b.raw.Edges = append(b.raw.Edges, domain.RawEdge{
		Source: source,
		Target: target,
		Type:   edgeType,
	})
}
