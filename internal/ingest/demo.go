package ingest

import (
	"time"

	"threatlens/internal/domain"
)

// DemoGraph returns the built-in fallback graph shown when no upstream
// source has delivered data yet. The scenario is a small intrusion
// picture: an admin session on a web host, the nginx process it
// started, and a suspicious login event tied back to the user.
func DemoGraph() domain.RawGraph {
	now := time.Now().UTC().Format(time.RFC3339)

	return domain.RawGraph{
		Nodes: []domain.RawNode{
			{ID: "host1", Type: "host", Label: "Web-Server-01", Properties: map[string]any{
				"name": "Web-Server-01", "ip": "192.168.1.10", "os": "Ubuntu 20.04",
			}},
			{ID: "host2", Type: "host", Label: "DB-Server-01", Properties: map[string]any{
				"name": "DB-Server-01", "ip": "192.168.1.20", "os": "CentOS 8",
			}},
			{ID: "user1", Type: "user", Label: "admin", Properties: map[string]any{
				"name": "admin", "uid": 1000, "groups": []string{"sudo", "admin"},
			}},
			{ID: "proc1", Type: "process", Label: "nginx", Properties: map[string]any{
				"name": "nginx", "pid": 1234, "cmd": "/usr/sbin/nginx",
			}},
			{ID: "file1", Type: "file", Label: "/etc/shadow", Properties: map[string]any{
				"name": "/etc/shadow", "path": "/etc/shadow",
			}},
			{ID: "net1", Type: "network", Label: "203.0.113.7:443", Properties: map[string]any{
				"name": "203.0.113.7:443", "direction": "outbound",
			}},
			{ID: "svc1", Type: "service", Label: "postgres", Properties: map[string]any{
				"name": "postgres", "port": 5432,
			}},
			{ID: "event1", Type: "event", Label: "Suspicious login", Properties: map[string]any{
				"name": "Suspicious login", "severity": "high", "riskScore": 0.9, "timestamp": now,
			}},
		},
		Edges: []domain.RawEdge{
			{ID: "e1", Source: "user1", Target: "host1", Type: "access", Label: "ssh session"},
			{ID: "e2", Source: "user1", Target: "proc1", Type: "execute", Label: "started process"},
			{ID: "e3", Source: "event1", Target: "user1", Type: "access", Label: "linked user"},
			{ID: "e4", Source: "proc1", Target: "file1", Type: "modify", Label: "wrote file"},
			{ID: "e5", Source: "proc1", Target: "net1", Type: "connect", Label: "opened connection"},
			{ID: "e6", Source: "host1", Target: "svc1", Type: "connect", Label: "queries"},
			{ID: "e7", Source: "svc1", Target: "host2", Type: "access", Label: "runs on"},
		},
	}
}
