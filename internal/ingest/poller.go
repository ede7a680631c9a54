package ingest

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"threatlens/internal/codec"
	"threatlens/internal/service"
)

const defaultTimeout = 10 * time.Second

// Poller periodically fetches a raw graph from an upstream backend and
// applies it as the current snapshot. A failed fetch keeps the previous
// snapshot on screen and waits for the next tick; there is no retry
// logic beyond the schedule itself.
type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	graphs   *service.GraphService
	eventBus *service.EventBus
}

// NewPoller creates a poller fetching from the given URL
func NewPoller(url string, interval time.Duration, graphs *service.GraphService, eventBus *service.EventBus) *Poller {
	return &Poller{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: defaultTimeout},
		graphs:   graphs,
		eventBus: eventBus,
	}
}

// Run fetches once immediately, then on every tick until the context
// is cancelled
func (p *Poller) Run(ctx context.Context) {
	if err := p.FetchOnce(ctx); err != nil {
		p.reportError(err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.FetchOnce(ctx); err != nil {
				p.reportError(err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// FetchOnce performs a single fetch-and-apply cycle
func (p *Poller) FetchOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	raw, err := codec.NewJSONCodec().Parse(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to decode graph: %w", err)
	}

	stats := p.graphs.ApplySnapshot(*raw)
	if stats.DroppedEdges > 0 {
		log.Printf("snapshot applied with %d dangling edges dropped", stats.DroppedEdges)
	}

	return nil
}

func (p *Poller) reportError(err error) {
	log.Printf("poll failed: %v", err)
	p.eventBus.Publish(service.Event{
		Type:    service.EventSourceError,
		Payload: map[string]string{"source": p.url, "error": err.Error()},
	})
}
