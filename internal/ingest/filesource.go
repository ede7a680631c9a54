package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"threatlens/internal/codec"
	"threatlens/internal/service"
	"threatlens/internal/watcher"
)

// FileSource ingests a graph from a local file and re-ingests on every
// change. The format is chosen by extension: .yaml/.yml, .falco.json
// for Falco alert dumps, anything else is treated as a raw graph JSON.
type FileSource struct {
	path     string
	graphs   *service.GraphService
	eventBus *service.EventBus
}

// NewFileSource creates a file-backed graph source
func NewFileSource(path string, graphs *service.GraphService, eventBus *service.EventBus) *FileSource {
	return &FileSource{path: path, graphs: graphs, eventBus: eventBus}
}

// Run loads the file once, then watches it until the context is
// cancelled
func (f *FileSource) Run(ctx context.Context) error {
	if err := f.Load(); err != nil {
		f.reportError(err)
	}

	w := watcher.New(f.path, func() {
		if err := f.Load(); err != nil {
			f.reportError(err)
		}
	})

	err := w.Watch(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

// Load reads and applies the file as the current snapshot
func (f *FileSource) Load() error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("failed to open graph source: %w", err)
	}
	defer file.Close()

	importer := f.importer()
	raw, err := importer.Parse(file)
	if err != nil {
		return fmt.Errorf("failed to parse %s source: %w", importer.Format(), err)
	}

	stats := f.graphs.ApplySnapshot(*raw)
	log.Printf("loaded %s: %d nodes, %d edges (%d edges dropped)",
		f.path, len(raw.Nodes), len(raw.Edges), stats.DroppedEdges)

	return nil
}

func (f *FileSource) importer() codec.Importer {
	name := strings.ToLower(filepath.Base(f.path))
	switch {
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return codec.NewYAMLCodec()
	case strings.HasSuffix(name, ".falco.json"):
		return codec.NewFalcoCodec()
	default:
		return codec.NewJSONCodec()
	}
}

func (f *FileSource) reportError(err error) {
	log.Printf("file source failed: %v", err)
	f.eventBus.Publish(service.Event{
		Type:    service.EventSourceError,
		Payload: map[string]string{"source": f.path, "error": err.Error()},
	})
}
