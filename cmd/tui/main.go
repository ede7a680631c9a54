package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"threatlens/internal/config"
	"threatlens/internal/ingest"
	"threatlens/internal/metrics"
	"threatlens/internal/service"
	"threatlens/internal/tui"
	"threatlens/internal/viz"
)

func main() {
	configPath := flag.String("config", "", "config file path (overrides search)")
	file := flag.String("file", "", "graph file to load and watch (overrides config)")
	url := flag.String("url", "", "backend graph URL to poll (overrides config)")
	flag.Parse()

	// The alternate screen owns stdout; route logs away from it
	log.SetOutput(io.Discard)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to load config: %v", err)
	}
	if *file != "" {
		cfg.Source.File = *file
		cfg.Source.URL = ""
	}
	if *url != "" {
		cfg.Source.URL = *url
		cfg.Source.File = ""
	}

	eventBus := service.NewEventBus()
	// Lay out in terminal-cell coordinates rather than the web canvas;
	// pan and zoom reach anything that falls outside the window
	canvas := viz.Size{Width: 200, Height: 60}
	graphs := service.NewGraphService(canvas, eventBus, metrics.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case cfg.Source.URL != "":
		poller := ingest.NewPoller(cfg.Source.URL, cfg.PollInterval(), graphs, eventBus)
		go poller.Run(ctx)
	case cfg.Source.File != "":
		src := ingest.NewFileSource(cfg.Source.File, graphs, eventBus)
		go src.Run(ctx)
	default:
		graphs.ApplySnapshot(ingest.DemoGraph())
	}

	p := tea.NewProgram(tui.New(graphs, eventBus), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Error running program: %v", err)
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
