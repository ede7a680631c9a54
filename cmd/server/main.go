package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"threatlens/internal/config"
	"threatlens/internal/handler"
	"threatlens/internal/hub"
	"threatlens/internal/ingest"
	"threatlens/internal/metrics"
	"threatlens/internal/repository/sqlite"
	"threatlens/internal/service"
	"threatlens/internal/viz"
)

func main() {
	configPath := flag.String("config", "", "config file path (overrides search)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting ThreatLens server...")

	cfg, loadedPath, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if loadedPath != "" {
		log.Printf("Config loaded: %s", loadedPath)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	reg := metrics.NewRegistry()
	eventBus := service.NewEventBus()

	sseHub := hub.New(reg)
	go sseHub.Run()

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go sseHub.Forward(eventChan)

	canvas := viz.Size{Width: cfg.Layout.Width, Height: cfg.Layout.Height}
	graphSvc := service.NewGraphService(canvas, eventBus, reg)
	graphSvc.SetLayoutConfig(viz.LayoutConfig{
		Iterations: cfg.Layout.Iterations,
		Margin:     cfg.Layout.Margin,
	})
	viewSvc := service.NewViewService(store, eventBus)

	sourceCtx, sourceCancel := context.WithCancel(context.Background())
	startSource(sourceCtx, cfg, graphSvc, eventBus)

	graphHandler := handler.NewGraphHandler(graphSvc, canvas)
	graphHandler.SetFallback(ingest.DemoGraph)
	viewHandler := handler.NewViewHandler(viewSvc)
	configHandler := handler.NewConfigHandler(handler.ClientConfig{
		CanvasWidth:  cfg.Layout.Width,
		CanvasHeight: cfg.Layout.Height,
		ZoomMin:      cfg.Camera.ZoomMin,
		ZoomMax:      cfg.Camera.ZoomMax,
	})

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/graph/data", graphHandler.GetGraphData)
	mux.HandleFunc("GET /api/graph/statistics", graphHandler.GetStatistics)
	mux.HandleFunc("GET /api/graph/nodes/{id}", graphHandler.GetNode)
	mux.HandleFunc("GET /api/graph/edges/{id}", graphHandler.GetEdge)
	mux.HandleFunc("POST /api/graph/search", graphHandler.Search)
	mux.HandleFunc("DELETE /api/graph", graphHandler.ClearGraph)

	mux.HandleFunc("POST /api/ingest", graphHandler.Ingest)

	mux.HandleFunc("GET /api/export/json", graphHandler.ExportJSON)
	mux.HandleFunc("GET /api/export/yaml", graphHandler.ExportYAML)

	mux.HandleFunc("GET /api/views", viewHandler.ListViews)
	mux.HandleFunc("POST /api/views", viewHandler.SaveView)
	mux.HandleFunc("GET /api/views/{name}", viewHandler.GetView)
	mux.HandleFunc("DELETE /api/views/{name}", viewHandler.DeleteView)

	mux.HandleFunc("GET /api/config", configHandler.GetConfig)
	mux.HandleFunc("GET /api/health", handler.Health)

	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg.PrometheusRegistry(), promhttp.HandlerOpts{}))

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger(reg),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	sourceCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// startSource wires the configured graph source. With no source the
// handler's demo fallback covers the empty snapshot.
func startSource(ctx context.Context, cfg *config.Config, graphs *service.GraphService, bus *service.EventBus) {
	switch {
	case cfg.Source.URL != "":
		log.Printf("Polling %s every %s", cfg.Source.URL, cfg.PollInterval())
		poller := ingest.NewPoller(cfg.Source.URL, cfg.PollInterval(), graphs, bus)
		go poller.Run(ctx)

	case cfg.Source.File != "":
		log.Printf("Watching %s", cfg.Source.File)
		src := ingest.NewFileSource(cfg.Source.File, graphs, bus)
		go func() {
			if err := src.Run(ctx); err != nil {
				log.Printf("File source stopped: %v", err)
			}
		}()

	default:
		log.Println("No source configured; serving the demo graph until data is ingested")
	}
}
