package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"geocache-router/internal/database"
	"geocache-router/internal/distance"
	"geocache-router/internal/geojson"
	"geocache-router/internal/gpx"
	"geocache-router/internal/handlers"
	"geocache-router/internal/route"
	"geocache-router/internal/sqlite"
)

// Server wraps the HTTP server and all dependencies
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	db         database.DataStore
	listener   net.Listener
	addr       string
}

// Config holds server configuration
type Config struct {
	Addr          string // e.g., "127.0.0.1:8080" or "127.0.0.1:0" for random port
	WaypointsFile string // GPX waypoint source
	DBPath        string // empty: default app-dir database
	RoutesDir     string // empty: default app-dir routes directory
}

// New creates and initializes a new server (does not start it)
func New(cfg Config) (*Server, error) {
	log.Printf("Loading waypoints from %s...", cfg.WaypointsFile)
	registry, err := gpx.Load(cfg.WaypointsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load waypoints: %w", err)
	}

	matrix := distance.Build(registry)
	evaluator := route.NewEvaluator(matrix, registry)

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = database.GetDBPath()
		if err != nil {
			return nil, err
		}
	}
	db, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data store: %w", err)
	}

	routesDir := cfg.RoutesDir
	if routesDir == "" {
		routesDir, err = database.GetRoutesDir()
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	writer, err := geojson.NewWriter(routesDir)
	if err != nil {
		db.Close()
		return nil, err
	}

	handler := &handlers.Handler{
		DB:        db,
		Registry:  registry,
		Evaluator: evaluator,
		Writer:    writer,
	}

	mux := setupRoutes(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingMiddleware(corsMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
		db:         db,
		addr:       cfg.Addr,
	}, nil
}

// Start starts the server and returns the actual address (useful for random port)
func (s *Server) Start() (string, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = listener
	actualAddr := listener.Addr().String()
	log.Printf("Starting server on %s", actualAddr)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return actualAddr, nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.db.Close()
}

// setupRoutes configures all HTTP routes
func setupRoutes(handler *handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/health", handler.HandleHealthCheck)

	mux.HandleFunc("/api/v1/waypoints", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.HandleListWaypoints(w, r)
	})

	mux.HandleFunc("/api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.HandleSearch(w, r)
	})

	mux.HandleFunc("/api/v1/runs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.HandleListRuns(w, r)
	})

	mux.HandleFunc("/api/v1/runs/", handler.HandleRunByID)

	mux.HandleFunc("/api/v1/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.HandleGetSettings(w, r)
		case http.MethodPut:
			handler.HandleUpdateSettings(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	return mux
}

// loggingMiddleware logs each request with timing
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[HTTP] %s %s elapsed=%v", r.Method, r.URL.Path, time.Since(start))
	})
}

// corsMiddleware allows cross-origin requests from local tooling
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
