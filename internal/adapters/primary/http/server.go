package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/simreport/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// RendererFor returns the renderer of an output format
type RendererFor func(format entities.OutputFormat) (ports.ReportRenderer, error)

// Server serves a report over HTTP and pushes reloads to browsers
type Server struct {
	server    *http.Server
	listener  net.Listener
	connMgr   *ConnectionManager
	monitor   *monitoring.Monitor
	store     *ReportStore
	renderers RendererFor
	config    entities.ServerConfig
	logger    *slog.Logger
	mu        sync.RWMutex
	running   bool
}

// NewServer creates a report server. The store's builds are recorded by the
// server's monitor from then on, so create the server before refreshing it.
func NewServer(store *ReportStore, renderers RendererFor, config entities.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	monitor := monitoring.NewMonitor()
	store.monitor = monitor

	return &Server{
		store:     store,
		renderers: renderers,
		connMgr:   NewConnectionManager(logger),
		monitor:   monitor,
		config:    config,
		logger:    logger,
	}
}

// Start binds the configured address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	listener, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Address(), err)
	}

	go s.connMgr.Run(ctx)

	s.listener = listener
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.running = true

	go func() {
		s.logger.Info("HTTP server starting", slog.String("addr", listener.Addr().String()))
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// Addr returns the bound address, or "" before Start
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// NotifyClients sends an update event to all connected clients
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.Broadcast(event)
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Follow rebuilds the report on every log change and tells clients to
// reload. It returns when ctx is done or events is closed.
func (s *Server) Follow(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.handleChange(ctx, event)
		}
	}
}

func (s *Server) handleChange(ctx context.Context, event ports.FileChangeEvent) {
	if event.Type == ports.Deleted {
		s.logger.Warn("Log deleted, serving last report", slog.String("path", event.Path))
		s.notify(ports.EventTypeError, map[string]string{"message": "log file deleted"})
		return
	}

	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("Rebuilding report failed", slog.String("path", event.Path), slog.String("error", err.Error()))
		s.notify(ports.EventTypeError, map[string]string{"message": err.Error()})
		return
	}

	s.logger.Info("Report rebuilt", slog.String("path", event.Path))
	s.notify(ports.EventTypeReload, map[string]string{"message": "report updated"})
}

func (s *Server) notify(eventType string, data interface{}) {
	event := ports.UpdateEvent{Type: eventType, Timestamp: time.Now(), Data: data}
	if err := s.NotifyClients(event); err != nil {
		s.logger.Debug("Event not delivered", slog.String("type", eventType), slog.String("error", err.Error()))
	}
}

// Handler returns the routed handler with CORS and middleware applied
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleReportPage).Methods(http.MethodGet)
	router.HandleFunc("/api/report", s.handleReport).Methods(http.MethodGet)
	router.HandleFunc("/api/report.txt", s.handleReportText).Methods(http.MethodGet)
	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)

	router.Use(
		func(next http.Handler) http.Handler { return createRecoveryMiddleware(next, s.logger) },
		func(next http.Handler) http.Handler { return createLoggingMiddleware(next, s.logger, s.monitor) },
		securityHeadersMiddleware,
	)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	return c.Handler(router)
}

// Ensure Server implements ports.HTTPServer
var _ ports.HTTPServer = (*Server)(nil)
