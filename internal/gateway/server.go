// Package gateway exposes the lookup tool set over HTTP: JSON endpoints
// for listing and invoking tools, a websocket feed of invocation events,
// and Prometheus metrics.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/tool"
)

// Server represents the gateway server
type Server struct {
	addr     string
	router   chi.Router
	manager  *tool.Manager
	hub      *Hub
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new gateway server. It installs the invocation
// observer on the manager, so lookup metrics and the websocket feed cover
// every surface sharing that manager.
func NewServer(addr string, manager *tool.Manager, log zerolog.Logger) *Server {
	s := &Server{
		addr:    addr,
		router:  chi.NewRouter(),
		manager: manager,
		hub:     NewHub(log),
		log:     log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The feed is read-only telemetry; any origin may attach.
				return true
			},
		},
	}
	s.setupRoutes()

	manager.SetObserver(func(event tool.InvocationEvent) {
		lookupRequestsTotal.WithLabelValues(event.Tool, event.Outcome).Inc()
		lookupDuration.WithLabelValues(event.Tool).Observe(float64(event.DurationMS) / 1000)
		s.hub.Broadcast(event)
	})

	return s
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("gateway listening")
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.log.Info().Msg("shutting down gateway")
		s.hub.CloseAll()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// Handler returns the configured router, used directly in tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(s.baseLogger, RequestIDMiddleware, RecoveryMiddleware, MetricsMiddleware, LoggingMiddleware)

	s.router.Get("/api/v1/health", s.healthHandler)
	s.router.Get("/api/v1/tools", s.toolsHandler)
	s.router.Post("/api/v1/tools/{name}", s.invokeHandler)
	s.router.Get("/api/v1/ws", s.feedHandler)
	s.router.Handle("/metrics", promhttp.Handler())
}

// baseLogger seeds the request context with the server logger, so the
// downstream middleware can enrich it.
func (s *Server) baseLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(s.log.WithContext(r.Context())))
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// toolDescriptor is the list entry returned by GET /api/v1/tools.
type toolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

func (s *Server) toolsHandler(w http.ResponseWriter, r *http.Request) {
	descriptors := make([]toolDescriptor, 0, s.manager.Len())
	for _, t := range s.manager.All() {
		descriptors = append(descriptors, toolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tools": descriptors})
}

func (s *Server) invokeHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.manager.Get(name); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown tool: " + name})
		return
	}

	args, err := decodeArgs(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.manager.Execute(r.Context(), name, args)
	if err != nil {
		// Transport, malformed-response, and business errors all mean the
		// upstream lookup failed; the gateway itself is healthy.
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	s.hub.Add(id, conn)
	defer s.hub.Remove(id)

	// Keep connection alive; the feed is write-only, so any read error
	// means the client went away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// decodeArgs parses the request body into tool arguments. An empty body
// means no arguments, which the tool reports as missing parameters itself.
func decodeArgs(body io.Reader) (map[string]interface{}, error) {
	args := make(map[string]interface{})
	err := json.NewDecoder(body).Decode(&args)
	if err == nil {
		return args, nil
	}
	if errors.Is(err, io.EOF) {
		return args, nil
	}
	return nil, err
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
