// Package mockbackend serves the canned dataset over HTTP in the live
// envelope convention, so the client stack can rehearse end to end against
// localhost instead of a real investigation gateway.
package mockbackend

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/backend/mock"
)

// failParam forces a business failure: ?__fail=boom answers
// {code:500, msg:"boom"}. The parameter never reaches the generator.
const failParam = "__fail"

type envelope struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// Server is the demo backend.
type Server struct {
	addr   string
	gen    *mock.Generator
	router chi.Router
	log    zerolog.Logger
}

// NewServer builds the demo backend on addr.
func NewServer(addr string, log zerolog.Logger) *Server {
	s := &Server{
		addr: addr,
		gen:  mock.NewGenerator(),
		log:  log,
	}

	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Get("/ai/*", s.handleLookup)
	r.NotFound(s.handleUnknown)
	s.router = r

	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("demo backend listening")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.log.Info().Msg("demo backend shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleLookup serves every catalog path. Failures stay inside the envelope
// with HTTP 200, matching how a real envelope backend reports them; only a
// broken deployment would answer non-2xx.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	if msg, ok := params[failParam]; ok {
		if msg == "" {
			msg = "forced failure"
		}
		s.writeEnvelope(w, envelope{Code: 500, Msg: msg})
		return
	}

	data, err := s.gen.Fetch(r.Context(), r.URL.Path, params)
	if err != nil {
		s.writeEnvelope(w, envelope{Code: 404, Msg: err.Error()})
		return
	}

	s.writeEnvelope(w, envelope{Code: 200, Msg: "success", Data: data})
}

func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	s.writeEnvelope(w, envelope{Code: 404, Msg: "no lookup at " + r.URL.Path})
}

func (s *Server) writeEnvelope(w http.ResponseWriter, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.log.Error().Err(err).Msg("write envelope failed")
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("backend request")
	})
}
