// Package mcpserver exposes the lookup tool set over the Model Context
// Protocol, so MCP-speaking agent hosts can call the same operations the
// chat agent uses.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/lookup"
	"github.com/onecloudtech/insight/internal/tool"
)

// Server wraps the tool manager and serves it as an MCP server.
type Server struct {
	manager *tool.Manager
	log     zerolog.Logger
	mcp     *server.MCPServer
}

// New builds an MCP server advertising every registered tool.
func New(manager *tool.Manager, version string, log zerolog.Logger) *Server {
	s := &Server{
		manager: manager,
		log:     log,
		mcp:     server.NewMCPServer("insight", version),
	}
	s.registerTools()
	return s
}

// operationCarrier is implemented by tools backed by a catalog operation.
type operationCarrier interface {
	Operation() *lookup.Operation
}

func (s *Server) registerTools() {
	for _, t := range s.manager.All() {
		s.mcp.AddTool(declareTool(t), s.handlerFor(t.Name()))
		s.log.Debug().Str("tool", t.Name()).Msg("registered MCP tool")
	}
}

// declareTool converts a tool into its MCP declaration. Fields that must
// all be present are marked required; any-of alternatives stay optional in
// the schema because JSON Schema required cannot express the alternative,
// and the tool result reports the miss instead.
func declareTool(t tool.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description())}
	if oc, ok := t.(operationCarrier); ok {
		op := oc.Operation()
		required := make(map[string]bool)
		if op.Rule.Kind == lookup.AllOf {
			for _, f := range op.Rule.Fields {
				required[f] = true
			}
		}
		for _, p := range op.Params {
			propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
			if required[p.Name] {
				propOpts = append(propOpts, mcp.Required())
			}
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(t.Name(), opts...)
}

func (s *Server) handlerFor(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := s.manager.Execute(ctx, name, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(encoded)), nil
	}
}

// ServeStdio serves MCP over stdin/stdout until the stream closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// ServeSSE serves MCP over HTTP server-sent events on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sse := server.NewSSEServer(s.mcp, server.WithBaseURL(baseURLFor(addr)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sse.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sse.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("MCP server listening (SSE)")
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.log.Info().Msg("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func baseURLFor(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
