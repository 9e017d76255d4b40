// Package server exposes Monarch Money data as MCP tools over stdio or
// streamable HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/monarchmcp/monarch-mcp-server/internal/config"
	"github.com/monarchmcp/monarch-mcp-server/internal/logging"
	"github.com/monarchmcp/monarch-mcp-server/pkg/monarch"
	"github.com/pkg/errors"
)

const (
	// Name identifies the server to MCP clients.
	Name = "monarch-money"

	// Version is the server version reported during initialization.
	Version = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

// Server wraps the MCP server with its transports.
type Server struct {
	mcp    *mcp.Server
	logger *logging.Logger
}

// New creates the MCP server and registers all tools.
func New(client *monarch.Client, logger *logging.Logger) *Server {
	impl := &mcp.Implementation{
		Name:    Name,
		Version: Version,
	}

	s := mcp.NewServer(impl, nil)
	registerTools(s, client)

	return &Server{mcp: s, logger: logger}
}

// Run serves MCP over the configured transport until ctx is canceled.
func (s *Server) Run(ctx context.Context, cfg *config.Config) error {
	switch cfg.Transport {
	case config.TransportHTTP:
		return s.serveHTTP(ctx, cfg)
	default:
		s.logger.Info("Serving MCP over stdio")
		return s.mcp.Run(ctx, &mcp.StdioTransport{})
	}
}

// Handler returns the streamable HTTP handler with the MCP endpoint mounted
// at path and a health endpoint at /healthz.
func (s *Server) Handler(path string) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(path, streamable)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return mux
}

func (s *Server) serveHTTP(ctx context.Context, cfg *config.Config) error {
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: s.Handler(cfg.Path),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving MCP over HTTP", "addr", cfg.ListenAddr(), "path", cfg.Path)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	}
}
