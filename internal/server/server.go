// Package server exposes the scene catalog, the derived rotunda geometry and
// the drag mapper over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cyclorama/internal/catalog"
	"github.com/Faultbox/cyclorama/internal/config"
)

// Server wraps the HTTP server and handlers.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	handlers        *Handlers
	log             *zap.Logger
}

// New creates a server for the given catalog and settings. A nil logger
// disables logging.
func New(store *catalog.Store, cfg config.ServerConfig, viewer config.ViewerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Server{
		addr:            cfg.Addr,
		shutdownTimeout: timeout,
		handlers:        NewHandlers(store, viewer),
		log:             log.Named("server"),
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	h := s.handlers

	mux.HandleFunc("GET /viewer", h.HandleViewer)
	mux.HandleFunc("GET /scenes", h.HandleScenes)
	mux.HandleFunc("GET /scenes/{key}", h.HandleScene)
	mux.HandleFunc("GET /scenes/{key}/geometry", h.HandleGeometry)
	mux.HandleFunc("GET /scenes/{key}/tiles", h.HandleTiles)
	mux.HandleFunc("GET /scenes/{key}/layout", h.HandleLayout)
	mux.HandleFunc("GET /scenes/{key}/camera", h.HandleCamera)
	mux.HandleFunc("POST /scenes/{key}/pick", h.HandlePick)
	mux.HandleFunc("POST /gesture", h.HandleGesture)

	return logRequests(s.log, mux)
}

// Run starts the server and blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.log.Info("shutting down", zap.Duration("timeout", s.shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
