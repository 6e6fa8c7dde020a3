// Package server exposes the pagination engine over HTTP for live preview
// hosts: page presets, editor options, rendered documents and PDF export.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/config"
)

// MaxBodyBytes bounds request bodies for render and export.
const MaxBodyBytes = 10 << 20

const shutdownTimeout = 10 * time.Second

// Engine is the part of *pagedoc.Engine the server drives.
type Engine interface {
	Parse(ctx context.Context, text string, size pagedoc.PageSize) (*pagedoc.Document, error)
	Export(ctx context.Context, doc *pagedoc.Document, opts pagedoc.ExportOptions) (*pagedoc.ExportResult, error)
}

// Compile-time check.
var _ Engine = (*pagedoc.Engine)(nil)

// Server is the HTTP API for preview hosts.
type Server struct {
	router chi.Router
	engine Engine
	log    *slog.Logger
	cfg    *config.Config
}

// New creates a server. A nil cfg uses config.DefaultConfig.
func New(engine Engine, log *slog.Logger, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		engine: engine,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Get("/editor", s.handleEditor)
		r.Post("/render", s.handleRender)
		r.Post("/export", s.handleExport)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting preview server", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
