// Package server exposes the roadmap pipeline over an HTTP JSON API.
//
// Routes:
//
//	POST /v1/tree/raw        links and out-of-scope items -> raw tree
//	POST /v1/tree/normalize  full roadmap input -> raw tree, normalized tree, stats
//	POST /v1/backlog/ranks   backlog configuration -> work item type ranks
//	GET  /healthz            liveness
//	GET  /metrics            Prometheus metrics, when a handler is configured
//
// Errors are returned as {"code": "...", "message": "..."} with the status
// derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/epicroadmap/internal/config"
	"github.com/matzehuels/epicroadmap/pkg/backlog"
	"github.com/matzehuels/epicroadmap/pkg/roadmap"
)

// Options configures a [Server].
type Options struct {
	Config config.ServerConfig
	Logger *log.Logger

	// Backlog is used for normalize requests that carry no backlog.
	// Nil means [backlog.Default].
	Backlog *backlog.Configuration

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// Server serves the roadmap API.
type Server struct {
	cfg     config.ServerConfig
	logger  *log.Logger
	runner  *roadmap.Runner
	backlog *backlog.Configuration
	router  chi.Router
}

// New builds a server and its routes. Zero config values fall back to the
// defaults of the config package.
func New(opts Options) *Server {
	cfg := opts.Config
	def := config.Default().Server
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.ShutdownPeriod <= 0 {
		cfg.ShutdownPeriod = def.ShutdownPeriod
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		runner:  roadmap.NewRunner(logger),
		backlog: opts.Backlog,
	}
	s.router = s.routes(opts.Metrics)
	return s
}

func (s *Server) routes(metrics http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(limitBody(s.cfg.MaxBodyBytes))
		r.Post("/tree/raw", s.handleRawTree)
		r.Post("/tree/normalize", s.handleNormalize)
		r.Post("/backlog/ranks", s.handleRanks)
	})

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe listens on the configured address and serves until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully, waiting up to the configured shutdown period for in-flight
// requests. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving roadmap API", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "grace", s.cfg.ShutdownPeriod)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
