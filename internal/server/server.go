// Package server exposes the builder over HTTP: the editor preview, the
// public site viewer, the section palette and monitoring endpoints. Editor
// preview is always rendered fresh; only public pages may be served from
// the render cache.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/sitebuilder/internal/assets"
	"git.home.luguber.info/inful/sitebuilder/internal/cache"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/quota"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// Server serves the editor preview and public viewer.
type Server struct {
	store    store.Store
	content  *content.Service
	catalog  *templates.Catalog
	cache    *cache.RenderCache // nil disables public caching
	assets   assets.Store       // nil disables the asset endpoints
	limits   quota.Limits
	recorder metrics.Recorder
	logger   *slog.Logger

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithRenderCache enables the public render cache.
func WithRenderCache(c *cache.RenderCache) Option {
	return func(s *Server) { s.cache = c }
}

// WithAssets enables asset upload and serving.
func WithAssets(a assets.Store) Option {
	return func(s *Server) { s.assets = a }
}

// WithQuota applies plan limits to uploads.
func WithQuota(l quota.Limits) Option {
	return func(s *Server) { s.limits = l }
}

// WithRecorder wires a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New constructs the HTTP server wiring.
func New(st store.Store, svc *content.Service, catalog *templates.Catalog, opts ...Option) *Server {
	s := &Server{
		store:    st,
		content:  svc,
		catalog:  catalog,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the full route table behind the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/palette", s.handlePalette)
	mux.HandleFunc("GET /api/templates", s.handleTemplates)
	mux.HandleFunc("GET /preview/{pageID}", s.handlePreview)
	if s.assets != nil {
		mux.HandleFunc("POST /api/assets", s.handleAssetUpload)
		mux.HandleFunc("GET /assets/{key}", s.handleAsset)
	}
	mux.HandleFunc("GET /site/{slug}", s.handlePublicSite)
	mux.HandleFunc("GET /site/{slug}/{page}", s.handlePublicSite)
	// custom-domain sites arrive at the root path; the Host header selects
	// the site
	mux.HandleFunc("GET /{$}", s.handleCustomDomainSite)
	mux.HandleFunc("GET /{page}", s.handleCustomDomainSite)
	return chain(s.logger, mux)
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	s.logger.Info("HTTP server started", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
