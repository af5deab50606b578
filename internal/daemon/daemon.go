// Package daemon runs the builder as a long-lived process: the HTTP server,
// a periodic re-verification of provisioned custom domains, and an optional
// filesystem watcher that drops cached renders when assets change.
package daemon

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitebuilder/internal/cache"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
	"git.home.luguber.info/inful/sitebuilder/internal/server"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

// Daemon owns the serve loop and background jobs.
type Daemon struct {
	cfg         *config.Config
	store       store.Store
	provisioner publish.Provisioner
	server      *server.Server
	cache       *cache.RenderCache // nil disables asset-triggered invalidation
	logger      *slog.Logger
}

// Options collects the collaborators the daemon wires together.
type Options struct {
	Store       store.Store
	Provisioner publish.Provisioner
	Server      *server.Server
	Cache       *cache.RenderCache
	Logger      *slog.Logger
}

// New creates a daemon from pre-built collaborators.
func New(cfg *config.Config, opts Options) (*Daemon, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("daemon requires a store")
	}
	if opts.Server == nil {
		return nil, fmt.Errorf("daemon requires an HTTP server")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{
		cfg:         cfg,
		store:       opts.Store,
		provisioner: opts.Provisioner,
		server:      opts.Server,
		cache:       opts.Cache,
		logger:      logger,
	}, nil
}

// Run serves until the context is canceled. Background jobs stop with the
// context; the HTTP server shuts down gracefully.
func (d *Daemon) Run(ctx context.Context) error {
	if d.provisioner != nil {
		verifier, err := newDomainVerifier(d.store, d.provisioner, d.logger)
		if err != nil {
			return fmt.Errorf("create domain verifier: %w", err)
		}
		interval, err := d.cfg.DomainCheckInterval()
		if err != nil {
			return err
		}
		if err := verifier.start(interval); err != nil {
			return fmt.Errorf("start domain verifier: %w", err)
		}
		defer verifier.stop()
	}

	if d.cfg.Daemon.WatchAssets && d.cache != nil {
		watcher, err := newAssetWatcher(d.cfg.Storage.AssetsDir, d.store, d.cache, d.logger)
		if err != nil {
			return fmt.Errorf("create asset watcher: %w", err)
		}
		watcher.start(ctx)
		defer watcher.stop()
	}

	d.logger.Info("daemon started", slog.String("addr", d.cfg.Server.ListenAddr))
	return d.server.Start(ctx, d.cfg.Server.ListenAddr)
}
