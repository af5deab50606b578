package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"git.home.luguber.info/inful/sitebuilder/internal/assets"
	"git.home.luguber.info/inful/sitebuilder/internal/cache"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/daemon"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/server"
	"git.home.luguber.info/inful/sitebuilder/internal/snapshot"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

const starterConfig = `# sitebuilder configuration
server:
  listen_addr: ":8080"
  base_domain: sitebuilder.app

storage:
  database_path: sitebuilder.db
  assets_dir: assets
  snapshot_dir: snapshots

# Uncomment to enable the public render cache and change notifications.
#cache:
#  redis_addr: localhost:6379
#events:
#  nats_url: nats://localhost:4222

logging:
  level: info
  format: text
`

func runInit(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0600); err != nil {
		return fmt.Errorf("write configuration file: %w", err)
	}
	slog.Info("Configuration file created", "path", configPath)
	return nil
}

// runtime bundles the collaborators every command needs.
type runtime struct {
	store     store.Store
	cache     *cache.RenderCache
	assets    assets.Store
	publisher events.Publisher
	recorder  metrics.Recorder
	content   *content.Service
}

func buildRuntime(cfg *config.Config) (*runtime, func(), error) {
	retryPolicy, err := cfg.RetryPolicy()
	if err != nil {
		return nil, nil, err
	}

	st, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	rt := &runtime{store: st, publisher: events.NoopPublisher{}, recorder: metrics.NewPrometheusRecorder(nil)}
	closers := []func(){func() { _ = st.Close() }}

	rt.assets, err = assets.NewFSStore(cfg.Storage.AssetsDir, cfg.Storage.AssetsBaseURL)
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("open asset store: %w", err)
	}

	if cfg.Cache.RedisAddr != "" {
		ttl, terr := cfg.CacheTTL()
		if terr != nil {
			_ = st.Close()
			return nil, nil, terr
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		rt.cache = cache.NewRenderCache(client, cache.WithTTL(ttl))
		closers = append(closers, func() { _ = client.Close() })
	}

	if cfg.Events.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.Events.NATSURL)
		if err != nil {
			// the engine works without notifications; don't refuse to start
			slog.Warn("NATS unavailable, change notifications disabled", "error", err)
		} else {
			rt.publisher = pub
			closers = append(closers, func() { pub.Close() })
		}
	}

	contentOpts := []content.Option{
		content.WithPublisher(rt.publisher),
		content.WithRecorder(rt.recorder),
		content.WithLimits(cfg.PlanLimits()),
		content.WithRetryPolicy(retryPolicy),
	}
	if rt.cache != nil {
		contentOpts = append(contentOpts, content.WithInvalidator(rt.cache))
	}
	rt.content = content.NewService(st, contentOpts...)

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return rt, cleanup, nil
}

func runServe(cfg *config.Config) error {
	rt, cleanup, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srvOpts := []server.Option{
		server.WithRecorder(rt.recorder),
		server.WithAssets(rt.assets),
		server.WithQuota(cfg.PlanLimits()),
	}
	if rt.cache != nil {
		srvOpts = append(srvOpts, server.WithRenderCache(rt.cache))
	}
	srv := server.New(rt.store, rt.content, templates.NewCatalog(rt.store), srvOpts...)

	d, err := daemon.New(cfg, daemon.Options{
		Store:       rt.store,
		Provisioner: publish.NoopProvisioner{},
		Server:      srv,
		Cache:       rt.cache,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return d.Run(ctx)
}

func runRender(cfg *config.Config, pageID, mode, viewport, output string) error {
	rt, cleanup, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	page, err := rt.store.GetPage(ctx, pageID)
	if err != nil {
		return err
	}
	site, err := rt.store.GetWebsite(ctx, page.WebsiteID)
	if err != nil {
		return err
	}
	sections, err := rt.content.EffectiveContent(ctx, pageID)
	if err != nil {
		return err
	}

	html := render.RenderPageHTML(render.Page{
		Title:      page.Title,
		FaviconURL: site.FaviconURL,
		Sections:   sections,
	}, render.Options{Mode: render.Mode(mode), Viewport: render.Viewport(viewport)})

	if output == "" {
		_, err = fmt.Println(html)
		return err
	}
	return os.WriteFile(output, []byte(html), 0600)
}

func runPublish(cfg *config.Config, websiteID, domain string) error {
	rt, cleanup, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	wf := publish.NewWorkflow(rt.store, publish.NoopProvisioner{},
		publish.WithPublisher(rt.publisher), publish.WithRecorder(rt.recorder))

	var site *store.Website
	if domain != "" {
		site, err = wf.PublishCustomDomain(ctx, websiteID, domain)
	} else {
		site, err = wf.PublishSubdomain(ctx, websiteID)
	}
	if err != nil {
		return err
	}

	address := site.Domain
	if address == "" {
		address = site.Slug + "." + cfg.Server.BaseDomain
	}
	slog.Info("Website published", "website_id", site.ID, "address", address)

	if err := recordSnapshot(ctx, cfg, rt, site, address); err != nil {
		// history is an audit trail; the publish already succeeded
		slog.Warn("Publish snapshot failed", "website_id", site.ID, "error", err)
	}
	return nil
}

func recordSnapshot(ctx context.Context, cfg *config.Config, rt *runtime, site *store.Website, address string) error {
	history, err := snapshot.Open(cfg.Storage.SnapshotDir)
	if err != nil {
		return err
	}
	pages, err := rt.store.ListPages(ctx, site.ID)
	if err != nil {
		return err
	}
	rendered := make(map[string]string, len(pages))
	for _, p := range pages {
		slug := p.Slug
		if p.IsHomepage {
			slug = "index"
		}
		rendered[slug] = render.RenderPageHTML(render.Page{
			Title:      p.Title,
			FaviconURL: site.FaviconURL,
			Sections:   p.Content,
		}, render.Options{Mode: render.ModePublic})
	}
	_, err = history.Record(ctx, site.ID, address, rendered)
	return err
}

func runUnpublish(cfg *config.Config, websiteID string) error {
	rt, cleanup, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	wf := publish.NewWorkflow(rt.store, publish.NoopProvisioner{},
		publish.WithPublisher(rt.publisher), publish.WithRecorder(rt.recorder))

	site, err := wf.Unpublish(context.Background(), websiteID)
	if err != nil {
		return err
	}
	slog.Info("Website unpublished", "website_id", site.ID)
	return nil
}
