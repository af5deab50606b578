package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitebuilder/internal/cache"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

// assetWatcher invalidates cached public renders when asset files change, so
// an image replaced on disk shows up without waiting for the cache TTL.
// Events are debounced; one flush invalidates every page.
type assetWatcher struct {
	dir     string
	store   store.Store
	cache   *cache.RenderCache
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	debounce time.Duration
	stopChan chan struct{}
}

func newAssetWatcher(dir string, st store.Store, rc *cache.RenderCache, logger *slog.Logger) (*assetWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("resolve assets directory: %w", err)
	}
	if err := watcher.Add(absDir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch assets directory %s: %w", absDir, err)
	}
	return &assetWatcher{
		dir:      absDir,
		store:    st,
		cache:    rc,
		logger:   logger,
		watcher:  watcher,
		debounce: 2 * time.Second,
		stopChan: make(chan struct{}),
	}, nil
}

func (aw *assetWatcher) start(ctx context.Context) {
	aw.logger.Info("asset watcher started", slog.String("dir", aw.dir))
	go aw.watchLoop(ctx)
}

func (aw *assetWatcher) stop() {
	close(aw.stopChan)
	if err := aw.watcher.Close(); err != nil {
		aw.logger.Error("closing asset watcher failed", logfields.Error(err))
	}
}

func (aw *assetWatcher) watchLoop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-aw.stopChan:
			return
		case event, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(aw.debounce)
				timerC = timer.C
			} else {
				timer.Reset(aw.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			aw.invalidateAll(ctx)
		case err, ok := <-aw.watcher.Errors:
			if !ok {
				return
			}
			aw.logger.Error("asset watcher error", logfields.Error(err))
		}
	}
}

// invalidateAll drops the cached render of every page. Assets are referenced
// by opaque URL from arbitrary sections, so there is no cheaper mapping from
// a changed file to affected pages.
func (aw *assetWatcher) invalidateAll(ctx context.Context) {
	sites, err := aw.store.ListWebsites(ctx)
	if err != nil {
		aw.logger.Error("asset invalidation: list websites failed", logfields.Error(err))
		return
	}
	var pageIDs []string
	for _, site := range sites {
		pages, err := aw.store.ListPages(ctx, site.ID)
		if err != nil {
			aw.logger.Error("asset invalidation: list pages failed",
				logfields.WebsiteID(site.ID), logfields.Error(err))
			continue
		}
		for _, p := range pages {
			pageIDs = append(pageIDs, p.ID)
		}
	}
	if err := aw.cache.InvalidatePages(ctx, pageIDs); err != nil {
		aw.logger.Error("asset invalidation failed", logfields.Error(err))
		return
	}
	aw.logger.Info("cached renders invalidated after asset change",
		slog.Int("pages", len(pageIDs)))
}
