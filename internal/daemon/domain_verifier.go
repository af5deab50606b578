package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

// domainVerifier periodically re-registers every provisioned custom domain.
// Registration is idempotent, so a verify pass heals routing entries that
// were lost on the provisioner side without touching healthy ones.
type domainVerifier struct {
	store       store.Store
	provisioner publish.Provisioner
	logger      *slog.Logger
	scheduler   gocron.Scheduler
}

func newDomainVerifier(st store.Store, prov publish.Provisioner, logger *slog.Logger) (*domainVerifier, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &domainVerifier{store: st, provisioner: prov, logger: logger, scheduler: s}, nil
}

func (v *domainVerifier) start(interval time.Duration) error {
	_, err := v.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(v.verifyAll),
		gocron.WithName("domain-verify"),
	)
	if err != nil {
		return fmt.Errorf("schedule domain verification: %w", err)
	}
	v.scheduler.Start()
	v.logger.Info("domain verifier started", slog.Duration("interval", interval))
	return nil
}

func (v *domainVerifier) stop() {
	if err := v.scheduler.Shutdown(); err != nil {
		v.logger.Error("scheduler shutdown failed", logfields.Error(err))
	}
}

// verifyAll walks all published sites with a custom domain. Failures are
// logged per domain and never abort the pass.
func (v *domainVerifier) verifyAll() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sites, err := v.store.ListWebsites(ctx)
	if err != nil {
		v.logger.Error("domain verification: list websites failed", logfields.Error(err))
		return
	}

	checked := 0
	for _, site := range sites {
		if site.Status != store.StatusPublished || site.Domain == "" {
			continue
		}
		checked++
		if err := v.provisioner.Register(ctx, site.Domain); err != nil {
			v.logger.Warn("domain verification failed",
				logfields.WebsiteID(site.ID),
				logfields.Domain(site.Domain),
				logfields.Error(err))
		}
	}
	v.logger.Debug("domain verification pass complete", slog.Int("checked", checked))
}
