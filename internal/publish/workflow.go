// Package publish implements the publish/unpublish workflow: a two-phase
// state machine that binds a site to a generated subdomain or an externally
// provisioned custom domain. For custom domains the external provisioning
// call is attempted first and the local status change is only persisted on
// its success, so a provisioning failure never leaves partial state.
package publish

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

// Target names the address type a publish binds.
type Target string

const (
	TargetSubdomain    Target = "subdomain"
	TargetCustomDomain Target = "custom_domain"
)

// Workflow coordinates domain binding with persistence of site status.
type Workflow struct {
	store       store.Store
	provisioner Provisioner
	publisher   events.Publisher
	recorder    metrics.Recorder
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithPublisher wires a change-notification publisher.
func WithPublisher(p events.Publisher) Option {
	return func(w *Workflow) { w.publisher = p }
}

// WithRecorder wires a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(w *Workflow) { w.recorder = r }
}

// NewWorkflow creates a publish workflow.
func NewWorkflow(st store.Store, prov Provisioner, opts ...Option) *Workflow {
	w := &Workflow{
		store:       st,
		provisioner: prov,
		publisher:   events.NoopPublisher{},
		recorder:    metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// PublishSubdomain publishes a website under a slug derived from its display
// name. Any previously bound custom domain is cleared in the same write.
func (w *Workflow) PublishSubdomain(ctx context.Context, websiteID string) (*store.Website, error) {
	ctx = observability.WithWebsiteID(ctx, websiteID)

	site, err := w.getWebsite(ctx, websiteID)
	if err != nil {
		return nil, err
	}

	slug := Slugify(site.Name)
	if slug == "" {
		// unnameable sites still get a stable address
		slug = Slugify("site " + shortID(websiteID))
	}

	noDomain := ""
	upd := store.WebsiteUpdate{Status: store.StatusPublished, Slug: &slug, Domain: &noDomain}
	w.backfillContact(ctx, site, &upd)

	if err := w.store.UpdateWebsite(ctx, websiteID, upd); err != nil {
		w.recorder.IncPublishResult(string(TargetSubdomain), metrics.ResultFailed)
		return nil, errors.PersistenceWriteFailed(err).WithContext("website_id", websiteID)
	}

	w.recorder.IncPublishResult(string(TargetSubdomain), metrics.ResultSuccess)
	w.publisher.SitePublished(ctx, websiteID, slug)
	observability.InfoContext(ctx, "website published", logfields.Slug(slug),
		logfields.Status(string(store.StatusPublished)))

	return w.getWebsite(ctx, websiteID)
}

// PublishCustomDomain publishes a website under an externally provisioned
// custom domain. The provisioning collaborator is called before anything is
// persisted; if it fails, the website remains in its prior state and the
// error is surfaced with its cause intact.
func (w *Workflow) PublishCustomDomain(ctx context.Context, websiteID, domain string) (*store.Website, error) {
	ctx = observability.WithWebsiteID(ctx, websiteID)

	site, err := w.getWebsite(ctx, websiteID)
	if err != nil {
		return nil, err
	}

	normalized, err := ValidateCustomDomain(domain)
	if err != nil {
		w.recorder.IncPublishResult(string(TargetCustomDomain), metrics.ResultFailed)
		return nil, err
	}

	if err := w.provisioner.Register(ctx, normalized); err != nil {
		w.recorder.IncPublishResult(string(TargetCustomDomain), metrics.ResultFailed)
		return nil, errors.DomainProvisioningFailed(normalized, err)
	}

	noSlug := ""
	upd := store.WebsiteUpdate{Status: store.StatusPublished, Domain: &normalized, Slug: &noSlug}
	w.backfillContact(ctx, site, &upd)

	if err := w.store.UpdateWebsite(ctx, websiteID, upd); err != nil {
		w.recorder.IncPublishResult(string(TargetCustomDomain), metrics.ResultFailed)
		return nil, errors.PersistenceWriteFailed(err).WithContext("website_id", websiteID)
	}

	w.recorder.IncPublishResult(string(TargetCustomDomain), metrics.ResultSuccess)
	w.publisher.SitePublished(ctx, websiteID, normalized)
	observability.InfoContext(ctx, "website published", logfields.Domain(normalized),
		logfields.Status(string(store.StatusPublished)))

	return w.getWebsite(ctx, websiteID)
}

// Unpublish returns a website to draft. A bound custom domain is
// deregistered best-effort: a deregistration failure is logged but never
// blocks the local unpublish.
func (w *Workflow) Unpublish(ctx context.Context, websiteID string) (*store.Website, error) {
	ctx = observability.WithWebsiteID(ctx, websiteID)

	site, err := w.getWebsite(ctx, websiteID)
	if err != nil {
		return nil, err
	}
	if site.Status == store.StatusDraft {
		return site, nil
	}

	if site.Domain != "" {
		if err := w.provisioner.Deregister(ctx, site.Domain); err != nil {
			observability.WarnContext(ctx, "domain deregistration failed, continuing unpublish",
				logfields.Domain(site.Domain), logfields.Error(err))
		}
	}

	empty := ""
	upd := store.WebsiteUpdate{Status: store.StatusDraft, Slug: &empty, Domain: &empty}
	if err := w.store.UpdateWebsite(ctx, websiteID, upd); err != nil {
		return nil, errors.PersistenceWriteFailed(err).WithContext("website_id", websiteID)
	}

	w.publisher.SiteUnpublished(ctx, websiteID)
	observability.InfoContext(ctx, "website unpublished",
		logfields.Status(string(store.StatusDraft)))

	return w.getWebsite(ctx, websiteID)
}

func (w *Workflow) getWebsite(ctx context.Context, websiteID string) (*store.Website, error) {
	site, err := w.store.GetWebsite(ctx, websiteID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errors.NotFound("website", websiteID)
		}
		return nil, errors.Wrap(err, errors.CategoryStorage, errors.SeverityError, "load website")
	}
	return site, nil
}

// backfillContact copies missing contact channels from the owner's account
// profile into the pending update, so they land in the same persistence
// write as the status change.
func (w *Workflow) backfillContact(ctx context.Context, site *store.Website, upd *store.WebsiteUpdate) {
	if site.ContactEmail != "" && site.ContactPhone != "" {
		return
	}
	profile, err := w.store.GetOwnerProfile(ctx, site.OwnerID)
	if err != nil {
		observability.DebugContext(ctx, "owner profile unavailable, skipping contact backfill",
			slog.String("owner_id", site.OwnerID), logfields.Error(err))
		return
	}
	if site.ContactEmail == "" && profile.Email != "" {
		upd.ContactEmail = &profile.Email
	}
	if site.ContactPhone == "" && profile.Phone != "" {
		upd.ContactPhone = &profile.Phone
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
