// Package store defines the persistent backing store for websites, pages and
// templates, with a SQLite implementation and an in-memory mock for tests.
package store

import (
	"context"

	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// Store is the persistence collaborator consumed by the content service and
// the publish workflow. All writes are whole-field, last-write-wins; the
// engine performs no partial JSON patching of page content.
type Store interface {
	GetWebsite(ctx context.Context, id string) (*Website, error)
	GetWebsiteBySlug(ctx context.Context, slug string) (*Website, error)
	GetWebsiteByDomain(ctx context.Context, domain string) (*Website, error)
	ListWebsites(ctx context.Context) ([]*Website, error)
	CreateWebsite(ctx context.Context, w *Website) error
	UpdateWebsite(ctx context.Context, id string, upd WebsiteUpdate) error

	GetPage(ctx context.Context, id string) (*Page, error)
	ListPages(ctx context.Context, websiteID string) ([]*Page, error)
	CreatePage(ctx context.Context, p *Page) error
	UpdatePageContent(ctx context.Context, pageID string, content []section.Section) error
	DeletePages(ctx context.Context, websiteID string) error

	ListTemplates(ctx context.Context, filter TemplateFilter) ([]*Template, error)
	PutTemplate(ctx context.Context, t *Template) error

	GetOwnerProfile(ctx context.Context, ownerID string) (*OwnerProfile, error)
	PutOwnerProfile(ctx context.Context, p *OwnerProfile) error

	Close() error
}

// ErrNotFound is returned when a record doesn't exist.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e ErrNotFound) Error() string {
	return e.Entity + " not found: " + e.ID
}

// IsNotFound returns true if the error is ErrNotFound.
func IsNotFound(err error) bool {
	_, ok := err.(ErrNotFound)
	return ok
}
