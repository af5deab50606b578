// Package events publishes change notifications for other surfaces of the
// application (inbox, dashboard, other browser tabs). Notifications are
// strictly one-way: an open edit buffer never merges inbound changes.
package events

import (
	"context"
	"time"
)

// Subjects for change notifications.
const (
	SubjectPageSaved       = "sitebuilder.page.saved"
	SubjectSitePublished   = "sitebuilder.site.published"
	SubjectSiteUnpublished = "sitebuilder.site.unpublished"
)

// Notification is the wire payload for all subjects.
type Notification struct {
	WebsiteID string    `json:"websiteId"`
	PageID    string    `json:"pageId,omitempty"`
	Address   string    `json:"address,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher emits change notifications. Publishing is best-effort: failures
// are logged by implementations and never propagate to the operation that
// triggered them.
type Publisher interface {
	PageSaved(ctx context.Context, websiteID, pageID string)
	SitePublished(ctx context.Context, websiteID, address string)
	SiteUnpublished(ctx context.Context, websiteID string)
	Close()
}

// NoopPublisher is used when no message broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PageSaved(context.Context, string, string)     {}
func (NoopPublisher) SitePublished(context.Context, string, string) {}
func (NoopPublisher) SiteUnpublished(context.Context, string)       {}
func (NoopPublisher) Close()                                        {}
