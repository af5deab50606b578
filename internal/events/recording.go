package events

import (
	"context"
	"sync"
)

// RecordingPublisher captures notifications in memory for tests.
type RecordingPublisher struct {
	mu       sync.Mutex
	Saved    []Notification
	Published []Notification
	Unpublished []Notification
}

func (r *RecordingPublisher) PageSaved(_ context.Context, websiteID, pageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Saved = append(r.Saved, Notification{WebsiteID: websiteID, PageID: pageID})
}

func (r *RecordingPublisher) SitePublished(_ context.Context, websiteID, address string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Published = append(r.Published, Notification{WebsiteID: websiteID, Address: address})
}

func (r *RecordingPublisher) SiteUnpublished(_ context.Context, websiteID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Unpublished = append(r.Unpublished, Notification{WebsiteID: websiteID})
}

func (r *RecordingPublisher) Close() {}
