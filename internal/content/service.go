// Package content implements the content tree service and the per-page edit
// buffer that decouples live editing from persistence.
//
// The buffer holds a full replacement content array per page. Presence of an
// entry means the page has unsaved mutations; absence means the persisted
// content tree is authoritative. The buffer is never merged field-by-field:
// every mutation reads the current effective content, computes a new array
// and writes it back wholesale.
package content

import (
	"context"
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/sitebuilder/internal/cache"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
	"git.home.luguber.info/inful/sitebuilder/internal/quota"
	"git.home.luguber.info/inful/sitebuilder/internal/retry"
	"git.home.luguber.info/inful/sitebuilder/internal/section"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

// Service owns the edit buffers for all pages of a builder session. Buffer
// operations are synchronous; Save is the only suspending operation and is
// last-write-wins against the persisted content tree.
type Service struct {
	store       store.Store
	publisher   events.Publisher
	invalidator cache.Invalidator
	recorder    metrics.Recorder
	limits      quota.Limits
	retryPolicy retry.Policy

	mu      sync.Mutex
	buffers map[string][]section.Section
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher wires a change-notification publisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithInvalidator wires a render-cache invalidator.
func WithInvalidator(i cache.Invalidator) Option {
	return func(s *Service) { s.invalidator = i }
}

// WithRecorder wires a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLimits applies plan limits to structural operations. The zero value is
// unlimited.
func WithLimits(l quota.Limits) Option {
	return func(s *Service) { s.limits = l }
}

// WithRetryPolicy retries rejected saves under the policy before surfacing
// the failure. The zero value makes a single attempt.
func WithRetryPolicy(p retry.Policy) Option {
	return func(s *Service) { s.retryPolicy = p }
}

// NewService creates a content service over the given store.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:       st,
		publisher:   events.NoopPublisher{},
		invalidator: cache.NoopInvalidator{},
		recorder:    metrics.NoopRecorder{},
		buffers:     make(map[string][]section.Section),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted content tree for a page. It never creates a
// buffer entry.
func (s *Service) Load(ctx context.Context, pageID string) ([]section.Section, error) {
	p, err := s.store.GetPage(ctx, pageID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errors.NotFound("page", pageID)
		}
		return nil, errors.Wrap(err, errors.CategoryStorage, errors.SeverityError, "load page")
	}
	return section.Normalize(p.Content), nil
}

// EffectiveContent returns the buffer content if the page has unsaved
// mutations, else the persisted content tree. All editor reads go through
// this.
func (s *Service) EffectiveContent(ctx context.Context, pageID string) ([]section.Section, error) {
	s.mu.Lock()
	buf, ok := s.buffers[pageID]
	s.mu.Unlock()
	if ok {
		return section.CloneContent(buf), nil
	}
	return s.Load(ctx, pageID)
}

// Mutate replaces the buffer entry for a page wholesale. Callers compute the
// new array from the current effective content.
func (s *Service) Mutate(pageID string, newContent []section.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers[pageID] = section.CloneContent(newContent)
}

// HasUnsavedChanges reports whether a buffer entry exists for the page.
func (s *Service) HasUnsavedChanges(pageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.buffers[pageID]
	return ok
}

// BufferedPages lists the pages currently carrying unsaved mutations.
func (s *Service) BufferedPages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.buffers))
	for id := range s.buffers {
		ids = append(ids, id)
	}
	return ids
}

// Save persists the buffer's content as the new content tree, then clears
// the buffer entry for that page. On a rejected write the buffer is left
// intact and a retryable error is returned; in-progress edits are never lost
// on failure. Pages without a buffer entry are a no-op.
func (s *Service) Save(ctx context.Context, pageID string) error {
	s.mu.Lock()
	buf, ok := s.buffers[pageID]
	snapshot := section.CloneContent(buf)
	s.mu.Unlock()
	if !ok {
		return nil
	}

	err := s.retryPolicy.Do(ctx, func(ctx context.Context) error {
		if err := s.store.UpdatePageContent(ctx, pageID, snapshot); err != nil {
			return errors.PersistenceWriteFailed(err).WithContext("page_id", pageID)
		}
		return nil
	})
	if err != nil {
		s.recorder.IncSaveResult(metrics.ResultFailed)
		return err
	}
	s.recorder.IncSaveResult(metrics.ResultSuccess)

	s.mu.Lock()
	delete(s.buffers, pageID)
	s.mu.Unlock()

	if err := s.invalidator.InvalidatePage(ctx, pageID); err != nil {
		observability.WarnContext(ctx, "render cache invalidation failed",
			slog.String(logfields.KeyPageID, pageID), logfields.Error(err))
	}

	if p, err := s.store.GetPage(ctx, pageID); err == nil {
		s.publisher.PageSaved(ctx, p.WebsiteID, pageID)
	}

	observability.InfoContext(ctx, "page saved", slog.String(logfields.KeyPageID, pageID),
		slog.Int("sections", len(snapshot)))
	return nil
}

// Discard drops the buffer entry for a page without persisting. Used when
// the operator navigates away from the builder entirely; switching pages
// within the builder keeps other pages' buffers.
func (s *Service) Discard(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buffers, pageID)
}
