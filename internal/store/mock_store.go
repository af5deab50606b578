package store

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// MockStore is an in-memory Store for tests. Write failures can be injected
// per operation to exercise the engine's no-partial-state guarantees.
type MockStore struct {
	mu sync.RWMutex

	websites  map[string]*Website
	pages     map[string]*Page
	templates map[string]*Template
	profiles  map[string]*OwnerProfile

	// Injected failures. When non-nil the corresponding write returns the
	// error without touching state.
	FailUpdatePageContent error
	FailUpdateWebsite     error

	// Write counters for assertions. Attempts count failed writes too.
	PageWrites        int
	PageWriteAttempts int
	WebsiteWrites     int
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		websites:  make(map[string]*Website),
		pages:     make(map[string]*Page),
		templates: make(map[string]*Template),
		profiles:  make(map[string]*OwnerProfile),
	}
}

func (m *MockStore) GetWebsite(_ context.Context, id string) (*Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.websites[id]
	if !ok {
		return nil, ErrNotFound{Entity: "website", ID: id}
	}
	cp := *w
	return &cp, nil
}

func (m *MockStore) GetWebsiteBySlug(_ context.Context, slug string) (*Website, error) {
	return m.findWebsite(slug, func(w *Website) string { return w.Slug })
}

func (m *MockStore) GetWebsiteByDomain(_ context.Context, domain string) (*Website, error) {
	return m.findWebsite(domain, func(w *Website) string { return w.Domain })
}

func (m *MockStore) findWebsite(value string, key func(*Website) string) (*Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if value != "" {
		for _, w := range m.websites {
			if key(w) == value {
				cp := *w
				return &cp, nil
			}
		}
	}
	return nil, ErrNotFound{Entity: "website", ID: value}
}

func (m *MockStore) ListWebsites(_ context.Context) ([]*Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Website
	for _, w := range m.websites {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockStore) CreateWebsite(_ context.Context, w *Website) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w.Status == "" {
		w.Status = StatusDraft
	}
	cp := *w
	m.websites[w.ID] = &cp
	return nil
}

func (m *MockStore) UpdateWebsite(_ context.Context, id string, upd WebsiteUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUpdateWebsite != nil {
		return m.FailUpdateWebsite
	}
	w, ok := m.websites[id]
	if !ok {
		return ErrNotFound{Entity: "website", ID: id}
	}
	if upd.Status != "" {
		w.Status = upd.Status
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&w.Slug, upd.Slug)
	apply(&w.Domain, upd.Domain)
	apply(&w.SiteTitle, upd.SiteTitle)
	apply(&w.FaviconURL, upd.FaviconURL)
	apply(&w.ContactEmail, upd.ContactEmail)
	apply(&w.ContactPhone, upd.ContactPhone)
	m.WebsiteWrites++
	return nil
}

func (m *MockStore) GetPage(_ context.Context, id string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pages[id]
	if !ok {
		return nil, ErrNotFound{Entity: "page", ID: id}
	}
	cp := *p
	cp.Content = section.CloneContent(p.Content)
	return &cp, nil
}

func (m *MockStore) ListPages(_ context.Context, websiteID string) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Page
	for _, p := range m.pages {
		if p.WebsiteID != websiteID {
			continue
		}
		cp := *p
		cp.Content = section.CloneContent(p.Content)
		out = append(out, &cp)
	}
	// homepage first, stable enough for tests
	for i, p := range out {
		if p.IsHomepage && i != 0 {
			out[0], out[i] = out[i], out[0]
		}
	}
	return out, nil
}

func (m *MockStore) CreatePage(_ context.Context, p *Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	first := true
	for _, existing := range m.pages {
		if existing.WebsiteID == p.WebsiteID {
			first = false
			break
		}
	}
	if first {
		p.IsHomepage = true
	} else if p.IsHomepage {
		for _, existing := range m.pages {
			if existing.WebsiteID == p.WebsiteID {
				existing.IsHomepage = false
			}
		}
	}

	cp := *p
	cp.Content = section.CloneContent(p.Content)
	m.pages[p.ID] = &cp
	return nil
}

func (m *MockStore) UpdatePageContent(_ context.Context, pageID string, content []section.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PageWriteAttempts++
	if m.FailUpdatePageContent != nil {
		return m.FailUpdatePageContent
	}
	p, ok := m.pages[pageID]
	if !ok {
		return ErrNotFound{Entity: "page", ID: pageID}
	}
	p.Content = section.CloneContent(content)
	m.PageWrites++
	return nil
}

func (m *MockStore) DeletePages(_ context.Context, websiteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.pages {
		if p.WebsiteID == websiteID {
			delete(m.pages, id)
		}
	}
	return nil
}

func (m *MockStore) ListTemplates(_ context.Context, filter TemplateFilter) ([]*Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Template
	for _, t := range m.templates {
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		cp := *t
		cp.Content = section.CloneContent(t.Content)
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockStore) PutTemplate(_ context.Context, t *Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	cp.Content = section.CloneContent(t.Content)
	m.templates[t.ID] = &cp
	return nil
}

func (m *MockStore) GetOwnerProfile(_ context.Context, ownerID string) (*OwnerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[ownerID]
	if !ok {
		return nil, ErrNotFound{Entity: "owner profile", ID: ownerID}
	}
	cp := *p
	return &cp, nil
}

func (m *MockStore) PutOwnerProfile(_ context.Context, p *OwnerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *MockStore) Close() error { return nil }
