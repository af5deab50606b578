package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// SQLiteStore implements Store using SQLite. Page and template content is
// stored as a JSON column; ordering is the array order, there is no
// per-section order field.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-based store.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS websites (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		slug TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL DEFAULT '',
		site_title TEXT NOT NULL DEFAULT '',
		favicon_url TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		website_id TEXT NOT NULL,
		title TEXT NOT NULL,
		slug TEXT NOT NULL DEFAULT '',
		is_homepage INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_pages_website ON pages(website_id);
	CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		thumbnail_url TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '[]'
	);
	CREATE TABLE IF NOT EXISTS owner_profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetWebsite retrieves a website by ID.
func (s *SQLiteStore) GetWebsite(ctx context.Context, id string) (*Website, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var w Website
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, status, slug, domain, site_title, favicon_url, contact_email, contact_phone
		 FROM websites WHERE id = ?`, id,
	).Scan(&w.ID, &w.OwnerID, &w.Name, (*string)(&w.Status), &w.Slug, &w.Domain,
		&w.SiteTitle, &w.FaviconURL, &w.ContactEmail, &w.ContactPhone)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound{Entity: "website", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("query website: %w", err)
	}
	return &w, nil
}

// GetWebsiteBySlug retrieves a published website by its subdomain slug.
func (s *SQLiteStore) GetWebsiteBySlug(ctx context.Context, slug string) (*Website, error) {
	return s.getWebsiteBy(ctx, "slug", slug)
}

// GetWebsiteByDomain retrieves a published website by its custom domain.
func (s *SQLiteStore) GetWebsiteByDomain(ctx context.Context, domain string) (*Website, error) {
	return s.getWebsiteBy(ctx, "domain", domain)
}

func (s *SQLiteStore) getWebsiteBy(ctx context.Context, column, value string) (*Website, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value == "" {
		return nil, ErrNotFound{Entity: "website", ID: value}
	}
	var w Website
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, status, slug, domain, site_title, favicon_url, contact_email, contact_phone
		 FROM websites WHERE `+column+` = ?`, value,
	).Scan(&w.ID, &w.OwnerID, &w.Name, (*string)(&w.Status), &w.Slug, &w.Domain,
		&w.SiteTitle, &w.FaviconURL, &w.ContactEmail, &w.ContactPhone)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound{Entity: "website", ID: value}
	}
	if err != nil {
		return nil, fmt.Errorf("query website: %w", err)
	}
	return &w, nil
}

// ListWebsites returns all websites ordered by name.
func (s *SQLiteStore) ListWebsites(ctx context.Context) ([]*Website, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, name, status, slug, domain, site_title, favicon_url, contact_email, contact_phone
		 FROM websites ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query websites: %w", err)
	}
	defer rows.Close()

	var sites []*Website
	for rows.Next() {
		var w Website
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Name, (*string)(&w.Status), &w.Slug, &w.Domain,
			&w.SiteTitle, &w.FaviconURL, &w.ContactEmail, &w.ContactPhone); err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		sites = append(sites, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return sites, nil
}

// CreateWebsite inserts a new website row.
func (s *SQLiteStore) CreateWebsite(ctx context.Context, w *Website) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.Status == "" {
		w.Status = StatusDraft
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO websites (id, owner_id, name, status, slug, domain, site_title, favicon_url, contact_email, contact_phone)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.OwnerID, w.Name, string(w.Status), w.Slug, w.Domain,
		w.SiteTitle, w.FaviconURL, w.ContactEmail, w.ContactPhone)
	if err != nil {
		return fmt.Errorf("insert website: %w", err)
	}
	return nil
}

// UpdateWebsite applies a partial update in a single write.
func (s *SQLiteStore) UpdateWebsite(ctx context.Context, id string, upd WebsiteUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets := []string{}
	args := []any{}
	if upd.Status != "" {
		sets = append(sets, "status = ?")
		args = append(args, string(upd.Status))
	}
	for col, val := range map[string]*string{
		"slug":          upd.Slug,
		"domain":        upd.Domain,
		"site_title":    upd.SiteTitle,
		"favicon_url":   upd.FaviconURL,
		"contact_email": upd.ContactEmail,
		"contact_phone": upd.ContactPhone,
	} {
		if val != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *val)
		}
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE websites SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update website: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound{Entity: "website", ID: id}
	}
	return nil
}

// GetPage retrieves a page including its content tree.
func (s *SQLiteStore) GetPage(ctx context.Context, id string) (*Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Page
	var homepage int
	var contentJSON []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, website_id, title, slug, is_homepage, content FROM pages WHERE id = ?`, id,
	).Scan(&p.ID, &p.WebsiteID, &p.Title, &p.Slug, &homepage, &contentJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound{Entity: "page", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("query page: %w", err)
	}
	p.IsHomepage = homepage != 0
	if err := json.Unmarshal(contentJSON, &p.Content); err != nil {
		return nil, fmt.Errorf("unmarshal page content: %w", err)
	}
	return &p, nil
}

// ListPages returns all pages of a website, homepage first.
func (s *SQLiteStore) ListPages(ctx context.Context, websiteID string) ([]*Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, website_id, title, slug, is_homepage, content
		 FROM pages WHERE website_id = ? ORDER BY is_homepage DESC, title`, websiteID)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var pages []*Page
	for rows.Next() {
		var p Page
		var homepage int
		var contentJSON []byte
		if err := rows.Scan(&p.ID, &p.WebsiteID, &p.Title, &p.Slug, &homepage, &contentJSON); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		p.IsHomepage = homepage != 0
		if err := json.Unmarshal(contentJSON, &p.Content); err != nil {
			return nil, fmt.Errorf("unmarshal page content: %w", err)
		}
		pages = append(pages, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return pages, nil
}

// CreatePage inserts a page. The first page of a website becomes the
// homepage; creating a later page as homepage demotes the previous one, so
// exactly one homepage per website holds.
func (s *SQLiteStore) CreatePage(ctx context.Context, p *Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pages WHERE website_id = ?", p.WebsiteID).Scan(&count); err != nil {
		return fmt.Errorf("count pages: %w", err)
	}
	if count == 0 {
		p.IsHomepage = true
	} else if p.IsHomepage {
		if _, err := tx.ExecContext(ctx,
			"UPDATE pages SET is_homepage = 0 WHERE website_id = ?", p.WebsiteID); err != nil {
			return fmt.Errorf("demote homepage: %w", err)
		}
	}

	contentJSON, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("marshal page content: %w", err)
	}
	homepage := 0
	if p.IsHomepage {
		homepage = 1
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO pages (id, website_id, title, slug, is_homepage, content) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.WebsiteID, p.Title, p.Slug, homepage, contentJSON); err != nil {
		return fmt.Errorf("insert page: %w", err)
	}

	return tx.Commit()
}

// UpdatePageContent overwrites the content tree of a page.
func (s *SQLiteStore) UpdatePageContent(ctx context.Context, pageID string, content []section.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contentJSON, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal page content: %w", err)
	}
	res, err := s.db.ExecContext(ctx, "UPDATE pages SET content = ? WHERE id = ?", contentJSON, pageID)
	if err != nil {
		return fmt.Errorf("update page content: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound{Entity: "page", ID: pageID}
	}
	return nil
}

// DeletePages removes all pages belonging to a website.
func (s *SQLiteStore) DeletePages(ctx context.Context, websiteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE website_id = ?", websiteID); err != nil {
		return fmt.Errorf("delete pages: %w", err)
	}
	return nil
}

// ListTemplates returns stored templates matching the filter.
func (s *SQLiteStore) ListTemplates(ctx context.Context, filter TemplateFilter) ([]*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, name, category, thumbnail_url, content FROM templates"
	args := []any{}
	if filter.Category != "" {
		query += " WHERE category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		var t Template
		var contentJSON []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.ThumbnailURL, &contentJSON); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if err := json.Unmarshal(contentJSON, &t.Content); err != nil {
			return nil, fmt.Errorf("unmarshal template content: %w", err)
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return templates, nil
}

// PutTemplate inserts or replaces a template row.
func (s *SQLiteStore) PutTemplate(ctx context.Context, t *Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contentJSON, err := json.Marshal(t.Content)
	if err != nil {
		return fmt.Errorf("marshal template content: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO templates (id, name, category, thumbnail_url, content) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Category, t.ThumbnailURL, contentJSON); err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// GetOwnerProfile retrieves an owner profile by ID.
func (s *SQLiteStore) GetOwnerProfile(ctx context.Context, ownerID string) (*OwnerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p OwnerProfile
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, phone FROM owner_profiles WHERE id = ?", ownerID,
	).Scan(&p.ID, &p.Email, &p.Phone)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound{Entity: "owner profile", ID: ownerID}
	}
	if err != nil {
		return nil, fmt.Errorf("query owner profile: %w", err)
	}
	return &p, nil
}

// PutOwnerProfile inserts or replaces an owner profile.
func (s *SQLiteStore) PutOwnerProfile(ctx context.Context, p *OwnerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO owner_profiles (id, email, phone) VALUES (?, ?, ?)",
		p.ID, p.Email, p.Phone); err != nil {
		return fmt.Errorf("insert owner profile: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
