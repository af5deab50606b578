package store

import (
	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// WebsiteStatus is the publish state of a website.
type WebsiteStatus string

const (
	StatusDraft     WebsiteStatus = "draft"
	StatusPublished WebsiteStatus = "published"
)

// Website is the site-level record. Invariant: when Status is published,
// exactly one of Slug or Domain is set; when draft, both are empty.
type Website struct {
	ID           string
	OwnerID      string
	Name         string
	Status       WebsiteStatus
	Slug         string
	Domain       string
	SiteTitle    string
	FaviconURL   string
	ContactEmail string
	ContactPhone string
}

// Page holds the persisted content tree for one page of a website. Exactly
// one page per website has IsHomepage set; the store enforces this.
type Page struct {
	ID         string
	WebsiteID  string
	Title      string
	Slug       string
	IsHomepage bool
	Content    []section.Section
}

// Template is a named, read-only starter content array.
type Template struct {
	ID           string
	Name         string
	Category     string
	ThumbnailURL string
	Content      []section.Section
}

// TemplateFilter narrows ListTemplates results. Zero value matches all.
type TemplateFilter struct {
	Category string
}

// OwnerProfile carries the account-level contact channels that publish
// back-fills onto a website lacking its own.
type OwnerProfile struct {
	ID    string
	Email string
	Phone string
}

// WebsiteUpdate is a partial update of a website record. Nil pointer fields
// are left untouched; non-nil pointers set the field (possibly to empty,
// which clears it). Status empty means unchanged.
type WebsiteUpdate struct {
	Status       WebsiteStatus
	Slug         *string
	Domain       *string
	SiteTitle    *string
	FaviconURL   *string
	ContactEmail *string
	ContactPhone *string
}
