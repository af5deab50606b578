// Package templates holds the starter-template catalog. Built-in templates
// ship with the binary; tenant templates live in the store. Instantiating a
// template deep-copies its content and assigns fresh section identities.
package templates

import (
	"context"
	"sort"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/section"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

// Catalog merges built-in templates with store-backed ones.
type Catalog struct {
	store store.Store
}

// NewCatalog creates a catalog over the given store. A nil store yields a
// builtins-only catalog.
func NewCatalog(st store.Store) *Catalog {
	return &Catalog{store: st}
}

// List returns all templates matching the filter, builtins first, then
// store templates sorted by name. Store templates shadow builtins with the
// same ID.
func (c *Catalog) List(ctx context.Context, filter store.TemplateFilter) ([]store.Template, error) {
	var stored []store.Template
	if c.store != nil {
		rows, err := c.store.ListTemplates(ctx, filter)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryStorage, errors.SeverityError, "list templates")
		}
		for _, t := range rows {
			stored = append(stored, *t)
		}
		sort.Slice(stored, func(i, j int) bool { return stored[i].Name < stored[j].Name })
	}

	seen := make(map[string]bool, len(stored))
	for _, t := range stored {
		seen[t.ID] = true
	}

	var out []store.Template
	for _, t := range builtins() {
		if seen[t.ID] {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		out = append(out, t)
	}
	return append(out, stored...), nil
}

// Get returns one template by ID, preferring the store copy.
func (c *Catalog) Get(ctx context.Context, id string) (*store.Template, error) {
	if c.store != nil {
		rows, err := c.store.ListTemplates(ctx, store.TemplateFilter{})
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryStorage, errors.SeverityError, "list templates")
		}
		for _, t := range rows {
			if t.ID == id {
				return t, nil
			}
		}
	}
	for _, t := range builtins() {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, errors.NotFound("template", id)
}

// Instantiate produces page content from a template: a deep copy of the
// template's sections with fresh IDs, validated against the section schema.
// The returned content shares no memory with the catalog.
func (c *Catalog) Instantiate(ctx context.Context, id string) ([]section.Section, error) {
	tmpl, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	blank := section.CloneContent(tmpl.Content)
	for i := range blank {
		// stored templates may carry IDs from the page they were saved
		// from; every instantiation gets its own
		blank[i].ID = ""
	}
	content := section.Normalize(blank)
	if err := section.Validate(content); err != nil {
		return nil, errors.Wrap(err, errors.CategoryContent, errors.SeverityError, "template content invalid").
			WithContext("template_id", id)
	}
	return content, nil
}
