package server

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/section"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// paletteEntry is one addable section kind.
type paletteEntry struct {
	Kind     section.Kind     `json:"kind"`
	Category section.Category `json:"category"`
}

// handlePalette lists the section kinds the editor can offer, in palette
// order.
func (s *Server) handlePalette(w http.ResponseWriter, _ *http.Request) {
	kinds := section.Kinds()
	entries := make([]paletteEntry, 0, len(kinds))
	for _, k := range kinds {
		cat, err := section.CategoryOf(k)
		if err != nil {
			continue
		}
		entries = append(entries, paletteEntry{Kind: k, Category: cat})
	}
	writeJSON(w, http.StatusOK, entries)
}

// templateEntry is the catalog listing shape; content stays server-side.
type templateEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	filter := store.TemplateFilter{Category: r.URL.Query().Get("category")}
	list, err := s.catalog.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("list templates failed", logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	entries := make([]templateEntry, 0, len(list))
	for _, t := range list {
		entries = append(entries, templateEntry{
			ID: t.ID, Name: t.Name, Category: t.Category, ThumbnailURL: t.ThumbnailURL,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

// handlePreview renders a page for the editor. Unsaved buffer state is
// visible here and the response is never cached.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("pageID")
	ctx := observability.WithPageID(r.Context(), pageID)

	page, err := s.store.GetPage(ctx, pageID)
	if err != nil {
		if store.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("load page failed", logfields.PageID(pageID), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sections, err := s.content.EffectiveContent(ctx, pageID)
	if err != nil {
		s.logger.Error("load content failed", logfields.PageID(pageID), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	site, err := s.store.GetWebsite(ctx, page.WebsiteID)
	if err != nil {
		s.logger.Error("load website failed", logfields.WebsiteID(page.WebsiteID), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	opts := render.Options{Mode: render.ModeEditor, Viewport: viewportFrom(r)}
	start := time.Now()
	html := render.RenderPageHTML(render.Page{
		Title:      pageTitle(site, page),
		FaviconURL: site.FaviconURL,
		Sections:   sections,
	}, opts)
	s.recorder.ObserveRenderDuration(string(render.ModeEditor), time.Since(start))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(html))
}

// handlePublicSite serves a published site by subdomain slug. Only persisted
// content is visible; open edit buffers never leak here.
func (s *Server) handlePublicSite(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	site, err := s.store.GetWebsiteBySlug(r.Context(), slug)
	if err != nil {
		if store.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("load website failed", logfields.Slug(slug), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.servePublishedSite(w, r, site, r.PathValue("page"))
}

// handleCustomDomainSite serves a published site bound to a custom domain,
// resolved from the request's Host header.
func (s *Server) handleCustomDomainSite(w http.ResponseWriter, r *http.Request) {
	host := strings.ToLower(hostWithoutPort(r.Host))

	site, err := s.store.GetWebsiteByDomain(r.Context(), host)
	if err != nil {
		if store.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("load website failed", logfields.Domain(host), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.servePublishedSite(w, r, site, r.PathValue("page"))
}

func (s *Server) servePublishedSite(w http.ResponseWriter, r *http.Request, site *store.Website, pageSlug string) {
	if site.Status != store.StatusPublished {
		http.NotFound(w, r)
		return
	}

	page, err := s.findPage(r, site.ID, pageSlug)
	if err != nil {
		if store.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("load pages failed", logfields.WebsiteID(site.ID), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx := observability.WithPageID(observability.WithWebsiteID(r.Context(), site.ID), page.ID)

	opts := render.Options{Mode: render.ModePublic, Viewport: viewportFrom(r)}

	// only the canonical desktop render goes through the cache; other
	// viewports produce different markup and are rendered per request
	cacheable := s.cache != nil && opts.Viewport == render.ViewportDesktop
	if cacheable {
		if html, ok, err := s.cache.Get(ctx, page.ID); err == nil && ok {
			s.recorder.IncCacheLookup(true)
			serveHTML(w, html)
			return
		} else if err != nil {
			observability.WarnContext(ctx, "render cache read failed", logfields.Error(err))
		}
		s.recorder.IncCacheLookup(false)
	}

	start := time.Now()
	html := render.RenderPageHTML(render.Page{
		Title:      pageTitle(site, page),
		FaviconURL: site.FaviconURL,
		Sections:   page.Content,
	}, opts)
	s.recorder.ObserveRenderDuration(string(render.ModePublic), time.Since(start))

	if cacheable {
		if err := s.cache.Set(ctx, page.ID, html); err != nil {
			observability.WarnContext(ctx, "render cache write failed", logfields.Error(err))
		}
	}
	serveHTML(w, html)
}

// findPage resolves a page slug within a website; an empty slug means the
// homepage.
func (s *Server) findPage(r *http.Request, websiteID, pageSlug string) (*store.Page, error) {
	pages, err := s.store.ListPages(r.Context(), websiteID)
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		if pageSlug == "" && p.IsHomepage {
			return p, nil
		}
		if pageSlug != "" && p.Slug == pageSlug {
			return p, nil
		}
	}
	return nil, store.ErrNotFound{Entity: "page", ID: pageSlug}
}

func pageTitle(site *store.Website, page *store.Page) string {
	if site.SiteTitle != "" && page.IsHomepage {
		return site.SiteTitle
	}
	if site.SiteTitle != "" {
		return page.Title + " - " + site.SiteTitle
	}
	return page.Title
}

// hostWithoutPort strips an optional port from a Host header value.
func hostWithoutPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func viewportFrom(r *http.Request) render.Viewport {
	if r.URL.Query().Get("viewport") == string(render.ViewportMobile) {
		return render.ViewportMobile
	}
	return render.ViewportDesktop
}

func serveHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
