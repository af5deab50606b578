package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/cache"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/section"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

type fixture struct {
	store *store.MockStore
	svc   *content.Service
	srv   *Server
}

func setupServer(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	st := store.NewMockStore()
	svc := content.NewService(st)
	srv := New(st, svc, templates.NewCatalog(st), opts...)

	ctx := context.Background()
	require.NoError(t, st.CreateWebsite(ctx, &store.Website{
		ID: "w1", OwnerID: "o1", Name: "Blue Sky Cleaning", SiteTitle: "Blue Sky",
	}))

	hero, err := section.DefaultsFor(section.KindHero)
	require.NoError(t, err)
	require.NoError(t, st.CreatePage(ctx, &store.Page{
		ID: "p1", WebsiteID: "w1", Title: "Home", Slug: "home",
		Content: []section.Section{hero},
	}))
	require.NoError(t, st.CreatePage(ctx, &store.Page{
		ID: "p2", WebsiteID: "w1", Title: "About", Slug: "about",
		Content: []section.Section{hero},
	}))
	return &fixture{store: st, svc: svc, srv: srv}
}

func (f *fixture) publish(t *testing.T, slug string) {
	t.Helper()
	s := slug
	require.NoError(t, f.store.UpdateWebsite(context.Background(),
		"w1", store.WebsiteUpdate{Status: store.StatusPublished, Slug: &s}))
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	_ = res.Body.Close()
	return res, string(body)
}

func TestHealthz(t *testing.T) {
	f := setupServer(t)
	res, body := get(t, f.srv.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestPalette(t *testing.T) {
	f := setupServer(t)
	res, body := get(t, f.srv.Handler(), "/api/palette")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var entries []paletteEntry
	require.NoError(t, json.Unmarshal([]byte(body), &entries))
	assert.Len(t, entries, len(section.Kinds()))
	assert.Equal(t, section.KindHero, entries[0].Kind)
	assert.Equal(t, section.CategoryHeader, entries[0].Category)
}

func TestTemplatesEndpoint(t *testing.T) {
	f := setupServer(t)
	res, body := get(t, f.srv.Handler(), "/api/templates?category=business")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var entries []templateEntry
	require.NoError(t, json.Unmarshal([]byte(body), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "builtin-business", entries[0].ID)
	assert.NotContains(t, body, "sections", "content stays server-side")
}

func TestPreviewShowsBufferedContent(t *testing.T) {
	f := setupServer(t)
	ctx := context.Background()

	_, err := f.svc.AddSection(ctx, "p1", section.KindCTA)
	require.NoError(t, err)

	res, body := get(t, f.srv.Handler(), "/preview/p1")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "no-store", res.Header.Get("Cache-Control"))
	assert.Contains(t, body, "mode-editor")
	assert.Contains(t, body, "section-cta", "unsaved buffer is visible in preview")
	assert.Contains(t, body, "<title>Blue Sky</title>")
}

func TestPreviewUnknownPage(t *testing.T) {
	f := setupServer(t)
	res, _ := get(t, f.srv.Handler(), "/preview/ghost")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPublicSiteServesPersistedOnly(t *testing.T) {
	f := setupServer(t)
	f.publish(t, "blue-sky-cleaning")

	_, err := f.svc.AddSection(context.Background(), "p1", section.KindCTA)
	require.NoError(t, err)

	res, body := get(t, f.srv.Handler(), "/site/blue-sky-cleaning")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "mode-public")
	assert.NotContains(t, body, "section-cta", "open buffers never leak to the public site")
	assert.NotContains(t, body, "data-editable")
}

func TestPublicSiteSubpage(t *testing.T) {
	f := setupServer(t)
	f.publish(t, "blue-sky-cleaning")

	res, body := get(t, f.srv.Handler(), "/site/blue-sky-cleaning/about")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "<title>About - Blue Sky</title>")

	res, _ = get(t, f.srv.Handler(), "/site/blue-sky-cleaning/missing")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPublicSiteDraftIsHidden(t *testing.T) {
	f := setupServer(t)
	res, _ := get(t, f.srv.Handler(), "/site/blue-sky-cleaning")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPublicSiteUsesRenderCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rc := cache.NewRenderCache(client)

	f := setupServer(t, WithRenderCache(rc))
	f.publish(t, "blue-sky-cleaning")

	_, first := get(t, f.srv.Handler(), "/site/blue-sky-cleaning")
	_, second := get(t, f.srv.Handler(), "/site/blue-sky-cleaning")
	assert.Equal(t, first, second)

	// cached copy survives a content change until invalidated
	require.NoError(t, f.store.UpdatePageContent(context.Background(), "p1", nil))
	_, third := get(t, f.srv.Handler(), "/site/blue-sky-cleaning")
	assert.Equal(t, first, third)

	require.NoError(t, rc.InvalidatePage(context.Background(), "p1"))
	_, fourth := get(t, f.srv.Handler(), "/site/blue-sky-cleaning")
	assert.NotEqual(t, first, fourth)
}

func TestMetricsEndpoint(t *testing.T) {
	f := setupServer(t)
	res, _ := get(t, f.srv.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func (f *fixture) publishDomain(t *testing.T, domain string) {
	t.Helper()
	d := domain
	require.NoError(t, f.store.UpdateWebsite(context.Background(),
		"w1", store.WebsiteUpdate{Status: store.StatusPublished, Domain: &d}))
}

func TestPublicSiteMobileNotServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rc := cache.NewRenderCache(client)

	f := setupServer(t, WithRenderCache(rc))
	features, err := section.DefaultsFor(section.KindFeatures)
	require.NoError(t, err)
	require.NoError(t, f.store.UpdatePageContent(context.Background(), "p1",
		[]section.Section{features}))
	f.publish(t, "blue-sky-cleaning")

	_, desktop := get(t, f.srv.Handler(), "/site/blue-sky-cleaning")
	assert.Contains(t, desktop, "cols-3")

	// the desktop render is cached now; mobile must still get its own layout
	_, mobile := get(t, f.srv.Handler(), "/site/blue-sky-cleaning?viewport=mobile")
	assert.Contains(t, mobile, "cols-1")
	assert.NotContains(t, mobile, "cols-3")

	// and the mobile render must not displace the cached desktop copy
	_, again := get(t, f.srv.Handler(), "/site/blue-sky-cleaning")
	assert.Equal(t, desktop, again)
}

func TestCustomDomainSiteServedByHost(t *testing.T) {
	f := setupServer(t)
	f.publishDomain(t, "example.com")
	h := f.srv.Handler()

	res, body := get(t, h, "http://example.com/")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "mode-public")
	assert.Contains(t, body, "<title>Blue Sky</title>")

	res, body = get(t, h, "http://example.com:8080/about")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "<title>About - Blue Sky</title>")

	res, _ = get(t, h, "http://Example.COM/")
	assert.Equal(t, http.StatusOK, res.StatusCode, "host matching is case-insensitive")
}

func TestCustomDomainUnknownHost(t *testing.T) {
	f := setupServer(t)
	f.publishDomain(t, "example.com")

	res, _ := get(t, f.srv.Handler(), "http://other.example.net/")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCustomDomainDraftIsHidden(t *testing.T) {
	f := setupServer(t)
	res, _ := get(t, f.srv.Handler(), "http://example.com/")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
