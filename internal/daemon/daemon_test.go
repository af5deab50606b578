package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/cache"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

func seedSites(t *testing.T) *store.MockStore {
	t.Helper()
	st := store.NewMockStore()
	ctx := context.Background()

	require.NoError(t, st.CreateWebsite(ctx, &store.Website{ID: "w1", OwnerID: "o1", Name: "One"}))
	domain := "one.example.com"
	require.NoError(t, st.UpdateWebsite(ctx, "w1", store.WebsiteUpdate{
		Status: store.StatusPublished, Domain: &domain,
	}))

	require.NoError(t, st.CreateWebsite(ctx, &store.Website{ID: "w2", OwnerID: "o1", Name: "Two"}))
	slug := "two"
	require.NoError(t, st.UpdateWebsite(ctx, "w2", store.WebsiteUpdate{
		Status: store.StatusPublished, Slug: &slug,
	}))

	require.NoError(t, st.CreateWebsite(ctx, &store.Website{ID: "w3", OwnerID: "o1", Name: "Draft"}))
	return st
}

func TestVerifyAllRegistersPublishedDomains(t *testing.T) {
	st := seedSites(t)
	prov := publish.NewMockProvisioner()

	v, err := newDomainVerifier(st, prov, slog.Default())
	require.NoError(t, err)
	v.verifyAll()

	assert.Equal(t, []string{"one.example.com"}, prov.RegisterCalls,
		"only published sites with a custom domain are re-verified")
}

func TestVerifyAllSurvivesProvisionerFailure(t *testing.T) {
	st := seedSites(t)
	prov := publish.NewMockProvisioner()
	prov.FailRegister = fmt.Errorf("provisioner down")

	v, err := newDomainVerifier(st, prov, slog.Default())
	require.NoError(t, err)
	v.verifyAll()

	assert.Len(t, prov.RegisterCalls, 1, "failures are logged, not fatal")
}

func TestInvalidateAllDropsCachedRenders(t *testing.T) {
	st := seedSites(t)
	ctx := context.Background()
	require.NoError(t, st.CreatePage(ctx, &store.Page{ID: "p1", WebsiteID: "w1", Title: "Home"}))
	require.NoError(t, st.CreatePage(ctx, &store.Page{ID: "p2", WebsiteID: "w2", Title: "Home"}))

	mr := miniredis.RunT(t)
	rc := cache.NewRenderCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	require.NoError(t, rc.Set(ctx, "p1", "<html>one</html>"))
	require.NoError(t, rc.Set(ctx, "p2", "<html>two</html>"))

	aw := &assetWatcher{store: st, cache: rc, logger: slog.Default()}
	aw.invalidateAll(ctx)

	_, ok, err := rc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = rc.Get(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssetWatcherReactsToWrites(t *testing.T) {
	st := seedSites(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, st.CreatePage(ctx, &store.Page{ID: "p1", WebsiteID: "w1", Title: "Home"}))

	mr := miniredis.RunT(t)
	rc := cache.NewRenderCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	require.NoError(t, rc.Set(ctx, "p1", "<html>stale</html>"))

	dir := t.TempDir()
	aw, err := newAssetWatcher(dir, st, rc, slog.Default())
	require.NoError(t, err)
	aw.debounce = 50 * time.Millisecond
	aw.start(ctx)
	defer aw.stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("new bytes"), 0600))

	require.Eventually(t, func() bool {
		_, ok, err := rc.Get(ctx, "p1")
		return err == nil && !ok
	}, 5*time.Second, 25*time.Millisecond, "cached render should be invalidated after the asset write")
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}
