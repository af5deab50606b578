package assets

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FSStore {
	t.Helper()
	st, err := NewFSStore(t.TempDir(), "/assets")
	require.NoError(t, err)
	return st
}

func TestPutAndOpen(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	url, err := st.Put(ctx, "logo.png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/assets/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	rc, err := st.Open(ctx, url)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestPutIsContentAddressed(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.Put(ctx, "a.png", strings.NewReader("same bytes"))
	require.NoError(t, err)
	second, err := st.Put(ctx, "b.png", strings.NewReader("same bytes"))
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical content yields identical URLs")

	other, err := st.Put(ctx, "a.png", strings.NewReader("other bytes"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestOpenUnknownURL(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Open(ctx, "/assets/"+strings.Repeat("ab", 32)+".png")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	exists, err := st.Exists(ctx, "/assets/"+strings.Repeat("ab", 32)+".png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOpenRejectsForeignURLs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, url := range []string{
		"https://elsewhere.example/x.png",
		"/assets/../../etc/passwd",
		"/assets/notahash.png",
		"",
	} {
		_, err := st.Open(ctx, url)
		assert.True(t, IsNotFound(err), "url %q", url)
	}
}

func TestExtensionSanitized(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	url, err := st.Put(ctx, "weird.P[]G", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, url, "[")

	url2, err := st.Put(ctx, "noext", strings.NewReader("y"))
	require.NoError(t, err)
	exists, err := st.Exists(ctx, url2)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMockStoreRoundTrip(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()

	url, err := m.Put(ctx, "logo.svg", strings.NewReader("<svg/>"))
	require.NoError(t, err)

	exists, err := m.Exists(ctx, url)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := m.Open(ctx, url)
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "<svg/>", string(data))

	_, err = m.Open(ctx, "mock://missing")
	assert.True(t, IsNotFound(err))
}
