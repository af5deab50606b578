package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

func TestDefaultsForAllKinds(t *testing.T) {
	for _, kind := range Kinds() {
		s, err := DefaultsFor(kind)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, s.Kind)
		assert.NotEmpty(t, s.ID)
		assert.False(t, s.Hidden)
		assert.NotEmpty(t, s.Style.Background)
		if kind != KindMarkup {
			assert.NotEmpty(t, s.Heading, "kind %s should have a default heading", kind)
		}
	}
}

func TestDefaultsForSeedsCollections(t *testing.T) {
	contact, err := DefaultsFor(KindContact)
	require.NoError(t, err)
	assert.NotEmpty(t, contact.Fields)

	for _, kind := range []Kind{KindNavigation, KindGallery, KindFeatures, KindStats} {
		s, err := DefaultsFor(kind)
		require.NoError(t, err)
		assert.NotEmpty(t, s.Items, "kind %s needs seed items", kind)
	}

	footer, err := DefaultsFor(KindFooter)
	require.NoError(t, err)
	assert.NotEmpty(t, footer.Links)
	assert.NotEmpty(t, footer.CompanyName)
}

func TestDefaultsForUnknownKind(t *testing.T) {
	_, err := DefaultsFor(Kind("carousel"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedSectionKind))
}

func TestDefaultsForFreshIDs(t *testing.T) {
	a, err := DefaultsFor(KindHero)
	require.NoError(t, err)
	b, err := DefaultsFor(KindHero)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCategoryOf(t *testing.T) {
	cases := map[Kind]Category{
		KindHero:       CategoryHeader,
		KindNavigation: CategoryHeader,
		KindFooter:     CategoryFooter,
		KindGallery:    CategoryBody,
		KindStats:      CategoryBody,
		KindMarkup:     CategoryBody,
	}
	for kind, want := range cases {
		got, err := CategoryOf(kind)
		require.NoError(t, err)
		assert.Equal(t, want, got, "kind %s", kind)
	}

	_, err := CategoryOf(Kind("nope"))
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedSectionKind))
}

func TestValidate(t *testing.T) {
	hero, _ := DefaultsFor(KindHero)
	stats, _ := DefaultsFor(KindStats)
	require.NoError(t, Validate([]Section{hero, stats}))

	bad := []Section{hero, {ID: "x", Kind: Kind("widget")}}
	err := Validate(bad)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedSectionKind))

	emptyStats := stats.Clone()
	emptyStats.Items = nil
	assert.Error(t, Validate([]Section{emptyStats}))

	emptyContact := Section{ID: "c", Kind: KindContact}
	assert.Error(t, Validate([]Section{emptyContact}))
}

func TestNormalizeAssignsMissingIDs(t *testing.T) {
	content := []Section{
		{Kind: KindHero, Heading: "Hi"},
		{ID: "keep-me", Kind: KindFooter},
	}
	out := Normalize(content)
	assert.NotEmpty(t, out[0].ID)
	assert.Equal(t, "keep-me", out[1].ID)
	// input untouched
	assert.Empty(t, content[0].ID)
}
