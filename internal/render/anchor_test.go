package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

func TestAnchorID(t *testing.T) {
	cases := []struct {
		heading string
		kind    section.Kind
		want    string
	}{
		{"Welcome to your new website", section.KindHero, "welcome-to-your-new-website"},
		{"Get in touch!", section.KindContact, "get-in-touch"},
		{"  Spaces   everywhere  ", section.KindHero, "spaces-everywhere"},
		{"100% Satisfaction -- Guaranteed", section.KindStats, "100-satisfaction-guaranteed"},
		{"", section.KindFooter, "footer"},
		{"!!!", section.KindGallery, "gallery"},
		{"Ünïcöde Héading", section.KindHero, "n-c-de-h-ading"},
	}
	for _, tc := range cases {
		got := AnchorID(section.Section{Kind: tc.kind, Heading: tc.heading})
		assert.Equal(t, tc.want, got, "heading %q", tc.heading)
	}
}

func TestAnchorIDSameInBothModes(t *testing.T) {
	s, _ := section.DefaultsFor(section.KindHero)
	s.Heading = "Our Story & Mission"

	editor := Render(s, Options{Mode: ModeEditor})
	public := Render(s, Options{Mode: ModePublic})

	assert.Equal(t, "our-story-mission", editor.Attrs["id"])
	assert.Equal(t, editor.Attrs["id"], public.Attrs["id"])
}
