// Package section defines the closed set of page section variants, their
// default field sets, and boundary validation for content entering the engine.
package section

// Kind discriminates the section variants. The set is closed: content carrying
// an unknown kind is rejected at the boundary, never at render time.
type Kind string

const (
	KindHero         Kind = "hero"
	KindNavigation   Kind = "navigation"
	KindGallery      Kind = "gallery"
	KindTestimonials Kind = "testimonials"
	KindVideo        Kind = "video"
	KindFeatures     Kind = "features"
	KindTeam         Kind = "team"
	KindStats        Kind = "stats"
	KindTimeline     Kind = "timeline"
	KindProjects     Kind = "projects"
	KindSkills       Kind = "skills"
	KindSplit        Kind = "split"
	KindContact      Kind = "contact"
	KindCTA          Kind = "cta"
	KindFooter       Kind = "footer"
	KindMarkup       Kind = "markup"
)

// Category groups kinds for the editor palette.
type Category string

const (
	CategoryHeader Category = "header"
	CategoryBody   Category = "body"
	CategoryFooter Category = "footer"
)

// kindOrder is the stable palette ordering.
var kindOrder = []Kind{
	KindNavigation,
	KindHero,
	KindFeatures,
	KindGallery,
	KindTestimonials,
	KindVideo,
	KindTeam,
	KindStats,
	KindTimeline,
	KindProjects,
	KindSkills,
	KindSplit,
	KindContact,
	KindCTA,
	KindMarkup,
	KindFooter,
}

// Kinds returns the full kind set in stable palette order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// IsKnown reports whether k is part of the closed kind set.
func IsKnown(k Kind) bool {
	for _, known := range kindOrder {
		if k == known {
			return true
		}
	}
	return false
}
