package section

import (
	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// DefaultsFor returns a fully-populated section for the given kind with a
// fresh ID, a non-empty heading, seed collections for kinds that require
// them, and default style tokens. It is side-effect free; callers own the
// returned value.
func DefaultsFor(kind Kind) (Section, error) {
	if !IsKnown(kind) {
		return Section{}, errors.UnsupportedSectionKind(string(kind))
	}

	s := Section{
		ID:   uuid.NewString(),
		Kind: kind,
		Style: Style{
			Background:     "surface",
			TextColor:      "on-surface",
			HeadingFont:    "sans",
			HeadingSize:    "xl",
			SubheadingFont: "sans",
			SubheadingSize: "lg",
			BodyFont:       "sans",
			BodySize:       "md",
		},
	}

	switch kind {
	case KindHero:
		s.Heading = "Welcome to your new website"
		s.Subheading = "Tell visitors what you do in one sentence"
		s.Body = "Describe your business here."
	case KindNavigation:
		s.Heading = "Navigation"
		s.Items = []Item{
			{Label: "Home", Href: "#welcome-to-your-new-website"},
		}
	case KindGallery:
		s.Heading = "Gallery"
		s.Items = []Item{
			{Title: "First image", Description: "A short caption", Image: ""},
		}
	case KindTestimonials:
		s.Heading = "What our customers say"
		s.Items = []Item{
			{Name: "A happy customer", Description: "They did a great job."},
		}
	case KindVideo:
		s.Heading = "Watch"
		s.VideoURL = ""
	case KindFeatures:
		s.Heading = "Our services"
		s.Items = []Item{
			{Title: "Service one", Description: "What it includes", Icon: "star"},
			{Title: "Service two", Description: "What it includes", Icon: "star"},
			{Title: "Service three", Description: "What it includes", Icon: "star"},
		}
	case KindTeam:
		s.Heading = "Meet the team"
		s.Items = []Item{
			{Name: "Your name", Role: "Founder", Image: ""},
		}
	case KindStats:
		s.Heading = "By the numbers"
		s.Items = []Item{
			{Value: "10+", Label: "Years in business", Icon: "calendar"},
			{Value: "500", Label: "Happy customers", Icon: "users"},
		}
	case KindTimeline:
		s.Heading = "Our story"
		s.Items = []Item{
			{Date: "2020", Title: "Founded", Description: "Where it all began"},
		}
	case KindProjects:
		s.Heading = "Recent work"
		s.Items = []Item{
			{Title: "A recent project", Description: "What we delivered", Image: ""},
		}
	case KindSkills:
		s.Heading = "What we're good at"
		s.Items = []Item{
			{Label: "Skill", Value: "90"},
		}
	case KindSplit:
		s.Heading = "About us"
		s.Body = "Pair a paragraph with an image."
		s.Items = []Item{
			{Image: "", Title: "About us"},
		}
	case KindContact:
		s.Heading = "Get in touch"
		s.Fields = []FormField{
			{Label: "Name", Type: "text", Required: true},
			{Label: "Email", Type: "email", Required: true},
			{Label: "Message", Type: "textarea", Required: true},
		}
	case KindCTA:
		s.Heading = "Ready to get started?"
		s.Subheading = "Reach out today"
		s.Items = []Item{
			{Label: "Contact us", Href: "#get-in-touch"},
		}
	case KindFooter:
		s.Heading = "Footer"
		s.CompanyName = "Your company"
		s.Links = []Item{
			{Label: "Home", Href: "#welcome-to-your-new-website"},
		}
	case KindMarkup:
		s.Heading = ""
		s.HTML = "<div></div>"
		s.CSS = ""
	}

	return s, nil
}

// CategoryOf classifies a kind for editor palette grouping.
func CategoryOf(kind Kind) (Category, error) {
	if !IsKnown(kind) {
		return "", errors.UnsupportedSectionKind(string(kind))
	}
	switch kind {
	case KindHero, KindNavigation:
		return CategoryHeader, nil
	case KindFooter:
		return CategoryFooter, nil
	default:
		return CategoryBody, nil
	}
}
