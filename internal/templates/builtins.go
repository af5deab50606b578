package templates

import (
	"git.home.luguber.info/inful/sitebuilder/internal/section"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

// builtins are the starter templates shipped with the builder. Their section
// content carries no IDs; Instantiate assigns fresh ones per website so two
// sites created from the same template never share section identity.
func builtins() []store.Template {
	return []store.Template{
		{
			ID:       "builtin-blank",
			Name:     "Blank",
			Category: "general",
			Content: []section.Section{
				{Kind: section.KindHero, Heading: "Welcome", Style: defaultStyle()},
				{Kind: section.KindFooter, CompanyName: "Your company", Style: defaultStyle()},
			},
		},
		{
			ID:       "builtin-business",
			Name:     "Small Business",
			Category: "business",
			Content: []section.Section{
				{Kind: section.KindNavigation, Style: defaultStyle(), Items: []section.Item{
					{Label: "Services", Href: "#services"},
					{Label: "Why us", Href: "#why-choose-us"},
					{Label: "Contact", Href: "#get-in-touch"},
				}},
				{Kind: section.KindHero, Heading: "Your business, online", Subheading: "Tell visitors what you do in one sentence.", Style: defaultStyle()},
				{Kind: section.KindFeatures, Heading: "Services", Style: defaultStyle(), Items: []section.Item{
					{Title: "Service one", Description: "Describe your first service."},
					{Title: "Service two", Description: "Describe your second service."},
					{Title: "Service three", Description: "Describe your third service."},
				}},
				{Kind: section.KindStats, Heading: "Why choose us", Style: defaultStyle(), Items: []section.Item{
					{Value: "10+", Label: "Years in business"},
					{Value: "500", Label: "Happy customers"},
				}},
				{Kind: section.KindTestimonials, Heading: "What customers say", Style: defaultStyle(), Items: []section.Item{
					{Name: "A happy customer", Description: "They did a great job."},
				}},
				{Kind: section.KindContact, Heading: "Get in touch", Style: defaultStyle(), Fields: []section.FormField{
					{Label: "Name", Type: "text", Required: true},
					{Label: "Email", Type: "email", Required: true},
					{Label: "Message", Type: "textarea", Required: true},
				}},
				{Kind: section.KindFooter, CompanyName: "Your company", Style: defaultStyle()},
			},
		},
		{
			ID:       "builtin-portfolio",
			Name:     "Portfolio",
			Category: "portfolio",
			Content: []section.Section{
				{Kind: section.KindHero, Heading: "Hi, I build things", Style: defaultStyle()},
				{Kind: section.KindProjects, Heading: "Selected work", Style: defaultStyle(), Items: []section.Item{
					{Title: "Project one", Description: "A short description."},
					{Title: "Project two", Description: "A short description."},
				}},
				{Kind: section.KindSkills, Heading: "Skills", Style: defaultStyle(), Items: []section.Item{
					{Title: "Design"}, {Title: "Development"},
				}},
				{Kind: section.KindTimeline, Heading: "Experience", Style: defaultStyle(), Items: []section.Item{
					{Date: "2024", Title: "Freelance", Description: "Independent projects."},
				}},
				{Kind: section.KindContact, Heading: "Work with me", Style: defaultStyle(), Fields: []section.FormField{
					{Label: "Email", Type: "email", Required: true},
					{Label: "Message", Type: "textarea", Required: true},
				}},
				{Kind: section.KindFooter, CompanyName: "Your name", Style: defaultStyle()},
			},
		},
		{
			ID:       "builtin-restaurant",
			Name:     "Restaurant",
			Category: "hospitality",
			Content: []section.Section{
				{Kind: section.KindNavigation, Style: defaultStyle(), Items: []section.Item{
					{Label: "Story", Href: "#our-story"},
					{Label: "Gallery", Href: "#gallery"},
					{Label: "Contact", Href: "#find-us"},
				}},
				{Kind: section.KindHero, Heading: "Fresh, local, yours", Style: defaultStyle()},
				{Kind: section.KindSplit, Heading: "Our story", Body: "Tell guests where your food comes from.", Style: defaultStyle()},
				{Kind: section.KindGallery, Heading: "Gallery", Style: defaultStyle(), Items: []section.Item{
					{Title: "Dish one"}, {Title: "Dish two"}, {Title: "The room"},
				}},
				{Kind: section.KindCTA, Heading: "Book a table", Style: defaultStyle()},
				{Kind: section.KindContact, Heading: "Find us", Style: defaultStyle(), Fields: []section.FormField{
					{Label: "Name", Type: "text", Required: true},
					{Label: "Email", Type: "email", Required: true},
					{Label: "Message", Type: "textarea", Required: false},
				}},
				{Kind: section.KindFooter, CompanyName: "Your restaurant", Style: defaultStyle()},
			},
		},
	}
}

func defaultStyle() section.Style {
	return section.Style{
		Background:     "surface",
		TextColor:      "on-surface",
		HeadingFont:    "sans",
		HeadingSize:    "xl",
		SubheadingFont: "sans",
		SubheadingSize: "lg",
		BodyFont:       "sans",
		BodySize:       "md",
	}
}
