package render

import (
	"strconv"

	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

func renderHero(s section.Section, opts Options) *Node {
	return El("div").Class("hero-inner").Append(
		textEl("h1", "heading", s.Heading, s, opts),
		textEl("p", "subheading", s.Subheading, s, opts),
		bodyEl(s, opts),
	)
}

func renderNavigation(s section.Section, opts Options) *Node {
	list := El("ul").Class("nav-links")
	for _, item := range s.Items {
		list.Append(El("li").Append(
			El("a", Text(item.Label)).Attr("href", item.Href),
		))
	}
	return El("nav").Append(list)
}

func renderGallery(s section.Section, opts Options) *Node {
	grid := El("div").Class("gallery-grid")
	for _, item := range s.Items {
		fig := El("figure")
		if item.Image != "" {
			fig.Append(El("img").Attr("src", item.Image).Attr("alt", item.Title))
		}
		cap := El("figcaption")
		if item.Title != "" {
			cap.Append(El("strong", Text(item.Title)))
		}
		if item.Description != "" {
			cap.Append(El("span", Text(item.Description)))
		}
		grid.Append(fig.Append(cap))
	}
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		grid,
	)
}

func renderTestimonials(s section.Section, opts Options) *Node {
	quotes := El("div").Class("testimonials")
	for _, item := range s.Items {
		quotes.Append(El("blockquote").Append(
			El("p", Text(item.Description)),
			El("cite", Text(item.Name)),
		))
	}
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		quotes,
	)
}

func renderVideo(s section.Section, opts Options) *Node {
	out := El("div").Append(textEl("h2", "heading", s.Heading, s, opts))
	if s.VideoURL != "" {
		out.Append(El("iframe").
			Attr("src", s.VideoURL).
			Attr("allowfullscreen", "").
			Class("video-frame"))
	}
	return out
}

// gridColumns maps viewport to column counts for grid-like kinds.
func gridColumns(kind section.Kind, viewport Viewport) int {
	if viewport == ViewportMobile {
		if kind == section.KindStats {
			return 2
		}
		return 1
	}
	if kind == section.KindStats {
		return 4
	}
	return 3
}

func renderFeatures(s section.Section, opts Options) *Node {
	cols := gridColumns(section.KindFeatures, opts.Viewport)
	grid := El("div").Class("feature-grid", "cols-"+strconv.Itoa(cols))
	for _, item := range s.Items {
		card := El("div").Class("feature-card")
		if item.Icon != "" {
			card.Append(El("span", Text(item.Icon)).Class("icon"))
		}
		card.Append(
			El("h3", Text(item.Title)),
			El("p", Text(item.Description)),
		)
		grid.Append(card)
	}
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		textEl("p", "subheading", s.Subheading, s, opts),
		grid,
	)
}

func renderTeam(s section.Section, opts Options) *Node {
	grid := El("div").Class("team-grid")
	for _, item := range s.Items {
		member := El("div").Class("team-member")
		if item.Image != "" {
			member.Append(El("img").Attr("src", item.Image).Attr("alt", item.Name))
		}
		member.Append(
			El("h3", Text(item.Name)),
			El("p", Text(item.Role)),
		)
		grid.Append(member)
	}
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		grid,
	)
}

func renderStats(s section.Section, opts Options) *Node {
	cols := gridColumns(section.KindStats, opts.Viewport)
	grid := El("div").Class("stat-grid", "cols-"+strconv.Itoa(cols))
	for _, item := range s.Items {
		stat := El("div").Class("stat")
		if item.Icon != "" {
			stat.Append(El("span", Text(item.Icon)).Class("icon"))
		}
		stat.Append(
			El("strong", Text(item.Value)),
			El("span", Text(item.Label)),
		)
		grid.Append(stat)
	}
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		grid,
	)
}

func renderTimeline(s section.Section, opts Options) *Node {
	list := El("ol").Class("timeline")
	for _, item := range s.Items {
		list.Append(El("li").Append(
			El("time", Text(item.Date)),
			El("h3", Text(item.Title)),
			El("p", Text(item.Description)),
		))
	}
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		list,
	)
}

func renderProjects(s section.Section, opts Options) *Node {
	grid := El("div").Class("project-grid")
	for _, item := range s.Items {
		card := El("div").Class("project-card")
		if item.Image != "" {
			card.Append(El("img").Attr("src", item.Image).Attr("alt", item.Title))
		}
		card.Append(
			El("h3", Text(item.Title)),
			El("p", Text(item.Description)),
		)
		grid.Append(card)
	}
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		grid,
	)
}

func renderSkills(s section.Section, opts Options) *Node {
	list := El("ul").Class("skills")
	for _, item := range s.Items {
		li := El("li").Append(El("span", Text(item.Label)))
		if item.Value != "" {
			li.Append(El("div").Class("skill-bar").Attr("data-level", item.Value))
		}
		list.Append(li)
	}
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		list,
	)
}

func renderSplit(s section.Section, opts Options) *Node {
	media := El("div").Class("split-media")
	for _, item := range s.Items {
		if item.Image != "" {
			media.Append(El("img").Attr("src", item.Image).Attr("alt", item.Title))
		}
	}
	return El("div").Class("split-inner").Append(
		El("div").Class("split-text").Append(
			textEl("h2", "heading", s.Heading, s, opts),
			bodyEl(s, opts),
		),
		media,
	)
}

func renderContact(s section.Section, opts Options) *Node {
	form := El("form").Class("contact-form")
	for _, f := range s.Fields {
		field := El("label").Append(El("span", Text(f.Label)))
		var input *Node
		if f.Type == "textarea" {
			input = El("textarea")
		} else {
			input = El("input").Attr("type", f.Type)
		}
		if f.Placeholder != "" {
			input.Attr("placeholder", f.Placeholder)
		}
		if f.Required {
			input.Attr("required", "")
		}
		form.Append(field.Append(input))
	}
	form.Append(El("button", Text("Send")).Attr("type", "submit"))
	return El("div").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		bodyEl(s, opts),
		form,
	)
}

func renderCTA(s section.Section, opts Options) *Node {
	out := El("div").Class("cta-inner").Append(
		textEl("h2", "heading", s.Heading, s, opts),
		textEl("p", "subheading", s.Subheading, s, opts),
	)
	for _, item := range s.Items {
		out.Append(El("a", Text(item.Label)).Attr("href", item.Href).Class("cta-button"))
	}
	return out
}

func renderFooter(s section.Section, opts Options) *Node {
	links := El("ul").Class("footer-links")
	for _, link := range s.Links {
		links.Append(El("li").Append(
			El("a", Text(link.Label)).Attr("href", link.Href),
		))
	}
	return El("footer").Append(
		El("span", Text(s.CompanyName)).Class("company"),
		links,
	)
}

func renderMarkup(s section.Section, opts Options) *Node {
	out := El("div").Class("markup-inner")
	if s.CSS != "" {
		out.Append(El("style").Append(Raw(s.CSS)))
	}
	if s.HTML != "" {
		out.Append(Raw(s.HTML))
	}
	return out
}
