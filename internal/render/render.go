package render

import (
	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// Mode selects the render consumer.
type Mode string

const (
	ModeEditor Mode = "editor"
	ModePublic Mode = "public"
)

// Viewport hints column/layout counts for grid-like kinds.
type Viewport string

const (
	ViewportDesktop Viewport = "desktop"
	ViewportMobile  Viewport = "mobile"
)

// Options parameterize a render. The zero value renders public/desktop.
type Options struct {
	Mode     Mode
	Viewport Viewport
}

func (o Options) normalized() Options {
	if o.Mode == "" {
		o.Mode = ModePublic
	}
	if o.Viewport == "" {
		o.Viewport = ViewportDesktop
	}
	return o
}

type renderFunc func(section.Section, Options) *Node

// renderers is total over the schema registry's kind set. Unknown kinds are
// absent and render to nothing, so malformed persisted data degrades
// gracefully instead of crashing the viewer.
var renderers = map[section.Kind]renderFunc{
	section.KindHero:         renderHero,
	section.KindNavigation:   renderNavigation,
	section.KindGallery:      renderGallery,
	section.KindTestimonials: renderTestimonials,
	section.KindVideo:        renderVideo,
	section.KindFeatures:     renderFeatures,
	section.KindTeam:         renderTeam,
	section.KindStats:        renderStats,
	section.KindTimeline:     renderTimeline,
	section.KindProjects:     renderProjects,
	section.KindSkills:       renderSkills,
	section.KindSplit:        renderSplit,
	section.KindContact:      renderContact,
	section.KindCTA:          renderCTA,
	section.KindFooter:       renderFooter,
	section.KindMarkup:       renderMarkup,
}

// Render maps a section to its visual output tree. It is a pure function of
// the section and options. Hidden sections render to nothing in public mode;
// in editor mode they render dimmed so they remain editable.
func Render(s section.Section, opts Options) *Node {
	opts = opts.normalized()

	fn, ok := renderers[s.Kind]
	if !ok {
		return nil
	}
	if s.Hidden && opts.Mode == ModePublic {
		return nil
	}

	wrapper := El("section").
		Attr("id", AnchorID(s)).
		Class("section", "section-"+string(s.Kind))
	if s.Style.Background != "" {
		wrapper.Class("bg-" + s.Style.Background)
	}
	if s.Style.TextColor != "" {
		wrapper.Class("text-" + s.Style.TextColor)
	}
	if s.Hidden {
		wrapper.Class("section-dimmed")
	}
	if opts.Mode == ModeEditor {
		wrapper.Attr("data-section-id", s.ID)
	}

	return wrapper.Append(fn(s, opts))
}

// Page carries what the pipeline needs to produce a full document.
type Page struct {
	Title      string
	FaviconURL string
	Sections   []section.Section
}

// RenderPage produces the full document tree for a page. Editor preview and
// public viewer both go through here; only Options differ.
func RenderPage(p Page, opts Options) *Node {
	opts = opts.normalized()

	head := El("head").Append(
		El("meta").Attr("charset", "utf-8"),
		El("meta").Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1"),
		El("title", Text(p.Title)),
	)
	if p.FaviconURL != "" {
		head.Append(El("link").Attr("rel", "icon").Attr("href", p.FaviconURL))
	}

	body := El("body").Class("mode-" + string(opts.Mode))
	for _, s := range p.Sections {
		body.Append(Render(s, opts))
	}

	return El("html").Attr("lang", "en").Append(head, body)
}

// RenderPageHTML serializes a page to an HTML document string.
func RenderPageHTML(p Page, opts Options) string {
	return "<!doctype html>" + RenderPage(p, opts).HTML()
}

// textEl renders one editable text slot (heading, subheading, body label).
// In editor mode it carries the click-target attributes the style-editing
// affordance hangs off; attaching them never mutates content.
func textEl(tag, field, value string, s section.Section, opts Options) *Node {
	if value == "" {
		return nil
	}
	n := El(tag, Text(value)).Class(field)
	font, size := styleTokensFor(s.Style, field)
	if font != "" {
		n.Class("font-" + font)
	}
	if size != "" {
		n.Class("size-" + size)
	}
	if opts.Mode == ModeEditor {
		n.Attr("data-editable", field).Attr("data-section-id", s.ID)
	}
	return n
}

func styleTokensFor(st section.Style, field string) (font, size string) {
	switch field {
	case "heading":
		return st.HeadingFont, st.HeadingSize
	case "subheading":
		return st.SubheadingFont, st.SubheadingSize
	default:
		return st.BodyFont, st.BodySize
	}
}

// bodyEl renders the section body (Markdown) inside an editable container.
func bodyEl(s section.Section, opts Options) *Node {
	md := bodyMarkdown(s.Body)
	if md == nil {
		return nil
	}
	n := El("div").Class("body")
	if s.Style.BodyFont != "" {
		n.Class("font-" + s.Style.BodyFont)
	}
	if s.Style.BodySize != "" {
		n.Class("size-" + s.Style.BodySize)
	}
	if opts.Mode == ModeEditor {
		n.Attr("data-editable", "body").Attr("data-section-id", s.ID)
	}
	return n.Append(md)
}
