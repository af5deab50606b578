package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// bodyMarkdown converts a section's body text (Markdown) to HTML. Raw inline
// HTML is escaped by goldmark's default renderer, so body text from the
// operator cannot inject markup; the markup section kind is the one sanctioned
// escape hatch.
func bodyMarkdown(body string) *Node {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Linkify))
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		// fall back to plain text rather than failing the render
		return El("p", Text(body))
	}
	return Raw(buf.String())
}
