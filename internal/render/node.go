// Package render maps sections to a visual output tree. The same pipeline
// serves the editor preview and the public viewer; the two modes must never
// diverge structurally, only decorate differently.
package render

import (
	"html"
	"io"
	"sort"
	"strings"
)

// Node is one element of the visual output tree.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string // escaped on write
	Raw      string // written verbatim; only trusted/sanitized producers set this
	Children []*Node
}

// El builds an element node.
func El(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// Raw builds a raw-HTML node.
func Raw(s string) *Node {
	return &Node{Raw: s}
}

// Attr sets an attribute and returns the node for chaining.
func (n *Node) Attr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// Class appends a class token.
func (n *Node) Class(tokens ...string) *Node {
	existing := ""
	if n.Attrs != nil {
		existing = n.Attrs["class"]
	}
	joined := strings.TrimSpace(existing + " " + strings.Join(tokens, " "))
	return n.Attr("class", joined)
}

// Append adds child nodes, skipping nils so renderers can return nothing.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"img": true, "input": true, "br": true, "hr": true,
	"link": true, "meta": true, "source": true,
}

// WriteHTML serializes the node tree. Attributes are written in sorted key
// order so output is deterministic for both consumers.
func (n *Node) WriteHTML(w io.Writer) error {
	if n == nil {
		return nil
	}
	if n.Tag == "" {
		if n.Raw != "" {
			_, err := io.WriteString(w, n.Raw)
			return err
		}
		_, err := io.WriteString(w, html.EscapeString(n.Text))
		return err
	}

	if _, err := io.WriteString(w, "<"+n.Tag); err != nil {
		return err
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := io.WriteString(w, " "+k+`="`+html.EscapeString(n.Attrs[k])+`"`); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if voidElements[n.Tag] {
		return nil
	}

	if n.Text != "" {
		if _, err := io.WriteString(w, html.EscapeString(n.Text)); err != nil {
			return err
		}
	}
	if n.Raw != "" {
		if _, err := io.WriteString(w, n.Raw); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := c.WriteHTML(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+n.Tag+">")
	return err
}

// HTML serializes the node tree to a string.
func (n *Node) HTML() string {
	var sb strings.Builder
	_ = n.WriteHTML(&sb)
	return sb.String()
}
