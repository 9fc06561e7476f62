package xmltree

import (
	"sort"
	"strings"
)

// Document is the result of parsing one XML-like input.
type Document struct {
	Root *Node
}

// Node is a minimal DOM node: tag name, attributes, accumulated text
// content, and child elements in document order. A node exclusively owns
// its children; there are no parent links.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Child returns the first child element with the given tag name. Safe to
// call on a nil node, so lookups can be chained.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given tag name.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the trimmed text content of the first child with the
// given tag name, or "".
func (n *Node) ChildText(name string) string {
	return strings.TrimSpace(n.Child(name).text())
}

func (n *Node) text() string {
	if n == nil {
		return ""
	}
	return n.Text
}

// InnerXML re-serializes the node's text and child elements back into
// markup. Used for embedded-markup content (e.g. Atom XHTML content) where
// the caller wants the markup itself, not the flattened text.
func (n *Node) InnerXML() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(escapeText(n.Text))
	for _, c := range n.Children {
		c.write(&b)
	}
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Name)
	// Attribute order is not preserved by the map; sort for stable output.
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(n.Attrs[name]))
		b.WriteByte('"')
	}
	if n.Text == "" && len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	b.WriteString(escapeText(n.Text))
	for _, c := range n.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)
