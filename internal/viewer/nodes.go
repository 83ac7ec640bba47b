package viewer

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// elem creates an element node. attrs are key/value pairs.
func elem(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// text creates a text node; its content is escaped when rendered.
func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// appendAll appends children to parent and returns parent.
func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

// TextContent returns the concatenated text below n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// WriteHTML renders the tree rooted at n.
func WriteHTML(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// HTMLString renders n to a string.
func HTMLString(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
