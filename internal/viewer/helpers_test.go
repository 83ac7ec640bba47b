package viewer

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/annoview/internal/document"
)

// docBuilder builds documents in checkpoint key order.
type docBuilder struct {
	doc *document.Document
}

func newDoc() *docBuilder { return &docBuilder{doc: document.New()} }

func (b *docBuilder) section(id, content string) *docBuilder {
	b.doc.Append(document.NewSectionRecord(document.Section{ID: id, Content: content}))
	return b
}

func (b *docBuilder) response(key, section, summary string, els ...document.Element) *docBuilder {
	rec := document.NewResponseRecord(section, document.Response{
		Section:  section,
		Summary:  summary,
		Elements: els,
	})
	b.doc.Set(key, rec)
	return b
}

func (b *docBuilder) build() *document.Document { return b.doc }

func testHighlighter() *Highlighter {
	return NewHighlighter(HighlightOptions{QuoteMeta: true}, zerolog.Nop())
}

func findByID(n *html.Node, id string) *html.Node {
	if v, ok := attr(n, "id"); ok && v == id && n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findByID(c, id); f != nil {
			return f
		}
	}
	return nil
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func isHidden(n *html.Node) bool {
	_, ok := attr(n, "hidden")
	return ok
}

func mustFindByID(t *testing.T, n *html.Node, id string) *html.Node {
	t.Helper()
	f := findByID(n, id)
	if f == nil {
		t.Fatalf("no element with id %q in %s", id, HTMLString(n))
	}
	return f
}

// attr returns the value of key on n.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// hasClass reports whether n carries class c.
func hasClass(n *html.Node, c string) bool {
	v, _ := attr(n, "class")
	for _, f := range strings.Fields(v) {
		if f == c {
			return true
		}
	}
	return false
}
