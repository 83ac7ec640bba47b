package viewer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SectionRenderer turns section text into nodes. Raw HTML in the source is
// not passed through.
type SectionRenderer struct {
	md goldmark.Markdown
}

// NewSectionRenderer creates a SectionRenderer with GFM tables and fenced
// code highlighting.
func NewSectionRenderer() *SectionRenderer {
	return &SectionRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
		),
	}
}

// Render converts source to nodes suitable for appending below a div.
func (s *SectionRenderer) Render(source string) ([]*html.Node, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(source), &buf); err != nil {
		return nil, fmt.Errorf("converting section markdown: %w", err)
	}
	nodes, err := html.ParseFragment(&buf, elem(atom.Div))
	if err != nil {
		return nil, fmt.Errorf("parsing section html: %w", err)
	}
	return nodes, nil
}
