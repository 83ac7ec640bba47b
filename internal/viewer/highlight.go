package viewer

import (
	"regexp"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/annoview/internal/document"
)

// HighlightOptions controls how term and verb patterns are built.
type HighlightOptions struct {
	// QuoteMeta escapes regular expression metacharacters in term and verb
	// text. When false the text is used as a raw pattern.
	QuoteMeta bool
}

// Highlighter turns elements into annotated statement markup.
type Highlighter struct {
	opts HighlightOptions
	log  zerolog.Logger
}

// NewHighlighter creates a Highlighter.
func NewHighlighter(opts HighlightOptions, log zerolog.Logger) *Highlighter {
	return &Highlighter{opts: opts, log: log}
}

// Highlight renders one element as a <span class="statement"> holding the
// id, the statement with term and verb markers, the classification badge
// and the sources.
func (h *Highlighter) Highlight(el document.Element) *html.Node {
	body := appendAll(elem(atom.Span, "class", "statement-text"), text(el.Statement))

	for _, t := range el.Terms {
		var class string
		switch t.Classification {
		case document.CommonNoun:
			class = "term term-common"
		case document.ProperNoun:
			class = "term term-proper"
		default:
			continue
		}
		h.wrap(body, t.Term, func() *html.Node {
			return elem(atom.Span, "class", class)
		})
	}

	for _, verb := range el.VerbSymbols {
		h.wrap(body, verb, func() *html.Node {
			return elem(atom.Span, "class", "verb")
		})
	}

	out := elem(atom.Span, "class", "statement", "data-element", el.ID)
	appendAll(out,
		appendAll(elem(atom.Span, "class", "element-id"), text(el.ID)),
		text(" "),
		body,
		Badge(el.Classification),
	)

	if src := el.Sources.Display(); src != "" {
		appendAll(out, text(" "), appendAll(elem(atom.Strong, "class", "sources"), text(src)))
	}
	return out
}

// Badge returns the superscript classification marker for an element.
func Badge(classification string) *html.Node {
	abbr, title := "OP", "OP: Operative Rule"
	if classification == document.FactType {
		abbr, title = "FT", "FT: Fact Type"
	}
	return appendAll(elem(atom.Sup, "class", "classification", "title", title), text(abbr))
}

// wrap wraps every word-bounded match of literal inside the text nodes below
// root with a node built by marker. Matches inside earlier markers are
// wrapped again, producing nested markup.
func (h *Highlighter) wrap(root *html.Node, literal string, marker func() *html.Node) {
	re := h.pattern(literal)
	if re == nil {
		return
	}

	var texts []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			texts = append(texts, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(root)

	for _, t := range texts {
		splitText(t, re, marker)
	}
}

// splitText replaces t with a run of text and marker nodes.
func splitText(t *html.Node, re *regexp.Regexp, marker func() *html.Node) {
	locs := re.FindAllStringIndex(t.Data, -1)
	if len(locs) == 0 {
		return
	}

	parent := t.Parent
	s := t.Data
	last := 0
	matched := false
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		if loc[0] > last {
			parent.InsertBefore(text(s[last:loc[0]]), t)
		}
		parent.InsertBefore(appendAll(marker(), text(s[loc[0]:loc[1]])), t)
		last = loc[1]
		matched = true
	}
	if !matched {
		return
	}
	if last < len(s) {
		parent.InsertBefore(text(s[last:]), t)
	}
	parent.RemoveChild(t)
}

// pattern compiles the word-bounded, case-sensitive matcher for literal.
// It returns nil for empty text and for raw patterns that do not compile.
func (h *Highlighter) pattern(literal string) *regexp.Regexp {
	if literal == "" {
		return nil
	}
	expr := literal
	if h.opts.QuoteMeta {
		expr = regexp.QuoteMeta(literal)
	}
	re, err := regexp.Compile(`\b` + expr + `\b`)
	if err != nil {
		h.log.Debug().Err(err).Str("pattern", literal).Msg("skipping unmatchable pattern")
		return nil
	}
	return re
}
