package viewer

import (
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/annoview/internal/config"
)

// Renderer builds view trees. It holds no per-session state and is safe for
// concurrent use.
type Renderer struct {
	registry    *Registry
	highlighter *Highlighter
	sections    *SectionRenderer
	log         zerolog.Logger

	// BasePath is the page that selection links point at.
	BasePath string
	// FeedbackAction is the form target for element feedback. Empty hides
	// the feedback forms.
	FeedbackAction string
}

// NewRenderer creates a Renderer.
func NewRenderer(registry *Registry, highlighter *Highlighter, log zerolog.Logger) *Renderer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Renderer{
		registry:    registry,
		highlighter: highlighter,
		sections:    NewSectionRenderer(),
		log:         log,
		BasePath:    "/",
	}
}

// Registry returns the tool registry.
func (r *Renderer) Registry() *Registry { return r.registry }

// Render builds the viewer tree for s.
func (r *Renderer) Render(s ViewState) *html.Node {
	root := elem(atom.Div, "id", "viewer",
		"data-mode", string(s.Mode),
		"data-generation", strconv.FormatUint(s.Generation, 10))

	if s.Mode != config.ModeLegacy {
		root.AppendChild(r.fileSelector(s))
	}
	root.AppendChild(r.tabList(s))

	content := LoadContent(s.Primary, s.ActiveSection())
	layout := elem(atom.Div, "class", "layout")
	appendAll(layout, r.sidebar(s), r.main(s, content))
	root.AppendChild(layout)
	return root
}

func (r *Renderer) fileSelector(s ViewState) *html.Node {
	sel := elem(atom.Select, "name", "file", "multiple", "", "id", "file-select")
	for _, f := range s.Files {
		opt := elem(atom.Option, "value", f)
		if s.IsSelected(f) {
			opt.Attr = append(opt.Attr, html.Attribute{Key: "selected"})
		}
		appendAll(sel, appendAll(opt, text(f)))
	}

	form := elem(atom.Form, "id", "file-selector", "method", "get", "action", r.BasePath)
	return appendAll(form,
		appendAll(elem(atom.Label, "for", "file-select"), text("Checkpoint files")),
		sel,
		elem(atom.Input, "type", "hidden", "name", "tool", "value", s.Tool),
		appendAll(elem(atom.Button, "type", "submit"), text("Show")),
	)
}

func (r *Renderer) tabList(s ViewState) *html.Node {
	ul := elem(atom.Ul, "id", "tab-list")
	for _, t := range s.Tabs.Items {
		class := "tab"
		if t.Active {
			class = "tab active"
		}
		a := elem(atom.A, "href", r.link(s, t.ID, s.Tool), "data-section", t.ID)
		appendAll(ul, appendAll(elem(atom.Li, "class", class), appendAll(a, text(t.ID))))
	}
	return appendAll(elem(atom.Nav, "id", "tabs"), ul)
}

func (r *Renderer) sidebar(s ViewState) *html.Node {
	ul := elem(atom.Ul, "class", "tools")
	for _, t := range r.registry.Tools() {
		class := "tool-link"
		if t.Name == s.Tool {
			class = "tool-link active-tool"
		}
		a := elem(atom.A, "id", "tool-"+t.Name, "class", class,
			"href", r.link(s, s.ActiveSection(), t.Name), "data-tool", t.Name)
		appendAll(ul, appendAll(elem(atom.Li), appendAll(a, text(t.Title))))
	}
	return appendAll(elem(atom.Aside, "id", "sidebar"), ul)
}

func (r *Renderer) main(s ViewState, c Content) *html.Node {
	m := elem(atom.Main)

	section := elem(atom.Div, "id", "section-content")
	if c.Visible {
		nodes, err := r.sections.Render(c.Section.Content)
		if err != nil {
			r.log.Warn().Err(err).Str("section", c.Section.ID).Msg("rendering section as text")
			nodes = []*html.Node{appendAll(elem(atom.P), text(c.Section.Content))}
		}
		appendAll(section, nodes...)
	} else {
		section.Attr = append(section.Attr, html.Attribute{Key: "hidden"})
	}
	m.AppendChild(section)

	tool, ok := r.registry.Lookup(s.Tool)
	box := elem(atom.Div, "id", "tool-content")
	if !c.Visible || !ok {
		box.Attr = append(box.Attr, html.Attribute{Key: "hidden"})
		return appendAll(m, box)
	}
	appendAll(box,
		appendAll(elem(atom.H2, "id", "tool-header"), text(tool.Title)),
		appendAll(elem(atom.Div, "id", "tool-body"), tool.Body(r, s, c)),
	)
	return appendAll(m, box)
}

// elementsBody lists every response for the section with its summary and
// elements, side by side with the comparison files when comparing.
func (r *Renderer) elementsBody(s ViewState, c Content) *html.Node {
	body := elem(atom.Div, "class", "elements")
	for _, resp := range c.Responses {
		block := elem(atom.Div, "class", "response")
		if resp.Summary != "" {
			appendAll(block, appendAll(elem(atom.P, "class", "summary"),
				appendAll(elem(atom.Strong), text("Summary: "+resp.Summary))))
		}

		if s.Comparing() {
			for _, cb := range CompareResponse(resp, s.Comparison) {
				block.AppendChild(r.comparison(s, cb))
			}
		} else {
			for _, el := range resp.Elements {
				item := elem(atom.Div, "class", "element")
				appendAll(item, r.highlighter.Highlight(el), r.feedbackForm(s, el.ID))
				block.AppendChild(item)
			}
		}
		body.AppendChild(block)
	}
	return body
}

func (r *Renderer) comparison(s ViewState, cb ComparisonBlock) *html.Node {
	row := elem(atom.Div, "class", "comparison", "data-element", cb.ElementID)
	for i, col := range cb.Columns {
		cell := elem(atom.Div, "class", "column")
		cell.AppendChild(appendAll(elem(atom.H3), text(col.Title)))
		if col.Element != nil {
			cell.AppendChild(r.highlighter.Highlight(*col.Element))
		} else {
			cell.AppendChild(appendAll(elem(atom.P, "class", "placeholder"), text(col.Placeholder)))
		}
		if i == 0 {
			appendAll(cell, r.feedbackForm(s, cb.ElementID))
		}
		row.AppendChild(cell)
	}
	return row
}

// feedbackForm returns a collapsed form recording a verdict for elementID
// in the primary document, or nil when feedback is disabled.
func (r *Renderer) feedbackForm(s ViewState, elementID string) *html.Node {
	if r.FeedbackAction == "" {
		return nil
	}
	form := elem(atom.Form, "class", "feedback", "method", "post", "action", r.FeedbackAction)
	appendAll(form,
		hidden("filename", feedbackFile(s)),
		hidden("section", s.ActiveSection()),
		hidden("element", elementID),
		hidden("return", r.link(s, s.ActiveSection(), s.Tool)),
	)

	verdict := elem(atom.Select, "name", "verdict")
	for _, v := range []string{"keep", "reject", "unsure"} {
		appendAll(verdict, appendAll(elem(atom.Option, "value", v), text(v)))
	}
	appendAll(form,
		verdict,
		elem(atom.Input, "type", "text", "name", "comment", "placeholder", "Comment"),
		appendAll(elem(atom.Button, "type", "submit"), text("Send")),
	)

	return appendAll(elem(atom.Details, "class", "feedback-box"),
		appendAll(elem(atom.Summary), text("Feedback")),
		form,
	)
}

func feedbackFile(s ViewState) string {
	if s.Mode == config.ModeLegacy {
		return string(config.ModeLegacy)
	}
	return s.PrimaryName()
}

func hidden(name, value string) *html.Node {
	return elem(atom.Input, "type", "hidden", "name", name, "value", value)
}

// link returns a page URL reproducing s with the given section and tool.
func (r *Renderer) link(s ViewState, section, tool string) string {
	q := url.Values{}
	for _, f := range s.Selected {
		q.Add("file", f)
	}
	if section != "" {
		q.Set("section", section)
	}
	if tool != "" {
		q.Set("tool", tool)
	}
	if len(q) == 0 {
		return r.BasePath
	}
	return r.BasePath + "?" + q.Encode()
}

