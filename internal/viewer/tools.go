package viewer

import (
	"golang.org/x/net/html"
)

// ToolElements is the only built-in tool.
const ToolElements = "elements"

// Tool is a named view of the active section.
type Tool struct {
	Name  string
	Title string
	// Body renders the tool for content that is known to be visible.
	Body func(r *Renderer, s ViewState, c Content) *html.Node
}

// Registry holds the available tools in registration order.
type Registry struct {
	tools []Tool
	index map[string]int
}

// NewRegistry creates a Registry with the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// DefaultRegistry returns a Registry with the elements tool.
func DefaultRegistry() *Registry {
	return NewRegistry(Tool{
		Name:  ToolElements,
		Title: "Elements extraction and classification",
		Body:  (*Renderer).elementsBody,
	})
}

// Register adds t, replacing any tool with the same name.
func (r *Registry) Register(t Tool) {
	if i, ok := r.index[t.Name]; ok {
		r.tools[i] = t
		return
	}
	r.index[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
}

// Lookup returns the tool called name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Tools returns the tools in registration order.
func (r *Registry) Tools() []Tool {
	return append([]Tool(nil), r.tools...)
}

// Default returns the name of the first registered tool.
func (r *Registry) Default() string {
	if len(r.tools) == 0 {
		return ""
	}
	return r.tools[0].Name
}
