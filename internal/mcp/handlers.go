package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/annoview/internal/document"
	"github.com/ziadkadry99/annoview/internal/viewer"
)

// handleListFiles returns the checkpoint file names, one per line.
func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := s.src.ListFiles(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing files failed: %v", err)), nil
	}
	if len(files) == 0 {
		return mcp.NewToolResultText("No checkpoint files found."), nil
	}
	return mcp.NewToolResultText(strings.Join(files, "\n")), nil
}

// handleListSections returns the sections of one file with element counts.
func (s *Server) handleListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := request.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: filename"), nil
	}

	doc, err := s.src.SingleDocument(ctx, filename)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %s failed: %v", filename, err)), nil
	}
	sections := doc.Sections()
	if len(sections) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No sections in %s.", filename)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d section(s) in %s:\n", len(sections), filename))
	for _, sec := range sections {
		count := 0
		for _, resp := range doc.ResponsesFor(sec.ID) {
			count += len(resp.Elements)
		}
		sb.WriteString(fmt.Sprintf("- %s (%d element(s))\n", sec.ID, count))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetElements returns the elements of one section as plain text.
func (s *Server) handleGetElements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := request.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: filename"), nil
	}
	section, err := request.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: section"), nil
	}

	doc, err := s.src.SingleDocument(ctx, filename)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %s failed: %v", filename, err)), nil
	}
	content := viewer.LoadContent(doc, section)
	if !content.Visible {
		return mcp.NewToolResultError(fmt.Sprintf("No matching section in %s", filename)), nil
	}

	return mcp.NewToolResultText(formatContent(content)), nil
}

// formatContent renders a section's responses in a compact text form for
// agent consumption.
func formatContent(c viewer.Content) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Section %s\n", c.Section.ID))
	if len(c.Responses) == 0 {
		sb.WriteString("No elements extracted.\n")
		return sb.String()
	}

	for _, resp := range c.Responses {
		if resp.Summary != "" {
			sb.WriteString(fmt.Sprintf("\nSummary: %s\n", resp.Summary))
		}
		for _, el := range resp.Elements {
			sb.WriteString("\n")
			sb.WriteString(formatElement(el))
		}
	}
	return sb.String()
}

func formatElement(el document.Element) string {
	var sb strings.Builder
	badge := viewer.TextContent(viewer.Badge(el.Classification))
	sb.WriteString(fmt.Sprintf("%s [%s] %s\n", el.ID, badge, el.Statement))

	if len(el.Terms) > 0 {
		terms := make([]string, 0, len(el.Terms))
		for _, t := range el.Terms {
			terms = append(terms, fmt.Sprintf("%s (%s)", t.Term, t.Classification))
		}
		sb.WriteString("  Terms: " + strings.Join(terms, ", ") + "\n")
	}
	if len(el.VerbSymbols) > 0 {
		sb.WriteString("  Verbs: " + strings.Join(el.VerbSymbols, ", ") + "\n")
	}
	if src := el.Sources.Display(); src != "" {
		sb.WriteString("  Sources: " + src + "\n")
	}
	return sb.String()
}
