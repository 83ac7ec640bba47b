package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listFilesTool defines the list_files MCP tool.
var listFilesTool = mcp.NewTool("list_files",
	mcp.WithDescription("List the checkpoint files available for annotation review."),
)

// listSectionsTool defines the list_sections MCP tool.
var listSectionsTool = mcp.NewTool("list_sections",
	mcp.WithDescription("List the sections of a checkpoint file in document order, with the number of extracted elements for each."),
	mcp.WithString("filename",
		mcp.Required(),
		mcp.Description("Checkpoint file name as returned by list_files"),
	),
)

// getElementsTool defines the get_elements MCP tool.
var getElementsTool = mcp.NewTool("get_elements",
	mcp.WithDescription("Get the elements extracted for one section: statement, classification, terms, verb symbols and sources."),
	mcp.WithString("filename",
		mcp.Required(),
		mcp.Description("Checkpoint file name as returned by list_files"),
	),
	mcp.WithString("section",
		mcp.Required(),
		mcp.Description("Section id as returned by list_sections"),
	),
)
