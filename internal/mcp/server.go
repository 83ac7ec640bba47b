package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/annoview/internal/viewer"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes checkpoint documents to agents.
type Server struct {
	src viewer.Source
	mcp *server.MCPServer
}

// NewServer creates a new MCP server reading from src.
func NewServer(src viewer.Source) *Server {
	s := &Server{src: src}

	s.mcp = server.NewMCPServer(
		"annoview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listFilesTool, s.handleListFiles)
	s.mcp.AddTool(listSectionsTool, s.handleListSections)
	s.mcp.AddTool(getElementsTool, s.handleGetElements)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
