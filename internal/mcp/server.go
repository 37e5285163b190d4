// ABOUTME: MCP server for notebook integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for note management.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/notebook/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const Version = "1.0.0"

type Server struct {
	server *mcp.Server
	nb     *notebook.Notebook
	logger *log.Logger
}

func NewServer(nb *notebook.Notebook, logger *log.Logger) *Server {
	s := &Server{nb: nb, logger: logger}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notebook",
			Version: Version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to encode result: %v", err)
	}
	return textResult(string(data))
}
