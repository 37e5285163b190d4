// ABOUTME: MCP resources for exposing notes as readable resources.
// ABOUTME: Allows AI agents to access note content via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noteURIPrefix = "notebook://note/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ref, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || ref == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	note, err := s.nb.FindNote(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     renderNote(note),
			},
		},
	}, nil
}

func renderNote(note *models.Note) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", note.Title))
	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags:** %s\n\n", strings.Join(models.TagLabels(note.Tags), ", ")))
	}
	sb.WriteString(note.Markdown)
	return sb.String()
}
