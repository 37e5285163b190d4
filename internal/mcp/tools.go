// ABOUTME: MCP tools for note and tag operations.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, optionally filtered by title substring and tags (a note must carry every given tag)",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Case-insensitive title substring"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Tag labels or IDs"}
			}
		}`),
	}, s.handleListNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID or ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// create_note
	s.server.AddTool(&mcp.Tool{
		Name:        "create_note",
		Description: "Create a note with a title, markdown body and tags; unknown tags are created",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"markdown": {"type": "string", "description": "Note body (markdown)"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Tag labels"}
			},
			"required": ["title", "markdown"]
		}`),
	}, s.handleCreateNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title, body or tags; omitted fields are kept",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"markdown": {"type": "string", "description": "New body"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Replacement tag labels"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)

	// list_tags
	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List all tags with how many notes use each",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)

	// create_tag
	s.server.AddTool(&mcp.Tool{
		Name:        "create_tag",
		Description: "Register a tag (returns the existing tag if the label is taken)",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"label": {"type": "string", "description": "Tag label"}
			},
			"required": ["label"]
		}`),
	}, s.handleCreateTag)

	// rename_tag
	s.server.AddTool(&mcp.Tool{
		Name:        "rename_tag",
		Description: "Rename a tag everywhere it is used",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"tag": {"type": "string", "description": "Tag label or ID"},
				"label": {"type": "string", "description": "New label"}
			},
			"required": ["tag", "label"]
		}`),
	}, s.handleRenameTag)

	// delete_tag
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_tag",
		Description: "Delete a tag from the registry; notes keep a stale reference until prune_tags runs",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"tag": {"type": "string", "description": "Tag label or ID"}
			},
			"required": ["tag"]
		}`),
	}, s.handleDeleteTag)

	// prune_tags
	s.server.AddTool(&mcp.Tool{
		Name:        "prune_tags",
		Description: "Remove references to deleted tags from every note",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handlePruneTags)
}

// Tool handlers.
func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	return jsonResult(s.nb.Search(params.Title, params.Tags)), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	note, err := s.nb.FindNote(params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleCreateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title    string   `json:"title"`
		Markdown string   `json:"markdown"`
		Tags     []string `json:"tags"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Title) == "" {
		return errorResult("note title cannot be empty"), nil
	}
	if strings.TrimSpace(params.Markdown) == "" {
		return errorResult("note body cannot be empty"), nil
	}

	tags, err := s.nb.EnsureTags(params.Tags)
	if err != nil {
		return errorResult("failed to resolve tags: %v", err), nil
	}
	note, err := s.nb.CreateNote(models.NoteData{Title: params.Title, Markdown: params.Markdown, Tags: tags})
	if err != nil {
		return errorResult("failed to create note: %v", err), nil
	}

	s.logger.Debug("note created via mcp", "id", note.ID)
	return textResult(fmt.Sprintf("Created note %s", note.ID)), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID       string    `json:"id"`
		Title    *string   `json:"title"`
		Markdown *string   `json:"markdown"`
		Tags     *[]string `json:"tags"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	note, err := s.nb.FindNote(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	data := note.Data()
	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return errorResult("note title cannot be empty"), nil
		}
		data.Title = *params.Title
	}
	if params.Markdown != nil {
		if strings.TrimSpace(*params.Markdown) == "" {
			return errorResult("note body cannot be empty"), nil
		}
		data.Markdown = *params.Markdown
	}
	if params.Tags != nil {
		data.Tags, err = s.nb.EnsureTags(*params.Tags)
		if err != nil {
			return errorResult("failed to resolve tags: %v", err), nil
		}
	}

	if err := s.nb.UpdateNote(note.ID, data); err != nil {
		return errorResult("failed to update note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Updated note %s", note.ID)), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	note, err := s.nb.FindNote(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if err := s.nb.DeleteNote(note.ID); err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Deleted note %s", note.ID)), nil
}

type tagSummary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts := s.nb.TagCounts()
	out := make([]tagSummary, 0, len(counts))
	for _, c := range counts {
		out = append(out, tagSummary{ID: c.Tag.ID, Label: c.Tag.Label, Count: c.Count})
	}
	return jsonResult(out), nil
}

func (s *Server) handleCreateTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Label string `json:"label"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Label) == "" {
		return errorResult("tag label cannot be empty"), nil
	}
	tags, err := s.nb.EnsureTags([]string{params.Label})
	if err != nil {
		return errorResult("failed to create tag: %v", err), nil
	}
	return jsonResult(tags[0]), nil
}

func (s *Server) handleRenameTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Tag   string `json:"tag"`
		Label string `json:"label"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	tag, err := s.nb.FindTag(params.Tag)
	if err != nil {
		return errorResult("failed to find tag: %v", err), nil
	}
	if err := s.nb.UpdateTag(tag.ID, params.Label); err != nil {
		return errorResult("failed to rename tag: %v", err), nil
	}
	return textResult(fmt.Sprintf("Renamed tag %q to %q", tag.Label, strings.TrimSpace(params.Label))), nil
}

func (s *Server) handleDeleteTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Tag string `json:"tag"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	tag, err := s.nb.FindTag(params.Tag)
	if err != nil {
		return errorResult("failed to find tag: %v", err), nil
	}
	if err := s.nb.DeleteTag(tag.ID); err != nil {
		return errorResult("failed to delete tag: %v", err), nil
	}
	return textResult(fmt.Sprintf("Deleted tag %q", tag.Label)), nil
}

func (s *Server) handlePruneTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	removed, err := s.nb.PruneTagRefs()
	if err != nil {
		return errorResult("failed to prune tags: %v", err), nil
	}
	return textResult(fmt.Sprintf("Removed %d stale tag reference(s)", removed)), nil
}

// decodeArgs unmarshals tool arguments; absent arguments leave v as is.
func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}
