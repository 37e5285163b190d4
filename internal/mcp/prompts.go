// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-notes",
		Description: "Get suggestions for organizing and tagging notes",
	}, s.getOrganizeNotesPrompt)
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID, ok := req.Params.Arguments["note_id"]
	if !ok || noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}

	template := fmt.Sprintf(`Please summarize the note with ID: %s

1. Use the get_note tool to retrieve the note
2. Read and analyze the markdown body
3. Create a concise summary highlighting:
   - Main topic or theme
   - Key points or takeaways
   - Important details or action items
4. Use the update_note tool to add a "Summary" section at the top of the body`, noteID)

	return userPrompt(template), nil
}

func (s *Server) getOrganizeNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := fmt.Sprintf(`Help me organize my notes. There are currently %d notes and %d tags.

1. Use the list_tags tool to see the existing tags and how often they are used
2. Use the list_notes tool to see all notes with their tags
3. Identify common themes and suggest a tagging scheme
4. Point out tags that are near-duplicates and could be merged with rename_tag
5. Point out unused tags that could be removed with delete_tag

Please provide specific recommendations with note IDs and suggested tags.`,
		len(s.nb.RawNotes()), len(s.nb.Tags()))

	return userPrompt(template), nil
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}
