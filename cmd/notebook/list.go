// ABOUTME: List command for displaying notes.
// ABOUTME: Filters by title substring and by tags, all of which must match.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long: `List notes, optionally filtered. --title matches a case-insensitive
substring of the title; each --tag (label or ID) must be on the note.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		titleFlag, _ := cmd.Flags().GetString("title")
		tagFlags, _ := cmd.Flags().GetStringArray("tag")
		return listNotes(titleFlag, tagFlags)
	},
}

func listNotes(title string, tagRefs []string) error {
	total := len(nb.RawNotes())

	q, err := nb.Query(title, tagRefs)
	if errors.Is(err, notebook.ErrTagNotFound) {
		fmt.Println(ui.Warning(err.Error()))
		fmt.Print(ui.FormatNoteList(nil))
		return nil
	}
	if err != nil {
		return err
	}

	notes := nb.Filter(q)

	var selected []models.Tag
	for _, id := range q.TagIDs {
		if tag, err := nb.FindTag(id); err == nil {
			selected = append(selected, *tag)
		}
	}

	fmt.Print(ui.FormatFilterSummary(title, selected, len(notes), total))
	fmt.Print(ui.FormatNoteList(notes))
	fmt.Print(ui.FormatStaleRefs(nb.StaleRefs()))
	return nil
}

func init() {
	listCmd.Flags().StringP("title", "s", "", "filter by title substring")
	listCmd.Flags().StringArrayP("tag", "t", nil, "filter by tag (repeatable)")
	rootCmd.AddCommand(listCmd)
}
