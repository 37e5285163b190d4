// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders markdown content with glamour.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a note",
	Long:  `Display a note's full content with rendered markdown. Unknown notes fall back to the list.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := nb.FindNote(args[0])
		if missingNote(err) {
			return listInstead(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		fmt.Print(ui.FormatNoteHeader(*note))
		content, _ := ui.FormatNoteContent(note.Markdown)
		fmt.Print(content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func missingNote(err error) bool {
	return errors.Is(err, notebook.ErrNoteNotFound) || errors.Is(err, notebook.ErrPrefixTooShort)
}

// listInstead sends an unknown note reference back to the full list.
func listInstead(ref string) error {
	fmt.Println(ui.Warning(fmt.Sprintf("No note %q; showing all notes.", ref)))
	return listNotes("", nil)
}
