// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Uses flags, the interactive form, or $EDITOR for the body.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long: `Edit a note. --title, --content and --tags replace those fields
(--tags "" clears the tags). Without flags, a terminal gets the
interactive form pre-filled from the note; otherwise $EDITOR opens the body.
Unknown notes fall back to the list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := nb.FindNote(args[0])
		if missingNote(err) {
			return listInstead(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		data := note.Data()
		flags := cmd.Flags()
		switch {
		case flags.Changed("title") || flags.Changed("content") || flags.Changed("tags"):
			if flags.Changed("title") {
				data.Title, _ = flags.GetString("title")
			}
			if flags.Changed("content") {
				data.Markdown, _ = flags.GetString("content")
			}
			if flags.Changed("tags") {
				tagsFlag, _ := flags.GetString("tags")
				data.Tags, err = nb.EnsureTags(ui.SplitLabels(tagsFlag))
				if err != nil {
					return fmt.Errorf("failed to resolve tags: %w", err)
				}
			}
		case interactive():
			res, err := ui.RunNoteForm("Edit Note", data, nb.Tags())
			if errors.Is(err, ui.ErrCancelled) {
				fmt.Println("Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			if data, err = formToData(res); err != nil {
				return err
			}
		default:
			newContent, err := openEditor(note.Markdown)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			if newContent == note.Markdown {
				fmt.Println("No changes made.")
				return nil
			}
			data.Markdown = newContent
		}

		if err := validateNote(data); err != nil {
			return err
		}
		if err := nb.UpdateNote(note.ID, data); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s", note.ShortID())))
		return nil
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("content", "", "new content")
	editCmd.Flags().String("tags", "", "replacement comma-separated tag labels")
	rootCmd.AddCommand(editCmd)
}
