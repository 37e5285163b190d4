// ABOUTME: Add command for creating new notes.
// ABOUTME: Supports inline content, file input, an interactive form, or $EDITOR.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new note",
	Long: `Create a new note. With no title and no content on a terminal, an
interactive form asks for the title, tags and body. Otherwise the body is
taken from --content, --file, or $EDITOR.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tagsFlag, _ := cmd.Flags().GetString("tags")
		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")

		var title string
		if len(args) > 0 {
			title = args[0]
		}

		content, err := readContent(contentFlag, fileFlag)
		if err != nil {
			return err
		}

		var data models.NoteData
		if title == "" && content == "" && interactive() {
			initial := models.NoteData{}
			if tagsFlag != "" {
				initial.Tags, err = nb.EnsureTags(ui.SplitLabels(tagsFlag))
				if err != nil {
					return fmt.Errorf("failed to resolve tags: %w", err)
				}
			}
			res, err := ui.RunNoteForm("New Note", initial, nb.Tags())
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
		} else {
			if title == "" {
				return fmt.Errorf("a title is required when not running interactively")
			}
			if content == "" {
				content, err = openEditor("")
				if err != nil {
					return fmt.Errorf("failed to open editor: %w", err)
				}
			}
			data = models.NoteData{Title: title, Markdown: content}
			if err := validateNote(data); err != nil {
				return err
			}
			data.Tags, err = nb.EnsureTags(ui.SplitLabels(tagsFlag))
			if err != nil {
				return fmt.Errorf("failed to resolve tags: %w", err)
			}
		}

		if err := validateNote(data); err != nil {
			return err
		}
		note, err := nb.CreateNote(data)
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created note %s", note.ShortID())))
		return nil
	},
}

func init() {
	addCmd.Flags().String("tags", "", "comma-separated tag labels")
	addCmd.Flags().String("content", "", "note content (inline)")
	addCmd.Flags().String("file", "", "read content from file")
	rootCmd.AddCommand(addCmd)
}
