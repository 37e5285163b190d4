// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Supports JSON backups, storage layout dumps, and markdown files.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/transfer"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long: `Import notes from a JSON backup, a storage layout dump, a markdown
file, or a directory of markdown files. Notes and tags whose IDs already
exist are skipped; --replace swaps the whole notebook for a JSON import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		replace, _ := cmd.Flags().GetBool("replace")

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		if info.IsDir() {
			return importMarkdownDir(path)
		}

		if strings.HasSuffix(path, ".json") {
			return importJSON(path, replace)
		}

		if err := importMarkdownFile(path); err != nil {
			return err
		}
		fmt.Println(ui.Success("Imported 1 note"))
		return nil
	},
}

func importJSON(path string, replace bool) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}

	var notes []models.RawNote
	var tags []models.Tag
	if transfer.IsStorageDump(data, notebook.NotesKey, notebook.TagsKey) {
		notes, tags, err = transfer.DecodeStorageDump(data, notebook.NotesKey, notebook.TagsKey)
	} else {
		var backup *transfer.Backup
		backup, err = transfer.DecodeBackup(data)
		if backup != nil {
			notes, tags = backup.Notes, backup.Tags
		}
	}
	if err != nil {
		return err
	}

	if replace {
		if err := nb.Replace(notes, tags); err != nil {
			return fmt.Errorf("failed to replace notebook: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Replaced notebook with %d notes and %d tags", len(notes), len(tags))))
		return nil
	}

	res, err := nb.Merge(notes, tags)
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	if res.NotesSkipped > 0 || res.TagsSkipped > 0 {
		logger.Warn("skipped existing entries", "notes", res.NotesSkipped, "tags", res.TagsSkipped)
	}
	fmt.Println(ui.Success(fmt.Sprintf("Imported %d notes and %d tags", res.NotesAdded, res.TagsAdded)))
	return nil
}

func importMarkdownDir(dir string) error {
	count := 0

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		if err := importMarkdownFile(path); err != nil {
			logger.Warn("skipped markdown file", "path", path, "err", err)
			return nil
		}
		count++
		return nil
	})

	if err != nil {
		return err
	}

	fmt.Println(ui.Success(fmt.Sprintf("Imported %d notes", count)))
	return nil
}

func importMarkdownFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}

	fm, body, err := transfer.DecodeMarkdown(data)
	switch {
	case errors.Is(err, transfer.ErrNoFrontMatter):
		fm, body = &transfer.FrontMatter{}, string(data)
	case err != nil:
		return err
	}

	if fm.ID != "" {
		if _, err := nb.GetNote(fm.ID); err == nil {
			return fmt.Errorf("note %s already exists", fm.ID)
		}
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Errorf("note content cannot be empty")
	}

	tags, err := nb.EnsureTags(fm.Tags)
	if err != nil {
		return err
	}

	if fm.ID != "" {
		_, err = nb.Merge([]models.RawNote{{ID: fm.ID, Title: title, Markdown: body, TagIDs: models.TagIDs(tags)}}, nil)
		return err
	}
	_, err = nb.CreateNote(models.NoteData{Title: title, Markdown: body, Tags: tags})
	return err
}

func init() {
	importCmd.Flags().Bool("replace", false, "replace the notebook instead of merging (JSON only)")
	rootCmd.AddCommand(importCmd)
}
