// ABOUTME: Export command for backing up notes.
// ABOUTME: Supports JSON backup, markdown, and raw storage layout formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/transfer"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long: `Export notes as a JSON backup, as markdown files with YAML front
matter, or as the raw storage layout ({"NOTES": [...], "TAGS": [...]}).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		notePrefix, _ := cmd.Flags().GetString("note")

		var notes []models.Note
		if notePrefix != "" {
			note, err := nb.FindNote(notePrefix)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			notes = append(notes, *note)
		} else {
			notes = nb.Notes()
		}

		switch format {
		case "json":
			return exportJSON(notes, outputPath)
		case "md":
			return exportMarkdown(notes, outputPath)
		case "storage":
			data, err := transfer.EncodeStorageDump(nb.RawNotes(), nb.Tags(), notebook.NotesKey, notebook.TagsKey)
			if err != nil {
				return err
			}
			return writeOutput(data, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func exportJSON(notes []models.Note, outputPath string) error {
	wanted := make(map[string]bool, len(notes))
	for _, n := range notes {
		wanted[n.ID] = true
	}
	raw := make([]models.RawNote, 0, len(notes))
	for _, r := range nb.RawNotes() {
		if wanted[r.ID] {
			raw = append(raw, r)
		}
	}

	data, err := json.MarshalIndent(transfer.NewBackup(raw, nb.Tags()), "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(data, outputPath)
}

func exportMarkdown(notes []models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	used := make(map[string]int)
	for _, n := range notes {
		data, err := transfer.EncodeMarkdown(n)
		if err != nil {
			return err
		}

		name := transfer.SanitizeFilename(n.Title)
		if used[name] > 0 {
			name = fmt.Sprintf("%s-%s", name, n.ShortID())
		}
		used[name]++

		filePath := filepath.Join(outputDir, name+".md")
		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputDir)))
	return nil
}

func writeOutput(data []byte, outputPath string) error {
	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputPath, data, 0644)
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md|storage)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("note", "n", "", "single note ID to export")
	rootCmd.AddCommand(exportCmd)
}
