// ABOUTME: Helpers shared by the note commands.
// ABOUTME: $EDITOR round-trips and turning form results into note data.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
)

// openEditor edits initial in the configured editor and returns the
// saved text. The editor setting may carry arguments, e.g. "code -w".
func openEditor(initial string) (string, error) {
	editor := strings.Fields(cfg.Editor)
	if len(editor) == 0 {
		editor = []string{"vim"}
	}

	tmpFile, err := os.CreateTemp("", "notebook-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	args := append(editor[1:], tmpFile.Name())
	cmd := exec.Command(editor[0], args...) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// readContent returns the body given by --content or --file, or "" when
// neither flag is set.
func readContent(content, file string) (string, error) {
	if content != "" {
		return content, nil
	}
	if file == "" {
		return "", nil
	}
	data, err := os.ReadFile(file) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// formToData resolves the form's picked tag IDs against the registry and
// registers any newly typed labels.
func formToData(res *ui.NoteFormResult) (models.NoteData, error) {
	data := models.NoteData{Title: res.Title, Markdown: res.Markdown}

	for _, t := range nb.Tags() {
		if slices.Contains(res.TagIDs, t.ID) {
			data.Tags = append(data.Tags, t)
		}
	}

	created, err := nb.EnsureTags(res.NewLabels)
	if err != nil {
		return data, fmt.Errorf("failed to create tags: %w", err)
	}
	for _, t := range created {
		if !slices.ContainsFunc(data.Tags, func(have models.Tag) bool { return have.ID == t.ID }) {
			data.Tags = append(data.Tags, t)
		}
	}
	return data, nil
}

func validateNote(data models.NoteData) error {
	if strings.TrimSpace(data.Title) == "" {
		return fmt.Errorf("note title cannot be empty")
	}
	if strings.TrimSpace(data.Markdown) == "" {
		return fmt.Errorf("note content cannot be empty")
	}
	return nil
}
