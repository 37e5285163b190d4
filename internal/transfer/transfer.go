// ABOUTME: Backup formats for moving notebook data in and out.
// ABOUTME: JSON backups, markdown with YAML front matter, and storage dumps.

package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/notebook/internal/models"
	"gopkg.in/yaml.v3"
)

const BackupVersion = "1.0"

var ErrNoFrontMatter = errors.New("missing front matter")

// Backup is the JSON export: both collections in stored form.
type Backup struct {
	ExportedAt time.Time        `json:"exported_at"`
	Version    string           `json:"version"`
	Tags       []models.Tag     `json:"tags"`
	Notes      []models.RawNote `json:"notes"`
}

func NewBackup(notes []models.RawNote, tags []models.Tag) *Backup {
	return &Backup{
		ExportedAt: time.Now(),
		Version:    BackupVersion,
		Tags:       tags,
		Notes:      notes,
	}
}

func DecodeBackup(data []byte) (*Backup, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return &b, nil
}

// FrontMatter is the YAML header of an exported markdown note. Tags are
// labels so the file stays readable outside the notebook.
type FrontMatter struct {
	ID    string   `yaml:"id,omitempty"`
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,omitempty"`
}

// EncodeMarkdown renders a note as a markdown file with front matter.
func EncodeMarkdown(note models.Note) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	fm := FrontMatter{ID: note.ID, Title: note.Title, Tags: models.TagLabels(note.Tags)}
	if err := encoder.Encode(fm); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString("---\n\n")
	buf.WriteString(note.Markdown)

	return buf.Bytes(), nil
}

// DecodeMarkdown splits a markdown file into front matter and body.
func DecodeMarkdown(data []byte) (*FrontMatter, string, error) {
	text := strings.TrimPrefix(string(data), "\ufeff")
	if !strings.HasPrefix(text, "---") {
		return nil, "", ErrNoFrontMatter
	}
	parts := strings.SplitN(text, "---", 3)
	if len(parts) < 3 {
		return nil, "", ErrNoFrontMatter
	}

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return nil, "", fmt.Errorf("parse front matter: %w", err)
	}
	body := strings.TrimLeft(parts[2], "\r\n")
	return &fm, body, nil
}

// StorageDump is the raw persisted layout: each key maps to the JSON
// array stored under it.
type StorageDump map[string]json.RawMessage

// EncodeStorageDump renders the layout with inline arrays.
func EncodeStorageDump(notes []models.RawNote, tags []models.Tag, notesKey, tagsKey string) ([]byte, error) {
	n, err := json.Marshal(notes)
	if err != nil {
		return nil, err
	}
	t, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(StorageDump{notesKey: n, tagsKey: t}, "", "  ")
}

// DecodeStorageDump reads a storage layout. Values may be inline arrays
// or JSON strings holding arrays, which is how browser local storage
// exports them. Missing keys decode to empty collections.
func DecodeStorageDump(data []byte, notesKey, tagsKey string) ([]models.RawNote, []models.Tag, error) {
	var dump StorageDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, nil, fmt.Errorf("decode storage dump: %w", err)
	}

	var notes []models.RawNote
	if err := decodeValue(dump[notesKey], &notes); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", notesKey, err)
	}
	var tags []models.Tag
	if err := decodeValue(dump[tagsKey], &tags); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", tagsKey, err)
	}
	return notes, tags, nil
}

// IsStorageDump reports whether data looks like a storage layout rather
// than a Backup.
func IsStorageDump(data []byte, notesKey, tagsKey string) bool {
	var dump StorageDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return false
	}
	_, hasNotes := dump[notesKey]
	_, hasTags := dump[tagsKey]
	return hasNotes || hasTags
}

func decodeValue(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}
	return json.Unmarshal(raw, v)
}

// SanitizeFilename makes a note title safe to use as a file name.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		name = "untitled"
	}
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
