// ABOUTME: Note models in stored form (tag IDs) and view form (resolved tags).
// ABOUTME: Provides constructors and the join that derives view notes.

package models

import (
	"slices"

	"github.com/google/uuid"
)

// ShortIDLen is the number of ID characters shown in listings.
const ShortIDLen = 6

// RawNote is the stored form of a note. Tags are referenced by ID so a
// label change is a single registry write.
type RawNote struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Markdown string   `json:"markdown"`
	TagIDs   []string `json:"tagIds"`
}

// Note is the view form: a stored note with its tag IDs resolved against
// the registry. It is derived on demand and never persisted.
type Note struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	Tags     []Tag  `json:"tags"`
}

// NoteData is what the create and edit forms submit.
type NoteData struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	Tags     []Tag  `json:"tags"`
}

func NewRawNote(data NoteData) *RawNote {
	return &RawNote{
		ID:       uuid.NewString(),
		Title:    data.Title,
		Markdown: data.Markdown,
		TagIDs:   TagIDs(data.Tags),
	}
}

// Apply replaces the note's editable fields with data. The ID is kept.
func (n *RawNote) Apply(data NoteData) {
	n.Title = data.Title
	n.Markdown = data.Markdown
	n.TagIDs = TagIDs(data.Tags)
}

func (n *RawNote) ShortID() string {
	return shortID(n.ID)
}

func (n *Note) ShortID() string {
	return shortID(n.ID)
}

// HasTag reports whether the view note carries the tag with the given ID.
func (n *Note) HasTag(id string) bool {
	for _, t := range n.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Data returns the form input that would reproduce this note.
func (n *Note) Data() NoteData {
	return NoteData{
		Title:    n.Title,
		Markdown: n.Markdown,
		Tags:     slices.Clone(n.Tags),
	}
}

// Resolve joins a stored note against the tag registry. The result keeps
// registry order; IDs missing from the registry resolve to nothing.
func Resolve(note RawNote, tags []Tag) Note {
	resolved := make([]Tag, 0, len(note.TagIDs))
	for _, t := range tags {
		if slices.Contains(note.TagIDs, t.ID) {
			resolved = append(resolved, t)
		}
	}
	return Note{
		ID:       note.ID,
		Title:    note.Title,
		Markdown: note.Markdown,
		Tags:     resolved,
	}
}

// WithTags derives the view form of every note, preserving order.
func WithTags(notes []RawNote, tags []Tag) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, Resolve(n, tags))
	}
	return out
}

func shortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}
