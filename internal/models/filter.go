// ABOUTME: Filtering of view notes by title substring and tag selection.
// ABOUTME: Tag selection uses AND semantics; title match ignores case.

package models

import "strings"

// Query selects notes. Zero values match everything.
type Query struct {
	Title  string
	TagIDs []string
}

func (q Query) IsEmpty() bool {
	return q.Title == "" && len(q.TagIDs) == 0
}

// Matches reports whether the note satisfies both the title and the tag
// criteria. Every selected tag must be present on the note.
func (q Query) Matches(note Note) bool {
	if q.Title != "" && !strings.Contains(strings.ToLower(note.Title), strings.ToLower(q.Title)) {
		return false
	}
	for _, id := range q.TagIDs {
		if !note.HasTag(id) {
			return false
		}
	}
	return true
}

// Filter returns the notes matching q in their original order. An empty
// query returns notes unchanged.
func Filter(notes []Note, q Query) []Note {
	if q.IsEmpty() {
		return notes
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if q.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}
