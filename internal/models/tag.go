// ABOUTME: Tag model for categorizing notes.
// ABOUTME: Tags live in a registry and are referenced from notes by ID.

package models

import (
	"strings"

	"github.com/google/uuid"
)

type Tag struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// NewTag creates a tag with a fresh ID. The label keeps its case; only
// surrounding whitespace is trimmed.
func NewTag(label string) *Tag {
	return &Tag{
		ID:    uuid.NewString(),
		Label: strings.TrimSpace(label),
	}
}

// SameLabel reports whether two labels name the same tag.
func SameLabel(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// TagIDs returns the IDs of tags in order.
func TagIDs(tags []Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// TagLabels returns the labels of tags in order.
func TagLabels(tags []Tag) []string {
	labels := make([]string, 0, len(tags))
	for _, t := range tags {
		labels = append(labels, t.Label)
	}
	return labels
}
