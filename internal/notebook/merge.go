// ABOUTME: Merge of imported notes and tags into the notebook.
// ABOUTME: Existing IDs are skipped; a failed notes write restores the tags.

package notebook

import (
	"slices"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

// MergeResult counts what Merge added and skipped.
type MergeResult struct {
	NotesAdded   int
	NotesSkipped int
	TagsAdded    int
	TagsSkipped  int
}

// Merge appends tags and notes whose IDs are not present yet. Entries
// with an existing ID are skipped, never overwritten. Entries without an
// ID get a fresh one.
func (nb *Notebook) Merge(notes []models.RawNote, tags []models.Tag) (MergeResult, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	var res MergeResult

	registry := slices.Clone(nb.tags.Get())
	for _, t := range tags {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if indexOfTag(registry, t.ID) >= 0 {
			res.TagsSkipped++
			continue
		}
		registry = append(registry, t)
		res.TagsAdded++
	}

	current := cloneNotes(nb.notes.Get())
	for _, n := range notes {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if indexOfNote(current, n.ID) >= 0 {
			res.NotesSkipped++
			continue
		}
		n.TagIDs = slices.Clone(n.TagIDs)
		current = append(current, n)
		res.NotesAdded++
	}

	previous := nb.tags.Get()
	if res.TagsAdded > 0 {
		if err := nb.setTags(func([]models.Tag) []models.Tag { return registry }); err != nil {
			return MergeResult{}, err
		}
	}
	if res.NotesAdded > 0 {
		if err := nb.setNotes(func([]models.RawNote) []models.RawNote { return current }); err != nil {
			if res.TagsAdded > 0 {
				nb.restoreTags(previous)
			}
			return MergeResult{}, err
		}
	}
	return res, nil
}
