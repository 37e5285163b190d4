// ABOUTME: Tag registry operations for the notebook.
// ABOUTME: Tags are renamed in one place; deletes leave note references.

package notebook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/harper/notebook/internal/models"
)

// TagCount is a registry entry with the number of notes referencing it.
type TagCount struct {
	Tag   models.Tag
	Count int
}

// AddTag registers tag. IDs must be unique.
func (nb *Notebook) AddTag(tag models.Tag) error {
	if strings.TrimSpace(tag.Label) == "" {
		return ErrEmptyLabel
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()

	if indexOfTag(nb.tags.Get(), tag.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateTag, tag.ID)
	}
	return nb.setTags(func(tags []models.Tag) []models.Tag {
		return append(slices.Clone(tags), tag)
	})
}

// EnsureTags resolves labels to registered tags, matching case-insensitively,
// and registers a new tag for every label that has none. Blank labels are
// skipped and repeated labels resolve once.
func (nb *Notebook) EnsureTags(labels []string) ([]models.Tag, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	registry := slices.Clone(nb.tags.Get())
	created := false
	var out []models.Tag
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		tag, ok := tagByLabel(registry, label)
		if !ok {
			tag = *models.NewTag(label)
			registry = append(registry, tag)
			created = true
		}
		if indexOfTag(out, tag.ID) < 0 {
			out = append(out, tag)
		}
	}

	if created {
		if err := nb.setTags(func([]models.Tag) []models.Tag { return registry }); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateTag relabels a tag. Notes referencing it pick the new label up
// through the join; their tag ID lists are not touched. A label held by
// another tag is rejected with ErrDuplicateTag.
func (nb *Notebook) UpdateTag(id, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyLabel
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()

	tags := slices.Clone(nb.tags.Get())
	i := indexOfTag(tags, id)
	if i < 0 {
		return ErrTagNotFound
	}
	for _, other := range tags {
		if other.ID != id && models.SameLabel(other.Label, label) {
			return fmt.Errorf("%w: %s", ErrDuplicateTag, other.Label)
		}
	}
	tags[i].Label = label
	return nb.setTags(func([]models.Tag) []models.Tag { return tags })
}

// DeleteTag removes a tag from the registry only. Notes keep the stale ID,
// which no longer resolves; PruneTagRefs cleans those up.
func (nb *Notebook) DeleteTag(id string) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	tags := nb.tags.Get()
	i := indexOfTag(tags, id)
	if i < 0 {
		return ErrTagNotFound
	}
	kept := make([]models.Tag, 0, len(tags)-1)
	kept = append(kept, tags[:i]...)
	kept = append(kept, tags[i+1:]...)
	return nb.setTags(func([]models.Tag) []models.Tag { return kept })
}

// PruneTagRefs drops tag IDs that are not in the registry from every note
// and returns how many references were removed.
func (nb *Notebook) PruneTagRefs() (int, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	tags := nb.tags.Get()
	notes := cloneNotes(nb.notes.Get())
	removed := 0
	for i := range notes {
		kept := notes[i].TagIDs[:0]
		for _, id := range notes[i].TagIDs {
			if indexOfTag(tags, id) >= 0 {
				kept = append(kept, id)
			} else {
				removed++
			}
		}
		notes[i].TagIDs = kept
	}

	if removed == 0 {
		return 0, nil
	}
	if err := nb.setNotes(func([]models.RawNote) []models.RawNote { return notes }); err != nil {
		return 0, err
	}
	nb.logger.Info("pruned stale tag references", "removed", removed)
	return removed, nil
}

// FindTag looks a tag up by exact ID, then by label ignoring case.
func (nb *Notebook) FindTag(ref string) (*models.Tag, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	tags := nb.tags.Get()
	if i := indexOfTag(tags, ref); i >= 0 {
		tag := tags[i]
		return &tag, nil
	}
	if tag, ok := tagByLabel(tags, ref); ok {
		return &tag, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTagNotFound, ref)
}

// TagCounts lists the registry in order with reference counts. Stale IDs
// in notes are not counted.
func (nb *Notebook) TagCounts() []TagCount {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	counts := make(map[string]int)
	for _, n := range nb.notes.Get() {
		for _, id := range n.TagIDs {
			counts[id]++
		}
	}

	tags := nb.tags.Get()
	out := make([]TagCount, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagCount{Tag: t, Count: counts[t.ID]})
	}
	return out
}

// StaleRefs counts note tag references that no longer resolve.
func (nb *Notebook) StaleRefs() int {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	tags := nb.tags.Get()
	stale := 0
	for _, n := range nb.notes.Get() {
		for _, id := range n.TagIDs {
			if indexOfTag(tags, id) < 0 {
				stale++
			}
		}
	}
	return stale
}

func indexOfTag(tags []models.Tag, id string) int {
	for i, t := range tags {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func tagByLabel(tags []models.Tag, label string) (models.Tag, bool) {
	for _, t := range tags {
		if models.SameLabel(t.Label, label) {
			return t, true
		}
	}
	return models.Tag{}, false
}
