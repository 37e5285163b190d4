// ABOUTME: Tag reference resolution for note filtering.
// ABOUTME: Turns labels or IDs into a models.Query and runs it.

package notebook

import (
	"strings"

	"github.com/harper/notebook/internal/models"
)

// Query builds a filter query from a title fragment and tag references
// (IDs or labels). Blank references are skipped. An unknown reference
// returns ErrTagNotFound: no note can carry a tag that does not exist.
func (nb *Notebook) Query(title string, tagRefs []string) (models.Query, error) {
	q := models.Query{Title: title}
	for _, ref := range tagRefs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		tag, err := nb.FindTag(ref)
		if err != nil {
			return q, err
		}
		q.TagIDs = append(q.TagIDs, tag.ID)
	}
	return q, nil
}

// Search resolves tag references and filters in one step. Unknown tags
// yield no notes rather than an error.
func (nb *Notebook) Search(title string, tagRefs []string) []models.Note {
	q, err := nb.Query(title, tagRefs)
	if err != nil {
		return []models.Note{}
	}
	return nb.Filter(q)
}
