// ABOUTME: Tests for note filtering.
// ABOUTME: Covers title substring, tag AND semantics, and the empty query.

package models

import "testing"

func filterFixture() []Note {
	work := Tag{ID: "w", Label: "work"}
	urgent := Tag{ID: "u", Label: "urgent"}
	return []Note{
		{ID: "1", Title: "Meeting Notes", Tags: []Tag{work, urgent}},
		{ID: "2", Title: "Grocery list", Tags: nil},
		{ID: "3", Title: "Team meeting", Tags: []Tag{work}},
	}
}

func ids(notes []Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	notes := filterFixture()

	got := Filter(notes, Query{})

	if len(got) != len(notes) {
		t.Fatalf("expected %d notes, got %d", len(notes), len(got))
	}
	for i := range notes {
		if got[i].ID != notes[i].ID {
			t.Errorf("position %d: expected %q, got %q", i, notes[i].ID, got[i].ID)
		}
	}
}

func TestFilterTitleIgnoresCase(t *testing.T) {
	got := ids(Filter(filterFixture(), Query{Title: "MEETING"}))

	if len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("expected [1 3], got %v", got)
	}
}

func TestFilterTagsRequireAll(t *testing.T) {
	got := ids(Filter(filterFixture(), Query{TagIDs: []string{"w", "u"}}))

	if len(got) != 1 || got[0] != "1" {
		t.Errorf("expected [1], got %v", got)
	}
}

func TestFilterTitleAndTags(t *testing.T) {
	got := ids(Filter(filterFixture(), Query{Title: "team", TagIDs: []string{"w"}}))

	if len(got) != 1 || got[0] != "3" {
		t.Errorf("expected [3], got %v", got)
	}
}

func TestFilterUnknownTagMatchesNothing(t *testing.T) {
	got := Filter(filterFixture(), Query{TagIDs: []string{"missing"}})

	if len(got) != 0 {
		t.Errorf("expected no notes, got %v", ids(got))
	}
}
