// ABOUTME: Tests for notebook note operations and persistence.
// ABOUTME: Covers CRUD, prefix lookup, round-trips, and reopen.

package notebook

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/storage"
)

func openTest(t *testing.T) (*Notebook, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	nb, err := Open(store)
	if err != nil {
		t.Fatalf("failed to open notebook: %v", err)
	}
	return nb, store
}

func TestOpenWritesEmptyCollections(t *testing.T) {
	_, store := openTest(t)

	for _, key := range []string{NotesKey, TagsKey} {
		data, err := store.Get(key)
		if err != nil {
			t.Fatalf("expected %s to be written: %v", key, err)
		}
		if string(data) != "[]" {
			t.Errorf("expected %s to be [], got %s", key, data)
		}
	}
}

func TestCreateAndGetNote(t *testing.T) {
	nb, _ := openTest(t)
	work, _ := nb.EnsureTags([]string{"work"})

	created, err := nb.CreateNote(models.NoteData{Title: "Title", Markdown: "Body", Tags: work})
	if err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	got, err := nb.GetNote(created.ID)
	if err != nil {
		t.Fatalf("failed to get note: %v", err)
	}
	if got.Title != "Title" || got.Markdown != "Body" {
		t.Errorf("unexpected note %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0].Label != "work" {
		t.Errorf("expected tag 'work', got %v", got.Tags)
	}
}

func TestCreateAppends(t *testing.T) {
	nb, _ := openTest(t)

	first, _ := nb.CreateNote(models.NoteData{Title: "first"})
	second, _ := nb.CreateNote(models.NoteData{Title: "second"})

	notes := nb.Notes()
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID != first.ID || notes[1].ID != second.ID {
		t.Error("expected notes in creation order")
	}
}

func TestUpdateNote(t *testing.T) {
	nb, _ := openTest(t)
	note, _ := nb.CreateNote(models.NoteData{Title: "Original", Markdown: "old"})
	tags, _ := nb.EnsureTags([]string{"a", "b"})

	err := nb.UpdateNote(note.ID, models.NoteData{Title: "Updated", Markdown: "new", Tags: tags})
	if err != nil {
		t.Fatalf("failed to update note: %v", err)
	}

	got, _ := nb.GetNote(note.ID)
	if got.Title != "Updated" || got.Markdown != "new" {
		t.Errorf("expected updated fields, got %+v", got)
	}
	if len(got.Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", got.Tags)
	}
}

func TestUpdateMissingNote(t *testing.T) {
	nb, _ := openTest(t)

	err := nb.UpdateNote("missing", models.NoteData{Title: "x"})
	if !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	nb, _ := openTest(t)
	note, _ := nb.CreateNote(models.NoteData{Title: "ToDelete"})

	if err := nb.DeleteNote(note.ID); err != nil {
		t.Fatalf("failed to delete note: %v", err)
	}

	if _, err := nb.GetNote(note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
	if err := nb.DeleteNote(note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound deleting twice, got %v", err)
	}
}

func TestCreateThenDeleteRestoresState(t *testing.T) {
	nb, store := openTest(t)
	_, _ = nb.CreateNote(models.NoteData{Title: "keep one"})
	_, _ = nb.CreateNote(models.NoteData{Title: "keep two"})

	before, _ := store.Get(NotesKey)

	note, _ := nb.CreateNote(models.NoteData{Title: "temporary", Markdown: "x"})
	if err := nb.DeleteNote(note.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	after, _ := store.Get(NotesKey)
	if string(before) != string(after) {
		t.Errorf("expected stored notes to round-trip\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestFindNoteByPrefix(t *testing.T) {
	nb, _ := openTest(t)
	note, _ := nb.CreateNote(models.NoteData{Title: "Test"})

	got, err := nb.FindNote(note.ID[:8])
	if err != nil {
		t.Fatalf("failed to find note by prefix: %v", err)
	}
	if got.ID != note.ID {
		t.Errorf("expected ID %v, got %v", note.ID, got.ID)
	}
}

func TestFindNoteByFullShortID(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set(NotesKey, []byte(`[{"id":"n1","title":"short","markdown":"","tagIds":[]}]`))
	nb, err := Open(store)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	got, err := nb.FindNote("n1")
	if err != nil {
		t.Fatalf("expected exact ID lookup to work below prefix length: %v", err)
	}
	if got.Title != "short" {
		t.Errorf("unexpected note %+v", got)
	}
}

func TestFindNotePrefixTooShort(t *testing.T) {
	nb, _ := openTest(t)

	if _, err := nb.FindNote("abc"); !errors.Is(err, ErrPrefixTooShort) {
		t.Errorf("expected ErrPrefixTooShort, got %v", err)
	}
}

func TestFindNoteAmbiguousPrefix(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set(NotesKey, []byte(`[
		{"id":"abcdef-1","title":"one","markdown":"","tagIds":[]},
		{"id":"abcdef-2","title":"two","markdown":"","tagIds":[]}
	]`))
	nb, _ := Open(store)

	if _, err := nb.FindNote("abcdef"); !errors.Is(err, ErrAmbiguousPrefix) {
		t.Errorf("expected ErrAmbiguousPrefix, got %v", err)
	}
	if _, err := nb.FindNote("zzzzzz"); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	nb, _ := openTest(t)
	tags, _ := nb.EnsureTags([]string{"a"})
	_, _ = nb.CreateNote(models.NoteData{Title: "x", Tags: tags})

	raw := nb.RawNotes()
	raw[0].Title = "mutated"
	raw[0].TagIDs[0] = "mutated"

	again := nb.RawNotes()
	if again[0].Title != "x" || again[0].TagIDs[0] != tags[0].ID {
		t.Error("expected callers not to alias stored state")
	}
}

func TestReopenKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.db")
	store, err := storage.OpenSQLite(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	nb, _ := Open(store)
	tags, _ := nb.EnsureTags([]string{"persist"})
	note, _ := nb.CreateNote(models.NoteData{Title: "Saved", Markdown: "body", Tags: tags})
	_ = store.Close()

	store, err = storage.OpenSQLite(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = store.Close() }()
	nb, err = Open(store)
	if err != nil {
		t.Fatalf("failed to reopen notebook: %v", err)
	}

	got, err := nb.GetNote(note.ID)
	if err != nil {
		t.Fatalf("expected note to survive reopen: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].Label != "persist" {
		t.Errorf("expected tag to survive reopen, got %v", got.Tags)
	}
}

func TestOpenRejectsCorruptNotes(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set(NotesKey, []byte(`"not an array"`))

	if _, err := Open(store); err == nil {
		t.Error("expected error for undecodable notes")
	}
}

func TestReplace(t *testing.T) {
	nb, store := openTest(t)
	_, _ = nb.CreateNote(models.NoteData{Title: "old"})

	notes := []models.RawNote{{ID: "n1", Title: "new", TagIDs: []string{"t1"}}}
	tags := []models.Tag{{ID: "t1", Label: "restored"}}
	if err := nb.Replace(notes, tags); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	views := nb.Notes()
	if len(views) != 1 || views[0].Title != "new" || views[0].Tags[0].Label != "restored" {
		t.Errorf("unexpected notes after replace: %+v", views)
	}

	var stored []models.RawNote
	data, _ := store.Get(NotesKey)
	if err := json.Unmarshal(data, &stored); err != nil || len(stored) != 1 {
		t.Errorf("expected replaced notes to be persisted, got %s", data)
	}
}

var errDiskFull = errors.New("disk full")

// flakyStore fails writes to one key while failKey is set.
type flakyStore struct {
	*storage.MemoryStore
	failKey string
}

func (s *flakyStore) Set(key string, value []byte) error {
	if key == s.failKey {
		return errDiskFull
	}
	return s.MemoryStore.Set(key, value)
}

func openFlaky(t *testing.T) (*Notebook, *flakyStore) {
	t.Helper()
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	nb, err := Open(store)
	if err != nil {
		t.Fatalf("failed to open notebook: %v", err)
	}
	return nb, store
}

func TestReplaceRestoresTagsWhenNotesWriteFails(t *testing.T) {
	nb, store := openFlaky(t)
	tags, _ := nb.EnsureTags([]string{"old"})
	_, _ = nb.CreateNote(models.NoteData{Title: "kept", Tags: tags})

	store.failKey = NotesKey
	err := nb.Replace(
		[]models.RawNote{{ID: "n1", Title: "new", TagIDs: []string{"x"}}},
		[]models.Tag{{ID: "x", Label: "new"}},
	)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected write error, got %v", err)
	}

	if labels := models.TagLabels(nb.Tags()); len(labels) != 1 || labels[0] != "old" {
		t.Errorf("expected tags to be restored, got %v", labels)
	}
	if nb.StaleRefs() != 0 {
		t.Errorf("expected no stale references, got %d", nb.StaleRefs())
	}

	var stored []models.Tag
	data, _ := store.Get(TagsKey)
	if err := json.Unmarshal(data, &stored); err != nil || len(stored) != 1 || stored[0].Label != "old" {
		t.Errorf("expected persisted tags to be restored, got %s", data)
	}
	if notes := nb.Notes(); len(notes) != 1 || notes[0].Title != "kept" {
		t.Errorf("expected notes untouched, got %+v", notes)
	}
}
