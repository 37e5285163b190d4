// ABOUTME: Notebook owns the persisted note and tag collections.
// ABOUTME: All mutations go through it and are written before returning.

package notebook

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/storage"
)

const (
	NotesKey = "NOTES"
	TagsKey  = "TAGS"

	// MinPrefixLen is the shortest ID prefix accepted by FindNote.
	MinPrefixLen = 6
)

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrPrefixTooShort  = fmt.Errorf("prefix must be at least %d characters", MinPrefixLen)
	ErrAmbiguousPrefix = errors.New("prefix matches multiple notes")
	ErrDuplicateTag    = errors.New("tag already exists")
	ErrEmptyLabel      = errors.New("tag label cannot be empty")
)

// Notebook is the single owner of notebook state. Reads return copies;
// callers never hold references into the stored collections.
type Notebook struct {
	mu     sync.Mutex
	notes  *storage.Binding[[]models.RawNote]
	tags   *storage.Binding[[]models.Tag]
	logger *log.Logger
}

type Option func(*Notebook)

func WithLogger(logger *log.Logger) Option {
	return func(nb *Notebook) {
		nb.logger = logger
	}
}

// Open binds the notebook to store, creating empty collections when the
// keys are absent.
func Open(store storage.Store, opts ...Option) (*Notebook, error) {
	nb := &Notebook{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(nb)
	}

	var err error
	nb.notes, err = storage.Bind(store, NotesKey, func() []models.RawNote { return []models.RawNote{} })
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	nb.tags, err = storage.Bind(store, TagsKey, func() []models.Tag { return []models.Tag{} })
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	nb.logger.Debug("notebook opened", "notes", len(nb.notes.Get()), "tags", len(nb.tags.Get()))
	return nb, nil
}

// Notes returns every note in view form, in creation order.
func (nb *Notebook) Notes() []models.Note {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return models.WithTags(nb.notes.Get(), nb.tags.Get())
}

// RawNotes returns every note in stored form.
func (nb *Notebook) RawNotes() []models.RawNote {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return cloneNotes(nb.notes.Get())
}

func (nb *Notebook) Tags() []models.Tag {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return slices.Clone(nb.tags.Get())
}

// Filter returns the view notes matching q.
func (nb *Notebook) Filter(q models.Query) []models.Note {
	return models.Filter(nb.Notes(), q)
}

func (nb *Notebook) CreateNote(data models.NoteData) (*models.RawNote, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	note := models.NewRawNote(data)
	err := nb.setNotes(func(notes []models.RawNote) []models.RawNote {
		return append(cloneNotes(notes), *note)
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// UpdateNote replaces title, markdown and tag references of the note
// with the given ID.
func (nb *Notebook) UpdateNote(id string, data models.NoteData) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	notes := cloneNotes(nb.notes.Get())
	i := indexOfNote(notes, id)
	if i < 0 {
		return ErrNoteNotFound
	}
	notes[i].Apply(data)
	return nb.setNotes(func([]models.RawNote) []models.RawNote { return notes })
}

func (nb *Notebook) DeleteNote(id string) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	notes := nb.notes.Get()
	i := indexOfNote(notes, id)
	if i < 0 {
		return ErrNoteNotFound
	}
	kept := make([]models.RawNote, 0, len(notes)-1)
	kept = append(kept, notes[:i]...)
	kept = append(kept, notes[i+1:]...)
	return nb.setNotes(func([]models.RawNote) []models.RawNote { return kept })
}

// GetNote returns the view form of the note with exactly this ID.
func (nb *Notebook) GetNote(id string) (*models.Note, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	notes := nb.notes.Get()
	i := indexOfNote(notes, id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	note := models.Resolve(notes[i], nb.tags.Get())
	return &note, nil
}

// FindNote looks a note up by full ID, or by an unambiguous ID prefix of
// at least MinPrefixLen characters.
func (nb *Notebook) FindNote(ref string) (*models.Note, error) {
	if note, err := nb.GetNote(ref); err == nil {
		return note, nil
	}
	if len(ref) < MinPrefixLen {
		return nil, ErrPrefixTooShort
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()

	var matches []models.RawNote
	for _, n := range nb.notes.Get() {
		if strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNoteNotFound
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(matches))
	}
	note := models.Resolve(matches[0], nb.tags.Get())
	return &note, nil
}

// Replace swaps both collections wholesale. Import uses it to restore a
// backup or a storage dump.
func (nb *Notebook) Replace(notes []models.RawNote, tags []models.Tag) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	if notes == nil {
		notes = []models.RawNote{}
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	previous := slices.Clone(nb.tags.Get())
	if err := nb.setTags(func([]models.Tag) []models.Tag { return tags }); err != nil {
		return err
	}
	if err := nb.setNotes(func([]models.RawNote) []models.RawNote { return cloneNotes(notes) }); err != nil {
		nb.restoreTags(previous)
		return err
	}
	return nil
}

// restoreTags puts the registry back after a notes write failed, so the
// stored tags keep matching the stored notes.
func (nb *Notebook) restoreTags(previous []models.Tag) {
	if err := nb.setTags(func([]models.Tag) []models.Tag { return previous }); err != nil {
		nb.logger.Error("failed to restore tags", "err", err)
	}
}

func (nb *Notebook) setNotes(fn func([]models.RawNote) []models.RawNote) error {
	if err := nb.notes.Update(fn); err != nil {
		return err
	}
	nb.logger.Debug("persisted", "key", NotesKey, "count", len(nb.notes.Get()))
	return nil
}

func (nb *Notebook) setTags(fn func([]models.Tag) []models.Tag) error {
	if err := nb.tags.Update(fn); err != nil {
		return err
	}
	nb.logger.Debug("persisted", "key", TagsKey, "count", len(nb.tags.Get()))
	return nil
}

func indexOfNote(notes []models.RawNote, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// cloneNotes copies the slice and each note's tag ID list.
func cloneNotes(notes []models.RawNote) []models.RawNote {
	out := make([]models.RawNote, len(notes))
	for i, n := range notes {
		n.TagIDs = slices.Clone(n.TagIDs)
		out[i] = n
	}
	return out
}
