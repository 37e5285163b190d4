// ABOUTME: Interactive huh forms for creating, editing, and deleting.
// ABOUTME: Covers the note form, delete confirmation, and tag dialog.

package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/harper/notebook/internal/models"
)

// ErrCancelled is returned when the user backs out of a form.
var ErrCancelled = errors.New("cancelled")

// NoteFormResult is what the note form submits. Tags picked from the
// registry come back by ID; labels typed into the new-tags field are
// returned separately so the caller can register them.
type NoteFormResult struct {
	Title     string
	Markdown  string
	TagIDs    []string
	NewLabels []string
}

// RunNoteForm shows the create/edit form pre-filled from initial.
func RunNoteForm(heading string, initial models.NoteData, available []models.Tag) (*NoteFormResult, error) {
	title := initial.Title
	markdown := initial.Markdown
	selected := models.TagIDs(initial.Tags)
	var newTags string

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&title).
			Validate(required("title")),
	}
	if len(available) > 0 {
		options := make([]huh.Option[string], 0, len(available))
		for _, t := range available {
			options = append(options, huh.NewOption(t.Label, t.ID))
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Tags").
			Options(options...).
			Value(&selected))
	}
	fields = append(fields,
		huh.NewInput().
			Title("New tags").
			Description("Comma-separated; created on save").
			Value(&newTags),
		huh.NewText().
			Title("Body").
			Lines(15).
			Value(&markdown).
			Validate(required("body")),
	)

	form := huh.NewForm(huh.NewGroup(fields...).Title(heading))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, err
	}

	return &NoteFormResult{
		Title:     strings.TrimSpace(title),
		Markdown:  markdown,
		TagIDs:    selected,
		NewLabels: SplitLabels(newTags),
	}, nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(question string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

type TagAction string

const (
	TagRename TagAction = "rename"
	TagDelete TagAction = "delete"
)

// TagDialogResult is the outcome of the tag management dialog.
type TagDialogResult struct {
	TagID  string
	Action TagAction
	Label  string
}

// RunTagDialog lets the user pick a tag and rename or delete it.
func RunTagDialog(tags []TagCount) (*TagDialogResult, error) {
	if len(tags) == 0 {
		return nil, errors.New("no tags to edit")
	}

	options := make([]huh.Option[string], 0, len(tags))
	for _, t := range tags {
		options = append(options, huh.NewOption(t.Label, t.ID))
	}

	res := &TagDialogResult{Action: TagRename}
	pick := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Tag").
			Options(options...).
			Value(&res.TagID),
		huh.NewSelect[TagAction]().
			Title("Action").
			Options(
				huh.NewOption("Rename", TagRename),
				huh.NewOption("Delete", TagDelete),
			).
			Value(&res.Action),
	).Title("Edit Tags"))
	if err := pick.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, err
	}

	if res.Action == TagRename {
		for _, t := range tags {
			if t.ID == res.TagID {
				res.Label = t.Label
			}
		}
		err := huh.NewInput().
			Title("New label").
			Value(&res.Label).
			Validate(required("label")).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		if err != nil {
			return nil, err
		}
		res.Label = strings.TrimSpace(res.Label)
	}
	return res, nil
}

// SplitLabels splits a comma-separated tag list, dropping blanks.
func SplitLabels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}
