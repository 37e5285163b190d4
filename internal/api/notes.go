// ABOUTME: HTTP handlers for note routes.
// ABOUTME: Lists with title and tag filters; unknown notes redirect to the list.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
)

func (a *API) notesGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	notes := a.nb.Search(query.Get("title"), query["tag"])
	sendAPIResult(w, http.StatusOK, fmt.Sprintf("Found %d notes", len(notes)), notes)
}

// noteGet sends unknown ids back to the list.
func (a *API) noteGet(w http.ResponseWriter, r *http.Request) {
	note, err := a.nb.FindNote(mux.Vars(r)["id"])
	if errors.Is(err, notebook.ErrNoteNotFound) || errors.Is(err, notebook.ErrPrefixTooShort) {
		http.Redirect(w, r, "/api/notes", http.StatusSeeOther)
		return
	}
	if err != nil {
		a.sendError(w, err)
		return
	}
	sendAPIResult(w, http.StatusOK, "Found note", note)
}

func (a *API) notePost(w http.ResponseWriter, r *http.Request) {
	var input NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendAPIResult(w, http.StatusBadRequest, "Unable to parse body", nil)
		return
	}
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		sendAPIResult(w, http.StatusBadRequest, "Must provide a title", nil)
		return
	}
	if input.Markdown == nil || strings.TrimSpace(*input.Markdown) == "" {
		sendAPIResult(w, http.StatusBadRequest, "Must provide markdown", nil)
		return
	}

	data := models.NoteData{Title: *input.Title, Markdown: *input.Markdown}
	if input.Tags != nil {
		tags, err := a.nb.EnsureTags(*input.Tags)
		if err != nil {
			a.sendError(w, err)
			return
		}
		data.Tags = tags
	}

	raw, err := a.nb.CreateNote(data)
	if err != nil {
		a.sendError(w, err)
		return
	}
	note, err := a.nb.GetNote(raw.ID)
	if err != nil {
		a.sendError(w, err)
		return
	}
	sendAPIResult(w, http.StatusCreated, "Created note", note)
}

func (a *API) notePut(w http.ResponseWriter, r *http.Request) {
	note, err := a.nb.FindNote(mux.Vars(r)["id"])
	if err != nil {
		a.sendError(w, err)
		return
	}

	var input NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendAPIResult(w, http.StatusBadRequest, "Unable to parse body", nil)
		return
	}

	data := note.Data()
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			sendAPIResult(w, http.StatusBadRequest, "Title cannot be empty", nil)
			return
		}
		data.Title = *input.Title
	}
	if input.Markdown != nil {
		if strings.TrimSpace(*input.Markdown) == "" {
			sendAPIResult(w, http.StatusBadRequest, "Markdown cannot be empty", nil)
			return
		}
		data.Markdown = *input.Markdown
	}
	if input.Tags != nil {
		data.Tags, err = a.nb.EnsureTags(*input.Tags)
		if err != nil {
			a.sendError(w, err)
			return
		}
	}

	if err := a.nb.UpdateNote(note.ID, data); err != nil {
		a.sendError(w, err)
		return
	}
	updated, err := a.nb.GetNote(note.ID)
	if err != nil {
		a.sendError(w, err)
		return
	}
	sendAPIResult(w, http.StatusOK, "Updated note", updated)
}

func (a *API) noteDelete(w http.ResponseWriter, r *http.Request) {
	note, err := a.nb.FindNote(mux.Vars(r)["id"])
	if err != nil {
		a.sendError(w, err)
		return
	}
	if err := a.nb.DeleteNote(note.ID); err != nil {
		a.sendError(w, err)
		return
	}
	sendAPIResult(w, http.StatusOK, fmt.Sprintf("Deleted note %s", note.ID), nil)
}
