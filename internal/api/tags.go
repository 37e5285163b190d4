// ABOUTME: HTTP handlers for tag registry routes.
// ABOUTME: Renames and deletes leave note tag ID lists untouched.

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type tagResult struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (a *API) tagsGet(w http.ResponseWriter, r *http.Request) {
	counts := a.nb.TagCounts()
	out := make([]tagResult, 0, len(counts))
	for _, c := range counts {
		out = append(out, tagResult{ID: c.Tag.ID, Label: c.Tag.Label, Count: c.Count})
	}
	sendAPIResult(w, http.StatusOK, fmt.Sprintf("Found %d tags", len(out)), out)
}

func (a *API) tagPost(w http.ResponseWriter, r *http.Request) {
	var input TagInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendAPIResult(w, http.StatusBadRequest, "Unable to parse body", nil)
		return
	}
	if strings.TrimSpace(input.Label) == "" {
		sendAPIResult(w, http.StatusBadRequest, "Must provide a label", nil)
		return
	}

	if existing, err := a.nb.FindTag(input.Label); err == nil {
		sendAPIResult(w, http.StatusConflict, fmt.Sprintf("Tag '%s' already exists", existing.Label), existing)
		return
	}
	tags, err := a.nb.EnsureTags([]string{input.Label})
	if err != nil {
		a.sendError(w, err)
		return
	}
	sendAPIResult(w, http.StatusCreated, "Created tag", tags[0])
}

func (a *API) tagPut(w http.ResponseWriter, r *http.Request) {
	tag, err := a.nb.FindTag(mux.Vars(r)["id"])
	if err != nil {
		a.sendError(w, err)
		return
	}

	var input TagInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendAPIResult(w, http.StatusBadRequest, "Unable to parse body", nil)
		return
	}
	if err := a.nb.UpdateTag(tag.ID, input.Label); err != nil {
		a.sendError(w, err)
		return
	}
	updated, err := a.nb.FindTag(tag.ID)
	if err != nil {
		a.sendError(w, err)
		return
	}
	sendAPIResult(w, http.StatusOK, "Updated tag", updated)
}

func (a *API) tagDelete(w http.ResponseWriter, r *http.Request) {
	tag, err := a.nb.FindTag(mux.Vars(r)["id"])
	if err != nil {
		a.sendError(w, err)
		return
	}
	if err := a.nb.DeleteTag(tag.ID); err != nil {
		a.sendError(w, err)
		return
	}
	sendAPIResult(w, http.StatusOK, fmt.Sprintf("Deleted tag '%s'", tag.Label), nil)
}

func (a *API) tagsPrune(w http.ResponseWriter, r *http.Request) {
	removed, err := a.nb.PruneTagRefs()
	if err != nil {
		a.sendError(w, err)
		return
	}
	sendAPIResult(w, http.StatusOK, fmt.Sprintf("Removed %d stale references", removed), removed)
}
