// ABOUTME: Loopback HTTP API over the notebook.
// ABOUTME: gorilla/mux routes with JSON bodies in view form.

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/harper/notebook/internal/notebook"
)

type API struct {
	nb     *notebook.Notebook
	logger *log.Logger
}

// APIResult wraps every JSON response.
type APIResult struct {
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

// NoteInput is the request body for creating or updating a note. Tags are
// labels; unknown labels are registered.
type NoteInput struct {
	Title    *string   `json:"title"`
	Markdown *string   `json:"markdown"`
	Tags     *[]string `json:"tags"`
}

type TagInput struct {
	Label string `json:"label"`
}

func NewRouter(nb *notebook.Notebook, logger *log.Logger) http.Handler {
	a := &API{nb: nb, logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/api/notes", a.notesGet).Methods("GET")
	router.HandleFunc("/api/notes", a.notePost).Methods("POST")
	router.HandleFunc("/api/notes/{id}", a.noteGet).Methods("GET")
	router.HandleFunc("/api/notes/{id}", a.notePut).Methods("PUT", "PATCH")
	router.HandleFunc("/api/notes/{id}", a.noteDelete).Methods("DELETE")
	router.HandleFunc("/api/tags", a.tagsGet).Methods("GET")
	router.HandleFunc("/api/tags", a.tagPost).Methods("POST")
	router.HandleFunc("/api/tags/prune", a.tagsPrune).Methods("POST")
	router.HandleFunc("/api/tags/{id}", a.tagPut).Methods("PUT", "PATCH")
	router.HandleFunc("/api/tags/{id}", a.tagDelete).Methods("DELETE")
	router.Use(a.logRequests)

	return router
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func sendAPIResult(w http.ResponseWriter, status int, message string, result interface{}) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResult{Message: message, Result: result})
}

func (a *API) sendError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, notebook.ErrNoteNotFound), errors.Is(err, notebook.ErrTagNotFound):
		status = http.StatusNotFound
	case errors.Is(err, notebook.ErrPrefixTooShort),
		errors.Is(err, notebook.ErrAmbiguousPrefix),
		errors.Is(err, notebook.ErrEmptyLabel):
		status = http.StatusBadRequest
	case errors.Is(err, notebook.ErrDuplicateTag):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "err", err)
	}
	sendAPIResult(w, status, err.Error(), nil)
}
