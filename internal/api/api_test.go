// ABOUTME: Tests for the HTTP API routes.
// ABOUTME: Drives the router with httptest against an in-memory notebook.

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/storage"
)

func setup(t *testing.T) (*notebook.Notebook, http.Handler) {
	t.Helper()
	nb, err := notebook.Open(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("failed to open notebook: %v", err)
	}
	return nb, NewRouter(nb, log.New(io.Discard))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Message string `json:"message"`
		Result  T      `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return envelope.Result
}

func TestCreateAndListNotes(t *testing.T) {
	nb, h := setup(t)

	rec := do(t, h, "POST", "/api/notes", `{"title":"Standup","markdown":"notes","tags":["work","daily"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[models.Note](t, rec)
	if created.ID == "" || len(created.Tags) != 2 {
		t.Errorf("unexpected created note %+v", created)
	}
	if len(nb.Tags()) != 2 {
		t.Errorf("expected 2 tags registered, got %d", len(nb.Tags()))
	}

	do(t, h, "POST", "/api/notes", `{"title":"Lunch","markdown":"pizza","tags":["daily"]}`)

	rec = do(t, h, "GET", "/api/notes?tag=work&tag=daily", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	notes := decode[[]models.Note](t, rec)
	if len(notes) != 1 || notes[0].Title != "Standup" {
		t.Errorf("expected only Standup, got %+v", notes)
	}

	notes = decode[[]models.Note](t, do(t, h, "GET", "/api/notes?title=LUN", ""))
	if len(notes) != 1 || notes[0].Title != "Lunch" {
		t.Errorf("expected only Lunch, got %+v", notes)
	}

	notes = decode[[]models.Note](t, do(t, h, "GET", "/api/notes?tag=unknown", ""))
	if len(notes) != 0 {
		t.Errorf("expected no notes for unknown tag, got %d", len(notes))
	}
}

func TestCreateNoteValidation(t *testing.T) {
	_, h := setup(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing title", `{"markdown":"x"}`},
		{"blank title", `{"title":" ","markdown":"x"}`},
		{"missing markdown", `{"title":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, "POST", "/api/notes", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestGetNote(t *testing.T) {
	nb, h := setup(t)
	created, _ := nb.CreateNote(models.NoteData{Title: "T", Markdown: "B"})

	rec := do(t, h, "GET", "/api/notes/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decode[models.Note](t, rec); got.ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, got.ID)
	}

	rec = do(t, h, "GET", "/api/notes/"+created.ID[:8], "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected prefix lookup to succeed, got %d", rec.Code)
	}
}

func TestGetMissingNoteRedirectsToList(t *testing.T) {
	_, h := setup(t)

	for _, id := range []string{"does-not-exist", "x"} {
		rec := do(t, h, "GET", "/api/notes/"+id, "")
		if rec.Code != http.StatusSeeOther {
			t.Errorf("expected 303 for %q, got %d", id, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/api/notes" {
			t.Errorf("expected redirect to /api/notes, got %q", loc)
		}
	}
}

func TestUpdateNote(t *testing.T) {
	nb, h := setup(t)
	tags, _ := nb.EnsureTags([]string{"old"})
	created, _ := nb.CreateNote(models.NoteData{Title: "T", Markdown: "B", Tags: tags})

	rec := do(t, h, "PUT", "/api/notes/"+created.ID, `{"markdown":"New body","tags":["new"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[models.Note](t, rec)
	if got.Title != "T" {
		t.Errorf("expected title kept, got %q", got.Title)
	}
	if got.Markdown != "New body" {
		t.Errorf("expected body updated, got %q", got.Markdown)
	}
	if len(got.Tags) != 1 || got.Tags[0].Label != "new" {
		t.Errorf("expected tags [new], got %v", got.Tags)
	}

	rec = do(t, h, "PUT", "/api/notes/"+created.ID, `{"title":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty title, got %d", rec.Code)
	}

	rec = do(t, h, "PUT", "/api/notes/does-not-exist", `{"title":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteNote(t *testing.T) {
	nb, h := setup(t)
	created, _ := nb.CreateNote(models.NoteData{Title: "T", Markdown: "B"})

	rec := do(t, h, "DELETE", "/api/notes/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(nb.RawNotes()) != 0 {
		t.Error("expected note to be deleted")
	}

	rec = do(t, h, "DELETE", "/api/notes/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestTagRoutes(t *testing.T) {
	nb, h := setup(t)

	rec := do(t, h, "POST", "/api/tags", `{"label":"work"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	tag := decode[models.Tag](t, rec)

	rec = do(t, h, "POST", "/api/tags", `{"label":"WORK"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate label, got %d", rec.Code)
	}

	_, _ = nb.CreateNote(models.NoteData{Title: "T", Markdown: "B", Tags: []models.Tag{tag}})

	rec = do(t, h, "PUT", "/api/tags/"+tag.ID, `{"label":"job"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if nb.Notes()[0].Tags[0].Label != "job" {
		t.Error("expected rename to show on notes")
	}

	counts := decode[[]tagResult](t, do(t, h, "GET", "/api/tags", ""))
	if len(counts) != 1 || counts[0].Count != 1 {
		t.Errorf("expected one tag used once, got %+v", counts)
	}

	rec = do(t, h, "DELETE", "/api/tags/job", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if nb.StaleRefs() != 1 {
		t.Errorf("expected 1 stale reference, got %d", nb.StaleRefs())
	}

	rec = do(t, h, "POST", "/api/tags/prune", "")
	if got := decode[int](t, rec); got != 1 {
		t.Errorf("expected 1 pruned reference, got %d", got)
	}

	rec = do(t, h, "DELETE", "/api/tags/job", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for deleted tag, got %d", rec.Code)
	}
}

func TestRenameTagToTakenLabelConflicts(t *testing.T) {
	nb, h := setup(t)

	do(t, h, "POST", "/api/tags", `{"label":"work"}`)
	home := decode[models.Tag](t, do(t, h, "POST", "/api/tags", `{"label":"home"}`))

	rec := do(t, h, "PUT", "/api/tags/"+home.ID, `{"label":"WORK"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if labels := models.TagLabels(nb.Tags()); len(labels) != 2 || labels[0] != "work" || labels[1] != "home" {
		t.Errorf("expected labels [work home], got %v", labels)
	}
}

func TestBlankTagFilterIsIgnored(t *testing.T) {
	_, h := setup(t)

	do(t, h, "POST", "/api/notes", `{"title":"One","markdown":"a","tags":["work"]}`)
	do(t, h, "POST", "/api/notes", `{"title":"Two","markdown":"b"}`)

	rec := do(t, h, "GET", "/api/notes?tag=", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if notes := decode[[]models.Note](t, rec); len(notes) != 2 {
		t.Errorf("expected all 2 notes for a blank tag, got %d", len(notes))
	}

	notes := decode[[]models.Note](t, do(t, h, "GET", "/api/notes?tag=&tag=work", ""))
	if len(notes) != 1 || notes[0].Title != "One" {
		t.Errorf("expected only One, got %+v", notes)
	}
}
