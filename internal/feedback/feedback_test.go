package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/annoview/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func sample(element string, verdict Verdict) Feedback {
	return Feedback{
		Filename:  "run-1.json",
		SectionID: "§ 275.0-7",
		ElementID: element,
		Verdict:   verdict,
		Comment:   "reads fine",
		Reviewer:  "alice",
	}
}

func TestCreateAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, sample("E1", VerdictKeep))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Filename != "run-1.json" || got.SectionID != "§ 275.0-7" || got.ElementID != "E1" {
		t.Errorf("unexpected location: %+v", got)
	}
	if got.Verdict != VerdictKeep {
		t.Errorf("Verdict = %q, want %q", got.Verdict, VerdictKeep)
	}
	if got.Comment != "reads fine" || got.Reviewer != "alice" {
		t.Errorf("unexpected comment/reviewer: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestCreateKeepsExplicitID(t *testing.T) {
	store := setupStore(t)

	fb := sample("E1", VerdictUnsure)
	fb.ID = "fixed"
	created, err := store.Create(context.Background(), fb)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "fixed" {
		t.Errorf("ID = %q, want fixed", created.ID)
	}
}

func TestCreateValidates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		edit func(*Feedback)
	}{
		{"no filename", func(f *Feedback) { f.Filename = "" }},
		{"no section", func(f *Feedback) { f.SectionID = "" }},
		{"no element", func(f *Feedback) { f.ElementID = "" }},
		{"bad verdict", func(f *Feedback) { f.Verdict = "maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := sample("E1", VerdictKeep)
			tt.edit(&fb)
			if _, err := store.Create(ctx, fb); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, fb := range []Feedback{
		sample("E1", VerdictKeep),
		sample("E1", VerdictReject),
		sample("E2", VerdictKeep),
	} {
		fb.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := store.Create(ctx, fb); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	other := sample("E1", VerdictKeep)
	other.Filename = "run-2.json"
	if _, err := store.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := store.List(ctx, ListFilter{Filename: "run-1.json"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].ElementID != "E2" {
		t.Errorf("expected newest first, got %s", all[0].ElementID)
	}

	e1, err := store.List(ctx, ListFilter{Filename: "run-1.json", ElementID: "E1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(e1) != 2 {
		t.Errorf("expected 2 entries for E1, got %d", len(e1))
	}

	rejected, err := store.List(ctx, ListFilter{Verdict: VerdictReject})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rejected) != 1 {
		t.Errorf("expected 1 rejected entry, got %d", len(rejected))
	}

	limited, err := store.List(ctx, ListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(limited))
	}

	none, err := store.List(ctx, ListFilter{Filename: "nope.json"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", none)
	}
}

func TestCounts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, v := range []Verdict{VerdictKeep, VerdictKeep, VerdictReject} {
		if _, err := store.Create(ctx, sample("E1", v)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	counts, err := store.Counts(ctx, "run-1.json", "§ 275.0-7", "E1")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts[VerdictKeep] != 2 || counts[VerdictReject] != 1 || counts[VerdictUnsure] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func setupRouter(store *Store) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r
}

func TestRoutesCreateAndGet(t *testing.T) {
	store := setupStore(t)
	r := setupRouter(store)

	body := `{"filename":"run-1.json","section":"S1","element":"E1","verdict":"reject","comment":"wrong term"}`
	req := httptest.NewRequest(http.MethodPost, "/api/feedback/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created Feedback
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if created.ID == "" || created.Verdict != VerdictReject {
		t.Fatalf("unexpected created feedback: %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/feedback/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got Feedback
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Comment != "wrong term" {
		t.Errorf("Comment = %q, want %q", got.Comment, "wrong term")
	}
}

func TestRoutesCreateRejectsInvalid(t *testing.T) {
	r := setupRouter(setupStore(t))

	for _, body := range []string{`not json`, `{"filename":"a.json","section":"S1","element":"E1","verdict":"maybe"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/feedback/", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestRoutesList(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.Create(ctx, sample("E1", VerdictKeep))
	store.Create(ctx, sample("E2", VerdictKeep))

	r := setupRouter(store)
	req := httptest.NewRequest(http.MethodGet, "/api/feedback/?filename=run-1.json&element=E2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var items []Feedback
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(items) != 1 || items[0].ElementID != "E2" {
		t.Errorf("unexpected list: %+v", items)
	}
}

func TestRoutesGetNotFound(t *testing.T) {
	r := setupRouter(setupStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/feedback/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRoutesCounts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.Create(ctx, sample("E1", VerdictKeep))
	store.Create(ctx, sample("E1", VerdictUnsure))
	store.Create(ctx, sample("E2", VerdictReject))

	r := setupRouter(store)
	q := url.Values{"filename": {"run-1.json"}, "section": {"§ 275.0-7"}, "element": {"E1"}}
	req := httptest.NewRequest(http.MethodGet, "/api/feedback/counts?"+q.Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var counts map[string]int
	if err := json.NewDecoder(w.Body).Decode(&counts); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if counts["keep"] != 1 || counts["unsure"] != 1 || counts["reject"] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/feedback/counts", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing element: expected 400, got %d", w.Code)
	}
}
