package feedback

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts feedback endpoints under /api/feedback on the given router.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/", handleCreate(store))
		r.Get("/counts", handleCounts(store))
		r.Get("/{id}", handleGetByID(store))
	})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := ListFilter{
			Filename:  q.Get("filename"),
			SectionID: q.Get("section"),
			ElementID: q.Get("element"),
			Verdict:   Verdict(q.Get("verdict")),
		}
		if v := q.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Limit = n
			}
		}

		items, err := store.List(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func handleCreate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fb Feedback
		if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		fb.ID = ""

		created, err := store.Create(r.Context(), fb)
		if errors.Is(err, ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

// handleCounts returns verdict totals for one element.
func handleCounts(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		element := q.Get("element")
		if element == "" {
			http.Error(w, "element is required", http.StatusBadRequest)
			return
		}

		counts, err := store.Counts(r.Context(), q.Get("filename"), q.Get("section"), element)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, counts)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		fb, err := store.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, fb)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
