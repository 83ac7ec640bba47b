// Package api serves checkpoint documents over the JSON contract the viewer
// consumes: list_files, single_document, multiple_documents and documents.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/annoview/internal/checkpoint"
	"github.com/ziadkadry99/annoview/internal/document"
)

// Source provides documents to the API handlers.
type Source interface {
	ListFiles(ctx context.Context) ([]string, error)
	SingleDocument(ctx context.Context, name string) (*document.Document, error)
	MultipleDocuments(ctx context.Context, names []string) (*document.Collection, error)
	Documents(ctx context.Context) (*document.Document, error)
}

// multipleRequest is the JSON body for /api/multiple_documents.
type multipleRequest struct {
	Files []string `json:"files"`
}

// RegisterRoutes mounts the document endpoints on the given router.
func RegisterRoutes(r chi.Router, src Source, log zerolog.Logger) {
	h := &handlers{src: src, log: log.With().Str("component", "api").Logger()}

	r.Get("/api/list_files", h.listFiles)
	r.Get("/api/single_document", h.singleDocument)
	r.Post("/api/multiple_documents", h.multipleDocuments)
	r.Get("/api/documents", h.documents)
}

type handlers struct {
	src Source
	log zerolog.Logger
}

func (h *handlers) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.src.ListFiles(r.Context())
	if err != nil {
		h.fail(w, "listing files", err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// singleDocument answers [] when the filename is missing or unknown.
func (h *handlers) singleDocument(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("filename")
	if name == "" {
		writeJSON(w, http.StatusOK, []any{})
		return
	}

	doc, err := h.src.SingleDocument(r.Context(), name)
	if err != nil {
		if isMissing(err) {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		h.fail(w, "loading "+name, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *handlers) multipleDocuments(w http.ResponseWriter, r *http.Request) {
	var req multipleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	coll, err := h.src.MultipleDocuments(r.Context(), req.Files)
	if err != nil {
		h.fail(w, "loading documents", err)
		return
	}
	writeJSON(w, http.StatusOK, coll)
}

func (h *handlers) documents(w http.ResponseWriter, r *http.Request) {
	doc, err := h.src.Documents(r.Context())
	if err != nil {
		if isMissing(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "documents file not found"})
			return
		}
		h.fail(w, "loading documents file", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *handlers) fail(w http.ResponseWriter, what string, err error) {
	h.log.Error().Err(err).Msg(what)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func isMissing(err error) bool {
	return errors.Is(err, checkpoint.ErrNotFound) || errors.Is(err, checkpoint.ErrInvalidName)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
