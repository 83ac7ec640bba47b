package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "annoview.log")

	log, closeFn, err := New("debug", path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	log.Debug().Str("file", "a.json").Msg("loaded")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"file":"a.json"`) {
		t.Errorf("log file missing field, got %s", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("chatty", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewEmptyLevelDefaultsToInfo(t *testing.T) {
	log, _, err := New("", "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", log.GetLevel())
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Get("/api/list_files", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/list_files", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decoding log line %q: %v", buf.String(), err)
	}
	if line["path"] != "/api/list_files" {
		t.Errorf("path = %v", line["path"])
	}
	if line["status"] != float64(http.StatusTeapot) {
		t.Errorf("status = %v", line["status"])
	}
	if line["request_id"] == "" {
		t.Error("request_id should be set")
	}
}
