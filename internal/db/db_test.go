package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM feedback").Scan(&count); err != nil {
		t.Errorf("table feedback: %v", err)
	}
	if d.Path() != ":memory:" {
		t.Errorf("Path() = %q, want :memory:", d.Path())
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "annoview.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
}

func TestVerdictConstraint(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	_, err = d.Exec(`INSERT INTO feedback (id, filename, section_id, element_id, verdict) VALUES ('1','a','s','e','maybe')`)
	if err == nil {
		t.Fatal("expected CHECK constraint failure for unknown verdict")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}
