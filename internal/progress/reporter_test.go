package progress

import (
	"bytes"
	"testing"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")

	var buf bytes.Buffer
	r := NewReporter("Loading checkpoints", &buf)
	if _, ok := r.(*CIReporter); !ok {
		t.Fatalf("expected *CIReporter, got %T", r)
	}

	r.Start(2)
	r.Update(1, "a.json")
	r.Update(2, "b.json")
	r.Finish()

	want := "Loading checkpoints: 2 file(s)\n[1/2] a.json\n[2/2] b.json\nLoading checkpoints: done\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")

	var buf bytes.Buffer
	r := NewReporter("Loading checkpoints", &buf)
	if _, ok := r.(*TerminalReporter); !ok {
		t.Fatalf("expected *TerminalReporter, got %T", r)
	}

	r.Start(1)
	r.Update(1, "a.json")
	r.Finish()
}

func TestTerminalReporterWithoutStart(t *testing.T) {
	r := &TerminalReporter{}
	r.Update(1, "ignored")
	r.Finish()
}
