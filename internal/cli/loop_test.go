package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/textstore"
	"github.com/idilsaglam/todolist/internal/ui"
)

func TestRunLines_Scenario(t *testing.T) {
	s, out, path := newTestSession(t)
	input := strings.Join([]string{
		"add 1 high write spec",
		"",
		"add 2 low clean desk",
		"done 1",
		"delete 2",
		"save",
		"quit",
		"add 3 never reached",
	}, "\n")

	if err := RunLines(strings.NewReader(input), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Store().Find(3); ok {
		t.Error("commands after quit must not run")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[#00001] <high> write spec -Done\n" {
		t.Errorf("unexpected file contents %q", b)
	}
	if got := strings.Count(out.String(), separator); got != 5 {
		t.Errorf("expected 5 separators, got %d in:\n%s", got, out.String())
	}
}

func TestRunLines_EOF(t *testing.T) {
	s, out, _ := newTestSession(t)
	if err := RunLines(strings.NewReader("add 1 a b\n"), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Store().Len() != 1 {
		t.Errorf("expected 1 task, got %d", s.Store().Len())
	}
	if !strings.HasPrefix(out.String(), "> Task added successfully.") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunLines_FatalSave(t *testing.T) {
	var out strings.Builder
	path := filepath.Join(t.TempDir(), "missing-dir", textstore.DefaultFileName)
	s := NewSession(model.NewStore(), path, ui.NewPrinter(&out, ui.ThemeByName("mono")), nil)

	err := RunLines(strings.NewReader("save\nadd 1 a b\n"), s)
	if KindOf(err) != IO {
		t.Fatalf("expected i/o error, got %v", err)
	}
	if s.Store().Len() != 0 {
		t.Error("loop must stop at the fatal error")
	}
}

func TestRunLines_LongLine(t *testing.T) {
	s, _, _ := newTestSession(t)
	long := strings.Repeat("x", 70000)
	input := "add 1 p " + long + "\nadd 2 p ok\nquit\n"

	if err := RunLines(strings.NewReader(input), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := s.Store().Find(1)
	if !ok || got.Description != long {
		t.Errorf("expected task 1 with the full description, found=%v len=%d", ok, len(got.Description))
	}
	if _, ok := s.Store().Find(2); !ok {
		t.Error("expected task 2 added after the long line")
	}
}

func TestRunLines_OverlongLineIsNotFatal(t *testing.T) {
	s, out, _ := newTestSession(t)
	input := "add 1 p " + strings.Repeat("x", MaxLineBytes) + "\nadd 2 p ok\nquit\n"

	if err := RunLines(strings.NewReader(input), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Store().Find(1); ok {
		t.Error("expected overlong add to be rejected")
	}
	if _, ok := s.Store().Find(2); !ok {
		t.Error("expected session to continue after the overlong line")
	}
	if !strings.Contains(out.String(), "Invalid command format: line longer than") {
		t.Errorf("expected overlong line reported, got %q", out.String())
	}
}

func TestRunLines_LastLineWithoutNewline(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := RunLines(strings.NewReader("add 1 a b\nadd 2 c d"), s); err != nil {
		t.Fatal(err)
	}
	if s.Store().Len() != 2 {
		t.Errorf("expected 2 tasks, got %d", s.Store().Len())
	}
}
