package textstore

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/todolist/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecode_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"[#00001] <high> write spec -Done",
		"[#xx] <low> broken -Todo",
		"",
		"[#00002] <low> clean desk -Todo",
	}, "\n")

	s := model.NewStore()
	bad, err := Decode(strings.NewReader(input), s, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 tasks, got %d", s.Len())
	}
	if len(bad) != 1 {
		t.Fatalf("expected 1 bad line, got %d", len(bad))
	}
	if bad[0].Line != 2 {
		t.Errorf("expected bad line number 2, got %d", bad[0].Line)
	}
	if !errors.Is(bad[0], ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", bad[0].Err)
	}
	if got, _ := s.Find(1); got.State != model.Done {
		t.Errorf("expected task 1 done, got %s", got.State)
	}
}

func TestDecode_DuplicateIDLastWins(t *testing.T) {
	input := "[#00001] <a> first -Todo\n[#00001] <b> second -Done\n"
	s := model.NewStore()
	if _, err := Decode(strings.NewReader(input), s, discardLogger()); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Find(1)
	if s.Len() != 1 || got.Description != "second" {
		t.Errorf("expected single task 'second', got %d tasks, %+v", s.Len(), got)
	}
}

func TestDecode_WarnsOnUnknownState(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	s := model.NewStore()
	if _, err := Decode(strings.NewReader("[#00004] <p> thing -Maybe\n"), s, logger); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "unrecognized state token") {
		t.Errorf("expected warning in logs, got %q", logs.String())
	}
}

func TestEncode_SortedByID(t *testing.T) {
	s := model.NewStore()
	s.Add(model.NewTask(2, "clean desk", "low"))
	s.Add(model.NewTask(1, "write spec", "high"))

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatal(err)
	}
	want := "[#00001] <high> write spec -Todo\n[#00002] <low> clean desk -Todo\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLoad_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	s := model.NewStore()
	bad, err := Load(path, s, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bad) != 0 || s.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks, %d bad lines", s.Len(), len(bad))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to be created: %v", err)
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", DefaultFileName)
	if _, err := Load(path, model.NewStore(), discardLogger()); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("stale content that must disappear\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := model.NewStore()
	s.Add(model.NewTask(1, "write spec", "high"))
	s.MarkDone(1)
	s.Add(model.NewTask(30, "buy groceries", "low"))

	if err := Save(path, s, discardLogger()); err != nil {
		t.Fatalf("save: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "[#00001] <high> write spec -Done\n[#00030] <low> buy groceries -Todo\n"
	if string(b) != want {
		t.Errorf("expected file %q, got %q", want, string(b))
	}

	loaded := model.NewStore()
	bad, err := Load(path, loaded, discardLogger())
	if err != nil || len(bad) != 0 {
		t.Fatalf("load: %v, bad=%v", err, bad)
	}
	for _, want := range s.All() {
		got, ok := loaded.Find(want.ID)
		if !ok || got != want {
			t.Errorf("expected %+v, got %+v (found=%v)", want, got, ok)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestSave_EmptyStoreTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("[#00001] <a> b -Todo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Save(path, model.NewStore(), discardLogger()); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(path)
	if len(b) != 0 {
		t.Errorf("expected empty file, got %q", b)
	}
}

func TestSave_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", DefaultFileName)
	if err := Save(path, model.NewStore(), discardLogger()); err == nil {
		t.Error("expected error for missing directory")
	}
}
