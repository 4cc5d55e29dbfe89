package textstore

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
)

// Line-oriented text storage. Single file, rewritten whole on save.
// No locking; one process owns the file.

// DefaultFileName is used when no data file is configured.
const DefaultFileName = "todo_list.txt"

const maxLineBytes = 1 << 20

// LineError describes a persisted line that could not be decoded.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Decode reads lines from r into s. Blank lines are skipped; lines that
// fail to parse are skipped and returned. The error is only for read failures.
func Decode(r io.Reader, s *model.Store, logger *slog.Logger) ([]*LineError, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var bad []*LineError
	n := 0
	for sc.Scan() {
		n++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		t, known, err := parseLine(text)
		if err != nil {
			bad = append(bad, &LineError{Line: n, Text: text, Err: err})
			continue
		}
		if !known {
			logger.Warn("unrecognized state token, treating task as done", "line", n, "id", t.ID)
		}
		s.Add(t)
	}
	if err := sc.Err(); err != nil {
		return bad, fmt.Errorf("read: %w", err)
	}
	return bad, nil
}

// Encode writes every task in s, ordered by id, one per line.
func Encode(w io.Writer, s *model.Store) error {
	bw := bufio.NewWriter(w)
	for _, t := range s.All() {
		if _, err := fmt.Fprintln(bw, FormatLine(t)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load opens path, creating it if missing, decodes it into s and closes it.
func Load(path string, s *model.Store, logger *slog.Logger) ([]*LineError, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	bad, err := Decode(f, s, logger)
	if err != nil {
		return bad, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("loaded tasks", "path", path, "tasks", s.Len(), "skipped", len(bad))
	return bad, nil
}

// Save replaces the contents of path with the tasks in s.
// The data is written to a temp file in the same directory and renamed over path.
func Save(path string, s *model.Store, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := Encode(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	logger.Debug("saved tasks", "path", path, "tasks", s.Len())
	return nil
}
