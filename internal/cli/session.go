// Package cli runs the interactive task session: command parsing,
// dispatch against a task store, and the line and prompt front ends.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/textstore"
	"github.com/idilsaglam/todolist/internal/ui"
)

const separator = "-----------------------------------"

// Session owns one task store and the file it is saved to.
// Commands run one at a time; a Session is not safe for concurrent use.
type Session struct {
	store  *model.Store
	path   string
	p      *ui.Printer
	logger *slog.Logger

	// group makes a bare "list" group tasks by pending/done.
	group bool
}

// NewSession returns a session over store that saves to path and prints
// through p. A nil logger means slog.Default().
func NewSession(store *model.Store, path string, p *ui.Printer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: store, path: path, p: p, logger: logger}
}

// SetGroupedList sets whether "list" without arguments groups tasks.
func (s *Session) SetGroupedList(on bool) { s.group = on }

// Store returns the session's task store.
func (s *Session) Store() *model.Store { return s.store }

// Welcome prints the banner and reports lines that failed to load.
func (s *Session) Welcome(bad []*textstore.LineError) {
	s.p.Title("Welcome to Todo List CLI!")
	s.p.Line("Type 'help' to see available commands.")
	s.p.Line(separator)
	for _, le := range bad {
		s.p.Fail((&Error{Kind: FileData, Line: le.Line, Err: le.Err}).Error())
	}
	if s.store.Len() == 0 {
		s.p.Muted("No existing tasks found.")
	}
}

// Exec runs one input line. It prints the outcome and returns quit=true
// for the quit command. A non-nil error is also printed; the session can
// continue unless IsFatal(err).
func (s *Session) Exec(line string) (quit bool, err error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		s.p.Fail(err.Error())
		return false, err
	}
	if cmd.Name == "" {
		return false, nil
	}
	s.logger.Debug("exec", "command", cmd.Name, "id", cmd.ID)

	switch cmd.Name {
	case "add":
		s.store.Add(cmd.Task)
		s.p.OK("Task added successfully.")

	case "delete":
		t, ok := s.store.Remove(cmd.ID)
		if !ok {
			return false, s.fail(&Error{Kind: NotFound, ID: cmd.ID})
		}
		s.p.Info("Deleted task:")
		s.p.Line(textstore.FormatLine(t))

	case "check":
		t, ok := s.store.Find(cmd.ID)
		if !ok {
			return false, s.fail(&Error{Kind: NotFound, ID: cmd.ID})
		}
		s.p.Info("Found task:")
		s.p.Line(textstore.FormatLine(t))

	case "done":
		if !s.store.MarkDone(cmd.ID) {
			return false, s.fail(&Error{Kind: NotFound, ID: cmd.ID})
		}
		s.p.OK(fmt.Sprintf("Task with ID %d marked as done.", cmd.ID))

	case "list":
		s.p.TaskPanel(s.store.All(), cmd.Group || s.group)

	case "save":
		if err := s.Save(); err != nil {
			return false, s.fail(err)
		}
		s.p.OK("Tasks saved to file.")

	case "help":
		s.printHelp()

	case "quit":
		s.p.Muted("Exiting Todo List CLI. Goodbye!")
		return true, nil
	}
	return false, nil
}

// Save rewrites the data file with the current tasks.
func (s *Session) Save() error {
	if err := textstore.Save(s.path, s.store, s.logger); err != nil {
		return &Error{Kind: IO, Err: err}
	}
	return nil
}

func (s *Session) fail(err error) error {
	s.p.Fail(err.Error())
	return err
}

func (s *Session) printHelp() {
	s.p.Title("Available commands:")
	for _, c := range commandSpecs {
		s.p.Line(fmt.Sprintf("  %-36s %s", c.usage, c.synopsis))
	}
}
