package cli

import (
	"errors"
	"fmt"
)

// ErrorKind classifies what went wrong with a command or a loaded line.
type ErrorKind int

const (
	// MalformedID: an id token is not an unsigned 32-bit integer.
	MalformedID ErrorKind = iota + 1
	// NotFound: no task has the requested id.
	NotFound
	// MalformedCommand: wrong token count or shape for a known command.
	MalformedCommand
	// UnknownCommand: the keyword is not a command.
	UnknownCommand
	// FileData: a persisted line could not be decoded.
	FileData
	// IO: the data file could not be read or written. Fatal.
	IO
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedID:
		return "malformed id"
	case NotFound:
		return "not found"
	case MalformedCommand:
		return "malformed command"
	case UnknownCommand:
		return "unknown command"
	case FileData:
		return "file data error"
	case IO:
		return "i/o error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by command parsing and execution. Its message is the
// text shown to the user.
type Error struct {
	Kind  ErrorKind
	ID    uint32 // NotFound
	Line  int    // FileData
	Usage string // MalformedCommand
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case MalformedID:
		return "Invalid ID format."
	case NotFound:
		return fmt.Sprintf("Task with ID %d not found.", e.ID)
	case MalformedCommand:
		if e.Usage == "" && e.Err != nil {
			return fmt.Sprintf("Invalid command format: %v.", e.Err)
		}
		return "Invalid command format. Use: " + e.Usage
	case UnknownCommand:
		return "Unknown command. Type 'help' to see available commands."
	case FileData:
		return fmt.Sprintf("File data error on line %d: %v.", e.Line, e.Err)
	case IO:
		return fmt.Sprintf("I/O error: %v", e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsFatal reports whether err must end the session.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	k := KindOf(err)
	return k == 0 || k == IO
}
