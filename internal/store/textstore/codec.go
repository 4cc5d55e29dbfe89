package textstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
)

// One task per line:
//
//	[#00042] <high> buy groceries for the week -Todo
//
// Fields are whitespace separated, so runs of spaces inside a description
// collapse to one and do not survive a round trip.

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrMalformedLine = errors.New("malformed line")
)

const (
	todoToken = "-Todo"
	doneToken = "-Done"
)

// FormatLine renders t in the persisted line format, without a newline.
func FormatLine(t model.Task) string {
	return fmt.Sprintf("[#%05d] <%s> %s -%s",
		t.ID, t.Priority, strings.Join(strings.Fields(t.Description), " "), t.State)
}

// ParseLine decodes one persisted line.
// Any state token other than "-Todo" decodes as Done.
func ParseLine(line string) (model.Task, error) {
	t, _, err := parseLine(line)
	return t, err
}

// parseLine also reports whether the state token was one FormatLine writes.
func parseLine(line string) (model.Task, bool, error) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return model.Task{}, false, fmt.Errorf("%w: want at least 3 fields, got %d", ErrMalformedLine, len(parts))
	}

	idTok := strings.TrimSuffix(strings.TrimPrefix(parts[0], "[#"), "]")
	id, err := strconv.ParseUint(idTok, 10, 32)
	if err != nil {
		return model.Task{}, false, fmt.Errorf("%w: %q", ErrInvalidID, parts[0])
	}

	priority := strings.TrimSuffix(strings.TrimPrefix(parts[1], "<"), ">")
	description := strings.Join(parts[2:len(parts)-1], " ")

	t := model.NewTask(uint32(id), description, priority)
	stateTok := parts[len(parts)-1]
	if stateTok != todoToken {
		t.State = model.Done
	}
	known := stateTok == todoToken || stateTok == doneToken
	return t, known, nil
}
