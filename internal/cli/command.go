package cli

import (
	"strconv"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
)

// Command is one parsed input line.
type Command struct {
	Name string
	ID   uint32     // delete, check, done
	Task model.Task // add

	Group bool // list
}

type commandSpec struct {
	name     string
	usage    string
	synopsis string
	// idArg: the rest of the line is an id. Otherwise no arguments, except add and list.
	idArg bool
}

var commandSpecs = []commandSpec{
	{name: "add", usage: "add <id> <priority> <description>", synopsis: "Add a new task (replaces any task with the same id)"},
	{name: "delete", usage: "delete <id>", synopsis: "Delete a task by id", idArg: true},
	{name: "check", usage: "check <id>", synopsis: "Show a task by id", idArg: true},
	{name: "done", usage: "done <id>", synopsis: "Mark a task as done by id", idArg: true},
	{name: "list", usage: "list [group]", synopsis: "Show all tasks, optionally grouped by pending/done"},
	{name: "save", usage: "save", synopsis: "Write all tasks to the data file"},
	{name: "help", usage: "help", synopsis: "Show this help"},
	{name: "quit", usage: "quit", synopsis: "Exit without saving"},
}

func lookupSpec(name string) (commandSpec, bool) {
	for _, c := range commandSpecs {
		if strings.EqualFold(c.name, name) {
			return c, true
		}
	}
	return commandSpec{}, false
}

// ParseCommand splits line on whitespace and validates it. An empty line
// yields a zero Command and no error.
func ParseCommand(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, nil
	}
	spec, ok := lookupSpec(parts[0])
	if !ok {
		return Command{}, &Error{Kind: UnknownCommand}
	}
	args := parts[1:]

	switch {
	case spec.name == "add":
		return parseAdd(spec, args)

	case spec.idArg:
		if len(args) == 0 {
			return Command{}, &Error{Kind: MalformedCommand, Usage: spec.usage}
		}
		// Everything after the keyword is the id, so "delete 1 2" is a bad id.
		id, err := ParseID(strings.Join(args, " "))
		if err != nil {
			return Command{}, err
		}
		return Command{Name: spec.name, ID: id}, nil

	case spec.name == "list":
		switch {
		case len(args) == 0:
			return Command{Name: spec.name}, nil
		case len(args) == 1 && strings.EqualFold(args[0], "group"):
			return Command{Name: spec.name, Group: true}, nil
		}
		return Command{}, &Error{Kind: MalformedCommand, Usage: spec.usage}

	default:
		if len(args) != 0 {
			return Command{}, &Error{Kind: MalformedCommand, Usage: spec.usage}
		}
		return Command{Name: spec.name}, nil
	}
}

// parseAdd needs id, priority and at least one description word.
// The priority is taken as typed.
func parseAdd(spec commandSpec, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, &Error{Kind: MalformedCommand, Usage: spec.usage}
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return Command{}, &Error{Kind: MalformedCommand, Usage: spec.usage, Err: err}
	}
	task := model.NewTask(uint32(id), strings.Join(args[2:], " "), args[1])
	return Command{Name: spec.name, ID: task.ID, Task: task}, nil
}

// ParseID parses an unsigned 32-bit task id.
func ParseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, &Error{Kind: MalformedID, Err: err}
	}
	return uint32(id), nil
}
