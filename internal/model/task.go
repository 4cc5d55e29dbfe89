package model

// State is the completion state of a task.
type State int

const (
	Todo State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "Done"
	}
	return "Todo"
}

// Task is the domain model for a tracked entry.
// ID is the only access key; State is the only field that changes after creation.
type Task struct {
	ID          uint32
	Description string
	Priority    string
	State       State
}

// NewTask returns a task in the Todo state.
func NewTask(id uint32, description, priority string) Task {
	return Task{ID: id, Description: description, Priority: priority, State: Todo}
}
