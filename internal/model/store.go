package model

import "sort"

// Store holds tasks keyed by id. Not safe for concurrent use;
// one session owns one store.
type Store struct {
	tasks map[uint32]Task
}

func NewStore() *Store {
	return &Store{tasks: make(map[uint32]Task)}
}

// Add inserts t, replacing any task with the same id.
func (s *Store) Add(t Task) {
	s.tasks[t.ID] = t
}

// Remove deletes and returns the task with the given id.
func (s *Store) Remove(id uint32) (Task, bool) {
	t, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
	}
	return t, ok
}

// Find returns a copy of the task with the given id.
func (s *Store) Find(id uint32) (Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// MarkDone moves the task to Done. Reports false if no such task exists.
func (s *Store) MarkDone(id uint32) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.State = Done
	s.tasks[id] = t
	return true
}

// All returns every task ordered by id.
func (s *Store) All() []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Len() int { return len(s.tasks) }
