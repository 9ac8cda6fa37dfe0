// Package notes provides a small in-memory note collection used by the
// demo server to exercise the dispatch core end to end.
package notes

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Note is a stored note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// System defines note collection operations.
type System interface {
	List() []Note
	Get(id string) (Note, error)
	Create(title, body string) (Note, error)
	Delete(id string) error
}

type store struct {
	mu    sync.RWMutex
	notes map[string]Note
	order []string
}

// New creates an empty in-memory note system.
func New() System {
	return &store{
		notes: map[string]Note{},
	}
}

// List returns all notes in creation order.
func (s *store) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Note, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.notes[id])
	}
	return result
}

// Get returns the note with the given id.
func (s *store) Get(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	return note, nil
}

// Create stores a new note. The title must not be empty.
func (s *store) Create(title, body string) (Note, error) {
	if title == "" {
		return Note{}, ErrEmptyTitle
	}

	note := Note{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ID] = note
	s.order = append(s.order, note.ID)

	return note, nil
}

// Delete removes the note with the given id.
func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(s.notes, id)

	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
