// Package store holds the in-memory, append-only list of expenses owned by
// one application mount.
package store

import (
	"context"
	"log/slog"
	"sync"

	"expensetracker/internal/core"
)

// Store keeps expenses in insertion order. It performs no validation:
// records are expected to come out of core.Validate.
type Store struct {
	mu        sync.Mutex
	items     []core.Expense
	observers map[int]Observer
	nextID    int
}

func New() *Store {
	return &Store{observers: make(map[int]Observer)}
}

// Add appends the expense and notifies every observer with the new contents.
// Observers run after the lock is released; their order is unspecified.
func (s *Store) Add(ctx context.Context, e core.Expense) {
	s.mu.Lock()
	s.items = append(s.items, e)
	snapshot := s.snapshotLocked()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	slog.DebugContext(ctx, "Expense appended to store",
		"count", len(snapshot),
		"observers", len(observers))

	for _, fn := range observers {
		fn(snapshot)
	}
}

// All returns a copy of the current contents.
func (s *Store) All(_ context.Context) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of stored expenses.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn for change notifications. The returned cancel
// function is idempotent.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) snapshotLocked() []core.Expense {
	// Return a copy to prevent external mutation
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out
}
