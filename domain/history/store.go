package history

import (
	"context"
	"fmt"

	"fraudlens/domain/core"
)

// DefaultMaxEntries bounds the rolling history when no explicit cap is given.
const DefaultMaxEntries = 50

// Backend is the persistence surface a Store drives. Implementations store
// entries newest-first and never enforce the cap themselves; bounding is the
// Store's job so every backend behaves identically.
type Backend interface {
	Insert(ctx context.Context, e Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
	Trim(ctx context.Context, max int) error
	Clear(ctx context.Context) error
}

// Store is the bounded prediction history. It is an explicit collaborator,
// not a hidden singleton: callers construct it with whichever Backend the
// deployment uses.
type Store struct {
	backend Backend
	max     int
}

// NewStore builds a Store over backend, keeping at most max entries. A max
// of zero or below falls back to DefaultMaxEntries.
func NewStore(backend Backend, max int) *Store {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Store{backend: backend, max: max}
}

// Max returns the configured entry cap.
func (s *Store) Max() int { return s.max }

// Append persists e and evicts the oldest entries beyond the cap. Entries
// missing an ID or timestamp are stamped here so backends can assume both.
func (s *Store) Append(ctx context.Context, e Entry) error {
	if e.ID.String() == "" {
		e.ID = core.EntryID(core.NewID())
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = core.Now()
	}

	if err := s.backend.Insert(ctx, e); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	if err := s.backend.Trim(ctx, s.max); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// List returns the retained entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.backend.List(ctx, s.max)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Clear drops every retained entry.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
