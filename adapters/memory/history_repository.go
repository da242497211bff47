package memory

import (
	"context"
	"sync"

	"fraudlens/domain/history"
	"fraudlens/ports"
)

// historyRepository keeps history entries in process memory, newest first.
// It backs the default zero-dependency deployment and the tests.
type historyRepository struct {
	mu      sync.RWMutex
	entries []history.Entry
}

// NewHistoryRepository creates an empty in-memory history backend.
func NewHistoryRepository() ports.HistoryRepository {
	return &historyRepository{}
}

// Insert prepends e so the slice stays newest-first.
func (r *historyRepository) Insert(_ context.Context, e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append([]history.Entry{e}, r.entries...)
	return nil
}

// List returns up to limit entries, newest first. The result is a copy;
// callers cannot mutate the retained slice.
func (r *historyRepository) List(_ context.Context, limit int) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.entries)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]history.Entry, n)
	copy(out, r.entries[:n])
	return out, nil
}

// Trim drops entries beyond max, oldest first.
func (r *historyRepository) Trim(_ context.Context, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if max >= 0 && len(r.entries) > max {
		r.entries = r.entries[:max]
	}
	return nil
}

// Clear drops everything.
func (r *historyRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}
