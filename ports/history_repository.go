package ports

import (
	"context"

	"fraudlens/domain/history"
)

// HistoryRepository is the persistence surface behind the bounded history
// store. Backends keep entries newest-first; the store owns the cap and calls
// Trim after every insert.
type HistoryRepository interface {
	Insert(ctx context.Context, e history.Entry) error
	List(ctx context.Context, limit int) ([]history.Entry, error)
	Trim(ctx context.Context, max int) error
	Clear(ctx context.Context) error
}
