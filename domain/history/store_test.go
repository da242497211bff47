package history

import (
	"context"
	"errors"
	"testing"

	"fraudlens/domain/scoring"
	"fraudlens/domain/transaction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceBackend is a minimal newest-first backend for store tests.
type sliceBackend struct {
	entries   []Entry
	insertErr error
}

func (b *sliceBackend) Insert(_ context.Context, e Entry) error {
	if b.insertErr != nil {
		return b.insertErr
	}
	b.entries = append([]Entry{e}, b.entries...)
	return nil
}

func (b *sliceBackend) List(_ context.Context, limit int) ([]Entry, error) {
	if limit > 0 && len(b.entries) > limit {
		return b.entries[:limit], nil
	}
	return b.entries, nil
}

func (b *sliceBackend) Trim(_ context.Context, max int) error {
	if len(b.entries) > max {
		b.entries = b.entries[:max]
	}
	return nil
}

func (b *sliceBackend) Clear(_ context.Context) error {
	b.entries = nil
	return nil
}

func TestStoreAppendStampsIdentity(t *testing.T) {
	backend := &sliceBackend{}
	store := NewStore(backend, 10)

	err := store.Append(context.Background(), Entry{Kind: KindSingle, Source: "manual entry"})
	require.NoError(t, err)

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID.String())
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestStoreEvictsOldestBeyondCap(t *testing.T) {
	backend := &sliceBackend{}
	store := NewStore(backend, 3)

	for i := 0; i < 5; i++ {
		rec := transaction.Record{Type: transaction.CategoryPayment, Amount: float64(i)}
		err := store.Append(context.Background(), NewSingleEntry(rec, scoring.Prediction{}))
		require.NoError(t, err)
	}

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first: amounts 4, 3, 2 survive; 0 and 1 were evicted.
	assert.Equal(t, 4.0, entries[0].Amount)
	assert.Equal(t, 3.0, entries[1].Amount)
	assert.Equal(t, 2.0, entries[2].Amount)
}

func TestStoreDefaultCap(t *testing.T) {
	store := NewStore(&sliceBackend{}, 0)
	assert.Equal(t, DefaultMaxEntries, store.Max())
}

func TestStoreClear(t *testing.T) {
	backend := &sliceBackend{}
	store := NewStore(backend, 10)

	rec := transaction.Record{Type: transaction.CategoryDebit, Amount: 12.5}
	require.NoError(t, store.Append(context.Background(), NewSingleEntry(rec, scoring.Prediction{})))
	require.NoError(t, store.Clear(context.Background()))

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreAppendSurfacesBackendErrors(t *testing.T) {
	backend := &sliceBackend{insertErr: errors.New("disk full")}
	store := NewStore(backend, 10)

	err := store.Append(context.Background(), Entry{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestNewBatchEntryRollup(t *testing.T) {
	result := scoring.BatchResult{
		Summary: scoring.BatchSummary{
			TotalTransactions: 10,
			FraudCount:        3,
			LegitCount:        7,
			FraudPercentage:   30.0,
		},
	}

	e := NewBatchEntry("transactions.csv", "", result)
	assert.Equal(t, KindBatch, e.Kind)
	assert.Equal(t, "transactions.csv", e.Source)
	assert.Equal(t, 10, e.TotalRows)
	assert.Equal(t, 3, e.FraudCount)
	assert.Equal(t, 7, e.LegitCount)
	assert.Equal(t, 30.0, e.FraudPercentage)
}
