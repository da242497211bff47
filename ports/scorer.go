package ports

import (
	"context"

	"fraudlens/domain/scoring"
	"fraudlens/domain/transaction"
)

// Scorer is the fraud-inference surface the application drives. The remote
// HTTP service and the local heuristic engine both sit behind it, so the
// handlers never know which one scored a transaction.
type Scorer interface {
	// Score evaluates one transaction.
	Score(ctx context.Context, rec transaction.Record) (scoring.Prediction, error)

	// ScoreBatch evaluates an ordered slice of transactions. Results come
	// back 1:1 with the input order.
	ScoreBatch(ctx context.Context, records []transaction.Record) (scoring.BatchResult, error)

	// Health reports liveness. Implementations return an offline Health
	// value rather than an error when the service cannot be reached.
	Health(ctx context.Context) scoring.Health
}
