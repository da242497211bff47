package postgres

import (
	"context"
	"fmt"
	"time"

	"fraudlens/domain/core"
	"fraudlens/domain/history"
	"fraudlens/domain/scoring"
	"fraudlens/domain/transaction"
	"fraudlens/ports"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the history table when it does not exist yet. The
// schema is one flat table, so a full migration runner would be overkill.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS prediction_history (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		prediction TEXT NOT NULL DEFAULT '',
		is_fraud BOOLEAN NOT NULL DEFAULT FALSE,
		fraud_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
		risk_level TEXT NOT NULL DEFAULT '',
		fingerprint TEXT NOT NULL DEFAULT '',
		total_rows INTEGER NOT NULL DEFAULT 0,
		fraud_count INTEGER NOT NULL DEFAULT 0,
		legit_count INTEGER NOT NULL DEFAULT 0,
		fraud_percentage DOUBLE PRECISION NOT NULL DEFAULT 0
	)`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create prediction_history table: %w", err)
	}
	return nil
}

// historyRepository implements the HistoryRepository interface on Postgres
type historyRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new Postgres-backed history repository
func NewHistoryRepository(db *sqlx.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

// rowEntry is the scan target; plain column types keep the driver happy.
type rowEntry struct {
	ID               string    `db:"id"`
	Kind             string    `db:"kind"`
	CreatedAt        time.Time `db:"created_at"`
	Source           string    `db:"source"`
	Category         string    `db:"category"`
	Amount           float64   `db:"amount"`
	Prediction       string    `db:"prediction"`
	IsFraud          bool      `db:"is_fraud"`
	FraudProbability float64   `db:"fraud_probability"`
	RiskLevel        string    `db:"risk_level"`
	Fingerprint      string    `db:"fingerprint"`
	TotalRows        int       `db:"total_rows"`
	FraudCount       int       `db:"fraud_count"`
	LegitCount       int       `db:"legit_count"`
	FraudPercentage  float64   `db:"fraud_percentage"`
}

func (row rowEntry) toDomain() history.Entry {
	return history.Entry{
		ID:               core.EntryID(row.ID),
		Kind:             history.Kind(row.Kind),
		CreatedAt:        core.NewTimestamp(row.CreatedAt),
		Source:           row.Source,
		Category:         transaction.Category(row.Category),
		Amount:           row.Amount,
		Prediction:       row.Prediction,
		IsFraud:          row.IsFraud,
		FraudProbability: row.FraudProbability,
		RiskLevel:        scoring.RiskLevel(row.RiskLevel),
		Fingerprint:      row.Fingerprint,
		TotalRows:        row.TotalRows,
		FraudCount:       row.FraudCount,
		LegitCount:       row.LegitCount,
		FraudPercentage:  row.FraudPercentage,
	}
}

// Insert stores one entry.
func (r *historyRepository) Insert(ctx context.Context, e history.Entry) error {
	query := `INSERT INTO prediction_history (
		id, kind, created_at, source, category, amount, prediction, is_fraud,
		fraud_probability, risk_level, fingerprint, total_rows, fraud_count,
		legit_count, fraud_percentage
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
	)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID.String(), string(e.Kind), e.CreatedAt.Time(), e.Source,
		string(e.Category), e.Amount, e.Prediction, e.IsFraud,
		e.FraudProbability, string(e.RiskLevel), e.Fingerprint,
		e.TotalRows, e.FraudCount, e.LegitCount, e.FraudPercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (r *historyRepository) List(ctx context.Context, limit int) ([]history.Entry, error) {
	query := `SELECT
		id, kind, created_at, source, category, amount, prediction, is_fraud,
		fraud_probability, risk_level, fingerprint, total_rows, fraud_count,
		legit_count, fraud_percentage
	FROM prediction_history
	ORDER BY created_at DESC, id DESC`

	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	var rows []rowEntry
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}

	entries := make([]history.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}
	return entries, nil
}

// Trim deletes everything older than the newest max entries.
func (r *historyRepository) Trim(ctx context.Context, max int) error {
	query := `DELETE FROM prediction_history
	WHERE id NOT IN (
		SELECT id FROM prediction_history
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	)`

	if _, err := r.db.ExecContext(ctx, query, max); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

// Clear empties the table.
func (r *historyRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prediction_history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
