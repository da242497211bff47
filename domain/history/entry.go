package history

import (
	"fraudlens/domain/core"
	"fraudlens/domain/scoring"
	"fraudlens/domain/transaction"
)

// Kind distinguishes single-transaction analyses from batch uploads.
type Kind string

const (
	KindSingle Kind = "single"
	KindBatch  Kind = "batch"
)

// Entry is one remembered analysis. Single entries carry the transaction
// verdict fields; batch entries carry the file rollup. The struct is flat so
// every backend can persist it without schema gymnastics.
type Entry struct {
	ID        core.EntryID   `json:"id"`
	Kind      Kind           `json:"kind"`
	CreatedAt core.Timestamp `json:"created_at"`
	Source    string         `json:"source"`

	// Single-analysis verdict
	Category         transaction.Category `json:"category,omitempty"`
	Amount           float64              `json:"amount,omitempty"`
	Prediction       string               `json:"prediction,omitempty"`
	IsFraud          bool                 `json:"is_fraud,omitempty"`
	FraudProbability float64              `json:"fraud_probability,omitempty"`
	RiskLevel        scoring.RiskLevel    `json:"risk_level,omitempty"`

	// Batch rollup
	Fingerprint     string  `json:"fingerprint,omitempty"`
	TotalRows       int     `json:"total_rows,omitempty"`
	FraudCount      int     `json:"fraud_count,omitempty"`
	LegitCount      int     `json:"legit_count,omitempty"`
	FraudPercentage float64 `json:"fraud_percentage,omitempty"`
}

// NewSingleEntry records one hand-entered transaction and its verdict.
func NewSingleEntry(rec transaction.Record, pred scoring.Prediction) Entry {
	return Entry{
		ID:               core.EntryID(core.NewID()),
		Kind:             KindSingle,
		CreatedAt:        core.Now(),
		Source:           "manual entry",
		Category:         rec.Type,
		Amount:           rec.Amount,
		Prediction:       pred.Prediction,
		IsFraud:          pred.IsFraud,
		FraudProbability: pred.FraudProbability,
		RiskLevel:        pred.RiskLevel,
	}
}

// NewBatchEntry records one scored upload.
func NewBatchEntry(source string, fp core.FileFingerprint, result scoring.BatchResult) Entry {
	return Entry{
		ID:              core.EntryID(core.NewID()),
		Kind:            KindBatch,
		CreatedAt:       core.Now(),
		Source:          source,
		Fingerprint:     fp.Short(),
		TotalRows:       result.Summary.TotalTransactions,
		FraudCount:      result.Summary.FraudCount,
		LegitCount:      result.Summary.LegitCount,
		FraudPercentage: result.Summary.FraudPercentage,
	}
}
