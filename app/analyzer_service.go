package app

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"

	"fraudlens/adapters/excel"
	"fraudlens/domain/core"
	"fraudlens/domain/history"
	"fraudlens/domain/scoring"
	"fraudlens/domain/tabular"
	"fraudlens/domain/transaction"
	"fraudlens/ports"
)

// DefaultRowLimit caps how many data rows one upload may carry.
const DefaultRowLimit = 500

// AnalyzerService orchestrates both analysis flows: normalize and validate
// the input, hand it to the scorer, remember the verdict. Input validation
// failures never reach the scorer.
type AnalyzerService struct {
	scorer   ports.Scorer
	store    *history.Store
	rowLimit int
}

// UploadRequest is one file handed over by the UI or CLI.
type UploadRequest struct {
	FileName string
	Data     []byte
}

// BatchAnalysis is the outcome of one scored upload.
type BatchAnalysis struct {
	FileName    string
	Fingerprint core.FileFingerprint
	Format      tabular.Format
	Records     []transaction.Record
	Result      scoring.BatchResult
}

// NewAnalyzerService creates an analyzer over the given scorer and history
// store. A rowLimit of zero or below falls back to DefaultRowLimit.
func NewAnalyzerService(scorer ports.Scorer, store *history.Store, rowLimit int) *AnalyzerService {
	if rowLimit <= 0 {
		rowLimit = DefaultRowLimit
	}
	return &AnalyzerService{scorer: scorer, store: store, rowLimit: rowLimit}
}

// RowLimit returns the configured per-upload row cap.
func (s *AnalyzerService) RowLimit() int { return s.rowLimit }

// AnalyzeRecord scores one hand-entered transaction and appends the verdict
// to history. The stricter form-path validation runs first.
func (s *AnalyzerService) AnalyzeRecord(ctx context.Context, rec transaction.Record) (scoring.Prediction, error) {
	if err := rec.Validate(); err != nil {
		return scoring.Prediction{}, err
	}

	pred, err := s.scorer.Score(ctx, rec)
	if err != nil {
		return scoring.Prediction{}, err
	}

	if err := s.store.Append(ctx, history.NewSingleEntry(rec, pred)); err != nil {
		// The user already has their verdict; a history hiccup is logged,
		// not surfaced.
		log.Printf("[Analyzer] Failed to record history entry: %v", err)
	}
	return pred, nil
}

// ParseUpload normalizes an uploaded file and runs the caller-side checks:
// required columns, at least one data row, row cap. It does not score.
func (s *AnalyzerService) ParseUpload(fileName string, data []byte) (*tabular.Table, error) {
	var table *tabular.Table
	var err error

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		table, err = excel.ReadWorkbook(bytes.NewReader(data))
	default:
		table, err = tabular.Normalize(string(data))
	}
	if err != nil {
		return nil, err
	}

	if err := tabular.RequireColumns(table, transaction.RequiredColumns()); err != nil {
		return nil, err
	}
	if err := tabular.EnsureDataRows(table); err != nil {
		return nil, err
	}
	if err := tabular.CheckRowLimit(table, s.rowLimit); err != nil {
		return nil, err
	}
	return table, nil
}

// AnalyzeUpload runs the full batch flow for one file and appends the rollup
// to history.
func (s *AnalyzerService) AnalyzeUpload(ctx context.Context, req UploadRequest) (*BatchAnalysis, error) {
	table, err := s.ParseUpload(req.FileName, req.Data)
	if err != nil {
		return nil, err
	}

	records, err := transaction.FromTable(table)
	if err != nil {
		return nil, err
	}

	result, err := s.scorer.ScoreBatch(ctx, records)
	if err != nil {
		return nil, err
	}

	fp := core.NewFileFingerprint(req.Data)
	if err := s.store.Append(ctx, history.NewBatchEntry(req.FileName, fp, result)); err != nil {
		log.Printf("[Analyzer] Failed to record batch history entry: %v", err)
	}

	log.Printf("[Analyzer] Scored %s: %d transactions, %d flagged",
		req.FileName, result.Summary.TotalTransactions, result.Summary.FraudCount)

	return &BatchAnalysis{
		FileName:    req.FileName,
		Fingerprint: fp,
		Format:      table.Format,
		Records:     records,
		Result:      result,
	}, nil
}

// History lists the retained entries, newest first.
func (s *AnalyzerService) History(ctx context.Context) ([]history.Entry, error) {
	return s.store.List(ctx)
}

// ClearHistory drops every retained entry.
func (s *AnalyzerService) ClearHistory(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// ServiceHealth reports the scorer's liveness.
func (s *AnalyzerService) ServiceHealth(ctx context.Context) scoring.Health {
	return s.scorer.Health(ctx)
}
