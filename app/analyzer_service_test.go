package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fraudlens/domain/history"
	"fraudlens/domain/scoring"
	"fraudlens/domain/tabular"
	"fraudlens/domain/transaction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing
type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, rec transaction.Record) (scoring.Prediction, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(scoring.Prediction), args.Error(1)
}

func (m *MockScorer) ScoreBatch(ctx context.Context, records []transaction.Record) (scoring.BatchResult, error) {
	args := m.Called(ctx, records)
	return args.Get(0).(scoring.BatchResult), args.Error(1)
}

func (m *MockScorer) Health(ctx context.Context) scoring.Health {
	args := m.Called(ctx)
	return args.Get(0).(scoring.Health)
}

// recordingBackend keeps entries in memory and can fail inserts on demand.
type recordingBackend struct {
	entries   []history.Entry
	insertErr error
}

func (b *recordingBackend) Insert(_ context.Context, e history.Entry) error {
	if b.insertErr != nil {
		return b.insertErr
	}
	b.entries = append([]history.Entry{e}, b.entries...)
	return nil
}

func (b *recordingBackend) List(_ context.Context, limit int) ([]history.Entry, error) {
	if limit <= 0 || limit > len(b.entries) {
		limit = len(b.entries)
	}
	out := make([]history.Entry, limit)
	copy(out, b.entries[:limit])
	return out, nil
}

func (b *recordingBackend) Trim(_ context.Context, max int) error {
	if len(b.entries) > max {
		b.entries = b.entries[:max]
	}
	return nil
}

func (b *recordingBackend) Clear(_ context.Context) error {
	b.entries = nil
	return nil
}

const paysimCSV = `step,type,amount,oldbalanceOrg,newbalanceOrig,oldbalanceDest,newbalanceDest
1,PAYMENT,9839.64,170136.0,160296.36,0.0,0.0
1,TRANSFER,181.0,181.0,0.0,0.0,0.0
1,CASH_OUT,181.0,181.0,0.0,21182.0,21363.0`

func newTestAnalyzer(scorer *MockScorer, backend *recordingBackend, rowLimit int) *AnalyzerService {
	return NewAnalyzerService(scorer, history.NewStore(backend, 50), rowLimit)
}

func validRecord() transaction.Record {
	return transaction.Record{
		Step:          1,
		Type:          transaction.CategoryTransfer,
		Amount:        181.0,
		OldBalanceOrg: 181.0,
	}
}

func TestAnalyzeRecordScoresAndRemembers(t *testing.T) {
	mockScorer := &MockScorer{}
	backend := &recordingBackend{}
	svc := newTestAnalyzer(mockScorer, backend, 0)

	want := scoring.Prediction{
		Prediction:       scoring.LabelFraud,
		IsFraud:          true,
		FraudProbability: 0.91,
		RiskLevel:        scoring.RiskHigh,
	}
	mockScorer.On("Score", mock.Anything, mock.AnythingOfType("transaction.Record")).Return(want, nil)

	got, err := svc.AnalyzeRecord(context.Background(), validRecord())

	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.Len(t, backend.entries, 1)
	entry := backend.entries[0]
	assert.Equal(t, history.KindSingle, entry.Kind)
	assert.Equal(t, transaction.CategoryTransfer, entry.Category)
	assert.Equal(t, 181.0, entry.Amount)
	assert.True(t, entry.IsFraud)
	assert.Equal(t, 0.91, entry.FraudProbability)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NotEmpty(t, entry.ID.String())
}

func TestAnalyzeRecordRejectsInvalidInputBeforeScoring(t *testing.T) {
	mockScorer := &MockScorer{}
	backend := &recordingBackend{}
	svc := newTestAnalyzer(mockScorer, backend, 0)

	rec := validRecord()
	rec.Amount = -5

	_, err := svc.AnalyzeRecord(context.Background(), rec)

	require.Error(t, err)
	mockScorer.AssertNotCalled(t, "Score")
	assert.Empty(t, backend.entries)
}

func TestAnalyzeRecordSurfacesScorerError(t *testing.T) {
	mockScorer := &MockScorer{}
	backend := &recordingBackend{}
	svc := newTestAnalyzer(mockScorer, backend, 0)

	scoreErr := errors.New("service exploded")
	mockScorer.On("Score", mock.Anything, mock.Anything).Return(scoring.Prediction{}, scoreErr)

	_, err := svc.AnalyzeRecord(context.Background(), validRecord())

	require.ErrorIs(t, err, scoreErr)
	assert.Empty(t, backend.entries, "failed analyses must not be remembered")
}

func TestAnalyzeRecordToleratesHistoryFailure(t *testing.T) {
	mockScorer := &MockScorer{}
	backend := &recordingBackend{insertErr: errors.New("disk full")}
	svc := newTestAnalyzer(mockScorer, backend, 0)

	want := scoring.Prediction{Prediction: scoring.LabelLegitimate, FraudProbability: 0.02, RiskLevel: scoring.RiskLow}
	mockScorer.On("Score", mock.Anything, mock.Anything).Return(want, nil)

	got, err := svc.AnalyzeRecord(context.Background(), validRecord())

	require.NoError(t, err, "history trouble must not void a delivered verdict")
	assert.Equal(t, want, got)
}

func TestAnalyzeUploadFullFlow(t *testing.T) {
	mockScorer := &MockScorer{}
	backend := &recordingBackend{}
	svc := newTestAnalyzer(mockScorer, backend, 0)

	result := scoring.BatchResult{
		Summary: scoring.BatchSummary{TotalTransactions: 3, FraudCount: 1, LegitCount: 2, FraudPercentage: 33.33},
		Results: []scoring.Prediction{
			{Prediction: scoring.LabelLegitimate, FraudProbability: 0.02, RiskLevel: scoring.RiskLow},
			{Prediction: scoring.LabelFraud, IsFraud: true, FraudProbability: 0.88, RiskLevel: scoring.RiskHigh},
			{Prediction: scoring.LabelLegitimate, FraudProbability: 0.12, RiskLevel: scoring.RiskLow},
		},
	}
	mockScorer.On("ScoreBatch", mock.Anything, mock.AnythingOfType("[]transaction.Record")).Return(result, nil)

	analysis, err := svc.AnalyzeUpload(context.Background(), UploadRequest{
		FileName: "transactions.csv",
		Data:     []byte(paysimCSV),
	})

	require.NoError(t, err)
	assert.Equal(t, "transactions.csv", analysis.FileName)
	assert.Equal(t, tabular.FormatStandard, analysis.Format)
	assert.Len(t, analysis.Records, 3)
	assert.Equal(t, transaction.CategoryPayment, analysis.Records[0].Type)
	assert.Equal(t, result, analysis.Result)
	assert.Len(t, analysis.Fingerprint.Short(), 12)

	require.Len(t, backend.entries, 1)
	entry := backend.entries[0]
	assert.Equal(t, history.KindBatch, entry.Kind)
	assert.Equal(t, "transactions.csv", entry.Source)
	assert.Equal(t, 3, entry.TotalRows)
	assert.Equal(t, 1, entry.FraudCount)
	assert.Equal(t, analysis.Fingerprint.Short(), entry.Fingerprint)
}

func TestAnalyzeUploadScorerErrorSkipsHistory(t *testing.T) {
	mockScorer := &MockScorer{}
	backend := &recordingBackend{}
	svc := newTestAnalyzer(mockScorer, backend, 0)

	mockScorer.On("ScoreBatch", mock.Anything, mock.Anything).
		Return(scoring.BatchResult{}, errors.New("scoring service returned status 500"))

	_, err := svc.AnalyzeUpload(context.Background(), UploadRequest{
		FileName: "transactions.csv",
		Data:     []byte(paysimCSV),
	})

	require.Error(t, err)
	assert.Empty(t, backend.entries)
}

func TestParseUploadRejectsBadInputs(t *testing.T) {
	mockScorer := &MockScorer{}
	svc := newTestAnalyzer(mockScorer, &recordingBackend{}, 2)

	header := strings.Join(transaction.RequiredColumns(), ",")

	tests := []struct {
		name  string
		file  string
		data  string
		check func(t *testing.T, err error)
	}{
		{
			name: "empty file",
			file: "empty.csv",
			data: "\n  \n\t\n",
			check: func(t *testing.T, err error) {
				assert.True(t, tabular.IsEmptyInput(err))
			},
		},
		{
			name: "missing columns",
			file: "wrong.csv",
			data: "step,amount\n1,100",
			check: func(t *testing.T, err error) {
				require.True(t, tabular.IsMissingColumns(err))
				var missing *tabular.MissingColumnsError
				require.ErrorAs(t, err, &missing)
				assert.Contains(t, missing.Missing, "type")
				assert.Equal(t, []string{"step", "amount"}, missing.Found)
			},
		},
		{
			name: "header only",
			file: "header.csv",
			data: header,
			check: func(t *testing.T, err error) {
				assert.True(t, tabular.IsNoDataRows(err))
			},
		},
		{
			name: "over the row cap",
			file: "big.csv",
			data: paysimCSV,
			check: func(t *testing.T, err error) {
				require.True(t, tabular.IsRowLimit(err))
				var limit *tabular.RowLimitError
				require.ErrorAs(t, err, &limit)
				assert.Equal(t, 2, limit.Limit)
				assert.Equal(t, 3, limit.Count)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseUpload(tt.file, []byte(tt.data))
			require.Error(t, err)
			tt.check(t, err)
		})
	}

	mockScorer.AssertNotCalled(t, "ScoreBatch")
}

func TestParseUploadDispatchesOnExtension(t *testing.T) {
	svc := newTestAnalyzer(&MockScorer{}, &recordingBackend{}, 0)

	// The same bytes parse as CSV text but are nowhere near a zip archive,
	// so the extension alone decides which reader runs.
	_, csvErr := svc.ParseUpload("data.csv", []byte(paysimCSV))
	assert.NoError(t, csvErr)

	_, xlsxErr := svc.ParseUpload("data.XLSX", []byte(paysimCSV))
	assert.Error(t, xlsxErr)
}

func TestRowLimitDefaults(t *testing.T) {
	svc := newTestAnalyzer(&MockScorer{}, &recordingBackend{}, 0)
	assert.Equal(t, DefaultRowLimit, svc.RowLimit())

	svc = newTestAnalyzer(&MockScorer{}, &recordingBackend{}, 25)
	assert.Equal(t, 25, svc.RowLimit())
}

func TestHistoryPassthrough(t *testing.T) {
	mockScorer := &MockScorer{}
	backend := &recordingBackend{}
	svc := newTestAnalyzer(mockScorer, backend, 0)

	mockScorer.On("Score", mock.Anything, mock.Anything).
		Return(scoring.Prediction{Prediction: scoring.LabelLegitimate, RiskLevel: scoring.RiskLow}, nil)

	_, err := svc.AnalyzeRecord(context.Background(), validRecord())
	require.NoError(t, err)

	entries, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, svc.ClearHistory(context.Background()))

	entries, err = svc.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestServiceHealthPassthrough(t *testing.T) {
	mockScorer := &MockScorer{}
	svc := newTestAnalyzer(mockScorer, &recordingBackend{}, 0)

	mockScorer.On("Health", mock.Anything).Return(scoring.Health{Online: true, Status: "healthy", ModelLoaded: true})

	health := svc.ServiceHealth(context.Background())
	assert.True(t, health.Online)
	assert.Equal(t, "healthy", health.Status)
}
