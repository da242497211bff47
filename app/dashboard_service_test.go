package app

import (
	"context"
	"testing"

	"fraudlens/adapters/memory"
	"fraudlens/domain/history"
	"fraudlens/domain/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(t *testing.T) (*DashboardService, *history.Store) {
	t.Helper()
	store := history.NewStore(memory.NewHistoryRepository(), 50)
	return NewDashboardService(store), store
}

func singleEntry(prob float64, fraud bool, tier scoring.RiskLevel) history.Entry {
	return history.Entry{
		Kind:             history.KindSingle,
		Source:           "manual entry",
		FraudProbability: prob,
		IsFraud:          fraud,
		RiskLevel:        tier,
	}
}

func TestSummaryEmptyStore(t *testing.T) {
	svc, _ := newTestDashboard(t)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, sum.TotalAnalyses)
	assert.Zero(t, sum.TransactionsScored)
	assert.Zero(t, sum.FraudRate)
	assert.Zero(t, sum.AvgFraudProbability)

	require.Len(t, sum.Histogram, 10)
	for _, b := range sum.Histogram {
		assert.Zero(t, b.Count)
	}
	assert.Equal(t, 0, sum.RiskBreakdown[scoring.RiskLow])
	assert.Equal(t, 0, sum.RiskBreakdown[scoring.RiskHigh])
}

func TestSummaryFoldsSinglesAndBatches(t *testing.T) {
	svc, store := newTestDashboard(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, singleEntry(0.05, false, scoring.RiskLow)))
	require.NoError(t, store.Append(ctx, singleEntry(0.55, true, scoring.RiskMedium)))
	require.NoError(t, store.Append(ctx, singleEntry(0.95, true, scoring.RiskHigh)))
	require.NoError(t, store.Append(ctx, history.Entry{
		Kind:       history.KindBatch,
		Source:     "upload.csv",
		TotalRows:  10,
		FraudCount: 2,
		LegitCount: 8,
	}))

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.TotalAnalyses)
	assert.Equal(t, 3, sum.SingleCount)
	assert.Equal(t, 1, sum.BatchCount)
	assert.Equal(t, 13, sum.TransactionsScored)
	assert.Equal(t, 4, sum.FraudDetected)
	assert.InDelta(t, 100.0*4.0/13.0, sum.FraudRate, 1e-9)

	assert.InDelta(t, (0.05+0.55+0.95)/3, sum.AvgFraudProbability, 1e-9)
	assert.InDelta(t, 0.55, sum.MedianFraudProbability, 1e-9)
	assert.GreaterOrEqual(t, sum.P90FraudProbability, sum.MedianFraudProbability)
	assert.LessOrEqual(t, sum.P90FraudProbability, 0.95)

	assert.Equal(t, 1, sum.RiskBreakdown[scoring.RiskLow])
	assert.Equal(t, 1, sum.RiskBreakdown[scoring.RiskMedium])
	assert.Equal(t, 1, sum.RiskBreakdown[scoring.RiskHigh])
}

func TestSummaryHistogramEdges(t *testing.T) {
	svc, store := newTestDashboard(t)
	ctx := context.Background()

	for _, p := range []float64{0.0, 0.05, 0.95, 1.0} {
		require.NoError(t, store.Append(ctx, singleEntry(p, p >= 0.5, scoring.RiskLow)))
	}

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, sum.Histogram, 10)

	first, last := sum.Histogram[0], sum.Histogram[9]
	assert.Equal(t, "0.0-0.1", first.Label)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, "0.9-1.0", last.Label)
	assert.Equal(t, 2, last.Count, "a probability of exactly 1.0 belongs in the top bucket")
	assert.Equal(t, 0.9, last.From)
	assert.Equal(t, 1.0, last.To)

	total := 0
	for _, b := range sum.Histogram {
		total += b.Count
	}
	assert.Equal(t, 4, total)
}

func TestSummaryKeepsUnknownRiskTiers(t *testing.T) {
	svc, store := newTestDashboard(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, singleEntry(0.99, true, scoring.RiskLevel("critical"))))

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.RiskBreakdown[scoring.RiskLevel("critical")])
	assert.Equal(t, 0, sum.RiskBreakdown[scoring.RiskHigh])
}

func TestSummaryBatchesContributeNoProbabilities(t *testing.T) {
	svc, store := newTestDashboard(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, history.Entry{
		Kind:       history.KindBatch,
		Source:     "upload.csv",
		TotalRows:  100,
		FraudCount: 40,
		LegitCount: 60,
	}))

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 100, sum.TransactionsScored)
	assert.Equal(t, 40, sum.FraudDetected)
	assert.Zero(t, sum.AvgFraudProbability)
	for _, b := range sum.Histogram {
		assert.Zero(t, b.Count)
	}
}
