package app

import (
	"context"
	"fmt"
	"math"
	"sort"

	"fraudlens/domain/history"
	"fraudlens/domain/scoring"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// histogramBuckets is the fixed bucket count for the probability histogram.
const histogramBuckets = 10

// DashboardService derives the KPI view from the retained history. Every
// aggregate tolerates an empty store: zeroes, never errors.
type DashboardService struct {
	store *history.Store
}

// NewDashboardService creates a dashboard reader over store.
func NewDashboardService(store *history.Store) *DashboardService {
	return &DashboardService{store: store}
}

// HistogramBucket is one bar of the probability histogram.
type HistogramBucket struct {
	Label string  `json:"label"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// DashboardSummary is everything the dashboard page renders.
type DashboardSummary struct {
	TotalAnalyses      int `json:"total_analyses"`
	SingleCount        int `json:"single_count"`
	BatchCount         int `json:"batch_count"`
	TransactionsScored int `json:"transactions_scored"`
	FraudDetected      int `json:"fraud_detected"`

	// FraudRate is the percentage of scored transactions flagged as fraud.
	FraudRate float64 `json:"fraud_rate"`

	// Probability stats cover single analyses only; batch entries retain
	// just their rollup, not per-transaction probabilities.
	AvgFraudProbability    float64 `json:"avg_fraud_probability"`
	MedianFraudProbability float64 `json:"median_fraud_probability"`
	P90FraudProbability    float64 `json:"p90_fraud_probability"`

	RiskBreakdown map[scoring.RiskLevel]int `json:"risk_breakdown"`
	Histogram     []HistogramBucket         `json:"histogram"`
}

// Summary folds the whole retained history into one dashboard view.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		RiskBreakdown: map[scoring.RiskLevel]int{
			scoring.RiskLow:    0,
			scoring.RiskMedium: 0,
			scoring.RiskHigh:   0,
		},
	}

	var probabilities []float64
	for _, e := range entries {
		summary.TotalAnalyses++
		switch e.Kind {
		case history.KindBatch:
			summary.BatchCount++
			summary.TransactionsScored += e.TotalRows
			summary.FraudDetected += e.FraudCount
		default:
			summary.SingleCount++
			summary.TransactionsScored++
			if e.IsFraud {
				summary.FraudDetected++
			}
			summary.RiskBreakdown[e.RiskLevel]++
			probabilities = append(probabilities, e.FraudProbability)
		}
	}

	if summary.TransactionsScored > 0 {
		summary.FraudRate = float64(summary.FraudDetected) / float64(summary.TransactionsScored) * 100
	}

	if len(probabilities) > 0 {
		if avg, err := stats.Mean(probabilities); err == nil {
			summary.AvgFraudProbability = avg
		}
		if med, err := stats.Median(probabilities); err == nil {
			summary.MedianFraudProbability = med
		}
		if p90, err := stats.Percentile(probabilities, 90); err == nil {
			summary.P90FraudProbability = p90
		}
	}

	summary.Histogram = probabilityHistogram(probabilities)
	return summary, nil
}

// probabilityHistogram buckets single-analysis probabilities into ten fixed
// [0,1] bands.
func probabilityHistogram(probabilities []float64) []HistogramBucket {
	dividers := make([]float64, histogramBuckets+1)
	for i := range dividers {
		dividers[i] = float64(i) / histogramBuckets
	}
	// Nudge the top divider so a probability of exactly 1.0 lands in the
	// last bucket instead of falling off the edge.
	dividers[histogramBuckets] = math.Nextafter(1.0, 2.0)

	// Clamp into [0,1]; stat.Histogram panics on out-of-range samples and a
	// misbehaving service must not take the dashboard down.
	sorted := make([]float64, len(probabilities))
	for i, p := range probabilities {
		sorted[i] = math.Min(1, math.Max(0, p))
	}
	sort.Float64s(sorted)

	counts := stat.Histogram(nil, dividers, sorted, nil)

	buckets := make([]HistogramBucket, histogramBuckets)
	for i := range buckets {
		from := float64(i) / histogramBuckets
		to := float64(i+1) / histogramBuckets
		buckets[i] = HistogramBucket{
			Label: fmt.Sprintf("%.1f-%.1f", from, to),
			From:  from,
			To:    to,
			Count: int(counts[i]),
		}
	}
	return buckets
}
