package scoring

// Summarize computes the batch rollup from per-transaction verdicts. Used
// when this side has to synthesize the summary itself, e.g. the per-record
// fallback path and the local stand-in server.
func Summarize(results []Prediction) BatchSummary {
	s := BatchSummary{TotalTransactions: len(results)}
	for _, r := range results {
		if r.IsFraud {
			s.FraudCount++
		} else {
			s.LegitCount++
		}
	}
	if s.TotalTransactions > 0 {
		s.FraudPercentage = float64(s.FraudCount) / float64(s.TotalTransactions) * 100
	}
	return s
}

// TierFor maps a fraud probability onto a severity tier. Only the local
// stand-in engine derives tiers; remote tiers are rendered as received.
func TierFor(probability float64) RiskLevel {
	switch {
	case probability >= 0.7:
		return RiskHigh
	case probability >= 0.3:
		return RiskMedium
	default:
		return RiskLow
	}
}
