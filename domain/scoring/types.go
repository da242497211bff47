package scoring

import "strings"

// RiskLevel is the severity tier attached to a prediction by the scoring
// service. This layer renders tiers, it never derives them from raw
// probabilities except in the local stand-in engine.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// NormalizeRiskLevel maps whatever casing the service used onto the known
// tiers, keeping unknown tiers as-is so nothing is silently dropped.
func NormalizeRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow
	case "medium":
		return RiskMedium
	case "high":
		return RiskHigh
	default:
		return RiskLevel(s)
	}
}

// Prediction is the scoring service's verdict on one transaction.
type Prediction struct {
	Prediction       string    `json:"prediction"`
	IsFraud          bool      `json:"is_fraud"`
	FraudProbability float64   `json:"fraud_probability"`
	RiskLevel        RiskLevel `json:"risk_level"`
	ModelVersion     string    `json:"model_version,omitempty"`
}

// Prediction labels used by the local engine; the remote service may use its
// own wording and it is rendered verbatim.
const (
	LabelFraud      = "Fraud"
	LabelLegitimate = "Legitimate"
)

// BatchSummary aggregates one scored batch.
type BatchSummary struct {
	TotalTransactions int     `json:"total_transactions"`
	FraudCount        int     `json:"fraud_count"`
	LegitCount        int     `json:"legit_count"`
	FraudPercentage   float64 `json:"fraud_percentage"`
}

// BatchResult pairs the summary with per-transaction verdicts, ordered 1:1
// with the submitted records.
type BatchResult struct {
	Summary BatchSummary `json:"summary"`
	Results []Prediction `json:"results"`
}

// Health is the liveness report for the scoring service. Online is derived
// client-side: any transport or decode failure means offline, never an error.
type Health struct {
	Online       bool    `json:"online"`
	Status       string  `json:"status,omitempty"`
	ModelLoaded  bool    `json:"model_loaded,omitempty"`
	ModelVersion string  `json:"model_version,omitempty"`
	Threshold    float64 `json:"threshold,omitempty"`
}

// Offline returns the Health value reported when the service cannot be
// reached.
func Offline() Health {
	return Health{Online: false, Status: "offline"}
}
