// Package domain holds the shared vocabulary of a scan: risk levels,
// confidence labels, liquidity venues and per-category results.
package domain

// RiskLevel classifies the severity of a single risk category.
// UNKNOWN and UNVERIFIABLE are deliberately distinct from LOW: a category
// that could not be determined is never treated as safe.
type RiskLevel string

const (
	RiskLow          RiskLevel = "LOW"
	RiskMedium       RiskLevel = "MEDIUM"
	RiskHigh         RiskLevel = "HIGH"
	RiskCritical     RiskLevel = "CRITICAL"
	RiskUnknown      RiskLevel = "UNKNOWN"
	RiskUnverifiable RiskLevel = "UNVERIFIABLE"
)

// IsHigh reports whether the level is HIGH or CRITICAL.
func (r RiskLevel) IsHigh() bool {
	return r == RiskHigh || r == RiskCritical
}

// IsUnknown reports whether the level represents missing evidence.
func (r RiskLevel) IsUnknown() bool {
	return r == RiskUnknown || r == RiskUnverifiable
}

// Confidence labels how well a finding is backed by on-chain evidence.
type Confidence string

const (
	ConfidenceVerified     Confidence = "VERIFIED"
	ConfidencePartial      Confidence = "PARTIAL"
	ConfidenceUnverifiable Confidence = "UNVERIFIABLE"
)

// AbortReason explains why a scan stopped before completing the pipeline.
type AbortReason string

const (
	AbortNoCode       AbortReason = "NO_CODE"
	AbortHighRisk     AbortReason = "HIGH_RISK"
	AbortCriticalRisk AbortReason = "CRITICAL_RISK"
	AbortRPCFailure   AbortReason = "RPC_FAILURE"
)

// Aborted carries the context of an early scan termination.
type Aborted struct {
	Reason  AbortReason
	Stage   string
	Message string
}
