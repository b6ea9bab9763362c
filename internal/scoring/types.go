// Package scoring turns the per-category risk findings of a scan into one
// deterministic, explainable score. The engine is pure: no I/O, no clock,
// no randomness, total over its input domain.
package scoring

import "tokenscan/internal/domain"

// ContextFlags are the non-risk observations that influence bonuses and
// guardrails.
type ContextFlags struct {
	OwnershipRenounced bool
	IsProxy            bool
	HasMint            bool
	HasPause           bool

	IsCentralizedStablecoin bool
	IsRebasingToken         bool
	IsLegacyToken           bool
	HasVestingPattern       bool

	HasLiquidity bool
	LPProtected  bool
	// LiquidityDepthUsd is nil when depth could not be verifiably computed.
	LiquidityDepthUsd *int64
	DexVersion        domain.ProtocolFamily

	// HolderConcentrationPercent is nil when distribution data is absent.
	HolderConcentrationPercent *int
}

// Input is the full argument set for one score calculation.
type Input struct {
	LogicRisk      domain.RiskLevel
	ConstraintRisk domain.RiskLevel
	HolderRisk     domain.RiskLevel
	Liquidity      domain.RiskBreakdown
	Flags          ContextFlags
}

// Adjustment is one line of the score breakdown.
type Adjustment struct {
	Reason string
	Delta  int
}

// Result is the final assessment.
type Result struct {
	FinalScore           int
	Band                 string
	Confidence           string
	CoverageCompleteness int

	BaseScore         int
	Adjustments       []Adjustment
	GuardrailsApplied []string
	RiskFactors       []string
	PositiveSignals   []string
}

// Score bands.
const (
	BandStrong   = "STRONG CONFIDENCE"
	BandLowRisk  = "LOW RISK"
	BandCaution  = "CAUTION"
	BandHighRisk = "HIGH / CRITICAL RISK"
)

// Confidence labels for the overall assessment.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)
