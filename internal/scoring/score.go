package scoring

import (
	"fmt"

	"tokenscan/internal/domain"
)

const baseScore = 70

// maxPositiveBonus caps the total score gain from positive evidence.
const maxPositiveBonus = 15

func penalty(risk domain.RiskLevel) int {
	switch risk {
	case domain.RiskLow:
		return 0
	case domain.RiskMedium:
		return -5
	case domain.RiskHigh:
		return -15
	case domain.RiskCritical:
		return -20
	case domain.RiskUnknown, domain.RiskUnverifiable:
		return -3
	default:
		return 0
	}
}

func band(score int) string {
	switch {
	case score >= 90:
		return BandStrong
	case score >= 75:
		return BandLowRisk
	case score >= 55:
		return BandCaution
	default:
		return BandHighRisk
	}
}

// Score computes the final assessment from the six category risks and the
// context flags. Penalties apply first, then bonuses up to +15, then
// guardrail caps; when several caps fire the lowest wins.
func Score(in Input) Result {
	res := Result{
		BaseScore:   baseScore,
		Adjustments: []Adjustment{{Reason: "Base score", Delta: baseScore}},
	}
	score := baseScore

	apply := func(risk domain.RiskLevel, reason string, highFact, mediumFact, unknownFact string) {
		p := penalty(risk)
		if p == 0 {
			return
		}
		score += p
		res.Adjustments = append(res.Adjustments, Adjustment{
			Reason: fmt.Sprintf("%s (%s)", reason, risk),
			Delta:  p,
		})
		switch {
		case risk.IsHigh() && highFact != "":
			res.RiskFactors = append(res.RiskFactors, highFact)
		case risk == domain.RiskMedium && mediumFact != "":
			res.RiskFactors = append(res.RiskFactors, mediumFact)
		case risk.IsUnknown() && unknownFact != "":
			res.RiskFactors = append(res.RiskFactors, unknownFact)
		}
	}

	apply(in.LogicRisk, "Logic risk",
		"Critical/High logic risk detected",
		"Moderate logic risk detected",
		"Logic risk could not be fully verified")
	apply(in.Liquidity.ControlRisk, "LP control risk",
		"LP tokens not protected (burned/locked)", "", "")
	apply(in.Liquidity.DepthRisk, "LP depth risk",
		"Insufficient liquidity depth (<$1,000)",
		"Low liquidity depth (<$10,000)", "")
	apply(in.Liquidity.VerifiabilityRisk, "LP verifiability",
		"", "", "Liquidity depth could not be verified")
	apply(in.ConstraintRisk, "Constraint risk",
		"Restrictive trading controls detected",
		"Trading constraints detected", "")
	apply(in.HolderRisk, "Holder risk",
		"High holder concentration risk",
		"Moderate holder concentration",
		"Holder distribution could not be fully verified")

	// Positive evidence, never more than +15 total.
	bonus := 0
	addBonus := func(amount int, reason, signal string) {
		if amount > maxPositiveBonus-bonus {
			amount = maxPositiveBonus - bonus
		}
		if amount <= 0 {
			return
		}
		bonus += amount
		score += amount
		res.Adjustments = append(res.Adjustments, Adjustment{Reason: reason, Delta: amount})
		res.PositiveSignals = append(res.PositiveSignals, signal)
	}

	if in.Flags.OwnershipRenounced {
		addBonus(5, "Ownership renounced (zero/dead)", "Ownership renounced to zero/dead address")
	}
	if !in.Flags.IsProxy && !in.Flags.HasMint && !in.Flags.HasPause {
		addBonus(5, "No proxy, mint, or pause functions", "No proxy/mint/pause capabilities detected")
	}
	if in.Flags.LiquidityDepthUsd != nil && *in.Flags.LiquidityDepthUsd > 50000 {
		addBonus(5, "Sufficient liquidity depth (>$50k)",
			fmt.Sprintf("Liquidity depth: $%d", *in.Flags.LiquidityDepthUsd))
	}

	// Guardrails. Caps accumulate and the minimum applies, so a stricter cap
	// is never relaxed by a later, looser one.
	allRisks := []domain.RiskLevel{
		in.LogicRisk,
		in.Liquidity.ControlRisk,
		in.Liquidity.DepthRisk,
		in.Liquidity.VerifiabilityRisk,
		in.ConstraintRisk,
		in.HolderRisk,
	}
	mediumRisks := []domain.RiskLevel{
		in.LogicRisk,
		in.Liquidity.ControlRisk,
		in.Liquidity.DepthRisk,
		in.ConstraintRisk,
		in.HolderRisk,
	}

	highCount := 0
	for _, r := range allRisks {
		if r.IsHigh() {
			highCount++
		}
	}
	mediumCount := 0
	for _, r := range mediumRisks {
		if r == domain.RiskMedium {
			mediumCount++
		}
	}

	capLimit := 101
	lower := func(limit int, reason string) {
		if score > limit {
			res.GuardrailsApplied = append(res.GuardrailsApplied, reason)
		}
		if limit < capLimit {
			capLimit = limit
		}
	}

	if highCount > 0 {
		lower(65, fmt.Sprintf("HIGH risk detected (%dx): capped at 65", highCount))
	}
	if mediumCount >= 2 && highCount == 0 {
		lower(75, fmt.Sprintf("Multiple MEDIUM risks (%dx): capped at 75", mediumCount))
	}
	if (in.Flags.DexVersion == domain.FamilyConcentrated || in.Flags.DexVersion == domain.FamilySingleton) &&
		in.Liquidity.VerifiabilityRisk == domain.RiskUnverifiable {
		lower(90, "V3/V4 unverifiable LP: capped at 90")
	}
	if in.Flags.HolderConcentrationPercent != nil && *in.Flags.HolderConcentrationPercent >= 80 {
		lower(70, "Single holder controls >=80% supply: capped at 70")
		res.RiskFactors = append(res.RiskFactors,
			fmt.Sprintf("Single entity holds %d%% of circulating supply", *in.Flags.HolderConcentrationPercent))
	}

	if score > capLimit {
		score = capLimit
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	res.FinalScore = score
	res.Band = band(score)

	// Confidence and coverage track how much of the input was actually
	// resolved to a definite level.
	unknownCount := 0
	for _, r := range allRisks {
		if r.IsUnknown() {
			unknownCount++
		}
	}
	switch {
	case unknownCount == 0 && in.Flags.LiquidityDepthUsd != nil:
		res.Confidence = ConfidenceHigh
	case unknownCount <= 1:
		res.Confidence = ConfidenceMedium
	default:
		res.Confidence = ConfidenceLow
	}
	total := len(allRisks)
	res.CoverageCompleteness = int(float64(total-unknownCount)/float64(total)*100 + 0.5)

	return res
}
