package liquidity

import (
	"tokenscan/internal/domain"
)

// deriveRisks maps the discovery outcome to the three liquidity sub-risks.
// Unverifiable states are reported as such, never guessed into a level.
func deriveRisks(res *domain.LiquidityResult) domain.RiskBreakdown {
	if !res.Found {
		return domain.RiskBreakdown{
			ControlRisk:       domain.RiskHigh,
			DepthRisk:         domain.RiskHigh,
			VerifiabilityRisk: domain.RiskHigh,
		}
	}

	nonCustodial := res.DominantFamily == domain.FamilyConcentrated ||
		res.DominantFamily == domain.FamilySingleton

	var control domain.RiskLevel
	switch {
	case res.IsBurned && res.BurnPercent > 90:
		control = domain.RiskLow
	case res.IsLocked && res.LockPercent > 50:
		control = domain.RiskLow
	case nonCustodial:
		control = domain.RiskUnverifiable
	default:
		control = domain.RiskHigh
	}

	var depth domain.RiskLevel
	switch {
	case !res.DepthVerifiable || res.TotalDepthUsd == nil:
		depth = domain.RiskUnverifiable
	case *res.TotalDepthUsd < 1000:
		depth = domain.RiskHigh
	case *res.TotalDepthUsd < 10000:
		depth = domain.RiskMedium
	default:
		depth = domain.RiskLow
	}

	var verifiability domain.RiskLevel
	switch {
	case res.DepthVerifiable:
		verifiability = domain.RiskLow
	case nonCustodial:
		verifiability = domain.RiskUnverifiable
	default:
		verifiability = domain.RiskUnknown
	}

	return domain.RiskBreakdown{
		ControlRisk:       control,
		DepthRisk:         depth,
		VerifiabilityRisk: verifiability,
	}
}
