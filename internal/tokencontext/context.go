// Package tokencontext runs the contextual pattern pass: legacy tokens,
// centralized stablecoins, rebasing mechanics, vesting treasuries and
// non-standard proxies. Findings here do not carry their own risk level;
// they adjust how scoring reads the category risks.
package tokencontext

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/domain"
	"tokenscan/internal/probe"
	"tokenscan/internal/rpcpool"
)

// knownStablecoins are symbols whose administrative controls are expected
// by design.
var knownStablecoins = map[string]struct{}{
	"USDT": {}, "USDC": {}, "DAI": {}, "BUSD": {}, "TUSD": {},
	"USDP": {}, "FRAX": {}, "LUSD": {}, "GUSD": {},
}

// Input carries the cross-category observations the pass needs.
type Input struct {
	Name   string
	Symbol string

	HasBlacklist bool
	IsProxy      bool
	OwnerZero    bool

	LiquidityFound bool
	DepthRisk      domain.RiskLevel
	HolderRisk     domain.RiskLevel
}

// Note is one contextual observation.
type Note struct {
	Type string
	Text string
}

// Result is the outcome of the context pass.
type Result struct {
	Notes []Note

	IsLegacyToken           bool
	IsCentralizedStablecoin bool
	IsRebasingToken         bool
	IsNonStandardProxy      bool
	HasVestingPattern       bool
}

// Analyze evaluates the edge-case patterns against the token.
func Analyze(ctx context.Context, caller rpcpool.Caller, token common.Address, in Input) Result {
	var res Result

	anyExists := func(selectors []string) bool {
		for _, sel := range selectors {
			if probe.SelectorExists(ctx, caller, token, sel) {
				return true
			}
		}
		return false
	}

	if in.Name == "" && in.Symbol == "" {
		res.IsLegacyToken = true
		res.Notes = append(res.Notes, Note{
			Type: "LEGACY_TOKEN",
			Text: "Legacy or non-standard ERC20 implementation detected. Risk interpretation may differ from modern token standards.",
		})
	}

	_, stableSymbol := knownStablecoins[strings.ToUpper(in.Symbol)]
	hasMintAuthority := anyExists(probe.SelCentralized)
	if stableSymbol || (in.HasBlacklist && hasMintAuthority && in.LiquidityFound) {
		if in.DepthRisk != domain.RiskHigh || stableSymbol {
			res.IsCentralizedStablecoin = true
			res.Notes = append(res.Notes, Note{
				Type: "CENTRALIZED_STABLECOIN",
				Text: "Centralized stablecoin design detected. Administrative controls are expected by design.",
			})
		}
	}

	if anyExists(probe.SelRebasing) {
		res.IsRebasingToken = true
		res.Notes = append(res.Notes, Note{
			Type: "REBASING_TOKEN",
			Text: "Rebasing mechanics detected. Supply and holder distribution may change dynamically.",
		})
	}

	if in.IsProxy && !anyExists(probe.SelProxyPattern) {
		res.IsNonStandardProxy = true
		res.Notes = append(res.Notes, Note{
			Type: "NON_STANDARD_PROXY",
			Text: "Non-standard upgrade pattern detected. Upgradeable behavior may not be fully observable.",
		})
	}

	if (in.HolderRisk == domain.RiskHigh || in.HolderRisk == domain.RiskMedium) && anyExists(probe.SelVesting) {
		res.HasVestingPattern = true
		res.Notes = append(res.Notes, Note{
			Type: "VESTING_PATTERN",
			Text: "Vesting or treasury contract patterns detected. Holder concentration may be overstated.",
		})
	}

	if in.OwnerZero {
		res.Notes = append(res.Notes, Note{
			Type: "OWNERSHIP_RENOUNCED",
			Text: "Contract ownership has been renounced. Administrative functions are permanently disabled.",
		})
	}

	return res
}
