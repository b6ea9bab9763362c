// Package constraints detects transfer and trading restrictions baked into
// a token contract: cooldowns, blacklists, whitelists, anti-whale limits,
// taxes, and DEX router integration.
package constraints

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/domain"
	"tokenscan/internal/logic"
	"tokenscan/internal/probe"
	"tokenscan/internal/rpcpool"
)

// Result is the constraint finding for one token.
type Result struct {
	HasCooldown        bool
	HasBlacklist       bool
	HasWhitelist       bool
	HasAntiWhale       bool
	HasTax             bool
	HasDynamicTax      bool
	HasExternalCall    bool
	OwnershipRenounced bool

	Facts []string
	Risk  domain.RiskLevel
}

// Analyze probes the constraint selector groups and accumulates risk
// factors. Detection of a mechanism is one probe hit within its group;
// groups are checked lazily, first hit wins.
func Analyze(ctx context.Context, caller rpcpool.Caller, token common.Address, ownerType logic.OwnerType) Result {
	res := Result{
		OwnershipRenounced: ownerType == logic.OwnerZero,
		Risk:               domain.RiskLow,
	}

	anyExists := func(selectors []string) bool {
		for _, sel := range selectors {
			if probe.SelectorExists(ctx, caller, token, sel) {
				return true
			}
		}
		return false
	}

	if anyExists(probe.SelCooldown) {
		res.HasCooldown = true
		res.Facts = append(res.Facts, "Trading cooldown mechanism detected")
	}
	if anyExists(probe.SelBlacklistSet) {
		res.HasBlacklist = true
		res.Facts = append(res.Facts, "Blacklist capability detected - addresses can be blocked from trading")
	}
	if anyExists(probe.SelWhitelistSet) {
		res.HasWhitelist = true
		res.Facts = append(res.Facts, "Whitelist or fee exclusion mechanism detected")
	}
	if anyExists(probe.SelAntiWhale) {
		res.HasAntiWhale = true
		res.Facts = append(res.Facts, "Anti-whale limits detected: max transaction or max wallet")
	}

	// Tax reads: a decodable uint from any tax getter counts as a tax.
	taxDetails := []string{}
	for _, sel := range probe.SelTax {
		r := probe.Contract(ctx, caller, token, sel, "sel:"+token.Hex()+":"+sel)
		if !r.OK {
			continue
		}
		res.HasTax = true
		if v, ok := probe.DecodeUint256(r.Data); ok && v.IsInt64() && v.Int64() <= 100 {
			taxDetails = append(taxDetails, fmt.Sprintf("%d%%", v.Int64()))
		}
	}
	if res.HasTax {
		if len(taxDetails) > 0 {
			res.Facts = append(res.Facts, fmt.Sprintf("Trading tax detected (%v)", taxDetails))
		} else {
			res.Facts = append(res.Facts, "Trading tax mechanism detected")
		}
	}

	if anyExists(probe.SelDynamicTax) {
		res.HasDynamicTax = true
		res.Facts = append(res.Facts, "Tax rates can be modified by owner")
	}
	if anyExists(probe.SelRouterIntegration) {
		res.HasExternalCall = true
		res.Facts = append(res.Facts, "Contract integrates with DEX router for swap operations")
	}

	switch {
	case res.OwnershipRenounced:
		res.Facts = append(res.Facts, "Contract ownership has been renounced")
	case ownerType == logic.OwnerEOA:
		res.Facts = append(res.Facts, "Contract is controlled by a single wallet (EOA)")
	case ownerType == logic.OwnerContract:
		res.Facts = append(res.Facts, "Contract is controlled by another contract (possibly multisig)")
	}

	res.Risk = classify(&res, ownerType)

	if len(res.Facts) == 0 {
		res.Facts = append(res.Facts, "No significant transfer or trading constraints detected")
	}
	return res
}

// classify accumulates risk factors, discounting when control has been
// given up.
func classify(r *Result, ownerType logic.OwnerType) domain.RiskLevel {
	factors := 0

	switch {
	case r.HasBlacklist && r.HasDynamicTax && ownerType == logic.OwnerEOA:
		factors += 3
		r.Facts = append(r.Facts, "Blacklist and modifiable tax with EOA owner")
	case r.HasBlacklist && ownerType == logic.OwnerEOA:
		factors += 2
	case r.HasDynamicTax && ownerType == logic.OwnerEOA:
		factors += 2
	}

	if r.HasCooldown {
		factors++
	}
	if r.HasAntiWhale {
		factors++
	}
	if r.HasWhitelist {
		factors++
	}

	if ownerType == logic.OwnerZero {
		factors -= 3
		r.Facts = append(r.Facts, "Ownership renounced - controls are immutable")
	}
	if ownerType == logic.OwnerContract {
		factors--
	}
	if factors < 0 {
		factors = 0
	}

	switch {
	case factors >= 3:
		return domain.RiskHigh
	case factors >= 1:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
