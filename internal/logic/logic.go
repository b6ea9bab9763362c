// Package logic analyzes a contract's administrative attack surface: proxy
// upgradeability, ownership, and dangerous privileged functions.
package logic

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/probe"
	"tokenscan/internal/rpcpool"
)

// OwnerType classifies what kind of account controls the contract.
type OwnerType string

const (
	OwnerEOA      OwnerType = "EOA"
	OwnerContract OwnerType = "CONTRACT"
	OwnerZero     OwnerType = "ZERO_ADDRESS"
	OwnerNotFound OwnerType = "NOT_FOUND"
)

// Result is the logic-risk finding for one contract.
type Result struct {
	IsProxy        bool
	Implementation *common.Address
	Owner          *common.Address
	OwnerType      OwnerType

	HasMint      bool
	HasPause     bool
	HasBlacklist bool
	HasSetFee    bool

	Risk       domain.RiskLevel
	Confidence domain.Confidence
	Facts      []string
	Evidence   []string
}

// Renounced reports whether ownership points at the zero address.
func (r *Result) Renounced() bool {
	return r.OwnerType == OwnerZero
}

// Analyze probes proxy state, ownership, and the dangerous selector set.
// The four selector probes run concurrently; each one is independent.
func Analyze(ctx context.Context, caller rpcpool.Caller, token common.Address, chain *chaincfg.Chain) Result {
	res := Result{OwnerType: OwnerNotFound, Risk: domain.RiskUnknown, Confidence: domain.ConfidencePartial}
	explorer := chain.Explorer

	// EIP-1967 implementation slot.
	if slot := probe.StorageAt(ctx, caller, token, probe.EIP1967ImplementationSlot); slot.OK && !slot.Empty() {
		if impl, ok := probe.DecodeAddress(slot.Data); ok && impl != (common.Address{}) {
			res.IsProxy = true
			res.Implementation = &impl
			res.Facts = append(res.Facts, fmt.Sprintf("Proxy contract (implementation: %s...)", impl.Hex()[:10]))
			res.Evidence = append(res.Evidence, fmt.Sprintf("EIP-1967 slot: %s/address/%s#readProxyContract", explorer, token.Hex()))
		}
	}

	// owner(), then the BEP-20 getOwner() as a fallback.
	if owner, ok := fetchOwner(ctx, caller, token); ok {
		res.Owner = &owner
		if owner == (common.Address{}) {
			res.OwnerType = OwnerZero
			res.Facts = append(res.Facts, "Ownership renounced (owner = 0x0)")
			res.Evidence = append(res.Evidence, fmt.Sprintf("owner(): %s/address/%s#readContract", explorer, token.Hex()))
		} else {
			if probe.HasCode(ctx, caller, owner) {
				res.OwnerType = OwnerContract
			} else {
				res.OwnerType = OwnerEOA
			}
			res.Facts = append(res.Facts, fmt.Sprintf("Owner: %s... (%s)", owner.Hex()[:10], res.OwnerType))
			res.Evidence = append(res.Evidence, fmt.Sprintf("owner(): %s/address/%s#readContract", explorer, token.Hex()))
			res.Evidence = append(res.Evidence, fmt.Sprintf("Owner address: %s/address/%s", explorer, owner.Hex()))
		}
	}

	// Dangerous function probes, fanned out.
	probes := []struct {
		selector string
		flag     *bool
		fact     string
	}{
		{probe.SelMint, &res.HasMint, "Mint function detected - supply can be inflated"},
		{probe.SelPause, &res.HasPause, "Pause function detected - trading can be halted"},
		{probe.SelBlacklist, &res.HasBlacklist, "Blacklist function detected"},
		{probe.SelSetFee, &res.HasSetFee, "Fee modification detected"},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := range probes {
		p := probes[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if probe.SelectorExists(ctx, caller, token, p.selector) {
				mu.Lock()
				*p.flag = true
				res.Facts = append(res.Facts, p.fact)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	res.Risk = classify(&res)
	if res.OwnerType != OwnerNotFound {
		res.Confidence = domain.ConfidenceVerified
	}
	return res
}

// fetchOwner resolves the controlling account. Ownable contracts expose
// owner(); BEP-20 tokens often expose getOwner() instead.
func fetchOwner(ctx context.Context, caller rpcpool.Caller, token common.Address) (common.Address, bool) {
	for _, sel := range []string{probe.SelOwner, probe.SelGetOwner} {
		r := probe.Contract(ctx, caller, token, sel, "owner:"+sel+":"+token.Hex())
		if !r.OK {
			continue
		}
		if owner, ok := probe.DecodeAddress(r.Data); ok {
			return owner, true
		}
	}
	return common.Address{}, false
}

// classify applies the strict risk rules in order of severity.
func classify(r *Result) domain.RiskLevel {
	switch {
	case r.HasMint && r.HasSetFee && r.OwnerType == OwnerEOA:
		return domain.RiskCritical
	case (r.HasMint || r.HasBlacklist) && r.OwnerType == OwnerEOA:
		return domain.RiskHigh
	case r.IsProxy && r.OwnerType == OwnerEOA:
		return domain.RiskHigh
	case r.HasMint || r.HasBlacklist || r.HasSetFee:
		return domain.RiskMedium
	case r.OwnerType == OwnerZero:
		return domain.RiskLow
	case r.OwnerType == OwnerNotFound:
		// Cannot verify ownership at all.
		return domain.RiskUnknown
	default:
		return domain.RiskLow
	}
}
