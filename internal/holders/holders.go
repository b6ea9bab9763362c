// Package holders analyzes supply concentration: who holds how much of the
// circulating supply. The analyzer never guesses a definite risk level from
// absent data; when nothing can be resolved the result stays UNKNOWN.
package holders

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/probe"
	"tokenscan/internal/rpcpool"
)

// Result is the holder-concentration finding.
type Result struct {
	TotalSupply       *big.Int
	CirculatingSupply *big.Int
	BurnedPercent     float64

	DeployerAddress        *common.Address
	DeployerPercent        *float64
	OwnerPercent           *float64
	ContractHeldPercent    *float64
	MaxSingleHolderPercent *float64

	Facts    []string
	Evidence []string
	Risk     domain.RiskLevel
}

// Analyze resolves supply and key-holder balances. lpAddresses are venue
// contracts already discovered; their balances are reported but never count
// toward single-holder concentration.
func Analyze(ctx context.Context, caller rpcpool.Caller, token common.Address, owner *common.Address, lpAddresses []common.Address, chain *chaincfg.Chain) Result {
	res := Result{Risk: domain.RiskUnknown}
	explorer := chain.Explorer

	supply := fetchUint(ctx, caller, token, probe.CallData(probe.SelTotalSupply), "supply:"+token.Hex())
	if supply == nil || supply.Sign() == 0 {
		res.Facts = append(res.Facts, "Total supply could not be retrieved or is zero")
		res.Evidence = append(res.Evidence, "Evidence unavailable: totalSupply() call failed or returned 0")
		res.Risk = domain.RiskHigh
		return res
	}
	res.TotalSupply = supply
	res.Evidence = append(res.Evidence, fmt.Sprintf("totalSupply(): %s/address/%s#readContract", explorer, token.Hex()))

	burned := new(big.Int)
	for _, burnAddr := range chaincfg.BurnAddresses {
		if b := balanceOf(ctx, caller, token, burnAddr); b != nil {
			burned.Add(burned, b)
		}
	}
	circulating := new(big.Int).Sub(supply, burned)
	res.CirculatingSupply = circulating
	if circulating.Sign() <= 0 {
		res.Facts = append(res.Facts, "Circulating supply appears to be zero or negative")
		res.Risk = domain.RiskHigh
		return res
	}
	res.BurnedPercent = percentOf(burned, supply)

	// Deployer resolution: explicit getters first, owner-as-large-holder as
	// fallback.
	deployer := findDeployer(ctx, caller, token)
	if deployer == nil && owner != nil && !isSystemAddress(*owner) {
		if b := balanceOf(ctx, caller, token, *owner); b != nil && b.Sign() > 0 {
			if percentOf(b, circulating) > 5 {
				deployer = owner
				res.Facts = append(res.Facts, fmt.Sprintf("Likely deployer/key holder identified: %s...", owner.Hex()[:10]))
			}
		}
	}
	res.DeployerAddress = deployer

	maxPercent := 0.0

	if deployer != nil {
		p := holderPercent(ctx, caller, token, *deployer, circulating)
		res.DeployerPercent = &p
		if p > maxPercent && !isSystemAddress(*deployer) {
			maxPercent = p
		}
		if p > 0.5 {
			res.Facts = append(res.Facts, fmt.Sprintf("Deployer holds %.2f%% of circulating supply", p))
			res.Evidence = append(res.Evidence, fmt.Sprintf("Deployer balance: %s/token/%s?a=%s", explorer, token.Hex(), deployer.Hex()))
		} else {
			res.Facts = append(res.Facts, "Deployer holds <1% of circulating supply")
		}
	} else {
		res.Facts = append(res.Facts, "Deployer address could not be identified")
		res.Evidence = append(res.Evidence, "Evidence unavailable: deployer() / creator() not found")
	}

	if owner != nil && (deployer == nil || *owner != *deployer) && !isSystemAddress(*owner) {
		p := holderPercent(ctx, caller, token, *owner, circulating)
		if p > 0 {
			res.OwnerPercent = &p
			if p > maxPercent {
				maxPercent = p
			}
			if p > 0.5 {
				res.Facts = append(res.Facts, fmt.Sprintf("Contract owner holds %.2f%% of circulating supply", p))
				res.Evidence = append(res.Evidence, fmt.Sprintf("Owner balance: %s/token/%s?a=%s", explorer, token.Hex(), owner.Hex()))
			}
		}
	}

	// LP holdings are informational.
	lpTotal := new(big.Int)
	lpCount := 0
	for _, lp := range lpAddresses {
		if b := balanceOf(ctx, caller, token, lp); b != nil && b.Sign() > 0 {
			lpTotal.Add(lpTotal, b)
			lpCount++
			res.Evidence = append(res.Evidence, fmt.Sprintf("LP holdings: %s/token/%s?a=%s", explorer, token.Hex(), lp.Hex()))
		}
	}
	switch {
	case lpCount > 0:
		res.Facts = append(res.Facts, fmt.Sprintf("%.0f%% of supply is in %d liquidity pool(s)", percentOf(lpTotal, circulating), lpCount))
	case len(lpAddresses) > 0:
		res.Facts = append(res.Facts, "Liquidity pools found but appear empty")
	default:
		res.Facts = append(res.Facts, "Liquidity pools not detected (may exist but not identified)")
	}

	// Some tokens park supply in the contract itself.
	if b := balanceOf(ctx, caller, token, token); b != nil && b.Sign() > 0 {
		p := percentOf(b, circulating)
		res.ContractHeldPercent = &p
		if p > maxPercent {
			maxPercent = p
		}
		if p > 1 {
			res.Facts = append(res.Facts, fmt.Sprintf("Token contract itself holds %.2f%% of supply", p))
			res.Evidence = append(res.Evidence, fmt.Sprintf("Contract self-balance: %s/token/%s?a=%s", explorer, token.Hex(), token.Hex()))
		}
	}

	if maxPercent > 0 {
		res.MaxSingleHolderPercent = &maxPercent
		res.Facts = append(res.Facts, fmt.Sprintf("Largest identified holder: %.0f%% of supply", maxPercent))
	} else {
		res.Facts = append(res.Facts, "No significant holders identified in basic scan")
	}
	res.Evidence = append(res.Evidence, fmt.Sprintf("Token holders page: %s/token/%s#balances", explorer, token.Hex()))

	res.Risk = classify(&res, maxPercent)

	if res.BurnedPercent > 1 {
		res.Facts = append(res.Facts, fmt.Sprintf("%.0f%% of total supply has been burned", res.BurnedPercent))
	}
	return res
}

// classify maps concentration to risk. Absence of any distribution data is
// UNKNOWN, never a guessed MEDIUM.
func classify(r *Result, maxPercent float64) domain.RiskLevel {
	deployerOver := func(limit float64) bool {
		return r.DeployerPercent != nil && *r.DeployerPercent > limit
	}
	ownerOver := func(limit float64) bool {
		return r.OwnerPercent != nil && *r.OwnerPercent > limit
	}

	switch {
	case maxPercent >= 70:
		r.Facts = append(r.Facts, fmt.Sprintf("CRITICAL: Single holder controls %.0f%% of supply", maxPercent))
		return domain.RiskCritical
	case deployerOver(30) || ownerOver(30) || maxPercent > 50:
		r.Facts = append(r.Facts, "High concentration: Key addresses control significant supply")
		return domain.RiskHigh
	case deployerOver(5) || ownerOver(5) || maxPercent > 25:
		r.Facts = append(r.Facts, "Moderate concentration detected")
		return domain.RiskMedium
	case r.DeployerPercent != nil || r.OwnerPercent != nil || maxPercent > 0:
		r.Facts = append(r.Facts, "Holder distribution appears reasonable from available data")
		return domain.RiskLow
	default:
		r.Facts = append(r.Facts, "Holder concentration could not be verified")
		return domain.RiskUnknown
	}
}

func findDeployer(ctx context.Context, caller rpcpool.Caller, token common.Address) *common.Address {
	for _, sel := range []string{probe.SelDeployer, probe.SelCreator} {
		r := probe.Contract(ctx, caller, token, sel, "sel:"+token.Hex()+":"+sel)
		if !r.OK {
			continue
		}
		if addr, ok := probe.DecodeAddress(r.Data); ok && addr != (common.Address{}) {
			return &addr
		}
	}
	return nil
}

// holderPercent fetches a holder's balance and expresses it against the
// circulating supply. An unreadable balance counts as zero.
func holderPercent(ctx context.Context, caller rpcpool.Caller, token, holder common.Address, circulating *big.Int) float64 {
	b := balanceOf(ctx, caller, token, holder)
	if b == nil {
		return 0
	}
	return percentOf(b, circulating)
}

func balanceOf(ctx context.Context, caller rpcpool.Caller, token, holder common.Address) *big.Int {
	data := probe.CallData(probe.SelBalanceOf, holder)
	return fetchUint(ctx, caller, token, data, "bal:"+token.Hex()+":"+holder.Hex())
}

func fetchUint(ctx context.Context, caller rpcpool.Caller, to common.Address, data, cacheKey string) *big.Int {
	r := probe.Contract(ctx, caller, to, data, cacheKey)
	if !r.OK {
		return nil
	}
	v, ok := probe.DecodeUint256(r.Data)
	if !ok {
		return nil
	}
	return v
}

// percentOf computes part/whole as a percentage with two-decimal precision.
func percentOf(part, whole *big.Int) float64 {
	if whole.Sign() == 0 {
		return 0
	}
	scaled := new(big.Int).Mul(part, big.NewInt(10000))
	scaled.Div(scaled, whole)
	return float64(scaled.Int64()) / 100
}

func isSystemAddress(addr common.Address) bool {
	for _, burn := range chaincfg.BurnAddresses {
		if addr == burn {
			return true
		}
	}
	return false
}
