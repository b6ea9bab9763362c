package liquidity

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/probe"
	"tokenscan/internal/rpcpool"
)

// buildV2Venue reads a constant-product pair and orients its reserves. It
// returns nil when the pair has no reserves at all or cannot be read.
func buildV2Venue(ctx context.Context, caller rpcpool.Caller, chain *chaincfg.Chain, dex string, pair, token, quote common.Address) *domain.Venue {
	reservesRes := probe.Contract(ctx, caller, pair, probe.CallData(probe.SelGetReserves), "reserves:"+pair.Hex())
	if !reservesRes.OK {
		return nil
	}
	reserve0, reserve1, ok := probe.DecodeReserves(reservesRes.Data)
	if !ok {
		return nil
	}
	if reserve0.Sign() == 0 && reserve1.Sign() == 0 {
		return nil
	}

	token0Res := probe.Contract(ctx, caller, pair, probe.CallData(probe.SelToken0), "token0:"+pair.Hex())
	if !token0Res.OK {
		return nil
	}
	token0, ok := probe.DecodeAddress(token0Res.Data)
	if !ok {
		return nil
	}

	tokenReserve, quoteReserve := reserve0, reserve1
	if token0 != token {
		// The token must then be token1, or this pair belongs to some other
		// asset entirely (stale curated entries, forged PairCreated logs).
		token1Res := probe.Contract(ctx, caller, pair, probe.CallData(probe.SelToken1), "token1:"+pair.Hex())
		if !token1Res.OK {
			return nil
		}
		if token1, ok := probe.DecodeAddress(token1Res.Data); !ok || token1 != token {
			return nil
		}
		tokenReserve, quoteReserve = reserve1, reserve0
	}

	v := &domain.Venue{
		Dex:          dex,
		Family:       domain.FamilyConstantProduct,
		Address:      pair,
		Token:        token,
		QuoteToken:   quote,
		QuoteSym:     "NATIVE",
		TokenReserve: &domain.VenueAmount{Raw: tokenReserve.String()},
		QuoteReserve: &domain.VenueAmount{Raw: quoteReserve.String()},
		Evidence: []string{
			fmt.Sprintf("%s V2 pair: %s/address/%s", dex, chain.Explorer, pair.Hex()),
		},
	}

	if stable, isStable := chain.StablecoinAt(quote); isStable {
		v.QuoteSym = stable.Symbol
		depth := estimateDepth(quoteReserve, stable.Decimals)
		v.EstimatedDepthUsd = &depth
		v.DepthVerifiable = true
	}
	return v
}

// buildV3Venue reads a concentrated pool. Depth is never priced: reserves in
// a concentrated pool do not translate to tradeable depth without tick data.
func buildV3Venue(ctx context.Context, caller rpcpool.Caller, chain *chaincfg.Chain, dex string, pool, token, quote common.Address, feeTier int64) *domain.Venue {
	liqRes := probe.Contract(ctx, caller, pool, probe.CallData(probe.SelLiquidity), "liq:"+pool.Hex())
	if !liqRes.OK {
		return nil
	}
	liquidity, ok := probe.DecodeUint256(liqRes.Data)
	if !ok || liquidity.Sign() == 0 {
		return nil
	}

	slot0Res := probe.Contract(ctx, caller, pool, probe.CallData(probe.SelSlot0), "slot0:"+pool.Hex())
	if !slot0Res.OK {
		return nil
	}
	sqrtPrice, ok := probe.DecodeUint256(slot0Res.Data)
	if !ok || sqrtPrice.Sign() == 0 {
		return nil
	}

	v := &domain.Venue{
		Dex:        dex,
		Family:     domain.FamilyConcentrated,
		Address:    pool,
		Token:      token,
		QuoteToken: quote,
		QuoteSym:   "NATIVE",
		Liquidity:  liquidity.String(),
		Evidence: []string{
			fmt.Sprintf("%s V3 pool (fee %d): %s/address/%s", dex, feeTier, chain.Explorer, pool.Hex()),
			"V3 liquidity value cannot be converted to USD depth without tick-range data",
		},
	}
	if stable, isStable := chain.StablecoinAt(quote); isStable {
		v.QuoteSym = stable.Symbol
	}
	return v
}

// poolFee reads a concentrated pool's fee tier. Zero means unreadable.
func poolFee(ctx context.Context, caller rpcpool.Caller, pool common.Address) int64 {
	res := probe.Contract(ctx, caller, pool, probe.CallData(probe.SelFee), "fee:"+pool.Hex())
	if !res.OK {
		return 0
	}
	if fee, ok := probe.DecodeUint256(res.Data); ok {
		return fee.Int64()
	}
	return 0
}

// estimateDepth approximates total pool depth in USD as twice the stablecoin
// side of the pair, scaled down by the stablecoin's decimals.
func estimateDepth(quoteReserve *big.Int, decimals int32) int64 {
	return decimal.NewFromBigInt(quoteReserve, -decimals).
		Mul(decimal.NewFromInt(2)).
		Round(0).
		IntPart()
}

type lpProtection struct {
	found       bool
	isBurned    bool
	isLocked    bool
	burnPercent int
	lockPercent int
}

// checkLPProtection measures how much of a pair's LP token supply sits in
// burn addresses or known locker contracts.
func checkLPProtection(ctx context.Context, caller rpcpool.Caller, pair common.Address, chain *chaincfg.Chain) lpProtection {
	supplyRes := probe.Contract(ctx, caller, pair, probe.CallData(probe.SelTotalSupply), "lpsupply:"+pair.Hex())
	if !supplyRes.OK {
		return lpProtection{}
	}
	supply, ok := probe.DecodeUint256(supplyRes.Data)
	if !ok || supply.Sign() == 0 {
		return lpProtection{}
	}

	sumBalances := func(holders []common.Address) *big.Int {
		total := new(big.Int)
		for _, h := range holders {
			res := probe.Contract(ctx, caller, pair, probe.CallData(probe.SelBalanceOf, h), "lpbal:"+pair.Hex()+":"+h.Hex())
			if !res.OK {
				continue
			}
			if b, ok := probe.DecodeUint256(res.Data); ok {
				total.Add(total, b)
			}
		}
		return total
	}

	burned := sumBalances(chaincfg.BurnAddresses)
	locked := sumBalances(chain.Lockers)

	prot := lpProtection{
		found:       true,
		burnPercent: intPercent(burned, supply),
		lockPercent: intPercent(locked, supply),
	}
	prot.isBurned = prot.burnPercent > 50
	prot.isLocked = prot.lockPercent > 50
	return prot
}

func intPercent(part, whole *big.Int) int {
	if whole.Sign() == 0 {
		return 0
	}
	scaled := new(big.Int).Mul(part, big.NewInt(100))
	scaled.Div(scaled, whole)
	return int(scaled.Int64())
}
