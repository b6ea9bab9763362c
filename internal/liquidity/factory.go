package liquidity

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/probe"
	"tokenscan/internal/rpcpool"
)

// factoryStrategy asks every configured DEX factory directly for pairs and
// pools against each quote asset. This is the authoritative strategy: a
// factory either has the pair or it does not.
type factoryStrategy struct {
	chain  *chaincfg.Chain
	caller rpcpool.Caller
}

func (s *factoryStrategy) Name() string { return "factory" }

func (s *factoryStrategy) Discover(ctx context.Context, token common.Address) ([]*domain.Venue, int) {
	var venues []*domain.Venue
	checked := 0

	for _, factory := range s.chain.Factories {
		for _, quote := range s.chain.QuoteTokens() {
			if quote == token {
				continue
			}
			if factory.V2 != (common.Address{}) {
				checked++
				if v := s.probeV2(ctx, factory, token, quote); v != nil {
					venues = append(venues, v)
				}
			}
			if factory.V3 != (common.Address{}) {
				for _, fee := range chaincfg.V3FeeTiers {
					checked++
					if v := s.probeV3(ctx, factory, token, quote, fee); v != nil {
						venues = append(venues, v)
					}
				}
			}
		}
	}

	if s.chain.V4PoolManager != (common.Address{}) {
		checked++
		if v := s.probeV4(ctx, token); v != nil {
			venues = append(venues, v)
		}
	}
	return venues, checked
}

func (s *factoryStrategy) probeV2(ctx context.Context, factory chaincfg.Factory, token, quote common.Address) *domain.Venue {
	data := probe.CallData(probe.SelGetPair, token, quote)
	res := probe.Contract(ctx, s.caller, factory.V2, data, "getpair:"+factory.V2.Hex()+":"+token.Hex()+":"+quote.Hex())
	if !res.OK {
		return nil
	}
	pair, ok := probe.DecodeAddress(res.Data)
	if !ok || pair == (common.Address{}) {
		return nil
	}
	return buildV2Venue(ctx, s.caller, s.chain, factory.Name, pair, token, quote)
}

func (s *factoryStrategy) probeV3(ctx context.Context, factory chaincfg.Factory, token, quote common.Address, fee int64) *domain.Venue {
	data := probe.CallData(probe.SelGetPool, token, quote, fee)
	cacheKey := fmt.Sprintf("getpool:%s:%s:%s:%d", factory.V3.Hex(), token.Hex(), quote.Hex(), fee)
	res := probe.Contract(ctx, s.caller, factory.V3, data, cacheKey)
	if !res.OK {
		return nil
	}
	pool, ok := probe.DecodeAddress(res.Data)
	if !ok || pool == (common.Address{}) {
		return nil
	}
	return buildV3Venue(ctx, s.caller, s.chain, factory.Name, pool, token, quote, fee)
}

// probeV4 only confirms the singleton PoolManager is deployed. Individual
// pools inside it are not enumerable via eth_call, so the venue reports
// presence without any depth.
func (s *factoryStrategy) probeV4(ctx context.Context, token common.Address) *domain.Venue {
	if !probe.HasCode(ctx, s.caller, s.chain.V4PoolManager) {
		return nil
	}
	return &domain.Venue{
		Dex:        "Uniswap V4",
		Family:     domain.FamilySingleton,
		Address:    s.chain.V4PoolManager,
		Token:      token,
		QuoteToken: s.chain.WrappedNative,
		QuoteSym:   "NATIVE",
		Evidence: []string{
			"V4 PoolManager deployed - token may have V4 liquidity (NOT VERIFIABLE)",
		},
	}
}
