package liquidity

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/rpcpool"
)

// knownPairStrategy falls back to the curated venue table for widely traded
// tokens. Every entry is still verified on-chain before it is reported; a
// stale table entry with drained reserves yields nothing.
type knownPairStrategy struct {
	chain  *chaincfg.Chain
	caller rpcpool.Caller
}

func (s *knownPairStrategy) Name() string { return "known-pairs" }

func (s *knownPairStrategy) Discover(ctx context.Context, token common.Address) ([]*domain.Venue, int) {
	pairs := chaincfg.KnownPairsFor(s.chain.Key, token)
	var venues []*domain.Venue
	for _, kp := range pairs {
		var v *domain.Venue
		switch kp.Version {
		case "v2":
			v = buildV2Venue(ctx, s.caller, s.chain, kp.Dex, kp.Venue, token, kp.Quote)
		case "v3":
			// Curated entries do not record the fee tier; the pool does.
			v = buildV3Venue(ctx, s.caller, s.chain, kp.Dex, kp.Venue, token, kp.Quote, poolFee(ctx, s.caller, kp.Venue))
		}
		if v != nil {
			v.Evidence = append(v.Evidence, fmt.Sprintf("Curated venue entry for %s on %s", kp.Dex, s.chain.Name))
			venues = append(venues, v)
		}
	}
	return venues, len(pairs)
}
