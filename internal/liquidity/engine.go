// Package liquidity implements multi-strategy discovery of a token's
// trading venues. Strategies run concurrently and their unions are deduped
// by venue address; a strategy that fails or panics contributes nothing
// rather than failing the scan. The engine reports honestly: depth is only
// stated in USD when the quote side is a known stablecoin, and everything
// else is flagged unverifiable.
package liquidity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/observability"
	"tokenscan/internal/rpcpool"
)

// Strategy is one way of locating venues. Discover returns the venues it
// found and how many candidate probes it attempted.
type Strategy interface {
	Name() string
	Discover(ctx context.Context, token common.Address) ([]*domain.Venue, int)
}

// Engine coordinates the discovery strategies for one chain.
type Engine struct {
	chain      *chaincfg.Chain
	caller     rpcpool.Caller
	log        logrus.FieldLogger
	strategies []Strategy
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithStrategies replaces the default strategy set.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Engine) { e.strategies = strategies }
}

// NewEngine builds an engine with the default strategies: direct factory
// lookup, event-log scan, and the curated known-pair fallback.
func NewEngine(chain *chaincfg.Chain, caller rpcpool.Caller, opts ...Option) *Engine {
	e := &Engine{
		chain:  chain,
		caller: caller,
		log:    logrus.StandardLogger(),
	}
	e.strategies = []Strategy{
		&factoryStrategy{chain: chain, caller: caller},
		&eventStrategy{chain: chain, caller: caller},
		&knownPairStrategy{chain: chain, caller: caller},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Discover runs every strategy, merges the findings, and derives the
// liquidity risk breakdown.
func (e *Engine) Discover(ctx context.Context, token common.Address) domain.LiquidityResult {
	res := domain.LiquidityResult{
		DominantFamily: domain.FamilyUnknown,
		RiskBreakdown: domain.RiskBreakdown{
			ControlRisk:       domain.RiskUnknown,
			DepthRisk:         domain.RiskUnknown,
			VerifiabilityRisk: domain.RiskUnknown,
		},
	}

	type outcome struct {
		venues  []*domain.Venue
		checked int
	}
	outcomes := make([]outcome, len(e.strategies))

	done := make(chan int, len(e.strategies))
	for i, s := range e.strategies {
		go func(i int, s Strategy) {
			defer func() {
				if r := recover(); r != nil {
					e.log.WithField("strategy", s.Name()).Warnf("discovery strategy panicked: %v", r)
					outcomes[i] = outcome{}
				}
				done <- i
			}()
			start := time.Now()
			venues, checked := s.Discover(ctx, token)
			observability.RecordStrategyDuration(s.Name(), time.Since(start).Seconds())
			for range venues {
				observability.RecordVenueDiscovered(s.Name())
			}
			e.log.WithFields(logrus.Fields{
				"strategy": s.Name(),
				"venues":   len(venues),
				"checked":  checked,
			}).Debug("discovery strategy finished")
			outcomes[i] = outcome{venues: venues, checked: checked}
		}(i, s)
	}
	for range e.strategies {
		<-done
	}

	// Merge in declared strategy order so deduplication is deterministic:
	// the first strategy to report an address owns the venue, later
	// duplicates only contribute evidence.
	seen := make(map[string]*domain.Venue)
	for _, out := range outcomes {
		res.TotalChecked += out.checked
		for _, v := range out.venues {
			if existing, ok := seen[v.Key()]; ok {
				existing.Evidence = append(existing.Evidence, v.Evidence...)
				continue
			}
			seen[v.Key()] = v
			res.Venues = append(res.Venues, v)
		}
	}
	res.Found = len(res.Venues) > 0

	if res.Found {
		sorted := make([]*domain.Venue, len(res.Venues))
		copy(sorted, res.Venues)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].DepthVerifiable != sorted[j].DepthVerifiable {
				return sorted[i].DepthVerifiable
			}
			return depthOrZero(sorted[i]) > depthOrZero(sorted[j])
		})
		res.PrimaryVenue = sorted[0]
		res.DominantFamily = res.PrimaryVenue.Family

		var total int64
		hasVerifiable := false
		for _, v := range res.Venues {
			if v.DepthVerifiable && v.EstimatedDepthUsd != nil {
				total += *v.EstimatedDepthUsd
				hasVerifiable = true
			}
		}
		if hasVerifiable {
			res.TotalDepthUsd = &total
			res.DepthVerifiable = true
		}

		dexes := map[string]struct{}{}
		names := []string{}
		for _, v := range res.Venues {
			if _, ok := dexes[v.Dex]; !ok {
				dexes[v.Dex] = struct{}{}
				names = append(names, v.Dex)
			}
			res.Evidence = append(res.Evidence, v.Evidence...)
		}
		res.Facts = append(res.Facts, fmt.Sprintf("Liquidity found on %d pool(s): %s", len(res.Venues), joinNames(names)))
	}

	e.checkProtection(ctx, &res)

	if res.DepthVerifiable && res.TotalDepthUsd != nil {
		res.Facts = append(res.Facts, fmt.Sprintf("Estimated total liquidity depth: $%d", *res.TotalDepthUsd))
	} else if res.Found {
		res.Facts = append(res.Facts, "Liquidity depth: UNVERIFIABLE (V3/V4 or no stablecoin pair)")
	}

	res.RiskBreakdown = deriveRisks(&res)

	if !res.Found {
		res.Facts = append(res.Facts, fmt.Sprintf("No liquidity detected (%d pairs checked)", res.TotalChecked))
		res.Evidence = append(res.Evidence, "Evidence unavailable: No DEX pairs found")
	}
	return res
}

// checkProtection inspects LP token custody on the primary constant-product
// venue. Other families have no on-chain LP token to inspect.
func (e *Engine) checkProtection(ctx context.Context, res *domain.LiquidityResult) {
	p := res.PrimaryVenue
	if p == nil {
		return
	}
	explorer := e.chain.Explorer
	switch p.Family {
	case domain.FamilyConstantProduct:
		prot := checkLPProtection(ctx, e.caller, p.Address, e.chain)
		res.IsBurned = prot.isBurned
		res.IsLocked = prot.isLocked
		res.BurnPercent = prot.burnPercent
		res.LockPercent = prot.lockPercent
		switch {
		case prot.isBurned && prot.burnPercent > 90:
			res.Facts = append(res.Facts, fmt.Sprintf("LP tokens %d%% burned", prot.burnPercent))
			res.Evidence = append(res.Evidence, fmt.Sprintf("LP burn check: %s/token/%s?a=%s", explorer, p.Address.Hex(), chaincfg.BurnAddresses[0].Hex()))
		case prot.isLocked && prot.lockPercent > 50:
			res.Facts = append(res.Facts, fmt.Sprintf("LP tokens %d%% locked", prot.lockPercent))
			res.Evidence = append(res.Evidence, fmt.Sprintf("LP lock: Check locker contract on %s", explorer))
		default:
			res.Facts = append(res.Facts, "LP tokens NOT burned/locked or protection <50%")
		}
	case domain.FamilyConcentrated:
		res.Facts = append(res.Facts, "V3 liquidity: NFT position ownership NOT verifiable on-chain")
		res.Evidence = append(res.Evidence, "V3 LP positions are NFTs - individual position ownership requires indexer")
	case domain.FamilySingleton:
		res.Facts = append(res.Facts, "V4 liquidity: Amount is NOT VERIFIABLE")
		res.Evidence = append(res.Evidence, "V4 uses singleton PoolManager - liquidity depth cannot be reliably determined")
	}
}

func depthOrZero(v *domain.Venue) int64 {
	if v.EstimatedDepthUsd == nil {
		return 0
	}
	return *v.EstimatedDepthUsd
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
