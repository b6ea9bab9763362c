// Package scanner orchestrates a full token risk scan: connectivity check,
// identity, logic risk, liquidity discovery, constraints, holders, the
// context pass and finally scoring. Scans abort early when there is nothing
// left worth probing.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/constraints"
	"tokenscan/internal/domain"
	"tokenscan/internal/holders"
	"tokenscan/internal/identity"
	"tokenscan/internal/liquidity"
	"tokenscan/internal/logic"
	"tokenscan/internal/observability"
	"tokenscan/internal/rpcpool"
	"tokenscan/internal/scoring"
	"tokenscan/internal/tokencontext"
)

// statsProvider is implemented by callers that can report endpoint health.
// The production pool does; test stubs usually do not.
type statsProvider interface {
	DetailedStats() rpcpool.DetailedStats
}

// Result is the complete output of one scan.
type Result struct {
	Token common.Address
	Chain string

	Identity    identity.Result
	Logic       logic.Result
	Liquidity   domain.LiquidityResult
	Constraints constraints.Result
	Holders     holders.Result
	Context     tokencontext.Result
	Score       scoring.Result

	Aborted  *domain.Aborted
	RPCStats rpcpool.DetailedStats
	Duration time.Duration
}

// Scanner runs scans against one chain.
type Scanner struct {
	chain  *chaincfg.Chain
	caller rpcpool.Caller
	engine *liquidity.Engine
	log    logrus.FieldLogger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the structured logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Scanner) { s.log = log }
}

// WithEngine replaces the liquidity engine.
func WithEngine(engine *liquidity.Engine) Option {
	return func(s *Scanner) { s.engine = engine }
}

// New builds a scanner for the chain.
func New(chain *chaincfg.Chain, caller rpcpool.Caller, opts ...Option) *Scanner {
	s := &Scanner{
		chain:  chain,
		caller: caller,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = liquidity.NewEngine(chain, caller, liquidity.WithLogger(s.log))
	}
	return s
}

// Scan runs the full pipeline for one token.
func (s *Scanner) Scan(ctx context.Context, token common.Address) (res Result) {
	start := time.Now()
	log := s.log.WithFields(logrus.Fields{"token": token.Hex(), "chain": s.chain.Key})

	res = Result{Token: token, Chain: s.chain.Key}
	defer func() {
		res.Duration = time.Since(start)
		if sp, ok := s.caller.(statsProvider); ok {
			res.RPCStats = sp.DetailedStats()
		}
	}()

	// Connectivity: one cheap call proves the chain is reachable before any
	// verdict is attempted. A dead chain must never read as token risk.
	if r, err := s.caller.Call(ctx, "eth_blockNumber", []interface{}{}, ""); err != nil || !r.Success {
		msg := "all RPC endpoints failed"
		if err != nil {
			msg = err.Error()
		} else if r.Err != "" {
			msg = r.Err
		}
		return s.abort(res, domain.AbortRPCFailure, "connectivity", msg, log)
	}

	log.Info("scan started")

	res.Identity = identity.Analyze(ctx, s.caller, token)
	if !res.Identity.HasCode {
		return s.abort(res, domain.AbortNoCode, "identity",
			fmt.Sprintf("no contract code at %s", token.Hex()), log)
	}
	log.WithFields(logrus.Fields{"name": res.Identity.Name, "symbol": res.Identity.Symbol}).Debug("identity resolved")

	res.Logic = logic.Analyze(ctx, s.caller, token, s.chain)
	log.WithField("risk", res.Logic.Risk).Debug("logic analyzed")
	switch {
	case res.Logic.Risk == domain.RiskCritical:
		return s.abort(res, domain.AbortCriticalRisk, "logic",
			"critical logic risk: supply inflation with fee control under a single wallet", log)
	case res.Logic.Risk == domain.RiskHigh && res.Logic.Confidence == domain.ConfidenceVerified:
		return s.abort(res, domain.AbortHighRisk, "logic",
			"verified high logic risk, skipping remaining analysis", log)
	}

	res.Liquidity = s.engine.Discover(ctx, token)
	log.WithFields(logrus.Fields{
		"venues":  len(res.Liquidity.Venues),
		"checked": res.Liquidity.TotalChecked,
	}).Debug("liquidity discovered")

	// Constraints and holders are independent of each other.
	done := make(chan struct{}, 2)
	go func() {
		defer func() { done <- struct{}{} }()
		res.Constraints = constraints.Analyze(ctx, s.caller, token, res.Logic.OwnerType)
	}()
	go func() {
		defer func() { done <- struct{}{} }()
		res.Holders = holders.Analyze(ctx, s.caller, token, res.Logic.Owner, venueAddresses(res.Liquidity.Venues), s.chain)
	}()
	<-done
	<-done

	res.Context = tokencontext.Analyze(ctx, s.caller, token, tokencontext.Input{
		Name:           res.Identity.Name,
		Symbol:         res.Identity.Symbol,
		HasBlacklist:   res.Logic.HasBlacklist || res.Constraints.HasBlacklist,
		IsProxy:        res.Logic.IsProxy,
		OwnerZero:      res.Logic.Renounced(),
		LiquidityFound: res.Liquidity.Found,
		DepthRisk:      res.Liquidity.RiskBreakdown.DepthRisk,
		HolderRisk:     res.Holders.Risk,
	})

	res.Score = scoring.Score(s.scoringInput(&res))
	observability.RecordScan(res.Score.Band, time.Since(start).Seconds())
	log.WithFields(logrus.Fields{
		"score": res.Score.FinalScore,
		"band":  res.Score.Band,
	}).Info("scan complete")
	return res
}

func (s *Scanner) abort(res Result, reason domain.AbortReason, stage, msg string, log logrus.FieldLogger) Result {
	res.Aborted = &domain.Aborted{Reason: reason, Stage: stage, Message: msg}
	fillUnresolved(&res)
	observability.RecordScanAborted(string(reason))
	log.WithFields(logrus.Fields{"reason": reason, "stage": stage}).Warn("scan aborted")
	return res
}

// fillUnresolved marks every category an aborted scan never reached as
// UNVERIFIABLE so downstream consumers see explicit non-answers.
func fillUnresolved(res *Result) {
	rb := &res.Liquidity.RiskBreakdown
	for _, r := range []*domain.RiskLevel{
		&res.Constraints.Risk, &res.Holders.Risk,
		&rb.ControlRisk, &rb.DepthRisk, &rb.VerifiabilityRisk,
	} {
		if *r == "" {
			*r = domain.RiskUnverifiable
		}
	}
	if res.Logic.Risk == "" {
		res.Logic.Risk = domain.RiskUnverifiable
	}
}

// scoringInput flattens the category results into the scoring engine's
// argument set.
func (s *Scanner) scoringInput(res *Result) scoring.Input {
	var holderPct *int
	if res.Holders.MaxSingleHolderPercent != nil {
		v := int(*res.Holders.MaxSingleHolderPercent + 0.5)
		holderPct = &v
	}
	return scoring.Input{
		LogicRisk:      res.Logic.Risk,
		ConstraintRisk: res.Constraints.Risk,
		HolderRisk:     res.Holders.Risk,
		Liquidity:      res.Liquidity.RiskBreakdown,
		Flags: scoring.ContextFlags{
			OwnershipRenounced:         res.Logic.Renounced(),
			IsProxy:                    res.Logic.IsProxy,
			HasMint:                    res.Logic.HasMint,
			HasPause:                   res.Logic.HasPause,
			IsCentralizedStablecoin:    res.Context.IsCentralizedStablecoin,
			IsRebasingToken:            res.Context.IsRebasingToken,
			IsLegacyToken:              res.Context.IsLegacyToken,
			HasVestingPattern:          res.Context.HasVestingPattern,
			HasLiquidity:               res.Liquidity.Found,
			LPProtected:                res.Liquidity.IsBurned || res.Liquidity.IsLocked,
			LiquidityDepthUsd:          res.Liquidity.TotalDepthUsd,
			DexVersion:                 res.Liquidity.DominantFamily,
			HolderConcentrationPercent: holderPct,
		},
	}
}

func venueAddresses(venues []*domain.Venue) []common.Address {
	out := make([]common.Address, 0, len(venues))
	for _, v := range venues {
		out = append(out, v.Address)
	}
	return out
}
