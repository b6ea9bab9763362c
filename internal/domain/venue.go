package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ProtocolFamily tags the architecture of a liquidity venue. The three
// families differ in how much of their state is observable on-chain.
type ProtocolFamily string

const (
	// FamilyConstantProduct is the V2-style x*y=k pair with ERC20 LP shares.
	FamilyConstantProduct ProtocolFamily = "v2"
	// FamilyConcentrated is the V3-style pool with NFT positions; position
	// ownership is not verifiable without an indexer.
	FamilyConcentrated ProtocolFamily = "v3"
	// FamilySingleton is the V4-style shared pool manager; depth is not
	// verifiable on-chain at all.
	FamilySingleton ProtocolFamily = "v4"
	FamilyUnknown   ProtocolFamily = "unknown"
)

// Venue is one discovered trading pool pairing the scanned token with a
// quote asset. Venues are immutable after creation except for evidence
// concatenation during deduplication.
type Venue struct {
	Dex     string
	Family  ProtocolFamily
	Address common.Address

	Token      common.Address
	QuoteToken common.Address
	QuoteSym   string

	// Constant-product reserves, token side and quote side. Nil for other
	// families.
	TokenReserve *VenueAmount
	QuoteReserve *VenueAmount

	// Concentrated-liquidity snapshot. Zero for other families.
	Liquidity string

	// EstimatedDepthUsd is non-nil only when the quote side is a known
	// stablecoin; the engine never prices a non-stable quote.
	EstimatedDepthUsd *int64
	DepthVerifiable   bool

	Evidence []string
}

// VenueAmount is a raw reserve value as returned by the chain.
type VenueAmount struct {
	Raw string // decimal string of the uint112/uint256 reserve
}

// Key returns the deduplication identity of the venue: its lower-cased
// address.
func (v *Venue) Key() string {
	return strings.ToLower(v.Address.Hex())
}

// RiskBreakdown is the three liquidity sub-risks fed to scoring.
type RiskBreakdown struct {
	ControlRisk       RiskLevel
	DepthRisk         RiskLevel
	VerifiabilityRisk RiskLevel
}

// LiquidityResult is the outcome of liquidity discovery for one token.
type LiquidityResult struct {
	Found        bool
	Venues       []*Venue
	PrimaryVenue *Venue
	TotalChecked int

	IsBurned    bool
	IsLocked    bool
	BurnPercent int
	LockPercent int

	// TotalDepthUsd sums verifiable venue depths; nil when no venue has a
	// computable depth.
	TotalDepthUsd   *int64
	DepthVerifiable bool

	DominantFamily ProtocolFamily

	Facts    []string
	Evidence []string

	RiskBreakdown RiskBreakdown
}
