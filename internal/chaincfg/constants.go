package chaincfg

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// BurnAddresses are the sinks tokens are irrecoverably sent to. Balances at
// these addresses count as burned on every chain.
var BurnAddresses = []common.Address{
	common.HexToAddress("0x0000000000000000000000000000000000000000"),
	common.HexToAddress("0x000000000000000000000000000000000000dEaD"),
	common.HexToAddress("0xdead000000000000000000000000000000000000"),
}

// V3FeeTiers are the fee levels (hundredths of a bip) a concentrated pool can
// be deployed at. Direct lookup probes all of them.
var V3FeeTiers = []int64{100, 500, 3000, 10000}

// KnownPair is a curated fallback venue used when on-chain discovery finds
// nothing for a widely traded token.
type KnownPair struct {
	Dex     string
	Venue   common.Address
	Quote   common.Address
	Version string // "v2" or "v3"
}

// knownPairs maps chain key -> lower-cased token address -> curated venues.
var knownPairs = map[string]map[string][]KnownPair{
	"ethereum": {
		// SHIB
		"0x95ad61b0a150d79219dcf64e1e6cc01f0b64c4ce": {
			{Dex: "ShibaSwap", Venue: common.HexToAddress("0x811beEd0119b4AfCE20D2583EB608C6F7AF1954f"), Quote: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), Version: "v2"},
		},
		// PEPE
		"0x6982508145454ce325ddbe47a25d4ec3d2311933": {
			{Dex: "Uniswap", Venue: common.HexToAddress("0xA43fe16908251ee70EF74718545e4FE6C5cCEc9f"), Quote: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), Version: "v2"},
		},
	},
	"base": {
		// BRETT
		"0x532f27101965dd16442e59d40670faf5ebb142e4": {
			{Dex: "Uniswap", Venue: common.HexToAddress("0x36A46dff597c5A444BBc521d26787f57867d2214"), Quote: common.HexToAddress("0x4200000000000000000000000000000000000006"), Version: "v3"},
		},
	},
}

// KnownPairsFor returns the curated fallback venues for a token, or nil.
func KnownPairsFor(chainKey string, token common.Address) []KnownPair {
	byToken, ok := knownPairs[chainKey]
	if !ok {
		return nil
	}
	return byToken[strings.ToLower(token.Hex())]
}
