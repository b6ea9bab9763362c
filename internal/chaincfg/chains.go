// Package chaincfg holds the immutable per-chain configuration tables:
// RPC endpoints, quote assets, DEX factories, burn and locker addresses.
// Tables are compiled in, loaded once, and passed by reference; nothing in
// this package is mutated after init.
package chaincfg

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Endpoint is one remote node. Tier 1 is tried first; the pool falls back
// through tiers on failure.
type Endpoint struct {
	URL     string
	Tier    int // 1=best .. 3=worst
	Timeout time.Duration
	Label   string
}

// Stablecoin is a quote asset with a known USD peg and decimal precision.
type Stablecoin struct {
	Address  common.Address
	Symbol   string
	Decimals int32
}

// Factory is one DEX deployment on a chain. A zero address means the
// protocol generation is not deployed there.
type Factory struct {
	Name string
	V2   common.Address
	V3   common.Address
}

// Chain is the full configuration for one supported network.
type Chain struct {
	Key           string
	Name          string
	ChainID       int64
	Endpoints     []Endpoint
	WrappedNative common.Address
	Stablecoins   []Stablecoin
	Factories     []Factory
	V4PoolManager common.Address // zero when V4 is not deployed
	Lockers       []common.Address
	Explorer      string
}

// QuoteTokens returns the wrapped native asset followed by the chain's
// stablecoins, in the order factory lookups should try them.
func (c *Chain) QuoteTokens() []common.Address {
	out := make([]common.Address, 0, 1+len(c.Stablecoins))
	out = append(out, c.WrappedNative)
	for _, s := range c.Stablecoins {
		out = append(out, s.Address)
	}
	return out
}

// StablecoinAt returns the stablecoin entry for addr, if addr is one of the
// chain's configured stablecoins.
func (c *Chain) StablecoinAt(addr common.Address) (Stablecoin, bool) {
	for _, s := range c.Stablecoins {
		if s.Address == addr {
			return s, true
		}
	}
	return Stablecoin{}, false
}

var chains = map[string]*Chain{
	"ethereum": {
		Key:     "ethereum",
		Name:    "Ethereum",
		ChainID: 1,
		Endpoints: []Endpoint{
			{URL: "https://eth.llamarpc.com", Tier: 1, Timeout: 3 * time.Second, Label: "LlamaRPC"},
			{URL: "https://ethereum-rpc.publicnode.com", Tier: 2, Timeout: 4 * time.Second, Label: "PublicNode"},
			{URL: "https://eth.drpc.org", Tier: 3, Timeout: 8 * time.Second, Label: "dRPC"},
		},
		WrappedNative: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), Symbol: "USDC", Decimals: 6},
			{Address: common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"), Symbol: "USDT", Decimals: 6},
			{Address: common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), Symbol: "DAI", Decimals: 18},
		},
		Factories: []Factory{
			{Name: "Uniswap", V2: common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"), V3: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")},
			{Name: "SushiSwap", V2: common.HexToAddress("0xC0AEe478e3658e2610c5F7A4A2E1777cE9e4f2Ac")},
			{Name: "ShibaSwap", V2: common.HexToAddress("0x115934131916C8b277DD010Ee02de363c09d037c")},
		},
		V4PoolManager: common.HexToAddress("0x000000000004444c5dc75cB358380D2e3dE08A90"),
		Lockers: []common.Address{
			common.HexToAddress("0x663A5C229c09b049E36dCc11a9B0d4a8Eb9db214"),
			common.HexToAddress("0xDba68f07d1b7Ca219f78ae8582C213d975c25cAf"),
			common.HexToAddress("0x71B5759d73262FBb223956913ecF4ecC51057641"),
			common.HexToAddress("0xE2fE530C047f2d85298b07D9333C05737f1435fB"),
		},
		Explorer: "https://etherscan.io",
	},
	"base": {
		Key:     "base",
		Name:    "Base",
		ChainID: 8453,
		Endpoints: []Endpoint{
			{URL: "https://base.llamarpc.com", Tier: 1, Timeout: 3 * time.Second, Label: "LlamaRPC"},
			{URL: "https://mainnet.base.org", Tier: 2, Timeout: 5 * time.Second, Label: "Base Official"},
			{URL: "https://base.drpc.org", Tier: 3, Timeout: 8 * time.Second, Label: "dRPC"},
		},
		WrappedNative: common.HexToAddress("0x4200000000000000000000000000000000000006"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"), Symbol: "USDC", Decimals: 6},
			{Address: common.HexToAddress("0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb"), Symbol: "DAI", Decimals: 18},
		},
		Factories: []Factory{
			{Name: "Uniswap", V2: common.HexToAddress("0x8909Dc15e40173Ff4699343b6eB8132c65e18eC6"), V3: common.HexToAddress("0x33128a8fC17869897dcE68Ed026d694621f6FDfD")},
			{Name: "PancakeSwap", V2: common.HexToAddress("0x02a84c1b3BBD7401a5f7fa98a384EBC70bB5749E"), V3: common.HexToAddress("0x0BFbCF9fa4f9C56B0F40a671Ad40E0805A091865")},
			{Name: "BaseSwap", V2: common.HexToAddress("0xFDa619b6d20975be80A10332cD39b9a4b0FAa8BB")},
			{Name: "RocketSwap", V2: common.HexToAddress("0x1b8128c3A1B7D20053D10763ff02466ca7FF99FC")},
		},
		V4PoolManager: common.HexToAddress("0x000000000004444c5dc75cB358380D2e3dE08A90"),
		Lockers: []common.Address{
			common.HexToAddress("0x71B5759d73262FBb223956913ecF4ecC51057641"),
		},
		Explorer: "https://basescan.org",
	},
	"bsc": {
		Key:     "bsc",
		Name:    "BSC",
		ChainID: 56,
		Endpoints: []Endpoint{
			{URL: "https://bsc.llamarpc.com", Tier: 1, Timeout: 3 * time.Second, Label: "LlamaRPC"},
			{URL: "https://bsc-dataseed1.binance.org", Tier: 2, Timeout: 5 * time.Second, Label: "Binance"},
			{URL: "https://bsc.drpc.org", Tier: 3, Timeout: 8 * time.Second, Label: "dRPC"},
		},
		WrappedNative: common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0x55d398326f99059fF775485246999027B3197955"), Symbol: "USDT", Decimals: 18},
			{Address: common.HexToAddress("0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d"), Symbol: "USDC", Decimals: 18},
			{Address: common.HexToAddress("0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56"), Symbol: "BUSD", Decimals: 18},
		},
		Factories: []Factory{
			{Name: "PancakeSwap", V2: common.HexToAddress("0xcA143Ce32Fe78f1f7019d7d551a6402fC5350c73"), V3: common.HexToAddress("0x0BFbCF9fa4f9C56B0F40a671Ad40E0805A091865")},
			{Name: "Uniswap", V3: common.HexToAddress("0xdB1d10011AD0Ff90774D0C6Bb92e5C5c8b4461F7")},
			{Name: "ApeSwap", V2: common.HexToAddress("0x0841BD0B734E4F5853f0dD8d7Ea041c241fb0Da6")},
		},
		Lockers: []common.Address{
			common.HexToAddress("0xc765bddB93b0D1c1A88282BA0fa6B2d00E3e0c83"),
			common.HexToAddress("0x407993575c91ce7643a4d4cCACc9A98c36eE1BBE"),
		},
		Explorer: "https://bscscan.com",
	},
	"polygon": {
		Key:     "polygon",
		Name:    "Polygon",
		ChainID: 137,
		Endpoints: []Endpoint{
			{URL: "https://polygon.llamarpc.com", Tier: 1, Timeout: 3 * time.Second, Label: "LlamaRPC"},
			{URL: "https://polygon-rpc.com", Tier: 2, Timeout: 5 * time.Second, Label: "Polygon Official"},
			{URL: "https://polygon.drpc.org", Tier: 3, Timeout: 8 * time.Second, Label: "dRPC"},
		},
		WrappedNative: common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"), Symbol: "USDC", Decimals: 6},
			{Address: common.HexToAddress("0xc2132D05D31c914a87C6611C10748AEb04B58e8F"), Symbol: "USDT", Decimals: 6},
		},
		Factories: []Factory{
			{Name: "Uniswap", V3: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")},
			{Name: "QuickSwap", V2: common.HexToAddress("0x5757371414417b8C6CAad45bAeF941aBc7d3Ab32")},
			{Name: "SushiSwap", V2: common.HexToAddress("0xc35DADB65012eC5796536bD9864eD8773aBc74C4")},
		},
		Explorer: "https://polygonscan.com",
	},
	"arbitrum": {
		Key:     "arbitrum",
		Name:    "Arbitrum",
		ChainID: 42161,
		Endpoints: []Endpoint{
			{URL: "https://arbitrum.llamarpc.com", Tier: 1, Timeout: 3 * time.Second, Label: "LlamaRPC"},
			{URL: "https://arb1.arbitrum.io/rpc", Tier: 2, Timeout: 5 * time.Second, Label: "Arbitrum Official"},
			{URL: "https://arbitrum.drpc.org", Tier: 3, Timeout: 8 * time.Second, Label: "dRPC"},
		},
		WrappedNative: common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0xaf88d065e77c8cC2239327C5EDb3A432268e5831"), Symbol: "USDC", Decimals: 6},
			{Address: common.HexToAddress("0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9"), Symbol: "USDT", Decimals: 6},
		},
		Factories: []Factory{
			{Name: "Uniswap", V3: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")},
			{Name: "SushiSwap", V2: common.HexToAddress("0xc35DADB65012eC5796536bD9864eD8773aBc74C4")},
			{Name: "Camelot", V2: common.HexToAddress("0x6EcCab422D763aC031210895C81787E87B43A652")},
		},
		Explorer: "https://arbiscan.io",
	},
	"optimism": {
		Key:     "optimism",
		Name:    "Optimism",
		ChainID: 10,
		Endpoints: []Endpoint{
			{URL: "https://optimism.llamarpc.com", Tier: 1, Timeout: 3 * time.Second, Label: "LlamaRPC"},
			{URL: "https://mainnet.optimism.io", Tier: 2, Timeout: 5 * time.Second, Label: "Optimism Official"},
			{URL: "https://optimism.drpc.org", Tier: 3, Timeout: 8 * time.Second, Label: "dRPC"},
		},
		WrappedNative: common.HexToAddress("0x4200000000000000000000000000000000000006"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"), Symbol: "USDC", Decimals: 6},
			{Address: common.HexToAddress("0x94b008aA00579c1307B0EF2c499aD98a8ce58e58"), Symbol: "USDT", Decimals: 6},
		},
		Factories: []Factory{
			{Name: "Uniswap", V3: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")},
			{Name: "Velodrome", V2: common.HexToAddress("0x25CbdDb98b35ab1FF77413456B31EC81A6B6B746")},
		},
		Explorer: "https://optimistic.etherscan.io",
	},
	"avalanche": {
		Key:     "avalanche",
		Name:    "Avalanche",
		ChainID: 43114,
		Endpoints: []Endpoint{
			{URL: "https://avalanche.llamarpc.com", Tier: 1, Timeout: 3 * time.Second, Label: "LlamaRPC"},
			{URL: "https://api.avax.network/ext/bc/C/rpc", Tier: 2, Timeout: 5 * time.Second, Label: "Avalanche Official"},
		},
		WrappedNative: common.HexToAddress("0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"), Symbol: "USDC", Decimals: 6},
			{Address: common.HexToAddress("0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7"), Symbol: "USDT", Decimals: 6},
		},
		Factories: []Factory{
			{Name: "Uniswap", V3: common.HexToAddress("0x740b1c1de25031C31FF4fC9A62f554A55cdC1baD")},
			{Name: "TraderJoe", V2: common.HexToAddress("0x9Ad6C38BE94206cA50bb0d90783181c0dCA0B3B6")},
			{Name: "Pangolin", V2: common.HexToAddress("0xefa94DE7a4656D787667C749f7E1223D71E9FD88")},
		},
		Explorer: "https://snowtrace.io",
	},
	"fantom": {
		Key:     "fantom",
		Name:    "Fantom",
		ChainID: 250,
		Endpoints: []Endpoint{
			{URL: "https://rpc.ftm.tools", Tier: 1, Timeout: 4 * time.Second, Label: "FTM Tools"},
			{URL: "https://fantom-rpc.publicnode.com", Tier: 2, Timeout: 6 * time.Second, Label: "PublicNode"},
		},
		WrappedNative: common.HexToAddress("0x21be370D5312f44cB42ce377BC9b8a0cEF1A4C83"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0x04068DA6C83AFCFA0e13ba15A6696662335D5B75"), Symbol: "USDC", Decimals: 6},
			{Address: common.HexToAddress("0x049d68029688eAbF473097a2fC38ef61633A3C7A"), Symbol: "fUSDT", Decimals: 6},
		},
		Factories: []Factory{
			{Name: "SpookySwap", V2: common.HexToAddress("0x152eE697f2E276fA89E96742e9bB9aB1F2E61bE3")},
			{Name: "SpiritSwap", V2: common.HexToAddress("0xEF45d134b73241eDa7703fa787148D9C9F4950b0")},
		},
		Explorer: "https://ftmscan.com",
	},
	"blast": {
		Key:     "blast",
		Name:    "Blast",
		ChainID: 81457,
		Endpoints: []Endpoint{
			{URL: "https://rpc.blast.io", Tier: 1, Timeout: 4 * time.Second, Label: "Blast Official"},
			{URL: "https://blast.blockpi.network/v1/rpc/public", Tier: 2, Timeout: 8 * time.Second, Label: "BlockPI"},
		},
		WrappedNative: common.HexToAddress("0x4300000000000000000000000000000000000004"),
		Stablecoins: []Stablecoin{
			{Address: common.HexToAddress("0x4300000000000000000000000000000000000003"), Symbol: "USDB", Decimals: 18},
		},
		Factories: []Factory{
			{Name: "Thruster", V2: common.HexToAddress("0xb4A7D971D0ADea1c73198C97d7ab3f9CE4aaFA13")},
		},
		Explorer: "https://blastscan.io",
	},
}

// aliases maps user-facing chain identifiers (abbreviations, numeric chain
// IDs) to canonical keys.
var aliases = map[string]string{
	"eth":   "ethereum",
	"1":     "ethereum",
	"8453":  "base",
	"bnb":   "bsc",
	"56":    "bsc",
	"matic": "polygon",
	"137":   "polygon",
	"arb":   "arbitrum",
	"42161": "arbitrum",
	"op":    "optimism",
	"10":    "optimism",
	"avax":  "avalanche",
	"43114": "avalanche",
	"ftm":   "fantom",
	"250":   "fantom",
	"81457": "blast",
}

// Get resolves a chain by key or alias, case-insensitively. An unknown key
// or a chain without endpoints is a fatal configuration error.
func Get(key string) (*Chain, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if canonical, ok := aliases[k]; ok {
		k = canonical
	}
	c, ok := chains[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownChain, key, strings.Join(Supported(), ", "))
	}
	if len(c.Endpoints) == 0 {
		return nil, fmt.Errorf("%w: chain %s has no configured endpoints", ErrNoEndpoints, c.Name)
	}
	return c, nil
}

// Supported returns the canonical chain keys in stable order.
func Supported() []string {
	return []string{
		"ethereum", "base", "bsc", "polygon", "arbitrum",
		"optimism", "avalanche", "fantom", "blast",
	}
}
