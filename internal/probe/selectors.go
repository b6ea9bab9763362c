package probe

import "github.com/ethereum/go-ethereum/common"

// ERC20 and ownership selectors.
const (
	SelName        = "0x06fdde03" // name()
	SelSymbol      = "0x95d89b41" // symbol()
	SelDecimals    = "0x313ce567" // decimals()
	SelTotalSupply = "0x18160ddd" // totalSupply()
	SelBalanceOf   = "0x70a08231" // balanceOf(address)
	SelOwner       = "0x8da5cb5b" // owner()
	SelGetOwner    = "0x893d20e8" // getOwner()
	SelDeployer    = "0xd5f39488" // deployer()
	SelCreator     = "0x02d05d3f" // creator()
)

// Dangerous privileged-function selectors.
const (
	SelMint      = "0x40c10f19" // mint(address,uint256)
	SelPause     = "0x8456cb59" // pause()
	SelBlacklist = "0xf9f92be4" // blacklist(address)
	SelSetFee    = "0x69fe0e2d" // setFee(uint256)
)

// DEX pool selectors.
const (
	SelGetPair     = "0xe6a43905" // getPair(address,address)
	SelGetPool     = "0x1698ee82" // getPool(address,address,uint24)
	SelToken0      = "0x0dfe1681" // token0()
	SelToken1      = "0xd21220a7" // token1()
	SelGetReserves = "0x0902f1ac" // getReserves()
	SelFee         = "0xddca3f43" // fee()
	SelSlot0       = "0x3850c7bd" // slot0()
	SelLiquidity   = "0x1a686502" // liquidity()
)

// Transfer-constraint selectors, grouped by mechanism.
var (
	SelCooldown = []string{
		"0x4a8c1fb6", // cooldownEnabled()
		"0x10d5de53", // setCooldown(uint256)
		"0x8cd09d50", // tradingCooldown()
	}
	SelBlacklistSet = []string{
		"0xfe575a87", // isBlacklisted(address)
		"0xf9f92be4", // blacklist(address)
		"0x44337ea1", // addToBlacklist(address)
	}
	SelWhitelistSet = []string{
		"0x3af32abf", // isWhitelisted(address)
		"0x9b19251a", // whitelist(address)
		"0xe43252d7", // addToWhitelist(address)
		"0xc0246668", // excludeFromFees(address,bool)
		"0x4fbee193", // isExcludedFromFees(address)
	}
	SelAntiWhale = []string{
		"0xf8b45b05", // maxWallet()
		"0xec28438a", // setMaxTxAmount(uint256)
		"0xe99c9d09", // setMaxWallet(uint256)
	}
	SelTax = []string{
		"0x4f7041a5", // buyTax()
		"0xb0bc85de", // sellTax()
		"0x13114a9d", // totalFees()
		"0x061c82d0", // taxFee()
	}
	SelDynamicTax = []string{
		"0xaf8af690", // setBuyTax(uint256)
		"0x6402511e", // setSellTax(uint256)
		"0xfdb78c0e", // setFees(...)
		"0x66ca9b83", // updateFees(...)
	}
	SelRouterIntegration = []string{
		"0x1694505e", // uniswapV2Router()
		"0x49bd5a5e", // uniswapV2Pair()
	}
)

// Contextual-pattern selectors.
var (
	SelRebasing = []string{
		"0xaf14052c", // rebase()
		"0xb9f0baf7", // scalingFactor()
	}
	SelCentralized = []string{
		"0x8d8f2adb", // freeze(address)
		"0x6a28f000", // unfreeze(address)
		"0x983b2d56", // addMinter(address)
		"0xaa271e1a", // isMinter(address)
	}
	SelVesting = []string{
		"0x86d1a69f", // release()
		"0x44b1231f", // vestedAmount(uint64)
	}
	SelProxyPattern = []string{
		"0x5c60da1b", // implementation()
		"0x3659cfe6", // upgradeTo(address)
		"0xf851a440", // admin()
	}
)

// EIP1967ImplementationSlot is the standard proxy implementation storage
// slot, keccak256("eip1967.proxy.implementation") - 1.
var EIP1967ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

// PairCreatedTopic is the Uniswap V2 factory PairCreated event signature.
var PairCreatedTopic = common.HexToHash("0x0d3648bd0f6ba80134a33ba9275ac585d9d315f0ad8355cddefde31afa28d0e9")
