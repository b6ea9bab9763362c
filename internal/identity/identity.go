// Package identity resolves a token's basic ERC20 identity: deployed code,
// name, symbol, decimals and total supply.
package identity

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/probe"
	"tokenscan/internal/rpcpool"
)

// Result is the token identity. Missing fields stay at their zero values;
// Decimals is -1 when the call failed or returned an out-of-range value.
type Result struct {
	HasCode     bool
	Name        string
	Symbol      string
	Decimals    int32
	TotalSupply *big.Int
	NonStandard bool
}

// Analyze fetches the token identity. A missing code check short-circuits:
// nothing else is probed for an address without bytecode.
func Analyze(ctx context.Context, caller rpcpool.Caller, token common.Address) Result {
	res := Result{Decimals: -1}

	res.HasCode = probe.HasCode(ctx, caller, token)
	if !res.HasCode {
		res.NonStandard = true
		return res
	}

	res.Name = fetchString(ctx, caller, token, probe.SelName)
	res.Symbol = fetchString(ctx, caller, token, probe.SelSymbol)
	res.Decimals = fetchDecimals(ctx, caller, token)

	if r := probe.Contract(ctx, caller, token, probe.SelTotalSupply, "supply:"+token.Hex()); r.OK {
		if v, ok := probe.DecodeUint256(r.Data); ok {
			res.TotalSupply = v
		}
	}

	if res.Name == "" && res.Symbol == "" {
		res.NonStandard = true
	}
	return res
}

func fetchString(ctx context.Context, caller rpcpool.Caller, token common.Address, selector string) string {
	r := probe.Contract(ctx, caller, token, selector, "str:"+token.Hex()+":"+selector)
	if !r.OK {
		return ""
	}
	s, ok := probe.DecodeString(r.Data)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func fetchDecimals(ctx context.Context, caller rpcpool.Caller, token common.Address) int32 {
	r := probe.Contract(ctx, caller, token, probe.SelDecimals, "dec:"+token.Hex())
	if !r.OK {
		return -1
	}
	v, ok := probe.DecodeUint256(r.Data)
	if !ok || !v.IsInt64() {
		return -1
	}
	// decimals() is uint8; anything past 77 is garbage from a non-standard
	// return layout.
	d := v.Int64()
	if d < 0 || d > 77 {
		return -1
	}
	return int32(d)
}
