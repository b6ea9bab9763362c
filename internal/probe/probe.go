// Package probe issues read-only contract probes through the endpoint pool.
// A probe that fails remotely comes back as a Result value; callers inspect
// OK instead of handling errors, so a reverting selector is data, not a
// fault.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/rpcpool"
)

// Result is the outcome of one probe.
type Result struct {
	OK   bool
	Data string // 0x-prefixed return data; "0x" when the call returned nothing
	Err  string
}

// Empty reports whether the probe succeeded but returned no usable data.
func (r Result) Empty() bool {
	if !r.OK {
		return true
	}
	return isZeroHex(r.Data)
}

// CallData builds eth_call input: 4-byte selector followed by 32-byte padded
// arguments. Supported argument types are common.Address and *big.Int.
func CallData(selector string, args ...interface{}) string {
	data := selector
	for _, arg := range args {
		switch v := arg.(type) {
		case common.Address:
			data += fmt.Sprintf("%064x", v.Big())
		case *big.Int:
			data += fmt.Sprintf("%064x", v)
		case int64:
			data += fmt.Sprintf("%064x", big.NewInt(v))
		default:
			panic(fmt.Sprintf("probe: unsupported call argument type %T", arg))
		}
	}
	return data
}

// Contract performs eth_call against a contract at the latest block.
func Contract(ctx context.Context, caller rpcpool.Caller, to common.Address, data, cacheKey string) Result {
	params := []interface{}{
		map[string]interface{}{"to": to.Hex(), "data": data},
		"latest",
	}
	res, err := caller.Call(ctx, "eth_call", params, cacheKey)
	if err != nil {
		return Result{Err: err.Error()}
	}
	return toResult(res)
}

// Code fetches the deployed bytecode at an address.
func Code(ctx context.Context, caller rpcpool.Caller, addr common.Address) Result {
	params := []interface{}{addr.Hex(), "latest"}
	res, err := caller.Call(ctx, "eth_getCode", params, "code:"+addr.Hex())
	if err != nil {
		return Result{Err: err.Error()}
	}
	return toResult(res)
}

// StorageAt reads one raw storage slot.
func StorageAt(ctx context.Context, caller rpcpool.Caller, addr common.Address, slot common.Hash) Result {
	params := []interface{}{addr.Hex(), slot.Hex(), "latest"}
	res, err := caller.Call(ctx, "eth_getStorageAt", params, "slot:"+addr.Hex()+":"+slot.Hex())
	if err != nil {
		return Result{Err: err.Error()}
	}
	return toResult(res)
}

// SelectorExists reports whether calling a bare selector on the contract
// completes without reverting. Reverts and remote failures both count as
// absent.
func SelectorExists(ctx context.Context, caller rpcpool.Caller, addr common.Address, selector string) bool {
	res := Contract(ctx, caller, addr, selector, "sel:"+addr.Hex()+":"+selector)
	return res.OK
}

// HasCode reports whether the address holds deployed bytecode.
func HasCode(ctx context.Context, caller rpcpool.Caller, addr common.Address) bool {
	res := Code(ctx, caller, addr)
	return res.OK && !isZeroHex(res.Data)
}

func toResult(res rpcpool.CallResult) Result {
	if !res.Success {
		return Result{Err: res.Err}
	}
	var hexData string
	if err := json.Unmarshal(res.Data, &hexData); err != nil {
		return Result{Err: fmt.Sprintf("malformed result payload: %v", err)}
	}
	return Result{OK: true, Data: hexData}
}
