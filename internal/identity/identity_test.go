package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/rpcpool"
)

type stubCaller struct {
	responses map[string]rpcpool.CallResult
	calls     int
}

func (s *stubCaller) Call(_ context.Context, method string, params []interface{}, _ string) (rpcpool.CallResult, error) {
	s.calls++
	key := method
	if method == "eth_call" && len(params) > 0 {
		if m, ok := params[0].(map[string]interface{}); ok {
			key = method + ":" + m["data"].(string)
		}
	}
	if res, ok := s.responses[key]; ok {
		return res, nil
	}
	return rpcpool.CallResult{Success: false, Err: "execution reverted"}, nil
}

func jsonString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func word(v *big.Int) string {
	return fmt.Sprintf("0x%064x", v)
}

var token = common.HexToAddress("0x1234000000000000000000000000000000000000")

func TestAnalyze_NoCodeShortCircuits(t *testing.T) {
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_getCode": {Success: true, Data: jsonString("0x")},
	}}

	res := Analyze(context.Background(), caller, token)
	if res.HasCode {
		t.Fatal("expected no code")
	}
	if !res.NonStandard {
		t.Error("codeless address should be non-standard")
	}
	if caller.calls != 1 {
		t.Errorf("expected exactly one call, got %d", caller.calls)
	}
}

func TestAnalyze_FullIdentity(t *testing.T) {
	nameData := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000004" +
		"5065706500000000000000000000000000000000000000000000000000000000" // "Pepe"
	symbolData := "0x5045504500000000000000000000000000000000000000000000000000000000" // bytes32 "PEPE"

	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_getCode":          {Success: true, Data: jsonString("0x6080")},
		"eth_call:0x06fdde03":  {Success: true, Data: jsonString(nameData)},
		"eth_call:0x95d89b41":  {Success: true, Data: jsonString(symbolData)},
		"eth_call:0x313ce567":  {Success: true, Data: jsonString(word(big.NewInt(18)))},
		"eth_call:0x18160ddd":  {Success: true, Data: jsonString(word(big.NewInt(420690)))},
	}}

	res := Analyze(context.Background(), caller, token)
	if res.Name != "Pepe" || res.Symbol != "PEPE" {
		t.Errorf("got name=%q symbol=%q", res.Name, res.Symbol)
	}
	if res.Decimals != 18 {
		t.Errorf("got decimals %d", res.Decimals)
	}
	if res.TotalSupply == nil || res.TotalSupply.Cmp(big.NewInt(420690)) != 0 {
		t.Errorf("got supply %v", res.TotalSupply)
	}
	if res.NonStandard {
		t.Error("full identity is standard")
	}
}

func TestAnalyze_LegacyTokenIsNonStandard(t *testing.T) {
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_getCode": {Success: true, Data: jsonString("0x6080")},
	}}

	res := Analyze(context.Background(), caller, token)
	if !res.HasCode {
		t.Fatal("expected code present")
	}
	if !res.NonStandard {
		t.Error("token without name and symbol should be non-standard")
	}
	if res.Decimals != -1 {
		t.Errorf("unresolvable decimals should be -1, got %d", res.Decimals)
	}
}

func TestAnalyze_GarbageDecimalsRejected(t *testing.T) {
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_getCode":         {Success: true, Data: jsonString("0x6080")},
		"eth_call:0x313ce567": {Success: true, Data: jsonString(word(big.NewInt(200)))},
	}}

	res := Analyze(context.Background(), caller, token)
	if res.Decimals != -1 {
		t.Errorf("decimals past 77 should be rejected, got %d", res.Decimals)
	}
}
