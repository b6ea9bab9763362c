package probe

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/rpcpool"
)

// stubCaller maps call data to canned responses without touching the network.
type stubCaller struct {
	responses map[string]rpcpool.CallResult
	calls     []string
}

func (s *stubCaller) Call(_ context.Context, method string, params []interface{}, _ string) (rpcpool.CallResult, error) {
	key := method
	if method == "eth_call" && len(params) > 0 {
		if m, ok := params[0].(map[string]interface{}); ok {
			key = method + ":" + m["data"].(string)
		}
	}
	s.calls = append(s.calls, key)
	if res, ok := s.responses[key]; ok {
		return res, nil
	}
	return rpcpool.CallResult{Success: false, Err: "execution reverted"}, nil
}

func jsonString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func TestCallData_AddressPadding(t *testing.T) {
	addr := common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	data := CallData(SelBalanceOf, addr)

	want := "0x70a08231000000000000000000000000c02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	if data != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestCallData_IntArg(t *testing.T) {
	data := CallData(SelGetPool, common.Address{}, common.Address{}, int64(3000))
	// 3000 = 0xbb8 in the final word.
	wantLen := len(SelGetPool) + 3*64
	if len(data) != wantLen {
		t.Fatalf("got length %d, want %d", len(data), wantLen)
	}
	if data[len(data)-3:] != "bb8" {
		t.Errorf("expected fee tier 0xbb8 at tail, got %s", data[len(data)-8:])
	}
}

func TestContract_RemoteFailureIsResult(t *testing.T) {
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{}}
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")

	res := Contract(context.Background(), caller, addr, SelName, "")
	if res.OK {
		t.Fatal("expected failed probe")
	}
	if res.Err == "" {
		t.Error("expected error message in result")
	}
}

func TestSelectorExists(t *testing.T) {
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_call:" + SelOwner: {Success: true, Data: jsonString("0x" + "00000000000000000000000011111111111111111111111111111111111111aa")},
	}}

	if !SelectorExists(context.Background(), caller, addr, SelOwner) {
		t.Error("expected owner() to exist")
	}
	if SelectorExists(context.Background(), caller, addr, SelMint) {
		t.Error("expected mint probe to report absent on revert")
	}
}

func TestHasCode(t *testing.T) {
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_getCode": {Success: true, Data: jsonString("0x6080604052")},
	}}
	if !HasCode(context.Background(), caller, common.HexToAddress("0x01")) {
		t.Error("expected code present")
	}

	empty := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_getCode": {Success: true, Data: jsonString("0x")},
	}}
	if HasCode(context.Background(), empty, common.HexToAddress("0x01")) {
		t.Error("expected no code for 0x")
	}
}

func TestDecodeString_Dynamic(t *testing.T) {
	// offset=0x20, length=4, "PEPE"
	data := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000004" +
		"5045504500000000000000000000000000000000000000000000000000000000"

	s, ok := DecodeString(data)
	if !ok || s != "PEPE" {
		t.Errorf("got %q ok=%v, want PEPE", s, ok)
	}
}

func TestDecodeString_Bytes32Legacy(t *testing.T) {
	// MKR-style bytes32 name.
	data := "0x4d616b6572000000000000000000000000000000000000000000000000000000"
	s, ok := DecodeString(data)
	if !ok || s != "Maker" {
		t.Errorf("got %q ok=%v, want Maker", s, ok)
	}
}

func TestDecodeString_Garbage(t *testing.T) {
	if s, ok := DecodeString("0x01"); ok {
		t.Errorf("expected failure, got %q", s)
	}
	if s, ok := DecodeString("0x"); ok {
		t.Errorf("expected failure for empty, got %q", s)
	}
}

func TestDecodeUint256(t *testing.T) {
	v, ok := DecodeUint256("0x00000000000000000000000000000000000000000000000000000000000003e8")
	if !ok || v.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("got %v ok=%v, want 1000", v, ok)
	}

	if _, ok := DecodeUint256("0x"); ok {
		t.Error("expected failure for empty payload")
	}
}

func TestDecodeAddress(t *testing.T) {
	data := "0x000000000000000000000000c02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	addr, ok := DecodeAddress(data)
	if !ok || addr != common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2") {
		t.Errorf("got %s ok=%v", addr.Hex(), ok)
	}
}

func TestDecodeReserves(t *testing.T) {
	data := "0x" +
		"00000000000000000000000000000000000000000000000000000000000f4240" + // 1000000
		"00000000000000000000000000000000000000000000000000000000001e8480" + // 2000000
		"0000000000000000000000000000000000000000000000000000000065000000" // timestamp, ignored

	r0, r1, ok := DecodeReserves(data)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if r0.Cmp(big.NewInt(1000000)) != 0 || r1.Cmp(big.NewInt(2000000)) != 0 {
		t.Errorf("got r0=%v r1=%v", r0, r1)
	}
}

func TestResultEmpty(t *testing.T) {
	if !(Result{OK: true, Data: "0x"}).Empty() {
		t.Error("0x should be empty")
	}
	zero := "0x0000000000000000000000000000000000000000000000000000000000000000"
	if !(Result{OK: true, Data: zero}).Empty() {
		t.Error("all-zero word should be empty")
	}
	if (Result{OK: true, Data: "0x01"}).Empty() {
		t.Error("non-zero payload should not be empty")
	}
}
