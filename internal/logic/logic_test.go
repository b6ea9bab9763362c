package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/rpcpool"
)

type stubCaller struct {
	responses map[string]rpcpool.CallResult
}

func (s *stubCaller) Call(_ context.Context, method string, params []interface{}, _ string) (rpcpool.CallResult, error) {
	key := method
	switch method {
	case "eth_call":
		if m, ok := params[0].(map[string]interface{}); ok {
			key = fmt.Sprintf("eth_call:%s", m["data"])
		}
	case "eth_getCode", "eth_getStorageAt":
		key = fmt.Sprintf("%s:%s", method, params[0])
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

var (
	token = common.HexToAddress("0x1234000000000000000000000000000000000000")
	eoa   = common.HexToAddress("0x00000000000000000000000000000000000000aa")
)

func mustChain(t *testing.T) *chaincfg.Chain {
	t.Helper()
	c, err := chaincfg.Get("ethereum")
	require.NoError(t, err)
	return c
}

func ownerResponses(owner common.Address, ownerHasCode bool) map[string]rpcpool.CallResult {
	code := "0x"
	if ownerHasCode {
		code = "0x6080"
	}
	return map[string]rpcpool.CallResult{
		"eth_call:0x8da5cb5b":         {Success: true, Data: jsonString(word(owner.Big()))},
		"eth_getCode:" + owner.Hex(): {Success: true, Data: jsonString(code)},
	}
}

func TestAnalyze_RenouncedIsLowRisk(t *testing.T) {
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_call:0x8da5cb5b": {Success: true, Data: jsonString(word(big.NewInt(0)))},
	}}

	res := Analyze(context.Background(), caller, token, mustChain(t))
	require.Equal(t, OwnerZero, res.OwnerType)
	require.True(t, res.Renounced())
	require.Equal(t, domain.RiskLow, res.Risk)
	require.Equal(t, domain.ConfidenceVerified, res.Confidence)
}

func TestAnalyze_MintAndSetFeeUnderEOAIsCritical(t *testing.T) {
	responses := ownerResponses(eoa, false)
	responses["eth_call:0x40c10f19"] = rpcpool.CallResult{Success: true, Data: jsonString("0x01")}
	responses["eth_call:0x69fe0e2d"] = rpcpool.CallResult{Success: true, Data: jsonString("0x01")}

	res := Analyze(context.Background(), &stubCaller{responses: responses}, token, mustChain(t))
	require.Equal(t, OwnerEOA, res.OwnerType)
	require.True(t, res.HasMint)
	require.True(t, res.HasSetFee)
	require.Equal(t, domain.RiskCritical, res.Risk)
}

func TestAnalyze_BlacklistUnderEOAIsHigh(t *testing.T) {
	responses := ownerResponses(eoa, false)
	responses["eth_call:0xf9f92be4"] = rpcpool.CallResult{Success: true, Data: jsonString("0x00")}

	res := Analyze(context.Background(), &stubCaller{responses: responses}, token, mustChain(t))
	require.True(t, res.HasBlacklist)
	require.Equal(t, domain.RiskHigh, res.Risk)
}

func TestAnalyze_ProxyUnderEOAIsHigh(t *testing.T) {
	impl := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	responses := ownerResponses(eoa, false)
	responses["eth_getStorageAt:"+token.Hex()] = rpcpool.CallResult{Success: true, Data: jsonString(word(impl.Big()))}

	res := Analyze(context.Background(), &stubCaller{responses: responses}, token, mustChain(t))
	require.True(t, res.IsProxy)
	require.NotNil(t, res.Implementation)
	require.Equal(t, impl, *res.Implementation)
	require.Equal(t, domain.RiskHigh, res.Risk)
}

func TestAnalyze_MintUnderContractOwnerIsMedium(t *testing.T) {
	multisig := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	responses := ownerResponses(multisig, true)
	responses["eth_call:0x40c10f19"] = rpcpool.CallResult{Success: true, Data: jsonString("0x01")}

	res := Analyze(context.Background(), &stubCaller{responses: responses}, token, mustChain(t))
	require.Equal(t, OwnerContract, res.OwnerType)
	require.Equal(t, domain.RiskMedium, res.Risk)
}

func TestAnalyze_GetOwnerFallback(t *testing.T) {
	// owner() reverts but the BEP-20 getOwner() resolves.
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_call:0x893d20e8":       {Success: true, Data: jsonString(word(eoa.Big()))},
		"eth_getCode:" + eoa.Hex(): {Success: true, Data: jsonString("0x")},
	}}

	res := Analyze(context.Background(), caller, token, mustChain(t))
	require.Equal(t, OwnerEOA, res.OwnerType)
	require.NotNil(t, res.Owner)
	require.Equal(t, eoa, *res.Owner)
	require.Equal(t, domain.ConfidenceVerified, res.Confidence)
}

func TestAnalyze_NoOwnerIsUnknownAndPartial(t *testing.T) {
	res := Analyze(context.Background(), &stubCaller{responses: map[string]rpcpool.CallResult{}}, token, mustChain(t))
	require.Equal(t, OwnerNotFound, res.OwnerType)
	require.Equal(t, domain.RiskUnknown, res.Risk)
	require.Equal(t, domain.ConfidencePartial, res.Confidence)
}
