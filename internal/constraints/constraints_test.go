package constraints

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"tokenscan/internal/domain"
	"tokenscan/internal/logic"
	"tokenscan/internal/rpcpool"
)

type stubCaller struct {
	responses map[string]rpcpool.CallResult
}

func (s *stubCaller) Call(_ context.Context, method string, params []interface{}, _ string) (rpcpool.CallResult, error) {
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

func exists(selectors ...string) map[string]rpcpool.CallResult {
	out := make(map[string]rpcpool.CallResult, len(selectors))
	for _, sel := range selectors {
		out["eth_call:"+sel] = rpcpool.CallResult{Success: true, Data: jsonString("0x01")}
	}
	return out
}

func TestAnalyze_CleanTokenIsLow(t *testing.T) {
	res := Analyze(context.Background(), &stubCaller{}, token, logic.OwnerNotFound)
	require.Equal(t, domain.RiskLow, res.Risk)
	require.Contains(t, res.Facts, "No significant transfer or trading constraints detected")
}

func TestAnalyze_BlacklistAndDynamicTaxUnderEOAIsHigh(t *testing.T) {
	caller := &stubCaller{responses: exists(
		"0xfe575a87", // isBlacklisted(address)
		"0xaf8af690", // setBuyTax(uint256)
	)}

	res := Analyze(context.Background(), caller, token, logic.OwnerEOA)
	require.True(t, res.HasBlacklist)
	require.True(t, res.HasDynamicTax)
	require.Equal(t, domain.RiskHigh, res.Risk)
	require.Contains(t, res.Facts, "Blacklist and modifiable tax with EOA owner")
}

func TestAnalyze_SingleMechanismIsMedium(t *testing.T) {
	caller := &stubCaller{responses: exists("0x4a8c1fb6")} // cooldownEnabled()

	res := Analyze(context.Background(), caller, token, logic.OwnerNotFound)
	require.True(t, res.HasCooldown)
	require.Equal(t, domain.RiskMedium, res.Risk)
}

func TestAnalyze_RenouncementDiscountsEverything(t *testing.T) {
	caller := &stubCaller{responses: exists(
		"0xfe575a87", // blacklist group
		"0xaf8af690", // dynamic tax group
	)}

	res := Analyze(context.Background(), caller, token, logic.OwnerZero)
	require.True(t, res.OwnershipRenounced)
	// Blacklist + dynamic tax never stack with an EOA factor here, and the
	// renouncement discount clears the rest.
	require.Equal(t, domain.RiskLow, res.Risk)
	require.Contains(t, res.Facts, "Ownership renounced - controls are immutable")
}

func TestAnalyze_TaxPercentDecoded(t *testing.T) {
	caller := &stubCaller{responses: map[string]rpcpool.CallResult{
		"eth_call:0x4f7041a5": {Success: true, Data: jsonString(word(big.NewInt(5)))}, // buyTax() = 5
	}}

	res := Analyze(context.Background(), caller, token, logic.OwnerNotFound)
	require.True(t, res.HasTax)
	require.Contains(t, res.Facts, "Trading tax detected ([5%])")
	require.Equal(t, domain.RiskLow, res.Risk, "a static tax alone adds no factor")
}

func TestAnalyze_ThreeSoftMechanismsAreHigh(t *testing.T) {
	caller := &stubCaller{responses: exists(
		"0x4a8c1fb6", // cooldown
		"0xf8b45b05", // anti-whale
		"0x3af32abf", // whitelist
	)}

	res := Analyze(context.Background(), caller, token, logic.OwnerNotFound)
	require.Equal(t, domain.RiskHigh, res.Risk)
}

func TestAnalyze_ContractOwnerSoftensOne(t *testing.T) {
	caller := &stubCaller{responses: exists("0x4a8c1fb6")} // cooldown only

	res := Analyze(context.Background(), caller, token, logic.OwnerContract)
	require.Equal(t, domain.RiskLow, res.Risk, "multisig control discounts a single factor")
}
