package tokencontext

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"tokenscan/internal/domain"
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

var token = common.HexToAddress("0x1234000000000000000000000000000000000000")

func exists(selectors ...string) map[string]rpcpool.CallResult {
	out := make(map[string]rpcpool.CallResult, len(selectors))
	for _, sel := range selectors {
		out["eth_call:"+sel] = rpcpool.CallResult{Success: true, Data: jsonString("0x01")}
	}
	return out
}

func noteTypes(res Result) []string {
	out := make([]string, 0, len(res.Notes))
	for _, n := range res.Notes {
		out = append(out, n.Type)
	}
	return out
}

func TestAnalyze_LegacyToken(t *testing.T) {
	res := Analyze(context.Background(), &stubCaller{}, token, Input{})
	require.True(t, res.IsLegacyToken)
	require.Contains(t, noteTypes(res), "LEGACY_TOKEN")
}

func TestAnalyze_StablecoinBySymbol(t *testing.T) {
	res := Analyze(context.Background(), &stubCaller{}, token, Input{
		Name:      "Tether USD",
		Symbol:    "usdt", // case-insensitive match
		DepthRisk: domain.RiskHigh,
	})
	require.True(t, res.IsCentralizedStablecoin, "symbol match overrides the depth gate")
	require.Contains(t, noteTypes(res), "CENTRALIZED_STABLECOIN")
}

func TestAnalyze_StablecoinByStructure(t *testing.T) {
	caller := &stubCaller{responses: exists("0x8d8f2adb")} // freeze(address)
	in := Input{
		Name:           "Some Dollar",
		Symbol:         "XUSD",
		HasBlacklist:   true,
		LiquidityFound: true,
		DepthRisk:      domain.RiskLow,
	}
	res := Analyze(context.Background(), caller, token, in)
	require.True(t, res.IsCentralizedStablecoin)

	// With HIGH depth risk and no symbol match the structural path is gated
	// off: a blacklisted illiquid token is not a stablecoin.
	in.DepthRisk = domain.RiskHigh
	res = Analyze(context.Background(), caller, token, in)
	require.False(t, res.IsCentralizedStablecoin)
}

func TestAnalyze_RebasingToken(t *testing.T) {
	caller := &stubCaller{responses: exists("0xaf14052c")} // rebase()
	res := Analyze(context.Background(), caller, token, Input{Name: "Ampl", Symbol: "AMPL"})
	require.True(t, res.IsRebasingToken)
}

func TestAnalyze_NonStandardProxy(t *testing.T) {
	// Proxy flag set but none of the standard proxy selectors answer.
	res := Analyze(context.Background(), &stubCaller{}, token, Input{
		Name: "X", Symbol: "X", IsProxy: true,
	})
	require.True(t, res.IsNonStandardProxy)

	// A proxy that exposes implementation() is standard.
	caller := &stubCaller{responses: exists("0x5c60da1b")}
	res = Analyze(context.Background(), caller, token, Input{
		Name: "X", Symbol: "X", IsProxy: true,
	})
	require.False(t, res.IsNonStandardProxy)
}

func TestAnalyze_VestingRequiresConcentration(t *testing.T) {
	caller := &stubCaller{responses: exists("0x86d1a69f")} // release()

	res := Analyze(context.Background(), caller, token, Input{
		Name: "X", Symbol: "X", HolderRisk: domain.RiskHigh,
	})
	require.True(t, res.HasVestingPattern)

	res = Analyze(context.Background(), caller, token, Input{
		Name: "X", Symbol: "X", HolderRisk: domain.RiskLow,
	})
	require.False(t, res.HasVestingPattern, "vesting probes only run for concentrated holders")
}

func TestAnalyze_RenouncedNote(t *testing.T) {
	res := Analyze(context.Background(), &stubCaller{}, token, Input{
		Name: "X", Symbol: "X", OwnerZero: true,
	})
	require.Contains(t, noteTypes(res), "OWNERSHIP_RENOUNCED")
}
