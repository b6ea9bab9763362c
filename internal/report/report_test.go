package report

import (
	"bytes"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/domain"
	"tokenscan/internal/holders"
	"tokenscan/internal/identity"
	"tokenscan/internal/logic"
	"tokenscan/internal/scanner"
	"tokenscan/internal/scoring"
)

func sampleResult() *scanner.Result {
	depth := int64(42000)
	return &scanner.Result{
		Token: common.HexToAddress("0x1234000000000000000000000000000000000000"),
		Chain: "ethereum",
		Identity: identity.Result{
			HasCode:     true,
			Name:        "Pepe",
			Symbol:      "PEPE",
			Decimals:    18,
			TotalSupply: big.NewInt(420690),
		},
		Logic: logic.Result{
			Risk:  domain.RiskLow,
			Facts: []string{"Ownership renounced (owner = 0x0)"},
		},
		Liquidity: domain.LiquidityResult{
			Found:        true,
			TotalChecked: 14,
			Venues: []*domain.Venue{{
				Dex:               "Uniswap",
				Family:            domain.FamilyConstantProduct,
				Address:           common.HexToAddress("0xA43fe16908251ee70EF74718545e4FE6C5cCEc9f"),
				QuoteSym:          "USDC",
				EstimatedDepthUsd: &depth,
				DepthVerifiable:   true,
			}},
			PrimaryVenue:  nil,
			TotalDepthUsd: &depth,
			BurnPercent:   95,
			IsBurned:      true,
			RiskBreakdown: domain.RiskBreakdown{
				ControlRisk:       domain.RiskLow,
				DepthRisk:         domain.RiskLow,
				VerifiabilityRisk: domain.RiskLow,
			},
			Facts: []string{"LP tokens 95% burned"},
		},
		Holders: holders.Result{
			Risk:  domain.RiskLow,
			Facts: []string{"Holder distribution appears reasonable from available data"},
		},
		Score: scoring.Result{
			FinalScore:           85,
			Band:                 scoring.BandLowRisk,
			Confidence:           scoring.ConfidenceHigh,
			CoverageCompleteness: 100,
			Adjustments:          []scoring.Adjustment{{Reason: "Base score", Delta: 70}},
			PositiveSignals:      []string{"Ownership renounced to zero/dead address"},
		},
		Duration: 1500 * time.Millisecond,
	}
}

func TestRender_FullReport(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleResult(), false)
	out := buf.String()

	for _, want := range []string{
		"TOKEN RISK SCAN",
		"0x1234000000000000000000000000000000000000",
		"Pepe (PEPE)",
		"LOGIC RISK: LOW",
		"Venues: 1 (14 pairs checked)",
		"Depth: $42000 (verifiable)",
		"LP burned: 95%",
		"HOLDERS: LOW",
		"FINAL SCORE: 85/100  (LOW RISK)",
		"Coverage:   100%",
		"SCORE BANDS",
		"Ownership renounced to zero/dead address",
		"Not financial advice",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(out, "Breakdown:") {
		t.Error("adjustment breakdown should only render in verbose mode")
	}
}

func TestRender_VerboseAddsBreakdownAndVenues(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleResult(), true)
	out := buf.String()

	for _, want := range []string{
		"Breakdown:",
		"+70  Base score",
		"quote=USDC depth=$42000",
		"RPC STATISTICS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose report missing %q", want)
		}
	}
}

func TestRender_Aborted(t *testing.T) {
	res := sampleResult()
	res.Aborted = &domain.Aborted{
		Reason:  domain.AbortNoCode,
		Stage:   "identity",
		Message: "no contract code at 0x1234",
	}

	var buf bytes.Buffer
	Render(&buf, res, false)
	out := buf.String()

	if !strings.Contains(out, "SCAN ABORTED: NO_CODE") {
		t.Error("missing abort header")
	}
	if !strings.Contains(out, "Stage:  identity") {
		t.Error("missing abort stage")
	}
	if strings.Contains(out, "FINAL SCORE") {
		t.Error("aborted scan must not render a score")
	}
}

func TestRender_NoLiquidity(t *testing.T) {
	res := sampleResult()
	res.Liquidity = domain.LiquidityResult{TotalChecked: 9}

	var buf bytes.Buffer
	Render(&buf, res, false)

	if !strings.Contains(buf.String(), "No liquidity found (9 pairs checked)") {
		t.Error("missing empty-liquidity line")
	}
}
