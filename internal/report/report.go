// Package report renders a completed scan as a sectioned plain-text report.
// Every number shown comes straight from the scan result; the renderer adds
// no interpretation of its own.
package report

import (
	"fmt"
	"io"
	"strings"

	"tokenscan/internal/domain"
	"tokenscan/internal/scanner"
)

const rule = "============================================================"

// Render writes the full report. Verbose adds per-venue detail, the full
// adjustment breakdown and endpoint statistics.
func Render(w io.Writer, res *scanner.Result, verbose bool) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "TOKEN RISK SCAN")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Token:    %s\n", res.Token.Hex())
	fmt.Fprintf(w, "Chain:    %s\n", res.Chain)
	if res.Identity.Name != "" || res.Identity.Symbol != "" {
		fmt.Fprintf(w, "Identity: %s (%s)\n", res.Identity.Name, res.Identity.Symbol)
	}
	if res.Identity.Decimals >= 0 {
		fmt.Fprintf(w, "Decimals: %d\n", res.Identity.Decimals)
	}
	if res.Identity.TotalSupply != nil {
		fmt.Fprintf(w, "Supply:   %s\n", res.Identity.TotalSupply.String())
	}
	fmt.Fprintf(w, "Duration: %s\n", res.Duration.Round(1e6))

	if res.Aborted != nil {
		renderAborted(w, res)
		return
	}

	section(w, "LOGIC RISK: "+string(res.Logic.Risk))
	for _, f := range res.Logic.Facts {
		fmt.Fprintf(w, "  - %s\n", f)
	}

	section(w, "LIQUIDITY")
	renderLiquidity(w, res, verbose)

	section(w, "TRANSFER CONSTRAINTS: "+string(res.Constraints.Risk))
	for _, f := range res.Constraints.Facts {
		fmt.Fprintf(w, "  - %s\n", f)
	}

	section(w, "HOLDERS: "+string(res.Holders.Risk))
	for _, f := range res.Holders.Facts {
		fmt.Fprintf(w, "  - %s\n", f)
	}

	if len(res.Context.Notes) > 0 {
		section(w, "CONTEXT")
		for _, n := range res.Context.Notes {
			fmt.Fprintf(w, "  [%s] %s\n", n.Type, n.Text)
		}
	}

	section(w, fmt.Sprintf("FINAL SCORE: %d/100  (%s)", res.Score.FinalScore, res.Score.Band))
	fmt.Fprintf(w, "Confidence: %s\n", res.Score.Confidence)
	fmt.Fprintf(w, "Coverage:   %d%%\n", res.Score.CoverageCompleteness)
	if verbose {
		fmt.Fprintln(w, "Breakdown:")
		for _, adj := range res.Score.Adjustments {
			fmt.Fprintf(w, "  %+4d  %s\n", adj.Delta, adj.Reason)
		}
	}
	for _, g := range res.Score.GuardrailsApplied {
		fmt.Fprintf(w, "  ! %s\n", g)
	}
	if len(res.Score.RiskFactors) > 0 {
		fmt.Fprintln(w, "Risk factors:")
		for _, r := range res.Score.RiskFactors {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	if len(res.Score.PositiveSignals) > 0 {
		fmt.Fprintln(w, "Positive signals:")
		for _, p := range res.Score.PositiveSignals {
			fmt.Fprintf(w, "  + %s\n", p)
		}
	}

	section(w, "SCORE BANDS")
	fmt.Fprintln(w, "  90-100  STRONG CONFIDENCE")
	fmt.Fprintln(w, "  75-89   LOW RISK")
	fmt.Fprintln(w, "  55-74   CAUTION")
	fmt.Fprintln(w, "   0-54   HIGH / CRITICAL RISK")

	if verbose {
		renderStats(w, res)
	}

	section(w, "DISCLAIMER")
	fmt.Fprintln(w, "Automated on-chain heuristics only. Not financial advice.")
	fmt.Fprintln(w, "A high score does not guarantee safety; verify independently.")
	fmt.Fprintln(w, rule)
}

func renderAborted(w io.Writer, res *scanner.Result) {
	section(w, "SCAN ABORTED: "+string(res.Aborted.Reason))
	fmt.Fprintf(w, "Stage:  %s\n", res.Aborted.Stage)
	fmt.Fprintf(w, "Detail: %s\n", res.Aborted.Message)
	if res.Aborted.Reason == domain.AbortHighRisk || res.Aborted.Reason == domain.AbortCriticalRisk {
		fmt.Fprintf(w, "Logic risk: %s\n", res.Logic.Risk)
		for _, f := range res.Logic.Facts {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	fmt.Fprintln(w, rule)
}

func renderLiquidity(w io.Writer, res *scanner.Result, verbose bool) {
	liq := res.Liquidity
	if !liq.Found {
		fmt.Fprintf(w, "  No liquidity found (%d pairs checked)\n", liq.TotalChecked)
		return
	}
	fmt.Fprintf(w, "  Venues: %d (%d pairs checked)\n", len(liq.Venues), liq.TotalChecked)
	if liq.PrimaryVenue != nil {
		p := liq.PrimaryVenue
		fmt.Fprintf(w, "  Primary: %s %s pool %s\n", p.Dex, strings.ToUpper(string(p.Family)), p.Address.Hex())
	}
	if liq.TotalDepthUsd != nil {
		fmt.Fprintf(w, "  Depth: $%d (verifiable)\n", *liq.TotalDepthUsd)
	} else {
		fmt.Fprintln(w, "  Depth: UNVERIFIABLE")
	}
	fmt.Fprintf(w, "  LP burned: %d%%  LP locked: %d%%\n", liq.BurnPercent, liq.LockPercent)
	fmt.Fprintf(w, "  Risks: control=%s depth=%s verifiability=%s\n",
		liq.RiskBreakdown.ControlRisk, liq.RiskBreakdown.DepthRisk, liq.RiskBreakdown.VerifiabilityRisk)
	for _, f := range liq.Facts {
		fmt.Fprintf(w, "  - %s\n", f)
	}
	if verbose {
		for _, v := range liq.Venues {
			depth := "n/a"
			if v.EstimatedDepthUsd != nil {
				depth = fmt.Sprintf("$%d", *v.EstimatedDepthUsd)
			}
			fmt.Fprintf(w, "    %s %s %s quote=%s depth=%s\n",
				v.Dex, v.Family, v.Address.Hex(), v.QuoteSym, depth)
		}
		for _, e := range liq.Evidence {
			fmt.Fprintf(w, "    evidence: %s\n", e)
		}
	}
}

func renderStats(w io.Writer, res *scanner.Result) {
	section(w, "RPC STATISTICS")
	st := res.RPCStats
	fmt.Fprintf(w, "  Calls: %d total, %d ok, %d failed, %d cache hits\n",
		st.TotalCalls, st.Successful, st.Failed, st.CacheHits)
	if st.Successful > 0 {
		fmt.Fprintf(w, "  Avg latency: %s\n", st.AvgLatency.Round(1e6))
	}
	for _, ep := range st.Endpoints {
		fmt.Fprintf(w, "  [tier %d] %s failures=%d\n", ep.Tier, ep.Label, ep.ConsecutiveFailures)
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- "+title)
}
