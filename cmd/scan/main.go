package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/observability"
	"tokenscan/internal/report"
	"tokenscan/internal/rpcpool"
	"tokenscan/internal/scanner"
)

func main() {
	chainKey := flag.String("chain", "ethereum", "Chain to scan (a chain key, alias, or numeric chain ID)")
	verbose := flag.Bool("verbose", false, "Verbose output: score breakdown, per-venue detail, RPC stats")
	timeout := flag.Duration("timeout", 90*time.Second, "Overall scan timeout")
	metricsListen := flag.String("metrics-listen", "", "Optional address to serve Prometheus metrics on (e.g. :9090)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		os.Exit(1)
	}
	tokenArg := flag.Arg(0)
	// The chain can also be given as a second positional argument; an
	// explicit --chain flag wins over it.
	*chainKey = resolveChain(*chainKey, flagPassed("chain"), flag.Args())
	if !common.IsHexAddress(tokenArg) {
		fmt.Fprintf(os.Stderr, "Error: %q is not a valid token address\n", tokenArg)
		os.Exit(1)
	}
	token := common.HexToAddress(tokenArg)

	// .env is optional; flags and real environment win.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	chain, err := chaincfg.Get(*chainKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	endpoints := chain.Endpoints
	// A <CHAIN>_RPC variable injects a private endpoint ahead of the public
	// tiers.
	envKey := strings.ToUpper(chain.Key) + "_RPC"
	if custom := os.Getenv(envKey); custom != "" {
		endpoints = append([]chaincfg.Endpoint{{
			URL:     custom,
			Tier:    0,
			Timeout: 5 * time.Second,
			Label:   "custom (" + envKey + ")",
		}}, endpoints...)
		log.WithField("endpoint", custom).Debug("using custom RPC endpoint")
	}

	if *metricsListen != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			if err := http.ListenAndServe(*metricsListen, mux); err != nil {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
	}

	pool := rpcpool.New(chain.Key, endpoints, rpcpool.WithLogger(log))
	s := scanner.New(chain, pool, scanner.WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res := s.Scan(ctx, token)
	report.Render(os.Stdout, &res, *verbose)

	if res.Aborted != nil && res.Aborted.Reason == domain.AbortRPCFailure {
		os.Exit(1)
	}
}

// resolveChain picks the chain key. The second positional argument only
// applies when --chain was left at its default.
func resolveChain(flagValue string, flagSet bool, args []string) string {
	if !flagSet && len(args) == 2 {
		return args[1]
	}
	return flagValue
}

func flagPassed(name string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: scan [flags] <token-address>

Scans an ERC20 token contract for common risk patterns: dangerous
privileged functions, liquidity depth and LP custody, transfer
constraints and holder concentration.

Flags:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Chains:
  %s

Environment:
  <CHAIN>_RPC (e.g. ETHEREUM_RPC, POLYGON_RPC)  custom endpoint, tried first
  (a .env file in the working directory is loaded if present)

Example:
  scan --chain ethereum 0x6982508145454Ce325dDbE47a25d4ec3d2311933
`, strings.Join(chaincfg.Supported(), ", "))
}
