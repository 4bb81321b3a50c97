// Command council-stress runs the debate pipeline across a batch of
// tickers and prints a per-stage breakdown of each case. It exercises
// the persistence guardrails against real market data: a stable mega-cap,
// a volatile growth name, and a meme stock make a useful default spread.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/council/internal/app"
	"github.com/bobmcallan/council/internal/models"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default: COUNCIL_CONFIG or binary dir)")
		tickers     = flag.String("tickers", "TSLA,KO,GME", "comma-separated tickers to analyze")
		style       = flag.String("style", "trader", "investing style: trader or investor")
		risk        = flag.String("risk", "aggressive", "risk tolerance: aggressive, moderate, or conservative")
		concurrency = flag.Int("concurrency", 2, "max tickers analyzed in parallel")
		timeout     = flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	)
	flag.Parse()

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	profile := models.Profile{
		Style:         models.Style(*style),
		RiskTolerance: models.RiskTolerance(*risk),
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var mu sync.Mutex
	cases := make(map[string]*models.Case)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)

	start := time.Now()
	for _, raw := range strings.Split(*tickers, ",") {
		ticker := strings.ToUpper(strings.TrimSpace(raw))
		if ticker == "" {
			continue
		}
		g.Go(func() error {
			c, err := a.AnalyzeAndStore(gctx, ticker, profile)
			if err != nil {
				return fmt.Errorf("%s: %w", ticker, err)
			}
			mu.Lock()
			cases[ticker] = c
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		os.Exit(1)
	}

	for _, raw := range strings.Split(*tickers, ",") {
		ticker := strings.ToUpper(strings.TrimSpace(raw))
		if c, ok := cases[ticker]; ok {
			printCase(c)
		}
	}

	fmt.Printf("Analyzed %d tickers in %s\n", len(cases), time.Since(start).Round(time.Millisecond))
}

func printCase(c *models.Case) {
	fmt.Printf("=== %s (%s/%s) ===\n", c.Ticker, c.Profile.Style, c.Profile.RiskTolerance)
	fmt.Printf("  Technical:   %5.1f -> %5.1f  [%s -> %s]\n",
		c.Technical.Initial.Confidence, c.Technical.Final.Confidence,
		c.Technical.Initial.Signal, c.Technical.Final.Signal)
	fmt.Printf("  Fundamental: %5.1f -> %5.1f  [%s -> %s]\n",
		c.Fundamental.Initial.Confidence, c.Fundamental.Final.Confidence,
		c.Fundamental.Initial.Signal, c.Fundamental.Final.Signal)
	fmt.Printf("  Danger:      %5.1f\n", c.Risk.Danger())
	if c.Risk.EvidenceSummary != "" {
		fmt.Printf("  Evidence:    %s\n", firstLine(c.Risk.EvidenceSummary))
	}
	if c.Verdict != nil {
		fmt.Printf("  Verdict:     %s (score %.1f)\n", c.Verdict.Signal, c.Verdict.Confidence)
		fmt.Printf("  Why:         %s\n", c.Verdict.Explanation)
	}
	fmt.Println()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
