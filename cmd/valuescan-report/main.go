// One-shot tool: run the full two-phase valuation for a single symbol and
// print the report as plain text, without the interactive dashboard.
//
// Usage:
//
//	go run cmd/valuescan-report/main.go [-config PATH] [-sector SECTOR] SYMBOL
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"valuescan/internal/advisor"
	"valuescan/internal/config"
	"valuescan/internal/dashboard"
	"valuescan/internal/domain"
	"valuescan/internal/util"
	"valuescan/internal/valuation"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	sector := flag.String("sector", domain.SectorUnknown, "sector hint for the research query")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: valuescan-report [-config PATH] [-sector SECTOR] SYMBOL")
		os.Exit(1)
	}
	symbol := strings.ToUpper(flag.Arg(0))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so the report itself stays clean on stdout.
	logger := util.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	ctx := context.Background()
	service, err := advisor.NewGemini(ctx, cfg.Gemini, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	analyzer := valuation.NewAnalyzer(service, logger)
	result, err := analyzer.Analyze(ctx, symbol, *sector, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: analysis of %s failed: %v\n", symbol, err)
		os.Exit(1)
	}

	printReport(symbol, result)
}

func printReport(symbol string, r *domain.AnalysisResult) {
	fmt.Printf("=== %s  %s ===\n\n", symbol, r.CompanyName)
	fmt.Printf("Price:            %s\n", dashboard.FormatPrice(r.CurrentPrice))
	fmt.Printf("Intrinsic value:  %s\n", dashboard.FormatPrice(r.IntrinsicValue))
	fmt.Printf("Margin of safety: %s\n", dashboard.FormatSigned(r.MarginOfSafety))
	fmt.Printf("Recommendation:   %s\n\n", r.Recommendation)

	fmt.Println("--- Valuation ---")
	for _, vm := range r.ValuationMetrics {
		fmt.Printf("  %-9s %9s  %s\n", vm.Method, dashboard.FormatPrice(vm.Value), vm.Details)
	}

	fmt.Println("\n--- Sentiment ---")
	fmt.Printf("  %s (%.0f)\n  %s\n", r.SentimentLabel, r.SentimentScore, r.SentimentSummary)
	fmt.Printf("  Sector: %s\n", r.SectorMomentum)

	fmt.Println("\n--- Strengths ---")
	for _, s := range r.Strengths {
		fmt.Printf("  + %s\n", s)
	}
	fmt.Println("\n--- Risks ---")
	for _, s := range r.Risks {
		fmt.Printf("  - %s\n", s)
	}

	if len(r.Sources) > 0 {
		fmt.Println("\n--- Sources ---")
		for _, src := range r.Sources {
			if src.Title != "" {
				fmt.Printf("  %s  %s\n", src.Title, src.URI)
			} else {
				fmt.Printf("  %s\n", src.URI)
			}
		}
	}
}
