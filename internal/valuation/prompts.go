package valuation

import (
	"fmt"
	"strings"
)

// GatherPrompt builds the search-grounded research query for the gather
// phase. The known price may be zero when the caller has no quote for the
// symbol.
func GatherPrompt(symbol, sector string, knownPrice float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Research the US-listed stock %s", symbol)
	if sector != "" && sector != "Unknown" {
		fmt.Fprintf(&b, " (%s sector)", sector)
	}
	b.WriteString(" using current web search results.\n\n")
	if knownPrice > 0 {
		fmt.Fprintf(&b, "The last price I have on record is $%.2f; verify it.\n", knownPrice)
	}
	b.WriteString("Collect, with specific figures where available:\n")
	b.WriteString("- latest share price, market cap, and recent price action\n")
	b.WriteString("- most recent quarterly results: revenue, earnings, margins, guidance\n")
	b.WriteString("- balance sheet condition: cash, debt, buybacks or dilution\n")
	b.WriteString("- analyst estimates, price targets, and notable recent news\n")
	b.WriteString("- sector conditions and how peers are valued\n\n")
	b.WriteString("Write a dense factual summary. Do not give a recommendation yet.\n")
	return b.String()
}

// ExtractPrompt builds the schema-constrained query for the extract phase,
// splicing the gather phase's output in verbatim.
func ExtractPrompt(symbol string, knownPrice float64, research string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a value investing analyst. Based on the research notes below, produce a complete valuation report for %s.\n\n", symbol)
	if knownPrice > 0 {
		fmt.Fprintf(&b, "If the notes do not state a current price, use $%.2f.\n\n", knownPrice)
	}
	b.WriteString("Compute intrinsic value three ways: a discounted cash flow estimate (DCF), a peer-multiple estimate (RELATIVE), and a Graham-formula estimate (GRAHAM). Blend them into one intrinsic value, derive the signed margin of safety percentage versus the current price, and state an overall BUY, HOLD, or SELL call. Score aggregate sentiment from -100 to 100 with a POSITIVE, NEUTRAL, or NEGATIVE label, summarize sector momentum, and list the key strengths and risks.\n\n")
	b.WriteString("Research notes:\n---\n")
	b.WriteString(research)
	b.WriteString("\n---\n")
	return b.String()
}
