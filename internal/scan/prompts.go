package scan

import (
	"fmt"
	"strings"
)

// lineFormat is the record layout the query service is instructed to emit.
const lineFormat = "SYMBOL,Company Name,Sector,Price,ChangePercent,MarketCap"

// SectorScanPrompt builds the search-grounded query for one sector of a
// value scan. The response is expected to be plain comma-separated lines
// parseable by ParseCandidates, including score and reason columns.
func SectorScanPrompt(sector string, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Act as a value investing analyst. Using current market data from web search, identify up to %d US-listed stocks in the %s sector that appear undervalued relative to intrinsic worth right now.\n\n", limit, sector)
	fmt.Fprintf(&b, "Respond with plain text only: one line per stock in exactly this comma-separated format, no header, no markdown, no commentary:\n")
	fmt.Fprintf(&b, "%s,Score,Reason\n\n", lineFormat)
	b.WriteString("Price is the latest share price in USD. ChangePercent is today's percent change. MarketCap is abbreviated (e.g. 850M, 12B, 1.2T). Score is an integer 0-100 expressing conviction that the stock is undervalued. Reason is one short phrase for the undervaluation case.\n")
	b.WriteString("Example:\nINTC,Intel Corp,Technology,43.25,-1.2,183B,72,Trading below book value\n")
	return b.String()
}

// SnapshotPrompt builds the search-grounded query refreshing the fixed
// watch-list. The response carries no score or reason columns.
func SnapshotPrompt(symbols []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Using current market data from web search, provide the latest snapshot for these US-listed stocks: %s.\n\n", strings.Join(symbols, ", "))
	fmt.Fprintf(&b, "Respond with plain text only: one line per stock in exactly this comma-separated format, no header, no markdown, no commentary:\n%s\n\n", lineFormat)
	b.WriteString("Price is the latest share price in USD. ChangePercent is today's percent change. MarketCap is abbreviated (e.g. 850M, 12B, 1.2T).\n")
	return b.String()
}
