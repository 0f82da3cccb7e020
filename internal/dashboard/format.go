package dashboard

import (
	"fmt"
	"strings"
)

// FormatPrice formats a price value as $X.XX, or "-" for zero.
func FormatPrice(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("$%.2f", p)
}

// FormatChange formats a daily percent change with an explicit sign.
// The input is already in percent units.
func FormatChange(pct float64) string {
	if pct > 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatMarketCap normalizes a free-text market cap, or "-" when absent.
func FormatMarketCap(mc string) string {
	mc = strings.TrimSpace(mc)
	if mc == "" {
		return "-"
	}
	return mc
}

// FormatSigned formats a signed percentage such as a margin of safety.
// Drops the decimal for values >= 100% to keep width compact.
func FormatSigned(pct float64) string {
	if pct >= 100 || pct <= -100 {
		return fmt.Sprintf("%+.0f%%", pct)
	}
	return fmt.Sprintf("%+.1f%%", pct)
}

// Truncate shortens s to at most width runes, ending with an ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
