// Package scan turns sector scan and watch-list snapshot queries into
// candidate lists: it builds the prompts, defensively parses the
// comma-separated text the query service returns, and runs the sequential
// multi-sector value scan.
package scan

import (
	"strconv"
	"strings"

	"valuescan/internal/domain"
)

// Line field positions. The service is asked for exactly this layout; the
// score and reason columns are only present on sector scan responses.
const (
	fieldSymbol = iota
	fieldName
	fieldSector
	fieldPrice
	fieldChange
	fieldMarketCap
	fieldScore
	fieldReason
	minFields = fieldScore // symbol through market cap
)

// ParseCandidates extracts candidate records from loosely formatted
// comma-separated response text. Malformed lines are silently dropped and
// never abort parsing of the remainder; arbitrary garbage input yields an
// empty (or partial) result, never an error. Output preserves input line
// order.
func ParseCandidates(raw string) []domain.Candidate {
	var out []domain.Candidate

	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, ",") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < minFields {
			continue
		}

		price, err := strconv.ParseFloat(cleanField(fields[fieldPrice]), 64)
		if err != nil {
			continue
		}

		// Change percent is best-effort; a malformed value becomes 0.
		change, err := strconv.ParseFloat(cleanField(fields[fieldChange]), 64)
		if err != nil {
			change = 0
		}

		c := domain.Candidate{
			Symbol:        cleanField(fields[fieldSymbol]),
			Name:          cleanField(fields[fieldName]),
			Sector:        cleanField(fields[fieldSector]),
			Price:         price,
			ChangePercent: change,
			MarketCap:     cleanField(fields[fieldMarketCap]),
		}

		// Legacy column handling: older responses carried a free-text
		// reason where the score now lives. A non-numeric score field is
		// therefore reinterpreted as the reason unless an explicit reason
		// column follows.
		var fallbackReason string
		if len(fields) > fieldScore {
			sv := cleanField(fields[fieldScore])
			if f, err := strconv.ParseFloat(sv, 64); err == nil {
				c.Score = int(f)
			} else {
				fallbackReason = sv
			}
		}
		if len(fields) > fieldReason {
			// Reasons may themselves contain commas; rejoin the tail.
			c.Reason = cleanField(strings.Join(fields[fieldReason:], ","))
		}
		if c.Reason == "" {
			c.Reason = fallbackReason
		}

		out = append(out, c)
	}

	return out
}

// cleanField strips surrounding whitespace and quote characters from a raw
// field.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
