// Package domain defines the core data types shared across the valuescan
// application: scan candidates, valuation reports, and citation sources.
package domain

import (
	"fmt"
	"strings"
)

// SectorUnknown marks a candidate whose sector has not been established,
// typically one selected by raw ticker search rather than from scan results.
const SectorUnknown = "Unknown"

// SectorAnalysed replaces SectorUnknown on a candidate once a deep analysis
// has completed for it. No other sector value is ever rewritten.
const SectorAnalysed = "Analysed"

// Candidate is one stock's summary record as shown in the dashboard list.
// Candidates are produced by parsing scan/snapshot query output and are
// replaced wholesale on the next query; they are never mutated in place.
type Candidate struct {
	Symbol        string
	Name          string
	Sector        string
	Price         float64
	ChangePercent float64
	MarketCap     string
	Score         int    // conviction score 0-100, 0 when the query supplied none
	Reason        string // one-line undervaluation rationale, may be empty
}

// Record serializes the candidate back into the comma-separated line format
// the scan parser accepts. Re-parsing the output yields a field-identical
// candidate.
func (c Candidate) Record() string {
	return fmt.Sprintf("%s,%s,%s,%g,%g,%s,%d,%s",
		c.Symbol, c.Name, c.Sector, c.Price, c.ChangePercent, c.MarketCap, c.Score, c.Reason)
}

// Method identifies one of the three fixed valuation approaches.
type Method string

const (
	MethodDCF      Method = "DCF"
	MethodRelative Method = "RELATIVE"
	MethodGraham   Method = "GRAHAM"
)

// Valid reports whether m is one of the three known valuation methods.
func (m Method) Valid() bool {
	switch m {
	case MethodDCF, MethodRelative, MethodGraham:
		return true
	}
	return false
}

// Recommendation is the overall call produced by a valuation report.
type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationHold Recommendation = "HOLD"
	RecommendationSell Recommendation = "SELL"
)

// Valid reports whether r is one of BUY, HOLD, or SELL.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationBuy, RecommendationHold, RecommendationSell:
		return true
	}
	return false
}

// Sentiment labels the aggregate news/market sentiment for a stock.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// Valid reports whether s is one of POSITIVE, NEUTRAL, or NEGATIVE.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// ValuationMetric is a single intrinsic-value estimate from one method.
type ValuationMetric struct {
	Method  Method  `json:"method"`
	Value   float64 `json:"value"`
	Details string  `json:"details"`
}

// Source is citation metadata attached by the query service when it used
// web search to ground a response.
type Source struct {
	Title string
	URI   string
}

// AnalysisResult is a complete single-stock valuation report. It is built
// atomically from one validated structured response; a partially populated
// result is never committed. Sources is appended after construction from the
// gather phase's grounding metadata.
type AnalysisResult struct {
	CompanyName      string            `json:"companyName"`
	CurrentPrice     float64           `json:"currentPrice"`
	IntrinsicValue   float64           `json:"intrinsicValue"`
	MarginOfSafety   float64           `json:"marginOfSafety"` // signed percent
	Recommendation   Recommendation    `json:"recommendation"`
	ValuationMetrics []ValuationMetric `json:"valuationMetrics"`
	SentimentScore   float64           `json:"sentimentScore"` // -100..100
	SentimentLabel   Sentiment         `json:"sentimentLabel"`
	SentimentSummary string            `json:"sentimentSummary"`
	SectorMomentum   string            `json:"sectorMomentum"`
	Strengths        []string          `json:"strengths"`
	Risks            []string          `json:"risks"`
	Sources          []Source          `json:"-"`
}

// Validate checks the enumerated fields and required content of a report.
// A report failing validation must be discarded, never committed.
func (a *AnalysisResult) Validate() error {
	if strings.TrimSpace(a.CompanyName) == "" {
		return fmt.Errorf("missing companyName")
	}
	if !a.Recommendation.Valid() {
		return fmt.Errorf("invalid recommendation %q", a.Recommendation)
	}
	if !a.SentimentLabel.Valid() {
		return fmt.Errorf("invalid sentimentLabel %q", a.SentimentLabel)
	}
	for i, m := range a.ValuationMetrics {
		if !m.Method.Valid() {
			return fmt.Errorf("valuationMetrics[%d]: invalid method %q", i, m.Method)
		}
	}
	return nil
}
