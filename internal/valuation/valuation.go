// Package valuation runs the two-phase deep analysis for a single stock: a
// search-grounded gather query collecting research context and citations,
// then a schema-constrained extract query producing the valuation report.
// The phases share no conversational memory; the gather output is spliced
// verbatim into the extract prompt.
package valuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"valuescan/internal/advisor"
	"valuescan/internal/domain"
)

// ErrExtract marks an extract-phase failure: network error, unparseable
// response, or a report failing validation. It fails the whole analysis.
var ErrExtract = errors.New("valuation: extract phase failed")

// placeholderContext substitutes for gather output when the gather phase
// fails. Analysis proceeds on it with degraded quality and no citations.
const placeholderContext = "No recent research could be retrieved. Base the analysis on established fundamental knowledge of the company."

// Gathered is the typed intermediate value between the two phases: opaque
// research text plus whatever citations the service attached to it.
type Gathered struct {
	Context string
	Sources []domain.Source
}

// Analyzer runs deep analyses against the query service. A nil service
// means no credential is configured; Analyze then fails with
// advisor.ErrNoCredential.
type Analyzer struct {
	service advisor.Service
	logger  *slog.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(service advisor.Service, logger *slog.Logger) *Analyzer {
	return &Analyzer{service: service, logger: logger}
}

// Gather runs the grounded research phase for a symbol. The output text has
// no structural contract; it is treated as opaque context for the extract
// phase.
func (a *Analyzer) Gather(ctx context.Context, symbol, sector string, knownPrice float64) (Gathered, error) {
	if a.service == nil {
		return Gathered{}, advisor.ErrNoCredential
	}

	res, err := a.service.GroundedText(ctx, GatherPrompt(symbol, sector, knownPrice))
	if err != nil {
		return Gathered{}, fmt.Errorf("gather phase for %s: %w", symbol, err)
	}
	return Gathered{Context: res.Text, Sources: res.Sources}, nil
}

// Extract runs the schema-constrained phase over gathered context and
// builds a validated report. Any failure is wrapped in ErrExtract; a report
// is either complete and valid or absent.
func (a *Analyzer) Extract(ctx context.Context, symbol string, knownPrice float64, research string) (*domain.AnalysisResult, error) {
	if a.service == nil {
		return nil, advisor.ErrNoCredential
	}

	raw, err := a.service.StructuredJSON(ctx, ExtractPrompt(symbol, knownPrice, research), ReportSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrExtract, err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}

	return &result, nil
}

// Analyze runs the full two-phase pipeline. A gather failure is non-fatal:
// the extract phase proceeds on the placeholder context with an empty
// source list. An extract failure fails the operation; no partial report is
// ever returned.
func (a *Analyzer) Analyze(ctx context.Context, symbol, sector string, knownPrice float64) (*domain.AnalysisResult, error) {
	if a.service == nil {
		return nil, advisor.ErrNoCredential
	}

	gathered, err := a.Gather(ctx, symbol, sector, knownPrice)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger.Warn("gather phase failed, continuing with placeholder context",
			"symbol", symbol, "error", err)
		gathered = Gathered{Context: placeholderContext}
	}

	result, err := a.Extract(ctx, symbol, knownPrice, gathered.Context)
	if err != nil {
		return nil, err
	}

	result.Sources = gathered.Sources
	a.logger.Info("analysis complete",
		"symbol", symbol,
		"recommendation", string(result.Recommendation),
		"intrinsic_value", result.IntrinsicValue,
		"sources", len(result.Sources))

	return result, nil
}

// Reconcile merges a completed report back into the selected candidate's
// display fields: the extracted price wins when nonzero, the extracted
// company name wins when present, and an unknown sector is stamped with the
// analysed marker. Nothing else is rewritten.
func Reconcile(c domain.Candidate, result *domain.AnalysisResult) domain.Candidate {
	if result.CurrentPrice != 0 {
		c.Price = result.CurrentPrice
	}
	if strings.TrimSpace(result.CompanyName) != "" {
		c.Name = result.CompanyName
	}
	if c.Sector == domain.SectorUnknown {
		c.Sector = domain.SectorAnalysed
	}
	return c
}
