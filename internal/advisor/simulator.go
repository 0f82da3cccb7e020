package advisor

import (
	"context"
	"sync"

	"valuescan/internal/domain"
)

// Compile-time interface check.
var _ Service = (*Simulator)(nil)

// Simulator implements the Service interface with scripted in-memory
// responses. It backs orchestrator tests and the offline demo mode without
// making external API calls.
//
// Queued responses are consumed in FIFO order; when a queue is empty the
// simulator falls back to a fixed canned response so a demo run always
// produces output.
type Simulator struct {
	mu         sync.Mutex
	grounded   []groundedScript
	structured []structuredScript

	// GroundedCalls and StructuredCalls record the prompts received, in
	// order, for test assertions.
	GroundedCalls   []string
	StructuredCalls []string
}

type groundedScript struct {
	result Grounded
	err    error
}

type structuredScript struct {
	json string
	err  error
}

// NewSimulator creates an empty Simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Name returns "simulator".
func (s *Simulator) Name() string {
	return "simulator"
}

// QueueGrounded appends a scripted grounded-text response.
func (s *Simulator) QueueGrounded(text string, sources []domain.Source, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grounded = append(s.grounded, groundedScript{result: Grounded{Text: text, Sources: sources}, err: err})
}

// QueueStructured appends a scripted structured-JSON response.
func (s *Simulator) QueueStructured(json string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.structured = append(s.structured, structuredScript{json: json, err: err})
}

// GroundedText pops the next scripted grounded response, or returns the
// canned demo lines when nothing is queued.
func (s *Simulator) GroundedText(ctx context.Context, prompt string) (Grounded, error) {
	if err := ctx.Err(); err != nil {
		return Grounded{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.GroundedCalls = append(s.GroundedCalls, prompt)

	if len(s.grounded) > 0 {
		next := s.grounded[0]
		s.grounded = s.grounded[1:]
		return next.result, next.err
	}
	return Grounded{Text: demoGroundedText, Sources: demoSources()}, nil
}

// StructuredJSON pops the next scripted structured response, or returns the
// canned demo report when nothing is queued.
func (s *Simulator) StructuredJSON(ctx context.Context, prompt string, _ Schema) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.StructuredCalls = append(s.StructuredCalls, prompt)

	if len(s.structured) > 0 {
		next := s.structured[0]
		s.structured = s.structured[1:]
		return next.json, next.err
	}
	return demoReportJSON, nil
}

// Canned demo responses. The grounded text uses the scan line format so the
// same fallback serves sector scans, snapshots, and gather-phase context.
const demoGroundedText = `ACME,Acme Industrial,Industrials,41.20,0.8,9B,74,Cyclical trough with intact backlog
BOLT,Bolt Semiconductor,Technology,18.75,-2.1,6B,68,Inventory correction priced in
CRST,Crest Health,Healthcare,55.10,1.4,12B,61,Pipeline optionality at generic multiple`

const demoReportJSON = `{
  "companyName": "Acme Industrial",
  "currentPrice": 41.20,
  "intrinsicValue": 55.00,
  "marginOfSafety": 25.1,
  "recommendation": "BUY",
  "valuationMetrics": [
    {"method": "DCF", "value": 56.4, "details": "10y FCF at 9% discount, 2% terminal"},
    {"method": "RELATIVE", "value": 52.0, "details": "Peer EV/EBITDA re-rating to 8x"},
    {"method": "GRAHAM", "value": 49.8, "details": "Graham number on normalized EPS"}
  ],
  "sentimentScore": 35,
  "sentimentLabel": "POSITIVE",
  "sentimentSummary": "Coverage has turned constructive after two beat-and-raise quarters.",
  "sectorMomentum": "Industrials are recovering on order book normalization.",
  "strengths": ["Backlog covers 18 months of revenue", "Net cash balance sheet"],
  "risks": ["Customer concentration", "Input cost pass-through lag"]
}`

func demoSources() []domain.Source {
	return []domain.Source{
		{Title: "Acme Industrial Q2 results", URI: "https://example.com/acme-q2"},
		{Title: "Industrials sector outlook", URI: "https://example.com/industrials"},
	}
}
