// Package dashboard owns the view-state machine behind the terminal
// clients: a Controller holding the canonical State, driven by blocking
// transition calls and read through immutable snapshots. An operation
// generation counter makes a newer user action deterministically supersede
// an in-flight one; stale results are discarded at commit time.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"valuescan/internal/advisor"
	"valuescan/internal/domain"
	"valuescan/internal/scan"
	"valuescan/internal/valuation"
)

// View identifies which screen the presentation layer should render.
type View int

const (
	ViewList View = iota
	ViewDetail
)

// State is the complete render-relevant state. The presentation layer only
// ever sees copies; candidate slices in a copy are never aliased to the
// controller's own.
type State struct {
	View       View
	Candidates []domain.Candidate
	Selected   domain.Candidate
	Analysis   *domain.AnalysisResult
	Loading    bool
	ScanMode   bool
	Progress   scan.Progress
	Status     string
}

// Controller serializes all state transitions. Transition methods block for
// the duration of their network work and are meant to be called from their
// own goroutines; every mutation signals the updates channel.
type Controller struct {
	scanner   *scan.Scanner
	analyzer  *valuation.Analyzer
	watchlist []string
	logger    *slog.Logger

	mu    sync.Mutex
	gen   uint64
	state State

	updates chan struct{}
}

// NewController creates a Controller in the LIST view with the default
// watch-list.
func NewController(scanner *scan.Scanner, analyzer *valuation.Analyzer, logger *slog.Logger) *Controller {
	return &Controller{
		scanner:   scanner,
		analyzer:  analyzer,
		watchlist: DefaultWatchlist(),
		logger:    logger,
		state: State{
			View:   ViewList,
			Status: "r: watchlist  s: value scan  /: search",
		},
		updates: make(chan struct{}, 1),
	}
}

// Updates returns the change-notification channel. It carries at most one
// pending signal; readers should take a fresh Snapshot after each receive.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Snapshot returns a copy of the current state safe to read concurrently.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Candidates = append([]domain.Candidate(nil), c.state.Candidates...)
	return s
}

// begin opens a new operation generation, applies the start-of-operation
// mutation, and returns the generation token the eventual commit must carry.
func (c *Controller) begin(mutate func(*State)) uint64 {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	mutate(&c.state)
	c.mu.Unlock()
	c.notify()
	return gen
}

// commit applies a mutation only if gen is still the current generation.
// A stale commit is discarded without touching state.
func (c *Controller) commit(gen uint64, mutate func(*State)) bool {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("superseded operation result discarded", "generation", gen)
		return false
	}
	mutate(&c.state)
	c.mu.Unlock()
	c.notify()
	return true
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// LoadSnapshot refreshes the watch-list quote table.
func (c *Controller) LoadSnapshot(ctx context.Context) {
	gen := c.begin(func(s *State) {
		s.View = ViewList
		s.Loading = true
		s.ScanMode = false
		s.Status = "Loading watchlist prices..."
	})

	cands, err := c.scanner.Snapshot(ctx, c.watchlist)

	c.commit(gen, func(s *State) {
		s.Loading = false
		if err != nil {
			s.Candidates = nil
			s.Status = "Snapshot failed: " + err.Error()
			return
		}
		s.Candidates = cands
		switch {
		case !c.scanner.Enabled():
			s.Status = "No API key configured"
		case len(cands) == 0:
			s.Status = "No quotes returned"
		default:
			s.Status = fmt.Sprintf("Watchlist: %d quotes", len(cands))
		}
	})
}

// ScanForValue runs the full sector scan, streaming progress into state as
// it goes. A scan failure clears the candidate table.
func (c *Controller) ScanForValue(ctx context.Context) {
	gen := c.begin(func(s *State) {
		s.View = ViewList
		s.Loading = true
		s.ScanMode = true
		s.Candidates = nil
		s.Progress = scan.Progress{Status: "Starting value scan..."}
		s.Status = "Starting value scan..."
	})

	cands, err := c.scanner.ScanForValue(ctx, func(p scan.Progress) {
		c.commit(gen, func(s *State) {
			s.Progress = p
			s.Status = p.Status
		})
	})

	c.commit(gen, func(s *State) {
		s.Loading = false
		s.ScanMode = false
		if err != nil {
			s.Candidates = nil
			s.Status = "Scan failed: " + err.Error()
			return
		}
		s.Candidates = cands
	})
}

// SelectCandidate opens the detail view for a candidate and runs the deep
// analysis. On failure the view falls back to LIST with the notice in
// Status; on success the reconciled candidate replaces its list entry.
func (c *Controller) SelectCandidate(ctx context.Context, cand domain.Candidate) {
	gen := c.begin(func(s *State) {
		s.View = ViewDetail
		s.Selected = cand
		s.Analysis = nil
		s.Loading = true
		s.ScanMode = false
		s.Status = fmt.Sprintf("Analyzing %s...", cand.Symbol)
	})

	result, err := c.analyzer.Analyze(ctx, cand.Symbol, cand.Sector, cand.Price)

	c.commit(gen, func(s *State) {
		s.Loading = false
		if err != nil {
			s.View = ViewList
			s.Analysis = nil
			if errors.Is(err, advisor.ErrNoCredential) {
				s.Status = "Deep analysis needs an API key"
			} else {
				s.Status = fmt.Sprintf("Analysis of %s failed", cand.Symbol)
			}
			return
		}
		s.Analysis = result
		s.Selected = valuation.Reconcile(cand, result)
		replaceCandidate(s.Candidates, s.Selected)
		s.Status = fmt.Sprintf("%s: %s", s.Selected.Symbol, result.Recommendation)
	})
}

// SelectTicker analyses a free-typed symbol. When the symbol is already in
// the candidate table its row is reused; otherwise a placeholder candidate
// with zero price and an unknown sector is built around the symbol.
func (c *Controller) SelectTicker(ctx context.Context, symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return
	}

	cand := domain.Candidate{Symbol: symbol, Sector: domain.SectorUnknown}
	if name := LookupName(symbol); name != "" {
		cand.Name = name
	} else {
		cand.Name = symbol
	}

	c.mu.Lock()
	for _, existing := range c.state.Candidates {
		if existing.Symbol == symbol {
			cand = existing
			break
		}
	}
	c.mu.Unlock()

	c.SelectCandidate(ctx, cand)
}

// Back returns from the detail view to the list, clearing the selection and
// its analysis. Leaving the detail view supersedes any analysis still in
// flight; in the list view Back is a no-op so it cannot disturb a running
// scan.
func (c *Controller) Back() {
	c.mu.Lock()
	if c.state.View != ViewDetail {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.state.View = ViewList
	c.state.Selected = domain.Candidate{}
	c.state.Analysis = nil
	c.state.Loading = false
	c.state.Status = ""
	c.mu.Unlock()
	c.notify()
}

func replaceCandidate(list []domain.Candidate, updated domain.Candidate) {
	for i := range list {
		if list[i].Symbol == updated.Symbol {
			list[i] = updated
			return
		}
	}
}
