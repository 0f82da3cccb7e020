package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"valuescan/internal/advisor"
	"valuescan/internal/domain"
)

// Sectors is the fixed ordered list of market sectors a value scan walks.
// The order is deterministic: results from later sectors are appended after
// earlier ones before the final sort.
var Sectors = []string{
	"Technology",
	"Healthcare",
	"Financial Services",
	"Energy",
	"Industrials",
}

// Progress is one incremental progress report from a running scan.
type Progress struct {
	Percent int
	Status  string
}

// Scanner runs sector scans and watch-list snapshots against the query
// service. A nil service means no credential is configured; scans then
// return empty results without attempting any call.
type Scanner struct {
	service   advisor.Service
	perSector int
	topN      int
	logger    *slog.Logger
}

// NewScanner creates a Scanner. perSector and topN fall back to 4 and 20
// when not positive.
func NewScanner(service advisor.Service, perSector, topN int, logger *slog.Logger) *Scanner {
	if perSector <= 0 {
		perSector = 4
	}
	if topN <= 0 {
		topN = 20
	}
	return &Scanner{
		service:   service,
		perSector: perSector,
		topN:      topN,
		logger:    logger,
	}
}

// Enabled reports whether a query service is configured. Scans against a
// disabled scanner return empty results without error.
func (s *Scanner) Enabled() bool {
	return s.service != nil
}

// ScanForValue walks the fixed sector list sequentially, one query per
// sector, and returns the accumulated candidates sorted by conviction score
// descending (stable, so ties keep their across-sector append order) and
// truncated to the configured top N.
//
// Before each sector query the report callback receives the loop progress
// (0, 20, 40, 60, 80 for the five sectors) and an "Analyzing ..." status;
// after the final sort it receives 100 with a completion message. report may
// be nil.
//
// A query failure aborts the whole scan and is returned to the caller; no
// partial result accompanies an error.
func (s *Scanner) ScanForValue(ctx context.Context, report func(Progress)) ([]domain.Candidate, error) {
	if report == nil {
		report = func(Progress) {}
	}

	if s.service == nil {
		report(Progress{Percent: 100, Status: "No API key configured"})
		return nil, nil
	}

	var acc []domain.Candidate
	total := len(Sectors)

	for i, sector := range Sectors {
		pct := int(math.Round(float64(i) / float64(total) * 100))
		report(Progress{Percent: pct, Status: fmt.Sprintf("Analyzing %s...", sector)})

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := s.service.GroundedText(ctx, SectorScanPrompt(sector, s.perSector))
		if err != nil {
			// An empty response degrades to a skipped sector; anything
			// else fails the scan.
			if errors.Is(err, advisor.ErrEmptyResponse) {
				s.logger.Warn("sector returned no content", "sector", sector)
				continue
			}
			return nil, fmt.Errorf("scanning %s sector: %w", sector, err)
		}

		parsed := ParseCandidates(res.Text)
		s.logger.Info("sector scanned",
			"sector", sector,
			"candidates", len(parsed),
			"progress", pct)
		acc = append(acc, parsed...)
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(acc, func(i, j int) bool {
		return acc[i].Score > acc[j].Score
	})
	if len(acc) > s.topN {
		acc = acc[:s.topN]
	}

	report(Progress{Percent: 100, Status: fmt.Sprintf("Scan complete: %d candidates", len(acc))})
	return acc, nil
}

// Snapshot refreshes the fixed watch-list with one grounded query and
// returns the parsed candidates in response order.
func (s *Scanner) Snapshot(ctx context.Context, symbols []string) ([]domain.Candidate, error) {
	if s.service == nil {
		return nil, nil
	}

	res, err := s.service.GroundedText(ctx, SnapshotPrompt(symbols))
	if err != nil {
		return nil, fmt.Errorf("snapshot query: %w", err)
	}

	parsed := ParseCandidates(res.Text)
	s.logger.Info("snapshot loaded", "requested", len(symbols), "parsed", len(parsed))
	return parsed, nil
}
