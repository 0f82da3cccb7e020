package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"valuescan/internal/advisor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScanForValueSortsAndTruncates(t *testing.T) {
	sim := advisor.NewSimulator()
	// Five sectors, each answering one line with a distinct score.
	scores := []int{10, 90, 50, 70, 30}
	for i, score := range scores {
		line := fmt.Sprintf("S%d,Company %d,Sector,10.0,0.0,1B,%d,reason %d", i, i, score, i)
		sim.QueueGrounded(line, nil, nil)
	}

	sc := NewScanner(sim, 4, 3, testLogger())
	got, err := sc.ScanForValue(context.Background(), nil)
	if err != nil {
		t.Fatalf("ScanForValue returned error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3 (truncated)", len(got))
	}
	if got[0].Score != 90 || got[1].Score != 70 || got[2].Score != 50 {
		t.Errorf("scores = %d,%d,%d, want 90,70,50", got[0].Score, got[1].Score, got[2].Score)
	}
}

func TestScanForValueStableTies(t *testing.T) {
	sim := advisor.NewSimulator()
	// All candidates share the same score; across-sector append order must
	// survive the sort.
	for i := 0; i < len(Sectors); i++ {
		line := fmt.Sprintf("T%d,Tied %d,Sector,5.0,0.0,1B,50,tied", i, i)
		sim.QueueGrounded(line, nil, nil)
	}

	sc := NewScanner(sim, 4, 20, testLogger())
	got, err := sc.ScanForValue(context.Background(), nil)
	if err != nil {
		t.Fatalf("ScanForValue returned error: %v", err)
	}
	if len(got) != len(Sectors) {
		t.Fatalf("got %d candidates, want %d", len(got), len(Sectors))
	}
	for i, c := range got {
		want := fmt.Sprintf("T%d", i)
		if c.Symbol != want {
			t.Errorf("position %d holds %s, want %s", i, c.Symbol, want)
		}
	}
}

func TestScanForValueProgressSequence(t *testing.T) {
	sim := advisor.NewSimulator()
	for range Sectors {
		sim.QueueGrounded("A,B,C,1.0,0.0,1B", nil, nil)
	}

	var percents []int
	var statuses []string
	sc := NewScanner(sim, 4, 20, testLogger())
	_, err := sc.ScanForValue(context.Background(), func(p Progress) {
		percents = append(percents, p.Percent)
		statuses = append(statuses, p.Status)
	})
	if err != nil {
		t.Fatalf("ScanForValue returned error: %v", err)
	}

	want := []int{0, 20, 40, 60, 80, 100}
	if len(percents) != len(want) {
		t.Fatalf("got %d progress reports (%v), want %d", len(percents), percents, len(want))
	}
	for i := range want {
		if percents[i] != want[i] {
			t.Errorf("progress[%d] = %d, want %d", i, percents[i], want[i])
		}
	}
	if !strings.HasPrefix(statuses[0], "Analyzing ") {
		t.Errorf("first status = %q, want Analyzing prefix", statuses[0])
	}
}

func TestScanForValueQueryFailureAborts(t *testing.T) {
	sim := advisor.NewSimulator()
	sim.QueueGrounded("A,B,C,1.0,0.0,1B,80,ok", nil, nil)
	sim.QueueGrounded("", nil, errors.New("service unavailable"))

	sc := NewScanner(sim, 4, 20, testLogger())
	got, err := sc.ScanForValue(context.Background(), nil)
	if err == nil {
		t.Fatal("ScanForValue should fail when a sector query fails")
	}
	if got != nil {
		t.Errorf("failed scan returned %d candidates, want nil", len(got))
	}
}

func TestScanForValueEmptySectorSkipped(t *testing.T) {
	sim := advisor.NewSimulator()
	for i := range Sectors {
		if i == 2 {
			sim.QueueGrounded("", nil, advisor.ErrEmptyResponse)
			continue
		}
		sim.QueueGrounded(fmt.Sprintf("S%d,C,S,1.0,0.0,1B,10,r", i), nil, nil)
	}

	sc := NewScanner(sim, 4, 20, testLogger())
	got, err := sc.ScanForValue(context.Background(), nil)
	if err != nil {
		t.Fatalf("ScanForValue returned error: %v", err)
	}
	if len(got) != len(Sectors)-1 {
		t.Errorf("got %d candidates, want %d (empty sector skipped)", len(got), len(Sectors)-1)
	}
}

func TestScanForValueNoService(t *testing.T) {
	sc := NewScanner(nil, 4, 20, testLogger())
	got, err := sc.ScanForValue(context.Background(), nil)
	if err != nil {
		t.Fatalf("ScanForValue without service returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ScanForValue without service returned %d candidates, want 0", len(got))
	}
}

func TestSnapshot(t *testing.T) {
	sim := advisor.NewSimulator()
	sim.QueueGrounded("AAPL,Apple Inc,Technology,190.5,1.2,2.9T\nMSFT,Microsoft,Technology,410.0,0.4,3.1T", nil, nil)

	sc := NewScanner(sim, 4, 20, testLogger())
	got, err := sc.Snapshot(context.Background(), []string{"AAPL", "MSFT"})
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Symbol != "AAPL" || got[1].Symbol != "MSFT" {
		t.Errorf("symbols = %s,%s, want AAPL,MSFT", got[0].Symbol, got[1].Symbol)
	}
	if got[0].Score != 0 {
		t.Errorf("snapshot candidate score = %d, want 0", got[0].Score)
	}

	if len(sim.GroundedCalls) != 1 || !strings.Contains(sim.GroundedCalls[0], "AAPL, MSFT") {
		t.Errorf("snapshot prompt missing symbol list: %q", sim.GroundedCalls)
	}
}

func TestSectorScanPromptMentionsFormat(t *testing.T) {
	p := SectorScanPrompt("Energy", 4)
	for _, want := range []string{"Energy", "up to 4", "Score", "Reason"} {
		if !strings.Contains(p, want) {
			t.Errorf("SectorScanPrompt missing %q", want)
		}
	}
}
