package scan

import (
	"strings"
	"testing"

	"valuescan/internal/domain"
)

func TestParseCandidatesWellFormed(t *testing.T) {
	raw := `AAPL, "Apple Inc." , Technology, 190.50, 1.25, 2.9T, 64, Services growth underpriced`

	got := ParseCandidates(raw)
	if len(got) != 1 {
		t.Fatalf("ParseCandidates returned %d candidates, want 1", len(got))
	}

	want := domain.Candidate{
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Sector:        "Technology",
		Price:         190.50,
		ChangePercent: 1.25,
		MarketCap:     "2.9T",
		Score:         64,
		Reason:        "Services growth underpriced",
	}
	if got[0] != want {
		t.Errorf("candidate = %+v, want %+v", got[0], want)
	}
}

func TestParseCandidatesMalformedLines(t *testing.T) {
	raw := strings.Join([]string{
		"Here are some undervalued stocks:",      // no separator
		"X,Y,Z",                                  // too few fields
		"BAD,Broken Co,Energy,not-a-price,1.0,2B", // price unparseable
		"OK,Works Co,Energy,12.5,junk,2B",         // change unparseable -> 0
		"",
		"FINE,Fine Co,Energy,9.75,-0.5,800M",
	}, "\n")

	got := ParseCandidates(raw)
	if len(got) != 2 {
		t.Fatalf("ParseCandidates returned %d candidates, want 2", len(got))
	}

	if got[0].Symbol != "OK" || got[0].ChangePercent != 0 {
		t.Errorf("first candidate = %+v, want OK with ChangePercent 0", got[0])
	}
	if got[1].Symbol != "FINE" || got[1].Price != 9.75 {
		t.Errorf("second candidate = %+v, want FINE at 9.75", got[1])
	}
}

func TestParseCandidatesScoreDefaults(t *testing.T) {
	// Six fields, no score column at all.
	got := ParseCandidates("X,Y,Z,10.5,1.2,1T")
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Score != 0 || got[0].Reason != "" {
		t.Errorf("candidate = %+v, want Score 0 and empty Reason", got[0])
	}
}

// Older responses carried a free-text reason in the score column; that text
// must survive as the reason. Deliberate compatibility behavior, not a bug.
func TestParseCandidatesLegacyReasonFallback(t *testing.T) {
	got := ParseCandidates("X,Y,Z,10.5,1.2,1T,Good pick")
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Score != 0 {
		t.Errorf("Score = %d, want 0", got[0].Score)
	}
	if got[0].Reason != "Good pick" {
		t.Errorf("Reason = %q, want %q", got[0].Reason, "Good pick")
	}
}

func TestParseCandidatesScoreAndReason(t *testing.T) {
	got := ParseCandidates("X,Y,Z,10.5,1.2,1T,87,Strong fundamentals")
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Score != 87 {
		t.Errorf("Score = %d, want 87", got[0].Score)
	}
	if got[0].Reason != "Strong fundamentals" {
		t.Errorf("Reason = %q, want %q", got[0].Reason, "Strong fundamentals")
	}
}

func TestParseCandidatesReasonKeepsCommas(t *testing.T) {
	got := ParseCandidates("X,Y,Z,10.5,1.2,1T,55,Cheap, unloved, and profitable")
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Reason != "Cheap, unloved, and profitable" {
		t.Errorf("Reason = %q, want comma-joined tail", got[0].Reason)
	}
}

func TestParseCandidatesGarbageInput(t *testing.T) {
	raw := "\x00\xff,,,,,,\n,,,,,\n~~~~\n{\"json\": true}"
	got := ParseCandidates(raw)
	if len(got) != 0 {
		t.Errorf("garbage input produced %d candidates, want 0", len(got))
	}
}

func TestParseCandidatesOrderPreserved(t *testing.T) {
	raw := "C,Third,S,3,0,1B\nA,First,S,1,0,1B\nB,Second,S,2,0,1B"
	got := ParseCandidates(raw)
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3", len(got))
	}
	if got[0].Symbol != "C" || got[1].Symbol != "A" || got[2].Symbol != "B" {
		t.Errorf("order = %s,%s,%s, want C,A,B", got[0].Symbol, got[1].Symbol, got[2].Symbol)
	}
}

func TestParseCandidatesRoundTrip(t *testing.T) {
	orig := domain.Candidate{
		Symbol:        "MU",
		Name:          "Micron Technology",
		Sector:        "Technology",
		Price:         88.4,
		ChangePercent: -0.7,
		MarketCap:     "98B",
		Score:         69,
		Reason:        "Memory cycle bottoming",
	}

	got := ParseCandidates(orig.Record())
	if len(got) != 1 {
		t.Fatalf("round trip produced %d candidates, want 1", len(got))
	}
	if got[0] != orig {
		t.Errorf("round trip candidate = %+v, want %+v", got[0], orig)
	}
}
