package dashboard

import "testing"

func TestSuggestPrefixBeforeName(t *testing.T) {
	got := Suggest("in")
	if len(got) == 0 {
		t.Fatal("Suggest(\"in\") returned nothing")
	}
	if got[0].Symbol != "INTC" {
		t.Errorf("first suggestion = %s, want symbol-prefix match INTC", got[0].Symbol)
	}
	for _, s := range got {
		t.Logf("suggestion: %s %s", s.Symbol, s.Name)
	}
	if len(got) > maxSuggestions {
		t.Errorf("got %d suggestions, cap is %d", len(got), maxSuggestions)
	}
}

func TestSuggestCaseInsensitiveName(t *testing.T) {
	got := Suggest("berkshire")
	if len(got) != 1 || got[0].Symbol != "BRK.B" {
		t.Errorf("Suggest(\"berkshire\") = %v, want BRK.B", got)
	}
}

func TestSuggestEmptyAndMiss(t *testing.T) {
	if got := Suggest(""); got != nil {
		t.Errorf("Suggest(\"\") = %v, want nil", got)
	}
	if got := Suggest("zzzzzz"); len(got) != 0 {
		t.Errorf("Suggest(\"zzzzzz\") = %v, want none", got)
	}
}

func TestLookupName(t *testing.T) {
	if got := LookupName(" aapl "); got != "Apple" {
		t.Errorf("LookupName(\" aapl \") = %q, want Apple", got)
	}
	if got := LookupName("NOPE"); got != "" {
		t.Errorf("LookupName(\"NOPE\") = %q, want empty", got)
	}
}

func TestDefaultWatchlistInUniverse(t *testing.T) {
	for _, sym := range DefaultWatchlist() {
		if LookupName(sym) == "" {
			t.Errorf("watchlist symbol %s missing from universe", sym)
		}
	}
}
