package main

import (
	"testing"
	"unicode/utf8"
)

func TestPadOrTrunc(t *testing.T) {
	if got := padOrTrunc("abc", 6); got != "abc   " {
		t.Errorf("padOrTrunc(\"abc\", 6) = %q", got)
	}
	if got := padOrTrunc("abcdef", 4); got != "abc…" {
		t.Errorf("padOrTrunc(\"abcdef\", 4) = %q", got)
	}
}

func TestPadOrTruncMultibyte(t *testing.T) {
	// Truncating inside a multibyte rune must never yield invalid UTF-8.
	s := "Analyzing Nestlé and Crédit Agricole…"
	for width := 1; width <= 10; width++ {
		got := padOrTrunc(s, width)
		if !utf8.ValidString(got) {
			t.Errorf("padOrTrunc(%q, %d) = %q, invalid UTF-8", s, width, got)
		}
		if n := len([]rune(got)); n != width {
			t.Errorf("padOrTrunc(%q, %d) has %d runes", s, width, n)
		}
	}
}
