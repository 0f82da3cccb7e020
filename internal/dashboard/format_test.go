package dashboard

import "testing"

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(34.5); got != "$34.50" {
		t.Errorf("FormatPrice(34.5) = %q", got)
	}
	if got := FormatPrice(0); got != "-" {
		t.Errorf("FormatPrice(0) = %q", got)
	}
}

func TestFormatChange(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.25, "+1.25%"},
		{-0.5, "-0.50%"},
		{0, "0.00%"},
	}
	for _, tc := range cases {
		if got := FormatChange(tc.in); got != tc.want {
			t.Errorf("FormatChange(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{25.12, "+25.1%"},
		{-8.4, "-8.4%"},
		{142.7, "+143%"},
	}
	for _, tc := range cases {
		if got := FormatSigned(tc.in); got != tc.want {
			t.Errorf("FormatSigned(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("a longer reason", 8); got != "a longe…" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("Truncate() = %q", got)
	}
}
