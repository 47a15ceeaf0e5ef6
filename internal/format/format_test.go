package format

import (
	"testing"
	"time"
)

func TestFmtDate(t *testing.T) {
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := FmtDate(d); got != "Jun 1, 2025" {
		t.Fatalf("FmtDate = %q", got)
	}
	if got := ISODate(d); got != "2025-06-01" {
		t.Fatalf("ISODate = %q", got)
	}
	if FmtDate(time.Time{}) != "" || ISODate(time.Time{}) != "" {
		t.Fatalf("zero time should render empty")
	}
}

func TestCount(t *testing.T) {
	cases := map[int]string{0: "0", 7: "7", 412: "412", 1000: "1,000", 12345: "12,345", -1234567: "-1,234,567"}
	for n, want := range cases {
		if got := Count(n); got != want {
			t.Errorf("Count(%d) = %q, want %q", n, got, want)
		}
	}
}
