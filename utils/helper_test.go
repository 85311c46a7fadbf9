package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDisplayAmount(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"-3.335", "-3.34"},
		{"0", "0"},
	}
	for _, tc := range cases {
		d, _ := decimal.NewFromString(tc.in)
		if got := DisplayAmount(d).String(); got != tc.expected {
			t.Fatalf("DisplayAmount(%s) expected %s, got %s", tc.in, tc.expected, got)
		}
	}
}

func TestGenerateSku(t *testing.T) {
	sku := GenerateSku()
	if len(sku) != 8 {
		t.Fatalf("expected 8-char SKU, got %q", sku)
	}
	for _, r := range sku {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			t.Fatalf("unexpected SKU rune %q in %q", r, sku)
		}
	}
	if GenerateSku() == sku {
		t.Fatal("consecutive SKUs should not collide")
	}
}

func TestTruncateToDate(t *testing.T) {
	in := time.Date(2025, 3, 14, 15, 9, 26, 535, time.FixedZone("X", 3600))
	out := TruncateToDate(in)
	if out.Hour() != 0 || out.Minute() != 0 || out.Second() != 0 {
		t.Fatalf("time-of-day not dropped: %v", out)
	}
	if out.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", out.Location())
	}
}

func TestNormalizeSkipLimit(t *testing.T) {
	if s, l := NormalizeSkipLimit(-5, 0); s != 0 || l != 100 {
		t.Fatalf("expected (0,100), got (%d,%d)", s, l)
	}
	if s, l := NormalizeSkipLimit(10, 50); s != 10 || l != 50 {
		t.Fatalf("expected (10,50), got (%d,%d)", s, l)
	}
	if _, l := NormalizeSkipLimit(0, 9999); l != 100 {
		t.Fatalf("oversized limit must clamp, got %d", l)
	}
}
