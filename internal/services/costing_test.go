package services

import (
	"math"
	"testing"
)

func TestAreaPanelBatch(t *testing.T) {
	// 100cm x 50cm panel, two of them, painted both sides.
	got := Area(1000, 500, 2, 2)
	if got != 2.0 {
		t.Fatalf("expected 2.0 m2 got %v", got)
	}
}

func TestAreaZeroDimension(t *testing.T) {
	if got := Area(0, 500, 2, 2); got != 0 {
		t.Fatalf("zero length must give zero area, got %v", got)
	}
	if got := Area(1000, 0, 2, 2); got != 0 {
		t.Fatalf("zero width must give zero area, got %v", got)
	}
}

func TestAreaDefaults(t *testing.T) {
	// Quantity below 1 counts as 1; unknown side counts fall back to 2.
	if got, want := Area(1000, 500, 0, 1), Area(1000, 500, 1, 1); got != want {
		t.Fatalf("quantity 0 should equal quantity 1: %v != %v", got, want)
	}
	if got, want := Area(1000, 500, 1, 0), Area(1000, 500, 1, 2); got != want {
		t.Fatalf("sides 0 should equal sides 2: %v != %v", got, want)
	}
	if got, want := Area(1000, 500, 1, 3), Area(1000, 500, 1, 2); got != want {
		t.Fatalf("sides 3 should equal sides 2: %v != %v", got, want)
	}
}

func TestAreaStrictlyIncreasing(t *testing.T) {
	base := Area(1000, 500, 2, 1)
	cases := map[string]float64{
		"longer":    Area(1100, 500, 2, 1),
		"wider":     Area(1000, 600, 2, 1),
		"more":      Area(1000, 500, 3, 1),
		"two_sides": Area(1000, 500, 2, 2),
	}
	for name, v := range cases {
		if v <= base {
			t.Errorf("%s: expected area above %v, got %v", name, base, v)
		}
	}
}

func TestAreaRoundedToFourDecimals(t *testing.T) {
	// 333x333 single panel one side: 0.110889 exactly, stored as 0.1109.
	if got := Area(333, 333, 1, 1); got != 0.1109 {
		t.Fatalf("expected 0.1109 got %v", got)
	}
}

func TestItemTotal(t *testing.T) {
	if got := ItemTotal(2.0, 120); got != 240.00 {
		t.Fatalf("expected 240.00 got %v", got)
	}
	// Half cents round away from zero.
	if got := ItemTotal(0.125, 1); got != 0.13 {
		t.Fatalf("expected 0.13 got %v", got)
	}
}

func TestLaborCost(t *testing.T) {
	if got := LaborCost(3.5, 50); got != 175.00 {
		t.Fatalf("expected 175.00 got %v", got)
	}
	if got := LaborCost(2, 0); got != 0 {
		t.Fatalf("zero rate should cost 0, got %v", got)
	}
}

func TestPurchaseTotal(t *testing.T) {
	if got := PurchaseTotal(2.5, 39.99); got != 99.98 {
		t.Fatalf("expected 99.98 got %v", got)
	}
}

func TestRoundingDigits(t *testing.T) {
	for _, v := range []float64{0.1, 1.23456, 99.999, 1234.5678} {
		r2 := Round2(v)
		if math.Abs(r2*100-math.Round(r2*100)) > 1e-9 {
			t.Errorf("Round2(%v) = %v has more than 2 decimals", v, r2)
		}
		r4 := Round4(v)
		if math.Abs(r4*10000-math.Round(r4*10000)) > 1e-9 {
			t.Errorf("Round4(%v) = %v has more than 4 decimals", v, r4)
		}
	}
}
