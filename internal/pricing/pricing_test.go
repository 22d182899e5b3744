package pricing

import (
	"math"
	"testing"
)

func TestDeriveUnsetUnitPrice(t *testing.T) {
	d := Derive(0, 100, 10)
	if d.MarginDefined {
		t.Fatalf("expected undefined margin when unit price is zero")
	}
	if d.MarginStatus != MarginUndefined {
		t.Fatalf("expected undefined status, got %s", d.MarginStatus)
	}
	if !d.DiscountDefined || math.Abs(d.DiscountedPrice-90) > 1e-9 {
		t.Fatalf("expected discounted price 90, got %v (defined=%t)", d.DiscountedPrice, d.DiscountDefined)
	}
	if got := d.MarginDisplay(); got != "—" {
		t.Fatalf("undefined margin must render as em-dash, got %q", got)
	}
}

func TestDeriveHealthyMarginNoDiscount(t *testing.T) {
	d := Derive(50, 100, 0)
	if !d.MarginDefined || math.Abs(d.MarginPercent-50) > 1e-9 {
		t.Fatalf("expected margin 50, got %v", d.MarginPercent)
	}
	if d.MarginStatus != MarginHealthy {
		t.Fatalf("expected healthy margin, got %s", d.MarginStatus)
	}
	if d.DiscountDefined {
		t.Fatalf("expected undefined discounted price when discount is zero")
	}
	if got := d.DiscountDisplay(); got != "—" {
		t.Fatalf("undefined discount must render as em-dash, got %q", got)
	}
}

func TestDeriveClassification(t *testing.T) {
	cases := []struct {
		name    string
		unit    float64
		selling float64
		margin  float64
		status  MarginStatus
	}{
		{"low", 90, 100, 10, MarginLow},
		{"loss", 120, 100, -20, MarginLoss},
		{"boundary healthy", 80, 100, 20, MarginHealthy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Derive(tc.unit, tc.selling, 0)
			if !d.MarginDefined || math.Abs(d.MarginPercent-tc.margin) > 1e-9 {
				t.Fatalf("expected margin %v, got %v", tc.margin, d.MarginPercent)
			}
			if d.MarginStatus != tc.status {
				t.Fatalf("expected status %s, got %s", tc.status, d.MarginStatus)
			}
		})
	}
}

func TestDiscountNotDerivedFromRoundedMargin(t *testing.T) {
	// One-third margin rounds to 33.3% for display, but the discounted
	// price must come from the exact selling price, not the rounded margin.
	d := Derive(66.67, 100.005, 15)
	want := 100.005 - (100.005 * 15 / 100)
	if math.Abs(d.DiscountedPrice-want) > 1e-9 {
		t.Fatalf("expected exact discounted price %v, got %v", want, d.DiscountedPrice)
	}
	if got := d.DiscountDisplay(); got != "85.00" {
		t.Fatalf("expected display 85.00, got %q", got)
	}
}

func TestMarginDisplayRounding(t *testing.T) {
	d := Derive(33.3333, 100, 0)
	if got := d.MarginDisplay(); got != "66.7%" {
		t.Fatalf("expected 66.7%%, got %q", got)
	}
}
