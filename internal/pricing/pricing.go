package pricing

import (
	"fmt"
	"math"
)

// MarginStatus classifies the health of a derived profit margin.
type MarginStatus string

const (
	MarginUndefined MarginStatus = "undefined"
	MarginLoss      MarginStatus = "loss"
	MarginLow       MarginStatus = "low"
	MarginHealthy   MarginStatus = "healthy"
)

// Margins below this are flagged as low; at or above it, healthy.
const lowMarginThreshold = 20.0

// Derived carries the values computed from a pricing input. MarginPercent
// and DiscountedPrice are unrounded; rounding is applied only when the
// values are displayed so dependent fields never compound rounding error.
type Derived struct {
	MarginPercent   float64
	MarginDefined   bool
	MarginStatus    MarginStatus
	DiscountedPrice float64
	DiscountDefined bool
}

// Derive computes margin and discount figures from unit (cost) price,
// selling price and an optional discount percentage.
//
// The margin is defined only when both prices are positive. A zero or unset
// price must surface as "no margin", not 0%: a breakeven product and an
// unpriced product are different things. The discounted price is defined
// only when there is a positive selling price and a positive discount.
func Derive(unitPrice float64, sellingPrice float64, discountPercent float64) Derived {
	derived := Derived{MarginStatus: MarginUndefined}

	if unitPrice > 0 && sellingPrice > 0 {
		derived.MarginPercent = ((sellingPrice - unitPrice) / sellingPrice) * 100
		derived.MarginDefined = true
		derived.MarginStatus = classify(derived.MarginPercent)
	}

	if sellingPrice > 0 && discountPercent > 0 {
		derived.DiscountedPrice = sellingPrice - (sellingPrice * discountPercent / 100)
		derived.DiscountDefined = true
	}

	return derived
}

func classify(marginPercent float64) MarginStatus {
	switch {
	case marginPercent < 0:
		return MarginLoss
	case marginPercent < lowMarginThreshold:
		return MarginLow
	default:
		return MarginHealthy
	}
}

// MarginDisplay renders the margin at one decimal place, or an em-dash
// when undefined.
func (d Derived) MarginDisplay() string {
	if !d.MarginDefined {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", Round1(d.MarginPercent))
}

// DiscountDisplay renders the discounted price at two decimal places, or an
// em-dash when undefined.
func (d Derived) DiscountDisplay() string {
	if !d.DiscountDefined {
		return "—"
	}
	return fmt.Sprintf("%.2f", Round2(d.DiscountedPrice))
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
