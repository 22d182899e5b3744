package variant

import (
	"reflect"
	"testing"

	"catalogadmin/backend/internal/domain"
)

func buildMatrix(colors []string, sizes []string) *Matrix {
	m := NewMatrix()
	for _, c := range colors {
		m.ToggleColor(c)
	}
	for _, s := range sizes {
		m.ToggleSize(s)
	}
	return m
}

func TestFlattenCrossProductOrder(t *testing.T) {
	m := buildMatrix([]string{"RED", "BLUE"}, []string{"S", "M", "L"})
	m.SetQuantity("RED", "S", "3")
	m.SetQuantity("RED", "L", "1")
	m.SetQuantity("BLUE", "M", "5")
	m.SetQuantity("BLUE", "L", "0")

	got := m.Flatten()
	want := []domain.ProductVariant{
		{Color: "RED", Size: "S", Quantity: 3},
		{Color: "RED", Size: "L", Quantity: 1},
		{Color: "BLUE", Size: "M", Quantity: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("flatten mismatch: got %v want %v", got, want)
	}
}

func TestGrandTotalMatchesFlatten(t *testing.T) {
	m := buildMatrix([]string{"BLACK", "WHITE", "NAVY"}, []string{"28", "30"})
	m.SetQuantity("BLACK", "28", "4")
	m.SetQuantity("WHITE", "30", "7")
	m.SetQuantity("NAVY", "28", "2")
	m.SetQuantity("NAVY", "30", "abc")

	sum := 0
	for _, v := range m.Flatten() {
		sum += v.Quantity
	}
	if got := m.GrandTotal(); got != sum {
		t.Fatalf("grand total %d does not match flatten sum %d", got, sum)
	}
	if got := m.GrandTotal(); got != 13 {
		t.Fatalf("expected grand total 13, got %d", got)
	}
}

func TestRowAndColumnTotals(t *testing.T) {
	m := buildMatrix([]string{"RED", "BLUE"}, []string{"S", "M"})
	m.SetQuantity("RED", "S", "2")
	m.SetQuantity("RED", "M", "3")
	m.SetQuantity("BLUE", "S", "4")

	if got := m.RowTotal("RED"); got != 5 {
		t.Fatalf("expected RED row total 5, got %d", got)
	}
	if got := m.ColumnTotal("S"); got != 6 {
		t.Fatalf("expected S column total 6, got %d", got)
	}
	if got := m.ColumnTotal("M"); got != 3 {
		t.Fatalf("expected M column total 3, got %d", got)
	}
}

func TestMalformedInputCountsAsZero(t *testing.T) {
	m := buildMatrix([]string{"RED"}, []string{"S", "M", "L", "XL"})
	m.SetQuantity("RED", "S", "-")
	m.SetQuantity("RED", "M", "")
	m.SetQuantity("RED", "L", "-3")
	m.SetQuantity("RED", "XL", " 2 ")

	if got := m.RowTotal("RED"); got != 2 {
		t.Fatalf("expected row total 2, got %d", got)
	}
	if got := len(m.Flatten()); got != 1 {
		t.Fatalf("expected single flattened variant, got %d", got)
	}
}

func TestDeselectedAxisExcludedFromTotals(t *testing.T) {
	m := buildMatrix([]string{"RED", "BLUE"}, []string{"S"})
	m.SetQuantity("RED", "S", "3")
	m.SetQuantity("BLUE", "S", "4")

	m.ToggleColor("BLUE")
	if got := m.GrandTotal(); got != 3 {
		t.Fatalf("expected total 3 after deselecting BLUE, got %d", got)
	}
	if got := m.ColumnTotal("S"); got != 3 {
		t.Fatalf("expected column total 3 after deselecting BLUE, got %d", got)
	}
}

func TestToggleOffAndOnPreservesQuantities(t *testing.T) {
	m := buildMatrix([]string{"RED"}, []string{"S", "M"})
	m.SetQuantity("RED", "S", "6")
	m.SetQuantity("RED", "M", "7")

	m.ToggleColor("RED")
	if got := m.GrandTotal(); got != 0 {
		t.Fatalf("expected total 0 while RED deselected, got %d", got)
	}

	m.ToggleColor("RED")
	if got := m.RowTotal("RED"); got != 13 {
		t.Fatalf("expected quantities preserved across toggle, got row total %d", got)
	}
	if got := m.Quantity("RED", "S"); got != "6" {
		t.Fatalf("expected raw cell value preserved, got %q", got)
	}
}

func TestPopulateFromRoundTrip(t *testing.T) {
	m := buildMatrix([]string{"GREEN", "PINK"}, []string{"M", "L"})
	m.SetQuantity("GREEN", "M", "2")
	m.SetQuantity("GREEN", "L", "9")
	m.SetQuantity("PINK", "L", "1")

	flattened := m.Flatten()

	restored := NewMatrix()
	restored.PopulateFrom(flattened)

	if !reflect.DeepEqual(restored.Flatten(), flattened) {
		t.Fatalf("round trip mismatch: got %v want %v", restored.Flatten(), flattened)
	}
	if !reflect.DeepEqual(restored.Colors(), []string{"GREEN", "PINK"}) {
		t.Fatalf("expected first-seen color order, got %v", restored.Colors())
	}
	if !reflect.DeepEqual(restored.Sizes(), []string{"M", "L"}) {
		t.Fatalf("expected first-seen size order, got %v", restored.Sizes())
	}
}

func TestToggleIsIdempotentPair(t *testing.T) {
	m := NewMatrix()
	m.ToggleSize("XL")
	if !m.HasSize("XL") {
		t.Fatalf("expected XL selected after toggle")
	}
	m.ToggleSize("XL")
	if m.HasSize("XL") {
		t.Fatalf("expected XL deselected after second toggle")
	}
}
