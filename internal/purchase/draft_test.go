package purchase

import (
	"errors"
	"math"
	"testing"

	"catalogadmin/backend/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDraftTotals(t *testing.T) {
	d := NewDraft()
	d.AddItem(domain.PurchaseLine{ItemID: "item-1", Name: "Shirt", UnitPrice: 10, Quantity: 2})
	d.AddItem(domain.PurchaseLine{ItemID: "item-2", Name: "Belt", UnitPrice: 5, Quantity: 3})

	if !almostEqual(d.Subtotal, 35) {
		t.Fatalf("expected subtotal 35, got %v", d.Subtotal)
	}
	if !almostEqual(d.Tax, 3.5) {
		t.Fatalf("expected tax 3.5, got %v", d.Tax)
	}
	if !almostEqual(d.Total, 38.5) {
		t.Fatalf("expected total 38.5, got %v", d.Total)
	}
}

func TestDraftAdjustments(t *testing.T) {
	d := NewDraft()
	d.AddItem(domain.PurchaseLine{ItemID: "item-1", UnitPrice: 100, Quantity: 1})
	d.SetShipping(12.5)
	d.SetDiscount(20)

	// 100 + 10 tax + 12.5 shipping - 20 discount
	if !almostEqual(d.Total, 102.5) {
		t.Fatalf("expected total 102.5, got %v", d.Total)
	}
}

func TestUpdateItemQuantityRecomputes(t *testing.T) {
	d := NewDraft()
	d.AddItem(domain.PurchaseLine{ItemID: "item-1", UnitPrice: 10, Quantity: 2})

	if err := d.UpdateItemQuantity("item-1", 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if !almostEqual(d.Subtotal, 50) {
		t.Fatalf("expected subtotal 50 after update, got %v", d.Subtotal)
	}

	if err := d.UpdateItemPrice("item-1", 4); err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	if !almostEqual(d.Subtotal, 20) {
		t.Fatalf("expected subtotal 20 after price update, got %v", d.Subtotal)
	}
}

func TestUpdateMissingItemLeavesListUnchanged(t *testing.T) {
	d := NewDraft()
	d.AddItem(domain.PurchaseLine{ItemID: "item-1", UnitPrice: 10, Quantity: 2})

	err := d.UpdateItemQuantity("missing", 9)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	items := d.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected item list unchanged, got %v", items)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	d := NewDraft()
	d.AddItem(domain.PurchaseLine{ItemID: "item-1", UnitPrice: 10, Quantity: 1})
	d.RemoveItem("item-1")
	d.RemoveItem("item-1")
	if len(d.Items()) != 0 || !almostEqual(d.Total, 0) {
		t.Fatalf("expected empty draft after removal, total %v", d.Total)
	}
}

func TestBalanceDueOnlyWhenPartial(t *testing.T) {
	d := NewDraft()
	d.AddItem(domain.PurchaseLine{ItemID: "item-1", UnitPrice: 100, Quantity: 1})

	partial := domain.PaymentPartial
	paid := 40.0
	d.SetPayment(PaymentUpdate{Status: &partial, PaidAmount: &paid})

	balance, ok := d.BalanceDue()
	if !ok || !almostEqual(balance, 70) {
		t.Fatalf("expected balance due 70, got %v (ok=%t)", balance, ok)
	}

	full := domain.PaymentPaid
	d.SetPayment(PaymentUpdate{Status: &full})
	if _, ok := d.BalanceDue(); ok {
		t.Fatalf("balance due must not render once status leaves PARTIAL")
	}
}

func TestWizardGuards(t *testing.T) {
	d := NewDraft()

	if err := d.Next(); !errors.Is(err, ErrSupplierRequired) {
		t.Fatalf("expected supplier guard, got %v", err)
	}

	d.SelectSupplier("sup-1")
	if err := d.Next(); err != nil {
		t.Fatalf("step to items failed: %v", err)
	}
	if err := d.Next(); !errors.Is(err, ErrItemsRequired) {
		t.Fatalf("expected items guard, got %v", err)
	}

	d.AddItem(domain.PurchaseLine{ItemID: "item-1", UnitPrice: 10, Quantity: 1})
	if err := d.Next(); err != nil {
		t.Fatalf("step to payment failed: %v", err)
	}
	if err := d.Next(); err != nil {
		t.Fatalf("step to review failed: %v", err)
	}
	if d.Step() != StepReview {
		t.Fatalf("expected review step, got %s", d.Step())
	}

	// Next at the last step stays put.
	if err := d.Next(); err != nil || d.Step() != StepReview {
		t.Fatalf("expected to remain at review, got %s (%v)", d.Step(), err)
	}

	d.Back()
	if d.Step() != StepPayment {
		t.Fatalf("expected payment step after back, got %s", d.Step())
	}
}

func TestConfirmOnlyFromReview(t *testing.T) {
	d := NewDraft()
	d.SelectSupplier("sup-1")
	d.AddItem(domain.PurchaseLine{ItemID: "item-1", UnitPrice: 10, Quantity: 2})

	if _, err := d.Confirm(); !errors.Is(err, ErrNotAtReview) {
		t.Fatalf("expected confirm to be rejected before review, got %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := d.Next(); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
	}

	req, err := d.Confirm()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if req.SupplierID != "sup-1" || len(req.Items) != 1 {
		t.Fatalf("unexpected confirm payload: %+v", req)
	}
}

func TestBackFromFirstStepIsNoop(t *testing.T) {
	d := NewDraft()
	d.Back()
	if d.Step() != StepSupplier {
		t.Fatalf("expected to stay at supplier selection, got %s", d.Step())
	}
}
