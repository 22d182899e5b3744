package purchase

import (
	"errors"

	"catalogadmin/backend/internal/domain"
)

// TaxRate is the fixed purchase tax applied to the item subtotal.
const TaxRate = 0.10

var (
	ErrSupplierRequired = errors.New("supplier must be selected")
	ErrItemsRequired    = errors.New("at least one item is required")
	ErrNotAtReview      = errors.New("purchase can only be confirmed from the review step")
	ErrItemNotFound     = errors.New("line item not found")
)

// Draft accumulates a purchase order as the admin walks the order wizard.
// Totals are recomputed from scratch after every mutation; nothing is cached
// across edits. The whole draft lives in memory for one form session and is
// discarded on cancel.
type Draft struct {
	SupplierID string
	Shipping   float64
	Discount   float64
	Notes      string

	items   []domain.PurchaseLine
	payment domain.PurchasePayment

	Subtotal float64
	Tax      float64
	Total    float64

	step Step
}

func NewDraft() *Draft {
	d := &Draft{
		payment: domain.PurchasePayment{
			Method: domain.PayCash,
			Status: domain.PaymentPending,
		},
		step: StepSupplier,
	}
	d.recompute()
	return d
}

// SelectSupplier records the chosen supplier, required to leave the first step.
func (d *Draft) SelectSupplier(supplierID string) {
	d.SupplierID = supplierID
}

// AddItem appends a line with its total computed at insertion time.
func (d *Draft) AddItem(item domain.PurchaseLine) {
	item.Total = item.UnitPrice * float64(item.Quantity)
	d.items = append(d.items, item)
	d.recompute()
}

// UpdateItemQuantity replaces the quantity of the identified line and
// recomputes its total. Returns ErrItemNotFound if the id is absent; the
// list is left unchanged in that case.
func (d *Draft) UpdateItemQuantity(itemID string, quantity int) error {
	for i := range d.items {
		if d.items[i].ItemID == itemID {
			d.items[i].Quantity = quantity
			d.items[i].Total = d.items[i].UnitPrice * float64(quantity)
			d.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// UpdateItemPrice replaces the unit price of the identified line and
// recomputes its total against the existing quantity.
func (d *Draft) UpdateItemPrice(itemID string, price float64) error {
	for i := range d.items {
		if d.items[i].ItemID == itemID {
			d.items[i].UnitPrice = price
			d.items[i].Total = price * float64(d.items[i].Quantity)
			d.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem deletes the identified line. Removing an absent id is a no-op.
func (d *Draft) RemoveItem(itemID string) {
	for i := range d.items {
		if d.items[i].ItemID == itemID {
			d.items = append(d.items[:i], d.items[i+1:]...)
			d.recompute()
			return
		}
	}
}

// SetShipping records the manual shipping adjustment.
func (d *Draft) SetShipping(amount float64) {
	d.Shipping = amount
	d.recompute()
}

// SetDiscount records the manual discount adjustment.
func (d *Draft) SetDiscount(amount float64) {
	d.Discount = amount
	d.recompute()
}

func (d *Draft) Items() []domain.PurchaseLine {
	return append([]domain.PurchaseLine(nil), d.items...)
}

func (d *Draft) recompute() {
	subtotal := 0.0
	for _, item := range d.items {
		subtotal += item.Total
	}
	d.Subtotal = subtotal
	d.Tax = subtotal * TaxRate
	d.Total = subtotal + d.Tax + d.Shipping - d.Discount
}

// PaymentUpdate carries the fields of a partial payment merge; nil fields
// are left untouched.
type PaymentUpdate struct {
	Method        *domain.PaymentMethod
	Status        *domain.PaymentStatus
	PaidAmount    *float64
	ChequeNo      *string
	BankName      *string
	TransactionID *string
	DueDate       *string
}

// SetPayment merges the update into the draft payment.
func (d *Draft) SetPayment(update PaymentUpdate) {
	if update.Method != nil {
		d.payment.Method = *update.Method
	}
	if update.Status != nil {
		d.payment.Status = *update.Status
	}
	if update.PaidAmount != nil {
		d.payment.PaidAmount = *update.PaidAmount
	}
	if update.ChequeNo != nil {
		d.payment.ChequeNo = *update.ChequeNo
	}
	if update.BankName != nil {
		d.payment.BankName = *update.BankName
	}
	if update.TransactionID != nil {
		d.payment.TransactionID = *update.TransactionID
	}
	if update.DueDate != nil {
		d.payment.DueDate = *update.DueDate
	}
}

func (d *Draft) Payment() domain.PurchasePayment {
	return d.payment
}

// BalanceDue reports the outstanding amount. It is meaningful only while the
// payment status is PARTIAL; for any other status the second return is
// false and callers must not render a balance.
func (d *Draft) BalanceDue() (float64, bool) {
	if d.payment.Status != domain.PaymentPartial {
		return 0, false
	}
	return d.Total - d.payment.PaidAmount, true
}

// Confirm finalizes the draft into a create request. Only legal from the
// review step with a supplier and at least one item.
func (d *Draft) Confirm() (domain.PurchaseOrderCreateRequest, error) {
	if d.step != StepReview {
		return domain.PurchaseOrderCreateRequest{}, ErrNotAtReview
	}
	if d.SupplierID == "" {
		return domain.PurchaseOrderCreateRequest{}, ErrSupplierRequired
	}
	if len(d.items) == 0 {
		return domain.PurchaseOrderCreateRequest{}, ErrItemsRequired
	}

	return domain.PurchaseOrderCreateRequest{
		SupplierID: d.SupplierID,
		Items:      d.Items(),
		Shipping:   d.Shipping,
		Discount:   d.Discount,
		Payment:    d.payment,
		Notes:      d.Notes,
	}, nil
}
