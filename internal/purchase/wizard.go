package purchase

// Step is one stage of the purchase order wizard. Progression is strictly
// one step forward or backward; steps cannot be skipped.
type Step int

const (
	StepSupplier Step = iota
	StepItems
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepSupplier:
		return "SUPPLIER_SELECTION"
	case StepItems:
		return "ITEMS"
	case StepPayment:
		return "PAYMENT"
	case StepReview:
		return "REVIEW"
	default:
		return "UNKNOWN"
	}
}

func (d *Draft) Step() Step {
	return d.step
}

// Next advances the wizard one step. Leaving supplier selection requires a
// selected supplier; leaving the items step requires a non-empty item list.
func (d *Draft) Next() error {
	switch d.step {
	case StepSupplier:
		if d.SupplierID == "" {
			return ErrSupplierRequired
		}
		d.step = StepItems
	case StepItems:
		if len(d.items) == 0 {
			return ErrItemsRequired
		}
		d.step = StepPayment
	case StepPayment:
		d.step = StepReview
	case StepReview:
		// Already at the last step.
	}
	return nil
}

// Back moves the wizard one step toward supplier selection. Backing out of
// the first step is a no-op.
func (d *Draft) Back() {
	if d.step > StepSupplier {
		d.step--
	}
}
