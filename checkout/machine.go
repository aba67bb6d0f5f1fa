package checkout

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultHighValueThreshold is the total above which a submit must be
// confirmed a second time.
var DefaultHighValueThreshold = decimal.NewFromInt(10000)

type SubmitRequest struct {
	PaymentMethod    string `json:"paymentMethod"`
	CustomerName     string `json:"customerName"`
	ConfirmHighValue bool   `json:"confirmHighValue"`
}

// Submission is the frozen content of a draft handed to persistence.
type Submission struct {
	DraftID       uuid.UUID
	PaymentMethod string
	CustomerName  string
	Services      []SelectedService
	Products      []OrderProduct
	Total         decimal.Decimal
}

// Validate runs the submit guards in order without changing state.
func (d *Draft) Validate(req SubmitRequest, threshold decimal.Decimal) error {
	if d.IsEmpty() {
		return ErrEmptyDraft
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return ErrPaymentMethodRequired
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return ErrCustomerNameRequired
	}
	if d.total.GreaterThan(threshold) && !req.ConfirmHighValue {
		return &ConfirmationError{Total: d.total, Threshold: threshold}
	}
	return nil
}

// BeginSubmit moves the draft to Submitting when every guard passes. The
// draft refuses further edits until CompleteSubmit or FailSubmit.
func (d *Draft) BeginSubmit(req SubmitRequest, threshold decimal.Decimal) (Submission, error) {
	if d.state == StateSubmitting {
		return Submission{}, ErrSubmissionInProgress
	}
	if err := d.Validate(req, threshold); err != nil {
		return Submission{}, err
	}
	d.state = StateSubmitting
	return Submission{
		DraftID:       d.ID,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Services:      d.Services(),
		Products:      d.Products(),
		Total:         d.total,
	}, nil
}

// CompleteSubmit clears the draft after the order was stored. A non-nil
// catalog replaces the stock mirror with server-true quantities; nil keeps
// the current mirror, which already reflects the sold units.
func (d *Draft) CompleteSubmit(c *Catalog) error {
	if d.state != StateSubmitting {
		return ErrNotSubmitting
	}
	d.reset()
	if c != nil {
		d.loadCatalog(*c)
	}
	d.ID = uuid.New()
	d.state = StateSubmitted
	Recompute(d)
	return nil
}

// FailSubmit returns the draft to Building with its content intact.
func (d *Draft) FailSubmit() error {
	if d.state != StateSubmitting {
		return ErrNotSubmitting
	}
	d.state = StateBuilding
	Recompute(d)
	return nil
}

// LineAdjustment is a cart line that a catalog refresh shrank or dropped
// because the server no longer holds enough units.
type LineAdjustment struct {
	EntryID  EntryID `json:"entryId"`
	ItemName string  `json:"itemName"`
	Was      int     `json:"was"`
	Now      int     `json:"now"`
}

// ReplaceCatalog swaps reference data while keeping cart lines. Remaining
// quantities are recomputed as server quantity minus units in the cart. A
// line whose entry is gone is dropped and a line holding more units than the
// server has is clamped; both are reported.
func (d *Draft) ReplaceCatalog(c Catalog) ([]LineAdjustment, error) {
	if d.state == StateSubmitting {
		return nil, ErrSubmissionInProgress
	}
	d.loadCatalog(c)

	var adjusted []LineAdjustment
	for _, id := range append([]EntryID(nil), d.lineOrder...) {
		l, ok := d.lines[id]
		if !ok {
			continue
		}
		available := 0
		e, inStock := d.stock[id]
		if inStock {
			available = max(e.Remaining, 0)
		}
		if l.Quantity > available {
			adjusted = append(adjusted, LineAdjustment{EntryID: id, ItemName: l.ItemName, Was: l.Quantity, Now: available})
			l.Quantity = available
		}
		if l.Quantity == 0 {
			delete(d.lines, id)
			d.dropLineOrder(id)
			continue
		}
		if inStock {
			e.Remaining = available - l.Quantity
		}
	}
	for id := range d.selected {
		if _, ok := d.services[id]; !ok {
			delete(d.selected, id)
		}
	}
	for id := range d.weights {
		if _, ok := d.laundryTypes[id]; !ok {
			delete(d.weights, id)
		}
	}
	Recompute(d)
	return adjusted, nil
}
