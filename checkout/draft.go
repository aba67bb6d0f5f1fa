// Package checkout models the in-progress order at the cashier: selected
// services with their weight inputs, product lines drawn from stock entries,
// and the submit lifecycle. It performs no I/O.
package checkout

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"laundrypos/pricing"
)

type State int

const (
	StateEmpty State = iota
	StateBuilding
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateBuilding:
		return "BUILDING"
	case StateSubmitting:
		return "SUBMITTING"
	case StateSubmitted:
		return "SUBMITTED"
	default:
		return "UNKNOWN"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// LaundryWeight is a priced weight input for one service.
type LaundryWeight struct {
	Name         string          `json:"name"`
	Value        decimal.Decimal `json:"value"`
	Limit        decimal.Decimal `json:"limit"`
	LaundryTotal decimal.Decimal `json:"laundryTotal"`
}

type SelectedService struct {
	ServiceID      ServiceID                       `json:"serviceId"`
	Name           string                          `json:"name"`
	ServicePrice   decimal.Decimal                 `json:"servicePrice"`
	SubTotal       decimal.Decimal                 `json:"subTotal"`
	LaundryWeights map[LaundryTypeID]LaundryWeight `json:"laundryWeights"`
}

// OrderProduct is a cart line bound to the entry it was added from. Price is
// captured when the first unit is added.
type OrderProduct struct {
	EntryID  EntryID         `json:"entryId"`
	ItemID   ItemID          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Weight   string          `json:"weight"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	SubTotal decimal.Decimal `json:"subTotal"`
}

// Draft is the cart owned by one checkout session. It is not safe for
// concurrent use; the owner serialises access.
type Draft struct {
	ID uuid.UUID

	state        State
	services     map[ServiceID]Service
	laundryTypes map[LaundryTypeID]LaundryType
	stock        map[EntryID]*StockEntry
	stockOrder   []EntryID

	weights   map[LaundryTypeID]decimal.Decimal
	selected  map[ServiceID]*SelectedService
	lines     map[EntryID]*OrderProduct
	lineOrder []EntryID

	total decimal.Decimal
}

func NewDraft(c Catalog) *Draft {
	d := &Draft{
		ID:       uuid.New(),
		weights:  map[LaundryTypeID]decimal.Decimal{},
		selected: map[ServiceID]*SelectedService{},
		lines:    map[EntryID]*OrderProduct{},
	}
	d.loadCatalog(c)
	return d
}

func (d *Draft) loadCatalog(c Catalog) {
	d.services = make(map[ServiceID]Service, len(c.Services))
	for _, s := range c.Services {
		d.services[s.ID] = s
	}
	d.laundryTypes = make(map[LaundryTypeID]LaundryType, len(c.LaundryTypes))
	for _, lt := range c.LaundryTypes {
		d.laundryTypes[lt.ID] = lt
	}
	d.stock = make(map[EntryID]*StockEntry, len(c.Entries))
	d.stockOrder = d.stockOrder[:0]
	for i := range c.Entries {
		e := c.Entries[i]
		d.stock[e.EntryID] = &e
		d.stockOrder = append(d.stockOrder, e.EntryID)
	}
}

func (d *Draft) State() State           { return d.state }
func (d *Draft) Total() decimal.Decimal { return d.total }
func (d *Draft) IsEmpty() bool          { return len(d.selected) == 0 && len(d.lines) == 0 }

func (d *Draft) Selected(id ServiceID) bool {
	_, ok := d.selected[id]
	return ok
}

// Remaining returns the mirrored quantity for an entry.
func (d *Draft) Remaining(id EntryID) (int, bool) {
	e, ok := d.stock[id]
	if !ok {
		return 0, false
	}
	return e.Remaining, true
}

// Line returns a copy of the cart line for an entry.
func (d *Draft) Line(id EntryID) (OrderProduct, bool) {
	l, ok := d.lines[id]
	if !ok {
		return OrderProduct{}, false
	}
	return *l, true
}

// SetWeight records the entered amount for a laundry category. A value of
// zero or less clears the category, so "no entry" and "zero" price the same.
func (d *Draft) SetWeight(id LaundryTypeID, value decimal.Decimal) error {
	if d.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	if _, ok := d.laundryTypes[id]; !ok {
		return ErrUnknownLaundryType
	}
	if value.IsPositive() {
		d.weights[id] = value
	} else {
		delete(d.weights, id)
	}
	Recompute(d)
	return nil
}

// Weight returns the entered value for a category.
func (d *Draft) Weight(id LaundryTypeID) (decimal.Decimal, bool) {
	v, ok := d.weights[id]
	return v, ok
}

func (d *Draft) SelectService(id ServiceID) error {
	if d.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	svc, ok := d.services[id]
	if !ok {
		return ErrUnknownService
	}
	if _, ok := d.selected[id]; !ok {
		d.selected[id] = &SelectedService{ServiceID: id, Name: svc.Name}
	}
	Recompute(d)
	return nil
}

func (d *Draft) DeselectService(id ServiceID) error {
	if d.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	if _, ok := d.selected[id]; !ok {
		return ErrUnknownService
	}
	delete(d.selected, id)
	Recompute(d)
	return nil
}

// Clear drops every selection and returns mirrored stock for cart lines.
func (d *Draft) Clear() error {
	if d.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	for id, l := range d.lines {
		if e, ok := d.stock[id]; ok {
			e.Remaining += l.Quantity
		}
	}
	d.reset()
	Recompute(d)
	return nil
}

func (d *Draft) reset() {
	d.weights = map[LaundryTypeID]decimal.Decimal{}
	d.selected = map[ServiceID]*SelectedService{}
	d.lines = map[EntryID]*OrderProduct{}
	d.lineOrder = nil
}

// Recompute rebuilds every derived amount of the draft from its inputs:
// each selected service's weights and subtotal, every line subtotal and the
// grand total. It is a full recomputation since a single weight edit moves
// every weight-priced service at once.
func Recompute(d *Draft) {
	weightIDs := make([]LaundryTypeID, 0, len(d.weights))
	for id := range d.weights {
		weightIDs = append(weightIDs, id)
	}
	sort.Slice(weightIDs, func(i, j int) bool { return weightIDs[i] < weightIDs[j] })

	subtotals := make([]decimal.Decimal, 0, len(d.selected))
	for id, sel := range d.selected {
		svc := d.services[id]
		sel.Name = svc.Name
		sel.ServicePrice = svc.PricePerLimit
		sel.LaundryWeights = map[LaundryTypeID]LaundryWeight{}

		if pricing.IsFlatRate(svc.Name) {
			sel.SubTotal = svc.PricePerLimit
			subtotals = append(subtotals, sel.SubTotal)
			continue
		}

		inputs := make([]pricing.Weight, 0, len(weightIDs))
		for _, wid := range weightIDs {
			lt := d.laundryTypes[wid]
			w := pricing.Weight{Value: d.weights[wid], Limit: lt.Limit}
			inputs = append(inputs, w)
			sel.LaundryWeights[wid] = LaundryWeight{
				Name:         lt.Name,
				Value:        w.Value,
				Limit:        w.Limit,
				LaundryTotal: pricing.LaundryTotal(svc.PricePerLimit, w.Value, w.Limit),
			}
		}
		sel.SubTotal = pricing.ServiceSubtotal(svc.Name, svc.PricePerLimit, inputs)
		subtotals = append(subtotals, sel.SubTotal)
	}

	lines := make([]pricing.Line, 0, len(d.lines))
	for _, l := range d.lines {
		pl := pricing.Line{UnitPrice: l.Price, Quantity: l.Quantity}
		l.SubTotal = pricing.LineTotal(pl)
		lines = append(lines, pl)
	}

	d.total = pricing.OrderTotal(subtotals, lines)

	if d.state != StateSubmitting {
		if d.IsEmpty() {
			if d.state != StateSubmitted {
				d.state = StateEmpty
			}
		} else {
			d.state = StateBuilding
		}
	}
}

// Services returns the selected services ordered by ID.
func (d *Draft) Services() []SelectedService {
	out := make([]SelectedService, 0, len(d.selected))
	for _, s := range d.selected {
		cp := *s
		cp.LaundryWeights = make(map[LaundryTypeID]LaundryWeight, len(s.LaundryWeights))
		for k, v := range s.LaundryWeights {
			cp.LaundryWeights[k] = v
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceID < out[j].ServiceID })
	return out
}

// Products returns the cart lines in the order they were first added.
func (d *Draft) Products() []OrderProduct {
	out := make([]OrderProduct, 0, len(d.lineOrder))
	for _, id := range d.lineOrder {
		if l, ok := d.lines[id]; ok {
			out = append(out, *l)
		}
	}
	return out
}

// Stock returns the mirrored catalog in catalog order.
func (d *Draft) Stock() []StockEntry {
	out := make([]StockEntry, 0, len(d.stockOrder))
	for _, id := range d.stockOrder {
		out = append(out, *d.stock[id])
	}
	return out
}

// View is the serialisable state of a draft.
type View struct {
	ID       uuid.UUID                         `json:"id"`
	State    State                             `json:"state"`
	Weights  map[LaundryTypeID]decimal.Decimal `json:"weights"`
	Services []SelectedService                 `json:"services"`
	Products []OrderProduct                    `json:"products"`
	Stock    []StockEntry                      `json:"stock"`
	Total    decimal.Decimal                   `json:"total"`
	Adjusted []LineAdjustment                  `json:"adjusted,omitempty"`
}

func (d *Draft) View() View {
	w := make(map[LaundryTypeID]decimal.Decimal, len(d.weights))
	for k, v := range d.weights {
		w[k] = v
	}
	return View{
		ID:       d.ID,
		State:    d.state,
		Weights:  w,
		Services: d.Services(),
		Products: d.Products(),
		Stock:    d.Stock(),
		Total:    d.total,
	}
}
