package checkout

// AddToCart moves one unit of an entry into the cart. When the mirrored
// remaining quantity is zero the cart and stock are left untouched and
// ErrInsufficientStock is returned.
func (d *Draft) AddToCart(id EntryID) error {
	if d.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	e, ok := d.stock[id]
	if !ok {
		return ErrUnknownEntry
	}
	if e.Remaining <= 0 {
		return ErrInsufficientStock
	}

	e.Remaining--
	if l, ok := d.lines[id]; ok {
		l.Quantity++
	} else {
		d.lines[id] = &OrderProduct{
			EntryID:  e.EntryID,
			ItemID:   e.ItemID,
			ItemName: e.ItemName,
			Weight:   e.Weight,
			Price:    e.UnitPrice,
			Quantity: 1,
		}
		d.lineOrder = append(d.lineOrder, id)
	}
	Recompute(d)
	return nil
}

// RemoveFromCart returns one unit of a line to its entry. A line that would
// drop to zero is deleted.
func (d *Draft) RemoveFromCart(id EntryID) error {
	if d.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	l, ok := d.lines[id]
	if !ok {
		return ErrLineNotFound
	}

	if e, ok := d.stock[id]; ok {
		e.Remaining++
	}
	if l.Quantity > 1 {
		l.Quantity--
	} else {
		delete(d.lines, id)
		d.dropLineOrder(id)
	}
	Recompute(d)
	return nil
}

// RemoveItemFromCart removes one unit of an item, taking it from the most
// recently added line for that item.
func (d *Draft) RemoveItemFromCart(item ItemID) error {
	for i := len(d.lineOrder) - 1; i >= 0; i-- {
		id := d.lineOrder[i]
		if l, ok := d.lines[id]; ok && l.ItemID == item {
			return d.RemoveFromCart(id)
		}
	}
	if d.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	return ErrLineNotFound
}

func (d *Draft) dropLineOrder(id EntryID) {
	for i, v := range d.lineOrder {
		if v == id {
			d.lineOrder = append(d.lineOrder[:i], d.lineOrder[i+1:]...)
			return
		}
	}
}
