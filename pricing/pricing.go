// Package pricing holds the checkout price arithmetic. Everything here is pure:
// no I/O, no clocks, no shared state.
package pricing

import (
	"github.com/shopspring/decimal"
)

// FullServiceName is the service billed as a flat fee regardless of weight.
const FullServiceName = "Full Service"

// Weight is one laundry category input: the entered amount and the
// category's load limit.
type Weight struct {
	Value decimal.Decimal
	Limit decimal.Decimal
}

// Line is a retail product line in the cart.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// IsFlatRate reports whether the named service ignores weights.
func IsFlatRate(serviceName string) bool {
	return serviceName == FullServiceName
}

// Loads returns how many loads a weight occupies. Partial loads count as a
// full load. Non-positive weight or limit yields zero loads.
func Loads(weight, limit decimal.Decimal) decimal.Decimal {
	if !weight.IsPositive() || !limit.IsPositive() {
		return decimal.Zero
	}
	q, r := weight.QuoRem(limit, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q
}

// LaundryTotal prices one category for one service:
// ceil(weight / limit) * pricePerLimit, or zero when weight or limit is not
// positive.
func LaundryTotal(pricePerLimit, weight, limit decimal.Decimal) decimal.Decimal {
	return Loads(weight, limit).Mul(pricePerLimit)
}

// ServiceSubtotal prices a service against every weight input. The flat-rate
// service returns its price untouched.
func ServiceSubtotal(serviceName string, price decimal.Decimal, weights []Weight) decimal.Decimal {
	if IsFlatRate(serviceName) {
		return price
	}
	total := decimal.Zero
	for _, w := range weights {
		total = total.Add(LaundryTotal(price, w.Value, w.Limit))
	}
	return total
}

// LineTotal is unit price times quantity; non-positive quantities add nothing.
func LineTotal(l Line) decimal.Decimal {
	if l.Quantity <= 0 {
		return decimal.Zero
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderTotal sums service subtotals and product lines.
func OrderTotal(subtotals []decimal.Decimal, lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subtotals {
		total = total.Add(s)
	}
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total
}
