package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	ServiceID     uint
	LaundryTypeID uint
	EntryID       uint
	ItemID        uint
)

// Session identifies the worker running a checkout. It is built from the
// request's credentials and handed to the checkout service explicitly.
type Session struct {
	WorkerID uint
	Email    string
	Name     string
	Roles    []string
}

// HasRole reports whether the session carries role.
func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Service struct {
	ID            ServiceID       `json:"id"`
	Name          string          `json:"name"`
	PricePerLimit decimal.Decimal `json:"pricePerLimit"`
}

type LaundryType struct {
	ID    LaundryTypeID   `json:"id"`
	Name  string          `json:"name"`
	Limit decimal.Decimal `json:"limit"`
	Unit  string          `json:"unit"`
}

// StockEntry is one product batch as seen by the cart. Remaining is the
// local mirror of the on-hand quantity; it is advisory and only the store's
// quantity is authoritative.
type StockEntry struct {
	EntryID     EntryID         `json:"entryId"`
	ItemID      ItemID          `json:"itemId"`
	ItemName    string          `json:"itemName"`
	Category    string          `json:"category"`
	Weight      string          `json:"weight"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Remaining   int             `json:"remaining"`
	PurchasedAt time.Time       `json:"purchasedAt"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
}

// Catalog is the reference data a draft prices against.
type Catalog struct {
	Services     []Service
	LaundryTypes []LaundryType
	Entries      []StockEntry
}
