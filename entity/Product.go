package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductItem struct {
	gorm.Model
	Name     string          `gorm:"size:150;not null" json:"name"`
	Category string          `gorm:"size:100;index" json:"category"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Weight   string          `gorm:"size:50" json:"weight"`
	Barcode  *string         `gorm:"size:64;uniqueIndex" json:"barcode,omitempty"`

	Entries []ProductEntry `json:"-"`
}

// ProductEntry is one purchased batch of an item. Quantity is the on-hand
// count and is only ever decremented by sales.
type ProductEntry struct {
	gorm.Model
	ProductItemID   uint        `gorm:"index;not null" json:"itemId"`
	ProductItem     ProductItem `json:"-"`
	Quantity        int         `gorm:"not null;check:quantity >= 0" json:"quantity"`
	PurchasedAt     time.Time   `json:"purchasedAt"`
	ExpiresAt       *time.Time  `gorm:"index" json:"expiresAt,omitempty"`
	Supplier        string      `gorm:"size:150" json:"supplier"`
	DamagedQuantity int         `json:"damagedQuantity"`
	MissingQuantity int         `json:"missingQuantity"`
	ReceiptRef      string      `gorm:"size:100" json:"receiptRef"`
}
