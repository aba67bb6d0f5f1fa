package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	ReceiptID     string          `gorm:"size:32;uniqueIndex;not null" json:"receiptId"`
	Status        string          `gorm:"size:16;index;not null;default:PENDING" json:"status"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	PaymentMethod string          `gorm:"size:50;not null" json:"paymentMethod"`
	CustomerName  string          `gorm:"size:150" json:"customerName"`

	// snapshots of the draft at submit time, never re-priced
	Services []ServiceLine `gorm:"serializer:json;type:text" json:"services"`
	Products []ProductLine `gorm:"serializer:json;type:text" json:"products"`

	CreatedByID uint   `gorm:"index" json:"createdById"`
	CreatedBy   Worker `gorm:"foreignKey:CreatedByID" json:"-"`
}

// ServiceLine is a priced service as it was on the receipt.
type ServiceLine struct {
	ServiceID    uint            `json:"serviceId"`
	Name         string          `json:"name"`
	ServicePrice decimal.Decimal `json:"servicePrice"`
	SubTotal     decimal.Decimal `json:"subTotal"`
	Weights      []WeightLine    `json:"laundryWeights"`
}

type WeightLine struct {
	LaundryTypeID uint            `json:"laundryTypeId"`
	Name          string          `json:"name"`
	Value         decimal.Decimal `json:"value"`
	Limit         decimal.Decimal `json:"limit"`
	LaundryTotal  decimal.Decimal `json:"laundryTotal"`
}

type ProductLine struct {
	EntryID  uint            `json:"entryId"`
	ItemID   uint            `json:"itemId"`
	ItemName string          `json:"itemName"`
	Weight   string          `json:"weight"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	SubTotal decimal.Decimal `json:"subTotal"`
}
