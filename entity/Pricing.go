package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LaundryType is a weight category. Limit is the capacity of one load in Unit.
type LaundryType struct {
	gorm.Model
	Name  string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Limit decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"limit"`
	Unit  string          `gorm:"size:10;not null;default:kg" json:"unit"`
}

// Service is billed per load, except the flat-rate Full Service.
type Service struct {
	gorm.Model
	Name          string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	PricePerLimit decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pricePerLimit"`
}
