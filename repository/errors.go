package repository

import "errors"

var (
	ErrDuplicateReceipt     = errors.New("receipt id already used")
	ErrEntryNotFound        = errors.New("product entry not found")
	ErrInsufficientQuantity = errors.New("not enough quantity on product entry")
)
