package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNameTaken          = errors.New("name already used")
	ErrInvalidOrConflict  = errors.New("invalid_or_conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrReceiptExhausted   = errors.New("could not allocate a unique receipt id")
)
