package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownService     = errors.New("service not found")
	ErrUnknownLaundryType = errors.New("laundry type not found")
	ErrUnknownEntry       = errors.New("product entry not found")
	ErrInsufficientStock  = errors.New("no remaining stock for this product entry")
	ErrLineNotFound       = errors.New("product is not in the cart")

	ErrEmptyDraft            = errors.New("add at least one service or product")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrCustomerNameRequired  = errors.New("customer name is required")
	ErrConfirmationRequired  = errors.New("high value order needs confirmation")
	ErrSubmissionInProgress  = errors.New("order submission in progress")
	ErrNotSubmitting         = errors.New("no submission in progress")
)

// ConfirmationError is returned when the total is over the high-value
// threshold and the caller did not confirm.
type ConfirmationError struct {
	Total     decimal.Decimal
	Threshold decimal.Decimal
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("order total %s exceeds %s and needs confirmation", e.Total.StringFixed(2), e.Threshold.StringFixed(2))
}

func (e *ConfirmationError) Is(target error) bool {
	return target == ErrConfirmationRequired
}
