package checkout

import (
	"fmt"
	"math/rand"
	"time"
)

const maxReceiptSuffix = 999999999

// FormatReceiptID renders RID-MMDDYYYY-NNN with the suffix zero-padded to at
// least three digits.
func FormatReceiptID(t time.Time, suffix int) string {
	return fmt.Sprintf("RID-%s-%03d", t.Format("01022006"), suffix)
}

// NewReceiptID builds a display receipt ID with a random suffix in
// [1, 999999999]. It does not guarantee uniqueness; the order store does.
func NewReceiptID(t time.Time) string {
	return FormatReceiptID(t, rand.Intn(maxReceiptSuffix)+1)
}
