package transaction

import (
	"fmt"
	"strings"
)

// Category is the transaction type vocabulary used by the scoring model.
type Category string

const (
	CategoryCashIn   Category = "CASH_IN"
	CategoryCashOut  Category = "CASH_OUT"
	CategoryDebit    Category = "DEBIT"
	CategoryPayment  Category = "PAYMENT"
	CategoryTransfer Category = "TRANSFER"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryCashIn,
		CategoryCashOut,
		CategoryDebit,
		CategoryPayment,
		CategoryTransfer,
	}
}

// ParseCategory matches s against the known vocabulary, tolerating case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	normalized := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range Categories() {
		if c == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// IsValid reports whether c belongs to the known vocabulary.
func (c Category) IsValid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// String returns the wire form of the category.
func (c Category) String() string { return string(c) }
