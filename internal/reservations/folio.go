package reservations

import (
	"errors"
	"math"
)

var (
	// ErrNegativeDiscount rejects discounts below zero.
	ErrNegativeDiscount = errors.New("discount cannot be negative")
	// ErrDiscountExceedsPrice rejects discounts above the base unit price.
	ErrDiscountExceedsPrice = errors.New("discount cannot exceed unit price")
	// ErrInvalidQuantity rejects non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// EffectiveUnit returns the unit price net of the per-unit discount. Only
// 0 ≤ discount ≤ base is accepted.
func EffectiveUnit(base, discount float64) (float64, error) {
	if discount < 0 {
		return 0, ErrNegativeDiscount
	}
	if discount > base {
		return 0, ErrDiscountExceedsPrice
	}
	return base - discount, nil
}

// LineTotal computes the stored amount of a folio entry from its quantity,
// base unit price and per-unit discount.
func LineTotal(base, discount, quantity float64) (float64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	unit, err := EffectiveUnit(base, discount)
	if err != nil {
		return 0, err
	}
	return round2(unit * quantity), nil
}

// Balance is the folio running balance: entries minus payments.
func Balance(entries []FolioEntry, payments []Payment) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.Amount
	}
	for _, payment := range payments {
		total -= payment.Amount
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
