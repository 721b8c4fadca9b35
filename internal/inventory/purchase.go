package inventory

import (
	"errors"
	"math"
)

var (
	// ErrZeroQuantity rejects confirming a line without a positive quantity.
	ErrZeroQuantity = errors.New("quantity must be positive")
	// ErrTotalWithoutQuantity rejects a typed total when no quantity exists
	// to derive the unit cost from.
	ErrTotalWithoutQuantity = errors.New("total requires a positive quantity")
	// ErrNegativeCost rejects negative unit costs.
	ErrNegativeCost = errors.New("unit cost cannot be negative")
)

// LineDraft keeps the three purchase dialog fields consistent while the user
// edits them. Editing quantity or unit cost recomputes the total; editing
// the total derives the unit cost once a quantity exists.
type LineDraft struct {
	ProductID string
	Quantity  float64
	UnitCost  float64
	Total     float64
}

// SetQuantity updates the quantity and recomputes the total.
func (d *LineDraft) SetQuantity(quantity float64) {
	d.Quantity = quantity
	d.Total = round2(d.Quantity * d.UnitCost)
}

// SetUnitCost updates the unit cost and recomputes the total.
func (d *LineDraft) SetUnitCost(cost float64) {
	d.UnitCost = cost
	d.Total = round2(d.Quantity * d.UnitCost)
}

// SetTotal updates the total and derives the unit cost when the quantity is
// positive; with no quantity the total is stored and reconciled on confirm.
func (d *LineDraft) SetTotal(total float64) {
	d.Total = total
	if d.Quantity > 0 {
		d.UnitCost = round2(total / d.Quantity)
	}
}

// Confirm validates the draft and produces the final line. The unit cost is
// re-derived from the typed total so that quantity × cost reproduces the
// total within one cent.
func (d LineDraft) Confirm() (PurchaseLine, error) {
	if d.Quantity <= 0 {
		if d.Total > 0 {
			return PurchaseLine{}, ErrTotalWithoutQuantity
		}
		return PurchaseLine{}, ErrZeroQuantity
	}
	if d.UnitCost < 0 {
		return PurchaseLine{}, ErrNegativeCost
	}
	cost := d.UnitCost
	if d.Total > 0 {
		cost = round2(d.Total / d.Quantity)
	}
	return PurchaseLine{
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
		UnitCost:  cost,
		Total:     round2(d.Quantity * cost),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
