package inventory

import (
	"time"

	"github.com/maresia/maresia/internal/ui"
)

// MovementType distinguishes stock entries from stock exits.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// Product is a sellable item (produto), optionally stock-controlled.
type Product struct {
	ID           string   `json:"id"`
	SKU          string   `json:"sku"`
	Name         string   `json:"name"`
	Unit         string   `json:"unit"`
	SalePrice    float64  `json:"sale_price"`
	CostPrice    *float64 `json:"cost_price"`
	StockControl bool     `json:"stock_control"`
	CategoryID   string   `json:"category_id"`
	CategoryName string   `json:"category_name"`
	CurrentStock *float64 `json:"current_stock"`
}

// Category groups products.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockMovement records one in/out movement of a product.
type StockMovement struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Type      MovementType `json:"type"`
	Quantity  float64      `json:"quantity"`
	UnitCost  *float64     `json:"unit_cost"`
	Note      string       `json:"note"`
	CreatedAt time.Time    `json:"created_at"`
}

// Purchase aggregates stock-in movements bought from one supplier; it is
// posted to the backend as an accounts payable invoice.
type Purchase struct {
	SupplierID string         `json:"supplier_id"`
	Note       *string        `json:"note"`
	Lines      []PurchaseLine `json:"lines"`
}

// PurchaseLine is one confirmed product line of a purchase.
type PurchaseLine struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	Total     float64 `json:"total"`
}

// ProductInput is the create/update payload.
type ProductInput struct {
	SKU          *string  `json:"sku"`
	Name         string   `json:"name"`
	Unit         string   `json:"unit"`
	SalePrice    float64  `json:"sale_price"`
	CostPrice    *float64 `json:"cost_price"`
	StockControl bool     `json:"stock_control"`
	CategoryID   string   `json:"category_id"`
}

// MovementInput is the create payload for a standalone stock movement.
type MovementInput struct {
	Type     MovementType `json:"type"`
	Quantity float64      `json:"quantity"`
	UnitCost *float64     `json:"unit_cost"`
	Note     *string      `json:"note"`
}

// MovementBadge maps a movement type for both listing layouts.
func MovementBadge(t MovementType) ui.Badge {
	switch t {
	case MovementIn:
		return ui.Badge{Label: "Entrada", Variant: ui.VariantSuccess}
	case MovementOut:
		return ui.Badge{Label: "Saída", Variant: ui.VariantWarning}
	default:
		return ui.Badge{Label: string(t), Variant: ui.VariantNeutral}
	}
}

// StockBadge maps the stock level of a controlled product.
func StockBadge(p Product) ui.Badge {
	if !p.StockControl || p.CurrentStock == nil {
		return ui.Badge{Label: "Sem controle", Variant: ui.VariantNeutral}
	}
	if *p.CurrentStock <= 0 {
		return ui.Badge{Label: "Esgotado", Variant: ui.VariantDanger}
	}
	return ui.Badge{Label: "Em estoque", Variant: ui.VariantSuccess}
}
