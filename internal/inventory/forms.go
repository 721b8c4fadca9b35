package inventory

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/maresia/maresia/internal/forms"
)

// ProductForm mirrors the product create/edit screen.
type ProductForm struct {
	SKU          string
	Name         string `validate:"required"`
	Unit         string `validate:"required"`
	SalePrice    string `validate:"required"`
	CostPrice    string
	StockControl bool
	CategoryID   string `validate:"required"`
}

// ParseProductForm binds and validates a posted product form.
func ParseProductForm(r *http.Request) (ProductForm, map[string]string) {
	form := ProductForm{
		SKU:          strings.TrimSpace(r.PostFormValue("sku")),
		Name:         strings.TrimSpace(r.PostFormValue("name")),
		Unit:         strings.TrimSpace(r.PostFormValue("unit")),
		SalePrice:    strings.TrimSpace(r.PostFormValue("sale_price")),
		CostPrice:    strings.TrimSpace(r.PostFormValue("cost_price")),
		StockControl: r.PostFormValue("stock_control") == "on",
		CategoryID:   strings.TrimSpace(r.PostFormValue("category_id")),
	}
	return form, form.Validate()
}

func (f ProductForm) Validate() map[string]string {
	errs := forms.Check(f)
	sale, saleOK := forms.RequiredAmount(f.SalePrice)
	if f.SalePrice != "" && !saleOK {
		errs["SalePrice"] = "preço inválido"
	} else if saleOK && sale < 0 {
		errs["SalePrice"] = "preço não pode ser negativo"
	}
	cost, costOK := forms.Amount(f.CostPrice)
	if !costOK {
		errs["CostPrice"] = "custo inválido"
	} else if cost != nil && *cost < 0 {
		errs["CostPrice"] = "custo não pode ser negativo"
	}
	return errs
}

func (f ProductForm) Input() ProductInput {
	sale, _ := forms.RequiredAmount(f.SalePrice)
	cost, _ := forms.Amount(f.CostPrice)
	return ProductInput{
		SKU:          forms.OptionalString(f.SKU),
		Name:         f.Name,
		Unit:         f.Unit,
		SalePrice:    sale,
		CostPrice:    cost,
		StockControl: f.StockControl,
		CategoryID:   f.CategoryID,
	}
}

// MovementForm mirrors the standalone stock movement dialog.
type MovementForm struct {
	Type     string `validate:"required,oneof=in out"`
	Quantity string `validate:"required"`
	UnitCost string
	Note     string
}

// ParseMovementForm binds and validates a posted stock movement form.
func ParseMovementForm(r *http.Request) (MovementForm, map[string]string) {
	form := MovementForm{
		Type:     strings.TrimSpace(r.PostFormValue("type")),
		Quantity: strings.TrimSpace(r.PostFormValue("quantity")),
		UnitCost: strings.TrimSpace(r.PostFormValue("unit_cost")),
		Note:     strings.TrimSpace(r.PostFormValue("note")),
	}
	return form, form.Validate()
}

func (f MovementForm) Validate() map[string]string {
	errs := forms.Check(f)
	quantity, ok := forms.RequiredAmount(f.Quantity)
	if f.Quantity != "" && !ok {
		errs["Quantity"] = "quantidade inválida"
	} else if ok && quantity <= 0 {
		errs["Quantity"] = "quantidade deve ser positiva"
	}
	cost, costOK := forms.Amount(f.UnitCost)
	if !costOK {
		errs["UnitCost"] = "custo inválido"
	} else if cost != nil && *cost < 0 {
		errs["UnitCost"] = "custo não pode ser negativo"
	}
	return errs
}

func (f MovementForm) Input() MovementInput {
	quantity, _ := forms.RequiredAmount(f.Quantity)
	cost, _ := forms.Amount(f.UnitCost)
	return MovementInput{
		Type:     MovementType(f.Type),
		Quantity: quantity,
		UnitCost: cost,
		Note:     forms.OptionalString(f.Note),
	}
}

// PurchaseLineForm carries the three reconciled fields of the purchase
// dialog plus the product reference.
type PurchaseLineForm struct {
	ProductID string
	Quantity  string
	UnitCost  string
	Total     string
}

// Draft coerces the typed fields into a LineDraft, reconciling the fields in
// the order the user filled them: an explicit total wins over a computed one.
func (f PurchaseLineForm) Draft() (LineDraft, map[string]string) {
	errs := make(map[string]string)
	if f.ProductID == "" {
		errs["ProductID"] = "produto é obrigatório"
	}
	draft := LineDraft{ProductID: f.ProductID}
	quantity, qtyOK := forms.Amount(f.Quantity)
	if !qtyOK {
		errs["Quantity"] = "quantidade inválida"
	} else if quantity != nil {
		draft.SetQuantity(*quantity)
	}
	cost, costOK := forms.Amount(f.UnitCost)
	if !costOK {
		errs["UnitCost"] = "custo inválido"
	} else if cost != nil {
		draft.SetUnitCost(*cost)
	}
	total, totalOK := forms.Amount(f.Total)
	if !totalOK {
		errs["Total"] = "total inválido"
	} else if total != nil {
		draft.SetTotal(*total)
	}
	return draft, errs
}

// collectPurchaseLines zips the parallel line arrays of the purchase form,
// skipping rows left entirely blank. The returned message is empty on
// success; a purchase needs at least one confirmed line.
func collectPurchaseLines(form url.Values) ([]PurchaseLine, string) {
	productIDs := form["product_id"]
	quantities := form["quantity"]
	costs := form["unit_cost"]
	totals := form["total"]

	lines := make([]PurchaseLine, 0, len(productIDs))
	for i, productID := range productIDs {
		lineForm := PurchaseLineForm{ProductID: strings.TrimSpace(productID)}
		if i < len(quantities) {
			lineForm.Quantity = strings.TrimSpace(quantities[i])
		}
		if i < len(costs) {
			lineForm.UnitCost = strings.TrimSpace(costs[i])
		}
		if i < len(totals) {
			lineForm.Total = strings.TrimSpace(totals[i])
		}
		if lineForm.ProductID == "" && lineForm.Quantity == "" && lineForm.Total == "" {
			continue // blank row in the form
		}
		draft, errs := lineForm.Draft()
		if len(errs) > 0 {
			return nil, firstError(errs)
		}
		line, err := draft.Confirm()
		if err != nil {
			return nil, "Linha de compra inválida"
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, "Inclua ao menos uma linha na compra"
	}
	return lines, ""
}
