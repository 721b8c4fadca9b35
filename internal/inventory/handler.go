package inventory

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/maresia/maresia/internal/finance"
	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/shared"
	"github.com/maresia/maresia/internal/ui"
	"github.com/maresia/maresia/internal/view"
)

// SupplierSource lists suppliers for the purchase form lookup.
type SupplierSource interface {
	ListSuppliers(ctx context.Context, propertyID string, search string) ([]finance.Supplier, error)
}

type Handler struct {
	logger    *slog.Logger
	service   *Service
	suppliers SupplierSource
	templates *view.Engine
	csrf      *shared.CSRFManager
}

func NewHandler(logger *slog.Logger, service *Service, suppliers SupplierSource, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, suppliers: suppliers, templates: templates, csrf: csrf}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ListProducts)
	r.Get("/produtos/novo", h.NewProduct)
	r.Post("/produtos", h.CreateProduct)
	r.Get("/produtos/{id}/editar", h.EditProduct)
	r.Post("/produtos/{id}", h.UpdateProduct)
	r.Post("/produtos/{id}/excluir", h.DeleteProduct)
	r.Get("/produtos/{id}/movimentos", h.ListMovements)
	r.Post("/produtos/{id}/movimentos", h.CreateMovement)

	r.Get("/categorias", h.ListCategories)
	r.Post("/categorias", h.CreateCategory)
	r.Post("/categorias/{id}/excluir", h.DeleteCategory)

	r.Get("/compras/nova", h.NewPurchase)
	r.Post("/compras", h.CreatePurchase)
}

type productRow struct {
	Product Product
	Stock   ui.Badge
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	filters := ListFilters{
		Search:     r.URL.Query().Get("search"),
		CategoryID: r.URL.Query().Get("category_id"),
	}
	products, err := h.service.ListProducts(api.RequestContext(r), propertyID, filters)
	if err != nil {
		h.logger.Error("list products failed", slog.Any("error", err))
		h.renderError(w, r, "Não foi possível carregar os produtos")
		return
	}
	categories := h.categoryOptions(r, propertyID)
	rows := make([]productRow, 0, len(products))
	for _, product := range products {
		rows = append(rows, productRow{Product: product, Stock: StockBadge(product)})
	}
	h.render(w, r, "pages/products_list.html", "Produtos", map[string]any{
		"Rows":       rows,
		"Filters":    filters,
		"Categories": categories,
	})
}

func (h *Handler) NewProduct(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	categories := h.categoryOptions(r, propertyID)
	h.render(w, r, "pages/product_form.html", "Novo produto", map[string]any{
		"Form":       ProductForm{},
		"Errors":     map[string]string{},
		"Categories": categories,
	})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseProductForm(r)
	if len(errs) > 0 {
		categories := h.categoryOptions(r, propertyID)
		h.render(w, r, "pages/product_form.html", "Novo produto", map[string]any{
			"Form":       form,
			"Errors":     errs,
			"Categories": categories,
		})
		return
	}
	if _, err := h.service.CreateProduct(api.RequestContext(r), propertyID, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao criar produto")
		http.Redirect(w, r, "/estoque/produtos/novo", http.StatusSeeOther)
		return
	}
	h.flashSuccess(r, "Produto criado")
	http.Redirect(w, r, "/estoque", http.StatusSeeOther)
}

func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	product, err := h.service.GetProduct(api.RequestContext(r), id)
	if err != nil {
		h.renderError(w, r, "Produto não encontrado")
		return
	}
	categories := h.categoryOptions(r, propertyID)
	h.render(w, r, "pages/product_form.html", "Editar produto", map[string]any{
		"Form":       productForm(product),
		"Errors":     map[string]string{},
		"Categories": categories,
		"ID":         id,
	})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseProductForm(r)
	if len(errs) > 0 {
		h.render(w, r, "pages/product_form.html", "Editar produto", map[string]any{
			"Form":   form,
			"Errors": errs,
			"ID":     id,
		})
		return
	}
	if err := h.service.UpdateProduct(api.RequestContext(r), id, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao salvar produto")
	} else {
		h.flashSuccess(r, "Produto atualizado")
	}
	http.Redirect(w, r, "/estoque", http.StatusSeeOther)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/estoque", http.StatusSeeOther)
		return
	}
	if err := h.service.DeleteProduct(api.RequestContext(r), id); err != nil {
		h.flashError(r, err, "Falha ao excluir produto")
	} else {
		h.flashSuccess(r, "Produto excluído")
	}
	http.Redirect(w, r, "/estoque", http.StatusSeeOther)
}

type movementRow struct {
	Movement StockMovement
	Badge    ui.Badge
}

func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.service.GetProduct(api.RequestContext(r), id)
	if err != nil {
		h.renderError(w, r, "Produto não encontrado")
		return
	}
	movements, err := h.service.ListMovements(api.RequestContext(r), id)
	if err != nil {
		h.logger.Error("list movements failed", slog.Any("error", err))
		h.renderError(w, r, "Não foi possível carregar os movimentos")
		return
	}
	rows := make([]movementRow, 0, len(movements))
	for _, movement := range movements {
		rows = append(rows, movementRow{Movement: movement, Badge: MovementBadge(movement.Type)})
	}
	h.render(w, r, "pages/stock_movements.html", "Movimentos – "+product.Name, map[string]any{
		"Product": product,
		"Rows":    rows,
		"Form":    MovementForm{},
		"Errors":  map[string]string{},
	})
}

func (h *Handler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseMovementForm(r)
	if len(errs) > 0 {
		h.flashError(r, nil, firstError(errs))
		http.Redirect(w, r, "/estoque/produtos/"+id+"/movimentos", http.StatusSeeOther)
		return
	}
	if err := h.service.CreateMovement(api.RequestContext(r), id, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao registrar movimento")
	} else {
		h.flashSuccess(r, "Movimento registrado")
	}
	http.Redirect(w, r, "/estoque/produtos/"+id+"/movimentos", http.StatusSeeOther)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	categories, err := h.service.ListCategories(api.RequestContext(r), propertyID)
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar as categorias")
		return
	}
	h.render(w, r, "pages/product_categories.html", "Categorias", map[string]any{
		"Categories": categories,
	})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		h.flashError(r, nil, "Nome é obrigatório")
		http.Redirect(w, r, "/estoque/categorias", http.StatusSeeOther)
		return
	}
	if _, err := h.service.CreateCategory(api.RequestContext(r), propertyID, name); err != nil {
		h.flashError(r, err, "Falha ao criar categoria")
	} else {
		h.flashSuccess(r, "Categoria criada")
	}
	http.Redirect(w, r, "/estoque/categorias", http.StatusSeeOther)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/estoque/categorias", http.StatusSeeOther)
		return
	}
	if err := h.service.DeleteCategory(api.RequestContext(r), propertyID, id); err != nil {
		h.flashError(r, err, "Falha ao excluir categoria")
	} else {
		h.flashSuccess(r, "Categoria excluída")
	}
	http.Redirect(w, r, "/estoque/categorias", http.StatusSeeOther)
}

func (h *Handler) NewPurchase(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	ctx := api.RequestContext(r)
	products, err := h.service.ListProducts(ctx, propertyID, ListFilters{})
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar os produtos")
		return
	}
	suppliers, err := h.suppliers.ListSuppliers(ctx, propertyID, "")
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar os fornecedores")
		return
	}
	h.render(w, r, "pages/purchase_form.html", "Nova compra", map[string]any{
		"Products":  products,
		"Suppliers": suppliers,
		"Errors":    map[string]string{},
	})
}

// CreatePurchase reads the parallel line arrays posted by the purchase form,
// reconciles each line through LineDraft and posts the confirmed purchase.
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	supplierID := strings.TrimSpace(r.PostFormValue("supplier_id"))
	if supplierID == "" {
		h.flashError(r, nil, "Fornecedor é obrigatório")
		http.Redirect(w, r, "/estoque/compras/nova", http.StatusSeeOther)
		return
	}

	lines, msg := collectPurchaseLines(r.PostForm)
	if msg != "" {
		h.flashError(r, nil, msg)
		http.Redirect(w, r, "/estoque/compras/nova", http.StatusSeeOther)
		return
	}

	purchase := Purchase{
		SupplierID: supplierID,
		Note:       optionalNote(r.PostFormValue("note")),
		Lines:      lines,
	}
	if err := h.service.CreatePurchase(api.RequestContext(r), propertyID, purchase); err != nil {
		h.flashError(r, err, "Falha ao registrar compra")
		http.Redirect(w, r, "/estoque/compras/nova", http.StatusSeeOther)
		return
	}
	h.flashSuccess(r, "Compra registrada")
	http.Redirect(w, r, "/estoque", http.StatusSeeOther)
}

func optionalNote(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func productForm(p Product) ProductForm {
	form := ProductForm{
		SKU:          p.SKU,
		Name:         p.Name,
		Unit:         p.Unit,
		SalePrice:    formatAmount(p.SalePrice),
		StockControl: p.StockControl,
		CategoryID:   p.CategoryID,
	}
	if p.CostPrice != nil {
		form.CostPrice = formatAmount(*p.CostPrice)
	}
	return form
}

func formatAmount(v float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
}

func firstError(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return "dados inválidos"
}

// categoryOptions loads the category dropdown. A failure degrades to an
// empty list so the page still renders, but it is logged.
func (h *Handler) categoryOptions(r *http.Request, propertyID string) []Category {
	categories, err := h.service.ListCategories(api.RequestContext(r), propertyID)
	if err != nil {
		h.logger.Warn("list categories failed", slog.Any("error", err))
	}
	return categories
}

func (h *Handler) property(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.Property() == "" {
		shared.Flash(r.Context(), shared.FlashError, "Selecione uma pousada")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return "", false
	}
	return sess.Property(), true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	if err := h.templates.Page(w, r, h.csrf, name, title, data); err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, message string) {
	if err := h.templates.Fail(w, r, h.csrf, message); err != nil {
		http.Error(w, message, http.StatusInternalServerError)
	}
}

func (h *Handler) flashSuccess(r *http.Request, message string) {
	shared.Flash(r.Context(), shared.FlashSuccess, message)
}

func (h *Handler) flashError(r *http.Request, err error, fallback string) {
	shared.Flash(r.Context(), shared.FlashError, api.UserMessage(err, fallback))
}
