package finance

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/shared"
	"github.com/maresia/maresia/internal/ui"
	"github.com/maresia/maresia/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountRoutes registers finance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.redirectPayables)

	r.Route("/pagar", func(r chi.Router) {
		r.Get("/", h.ListPayables)
		r.Get("/nova", h.NewPayable)
		r.Post("/", h.CreatePayable)
		r.Get("/{id}", h.ShowPayable)
		r.Post("/{id}/pagar", h.Pay)
		r.Post("/{id}/cancelar", h.CancelPayable)
	})

	r.Route("/receber", func(r chi.Router) {
		r.Get("/", h.ListReceivables)
		r.Get("/nova", h.NewReceivable)
		r.Post("/", h.CreateReceivable)
		r.Get("/{id}", h.ShowReceivable)
		r.Post("/{id}/receber", h.Receive)
		r.Post("/{id}/cancelar", h.CancelReceivable)
	})

	r.Route("/fornecedores", func(r chi.Router) {
		r.Get("/", h.ListSuppliers)
		r.Get("/novo", h.NewSupplier)
		r.Post("/", h.CreateSupplier)
		r.Get("/{id}/editar", h.EditSupplier)
		r.Post("/{id}", h.UpdateSupplier)
		r.Post("/{id}/excluir", h.DeleteSupplier)
	})

	r.Route("/contas", func(r chi.Router) {
		r.Get("/", h.ListAccounts)
		r.Post("/", h.CreateAccount)
		r.Get("/extrato", h.Ledger)
	})

	r.Route("/categorias", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Post("/{id}/excluir", h.DeleteCategory)
	})
}

func (h *Handler) redirectPayables(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/financeiro/pagar", http.StatusSeeOther)
}

type invoiceRow struct {
	Invoice     Invoice
	Badge       ui.Badge
	Outstanding float64
}

func invoiceRows(invoices []Invoice) []invoiceRow {
	rows := make([]invoiceRow, 0, len(invoices))
	for _, invoice := range invoices {
		rows = append(rows, invoiceRow{
			Invoice:     invoice,
			Badge:       StatusBadge(invoice.Status),
			Outstanding: Outstanding(invoice),
		})
	}
	return rows
}

func invoiceFilters(r *http.Request) InvoiceFilters {
	return InvoiceFilters{
		Status:  r.URL.Query().Get("status"),
		DueFrom: r.URL.Query().Get("due_from"),
		DueTo:   r.URL.Query().Get("due_to"),
	}
}

func (h *Handler) ListPayables(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	filters := invoiceFilters(r)
	invoices, err := h.service.ListPayables(api.RequestContext(r), propertyID, filters)
	if err != nil {
		h.logger.Error("list payables failed", slog.Any("error", err))
		h.renderError(w, r, "Não foi possível carregar as contas a pagar")
		return
	}
	h.render(w, r, "pages/invoices_list.html", "Contas a pagar", map[string]any{
		"Kind":    "payable",
		"Rows":    invoiceRows(invoices),
		"Filters": filters,
	})
}

func (h *Handler) ListReceivables(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	filters := invoiceFilters(r)
	invoices, err := h.service.ListReceivables(api.RequestContext(r), propertyID, filters)
	if err != nil {
		h.logger.Error("list receivables failed", slog.Any("error", err))
		h.renderError(w, r, "Não foi possível carregar as contas a receber")
		return
	}
	h.render(w, r, "pages/invoices_list.html", "Contas a receber", map[string]any{
		"Kind":    "receivable",
		"Rows":    invoiceRows(invoices),
		"Filters": filters,
	})
}

func (h *Handler) NewPayable(w http.ResponseWriter, r *http.Request) {
	h.newInvoice(w, r, "payable", "Nova conta a pagar", KindExpense)
}

func (h *Handler) NewReceivable(w http.ResponseWriter, r *http.Request) {
	h.newInvoice(w, r, "receivable", "Nova conta a receber", KindRevenue)
}

func (h *Handler) newInvoice(w http.ResponseWriter, r *http.Request, kind, title string, categoryKind CategoryKind) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	categories, err := h.service.ListCategories(api.RequestContext(r), propertyID)
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar as categorias")
		return
	}
	h.render(w, r, "pages/invoice_form.html", title, map[string]any{
		"Kind":       kind,
		"Form":       InvoiceForm{},
		"Errors":     map[string]string{},
		"Categories": filterCategories(categories, categoryKind),
	})
}

func (h *Handler) CreatePayable(w http.ResponseWriter, r *http.Request) {
	h.createInvoice(w, r, "payable", "/financeiro/pagar", KindExpense, h.service.CreatePayable)
}

func (h *Handler) CreateReceivable(w http.ResponseWriter, r *http.Request) {
	h.createInvoice(w, r, "receivable", "/financeiro/receber", KindRevenue, h.service.CreateReceivable)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request, kind, listPath string, categoryKind CategoryKind, create createInvoiceFunc) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseInvoiceForm(r)
	if len(errs) > 0 {
		categories, _ := h.service.ListCategories(api.RequestContext(r), propertyID)
		title := "Nova conta a pagar"
		if kind == "receivable" {
			title = "Nova conta a receber"
		}
		h.render(w, r, "pages/invoice_form.html", title, map[string]any{
			"Kind":       kind,
			"Form":       form,
			"Errors":     errs,
			"Categories": filterCategories(categories, categoryKind),
		})
		return
	}
	if err := create(api.RequestContext(r), propertyID, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao criar conta")
	} else {
		h.flashSuccess(r, "Conta criada")
	}
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

func (h *Handler) ShowPayable(w http.ResponseWriter, r *http.Request) {
	h.showInvoice(w, r, "payable", h.service.GetPayable)
}

func (h *Handler) ShowReceivable(w http.ResponseWriter, r *http.Request) {
	h.showInvoice(w, r, "receivable", h.service.GetReceivable)
}

func (h *Handler) showInvoice(w http.ResponseWriter, r *http.Request, kind string, get getInvoiceFunc) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	invoice, err := get(api.RequestContext(r), propertyID, chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, "Conta não encontrada")
		return
	}
	accounts, _ := h.service.ListAccounts(api.RequestContext(r), propertyID)
	h.render(w, r, "pages/invoice_detail.html", invoice.Description, map[string]any{
		"Kind":        kind,
		"Invoice":     invoice,
		"Badge":       StatusBadge(invoice.Status),
		"Outstanding": Outstanding(invoice),
		"CanSettle":   invoice.Status == InvoiceOpen,
		"Accounts":    accounts,
	})
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, "/financeiro/pagar/", "Pagamento registrado", "Falha ao registrar pagamento", h.service.Pay)
}

func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, "/financeiro/receber/", "Recebimento registrado", "Falha ao registrar recebimento", h.service.Receive)
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request, detailPrefix, success, fallback string, action settleFunc) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseSettleForm(r)
	if len(errs) > 0 {
		h.flashError(r, nil, firstError(errs))
		http.Redirect(w, r, detailPrefix+id, http.StatusSeeOther)
		return
	}
	if err := action(api.RequestContext(r), propertyID, id, form.Input()); err != nil {
		h.flashError(r, err, fallback)
	} else {
		h.flashSuccess(r, success)
	}
	http.Redirect(w, r, detailPrefix+id, http.StatusSeeOther)
}

func (h *Handler) CancelPayable(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, "/financeiro/pagar", h.service.CancelPayable)
}

func (h *Handler) CancelReceivable(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, "/financeiro/receber", h.service.CancelReceivable)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request, listPath string, action cancelFunc) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	if err := action(api.RequestContext(r), propertyID, chi.URLParam(r, "id")); err != nil {
		h.flashError(r, err, "Falha ao cancelar conta")
	} else {
		h.flashSuccess(r, "Conta cancelada")
	}
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	search := r.URL.Query().Get("search")
	suppliers, err := h.service.ListSuppliers(api.RequestContext(r), propertyID, search)
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar os fornecedores")
		return
	}
	h.render(w, r, "pages/suppliers_list.html", "Fornecedores", map[string]any{
		"Suppliers": suppliers,
		"Search":    search,
	})
}

func (h *Handler) NewSupplier(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.property(w, r); !ok {
		return
	}
	h.render(w, r, "pages/supplier_form.html", "Novo fornecedor", map[string]any{
		"Form":   SupplierForm{},
		"Errors": map[string]string{},
	})
}

func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseSupplierForm(r)
	if len(errs) > 0 {
		h.render(w, r, "pages/supplier_form.html", "Novo fornecedor", map[string]any{
			"Form":   form,
			"Errors": errs,
		})
		return
	}
	if _, err := h.service.CreateSupplier(api.RequestContext(r), propertyID, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao criar fornecedor")
	} else {
		h.flashSuccess(r, "Fornecedor criado")
	}
	http.Redirect(w, r, "/financeiro/fornecedores", http.StatusSeeOther)
}

func (h *Handler) EditSupplier(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	suppliers, err := h.service.ListSuppliers(api.RequestContext(r), propertyID, "")
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar o fornecedor")
		return
	}
	var found *Supplier
	for i := range suppliers {
		if suppliers[i].ID == id {
			found = &suppliers[i]
			break
		}
	}
	if found == nil {
		h.renderError(w, r, "Fornecedor não encontrado")
		return
	}
	h.render(w, r, "pages/supplier_form.html", "Editar fornecedor", map[string]any{
		"Form":   supplierForm(*found),
		"Errors": map[string]string{},
		"ID":     id,
	})
}

func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseSupplierForm(r)
	if len(errs) > 0 {
		h.render(w, r, "pages/supplier_form.html", "Editar fornecedor", map[string]any{
			"Form":   form,
			"Errors": errs,
			"ID":     id,
		})
		return
	}
	if err := h.service.UpdateSupplier(api.RequestContext(r), propertyID, id, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao salvar fornecedor")
	} else {
		h.flashSuccess(r, "Fornecedor atualizado")
	}
	http.Redirect(w, r, "/financeiro/fornecedores", http.StatusSeeOther)
}

func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/financeiro/fornecedores", http.StatusSeeOther)
		return
	}
	if err := h.service.DeleteSupplier(api.RequestContext(r), propertyID, chi.URLParam(r, "id")); err != nil {
		h.flashError(r, err, "Falha ao excluir fornecedor")
	} else {
		h.flashSuccess(r, "Fornecedor excluído")
	}
	http.Redirect(w, r, "/financeiro/fornecedores", http.StatusSeeOther)
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	accounts, err := h.service.ListAccounts(api.RequestContext(r), propertyID)
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar as contas")
		return
	}
	h.render(w, r, "pages/cash_accounts.html", "Contas de caixa", map[string]any{
		"Accounts": accounts,
	})
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	name := r.PostFormValue("name")
	if name == "" {
		h.flashError(r, nil, "Nome é obrigatório")
		http.Redirect(w, r, "/financeiro/contas", http.StatusSeeOther)
		return
	}
	if _, err := h.service.CreateAccount(api.RequestContext(r), propertyID, name); err != nil {
		h.flashError(r, err, "Falha ao criar conta")
	} else {
		h.flashSuccess(r, "Conta criada")
	}
	http.Redirect(w, r, "/financeiro/contas", http.StatusSeeOther)
}

func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	accountID := r.URL.Query().Get("conta")
	entries, err := h.service.ListLedger(api.RequestContext(r), propertyID, accountID)
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar o extrato")
		return
	}
	accounts, _ := h.service.ListAccounts(api.RequestContext(r), propertyID)
	h.render(w, r, "pages/cash_ledger.html", "Extrato de caixa", map[string]any{
		"Entries":   entries,
		"Accounts":  accounts,
		"AccountID": accountID,
	})
}

type categoryRow struct {
	Category Category
	Badge    ui.Badge
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
	rows := make([]categoryRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, categoryRow{Category: category, Badge: KindBadge(category.Kind)})
	}
	h.render(w, r, "pages/finance_categories.html", "Categorias financeiras", map[string]any{
		"Rows":   rows,
		"Form":   CategoryForm{},
		"Errors": map[string]string{},
	})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseCategoryForm(r)
	if len(errs) > 0 {
		h.flashError(r, nil, firstError(errs))
		http.Redirect(w, r, "/financeiro/categorias", http.StatusSeeOther)
		return
	}
	if _, err := h.service.CreateCategory(api.RequestContext(r), propertyID, form.Category()); err != nil {
		h.flashError(r, err, "Falha ao criar categoria")
	} else {
		h.flashSuccess(r, "Categoria criada")
	}
	http.Redirect(w, r, "/financeiro/categorias", http.StatusSeeOther)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/financeiro/categorias", http.StatusSeeOther)
		return
	}
	if err := h.service.DeleteCategory(api.RequestContext(r), propertyID, chi.URLParam(r, "id")); err != nil {
		h.flashError(r, err, "Falha ao excluir categoria")
	} else {
		h.flashSuccess(r, "Categoria excluída")
	}
	http.Redirect(w, r, "/financeiro/categorias", http.StatusSeeOther)
}

type (
	createInvoiceFunc func(ctx context.Context, propertyID string, input InvoiceInput) error
	getInvoiceFunc    func(ctx context.Context, propertyID, id string) (Invoice, error)
	settleFunc        func(ctx context.Context, propertyID, id string, input SettleInput) error
	cancelFunc        func(ctx context.Context, propertyID, id string) error
)

func filterCategories(categories []Category, kind CategoryKind) []Category {
	filtered := make([]Category, 0, len(categories))
	for _, category := range categories {
		if category.Kind == kind {
			filtered = append(filtered, category)
		}
	}
	return filtered
}

func supplierForm(s Supplier) SupplierForm {
	form := SupplierForm{LegalName: s.LegalName}
	if s.Document != nil {
		form.Document = *s.Document
	}
	if s.Email != nil {
		form.Email = *s.Email
	}
	if s.Phone != nil {
		form.Phone = *s.Phone
	}
	return form
}

func firstError(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return "dados inválidos"
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
