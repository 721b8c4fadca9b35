package finance

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/query"
)

// Cache scopes. Settling an invoice moves money, so pay/receive also bump
// the cash scopes.
const (
	ScopeSuppliers   = "suppliers"
	ScopeAccounts    = "cash-accounts"
	ScopeLedger      = "cash-ledger"
	ScopeCategories  = "finance-categories"
	ScopePayables    = "ap-invoices"
	ScopeReceivables = "ar-invoices"
)

// ErrNotOpen rejects settling or canceling an invoice that is not open.
var ErrNotOpen = errors.New("invoice is not open")

// InvoiceFilters narrows payable/receivable listings.
type InvoiceFilters struct {
	Status  string
	DueFrom string
	DueTo   string
}

// Service exposes the finance endpoints of the backend.
type Service struct {
	api   *api.Client
	cache *query.Cache
}

func NewService(client *api.Client, cache *query.Cache) *Service {
	return &Service{api: client, cache: cache}
}

// ListSuppliers fetches suppliers, applying the search term client-side
// because the endpoint has no server-side filtering.
func (s *Service) ListSuppliers(ctx context.Context, propertyID string, search string) ([]Supplier, error) {
	key, err := s.cache.Key(ctx, ScopeSuppliers, propertyID, search)
	if err != nil {
		return nil, err
	}
	var items []Supplier
	err = s.cache.FetchJSON(ctx, ScopeSuppliers, key, &items, func(ctx context.Context) (any, error) {
		all, err := api.GetList[Supplier](ctx, s.api, "/pousadas/"+propertyID+"/suppliers", nil)
		if err != nil {
			return nil, err
		}
		return filterSuppliers(all, search), nil
	})
	return items, err
}

func (s *Service) CreateSupplier(ctx context.Context, propertyID string, input SupplierInput) (Supplier, error) {
	var created Supplier
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/suppliers", input, &created); err != nil {
		return Supplier{}, err
	}
	return created, s.cache.Bump(ctx, ScopeSuppliers)
}

func (s *Service) UpdateSupplier(ctx context.Context, propertyID, id string, input SupplierInput) error {
	if err := s.api.Patch(ctx, "/pousadas/"+propertyID+"/suppliers/"+id, input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeSuppliers)
}

func (s *Service) DeleteSupplier(ctx context.Context, propertyID, id string) error {
	if err := s.api.Delete(ctx, "/pousadas/"+propertyID+"/suppliers/"+id); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeSuppliers)
}

func (s *Service) ListAccounts(ctx context.Context, propertyID string) ([]CashAccount, error) {
	key, err := s.cache.Key(ctx, ScopeAccounts, propertyID)
	if err != nil {
		return nil, err
	}
	var items []CashAccount
	err = s.cache.FetchJSON(ctx, ScopeAccounts, key, &items, func(ctx context.Context) (any, error) {
		return api.GetList[CashAccount](ctx, s.api, "/pousadas/"+propertyID+"/cash-accounts", nil)
	})
	return items, err
}

func (s *Service) CreateAccount(ctx context.Context, propertyID, name string) (CashAccount, error) {
	var created CashAccount
	payload := map[string]string{"name": name}
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/cash-accounts", payload, &created); err != nil {
		return CashAccount{}, err
	}
	return created, s.cache.Bump(ctx, ScopeAccounts)
}

// ListLedger fetches cash ledger entries, optionally narrowed to one account.
func (s *Service) ListLedger(ctx context.Context, propertyID, accountID string) ([]LedgerEntry, error) {
	key, err := s.cache.Key(ctx, ScopeLedger, propertyID, accountID)
	if err != nil {
		return nil, err
	}
	var items []LedgerEntry
	err = s.cache.FetchJSON(ctx, ScopeLedger, key, &items, func(ctx context.Context) (any, error) {
		params := url.Values{}
		if accountID != "" {
			params.Set("cash_account_id", accountID)
		}
		return api.GetList[LedgerEntry](ctx, s.api, "/pousadas/"+propertyID+"/cash-ledger", params)
	})
	return items, err
}

func (s *Service) ListCategories(ctx context.Context, propertyID string) ([]Category, error) {
	key, err := s.cache.Key(ctx, ScopeCategories, propertyID)
	if err != nil {
		return nil, err
	}
	var items []Category
	err = s.cache.FetchJSON(ctx, ScopeCategories, key, &items, func(ctx context.Context) (any, error) {
		return api.GetList[Category](ctx, s.api, "/pousadas/"+propertyID+"/finance-categories", nil)
	})
	return items, err
}

func (s *Service) CreateCategory(ctx context.Context, propertyID string, input Category) (Category, error) {
	var created Category
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/finance-categories", input, &created); err != nil {
		return Category{}, err
	}
	return created, s.cache.Bump(ctx, ScopeCategories)
}

func (s *Service) DeleteCategory(ctx context.Context, propertyID, id string) error {
	if err := s.api.Delete(ctx, "/pousadas/"+propertyID+"/finance-categories/"+id); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeCategories)
}

// ListPayables fetches AP invoices with optional status and due-date filters.
func (s *Service) ListPayables(ctx context.Context, propertyID string, filters InvoiceFilters) ([]Invoice, error) {
	return s.listInvoices(ctx, ScopePayables, propertyID, "ap-invoices", filters)
}

// ListReceivables fetches AR invoices with optional status and due-date filters.
func (s *Service) ListReceivables(ctx context.Context, propertyID string, filters InvoiceFilters) ([]Invoice, error) {
	return s.listInvoices(ctx, ScopeReceivables, propertyID, "ar-invoices", filters)
}

func (s *Service) listInvoices(ctx context.Context, scope, propertyID, resource string, filters InvoiceFilters) ([]Invoice, error) {
	key, err := s.cache.Key(ctx, scope, propertyID, filters.Status, filters.DueFrom, filters.DueTo)
	if err != nil {
		return nil, err
	}
	var items []Invoice
	err = s.cache.FetchJSON(ctx, scope, key, &items, func(ctx context.Context) (any, error) {
		params := url.Values{}
		if filters.Status != "" {
			params.Set("status", filters.Status)
		}
		if filters.DueFrom != "" {
			params.Set("due_from", filters.DueFrom)
		}
		if filters.DueTo != "" {
			params.Set("due_to", filters.DueTo)
		}
		return api.GetList[Invoice](ctx, s.api, "/pousadas/"+propertyID+"/"+resource, params)
	})
	return items, err
}

func (s *Service) GetPayable(ctx context.Context, propertyID, id string) (Invoice, error) {
	return s.getInvoice(ctx, ScopePayables, propertyID, "ap-invoices", id)
}

func (s *Service) GetReceivable(ctx context.Context, propertyID, id string) (Invoice, error) {
	return s.getInvoice(ctx, ScopeReceivables, propertyID, "ar-invoices", id)
}

func (s *Service) getInvoice(ctx context.Context, scope, propertyID, resource, id string) (Invoice, error) {
	key, err := s.cache.Key(ctx, scope, "id", id)
	if err != nil {
		return Invoice{}, err
	}
	var invoice Invoice
	err = s.cache.FetchJSON(ctx, scope, key, &invoice, func(ctx context.Context) (any, error) {
		var out Invoice
		if err := s.api.Get(ctx, "/pousadas/"+propertyID+"/"+resource+"/"+id, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return invoice, err
}

func (s *Service) CreatePayable(ctx context.Context, propertyID string, input InvoiceInput) error {
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/ap-invoices", input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopePayables)
}

func (s *Service) CreateReceivable(ctx context.Context, propertyID string, input InvoiceInput) error {
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/ar-invoices", input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeReceivables)
}

// Pay settles an open AP invoice and bumps the cash scopes alongside the
// payables scope.
func (s *Service) Pay(ctx context.Context, propertyID, id string, input SettleInput) error {
	return s.settle(ctx, ScopePayables, propertyID, "ap-invoices", id, "pay", input)
}

// Receive settles an open AR invoice.
func (s *Service) Receive(ctx context.Context, propertyID, id string, input SettleInput) error {
	return s.settle(ctx, ScopeReceivables, propertyID, "ar-invoices", id, "receive", input)
}

func (s *Service) settle(ctx context.Context, scope, propertyID, resource, id, action string, input SettleInput) error {
	invoice, err := s.getInvoice(ctx, scope, propertyID, resource, id)
	if err != nil {
		return err
	}
	if invoice.Status != InvoiceOpen {
		return ErrNotOpen
	}
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/"+resource+"/"+id+"/"+action, input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, scope, ScopeAccounts, ScopeLedger)
}

// CancelPayable voids an open AP invoice.
func (s *Service) CancelPayable(ctx context.Context, propertyID, id string) error {
	return s.cancel(ctx, ScopePayables, propertyID, "ap-invoices", id)
}

// CancelReceivable voids an open AR invoice.
func (s *Service) CancelReceivable(ctx context.Context, propertyID, id string) error {
	return s.cancel(ctx, ScopeReceivables, propertyID, "ar-invoices", id)
}

func (s *Service) cancel(ctx context.Context, scope, propertyID, resource, id string) error {
	invoice, err := s.getInvoice(ctx, scope, propertyID, resource, id)
	if err != nil {
		return err
	}
	if invoice.Status != InvoiceOpen {
		return ErrNotOpen
	}
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/"+resource+"/"+id+"/cancel", nil, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, scope)
}

func filterSuppliers(items []Supplier, search string) []Supplier {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return items
	}
	filtered := make([]Supplier, 0, len(items))
	for _, supplier := range items {
		haystack := strings.ToLower(supplier.LegalName)
		if supplier.Document != nil {
			haystack += " " + strings.ToLower(*supplier.Document)
		}
		if strings.Contains(haystack, term) {
			filtered = append(filtered, supplier)
		}
	}
	return filtered
}
