package inventory

import (
	"context"
	"errors"
	"net/url"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/query"
)

// Cache scopes. Purchases post AP invoices, so creating one also bumps the
// finance payables scope.
const (
	ScopeProducts   = "produtos"
	ScopeCategories = "product-categories"
	ScopeMovements  = "stock-movements"
	ScopePayables   = "ap-invoices"
)

// ErrEmptyPurchase rejects posting a purchase without confirmed lines.
var ErrEmptyPurchase = errors.New("purchase needs at least one line")

// ListFilters narrows a product listing.
type ListFilters struct {
	Search     string
	CategoryID string
}

// Service exposes product, category, stock movement and purchase endpoints.
type Service struct {
	api   *api.Client
	cache *query.Cache
}

func NewService(client *api.Client, cache *query.Cache) *Service {
	return &Service{api: client, cache: cache}
}

func (s *Service) ListProducts(ctx context.Context, propertyID string, filters ListFilters) ([]Product, error) {
	key, err := s.cache.Key(ctx, ScopeProducts, propertyID, filters.Search, filters.CategoryID)
	if err != nil {
		return nil, err
	}
	var items []Product
	err = s.cache.FetchJSON(ctx, ScopeProducts, key, &items, func(ctx context.Context) (any, error) {
		params := url.Values{}
		if filters.Search != "" {
			params.Set("search", filters.Search)
		}
		if filters.CategoryID != "" {
			params.Set("category_id", filters.CategoryID)
		}
		return api.GetList[Product](ctx, s.api, "/pousadas/"+propertyID+"/produtos", params)
	})
	return items, err
}

func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	key, err := s.cache.Key(ctx, ScopeProducts, "id", id)
	if err != nil {
		return Product{}, err
	}
	var product Product
	err = s.cache.FetchJSON(ctx, ScopeProducts, key, &product, func(ctx context.Context) (any, error) {
		var out Product
		if err := s.api.Get(ctx, "/produtos/"+id, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return product, err
}

func (s *Service) CreateProduct(ctx context.Context, propertyID string, input ProductInput) (Product, error) {
	var created Product
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/produtos", input, &created); err != nil {
		return Product{}, err
	}
	return created, s.cache.Bump(ctx, ScopeProducts)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, input ProductInput) error {
	if err := s.api.Patch(ctx, "/produtos/"+id, input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeProducts)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "/produtos/"+id); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeProducts)
}

func (s *Service) ListCategories(ctx context.Context, propertyID string) ([]Category, error) {
	key, err := s.cache.Key(ctx, ScopeCategories, propertyID)
	if err != nil {
		return nil, err
	}
	var items []Category
	err = s.cache.FetchJSON(ctx, ScopeCategories, key, &items, func(ctx context.Context) (any, error) {
		return api.GetList[Category](ctx, s.api, "/pousadas/"+propertyID+"/product-categories", nil)
	})
	return items, err
}

func (s *Service) CreateCategory(ctx context.Context, propertyID, name string) (Category, error) {
	var created Category
	payload := map[string]string{"name": name}
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/product-categories", payload, &created); err != nil {
		return Category{}, err
	}
	return created, s.cache.Bump(ctx, ScopeCategories)
}

func (s *Service) DeleteCategory(ctx context.Context, propertyID, id string) error {
	if err := s.api.Delete(ctx, "/pousadas/"+propertyID+"/product-categories/"+id); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeCategories, ScopeProducts)
}

func (s *Service) ListMovements(ctx context.Context, productID string) ([]StockMovement, error) {
	key, err := s.cache.Key(ctx, ScopeMovements, productID)
	if err != nil {
		return nil, err
	}
	var items []StockMovement
	err = s.cache.FetchJSON(ctx, ScopeMovements, key, &items, func(ctx context.Context) (any, error) {
		return api.GetList[StockMovement](ctx, s.api, "/produtos/"+productID+"/stock-movements", nil)
	})
	return items, err
}

// CreateMovement posts a standalone stock movement and refreshes product
// stock listings.
func (s *Service) CreateMovement(ctx context.Context, productID string, input MovementInput) error {
	if err := s.api.Post(ctx, "/produtos/"+productID+"/stock-movements", input, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeMovements, ScopeProducts)
}

// CreatePurchase posts a purchase as an AP invoice. Stock-in movements for
// each line are created by the backend.
func (s *Service) CreatePurchase(ctx context.Context, propertyID string, purchase Purchase) error {
	if len(purchase.Lines) == 0 {
		return ErrEmptyPurchase
	}
	if err := s.api.Post(ctx, "/pousadas/"+propertyID+"/ap-invoices", purchase, nil); err != nil {
		return err
	}
	return s.cache.Bump(ctx, ScopeMovements, ScopeProducts, ScopePayables)
}
