package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// NewTestVariant builds an available variant priced in USD.
func NewTestVariant(id, title, price string) domain.Variant {
	return domain.Variant{
		ID:           id,
		Title:        title,
		Price:        money.MustParse(price),
		CurrencyCode: "USD",
		Available:    true,
	}
}

// NewTestProduct builds a product with the given variants. Without variants it
// gets a single "Default Title" variant priced at 10.00.
func NewTestProduct(id, handle string, variants ...domain.Variant) domain.Product {
	if len(variants) == 0 {
		variants = []domain.Variant{NewTestVariant(id+"-v1", domain.DefaultVariantTitle, "10.00")}
	}
	return domain.Product{
		ID:               id,
		Handle:           handle,
		Title:            "Product " + handle,
		ProductType:      "lip",
		Vendor:           "Acme",
		Images:           []domain.Image{{ID: id + "-img", URL: "https://cdn.example.com/" + handle + ".jpg"}},
		Variants:         variants,
		MinPrice:         variants[0].Price.Copy(),
		MinPriceCurrency: "USD",
	}
}

// NewTestProducts builds n default-variant products with ids p1..pn.
func NewTestProducts(n int) []domain.Product {
	out := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewTestProduct(fmt.Sprintf("p%d", i), fmt.Sprintf("product-%d", i)))
	}
	return out
}

// FakeGateway is an in-memory CatalogGateway. Products are served in
// pages of the requested size with cursors "c<offset>".
type FakeGateway struct {
	mu sync.Mutex

	Products []domain.Product
	Types    []string
	Vendors  []string

	// ListFunc overrides ListProducts when set.
	ListFunc func(ctx context.Context, req contracts.ListRequest) (*domain.Page, error)
	// Err fails every call when set.
	Err error

	ListRequests []contracts.ListRequest
}

// NewFakeGateway creates a fake serving products.
func NewFakeGateway(products ...domain.Product) *FakeGateway {
	return &FakeGateway{Products: products}
}

// ListProducts implements contracts.CatalogGateway.
func (g *FakeGateway) ListProducts(ctx context.Context, req contracts.ListRequest) (*domain.Page, error) {
	g.mu.Lock()
	g.ListRequests = append(g.ListRequests, req)
	listFunc, err := g.ListFunc, g.Err
	products := append([]domain.Product(nil), g.Products...)
	g.mu.Unlock()

	if listFunc != nil {
		return listFunc(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	return PageOf(products, req), nil
}

// GetProductByHandle implements contracts.CatalogGateway.
func (g *FakeGateway) GetProductByHandle(_ context.Context, handle string) (*domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Err != nil {
		return nil, g.Err
	}
	for i := range g.Products {
		if g.Products[i].Handle == handle {
			p := g.Products[i]
			return &p, nil
		}
	}
	return nil, domain.NewCatalogError("GetProductByHandle", domain.ErrProductNotFound, nil)
}

// ListProductTypes implements contracts.CatalogGateway.
func (g *FakeGateway) ListProductTypes(context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	return append([]string(nil), g.Types...), nil
}

// ListVendors implements contracts.CatalogGateway.
func (g *FakeGateway) ListVendors(context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	return append([]string(nil), g.Vendors...), nil
}

// Requests returns a copy of the recorded list requests.
func (g *FakeGateway) Requests() []contracts.ListRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]contracts.ListRequest(nil), g.ListRequests...)
}

// PageOf slices products the way the fake backend pages them.
func PageOf(products []domain.Product, req contracts.ListRequest) *domain.Page {
	first := req.First
	if first <= 0 {
		first = 12
	}

	offset := 0
	if req.After != "" {
		fmt.Sscanf(req.After, "c%d", &offset)
	}
	if offset > len(products) {
		offset = len(products)
	}

	end := offset + first
	if end > len(products) {
		end = len(products)
	}

	page := &domain.Page{Products: append([]domain.Product(nil), products[offset:end]...)}
	if end < len(products) {
		page.PageInfo = domain.PageInfo{HasNextPage: true, EndCursor: fmt.Sprintf("c%d", end)}
	}
	return page
}

var _ contracts.CatalogGateway = (*FakeGateway)(nil)
