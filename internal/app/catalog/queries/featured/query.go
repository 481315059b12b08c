package featured

import (
	"context"

	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
)

// DefaultCount is the number of products on the landing view.
const DefaultCount = 3

// Query handles the featured products query use case.
type Query struct {
	gateway contracts.CatalogGateway
	count   int
}

// NewQuery creates a featured query returning count products.
func NewQuery(gateway contracts.CatalogGateway, count int) *Query {
	if count <= 0 {
		count = DefaultCount
	}
	return &Query{
		gateway: gateway,
		count:   count,
	}
}

// Execute returns the first products in default order.
func (q *Query) Execute(ctx context.Context) ([]domain.Product, error) {
	page, err := q.gateway.ListProducts(ctx, contracts.RequestFor(domain.DefaultFilters(), q.count, ""))
	if err != nil {
		return nil, err
	}

	products := page.Products
	if len(products) > q.count {
		products = products[:q.count]
	}
	return products, nil
}
