package list_filters

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
)

// Result holds the filter choices offered to the user.
type Result struct {
	Categories []string
	Vendors    []string
}

// Query handles the list filters query use case.
type Query struct {
	gateway contracts.CatalogGateway
}

// NewQuery creates a new list filters query.
func NewQuery(gateway contracts.CatalogGateway) *Query {
	return &Query{
		gateway: gateway,
	}
}

// Execute fetches categories and vendors concurrently. Either both succeed or
// the first error is returned.
func (q *Query) Execute(ctx context.Context) (*Result, error) {
	g, ctx := errgroup.WithContext(ctx)

	var result Result
	g.Go(func() error {
		categories, err := q.gateway.ListProductTypes(ctx)
		if err != nil {
			return err
		}
		result.Categories = categories
		return nil
	})
	g.Go(func() error {
		vendors, err := q.gateway.ListVendors(ctx)
		if err != nil {
			return err
		}
		result.Vendors = vendors
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}
