package contracts

import (
	"context"

	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
)

// ListRequest is one page request against the remote catalog.
type ListRequest struct {
	First   int
	After   string // cursor from a prior PageInfo.EndCursor; empty starts a chain
	SortKey domain.SortKey
	Reverse bool

	// Query is sent only when HasQuery is set. The backend treats an absent
	// query differently from an empty one.
	Query    string
	HasQuery bool
}

// RequestFor builds the request for a page of filters.
func RequestFor(filters domain.Filters, first int, after string) ListRequest {
	q, ok := filters.SearchQuery()
	return ListRequest{
		First:    first,
		After:    after,
		SortKey:  filters.Sort.Key,
		Reverse:  filters.Sort.Reverse,
		Query:    q,
		HasQuery: ok,
	}
}

// CatalogGateway is the remote catalog. Every failure is a
// *domain.CatalogError; implementations never return partial data.
type CatalogGateway interface {
	// ListProducts returns one page. Ordering is stable along a cursor chain.
	ListProducts(ctx context.Context, req ListRequest) (*domain.Page, error)

	// GetProductByHandle fails with domain.ErrProductNotFound when no product matches.
	GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error)

	// ListProductTypes returns distinct categories in lexicographic order.
	ListProductTypes(ctx context.Context) ([]string, error)

	// ListVendors returns distinct vendors in lexicographic order.
	ListVendors(ctx context.Context) ([]string, error)
}
