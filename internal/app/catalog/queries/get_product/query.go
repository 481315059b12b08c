package get_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain/services"
)

// Request contains the handle of the product to retrieve.
type Request struct {
	Handle string
}

// ProductView is a product ready for option selection.
type ProductView struct {
	Product   *domain.Product
	Options   *services.OptionIndex
	Selection services.Selection
}

// Selected returns the variant matching the current selection.
func (v *ProductView) Selected() (*domain.Variant, bool) {
	return v.Options.Resolve(v.Selection)
}

// Choose sets value on axis. The value must be one the product offers.
func (v *ProductView) Choose(axis, value string) error {
	for _, known := range v.Options.Values(axis) {
		if known == value {
			v.Selection = v.Selection.With(axis, value)
			return nil
		}
	}
	return fmt.Errorf("%s %q is not offered for %s", axis, value, v.Product.Handle)
}

// Query handles the get product query use case.
type Query struct {
	gateway contracts.CatalogGateway
}

// NewQuery creates a new get product query.
func NewQuery(gateway contracts.CatalogGateway) *Query {
	return &Query{
		gateway: gateway,
	}
}

// Execute retrieves a product by handle and indexes its options.
func (q *Query) Execute(ctx context.Context, req *Request) (*ProductView, error) {
	product, err := q.gateway.GetProductByHandle(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	options := services.NewOptionIndex(product)
	return &ProductView{
		Product:   product,
		Options:   options,
		Selection: options.DefaultSelection(),
	}, nil
}
