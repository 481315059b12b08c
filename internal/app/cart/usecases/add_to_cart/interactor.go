package add_to_cart

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/app/cart/store"
	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	catalog "github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain/services"
)

// Request contains the product handle and option choices to add.
// Unset axes take the product's default selection.
type Request struct {
	Handle     string
	Selections services.Selection
	Quantity   int
}

// Response describes the line after the add.
type Response struct {
	Product    *catalog.Product
	Variant    *catalog.Variant
	Line       domain.Item
	TotalItems int
}

// Interactor handles the add to cart use case.
type Interactor struct {
	gateway contracts.CatalogGateway
	store   *store.Store
}

// NewInteractor creates a new add to cart interactor.
func NewInteractor(gateway contracts.CatalogGateway, cartStore *store.Store) *Interactor {
	return &Interactor{
		gateway: gateway,
		store:   cartStore,
	}
}

// Execute fetches the product, resolves the selection to a variant, and adds it.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if err := i.validate(req); err != nil {
		return nil, err
	}

	// 2. Load product
	product, err := i.gateway.GetProductByHandle(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	// 3. Resolve the exact variant
	options := services.NewOptionIndex(product)
	sel := options.DefaultSelection()
	for axis, value := range req.Selections {
		if value == "" {
			continue
		}
		if !options.HasAxis(axis) {
			return nil, fmt.Errorf("%w: %s has no %s option", domain.ErrSelectionIncomplete, product.Handle, axis)
		}
		sel = sel.With(axis, value)
	}

	variant, ok := options.Resolve(sel)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSelectionIncomplete, describe(options, sel))
	}
	if !variant.Available {
		return nil, fmt.Errorf("%w: %s", domain.ErrVariantUnavailable, variant.Title)
	}

	// 4. Mutate the cart
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if err := i.store.AddQuantity(ctx, product, variant, qty); err != nil {
		return nil, err
	}

	line, _ := i.store.Cart().Find(product.ID, variant.ID)
	return &Response{
		Product:    product,
		Variant:    variant,
		Line:       line,
		TotalItems: i.store.TotalItems(),
	}, nil
}

// validate validates the request.
func (i *Interactor) validate(req *Request) error {
	if req.Handle == "" {
		return fmt.Errorf("product handle is required")
	}
	if req.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func describe(options *services.OptionIndex, sel services.Selection) string {
	out := ""
	for _, axis := range options.Axes() {
		if out != "" {
			out += ", "
		}
		value := sel[axis.Name]
		if value == "" {
			value = "<unset>"
		}
		out += axis.Name + "=" + value
	}
	return out
}
