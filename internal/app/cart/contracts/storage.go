package contracts

import (
	"context"

	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
)

// CartStorage persists the single cart record of this process.
type CartStorage interface {
	// Load returns (nil, nil) when nothing is stored. Unreadable or invalid
	// data is reported as an error wrapping domain.ErrStorage.
	Load(ctx context.Context) (*domain.Cart, error)

	// Save overwrites the stored record.
	Save(ctx context.Context, cart *domain.Cart) error
}
