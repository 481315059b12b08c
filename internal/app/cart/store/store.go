package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/light-bringer/storefront-core/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/pkg/clock"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// Store holds the cart for one process.
//
// Lifecycle: Init once with credentials, Rehydrate once from storage, then
// mutate. Every mutation is applied to a copy that replaces the current cart
// only when complete, then written through to storage. Storage failures are
// logged and never undo the in-memory change.
type Store struct {
	storage contracts.CartStorage
	clock   clock.Clock
	logger  *slog.Logger

	mu    sync.RWMutex
	creds *domain.Credentials
	ready bool
	cart  *domain.Cart
}

// NewStore creates an uninitialized store.
func NewStore(storage contracts.CartStorage, clk clock.Clock, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: storage,
		clock:   clk,
		logger:  logger.With("component", "cart_store"),
	}
}

// Init sets the credentials. Repeating it with the same values is a no-op;
// different values fail with domain.ErrCredentialsMismatch.
func (s *Store) Init(creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds != nil {
		if *s.creds != creds {
			return domain.ErrCredentialsMismatch
		}
		return nil
	}
	s.creds = &creds
	return nil
}

// Credentials returns the initialized credentials.
func (s *Store) Credentials() (domain.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return domain.Credentials{}, false
	}
	return *s.creds, true
}

// Rehydrate loads the persisted cart. Only the first call reads storage.
// Unreadable records and carts of another shop are replaced with an empty
// cart; the only error is domain.ErrNotReady before Init.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return domain.ErrNotReady
	}
	if s.ready {
		return nil
	}

	cart, err := s.storage.Load(ctx)
	switch {
	case err != nil:
		s.logger.Warn("discarding unreadable cart", "error", err, "corrupt", errors.Is(err, domain.ErrCorruptRecord))
		cart = nil
	case cart != nil && cart.ShopDomain != s.creds.ShopDomain:
		s.logger.Info("discarding cart of another shop", "stored_shop", cart.ShopDomain, "shop", s.creds.ShopDomain)
		cart = nil
	}

	if cart == nil {
		cart = domain.NewCart(s.creds.ShopDomain, s.clock.Now())
	}

	s.cart = cart
	s.ready = true
	s.logger.Debug("cart rehydrated", "cart_id", cart.ID, "lines", len(cart.Items))
	return nil
}

// Ready reports whether the store accepts mutations.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// AddToCart adds one unit of variant.
func (s *Store) AddToCart(ctx context.Context, product *catalog.Product, variant *catalog.Variant) error {
	return s.AddQuantity(ctx, product, variant, 1)
}

// AddQuantity adds qty units of variant, merging with an existing line.
func (s *Store) AddQuantity(ctx context.Context, product *catalog.Product, variant *catalog.Variant, qty int) error {
	return s.mutate(ctx, "add", func(cart *domain.Cart) (bool, error) {
		item, err := domain.NewItem(product, variant, qty, s.clock.Now())
		if err != nil {
			return false, err
		}
		cart.Add(item)
		return true, nil
	})
}

// SetQuantity sets a line's quantity; n <= 0 removes it.
func (s *Store) SetQuantity(ctx context.Context, productID, variantID string, n int) error {
	return s.mutate(ctx, "set_quantity", func(cart *domain.Cart) (bool, error) {
		return cart.SetQuantity(productID, variantID, n), nil
	})
}

// RemoveFromCart deletes a line. Absent lines are a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID, variantID string) error {
	return s.mutate(ctx, "remove", func(cart *domain.Cart) (bool, error) {
		return cart.Remove(productID, variantID), nil
	})
}

// ClearCart removes every line.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, "clear", func(cart *domain.Cart) (bool, error) {
		return cart.Clear(), nil
	})
}

// TotalItems is the badge count.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.TotalItems()
}

// TotalPrice sums every line.
func (s *Store) TotalPrice() *money.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return money.Zero()
	}
	return s.cart.TotalPrice()
}

// Items returns a copy of the lines in display order.
func (s *Store) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return []domain.Item{}
	}
	return s.cart.Clone().Items
}

// Cart returns a copy of the current cart, or nil before Rehydrate.
func (s *Store) Cart() *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return nil
	}
	return s.cart.Clone()
}

// mutate applies fn to a copy of the cart, swaps it in, and writes through.
// The save runs under the lock so stored records follow mutation order.
func (s *Store) mutate(ctx context.Context, op string, fn func(cart *domain.Cart) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return domain.ErrNotReady
	}

	next := s.cart.Clone()
	changed, err := fn(next)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	next.UpdatedAt = s.clock.Now()
	s.cart = next

	if err := s.storage.Save(ctx, next); err != nil {
		s.logger.Warn("cart write-through failed", "op", op, "cart_id", next.ID, "error", err)
	}
	return nil
}
